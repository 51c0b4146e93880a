package catalog

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sqlc-dev/fluxo/ast"
)

// Collation compares strings by the rules of a locale. A non-deterministic
// collation ignores case, diacritics and width.
type Collation struct {
	Name          string
	Tag           language.Tag
	Deterministic bool

	// collate.Collator keeps scratch buffers and is not safe for
	// concurrent use.
	mu       sync.Mutex
	collator *collate.Collator
}

func newCollation(name string, tag language.Tag, deterministic bool) *Collation {
	var opts []collate.Option
	if !deterministic {
		opts = append(opts, collate.Loose)
	}
	return &Collation{
		Name:          name,
		Tag:           tag,
		Deterministic: deterministic,
		collator:      collate.New(tag, opts...),
	}
}

// Compare returns -1, 0 or 1. Deterministic collations only report equal
// strings as equal, breaking ties byte-wise.
func (c *Collation) Compare(a, b string) int {
	c.mu.Lock()
	r := c.collator.CompareString(a, b)
	c.mu.Unlock()
	if r == 0 && c.Deterministic {
		return strings.Compare(a, b)
	}
	return r
}

// CreateCollation registers the collation described by stmt. FROM copies
// an existing collation; otherwise LOCALE is required.
func (c *Catalog) CreateCollation(stmt *ast.CreateCollationStmt) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.collations[stmt.Name]; ok {
		if stmt.IfNotExists {
			return nil
		}
		return fmt.Errorf("collation %s: %w", stmt.Name, ErrAlreadyExists)
	}

	if stmt.From != nil {
		src, ok := c.collations[*stmt.From]
		if !ok {
			return fmt.Errorf("collation %s: %w", *stmt.From, ErrNotFound)
		}
		c.collations[stmt.Name] = newCollation(stmt.Name, src.Tag, src.Deterministic)
		return nil
	}

	if stmt.Locale == nil {
		return fmt.Errorf("collation %s: locale is required", stmt.Name)
	}
	tag, err := language.Parse(*stmt.Locale)
	if err != nil {
		return fmt.Errorf("collation %s: invalid locale %q: %w", stmt.Name, *stmt.Locale, err)
	}
	c.collations[stmt.Name] = newCollation(stmt.Name, tag, stmt.Deterministic)
	return nil
}

// GetCollation returns the named collation.
func (c *Catalog) GetCollation(name string) (*Collation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	coll, ok := c.collations[name]
	return coll, ok
}

// Compare compares a and b under the named collation.
func (c *Catalog) Compare(collation, a, b string) (int, error) {
	coll, ok := c.GetCollation(collation)
	if !ok {
		return 0, fmt.Errorf("collation %s: %w", collation, ErrNotFound)
	}
	return coll.Compare(a, b), nil
}
