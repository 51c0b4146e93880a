// Package catalog keeps the schema objects created by executed statements:
// tables, sequences and collations. A Catalog is safe for concurrent use.
// When opened over a Store, table and sequence records survive restarts.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/internal/format"
	"github.com/sqlc-dev/fluxo/parser"
)

var (
	ErrAlreadyExists     = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrSequenceExhausted = errors.New("sequence exhausted")
)

// TableInfo describes a registered table.
type TableInfo struct {
	Name        string
	Temporary   bool
	Columns     []*ast.ColumnDef
	Constraints []*ast.TableConstraint
}

// Column returns the named column definition.
func (t *TableInfo) Column(name string) (*ast.ColumnDef, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// SequenceInfo is the state of a sequence. Called reports whether a value
// has been handed out since the sequence was created.
type SequenceInfo struct {
	Name      string
	Current   int64
	Increment int64
	Min       int64
	Max       int64
	Cycle     bool
	Called    bool
	Temporary bool
}

// Catalog holds schema objects by name.
type Catalog struct {
	mu         sync.RWMutex
	tables     map[string]*TableInfo
	sequences  map[string]*SequenceInfo
	collations map[string]*Collation
	store      Store
}

// New returns an empty in-memory catalog.
func New() *Catalog {
	return &Catalog{
		tables:     make(map[string]*TableInfo),
		sequences:  make(map[string]*SequenceInfo),
		collations: make(map[string]*Collation),
	}
}

// Open returns a catalog backed by store, loaded with the records the store
// already holds.
func Open(ctx context.Context, store Store) (*Catalog, error) {
	c := New()
	c.store = store

	defs, err := store.LoadTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tables: %w", err)
	}
	for name, def := range defs {
		stmt, err := parseTableDefinition(ctx, def)
		if err != nil {
			return nil, fmt.Errorf("loading table %s: %w", name, err)
		}
		c.tables[stmt.Name] = tableInfo(stmt)
	}

	seqs, err := store.LoadSequences(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading sequences: %w", err)
	}
	for i := range seqs {
		seq := seqs[i]
		c.sequences[seq.Name] = &seq
	}
	return c, nil
}

func parseTableDefinition(ctx context.Context, def string) (*ast.CreateTableStmt, error) {
	stmts, err := parser.ParseString(ctx, def)
	if err != nil {
		return nil, err
	}
	if len(stmts) != 1 {
		return nil, fmt.Errorf("definition holds %d statements", len(stmts))
	}
	stmt, ok := stmts[0].(*ast.CreateTableStmt)
	if !ok {
		return nil, fmt.Errorf("definition is a %T", stmts[0])
	}
	return stmt, nil
}

func tableInfo(stmt *ast.CreateTableStmt) *TableInfo {
	return &TableInfo{
		Name:        stmt.Name,
		Temporary:   stmt.Temporary,
		Columns:     stmt.Columns,
		Constraints: stmt.Constraints,
	}
}

// CreateTable registers the table described by stmt. An existing table is
// left untouched when stmt carries IF NOT EXISTS and is an error otherwise.
func (c *Catalog) CreateTable(ctx context.Context, stmt *ast.CreateTableStmt) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tables[stmt.Name]; ok {
		if stmt.IfNotExists {
			return nil
		}
		return fmt.Errorf("table %s: %w", stmt.Name, ErrAlreadyExists)
	}

	if c.store != nil && !stmt.Temporary {
		def := *stmt
		def.IfNotExists = false
		if err := c.store.SaveTable(ctx, stmt.Name, format.Format([]ast.Statement{&def})); err != nil {
			return fmt.Errorf("saving table %s: %w", stmt.Name, err)
		}
	}
	c.tables[stmt.Name] = tableInfo(stmt)
	return nil
}

// GetTable returns the named table.
func (c *Catalog) GetTable(name string) (*TableInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[name]
	return t, ok
}

// Tables returns the number of registered tables.
func (c *Catalog) Tables() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

// CreateSequence registers the sequence described by stmt, replacing any
// sequence of the same name. Unset bounds default to 1 and math.MaxInt64.
func (c *Catalog) CreateSequence(ctx context.Context, stmt *ast.CreateSequenceStmt) error {
	seq := SequenceInfo{
		Name:      stmt.Name,
		Current:   stmt.Start,
		Increment: stmt.Increment,
		Min:       1,
		Max:       math.MaxInt64,
		Cycle:     stmt.Cycle,
		Temporary: stmt.Temporary,
	}
	if stmt.MinValue != nil {
		seq.Min = *stmt.MinValue
	}
	if stmt.MaxValue != nil {
		seq.Max = *stmt.MaxValue
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.saveSequence(ctx, &seq); err != nil {
		return err
	}
	c.sequences[seq.Name] = &seq
	return nil
}

func (c *Catalog) saveSequence(ctx context.Context, seq *SequenceInfo) error {
	if c.store == nil || seq.Temporary {
		return nil
	}
	if err := c.store.SaveSequence(ctx, *seq); err != nil {
		return fmt.Errorf("saving sequence %s: %w", seq.Name, err)
	}
	return nil
}

// GetSequence returns a copy of the named sequence's state.
func (c *Catalog) GetSequence(name string) (SequenceInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seq, ok := c.sequences[name]
	if !ok {
		return SequenceInfo{}, false
	}
	return *seq, true
}

// NextValue advances the named sequence and returns its new value. The
// first call returns the start value. Stepping past a bound wraps to the
// opposite bound when the sequence cycles and fails otherwise. A zero
// increment or an empty range never advances.
func (c *Catalog) NextValue(ctx context.Context, name string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seq, ok := c.sequences[name]
	if !ok {
		return 0, fmt.Errorf("sequence %s: %w", name, ErrNotFound)
	}

	next := seq.Current
	if seq.Called {
		if seq.Increment == 0 || seq.Min > seq.Max {
			return 0, fmt.Errorf("sequence %s cannot advance: %w", name, ErrSequenceExhausted)
		}
		var inRange bool
		next, inRange = step(seq.Current, seq.Increment, seq.Min, seq.Max)
		if !inRange {
			if !seq.Cycle {
				return 0, fmt.Errorf("sequence %s reached its %s: %w", name, boundName(seq.Increment), ErrSequenceExhausted)
			}
			if seq.Increment > 0 {
				next = seq.Min
			} else {
				next = seq.Max
			}
		}
	}

	updated := *seq
	updated.Current = next
	updated.Called = true
	if err := c.saveSequence(ctx, &updated); err != nil {
		return 0, err
	}
	*seq = updated
	return next, nil
}

// step adds inc to cur and reports whether the result stays within
// [min, max] without overflowing.
func step(cur, inc, min, max int64) (int64, bool) {
	if inc > 0 && cur > math.MaxInt64-inc {
		return 0, false
	}
	if inc < 0 && cur < math.MinInt64-inc {
		return 0, false
	}
	next := cur + inc
	return next, next >= min && next <= max
}

func boundName(inc int64) string {
	if inc > 0 {
		return "maximum"
	}
	return "minimum"
}
