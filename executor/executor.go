// Package executor applies parsed statements to a catalog.
package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/catalog"
)

// Result reports the outcome of one statement. Message is empty for
// statements that are accepted without effect.
type Result struct {
	Statement ast.Statement
	Message   string
}

// Executor runs statements against a catalog.
type Executor struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// New returns an executor over c. A nil logger discards output.
func New(c *catalog.Catalog, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{catalog: c, logger: logger}
}

// Catalog returns the catalog the executor writes to.
func (e *Executor) Catalog() *catalog.Catalog { return e.catalog }

// Execute applies stmt. CREATE TABLE, CREATE SEQUENCE and CREATE COLLATION
// register catalog objects; every other statement is a no-op.
func (e *Executor) Execute(ctx context.Context, stmt ast.Statement) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	e.logger.DebugContext(ctx, "executing statement",
		"type", fmt.Sprintf("%T", stmt),
		"pos", stmt.Pos().String())

	res := Result{Statement: stmt}
	switch s := stmt.(type) {
	case *ast.CreateTableStmt:
		if err := e.catalog.CreateTable(ctx, s); err != nil {
			return res, err
		}
		res.Message = fmt.Sprintf("Table %s created successfully.", s.Name)
	case *ast.CreateSequenceStmt:
		if err := e.catalog.CreateSequence(ctx, s); err != nil {
			return res, err
		}
		res.Message = fmt.Sprintf("Sequence %s created successfully.", s.Name)
	case *ast.CreateCollationStmt:
		if err := e.catalog.CreateCollation(s); err != nil {
			return res, err
		}
		res.Message = fmt.Sprintf("Collation %s created successfully.", s.Name)
	default:
		return res, nil
	}

	e.logger.InfoContext(ctx, res.Message)
	return res, nil
}

// ExecuteAll runs stmts in order and stops at the first failure. The
// results of the statements that ran are returned with the error.
func (e *Executor) ExecuteAll(ctx context.Context, stmts []ast.Statement) ([]Result, error) {
	results := make([]Result, 0, len(stmts))
	for _, stmt := range stmts {
		res, err := e.Execute(ctx, stmt)
		if err != nil {
			return results, fmt.Errorf("statement at %s: %w", stmt.Pos(), err)
		}
		results = append(results, res)
	}
	return results, nil
}
