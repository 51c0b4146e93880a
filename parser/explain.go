package parser

import (
	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/internal/explain"
)

// Explain returns the indented tree dump for a statement.
func Explain(stmt ast.Statement) string {
	return explain.Explain(stmt)
}
