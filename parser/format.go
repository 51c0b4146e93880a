package parser

import (
	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/internal/format"
)

// Format returns the canonical SQL text of the statements, each
// terminated by a semicolon.
func Format(stmts []ast.Statement) string {
	return format.Format(stmts)
}
