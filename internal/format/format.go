// Package format renders fluxo statements back to canonical SQL text.
// Parsing the output yields a tree equal to the input tree, positions
// aside.
package format

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
)

// Format returns the SQL string representation of the statements.
func Format(stmts []ast.Statement) string {
	var sb strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			sb.WriteString("\n")
		}
		Statement(&sb, stmt)
		sb.WriteString(";")
	}
	return sb.String()
}

// Statement formats a single statement.
func Statement(sb *strings.Builder, stmt ast.Statement) {
	if stmt == nil {
		return
	}

	switch s := stmt.(type) {
	case *ast.SelectStmt:
		formatSelect(sb, s)
	case *ast.InsertStmt:
		formatInsert(sb, s)
	case *ast.DropStmt:
		formatDrop(sb, s)
	case *ast.AlterTableStmt:
		formatAlterTable(sb, s)
	case *ast.CreateTableStmt:
		formatCreateTable(sb, s)
	case *ast.CreateIndexStmt:
		formatCreateIndex(sb, s)
	case *ast.CreateTriggerStmt:
		formatCreateTrigger(sb, s)
	case *ast.CreateSequenceStmt:
		formatCreateSequence(sb, s)
	case *ast.CreateSchemaStmt:
		formatCreateSchema(sb, s)
	case *ast.CreateCollationStmt:
		formatCreateCollation(sb, s)
	case *ast.CreateDatabaseStmt:
		formatCreateDatabase(sb, s)
	case *ast.CreateRoleStmt:
		formatCreateRole(sb, s)
	case *ast.CreateViewStmt:
		formatCreateView(sb, s)
	default:
		panic(fmt.Sprintf("format: unknown statement type %T", stmt))
	}
}

// writeList writes items separated by ", ".
func writeList(sb *strings.Builder, items []string) {
	sb.WriteString(strings.Join(items, ", "))
}

// writeParenList writes ( item, item ).
func writeParenList(sb *strings.Builder, items []string) {
	sb.WriteString("(")
	writeList(sb, items)
	sb.WriteString(")")
}

// writeExprList writes expressions separated by ", ".
func writeExprList(sb *strings.Builder, exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		Expression(sb, e)
	}
}

// quote renders s as a single-quoted string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
