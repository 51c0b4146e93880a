// Package explain renders fluxo statements as an indented tree, one node
// per line, in the form "Name [attrs] (children N)".
package explain

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
)

// Explain returns the tree dump for a statement.
func Explain(stmt ast.Statement) string {
	var sb strings.Builder
	Node(&sb, stmt, 0)
	return sb.String()
}

// Node writes the tree dump for an AST node at the given depth.
func Node(sb *strings.Builder, node interface{}, depth int) {
	if node == nil {
		return
	}

	indent := strings.Repeat(" ", depth)

	switch n := node.(type) {
	// Statements
	case *ast.SelectStmt:
		explainSelectStmt(sb, n, indent, depth)
	case *ast.InsertStmt:
		explainInsertStmt(sb, n, indent, depth)
	case *ast.DropStmt:
		explainDropStmt(sb, n, indent)
	case *ast.AlterTableStmt:
		explainAlterTableStmt(sb, n, indent, depth)

	// CREATE family
	case *ast.CreateTableStmt:
		explainCreateTable(sb, n, indent, depth)
	case *ast.CreateIndexStmt:
		explainCreateIndex(sb, n, indent, depth)
	case *ast.CreateTriggerStmt:
		explainCreateTrigger(sb, n, indent, depth)
	case *ast.CreateSequenceStmt:
		explainCreateSequence(sb, n, indent)
	case *ast.CreateSchemaStmt:
		explainCreateSchema(sb, n, indent, depth)
	case *ast.CreateCollationStmt:
		explainCreateCollation(sb, n, indent)
	case *ast.CreateDatabaseStmt:
		explainCreateDatabase(sb, n, indent)
	case *ast.CreateRoleStmt:
		explainCreateRole(sb, n, indent)
	case *ast.CreateViewStmt:
		explainCreateView(sb, n, indent, depth)

	// Clauses
	case *ast.TableRef:
		explainTableRef(sb, n, indent)
	case *ast.OrderByItem:
		explainOrderByItem(sb, n, indent, depth)
	case *ast.ColumnDef:
		Column(sb, n, depth)
	case *ast.TableConstraint:
		Constraint(sb, n, depth)
	case *ast.IndexElem:
		explainIndexElem(sb, n, indent, depth)

	// Expressions
	case *ast.ColumnRef:
		explainColumnRef(sb, n, indent)
	case *ast.Literal:
		fmt.Fprintf(sb, "%sLiteral %s\n", indent, FormatLiteral(n))
	case *ast.BinaryExpr:
		explainBinaryExpr(sb, n, indent, depth)
	case *ast.UnaryExpr:
		explainUnaryExpr(sb, n, indent, depth)
	case *ast.FunctionCall:
		explainFunctionCall(sb, n, indent, depth)
	case *ast.CastExpr:
		explainCastExpr(sb, n, indent, depth)

	default:
		// For unhandled types, just print the type name
		fmt.Fprintf(sb, "%s%T\n", indent, node)
	}
}

// header writes one node line. Empty attributes are skipped and the
// children suffix is only written for interior nodes.
func header(sb *strings.Builder, indent string, children int, name string, attrs ...string) {
	sb.WriteString(indent)
	sb.WriteString(name)
	for _, a := range attrs {
		if a != "" {
			sb.WriteByte(' ')
			sb.WriteString(a)
		}
	}
	if children > 0 {
		fmt.Fprintf(sb, " (children %d)", children)
	}
	sb.WriteByte('\n')
}

// flag returns name when set is true.
func flag(set bool, name string) string {
	if set {
		return name
	}
	return ""
}

// opt renders an optional string attribute as key=value.
func opt(key string, v *string) string {
	if v == nil {
		return ""
	}
	return key + "=" + *v
}

// ExpressionList writes a list of expressions under an ExpressionList node.
func ExpressionList(sb *strings.Builder, exprs []ast.Expression, depth int) {
	indent := strings.Repeat(" ", depth)
	header(sb, indent, len(exprs), "ExpressionList")
	for _, e := range exprs {
		Node(sb, e, depth+1)
	}
}

// identifierList writes names as Identifier leaves under a named node.
func identifierList(sb *strings.Builder, name string, names []string, depth int) {
	indent := strings.Repeat(" ", depth)
	header(sb, indent, len(names), name)
	for _, n := range names {
		fmt.Fprintf(sb, "%s Identifier %s\n", indent, n)
	}
}

// count returns the number of non-nil entries.
func count(present ...bool) int {
	n := 0
	for _, p := range present {
		if p {
			n++
		}
	}
	return n
}
