package explain

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
)

func explainColumnRef(sb *strings.Builder, n *ast.ColumnRef, indent string) {
	switch {
	case n.Name == "*" && n.Table != nil:
		fmt.Fprintf(sb, "%sQualifiedAsterisk %s\n", indent, *n.Table)
	case n.Name == "*":
		fmt.Fprintf(sb, "%sAsterisk\n", indent)
	case n.Table != nil:
		fmt.Fprintf(sb, "%sIdentifier %s.%s\n", indent, *n.Table, n.Name)
	default:
		fmt.Fprintf(sb, "%sIdentifier %s\n", indent, n.Name)
	}
}

func explainBinaryExpr(sb *strings.Builder, n *ast.BinaryExpr, indent string, depth int) {
	header(sb, indent, 1, "Function", OperatorToFunction(n.Op))
	ExpressionList(sb, []ast.Expression{n.Left, n.Right}, depth+1)
}

func explainUnaryExpr(sb *strings.Builder, n *ast.UnaryExpr, indent string, depth int) {
	// A negated number folds into a single literal
	if lit, ok := n.Operand.(*ast.Literal); ok && n.Op == ast.OpNeg {
		switch v := lit.Value.(type) {
		case int64:
			fmt.Fprintf(sb, "%sLiteral Int64_%d\n", indent, -v)
			return
		case float64:
			fmt.Fprintf(sb, "%sLiteral Float64_%s\n", indent, FormatFloat(-v))
			return
		}
	}
	header(sb, indent, 1, "Function", UnaryOperatorToFunction(n.Op))
	ExpressionList(sb, []ast.Expression{n.Operand}, depth+1)
}

func explainFunctionCall(sb *strings.Builder, n *ast.FunctionCall, indent string, depth int) {
	header(sb, indent, 1, "Function", n.Name, flag(n.Aggregate, "(aggregate)"))
	ExpressionList(sb, n.Args, depth+1)
}

func explainCastExpr(sb *strings.Builder, n *ast.CastExpr, indent string, depth int) {
	header(sb, indent, 1, "Function", "CAST")
	childIndent := strings.Repeat(" ", depth+1)
	header(sb, childIndent, 2, "ExpressionList")
	Node(sb, n.Expr, depth+2)
	fmt.Fprintf(sb, "%s Literal '%s'\n", childIndent, n.Type)
}
