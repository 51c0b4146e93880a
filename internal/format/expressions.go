package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
)

// Expression formats an expression.
func Expression(sb *strings.Builder, expr ast.Expression) {
	if expr == nil {
		return
	}

	switch e := expr.(type) {
	case *ast.Literal:
		formatLiteral(sb, e)
	case *ast.ColumnRef:
		formatColumnRef(sb, e)
	case *ast.FunctionCall:
		formatFunctionCall(sb, e)
	case *ast.BinaryExpr:
		formatBinaryExpr(sb, e)
	case *ast.UnaryExpr:
		formatUnaryExpr(sb, e)
	case *ast.CastExpr:
		sb.WriteString("CAST(")
		Expression(sb, e.Expr)
		sb.WriteString(" AS ")
		sb.WriteString(string(e.Type))
		sb.WriteString(")")
	default:
		// Fallback for unhandled expressions
		sb.WriteString(fmt.Sprintf("%v", expr))
	}
}

// formatLiteral formats a literal value.
func formatLiteral(sb *strings.Builder, lit *ast.Literal) {
	switch v := lit.Value.(type) {
	case nil:
		sb.WriteString("NULL")
	case string:
		sb.WriteString(quote(v))
	case int64:
		sb.WriteString(strconv.FormatInt(v, 10))
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		// Keep the dot so the number reads back as a double
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		sb.WriteString(s)
	case bool:
		if v {
			sb.WriteString("TRUE")
		} else {
			sb.WriteString("FALSE")
		}
	default:
		sb.WriteString(fmt.Sprintf("%v", lit.Value))
	}
}

func formatColumnRef(sb *strings.Builder, c *ast.ColumnRef) {
	if c.Table != nil {
		sb.WriteString(*c.Table)
		sb.WriteString(".")
	}
	sb.WriteString(c.Name)
}

func formatFunctionCall(sb *strings.Builder, fn *ast.FunctionCall) {
	sb.WriteString(fn.Name)
	sb.WriteString("(")
	writeExprList(sb, fn.Args)
	sb.WriteString(")")
}

// precedence mirrors the parser's binding levels. Operators the parser
// never builds bind loosest, so their operands are always parenthesized.
func precedence(op ast.BinaryOp) int {
	switch op {
	case ast.OpMul, ast.OpDiv, ast.OpMod:
		return 5
	case ast.OpPlus, ast.OpMinus:
		return 4
	case ast.OpEq, ast.OpPow:
		return 3
	default:
		return 1
	}
}

func formatBinaryExpr(sb *strings.Builder, b *ast.BinaryExpr) {
	prec := precedence(b.Op)
	// Operators are left associative: a right operand at the same level
	// needs parentheses.
	formatOperand(sb, b.Left, func(p int) bool { return p < prec || prec == 1 })
	sb.WriteString(" ")
	sb.WriteString(string(b.Op))
	sb.WriteString(" ")
	formatOperand(sb, b.Right, func(p int) bool { return p <= prec || prec == 1 })
}

func formatOperand(sb *strings.Builder, e ast.Expression, needParens func(int) bool) {
	if inner, ok := e.(*ast.BinaryExpr); ok && needParens(precedence(inner.Op)) {
		sb.WriteString("(")
		Expression(sb, e)
		sb.WriteString(")")
		return
	}
	Expression(sb, e)
}

func formatUnaryExpr(sb *strings.Builder, u *ast.UnaryExpr) {
	switch u.Op {
	case ast.OpNeg:
		sb.WriteString("-")
		formatPrimary(sb, u.Operand)
	case ast.OpNot:
		sb.WriteString("NOT ")
		formatPrimary(sb, u.Operand)
	default:
		formatPrimary(sb, u.Operand)
		sb.WriteString(" ")
		sb.WriteString(string(u.Op))
	}
}

// formatPrimary writes e so that it reads back as a single primary.
func formatPrimary(sb *strings.Builder, e ast.Expression) {
	if _, ok := e.(*ast.BinaryExpr); ok {
		sb.WriteString("(")
		Expression(sb, e)
		sb.WriteString(")")
		return
	}
	Expression(sb, e)
}
