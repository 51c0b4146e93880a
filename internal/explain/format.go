package explain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
)

// FormatFloat formats a float value for tree output
func FormatFloat(val float64) string {
	if math.IsInf(val, 1) {
		return "inf"
	}
	if math.IsInf(val, -1) {
		return "-inf"
	}
	if math.IsNaN(val) {
		return "nan"
	}
	absVal := math.Abs(val)
	if (absVal > 0 && absVal < 1e-6) || absVal >= 1e21 {
		s := strconv.FormatFloat(val, 'e', -1, 64)
		s = strings.Replace(s, "e-0", "e-", 1)
		s = strings.Replace(s, "e+0", "e+", 1)
		return strings.Replace(s, "e+", "e", 1)
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}

// escapeStringLiteral escapes a string so that it fits on one output line.
func escapeStringLiteral(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch b {
		case '\\':
			sb.WriteString(`\\`)
		case '\'':
			sb.WriteString(`\'`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

// FormatLiteral formats a literal value for tree output
func FormatLiteral(lit *ast.Literal) string {
	switch lit.Type {
	case ast.TypeInteger, ast.TypeBigint:
		if v, ok := lit.Value.(int64); ok {
			return fmt.Sprintf("Int64_%d", v)
		}
	case ast.TypeDouble:
		if v, ok := lit.Value.(float64); ok {
			return "Float64_" + FormatFloat(v)
		}
	case ast.TypeBoolean:
		if v, ok := lit.Value.(bool); ok {
			if v {
				return "Bool_1"
			}
			return "Bool_0"
		}
	case ast.TypeNull:
		return "NULL"
	}
	if s, ok := lit.Value.(string); ok {
		return "'" + escapeStringLiteral(s) + "'"
	}
	return fmt.Sprintf("%v", lit.Value)
}

// FormatDataType formats a column type with its optional length.
func FormatDataType(dt ast.DataType, length *int64) string {
	if length == nil {
		return string(dt)
	}
	return fmt.Sprintf("%s(%d)", dt, *length)
}

// OperatorToFunction maps a binary operator to the function name shown
// in tree output.
func OperatorToFunction(op ast.BinaryOp) string {
	switch op {
	case ast.OpPlus:
		return "plus"
	case ast.OpMinus:
		return "minus"
	case ast.OpMul:
		return "multiply"
	case ast.OpDiv:
		return "divide"
	case ast.OpMod:
		return "modulo"
	case ast.OpPow:
		return "pow"
	case ast.OpEq:
		return "equals"
	case ast.OpNeq:
		return "notEquals"
	case ast.OpLt:
		return "less"
	case ast.OpLte:
		return "lessOrEquals"
	case ast.OpGt:
		return "greater"
	case ast.OpGte:
		return "greaterOrEquals"
	case ast.OpAnd:
		return "and"
	case ast.OpOr:
		return "or"
	case ast.OpLike:
		return "like"
	case ast.OpILike:
		return "ilike"
	case ast.OpNotLike:
		return "notLike"
	default:
		return strings.ToLower(string(op))
	}
}

// UnaryOperatorToFunction maps a unary operator to its function name.
func UnaryOperatorToFunction(op ast.UnaryOp) string {
	switch op {
	case ast.OpNeg:
		return "negate"
	case ast.OpNot:
		return "not"
	case ast.OpIsNull:
		return "isNull"
	case ast.OpIsNotNull:
		return "isNotNull"
	default:
		return strings.ToLower(string(op))
	}
}
