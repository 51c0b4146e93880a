package parser

import (
	"strconv"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/token"
)

// Operator precedence levels. An infix operator binds only when its
// level is strictly greater than the caller's threshold.
const (
	LOWEST   = 0
	COMPARE  = 3 // =, ^
	ADD_PREC = 4 // +, -
	MUL_PREC = 5 // *, /, %
)

func precedence(tok token.Token) int {
	switch tok {
	case token.EQ, token.CARET:
		return COMPARE
	case token.PLUS, token.MINUS:
		return ADD_PREC
	case token.ASTERISK, token.SLASH, token.PERCENT:
		return MUL_PREC
	default:
		return LOWEST
	}
}

var binaryOps = map[token.Token]ast.BinaryOp{
	token.PLUS:     ast.OpPlus,
	token.MINUS:    ast.OpMinus,
	token.ASTERISK: ast.OpMul,
	token.SLASH:    ast.OpDiv,
	token.PERCENT:  ast.OpMod,
	token.EQ:       ast.OpEq,
	token.CARET:    ast.OpPow,
}

var aggregates = map[string]bool{
	"COUNT": true,
	"SUM":   true,
	"AVG":   true,
	"MIN":   true,
	"MAX":   true,
}

// parseExpression parses an expression by precedence climbing. Any token
// that is not one of the infix operators ends the expression.
func (p *Parser) parseExpression(threshold int) (ast.Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		prec := precedence(p.current().Token)
		if prec <= threshold {
			return left, nil
		}
		op := p.nextToken()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Position: op.Pos,
			Left:     left,
			Op:       binaryOps[op.Token],
			Right:    right,
		}
	}
}

// parseExpressionList parses expr {, expr}.
func (p *Parser) parseExpressionList() ([]ast.Expression, error) {
	var exprs []ast.Expression
	for {
		expr, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if !p.match(token.COMMA) {
			return exprs, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	cur := p.current()
	switch cur.Token {
	case token.IDENT:
		return p.parseIdentExpr()
	case token.NUMBER:
		return p.parseNumber()
	case token.STRING:
		p.nextToken()
		return &ast.Literal{Position: cur.Pos, Type: ast.TypeText, Value: cur.Value}, nil
	case token.TRUE, token.FALSE:
		p.nextToken()
		return &ast.Literal{Position: cur.Pos, Type: ast.TypeBoolean, Value: cur.Token == token.TRUE}, nil
	case token.NULL:
		p.nextToken()
		return &ast.Literal{Position: cur.Pos, Type: ast.TypeNull}, nil
	case token.LPAREN:
		p.nextToken()
		expr, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case token.MINUS, token.NOT:
		p.nextToken()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		op := ast.OpNeg
		if cur.Token == token.NOT {
			op = ast.OpNot
		}
		return &ast.UnaryExpr{Position: cur.Pos, Op: op, Operand: operand}, nil
	case token.CAST:
		return p.parseCast()
	default:
		return nil, p.unexpected("expression")
	}
}

// parseIdentExpr parses a column reference, a table-qualified column
// reference or a function call.
func (p *Parser) parseIdentExpr() (ast.Expression, error) {
	name := p.nextToken()

	if p.currentIs(token.LPAREN) {
		return p.parseFunctionCall(name.Value, name.Pos)
	}

	if p.match(token.DOT) {
		table := name.Value
		if star := p.current(); star.Token == token.ASTERISK {
			p.nextToken()
			return &ast.ColumnRef{Position: name.Pos, Name: "*", Table: &table}, nil
		}
		col, err := p.expectIdent("column name")
		if err != nil {
			return nil, err
		}
		return &ast.ColumnRef{Position: name.Pos, Name: col, Table: &table}, nil
	}

	return &ast.ColumnRef{Position: name.Pos, Name: name.Value}, nil
}

func (p *Parser) parseFunctionCall(name string, pos token.Position) (ast.Expression, error) {
	fn := &ast.FunctionCall{
		Position:  pos,
		Name:      name,
		Aggregate: aggregates[strings.ToUpper(name)],
	}
	p.nextToken() // skip (

	for !p.currentIs(token.RPAREN) {
		if len(fn.Args) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		if star := p.current(); star.Token == token.ASTERISK {
			p.nextToken()
			fn.Args = append(fn.Args, &ast.ColumnRef{Position: star.Pos, Name: "*"})
			continue
		}
		arg, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		fn.Args = append(fn.Args, arg)
	}
	p.nextToken() // skip )
	return fn, nil
}

func (p *Parser) parseNumber() (ast.Expression, error) {
	item := p.nextToken()
	if strings.Contains(item.Value, ".") {
		f, err := strconv.ParseFloat(item.Value, 64)
		if err != nil {
			return nil, p.errorf(item, "invalid number %s", item.Value)
		}
		return &ast.Literal{Position: item.Pos, Type: ast.TypeDouble, Value: f}, nil
	}
	i, err := strconv.ParseInt(item.Value, 10, 64)
	if err != nil {
		return nil, p.errorf(item, "integer %s out of range", item.Value)
	}
	return &ast.Literal{Position: item.Pos, Type: ast.TypeInteger, Value: i}, nil
}

// parseCast parses CAST(expr AS type).
func (p *Parser) parseCast() (ast.Expression, error) {
	pos := p.nextToken().Pos
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.AS); err != nil {
		return nil, err
	}
	dt, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.CastExpr{Position: pos, Expr: expr, Type: dt}, nil
}
