package parser

import (
	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/token"
)

func (p *Parser) parseSelect() (*ast.SelectStmt, error) {
	start, err := p.expect(token.SELECT)
	if err != nil {
		return nil, err
	}
	sel := &ast.SelectStmt{Position: start.Pos}

	sel.Distinct = p.match(token.DISTINCT)

	// Parse projection list
	for {
		if star := p.current(); star.Token == token.ASTERISK {
			p.nextToken()
			sel.Projections = append(sel.Projections, &ast.ColumnRef{Position: star.Pos, Name: "*"})
		} else {
			expr, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			sel.Projections = append(sel.Projections, expr)
		}
		if !p.match(token.COMMA) {
			break
		}
	}

	if p.match(token.FROM) {
		for {
			ref, err := p.parseTableRef()
			if err != nil {
				return nil, err
			}
			sel.From = append(sel.From, ref)
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	if p.match(token.WHERE) {
		if sel.Where, err = p.parseExpression(LOWEST); err != nil {
			return nil, err
		}
	}

	if p.match(token.GROUP) {
		if _, err := p.expect(token.BY); err != nil {
			return nil, err
		}
		if sel.GroupBy, err = p.parseExpressionList(); err != nil {
			return nil, err
		}
	}

	if p.match(token.HAVING) {
		if sel.Having, err = p.parseExpression(LOWEST); err != nil {
			return nil, err
		}
	}

	if p.match(token.ORDER) {
		if _, err := p.expect(token.BY); err != nil {
			return nil, err
		}
		for {
			item := &ast.OrderByItem{Position: p.current().Pos}
			if item.Expr, err = p.parseExpression(LOWEST); err != nil {
				return nil, err
			}
			if p.match(token.DESC) {
				item.Desc = true
			} else {
				p.match(token.ASC)
			}
			sel.OrderBy = append(sel.OrderBy, item)
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	if p.match(token.LIMIT) {
		n, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		sel.Limit = &n
	}

	if p.match(token.OFFSET) {
		n, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		sel.Offset = &n
	}

	return sel, nil
}

// parseTableRef parses name [[AS] alias].
func (p *Parser) parseTableRef() (*ast.TableRef, error) {
	pos := p.current().Pos
	name, err := p.expectIdent("table name")
	if err != nil {
		return nil, err
	}
	ref := &ast.TableRef{Position: pos, Name: name}
	if p.match(token.AS) {
		alias, err := p.expectIdent("table alias")
		if err != nil {
			return nil, err
		}
		ref.Alias = &alias
	} else if p.currentIs(token.IDENT) {
		alias := p.nextToken().Value
		ref.Alias = &alias
	}
	return ref, nil
}

// parseInsert parses INSERT INTO table [(cols)] VALUES (row) {, (row)}.
func (p *Parser) parseInsert() (*ast.InsertStmt, error) {
	start := p.nextToken() // skip INSERT
	if _, err := p.expect(token.INTO); err != nil {
		return nil, err
	}
	table, err := p.expectIdent("table name")
	if err != nil {
		return nil, err
	}
	ins := &ast.InsertStmt{Position: start.Pos, Table: table}

	if p.currentIs(token.LPAREN) {
		if ins.Columns, err = p.parseParenIdentList("column name"); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.VALUES); err != nil {
		return nil, err
	}
	for {
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		row, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		ins.Rows = append(ins.Rows, row)
		if !p.match(token.COMMA) {
			break
		}
	}
	return ins, nil
}
