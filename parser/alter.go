package parser

import (
	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/token"
)

// parseAlter parses ALTER TABLE [IF EXISTS] name action {, action}.
func (p *Parser) parseAlter() (*ast.AlterTableStmt, error) {
	start := p.nextToken() // skip ALTER
	if _, err := p.expect(token.TABLE); err != nil {
		return nil, err
	}
	stmt := &ast.AlterTableStmt{Position: start.Pos}

	if p.match(token.IF) {
		if _, err := p.expect(token.EXISTS); err != nil {
			return nil, err
		}
		stmt.IfExists = true
	}
	var err error
	if stmt.Table, err = p.expectIdent("table name"); err != nil {
		return nil, err
	}

	for {
		action, err := p.parseAlterAction()
		if err != nil {
			return nil, err
		}
		stmt.Actions = append(stmt.Actions, action)
		if !p.match(token.COMMA) {
			break
		}
	}
	return stmt, nil
}

// actionEnd ends a column definition or constraint flag run in an
// ALTER TABLE action.
func actionEnd(t token.Token) bool {
	return t == token.COMMA || t == token.SEMICOLON || t == token.EOF
}

func (p *Parser) parseAlterAction() (ast.AlterAction, error) {
	cur := p.current()
	switch cur.Token {
	case token.ADD:
		p.nextToken()
		return p.parseAddAction(cur.Pos)
	case token.DROP:
		p.nextToken()
		return p.parseDropAction(cur.Pos)
	case token.ALTER:
		p.nextToken()
		return p.parseAlterColumnAction(cur.Pos)
	case token.RENAME:
		p.nextToken()
		return p.parseRenameAction(cur.Pos)
	case token.SET:
		p.nextToken()
		if _, err := p.expect(token.SCHEMA); err != nil {
			return nil, err
		}
		schema, err := p.expectIdent("schema name")
		if err != nil {
			return nil, err
		}
		return &ast.SetSchemaAction{Position: cur.Pos, Schema: schema}, nil
	case token.OWNER:
		p.nextToken()
		if _, err := p.expect(token.TO); err != nil {
			return nil, err
		}
		owner, err := p.expectIdent("owner name")
		if err != nil {
			return nil, err
		}
		return &ast.OwnerToAction{Position: cur.Pos, Owner: owner}, nil
	default:
		return nil, p.errorf(cur, "unknown ALTER TABLE action %s", describe(cur))
	}
}

func (p *Parser) parseAddAction(pos token.Position) (ast.AlterAction, error) {
	switch {
	case p.match(token.COLUMN), p.currentIs(token.IDENT):
		action := &ast.AddColumnAction{Position: pos}
		var err error
		if action.IfNotExists, err = p.parseIfNotExists(); err != nil {
			return nil, err
		}
		if action.Column, err = p.parseColumnDef(actionEnd); err != nil {
			return nil, err
		}
		return action, nil

	case p.match(token.CONSTRAINT):
		name, err := p.expectIdent("constraint name")
		if err != nil {
			return nil, err
		}
		action := &ast.AddConstraintAction{Position: pos, Name: &name}
		if p.hasConstraintBody() {
			if action.Constraint, err = p.parseConstraintBody(&name); err != nil {
				return nil, err
			}
			return action, nil
		}
		for !actionEnd(p.current().Token) {
			switch flag := p.nextToken(); flag.Token {
			case token.NOT:
				if _, err := p.expect(token.NULL); err != nil {
					return nil, err
				}
				action.NotNull = true
			case token.UNIQUE:
				action.Unique = true
			case token.PRIMARY:
				if _, err := p.expect(token.KEY); err != nil {
					return nil, err
				}
				action.PrimaryKey = true
			default:
				return nil, p.errorf(flag, "unknown constraint %s in ADD CONSTRAINT", describe(flag))
			}
		}
		return action, nil

	case p.hasConstraintBody():
		c, err := p.parseConstraintBody(nil)
		if err != nil {
			return nil, err
		}
		return &ast.AddConstraintAction{Position: pos, Constraint: c}, nil
	}
	return nil, p.unexpected("COLUMN, CONSTRAINT or a table constraint after ADD")
}

// hasConstraintBody reports whether a full table constraint starts at
// the cursor, as opposed to a run of constraint flags. UNIQUE and
// PRIMARY KEY are bodies only when a column list follows.
func (p *Parser) hasConstraintBody() bool {
	switch p.current().Token {
	case token.FOREIGN, token.CHECK:
		return true
	case token.UNIQUE:
		return p.peekIs(1, token.LPAREN)
	case token.PRIMARY:
		return p.peekIs(1, token.KEY) && p.peekIs(2, token.LPAREN)
	}
	return false
}

func (p *Parser) parseDropAction(pos token.Position) (ast.AlterAction, error) {
	switch {
	case p.match(token.COLUMN):
		action := &ast.DropColumnAction{Position: pos}
		if p.match(token.IF) {
			if _, err := p.expect(token.EXISTS); err != nil {
				return nil, err
			}
			action.IfExists = true
		}
		var err error
		if action.Column, err = p.expectIdent("column name"); err != nil {
			return nil, err
		}
		action.Cascade = p.match(token.CASCADE)
		return action, nil

	case p.match(token.CONSTRAINT):
		action := &ast.DropConstraintAction{Position: pos}
		if p.match(token.IF) {
			if _, err := p.expect(token.EXISTS); err != nil {
				return nil, err
			}
			action.IfExists = true
		}
		var err error
		if action.Name, err = p.expectIdent("constraint name"); err != nil {
			return nil, err
		}
		action.Cascade = p.match(token.CASCADE)
		return action, nil
	}
	return nil, p.unexpected("COLUMN or CONSTRAINT after DROP")
}

func (p *Parser) parseAlterColumnAction(pos token.Position) (ast.AlterAction, error) {
	p.match(token.COLUMN)
	column, err := p.expectIdent("column name")
	if err != nil {
		return nil, err
	}

	cur := p.current()
	switch {
	case p.match(token.TYPE):
		action := &ast.AlterColumnTypeAction{Position: pos, Column: column}
		if action.Type, err = p.parseDataType(); err != nil {
			return nil, err
		}
		if p.match(token.USING) {
			if action.Using, err = p.parseExpression(LOWEST); err != nil {
				return nil, err
			}
		}
		if p.match(token.COLLATE) {
			name, err := p.expectIdent("collation name")
			if err != nil {
				return nil, err
			}
			action.Collation = &name
		}
		return action, nil

	case p.match(token.SET):
		switch {
		case p.match(token.DEFAULT):
			action := &ast.AlterColumnDefaultAction{Position: pos, Column: column}
			if action.Default, err = p.parseExpression(LOWEST); err != nil {
				return nil, err
			}
			return action, nil
		case p.match(token.NOT):
			if _, err := p.expect(token.NULL); err != nil {
				return nil, err
			}
			return &ast.AlterColumnNotNullAction{Position: pos, Column: column, SetNotNull: true}, nil
		}
		return nil, p.unexpected("DEFAULT or NOT NULL after SET")

	case p.match(token.DROP):
		switch {
		case p.match(token.DEFAULT):
			return &ast.AlterColumnDefaultAction{Position: pos, Column: column, Drop: true}, nil
		case p.match(token.NOT):
			if _, err := p.expect(token.NULL); err != nil {
				return nil, err
			}
			return &ast.AlterColumnNotNullAction{Position: pos, Column: column, SetNotNull: false}, nil
		}
		return nil, p.unexpected("DEFAULT or NOT NULL after DROP")
	}
	return nil, p.errorf(cur, "unknown ALTER COLUMN action %s", describe(cur))
}

func (p *Parser) parseRenameAction(pos token.Position) (ast.AlterAction, error) {
	switch {
	case p.match(token.COLUMN):
		old, newName, err := p.parseRenamePair("column name")
		if err != nil {
			return nil, err
		}
		return &ast.RenameColumnAction{Position: pos, Old: old, New: newName}, nil

	case p.match(token.CONSTRAINT):
		old, newName, err := p.parseRenamePair("constraint name")
		if err != nil {
			return nil, err
		}
		return &ast.RenameConstraintAction{Position: pos, Old: old, New: newName}, nil

	case p.currentIs(token.IDENT) && p.peekIs(1, token.TO):
		old, newName, err := p.parseRenamePair("column name")
		if err != nil {
			return nil, err
		}
		return &ast.RenameColumnAction{Position: pos, Old: old, New: newName}, nil
	}

	p.match(token.TO)
	newName, err := p.expectIdent("new table name")
	if err != nil {
		return nil, err
	}
	return &ast.RenameTableAction{Position: pos, New: newName}, nil
}

// parseRenamePair parses old TO new.
func (p *Parser) parseRenamePair(what string) (string, string, error) {
	old, err := p.expectIdent(what)
	if err != nil {
		return "", "", err
	}
	if _, err := p.expect(token.TO); err != nil {
		return "", "", err
	}
	newName, err := p.expectIdent("new " + what)
	if err != nil {
		return "", "", err
	}
	return old, newName, nil
}
