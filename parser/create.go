package parser

import (
	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/lexer"
	"github.com/sqlc-dev/fluxo/token"
)

// createModifiers may appear between CREATE and the object keyword.
var createModifiers = map[token.Token]bool{
	token.TEMPORARY:    true,
	token.UNIQUE:       true,
	token.OR:           true,
	token.REPLACE:      true,
	token.CONCURRENTLY: true,
	token.RECURSIVE:    true,
}

// objectKeyword returns the token after any CREATE modifiers without
// consuming anything.
func (p *Parser) objectKeyword() lexer.Item {
	offset := 0
	for createModifiers[p.peek(offset).Token] {
		offset++
	}
	return p.peek(offset)
}

func (p *Parser) parseCreate() (ast.CreateStatement, error) {
	pos := p.nextToken().Pos // skip CREATE

	obj := p.objectKeyword()
	switch obj.Token {
	case token.TABLE:
		return p.parseCreateTable(pos)
	case token.SEQUENCE:
		return p.parseCreateSequence(pos)
	case token.INDEX:
		return p.parseCreateIndex(pos)
	case token.TRIGGER:
		return p.parseCreateTrigger(pos)
	case token.SCHEMA:
		return p.parseCreateSchema(pos)
	case token.COLLATION:
		return p.parseCreateCollation(pos)
	case token.DATABASE:
		return p.parseCreateDatabase(pos)
	case token.ROLE, token.USER:
		return p.parseCreateRole(pos)
	case token.VIEW:
		return p.parseCreateView(pos)
	default:
		return nil, p.errorf(obj, "unknown object type %s in CREATE", describe(obj))
	}
}

// parseOrReplace consumes an optional OR REPLACE.
func (p *Parser) parseOrReplace() (bool, error) {
	if !p.match(token.OR) {
		return false, nil
	}
	if _, err := p.expect(token.REPLACE); err != nil {
		return false, err
	}
	return true, nil
}

// parseIfNotExists consumes an optional IF NOT EXISTS.
func (p *Parser) parseIfNotExists() (bool, error) {
	if !p.match(token.IF) {
		return false, nil
	}
	if err := p.expectIfNotExists(); err != nil {
		return false, err
	}
	return true, nil
}

// -----------------------------------------------------------------------------
// CREATE TABLE

func (p *Parser) parseCreateTable(pos token.Position) (*ast.CreateTableStmt, error) {
	stmt := &ast.CreateTableStmt{Position: pos}
	stmt.Temporary = p.match(token.TEMPORARY)
	if _, err := p.expect(token.TABLE); err != nil {
		return nil, err
	}

	var err error
	if stmt.IfNotExists, err = p.parseIfNotExists(); err != nil {
		return nil, err
	}
	if stmt.Name, err = p.expectIdent("table name"); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	for {
		if isConstraintStart(p.current().Token) {
			c, err := p.parseTableConstraint()
			if err != nil {
				return nil, err
			}
			stmt.Constraints = append(stmt.Constraints, c)
		} else {
			col, err := p.parseColumnDef(tableElementEnd)
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	if p.match(token.TABLESPACE) {
		name, err := p.expectIdent("tablespace name")
		if err != nil {
			return nil, err
		}
		stmt.Tablespace = &name
	}
	return stmt, nil
}

func isConstraintStart(t token.Token) bool {
	switch t {
	case token.CONSTRAINT, token.PRIMARY, token.FOREIGN, token.CHECK, token.UNIQUE:
		return true
	}
	return false
}

// tableElementEnd ends a column definition inside CREATE TABLE.
func tableElementEnd(t token.Token) bool {
	return t == token.COMMA || t == token.RPAREN
}

// parseColumnDef parses name type [(len)] {constraint}. The constraint
// run stops at the first token for which end reports true.
func (p *Parser) parseColumnDef(end func(token.Token) bool) (*ast.ColumnDef, error) {
	pos := p.current().Pos
	name, err := p.expectIdent("column name")
	if err != nil {
		return nil, err
	}
	col := &ast.ColumnDef{Position: pos, Name: name}
	if col.Type, col.Length, err = p.parseColumnType(); err != nil {
		return nil, err
	}

	for !end(p.current().Token) {
		switch cur := p.nextToken(); cur.Token {
		case token.NOT:
			if _, err := p.expect(token.NULL); err != nil {
				return nil, err
			}
			col.NotNull = true
		case token.NULL:
			col.NotNull = false
		case token.UNIQUE:
			col.Unique = true
		case token.PRIMARY:
			if _, err := p.expect(token.KEY); err != nil {
				return nil, err
			}
			col.PrimaryKey = true
		case token.DEFAULT:
			if col.Default, err = p.parseExpression(LOWEST); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf(cur, "unknown column constraint %s", describe(cur))
		}
	}
	return col, nil
}

// parseTableConstraint parses [CONSTRAINT name] followed by a constraint body.
func (p *Parser) parseTableConstraint() (*ast.TableConstraint, error) {
	pos := p.current().Pos
	var name *string
	if p.match(token.CONSTRAINT) {
		n, err := p.expectIdent("constraint name")
		if err != nil {
			return nil, err
		}
		name = &n
	}
	c, err := p.parseConstraintBody(name)
	if err != nil {
		return nil, err
	}
	c.Position = pos
	return c, nil
}

// parseConstraintBody parses PRIMARY KEY (cols) | UNIQUE (cols) |
// FOREIGN KEY (cols) REFERENCES t (cols) [options] | CHECK (expr).
func (p *Parser) parseConstraintBody(name *string) (*ast.TableConstraint, error) {
	c := &ast.TableConstraint{
		Position: p.current().Pos,
		Name:     name,
		Match:    ast.MatchSimple,
		OnUpdate: ast.ActionNoAction,
		OnDelete: ast.ActionNoAction,
	}

	var err error
	switch cur := p.nextToken(); cur.Token {
	case token.PRIMARY:
		if _, err := p.expect(token.KEY); err != nil {
			return nil, err
		}
		c.Kind = ast.ConstraintPrimaryKey
		if c.Columns, err = p.parseParenIdentList("column name"); err != nil {
			return nil, err
		}
	case token.UNIQUE:
		c.Kind = ast.ConstraintUnique
		if c.Columns, err = p.parseParenIdentList("column name"); err != nil {
			return nil, err
		}
	case token.FOREIGN:
		if _, err := p.expect(token.KEY); err != nil {
			return nil, err
		}
		c.Kind = ast.ConstraintForeignKey
		if c.Columns, err = p.parseParenIdentList("column name"); err != nil {
			return nil, err
		}
		if err := p.parseReferences(c); err != nil {
			return nil, err
		}
	case token.CHECK:
		c.Kind = ast.ConstraintCheck
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		if c.Check, err = p.parseExpression(LOWEST); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorf(cur, "unknown table constraint %s", describe(cur))
	}
	return c, nil
}

// parseReferences parses REFERENCES table (cols) followed by any MATCH,
// ON UPDATE and ON DELETE clauses.
func (p *Parser) parseReferences(c *ast.TableConstraint) error {
	if _, err := p.expect(token.REFERENCES); err != nil {
		return err
	}
	table, err := p.expectIdent("referenced table name")
	if err != nil {
		return err
	}
	c.RefTable = &table
	if c.RefColumns, err = p.parseParenIdentList("referenced column name"); err != nil {
		return err
	}

	for {
		switch {
		case p.matchWord("MATCH"):
			switch {
			case p.matchWord("FULL"):
				c.Match = ast.MatchFull
			case p.matchWord("PARTIAL"):
				c.Match = ast.MatchPartial
			case p.matchWord("SIMPLE"):
				c.Match = ast.MatchSimple
			default:
				return p.unexpected("FULL, PARTIAL or SIMPLE")
			}
		case p.match(token.ON):
			target := &c.OnDelete
			if p.match(token.UPDATE) {
				target = &c.OnUpdate
			} else if _, err := p.expect(token.DELETE); err != nil {
				return err
			}
			action, err := p.parseRefAction()
			if err != nil {
				return err
			}
			*target = action
		default:
			return nil
		}
	}
}

func (p *Parser) parseRefAction() (ast.RefAction, error) {
	switch {
	case p.match(token.NO):
		if !p.matchWord("ACTION") {
			return 0, p.unexpected("ACTION")
		}
		return ast.ActionNoAction, nil
	case p.match(token.RESTRICT):
		return ast.ActionRestrict, nil
	case p.match(token.CASCADE):
		return ast.ActionCascade, nil
	case p.match(token.SET):
		if p.match(token.NULL) {
			return ast.ActionSetNull, nil
		}
		if p.match(token.DEFAULT) {
			return ast.ActionSetDefault, nil
		}
		return 0, p.unexpected("NULL or DEFAULT")
	}
	return 0, p.unexpected("referential action")
}

// -----------------------------------------------------------------------------
// CREATE SEQUENCE

// sequenceEnd reports whether t ends a sequence option run. A nested
// CREATE ends it inside CREATE SCHEMA.
func sequenceEnd(t token.Token) bool {
	return t == token.SEMICOLON || t == token.EOF || t == token.CREATE
}

func (p *Parser) parseCreateSequence(pos token.Position) (*ast.CreateSequenceStmt, error) {
	stmt := &ast.CreateSequenceStmt{Position: pos, Start: 1, Increment: 1}
	stmt.Temporary = p.match(token.TEMPORARY)
	if _, err := p.expect(token.SEQUENCE); err != nil {
		return nil, err
	}

	var err error
	if stmt.IfNotExists, err = p.parseIfNotExists(); err != nil {
		return nil, err
	}
	if stmt.Name, err = p.expectIdent("sequence name"); err != nil {
		return nil, err
	}

	for !sequenceEnd(p.current().Token) {
		switch cur := p.nextToken(); cur.Token {
		case token.INCREMENT:
			if _, err := p.expect(token.BY); err != nil {
				return nil, err
			}
			if stmt.Increment, err = p.parseSignedInt(); err != nil {
				return nil, err
			}
		case token.MINVALUE:
			v, err := p.parseSignedInt()
			if err != nil {
				return nil, err
			}
			stmt.MinValue = &v
		case token.MAXVALUE:
			v, err := p.parseSignedInt()
			if err != nil {
				return nil, err
			}
			stmt.MaxValue = &v
		case token.CYCLE:
			stmt.Cycle = true
		case token.START:
			if _, err := p.expect(token.WITH); err != nil {
				return nil, err
			}
			if stmt.Start, err = p.parseSignedInt(); err != nil {
				return nil, err
			}
		case token.CACHE:
			v, err := p.parseInt()
			if err != nil {
				return nil, err
			}
			stmt.Cache = &v
		case token.NO:
			switch {
			case p.match(token.CYCLE):
				stmt.Cycle = false
			case p.match(token.MINVALUE):
				stmt.MinValue = nil
			case p.match(token.MAXVALUE):
				stmt.MaxValue = nil
			default:
				return nil, p.unexpected("CYCLE, MINVALUE or MAXVALUE")
			}
		case token.OWNED:
			if _, err := p.expect(token.BY); err != nil {
				return nil, err
			}
			if p.match(token.NONE) {
				stmt.OwnedBy = nil
				continue
			}
			table, err := p.expectIdent("table name")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.DOT); err != nil {
				return nil, err
			}
			column, err := p.expectIdent("column name")
			if err != nil {
				return nil, err
			}
			stmt.OwnedBy = &ast.SequenceOwner{Table: table, Column: column}
		default:
			return nil, p.errorf(cur, "unknown option %s in CREATE SEQUENCE", describe(cur))
		}
	}
	return stmt, nil
}

// -----------------------------------------------------------------------------
// CREATE INDEX

func (p *Parser) parseCreateIndex(pos token.Position) (*ast.CreateIndexStmt, error) {
	stmt := &ast.CreateIndexStmt{Position: pos}
	stmt.Unique = p.match(token.UNIQUE)
	if _, err := p.expect(token.INDEX); err != nil {
		return nil, err
	}
	stmt.Concurrently = p.match(token.CONCURRENTLY)

	var err error
	if stmt.IfNotExists, err = p.parseIfNotExists(); err != nil {
		return nil, err
	}
	if stmt.Name, err = p.expectIdent("index name"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ON); err != nil {
		return nil, err
	}
	stmt.Only = p.match(token.ONLY)
	if stmt.Table, err = p.expectIdent("table name"); err != nil {
		return nil, err
	}
	if p.match(token.USING) {
		method, err := p.expectIdent("index method")
		if err != nil {
			return nil, err
		}
		stmt.Method = &method
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	for {
		elem, err := p.parseIndexElem()
		if err != nil {
			return nil, err
		}
		stmt.Params = append(stmt.Params, elem)
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	if p.match(token.WHERE) {
		if stmt.Where, err = p.parseExpression(LOWEST); err != nil {
			return nil, err
		}
	}
	if p.match(token.TABLESPACE) {
		name, err := p.expectIdent("tablespace name")
		if err != nil {
			return nil, err
		}
		stmt.Tablespace = &name
	}
	return stmt, nil
}

// parseIndexElem parses expr [COLLATE name] [opclass] [ASC|DESC]
// [NULLS FIRST|LAST]. A plain column reference is stored by name.
func (p *Parser) parseIndexElem() (*ast.IndexElem, error) {
	elem := &ast.IndexElem{Position: p.current().Pos, Direction: ast.Asc}

	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if ref, ok := expr.(*ast.ColumnRef); ok && ref.Table == nil {
		name := ref.Name
		elem.Column = &name
	} else {
		elem.Expr = expr
	}

	if p.match(token.COLLATE) {
		name, err := p.expectIdent("collation name")
		if err != nil {
			return nil, err
		}
		elem.Collation = &name
	}
	if p.currentIs(token.IDENT) {
		opclass := p.nextToken().Value
		elem.OpClass = &opclass
	}
	if p.match(token.DESC) {
		elem.Direction = ast.Desc
	} else {
		p.match(token.ASC)
	}
	if p.match(token.NULLS) {
		var first bool
		switch {
		case p.match(token.FIRST):
			first = true
		case p.match(token.LAST):
			first = false
		default:
			return nil, p.unexpected("FIRST or LAST")
		}
		elem.NullsFirst = &first
	}
	return elem, nil
}

// -----------------------------------------------------------------------------
// CREATE TRIGGER

func (p *Parser) parseCreateTrigger(pos token.Position) (*ast.CreateTriggerStmt, error) {
	stmt := &ast.CreateTriggerStmt{Position: pos, ForEach: ast.ForEachStatement}

	var err error
	if stmt.OrReplace, err = p.parseOrReplace(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TRIGGER); err != nil {
		return nil, err
	}
	if stmt.Name, err = p.expectIdent("trigger name"); err != nil {
		return nil, err
	}

	switch {
	case p.match(token.BEFORE):
		stmt.Timing = ast.TimingBefore
	case p.match(token.AFTER):
		stmt.Timing = ast.TimingAfter
	case p.match(token.INSTEAD):
		if _, err := p.expect(token.OF); err != nil {
			return nil, err
		}
		stmt.Timing = ast.TimingInsteadOf
	default:
		return nil, p.unexpected("BEFORE, AFTER or INSTEAD OF")
	}

	for {
		switch {
		case p.match(token.INSERT):
			stmt.Events = append(stmt.Events, ast.EventInsert)
		case p.match(token.UPDATE):
			stmt.Events = append(stmt.Events, ast.EventUpdate)
			if p.match(token.OF) {
				cols, err := p.parseIdentList("column name")
				if err != nil {
					return nil, err
				}
				stmt.UpdateOf = append(stmt.UpdateOf, cols...)
			}
		case p.match(token.DELETE):
			stmt.Events = append(stmt.Events, ast.EventDelete)
		case p.match(token.TRUNCATE):
			stmt.Events = append(stmt.Events, ast.EventTruncate)
		default:
			return nil, p.unexpected("INSERT, UPDATE, DELETE or TRUNCATE")
		}
		if !p.match(token.OR) {
			break
		}
	}

	if p.match(token.FOR) {
		p.match(token.EACH)
		switch {
		case p.match(token.ROW):
			stmt.ForEach = ast.ForEachRow
		case p.match(token.STATEMENT):
			stmt.ForEach = ast.ForEachStatement
		default:
			return nil, p.unexpected("ROW or STATEMENT")
		}
	}

	if p.match(token.WHEN) {
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		if stmt.When, err = p.parseExpression(LOWEST); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.ON); err != nil {
		return nil, err
	}
	if stmt.Table, err = p.expectIdent("table name"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EXECUTE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FUNCTION); err != nil {
		return nil, err
	}
	if stmt.Function, err = p.expectIdent("function name"); err != nil {
		return nil, err
	}
	if p.match(token.LPAREN) {
		if !p.currentIs(token.RPAREN) {
			if stmt.Args, err = p.parseExpressionList(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// -----------------------------------------------------------------------------
// CREATE SCHEMA

func (p *Parser) parseCreateSchema(pos token.Position) (*ast.CreateSchemaStmt, error) {
	stmt := &ast.CreateSchemaStmt{Position: pos}
	if _, err := p.expect(token.SCHEMA); err != nil {
		return nil, err
	}

	var err error
	if stmt.IfNotExists, err = p.parseIfNotExists(); err != nil {
		return nil, err
	}
	if stmt.Name, err = p.expectIdent("schema name"); err != nil {
		return nil, err
	}
	if p.match(token.AUTHORIZATION) {
		owner, err := p.expectIdent("role name")
		if err != nil {
			return nil, err
		}
		stmt.Authorization = &owner
	}

	for !p.currentIs(token.SEMICOLON) && !p.currentIs(token.EOF) {
		// The leading CREATE of an element is optional.
		pos := p.current().Pos
		p.match(token.CREATE)
		elem, err := p.parseSchemaElement(pos)
		if err != nil {
			return nil, err
		}
		stmt.Elements = append(stmt.Elements, elem)
	}
	return stmt, nil
}

func (p *Parser) parseSchemaElement(pos token.Position) (ast.SchemaElement, error) {
	obj := p.objectKeyword()
	switch obj.Token {
	case token.TABLE:
		return p.parseCreateTable(pos)
	case token.INDEX:
		return p.parseCreateIndex(pos)
	case token.VIEW:
		return p.parseCreateView(pos)
	case token.SEQUENCE:
		return p.parseCreateSequence(pos)
	case token.TRIGGER:
		return p.parseCreateTrigger(pos)
	default:
		return nil, p.errorf(obj, "unknown schema element %s in CREATE SCHEMA", describe(obj))
	}
}

// -----------------------------------------------------------------------------
// CREATE COLLATION

func (p *Parser) parseCreateCollation(pos token.Position) (*ast.CreateCollationStmt, error) {
	stmt := &ast.CreateCollationStmt{Position: pos, Deterministic: true}
	if _, err := p.expect(token.COLLATION); err != nil {
		return nil, err
	}

	var err error
	if stmt.IfNotExists, err = p.parseIfNotExists(); err != nil {
		return nil, err
	}
	if stmt.Name, err = p.expectIdent("collation name"); err != nil {
		return nil, err
	}

	if p.match(token.FROM) {
		from, err := p.expectIdent("collation name")
		if err != nil {
			return nil, err
		}
		stmt.From = &from
		return stmt, nil
	}

	if !p.currentIs(token.LPAREN) {
		return nil, p.unexpected("FROM or '('")
	}
	p.nextToken()
	for {
		opt := p.current()
		switch {
		case p.match(token.LOCALE):
			v, err := p.parseOptionString()
			if err != nil {
				return nil, err
			}
			stmt.Locale = &v
		case p.match(token.DETERMINISTIC):
			if _, err := p.expect(token.EQ); err != nil {
				return nil, err
			}
			if stmt.Deterministic, err = p.parseBool(); err != nil {
				return nil, err
			}
		case p.match(token.PROVIDER):
			if _, err := p.expect(token.EQ); err != nil {
				return nil, err
			}
			if !p.currentIs(token.IDENT) && !p.currentIs(token.STRING) {
				return nil, p.unexpected("provider name")
			}
			v := p.nextToken().Value
			stmt.Provider = &v
		case p.match(token.RULES):
			v, err := p.parseOptionString()
			if err != nil {
				return nil, err
			}
			stmt.Rules = &v
		case p.matchWord("VERSION"):
			v, err := p.parseOptionString()
			if err != nil {
				return nil, err
			}
			stmt.Version = &v
		default:
			return nil, p.errorf(opt, "unknown option %s in CREATE COLLATION", describe(opt))
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseOptionString parses = 'value'.
func (p *Parser) parseOptionString() (string, error) {
	if _, err := p.expect(token.EQ); err != nil {
		return "", err
	}
	return p.expectString("string")
}

// -----------------------------------------------------------------------------
// CREATE DATABASE

func (p *Parser) parseCreateDatabase(pos token.Position) (*ast.CreateDatabaseStmt, error) {
	stmt := &ast.CreateDatabaseStmt{
		Position:         pos,
		Owner:            ast.DefaultDatabaseOwner,
		Encoding:         ast.DefaultDatabaseEncoding,
		Tablespace:       ast.DefaultDatabaseTablespace,
		AllowConnections: true,
		ConnectionLimit:  ast.UnlimitedConnections,
	}
	if _, err := p.expect(token.DATABASE); err != nil {
		return nil, err
	}

	var err error
	if stmt.IfNotExists, err = p.parseIfNotExists(); err != nil {
		return nil, err
	}
	if stmt.Name, err = p.expectIdent("database name"); err != nil {
		return nil, err
	}

	if p.match(token.WITH) {
		if !p.currentIs(token.LPAREN) {
			return nil, p.unexpected("'('")
		}
	}
	if !p.match(token.LPAREN) {
		return stmt, nil
	}
	for {
		opt := p.current()
		switch {
		case p.match(token.OWNER):
			if _, err := p.expect(token.EQ); err != nil {
				return nil, err
			}
			if stmt.Owner, err = p.expectIdent("owner name"); err != nil {
				return nil, err
			}
		case p.match(token.ENCODING):
			if stmt.Encoding, err = p.parseOptionString(); err != nil {
				return nil, err
			}
		case p.match(token.TABLESPACE):
			if _, err := p.expect(token.EQ); err != nil {
				return nil, err
			}
			if stmt.Tablespace, err = p.expectIdent("tablespace name"); err != nil {
				return nil, err
			}
		case p.match(token.ALLOW_CONNECTIONS):
			if _, err := p.expect(token.EQ); err != nil {
				return nil, err
			}
			if stmt.AllowConnections, err = p.parseBool(); err != nil {
				return nil, err
			}
		case p.match(token.CONNECTION_LIMIT), p.match(token.CONNECTION):
			if opt.Token == token.CONNECTION {
				if _, err := p.expect(token.LIMIT); err != nil {
					return nil, err
				}
			}
			if _, err := p.expect(token.EQ); err != nil {
				return nil, err
			}
			if stmt.ConnectionLimit, err = p.parseConnectionLimit(); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf(opt, "unknown option %s in CREATE DATABASE", describe(opt))
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return stmt, nil
}

// -----------------------------------------------------------------------------
// CREATE ROLE / CREATE USER

func (p *Parser) parseCreateRole(pos token.Position) (*ast.CreateRoleStmt, error) {
	stmt := &ast.CreateRoleStmt{Position: pos, Inherit: true}
	switch {
	case p.match(token.USER):
		stmt.IsUser = true
		stmt.Login = true
	case !p.match(token.ROLE):
		return nil, p.unexpected("ROLE or USER")
	}

	var err error
	if stmt.IfNotExists, err = p.parseIfNotExists(); err != nil {
		return nil, err
	}
	if stmt.Name, err = p.expectIdent("role name"); err != nil {
		return nil, err
	}
	p.match(token.WITH)

	for !p.currentIs(token.SEMICOLON) && !p.currentIs(token.EOF) {
		switch cur := p.nextToken(); cur.Token {
		case token.LOGIN:
			stmt.Login = true
		case token.NOLOGIN:
			stmt.Login = false
		case token.SUPERUSER:
			stmt.Superuser = true
		case token.NOSUPERUSER:
			stmt.Superuser = false
		case token.CREATEDB:
			stmt.CreateDB = true
		case token.NOCREATEDB:
			stmt.CreateDB = false
		case token.CREATEROLE:
			stmt.CreateRole = true
		case token.NOCREATEROLE:
			stmt.CreateRole = false
		case token.INHERIT:
			stmt.Inherit = true
		case token.NOINHERIT:
			stmt.Inherit = false
		case token.PASSWORD:
			if p.match(token.NULL) {
				stmt.Password = nil
				continue
			}
			pw, err := p.expectString("password string or NULL")
			if err != nil {
				return nil, err
			}
			stmt.Password = &pw
		case token.CONNECTION:
			if _, err := p.expect(token.LIMIT); err != nil {
				return nil, err
			}
			limit, err := p.parseConnectionLimit()
			if err != nil {
				return nil, err
			}
			stmt.ConnectionLimit = &limit
		case token.VALID:
			if _, err := p.expect(token.UNTIL); err != nil {
				return nil, err
			}
			until, err := p.expectString("timestamp string")
			if err != nil {
				return nil, err
			}
			stmt.ValidUntil = &until
		default:
			return nil, p.errorf(cur, "unknown option %s in CREATE ROLE", describe(cur))
		}
	}
	return stmt, nil
}

// -----------------------------------------------------------------------------
// CREATE VIEW

func (p *Parser) parseCreateView(pos token.Position) (*ast.CreateViewStmt, error) {
	stmt := &ast.CreateViewStmt{Position: pos}

	var err error
	if stmt.OrReplace, err = p.parseOrReplace(); err != nil {
		return nil, err
	}
	stmt.Temporary = p.match(token.TEMPORARY)
	stmt.Recursive = p.match(token.RECURSIVE)
	if _, err := p.expect(token.VIEW); err != nil {
		return nil, err
	}
	if stmt.Name, err = p.expectIdent("view name"); err != nil {
		return nil, err
	}
	if p.currentIs(token.LPAREN) {
		if stmt.Columns, err = p.parseParenIdentList("column name"); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.AS); err != nil {
		return nil, err
	}
	if stmt.Query, err = p.parseSelect(); err != nil {
		return nil, err
	}
	return stmt, nil
}
