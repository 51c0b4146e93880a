package parser

import (
	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/token"
)

var dropObjects = map[token.Token]ast.ObjectType{
	token.TABLE:     ast.ObjectTable,
	token.VIEW:      ast.ObjectView,
	token.INDEX:     ast.ObjectIndex,
	token.SCHEMA:    ast.ObjectSchema,
	token.TRIGGER:   ast.ObjectTrigger,
	token.SEQUENCE:  ast.ObjectSequence,
	token.COLLATION: ast.ObjectCollation,
	token.DATABASE:  ast.ObjectDatabase,
	token.ROLE:      ast.ObjectRole,
	token.USER:      ast.ObjectUser,
	token.TYPE:      ast.ObjectUserType,
}

// parseDrop parses DROP object [CONCURRENTLY] [IF EXISTS] name {, name}
// [CASCADE | RESTRICT].
func (p *Parser) parseDrop() (*ast.DropStmt, error) {
	start := p.nextToken() // skip DROP
	stmt := &ast.DropStmt{Position: start.Pos}

	obj := p.nextToken()
	kind, ok := dropObjects[obj.Token]
	if !ok {
		return nil, p.errorf(obj, "unknown object type %s in DROP", describe(obj))
	}
	stmt.Object = kind

	// Indexes are always dropped concurrently.
	stmt.Concurrently = p.match(token.CONCURRENTLY) || kind == ast.ObjectIndex

	if p.match(token.IF) {
		if _, err := p.expect(token.EXISTS); err != nil {
			return nil, err
		}
		stmt.IfExists = true
	}

	var err error
	if stmt.Names, err = p.parseIdentList("object name"); err != nil {
		return nil, err
	}

	if p.match(token.CASCADE) {
		stmt.Cascade = true
	} else if p.match(token.RESTRICT) {
		stmt.Restrict = true
	}
	return stmt, nil
}
