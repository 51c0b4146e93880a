// Package parser implements a parser for the fluxo SQL dialect.
package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/lexer"
	"github.com/sqlc-dev/fluxo/token"
)

// Error is a syntax error located at the offending token.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Msg, e.Pos.Line, e.Pos.Column)
}

// Parser parses fluxo SQL statements. The whole input is tokenized up
// front so that the grammar can look ahead any number of tokens.
type Parser struct {
	items []lexer.Item
	pos   int
}

// New creates a new Parser from an io.Reader.
func New(r io.Reader) *Parser {
	return &Parser{items: lexer.Tokenize(r)}
}

// current returns the token under the cursor.
func (p *Parser) current() lexer.Item {
	return p.peek(0)
}

// peek returns the token offset positions past the cursor. Reading past
// the end yields the EOF item.
func (p *Parser) peek(offset int) lexer.Item {
	i := p.pos + offset
	if i >= len(p.items) {
		return p.items[len(p.items)-1]
	}
	return p.items[i]
}

// nextToken consumes the current token and returns it.
func (p *Parser) nextToken() lexer.Item {
	item := p.current()
	if p.pos < len(p.items)-1 {
		p.pos++
	}
	return item
}

func (p *Parser) currentIs(t token.Token) bool {
	return p.current().Token == t
}

func (p *Parser) peekIs(offset int, t token.Token) bool {
	return p.peek(offset).Token == t
}

// currentIsWord reports whether the current token is the identifier
// word, compared case-insensitively. It is used for words that only
// have meaning in one position, like MATCH or VERSION.
func (p *Parser) currentIsWord(word string) bool {
	cur := p.current()
	return cur.Token == token.IDENT && strings.EqualFold(cur.Value, word)
}

// match consumes the current token if it is t.
func (p *Parser) match(t token.Token) bool {
	if p.currentIs(t) {
		p.nextToken()
		return true
	}
	return false
}

// matchWord consumes the current token if it is the identifier word.
func (p *Parser) matchWord(word string) bool {
	if p.currentIsWord(word) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes a token of kind t or fails with a located error.
func (p *Parser) expect(t token.Token) (lexer.Item, error) {
	if p.currentIs(t) {
		return p.nextToken(), nil
	}
	return lexer.Item{}, p.unexpected(tokenName(t))
}

// expectIdent consumes an identifier, describing it as what on failure.
func (p *Parser) expectIdent(what string) (string, error) {
	if p.currentIs(token.IDENT) {
		return p.nextToken().Value, nil
	}
	return "", p.unexpected(what)
}

// expectString consumes a string literal.
func (p *Parser) expectString(what string) (string, error) {
	if p.currentIs(token.STRING) {
		return p.nextToken().Value, nil
	}
	return "", p.unexpected(what)
}

// expectIfNotExists consumes NOT EXISTS after an already matched IF.
func (p *Parser) expectIfNotExists() error {
	if _, err := p.expect(token.NOT); err != nil {
		return err
	}
	_, err := p.expect(token.EXISTS)
	return err
}

func (p *Parser) errorf(item lexer.Item, format string, args ...interface{}) error {
	return &Error{Pos: item.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) unexpected(want string) error {
	return p.errorf(p.current(), "expected %s, got %s", want, describe(p.current()))
}

func tokenName(t token.Token) string {
	if t.IsKeyword() {
		return t.String()
	}
	switch t {
	case token.IDENT:
		return "identifier"
	case token.NUMBER:
		return "number"
	case token.STRING:
		return "string"
	case token.EOF:
		return "end of input"
	}
	return "'" + t.String() + "'"
}

func describe(item lexer.Item) string {
	switch item.Token {
	case token.IDENT:
		return fmt.Sprintf("identifier %q", item.Value)
	case token.NUMBER:
		return "number " + item.Value
	case token.STRING:
		return fmt.Sprintf("string %q", item.Value)
	case token.ILLEGAL:
		return fmt.Sprintf("illegal character %q", item.Value)
	}
	return tokenName(item.Token)
}

// Parse parses SQL statements from the input. A syntax error aborts the
// whole parse: no statements are returned alongside an error.
func Parse(ctx context.Context, r io.Reader) ([]ast.Statement, error) {
	p := New(r)
	return p.ParseStatements(ctx)
}

// ParseString parses SQL statements from a string.
func ParseString(ctx context.Context, sql string) ([]ast.Statement, error) {
	return Parse(ctx, strings.NewReader(sql))
}

// ParseFile parses SQL statements from the file at path.
func ParseFile(ctx context.Context, path string) ([]ast.Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(ctx, f)
}

// ParseStatements parses multiple SQL statements. Cancellation is
// checked between statements, never inside one.
func (p *Parser) ParseStatements(ctx context.Context) ([]ast.Statement, error) {
	var statements []ast.Statement

	for {
		// Skip semicolons between statements
		for p.match(token.SEMICOLON) {
		}
		if p.currentIs(token.EOF) {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	return statements, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current().Token {
	case token.SELECT:
		return p.parseSelect()
	case token.INSERT:
		return p.parseInsert()
	case token.CREATE:
		return p.parseCreate()
	case token.DROP:
		return p.parseDrop()
	case token.ALTER:
		return p.parseAlter()
	default:
		return nil, p.errorf(p.current(), "unexpected %s at start of statement", describe(p.current()))
	}
}

// parseIdentList parses ident {, ident}.
func (p *Parser) parseIdentList(what string) ([]string, error) {
	var names []string
	for {
		name, err := p.expectIdent(what)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if !p.match(token.COMMA) {
			return names, nil
		}
	}
}

// parseParenIdentList parses ( ident {, ident} ).
func (p *Parser) parseParenIdentList(what string) ([]string, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	names, err := p.parseIdentList(what)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return names, nil
}

// parseInt parses an unsigned integer literal.
func (p *Parser) parseInt() (int64, error) {
	item, err := p.expect(token.NUMBER)
	if err != nil {
		return 0, err
	}
	return p.integerValue(item, item.Value)
}

// parseSignedInt parses an integer literal with an optional leading sign.
func (p *Parser) parseSignedInt() (int64, error) {
	sign := ""
	if p.match(token.MINUS) {
		sign = "-"
	} else {
		p.match(token.PLUS)
	}
	item, err := p.expect(token.NUMBER)
	if err != nil {
		return 0, err
	}
	return p.integerValue(item, sign+item.Value)
}

func (p *Parser) integerValue(item lexer.Item, text string) (int64, error) {
	if strings.Contains(text, ".") {
		return 0, p.errorf(item, "expected integer, got number %s", item.Value)
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, p.errorf(item, "integer %s out of range", text)
	}
	return v, nil
}

// parseConnectionLimit parses a signed connection limit. Negative values
// other than -1 are rejected.
func (p *Parser) parseConnectionLimit() (int64, error) {
	start := p.current()
	if start.Token == token.MINUS || start.Token == token.PLUS {
		start = p.peek(1)
	}
	v, err := p.parseSignedInt()
	if err != nil {
		return 0, err
	}
	if v < ast.UnlimitedConnections {
		return 0, p.errorf(start, "connection limit must be -1 or non-negative, got %d", v)
	}
	return v, nil
}

// parseBool parses TRUE or FALSE.
func (p *Parser) parseBool() (bool, error) {
	switch {
	case p.match(token.TRUE):
		return true, nil
	case p.match(token.FALSE):
		return false, nil
	}
	return false, p.unexpected("TRUE or FALSE")
}

var dataTypes = map[string]ast.DataType{
	"INT":       ast.TypeInteger,
	"INTEGER":   ast.TypeInteger,
	"BIGINT":    ast.TypeBigint,
	"DOUBLE":    ast.TypeDouble,
	"FLOAT":     ast.TypeDouble,
	"REAL":      ast.TypeDouble,
	"TEXT":      ast.TypeText,
	"VARCHAR":   ast.TypeVarchar,
	"BOOLEAN":   ast.TypeBoolean,
	"BOOL":      ast.TypeBoolean,
	"DATE":      ast.TypeDate,
	"TIMESTAMP": ast.TypeTimestamp,
}

// parseDataType parses a type name.
func (p *Parser) parseDataType() (ast.DataType, error) {
	cur := p.current()
	if cur.Token != token.IDENT {
		return "", p.unexpected("data type")
	}
	dt, ok := dataTypes[strings.ToUpper(cur.Value)]
	if !ok {
		return "", p.errorf(cur, "unknown data type %q", cur.Value)
	}
	p.nextToken()
	return dt, nil
}

// parseColumnType parses a type name with an optional (length).
func (p *Parser) parseColumnType() (ast.DataType, *int64, error) {
	dt, err := p.parseDataType()
	if err != nil {
		return "", nil, err
	}
	if !p.match(token.LPAREN) {
		return dt, nil, nil
	}
	n, err := p.parseInt()
	if err != nil {
		return "", nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return "", nil, err
	}
	return dt, &n, nil
}
