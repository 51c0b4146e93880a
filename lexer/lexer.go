// Package lexer implements a lexer for the fluxo SQL dialect.
package lexer

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sqlc-dev/fluxo/token"
)

// Lexer tokenizes fluxo SQL input. A Lexer is single use: it reads its
// input once, front to back.
type Lexer struct {
	reader *bufio.Reader
	ch     rune // current character
	pos    token.Position
	next   int // byte offset of the rune after ch
	eof    bool
}

// Item represents a lexical token with its value and position.
type Item struct {
	Token token.Token
	Value string
	Pos   token.Position
}

// New creates a new Lexer from an io.Reader.
func New(r io.Reader) *Lexer {
	l := &Lexer{
		reader: bufio.NewReader(r),
		pos:    token.Position{Offset: 0, Line: 1, Column: 0},
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.eof {
		l.ch = 0
		return
	}

	r, size, err := l.reader.ReadRune()
	if l.ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	l.pos.Offset = l.next
	if err != nil {
		// The end marker sits one column past the last character.
		l.ch = 0
		l.eof = true
		return
	}
	l.next += size
	l.ch = r
}

func (l *Lexer) peekChar() rune {
	if l.eof {
		return 0
	}
	bytes, err := l.reader.Peek(1)
	if err != nil || len(bytes) == 0 {
		return 0
	}
	r, _ := utf8.DecodeRune(bytes)
	return r
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func (l *Lexer) skipWhitespace() {
	for !l.eof && isSpace(l.ch) {
		l.readChar()
	}
}

// NextToken returns the next token from the input. Once the input is
// exhausted every call returns an EOF item.
func (l *Lexer) NextToken() Item {
	l.skipWhitespace()

	pos := l.pos

	if l.eof {
		return Item{Token: token.EOF, Value: "", Pos: pos}
	}

	switch l.ch {
	case '+':
		l.readChar()
		return Item{Token: token.PLUS, Value: "+", Pos: pos}
	case '-':
		l.readChar()
		return Item{Token: token.MINUS, Value: "-", Pos: pos}
	case '*':
		l.readChar()
		return Item{Token: token.ASTERISK, Value: "*", Pos: pos}
	case '/':
		l.readChar()
		return Item{Token: token.SLASH, Value: "/", Pos: pos}
	case '%':
		l.readChar()
		return Item{Token: token.PERCENT, Value: "%", Pos: pos}
	case '=':
		l.readChar()
		return Item{Token: token.EQ, Value: "=", Pos: pos}
	case '^':
		l.readChar()
		return Item{Token: token.CARET, Value: "^", Pos: pos}
	case '(':
		l.readChar()
		return Item{Token: token.LPAREN, Value: "(", Pos: pos}
	case ')':
		l.readChar()
		return Item{Token: token.RPAREN, Value: ")", Pos: pos}
	case ',':
		l.readChar()
		return Item{Token: token.COMMA, Value: ",", Pos: pos}
	case '.':
		l.readChar()
		return Item{Token: token.DOT, Value: ".", Pos: pos}
	case ';':
		l.readChar()
		return Item{Token: token.SEMICOLON, Value: ";", Pos: pos}
	case '\'':
		return l.readString()
	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if isIdentStart(l.ch) {
			return l.readIdentifier()
		}
		ch := l.ch
		l.readChar()
		return Item{Token: token.ILLEGAL, Value: string(ch), Pos: pos}
	}
}

// readString scans a single-quoted literal. A doubled quote or a
// backslash-quote stands for one quote character. An unterminated
// literal ends at end of input.
func (l *Lexer) readString() Item {
	pos := l.pos
	var sb strings.Builder
	l.readChar() // skip opening quote

	for !l.eof {
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				sb.WriteRune('\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // skip closing quote
			break
		}
		if l.ch == '\\' && l.peekChar() == '\'' {
			sb.WriteRune('\'')
			l.readChar()
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return Item{Token: token.STRING, Value: sb.String(), Pos: pos}
}

// readNumber reads a digit run containing at most one decimal point.
// Signs and exponents are not part of a number literal.
func (l *Lexer) readNumber() Item {
	pos := l.pos
	var sb strings.Builder
	seenDot := false

	for !l.eof {
		if isDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
			continue
		}
		if l.ch == '.' && !seenDot {
			seenDot = true
			sb.WriteRune(l.ch)
			l.readChar()
			continue
		}
		break
	}
	return Item{Token: token.NUMBER, Value: sb.String(), Pos: pos}
}

func (l *Lexer) readIdentifier() Item {
	pos := l.pos
	var sb strings.Builder

	for !l.eof && isIdentChar(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}

	ident := sb.String()
	return Item{Token: token.Lookup(ident), Value: ident, Pos: pos}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentChar(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || isDigit(ch)
}

// Tokenize returns all tokens from the reader. The result always ends
// with exactly one EOF item.
func Tokenize(r io.Reader) []Item {
	l := New(r)
	var items []Item
	for {
		item := l.NextToken()
		items = append(items, item)
		if item.Token == token.EOF {
			break
		}
	}
	return items
}
