package lexer_test

import (
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/sqlc-dev/fluxo/lexer"
	"github.com/sqlc-dev/fluxo/token"
)

type tok struct {
	Token token.Token
	Value string
	Line  int
	Col   int
}

func tokenize(s string) []tok {
	var out []tok
	for _, item := range lexer.Tokenize(strings.NewReader(s)) {
		out = append(out, tok{item.Token, item.Value, item.Pos.Line, item.Pos.Column})
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []tok
	}{
		{
			name: "empty",
			in:   "",
			want: []tok{{token.EOF, "", 1, 1}},
		},
		{
			name: "whitespace only",
			in:   " \t\r\n",
			want: []tok{{token.EOF, "", 2, 1}},
		},
		{
			name: "symbols",
			in:   ",;*.=()+-%^/",
			want: []tok{
				{token.COMMA, ",", 1, 1},
				{token.SEMICOLON, ";", 1, 2},
				{token.ASTERISK, "*", 1, 3},
				{token.DOT, ".", 1, 4},
				{token.EQ, "=", 1, 5},
				{token.LPAREN, "(", 1, 6},
				{token.RPAREN, ")", 1, 7},
				{token.PLUS, "+", 1, 8},
				{token.MINUS, "-", 1, 9},
				{token.PERCENT, "%", 1, 10},
				{token.CARET, "^", 1, 11},
				{token.SLASH, "/", 1, 12},
				{token.EOF, "", 1, 13},
			},
		},
		{
			name: "keywords keep their casing",
			in:   "select From temp",
			want: []tok{
				{token.SELECT, "select", 1, 1},
				{token.FROM, "From", 1, 8},
				{token.TEMPORARY, "temp", 1, 13},
				{token.EOF, "", 1, 17},
			},
		},
		{
			name: "identifiers",
			in:   "_a1 users.id",
			want: []tok{
				{token.IDENT, "_a1", 1, 1},
				{token.IDENT, "users", 1, 5},
				{token.DOT, ".", 1, 10},
				{token.IDENT, "id", 1, 11},
				{token.EOF, "", 1, 13},
			},
		},
		{
			name: "numbers",
			in:   "42 3.14 1.2.3 -7",
			want: []tok{
				{token.NUMBER, "42", 1, 1},
				{token.NUMBER, "3.14", 1, 4},
				{token.NUMBER, "1.2", 1, 9},
				{token.DOT, ".", 1, 12},
				{token.NUMBER, "3", 1, 13},
				{token.MINUS, "-", 1, 15},
				{token.NUMBER, "7", 1, 16},
				{token.EOF, "", 1, 17},
			},
		},
		{
			name: "strings",
			in:   `'a''b' 'c\'d'`,
			want: []tok{
				{token.STRING, "a'b", 1, 1},
				{token.STRING, "c'd", 1, 8},
				{token.EOF, "", 1, 14},
			},
		},
		{
			name: "unterminated string",
			in:   "'abc",
			want: []tok{
				{token.STRING, "abc", 1, 1},
				{token.EOF, "", 1, 5},
			},
		},
		{
			name: "illegal characters do not stop the scan",
			in:   "a # b",
			want: []tok{
				{token.IDENT, "a", 1, 1},
				{token.ILLEGAL, "#", 1, 3},
				{token.IDENT, "b", 1, 5},
				{token.EOF, "", 1, 6},
			},
		},
		{
			name: "line feeds reset the column",
			in:   "SELECT\n  a,\n\tb",
			want: []tok{
				{token.SELECT, "SELECT", 1, 1},
				{token.IDENT, "a", 2, 3},
				{token.COMMA, ",", 2, 4},
				{token.IDENT, "b", 3, 2},
				{token.EOF, "", 3, 3},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := deep.Equal(tokenize(tt.in), tt.want); diff != nil {
				t.Errorf("%q:\n%s", tt.in, strings.Join(diff, "\n"))
			}
		})
	}
}

func TestTokenizeEndsWithOneEOF(t *testing.T) {
	inputs := []string{
		"",
		"SELECT 1;",
		"'unterminated",
		"CREATE TABLE t (id INT);\n\n",
		"@@@",
		"a\n\nb\n",
	}
	for _, in := range inputs {
		items := lexer.Tokenize(strings.NewReader(in))
		eofs := 0
		for i, item := range items {
			if item.Token == token.EOF {
				eofs++
				if i != len(items)-1 {
					t.Errorf("%q: EOF at index %d of %d", in, i, len(items))
				}
			}
			if item.Pos.Line < 1 || item.Pos.Column < 1 {
				t.Errorf("%q: token %s has position %s", in, item.Token, item.Pos)
			}
		}
		if eofs != 1 {
			t.Errorf("%q: %d EOF tokens", in, eofs)
		}
	}
}

func TestNextTokenAfterEOF(t *testing.T) {
	l := lexer.New(strings.NewReader("a"))
	if item := l.NextToken(); item.Token != token.IDENT {
		t.Fatalf("got %s", item.Token)
	}
	for i := 0; i < 3; i++ {
		if item := l.NextToken(); item.Token != token.EOF {
			t.Fatalf("call %d: got %s, want EOF", i, item.Token)
		}
	}
}

func TestByteOffsets(t *testing.T) {
	items := lexer.Tokenize(strings.NewReader("é = 'ü'"))
	offsets := []int{0, 3, 5}
	for i, want := range offsets {
		if got := items[i].Pos.Offset; got != want {
			t.Errorf("token %d offset = %d, want %d", i, got, want)
		}
	}
	if items[0].Token != token.IDENT || items[2].Value != "ü" {
		t.Errorf("unexpected tokens %v", items)
	}
}
