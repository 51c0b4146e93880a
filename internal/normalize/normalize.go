// Package normalize provides SQL normalization functions for comparing
// semantically equivalent SQL statements that may differ syntactically.
package normalize

import (
	"regexp"
	"strings"

	"github.com/sqlc-dev/fluxo/lexer"
	"github.com/sqlc-dev/fluxo/token"
)

// Pre-compiled regexes for performance
var (
	whitespaceRegex  = regexp.MustCompile(`\s+`)
	ascRegex         = regexp.MustCompile(`\s+ASC\b`)
	forEachStmtRegex = regexp.MustCompile(`\s+FOR\s+(EACH\s+)?STATEMENT\b`)
)

// Whitespace collapses all whitespace sequences to a single space
// and trims leading/trailing whitespace.
func Whitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// EscapesInStrings rewrites backslash-escaped quotes inside string
// literals to the doubled form: \' becomes ''.
func EscapesInStrings(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	i := 0
	for i < len(s) {
		ch := s[i]
		if ch != '\'' {
			result.WriteByte(ch)
			i++
			continue
		}
		// Start of a single-quoted string
		result.WriteByte(ch)
		i++
		for i < len(s) {
			ch = s[i]
			if ch == '\\' && i+1 < len(s) && s[i+1] == '\'' {
				result.WriteString("''")
				i += 2
			} else if ch == '\'' {
				result.WriteByte(ch)
				i++
				if i < len(s) && s[i] == '\'' {
					// Escaped quote ''
					result.WriteByte(s[i])
					i++
				} else {
					break
				}
			} else {
				result.WriteByte(ch)
				i++
			}
		}
	}
	return result.String()
}

// Tokens re-renders s from its token stream: keywords in their canonical
// upper-case spelling (TEMP becomes TEMPORARY), strings with doubled
// quotes, single spaces between tokens and none inside dotted names or
// before list punctuation.
func Tokens(s string) string {
	items := lexer.Tokenize(strings.NewReader(s))

	var sb strings.Builder
	var prev token.Token = token.ILLEGAL
	for i, item := range items {
		if item.Token == token.EOF {
			break
		}
		if i > 0 && needsSpace(prev, item.Token) {
			sb.WriteByte(' ')
		}
		switch {
		case item.Token.IsKeyword():
			sb.WriteString(item.Token.String())
		case item.Token == token.STRING:
			sb.WriteString("'" + strings.ReplaceAll(item.Value, "'", "''") + "'")
		default:
			sb.WriteString(item.Value)
		}
		prev = item.Token
	}
	return sb.String()
}

func needsSpace(prev, cur token.Token) bool {
	switch cur {
	case token.COMMA, token.RPAREN, token.DOT, token.SEMICOLON:
		return false
	}
	switch prev {
	case token.LPAREN, token.DOT:
		return false
	}
	// A function call keeps its parenthesis attached; keywords do not.
	if cur == token.LPAREN && prev == token.IDENT {
		return false
	}
	return true
}

// Defaults drops clauses that restate the default: ASC sort order and
// FOR EACH STATEMENT on triggers. The input must already be in the
// canonical keyword case.
func Defaults(s string) string {
	s = ascRegex.ReplaceAllString(s, "")
	return forEachStmtRegex.ReplaceAllString(s, "")
}

// SQL applies every normalization, so that two statements that only
// differ in spelling compare equal.
func SQL(s string) string {
	return Defaults(Tokens(EscapesInStrings(Whitespace(s))))
}
