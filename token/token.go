// Package token defines constants representing the lexical tokens of the fluxo SQL dialect.
package token

import (
	"fmt"
	"strings"
)

// Token represents a lexical token.
type Token int

const (
	// Special tokens
	ILLEGAL Token = iota
	EOF

	// Literals
	IDENT  // identifiers
	NUMBER // integer or decimal literals
	STRING // string literals

	// Operators
	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	PERCENT  // %
	EQ       // =
	CARET    // ^

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;

	// Keywords
	keyword_beg
	ADD
	AFTER
	ALLOW_CONNECTIONS
	ALTER
	AS
	ASC
	ATTACH
	AUTHORIZATION
	BEFORE
	BY
	CACHE
	CASCADE
	CAST
	CHECK
	COLLATE
	COLLATION
	COLUMN
	CONCURRENTLY
	CONNECTION
	CONNECTION_LIMIT
	CONSTRAINT
	CREATE
	CREATEDB
	CREATEROLE
	CYCLE
	DATABASE
	DEFAULT
	DELETE
	DESC
	DETACH
	DETERMINISTIC
	DISTINCT
	DROP
	EACH
	ENCODING
	EXECUTE
	EXISTS
	FALSE
	FIRST
	FOR
	FOREIGN
	FROM
	FUNCTION
	GROUP
	HAVING
	IF
	INCREMENT
	INDEX
	INHERIT
	INSERT
	INSTEAD
	INTO
	KEY
	LAST
	LIMIT
	LOCALE
	LOGIN
	MAXVALUE
	MINVALUE
	NO
	NOCREATEDB
	NOCREATEROLE
	NOINHERIT
	NOLOGIN
	NONE
	NOSUPERUSER
	NOT
	NULL
	NULLS
	OF
	OFFSET
	ON
	ONLY
	OR
	ORDER
	OWNED
	OWNER
	PASSWORD
	PRIMARY
	PROVIDER
	RECURSIVE
	REFERENCES
	RENAME
	REPLACE
	RESTRICT
	ROLE
	ROW
	RULES
	SCHEMA
	SELECT
	SEQUENCE
	SET
	START
	STATEMENT
	SUPERUSER
	TABLE
	TABLESPACE
	TEMPORARY
	TO
	TRIGGER
	TRUE
	TRUNCATE
	TYPE
	UNIQUE
	UNTIL
	UPDATE
	USER
	USING
	VALID
	VALUES
	VIEW
	WHEN
	WHERE
	WITH
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:     "+",
	MINUS:    "-",
	ASTERISK: "*",
	SLASH:    "/",
	PERCENT:  "%",
	EQ:       "=",
	CARET:    "^",

	LPAREN:    "(",
	RPAREN:    ")",
	COMMA:     ",",
	DOT:       ".",
	SEMICOLON: ";",

	ADD:               "ADD",
	AFTER:             "AFTER",
	ALLOW_CONNECTIONS: "ALLOW_CONNECTIONS",
	ALTER:             "ALTER",
	AS:                "AS",
	ASC:               "ASC",
	ATTACH:            "ATTACH",
	AUTHORIZATION:     "AUTHORIZATION",
	BEFORE:            "BEFORE",
	BY:                "BY",
	CACHE:             "CACHE",
	CASCADE:           "CASCADE",
	CAST:              "CAST",
	CHECK:             "CHECK",
	COLLATE:           "COLLATE",
	COLLATION:         "COLLATION",
	COLUMN:            "COLUMN",
	CONCURRENTLY:      "CONCURRENTLY",
	CONNECTION:        "CONNECTION",
	CONNECTION_LIMIT:  "CONNECTION_LIMIT",
	CONSTRAINT:        "CONSTRAINT",
	CREATE:            "CREATE",
	CREATEDB:          "CREATEDB",
	CREATEROLE:        "CREATEROLE",
	CYCLE:             "CYCLE",
	DATABASE:          "DATABASE",
	DEFAULT:           "DEFAULT",
	DELETE:            "DELETE",
	DESC:              "DESC",
	DETACH:            "DETACH",
	DETERMINISTIC:     "DETERMINISTIC",
	DISTINCT:          "DISTINCT",
	DROP:              "DROP",
	EACH:              "EACH",
	ENCODING:          "ENCODING",
	EXECUTE:           "EXECUTE",
	EXISTS:            "EXISTS",
	FALSE:             "FALSE",
	FIRST:             "FIRST",
	FOR:               "FOR",
	FOREIGN:           "FOREIGN",
	FROM:              "FROM",
	FUNCTION:          "FUNCTION",
	GROUP:             "GROUP",
	HAVING:            "HAVING",
	IF:                "IF",
	INCREMENT:         "INCREMENT",
	INDEX:             "INDEX",
	INHERIT:           "INHERIT",
	INSERT:            "INSERT",
	INSTEAD:           "INSTEAD",
	INTO:              "INTO",
	KEY:               "KEY",
	LAST:              "LAST",
	LIMIT:             "LIMIT",
	LOCALE:            "LOCALE",
	LOGIN:             "LOGIN",
	MAXVALUE:          "MAXVALUE",
	MINVALUE:          "MINVALUE",
	NO:                "NO",
	NOCREATEDB:        "NOCREATEDB",
	NOCREATEROLE:      "NOCREATEROLE",
	NOINHERIT:         "NOINHERIT",
	NOLOGIN:           "NOLOGIN",
	NONE:              "NONE",
	NOSUPERUSER:       "NOSUPERUSER",
	NOT:               "NOT",
	NULL:              "NULL",
	NULLS:             "NULLS",
	OF:                "OF",
	OFFSET:            "OFFSET",
	ON:                "ON",
	ONLY:              "ONLY",
	OR:                "OR",
	ORDER:             "ORDER",
	OWNED:             "OWNED",
	OWNER:             "OWNER",
	PASSWORD:          "PASSWORD",
	PRIMARY:           "PRIMARY",
	PROVIDER:          "PROVIDER",
	RECURSIVE:         "RECURSIVE",
	REFERENCES:        "REFERENCES",
	RENAME:            "RENAME",
	REPLACE:           "REPLACE",
	RESTRICT:          "RESTRICT",
	ROLE:              "ROLE",
	ROW:               "ROW",
	RULES:             "RULES",
	SCHEMA:            "SCHEMA",
	SELECT:            "SELECT",
	SEQUENCE:          "SEQUENCE",
	SET:               "SET",
	START:             "START",
	STATEMENT:         "STATEMENT",
	SUPERUSER:         "SUPERUSER",
	TABLE:             "TABLE",
	TABLESPACE:        "TABLESPACE",
	TEMPORARY:         "TEMPORARY",
	TO:                "TO",
	TRIGGER:           "TRIGGER",
	TRUE:              "TRUE",
	TRUNCATE:          "TRUNCATE",
	TYPE:              "TYPE",
	UNIQUE:            "UNIQUE",
	UNTIL:             "UNTIL",
	UPDATE:            "UPDATE",
	USER:              "USER",
	USING:             "USING",
	VALID:             "VALID",
	VALUES:            "VALUES",
	VIEW:              "VIEW",
	WHEN:              "WHEN",
	WHERE:             "WHERE",
	WITH:              "WITH",
}

// aliases are alternate spellings that map onto an existing keyword.
var aliases = map[string]Token{
	"ASCENDING":  ASC,
	"DESCENDING": DESC,
	"TEMP":       TEMPORARY,
}

func (tok Token) String() string {
	if tok >= 0 && int(tok) < len(tokens) {
		return tokens[tok]
	}
	return ""
}

// Keywords maps upper-case keyword strings to their token types.
var Keywords map[string]Token

func init() {
	Keywords = make(map[string]Token)
	for i := keyword_beg + 1; i < keyword_end; i++ {
		Keywords[tokens[i]] = i
	}
	for word, tok := range aliases {
		Keywords[word] = tok
	}
}

// Lookup returns the token type for an identifier string.
// Keywords are matched case-insensitively; anything else is IDENT.
func Lookup(ident string) Token {
	if tok, ok := Keywords[strings.ToUpper(ident)]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token is a keyword.
func (tok Token) IsKeyword() bool {
	return tok > keyword_beg && tok < keyword_end
}

// Position represents a source position.
type Position struct {
	Offset int // byte offset
	Line   int // line number (1-based)
	Column int // column number (1-based)
}

// IsValid reports whether the position carries a line number.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
