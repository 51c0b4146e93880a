package format_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/internal/format"
	"github.com/sqlc-dev/fluxo/parser"
)

func formatSQL(t *testing.T, sql string) string {
	t.Helper()
	stmts, err := parser.ParseString(context.Background(), sql)
	if err != nil {
		t.Fatalf("parse %q: %v", sql, err)
	}
	return format.Format(stmts)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"select a,b from t", "SELECT a, b FROM t;"},
		{"SELECT (1 + 2) * 3", "SELECT (1 + 2) * 3;"},
		{"SELECT 1 + (2 + 3)", "SELECT 1 + (2 + 3);"},
		{"SELECT (1 + 2) + 3", "SELECT 1 + 2 + 3;"},
		{"SELECT -(a + 1), NOT b", "SELECT -(a + 1), NOT b;"},
		{"SELECT 2.0, 'it''s', null, true", "SELECT 2.0, 'it''s', NULL, TRUE;"},
		{"SELECT cast(x AS int) FROM t AS u ORDER BY x ASC", "SELECT CAST(x AS INTEGER) FROM t AS u ORDER BY x;"},
		{"insert into t (a) values (1), (2)", "INSERT INTO t (a) VALUES (1), (2);"},
		{"DROP INDEX ix", "DROP INDEX CONCURRENTLY ix;"},
		{"drop table if exists a, b cascade", "DROP TABLE IF EXISTS a, b CASCADE;"},
		{"CREATE SEQUENCE s START WITH 1 INCREMENT BY 1", "CREATE SEQUENCE s;"},
		{"CREATE USER u LOGIN", "CREATE USER u;"},
		{"CREATE DATABASE d WITH (ENCODING = 'UTF-8')", "CREATE DATABASE d;"},
		{"CREATE TRIGGER g BEFORE DELETE FOR EACH STATEMENT ON t EXECUTE FUNCTION f", "CREATE TRIGGER g BEFORE DELETE ON t EXECUTE FUNCTION f();"},
		{"ALTER TABLE t RENAME a TO b, ALTER c DROP DEFAULT", "ALTER TABLE t RENAME COLUMN a TO b, ALTER COLUMN c DROP DEFAULT;"},
		{"SELECT 1; SELECT 2", "SELECT 1;\nSELECT 2;"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := formatSQL(t, tt.in); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestFormatReparses(t *testing.T) {
	inputs := []string{
		"CREATE TEMP TABLE IF NOT EXISTS t (id INT PRIMARY KEY, name VARCHAR(10) NOT NULL DEFAULT 'x', CONSTRAINT fk FOREIGN KEY (id) REFERENCES u (id) MATCH PARTIAL ON UPDATE SET NULL) TABLESPACE ts",
		"CREATE UNIQUE INDEX ix ON t USING hash (a DESC NULLS FIRST, (a + b) COLLATE c) WHERE a = 1",
		"CREATE SEQUENCE s INCREMENT BY -2 MINVALUE -10 MAXVALUE 10 START WITH 3 CACHE 4 CYCLE OWNED BY t.c",
		"CREATE SCHEMA s AUTHORIZATION bob CREATE TABLE t (a INT) CREATE INDEX i ON t (a)",
		"CREATE COLLATION c (LOCALE = 'fr', PROVIDER = icu, DETERMINISTIC = FALSE)",
		"CREATE ROLE r WITH SUPERUSER NOINHERIT CONNECTION LIMIT 5 PASSWORD 'p' VALID UNTIL '2030'",
		"ALTER TABLE t ADD CONSTRAINT c UNIQUE, ADD FOREIGN KEY (a) REFERENCES b (c) ON DELETE RESTRICT, SET SCHEMA s",
		"CREATE VIEW v (a) AS SELECT DISTINCT x FROM t WHERE x = 1 GROUP BY x HAVING count(*) = 1 LIMIT 1 OFFSET 2",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first := formatSQL(t, in)
			if second := formatSQL(t, first); second != first {
				t.Errorf("not stable:\nfirst  %s\nsecond %s", first, second)
			}
		})
	}
}

func TestExpressionParenthesizesUnparsedOperators(t *testing.T) {
	expr := &ast.BinaryExpr{
		Left:  &ast.BinaryExpr{Left: &ast.ColumnRef{Name: "a"}, Op: ast.OpLt, Right: &ast.Literal{Type: ast.TypeInteger, Value: int64(1)}},
		Op:    ast.OpAnd,
		Right: &ast.UnaryExpr{Op: ast.OpIsNull, Operand: &ast.ColumnRef{Name: "b"}},
	}
	var sb strings.Builder
	format.Expression(&sb, expr)
	if got, want := sb.String(), "(a < 1) AND b IS NULL"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

type wrappedStmt struct{ *ast.SelectStmt }

func TestStatementUnknownType(t *testing.T) {
	defer func() {
		r := recover()
		if msg, _ := r.(string); !strings.Contains(msg, "unknown statement type format_test.wrappedStmt") {
			t.Errorf("got panic %v", r)
		}
	}()
	var sb strings.Builder
	format.Statement(&sb, wrappedStmt{&ast.SelectStmt{}})
	t.Error("no panic")
}
