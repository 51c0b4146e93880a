package parser_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/parser"
)

func TestMultiStatementParsing(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected int
	}{
		{
			name:     "two selects with semicolon",
			sql:      "SELECT 1; SELECT 2;",
			expected: 2,
		},
		{
			name:     "mixed statements",
			sql:      "SELECT 1; CREATE TABLE t (a INT); DROP TABLE t;",
			expected: 3,
		},
		{
			name:     "no trailing semicolon",
			sql:      "SELECT 1; SELECT 2",
			expected: 2,
		},
		{
			name:     "no separator",
			sql:      "SELECT 1 SELECT 2",
			expected: 2,
		},
		{
			name:     "multiple semicolons between statements",
			sql:      "SELECT 1;; SELECT 2;;; SELECT 3",
			expected: 3,
		},
		{
			name:     "newlines between statements",
			sql:      "SELECT 1;\nSELECT 2;\r\nSELECT 3;",
			expected: 3,
		},
		{
			name:     "only semicolons",
			sql:      ";;;",
			expected: 0,
		},
		{
			name:     "empty input",
			sql:      "",
			expected: 0,
		},
		{
			name:     "complex multi-statement",
			sql:      "SELECT a, b FROM t1 WHERE x = 10; INSERT INTO t2 VALUES (1, 'hello'); SELECT * FROM t3 ORDER BY id;",
			expected: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			stmts, err := parser.Parse(ctx, strings.NewReader(tc.sql))
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if len(stmts) != tc.expected {
				t.Errorf("Expected %d statements, got %d", tc.expected, len(stmts))
			}
		})
	}
}

func TestMultiStatementAbortsOnError(t *testing.T) {
	stmts, err := parser.ParseString(context.Background(), "SELECT 1; SELECT FROM; SELECT 3;")
	if err == nil {
		t.Fatal("expected an error")
	}
	if stmts != nil {
		t.Errorf("expected no partial result, got %d statements", len(stmts))
	}
}

func TestParseString(t *testing.T) {
	ctx := context.Background()
	sql := "SELECT 1; SELECT 2; SELECT 3;"

	stmts, err := parser.ParseString(ctx, sql)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	if len(stmts) != 3 {
		t.Errorf("Expected 3 statements, got %d", len(stmts))
	}
}

func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()
	sqlFile := filepath.Join(tmpDir, "schema.sql")

	content := `SELECT 1;

SELECT a, b, c
FROM my_table
WHERE x = 10;

CREATE TABLE test_table (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

INSERT INTO test_table VALUES (1, 'hello');

SELECT * FROM test_table ORDER BY id;
`
	if err := os.WriteFile(sqlFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	ctx := context.Background()
	stmts, err := parser.ParseFile(ctx, sqlFile)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if len(stmts) != 5 {
		t.Fatalf("Expected 5 statements, got %d", len(stmts))
	}
	table, ok := stmts[2].(*ast.CreateTableStmt)
	if !ok {
		t.Fatalf("stmts[2] = %T, want *ast.CreateTableStmt", stmts[2])
	}
	if pos := table.Pos(); pos.Line != 7 || pos.Column != 1 {
		t.Errorf("CREATE TABLE position = %s, want 7:1", pos)
	}
}

func TestParseFileNotFound(t *testing.T) {
	ctx := context.Background()
	_, err := parser.ParseFile(ctx, "/nonexistent/file.sql")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
