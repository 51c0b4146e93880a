package executor_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/sqlc-dev/fluxo/catalog"
	"github.com/sqlc-dev/fluxo/executor"
	"github.com/sqlc-dev/fluxo/parser"
)

func run(t *testing.T, e *executor.Executor, sql string) ([]string, error) {
	t.Helper()
	stmts, err := parser.ParseString(context.Background(), sql)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	results, err := e.ExecuteAll(context.Background(), stmts)
	var msgs []string
	for _, r := range results {
		msgs = append(msgs, r.Message)
	}
	return msgs, err
}

func TestExecute(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := executor.New(catalog.New(), logger)

	msgs, err := run(t, e, `
CREATE TABLE users (id INT, name TEXT);
CREATE SEQUENCE user_ids;
CREATE COLLATION ci (LOCALE = 'en', DETERMINISTIC = FALSE);
SELECT * FROM users;
INSERT INTO users VALUES (1, 'a');
CREATE INDEX ix ON users (name);
DROP TABLE users;
`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"Table users created successfully.",
		"Sequence user_ids created successfully.",
		"Collation ci created successfully.",
		"", "", "", "",
	}
	if diff := deep.Equal(msgs, want); diff != nil {
		t.Error(diff)
	}

	c := e.Catalog()
	if _, ok := c.GetTable("users"); !ok {
		t.Error("DROP TABLE is a no-op, users should still exist")
	}
	if _, ok := c.GetSequence("user_ids"); !ok {
		t.Error("user_ids not registered")
	}
	if n, err := c.Compare("ci", "A", "a"); err != nil || n != 0 {
		t.Errorf("Compare = %d, %v", n, err)
	}

	out := buf.String()
	for _, s := range []string{
		"level=DEBUG msg=\"executing statement\" type=*ast.CreateTableStmt pos=2:1",
		"level=INFO msg=\"Table users created successfully.\"",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("log output missing %q:\n%s", s, out)
		}
	}
}

func TestExecuteAllStopsAtFailure(t *testing.T) {
	e := executor.New(catalog.New(), nil)
	msgs, err := run(t, e, "CREATE TABLE t (a INT);\nCREATE TABLE t (b INT);\nCREATE SEQUENCE s;")
	if !errors.Is(err, catalog.ErrAlreadyExists) {
		t.Fatalf("got %v, want ErrAlreadyExists", err)
	}
	if err.Error() != "statement at 2:1: table t: already exists" {
		t.Errorf("got message %q", err)
	}
	if len(msgs) != 1 {
		t.Errorf("got %d results", len(msgs))
	}
	if _, ok := e.Catalog().GetSequence("s"); ok {
		t.Error("statement after the failure ran")
	}
}

func TestExecuteIfNotExists(t *testing.T) {
	e := executor.New(catalog.New(), nil)
	msgs, err := run(t, e, "CREATE TABLE t (a INT); CREATE TABLE IF NOT EXISTS t (b INT)")
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(msgs, []string{"Table t created successfully.", "Table t created successfully."}); diff != nil {
		t.Error(diff)
	}
}

func TestExecuteCanceled(t *testing.T) {
	e := executor.New(catalog.New(), nil)
	stmts, err := parser.ParseString(context.Background(), "CREATE TABLE t (a INT)")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Execute(ctx, stmts[0]); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if _, ok := e.Catalog().GetTable("t"); ok {
		t.Error("canceled statement ran")
	}
}
