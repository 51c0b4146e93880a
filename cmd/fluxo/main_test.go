package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-test/deep"

	"github.com/sqlc-dev/fluxo/catalog"
	"github.com/sqlc-dev/fluxo/executor"
	"github.com/sqlc-dev/fluxo/internal/config"
	"github.com/sqlc-dev/fluxo/parser"
)

func runCmd(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("FLUXO_CONFIG", "")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunUsage(t *testing.T) {
	if code, _, stderr := runCmd(t, ""); code != 2 || !strings.Contains(stderr, "Usage: fluxo") {
		t.Errorf("no command: code %d, stderr %q", code, stderr)
	}
	if code, _, stderr := runCmd(t, "", "frobnicate"); code != 2 || !strings.Contains(stderr, `unknown command "frobnicate"`) {
		t.Errorf("unknown command: code %d, stderr %q", code, stderr)
	}
	if code, _, _ := runCmd(t, "", "parse", "-o", "xml"); code != 2 {
		t.Errorf("bad output flag: code %d", code)
	}
}

func TestRunParse(t *testing.T) {
	const src = "select a from t"
	stmts, err := parser.ParseString(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runCmd(t, src, "parse")
	if code != 0 {
		t.Fatalf("code %d: %s", code, stderr)
	}
	if want := parser.Explain(stmts[0]); stdout != want {
		t.Errorf("explain output:\n%s\nwant:\n%s", stdout, want)
	}

	if _, stdout, _ := runCmd(t, src, "parse", "-o", "sql"); stdout != "SELECT a FROM t;\n" {
		t.Errorf("sql output %q", stdout)
	}

	_, stdout, _ = runCmd(t, src, "parse", "-o", "json")
	if !strings.Contains(stdout, `"type": "SelectStmt"`) || !strings.Contains(stdout, `"name": "a"`) {
		t.Errorf("json output:\n%s", stdout)
	}
}

func TestRunParseError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.sql", "SELECT * FROM;")
	code, _, stderr := runCmd(t, "", "parse", path)
	if code != 1 {
		t.Errorf("code %d", code)
	}
	if want := "bad.sql: expected table name, got ';' at line 1, column 14"; !strings.Contains(stderr, want) {
		t.Errorf("stderr %q, want it to contain %q", stderr, want)
	}
}

func TestRunConfigOutput(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "fluxo.yaml", "output: sql\n")
	code, stdout, stderr := runCmd(t, "select 1", "-config", cfgPath, "parse")
	if code != 0 || stdout != "SELECT 1;\n" {
		t.Errorf("code %d, stdout %q, stderr %q", code, stdout, stderr)
	}

	bad := writeFile(t, t.TempDir(), "fluxo.yaml", "output: xml\n")
	if code, _, stderr := runCmd(t, "", "-config", bad, "parse"); code != 1 || !strings.Contains(stderr, "invalid output") {
		t.Errorf("code %d, stderr %q", code, stderr)
	}
}

func TestRunFmt(t *testing.T) {
	dir := t.TempDir()
	messy := writeFile(t, dir, "messy.sql", "select a,b from t;\ndrop index ix")
	clean := writeFile(t, dir, "clean.sql", "SELECT a, b FROM t;\n")

	code, stdout, _ := runCmd(t, "", "fmt", messy)
	if code != 0 || stdout != "SELECT a, b FROM t;\nDROP INDEX CONCURRENTLY ix;\n" {
		t.Errorf("code %d, stdout %q", code, stdout)
	}

	code, stdout, _ = runCmd(t, "", "fmt", "-check", messy, clean)
	if code != 1 || stdout != messy+"\n" {
		t.Errorf("check: code %d, stdout %q", code, stdout)
	}

	if code, _, stderr := runCmd(t, "", "fmt", "-w", messy); code != 0 {
		t.Fatalf("write: code %d, %s", code, stderr)
	}
	data, err := os.ReadFile(messy)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "SELECT a, b FROM t;\nDROP INDEX CONCURRENTLY ix;\n" {
		t.Errorf("rewritten file %q", data)
	}
	if code, _, _ := runCmd(t, "", "fmt", "-check", messy); code != 0 {
		t.Errorf("rewritten file still reported")
	}
}

func TestRunExec(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "catalog.db")
	script := writeFile(t, dir, "schema.sql", `
CREATE TABLE users (id INT PRIMARY KEY);
CREATE SEQUENCE user_ids;
SELECT * FROM users;
`)

	code, stdout, stderr := runCmd(t, "", "exec", "-catalog", db, script)
	if code != 0 {
		t.Fatalf("code %d: %s", code, stderr)
	}
	if stdout != "Table users created successfully.\nSequence user_ids created successfully.\n" {
		t.Errorf("stdout %q", stdout)
	}

	// The table survives in the catalog file, so running again conflicts.
	code, stdout, stderr = runCmd(t, "", "exec", "-catalog", db, script)
	if code != 1 || stdout != "" {
		t.Errorf("second run: code %d, stdout %q", code, stdout)
	}
	if !strings.Contains(stderr, "table users: already exists") {
		t.Errorf("stderr %q", stderr)
	}

	// In memory, nothing carries over.
	for i := 0; i < 2; i++ {
		if code, _, stderr := runCmd(t, "CREATE TABLE t (a INT);", "exec"); code != 0 {
			t.Fatalf("in-memory run %d: code %d, %s", i, code, stderr)
		}
	}
}

func newSession(output string) (*session, *bytes.Buffer) {
	var out bytes.Buffer
	return &session{exec: executor.New(catalog.New(), nil), output: output, out: &out}, &out
}

func TestSessionEval(t *testing.T) {
	s, out := newSession(config.OutputSQL)
	s.eval(context.Background(), "CREATE TABLE t (a INT); select a from t;")
	s.eval(context.Background(), "CREATE TABLE t (b INT);")
	s.eval(context.Background(), "SELECT FROM;")

	want := "Table t created successfully.\n" +
		"SELECT a FROM t;\n" +
		"Error: table t: already exists\n" +
		"Error: expected expression, got FROM at line 1, column 8\n"
	if got := out.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSessionCommands(t *testing.T) {
	s, out := newSession(config.OutputExplain)
	if !s.command(":sql") || s.output != config.OutputSQL {
		t.Errorf("output mode %q", s.output)
	}
	if !s.command(":bogus") || !strings.Contains(out.String(), "Unknown command: :bogus") {
		t.Errorf("got %q", out.String())
	}
	out.Reset()
	if !s.command(":help") || !strings.Contains(out.String(), ":quit, :q") {
		t.Errorf("help output %q", out.String())
	}
	if s.command(":q") {
		t.Error(":q did not end the session")
	}
}

func TestNeedsMoreInput(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"SELECT 1", true},
		{"SELECT 1;", false},
		{"SELECT 1;  \n", false},
		{"SELECT ';'", true},
		{"SELECT ';';", false},
		{"SELECT 'it''s;", true},
		{`SELECT 'a\';`, true},
		{`SELECT 'a\\';`, true},
		{`SELECT 'a\n';`, false},
		{"SELECT 1; SELECT", true},
	}
	for _, tt := range tests {
		if got := needsMoreInput(tt.in); got != tt.want {
			t.Errorf("needsMoreInput(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComplete(t *testing.T) {
	if diff := deep.Equal(complete("sel"), []string{"SELECT"}); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(complete("CREATE TABLE t (a INT, prim"), []string{"CREATE TABLE t (a INT, PRIMARY"}); diff != nil {
		t.Error(diff)
	}
	if got := complete("SELECT "); got != nil {
		t.Errorf("got %v", got)
	}
	got := complete("te")
	if len(got) == 0 {
		t.Fatal("no completions for te")
	}
	for _, c := range got {
		if !strings.HasPrefix(c, "TE") {
			t.Errorf("completion %q does not match prefix", c)
		}
	}
}

func TestWatchFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "q.sql", "SELECT 1;")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	calls := 0
	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, func() {
			mu.Lock()
			calls++
			mu.Unlock()
			changed <- struct{}{}
		})
	}()

	wait := func(what string) {
		t.Helper()
		select {
		case <-changed:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %s", what)
		}
	}
	wait("initial call")

	if err := os.WriteFile(path, []byte("SELECT 2;"), 0o644); err != nil {
		t.Fatal(err)
	}
	wait("change")

	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls < 2 {
		t.Errorf("got %d calls", calls)
	}
}
