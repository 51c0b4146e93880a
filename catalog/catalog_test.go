package catalog_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"

	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/catalog"
	"github.com/sqlc-dev/fluxo/parser"
)

func parseOne[T ast.Statement](t *testing.T, sql string) T {
	t.Helper()
	stmts, err := parser.ParseString(context.Background(), sql)
	if err != nil {
		t.Fatalf("parse %q: %v", sql, err)
	}
	if len(stmts) != 1 {
		t.Fatalf("parse %q: got %d statements", sql, len(stmts))
	}
	stmt, ok := stmts[0].(T)
	if !ok {
		t.Fatalf("parse %q: got %T", sql, stmts[0])
	}
	return stmt
}

func TestCreateTable(t *testing.T) {
	ctx := context.Background()
	c := catalog.New()

	stmt := parseOne[*ast.CreateTableStmt](t, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT)")
	if err := c.CreateTable(ctx, stmt); err != nil {
		t.Fatal(err)
	}

	info, ok := c.GetTable("users")
	if !ok {
		t.Fatal("users not registered")
	}
	if len(info.Columns) != 2 {
		t.Fatalf("got %d columns", len(info.Columns))
	}
	if col, ok := info.Column("name"); !ok || col.Type != ast.TypeText {
		t.Errorf("column name = %+v, %v", col, ok)
	}
	if _, ok := info.Column("missing"); ok {
		t.Error("found missing column")
	}

	err := c.CreateTable(ctx, parseOne[*ast.CreateTableStmt](t, "CREATE TABLE users (x INT)"))
	if !errors.Is(err, catalog.ErrAlreadyExists) {
		t.Fatalf("got %v, want ErrAlreadyExists", err)
	}
	if err.Error() != "table users: already exists" {
		t.Errorf("got message %q", err)
	}

	if err := c.CreateTable(ctx, parseOne[*ast.CreateTableStmt](t, "CREATE TABLE IF NOT EXISTS users (x INT)")); err != nil {
		t.Fatalf("IF NOT EXISTS: %v", err)
	}
	info, _ = c.GetTable("users")
	if info.Columns[0].Name != "id" {
		t.Error("IF NOT EXISTS replaced the existing table")
	}
	if c.Tables() != 1 {
		t.Errorf("got %d tables", c.Tables())
	}
}

func TestCreateSequenceDefaults(t *testing.T) {
	ctx := context.Background()
	c := catalog.New()
	if err := c.CreateSequence(ctx, parseOne[*ast.CreateSequenceStmt](t, "CREATE SEQUENCE s")); err != nil {
		t.Fatal(err)
	}
	seq, ok := c.GetSequence("s")
	if !ok {
		t.Fatal("s not registered")
	}
	want := catalog.SequenceInfo{Name: "s", Current: 1, Increment: 1, Min: 1, Max: math.MaxInt64}
	if diff := deep.Equal(seq, want); diff != nil {
		t.Error(diff)
	}
}

func TestCreateSequenceOverwrites(t *testing.T) {
	ctx := context.Background()
	c := catalog.New()
	for _, sql := range []string{"CREATE SEQUENCE s START WITH 10", "CREATE SEQUENCE s START WITH 20"} {
		if err := c.CreateSequence(ctx, parseOne[*ast.CreateSequenceStmt](t, sql)); err != nil {
			t.Fatal(err)
		}
	}
	if v, err := c.NextValue(ctx, "s"); err != nil || v != 20 {
		t.Errorf("NextValue = %d, %v; want 20", v, err)
	}
}

func TestCreateSequenceStalled(t *testing.T) {
	ctx := context.Background()
	for _, sql := range []string{
		"CREATE SEQUENCE s INCREMENT BY 0",
		"CREATE SEQUENCE s MINVALUE 10 MAXVALUE 5 START WITH 7",
		"CREATE SEQUENCE s INCREMENT BY -1 START WITH -1 MAXVALUE -1",
	} {
		t.Run(sql, func(t *testing.T) {
			c := catalog.New()
			stmt := parseOne[*ast.CreateSequenceStmt](t, sql)
			if err := c.CreateSequence(ctx, stmt); err != nil {
				t.Fatal(err)
			}
			if v, err := c.NextValue(ctx, "s"); err != nil || v != stmt.Start {
				t.Fatalf("first value: got %d, %v, want %d", v, err, stmt.Start)
			}
			if _, err := c.NextValue(ctx, "s"); !errors.Is(err, catalog.ErrSequenceExhausted) {
				t.Errorf("got %v, want ErrSequenceExhausted", err)
			}
		})
	}
}

func nextValues(t *testing.T, c *catalog.Catalog, name string, n int) []int64 {
	t.Helper()
	var got []int64
	for i := 0; i < n; i++ {
		v, err := c.NextValue(context.Background(), name)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		got = append(got, v)
	}
	return got
}

func TestNextValue(t *testing.T) {
	tests := []struct {
		sql  string
		n    int
		want []int64
	}{
		{"CREATE SEQUENCE s", 3, []int64{1, 2, 3}},
		{"CREATE SEQUENCE s INCREMENT BY 5 START WITH 10", 3, []int64{10, 15, 20}},
		{"CREATE SEQUENCE s MINVALUE 1 MAXVALUE 3 CYCLE", 5, []int64{1, 2, 3, 1, 2}},
		{"CREATE SEQUENCE s INCREMENT BY -1 MINVALUE 1 MAXVALUE 3 START WITH 3 CYCLE", 5, []int64{3, 2, 1, 3, 2}},
		{"CREATE SEQUENCE s MAXVALUE 9223372036854775807 START WITH 9223372036854775806 CYCLE", 3, []int64{math.MaxInt64 - 1, math.MaxInt64, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			c := catalog.New()
			if err := c.CreateSequence(context.Background(), parseOne[*ast.CreateSequenceStmt](t, tt.sql)); err != nil {
				t.Fatal(err)
			}
			if diff := deep.Equal(nextValues(t, c, "s", tt.n), tt.want); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestNextValueExhausted(t *testing.T) {
	ctx := context.Background()
	c := catalog.New()
	if err := c.CreateSequence(ctx, parseOne[*ast.CreateSequenceStmt](t, "CREATE SEQUENCE s MAXVALUE 2")); err != nil {
		t.Fatal(err)
	}
	nextValues(t, c, "s", 2)

	_, err := c.NextValue(ctx, "s")
	if !errors.Is(err, catalog.ErrSequenceExhausted) {
		t.Fatalf("got %v, want ErrSequenceExhausted", err)
	}
	if err.Error() != "sequence s reached its maximum: sequence exhausted" {
		t.Errorf("got message %q", err)
	}
	if seq, _ := c.GetSequence("s"); seq.Current != 2 {
		t.Errorf("failed call moved the sequence to %d", seq.Current)
	}

	if _, err := c.NextValue(ctx, "missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCollations(t *testing.T) {
	c := catalog.New()
	for _, sql := range []string{
		"CREATE COLLATION exact (LOCALE = 'en')",
		"CREATE COLLATION loose (LOCALE = 'en', DETERMINISTIC = FALSE)",
		"CREATE COLLATION copy FROM loose",
	} {
		if err := c.CreateCollation(parseOne[*ast.CreateCollationStmt](t, sql)); err != nil {
			t.Fatalf("%s: %v", sql, err)
		}
	}

	tests := []struct {
		coll, a, b string
		want       int
	}{
		{"exact", "a", "b", -1},
		{"exact", "b", "a", 1},
		{"exact", "a", "a", 0},
		{"exact", "a", "A", -1},
		{"loose", "a", "A", 0},
		{"loose", "résumé", "RESUME", 0},
		{"loose", "a", "b", -1},
		{"copy", "Straße", "straße", 0},
	}
	for _, tt := range tests {
		got, err := c.Compare(tt.coll, tt.a, tt.b)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Compare(%s, %q, %q) = %d, want %d", tt.coll, tt.a, tt.b, got, tt.want)
		}
	}

	if _, err := c.Compare("missing", "a", "b"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCreateCollationErrors(t *testing.T) {
	c := catalog.New()
	if err := c.CreateCollation(parseOne[*ast.CreateCollationStmt](t, "CREATE COLLATION c (LOCALE = 'de')")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		sql    string
		target error
	}{
		{"CREATE COLLATION c (LOCALE = 'fr')", catalog.ErrAlreadyExists},
		{"CREATE COLLATION d FROM nope", catalog.ErrNotFound},
		{"CREATE COLLATION e (PROVIDER = icu)", nil},
		{"CREATE COLLATION f (LOCALE = 'not a locale!')", nil},
	}
	for _, tt := range tests {
		err := c.CreateCollation(parseOne[*ast.CreateCollationStmt](t, tt.sql))
		if err == nil {
			t.Errorf("%s: expected error", tt.sql)
			continue
		}
		if tt.target != nil && !errors.Is(err, tt.target) {
			t.Errorf("%s: got %v, want %v", tt.sql, err, tt.target)
		}
	}

	if err := c.CreateCollation(parseOne[*ast.CreateCollationStmt](t, "CREATE COLLATION IF NOT EXISTS c (LOCALE = 'fr')")); err != nil {
		t.Errorf("IF NOT EXISTS: %v", err)
	}
	if coll, _ := c.GetCollation("c"); coll.Tag.String() != "de" {
		t.Errorf("collation c has tag %s", coll.Tag)
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := catalog.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	c, err := catalog.Open(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	for _, sql := range []string{
		"CREATE TABLE IF NOT EXISTS orders (id INT PRIMARY KEY, note VARCHAR(20) DEFAULT 'none', CONSTRAINT fk FOREIGN KEY (id) REFERENCES users (id) ON DELETE CASCADE)",
		"CREATE TEMP TABLE scratch (x INT)",
	} {
		if err := c.CreateTable(ctx, parseOne[*ast.CreateTableStmt](t, sql)); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.CreateSequence(ctx, parseOne[*ast.CreateSequenceStmt](t, "CREATE SEQUENCE ids START WITH 100")); err != nil {
		t.Fatal(err)
	}
	nextValues(t, c, "ids", 2)
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	store, err = catalog.OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	reopened, err := catalog.Open(ctx, store)
	if err != nil {
		t.Fatal(err)
	}

	orig, _ := c.GetTable("orders")
	loaded, ok := reopened.GetTable("orders")
	if !ok {
		t.Fatal("orders not reloaded")
	}
	if diff := deep.Equal(loaded, orig); diff != nil {
		t.Errorf("reloaded table differs:\n%v", diff)
	}
	if _, ok := reopened.GetTable("scratch"); ok {
		t.Error("temporary table was persisted")
	}

	if v, err := reopened.NextValue(ctx, "ids"); err != nil || v != 102 {
		t.Errorf("NextValue after reload = %d, %v; want 102", v, err)
	}
}
