// Command testcase adds a parser test case directory holding the query
// and its current explain output.
//
//	go run ./cmd/testcase -name select_alias "SELECT a AS b FROM t;"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sqlc-dev/fluxo/parser"
)

type testMetadata struct {
	Todo      bool `json:"todo,omitempty"`
	AfterShip bool `json:"aftership,omitempty"`
}

func main() {
	name := flag.String("name", "", "Test directory name (required)")
	aftership := flag.Bool("aftership", false, "Mark the case as shared with the ClickHouse parser")
	force := flag.Bool("force", false, "Overwrite an existing case")
	flag.Parse()

	if *name == "" || flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: go run ./cmd/testcase -name <dir> [-aftership] \"<sql>\"\n")
		os.Exit(1)
	}
	query := strings.TrimSpace(flag.Arg(0))
	if !strings.HasSuffix(query, ";") {
		query += ";"
	}

	testDir := filepath.Join("parser/testdata", *name)
	if _, err := os.Stat(testDir); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "%s already exists (use -force to overwrite)\n", testDir)
		os.Exit(1)
	}

	metadata := testMetadata{AfterShip: *aftership}
	explain := ""
	stmts, err := parser.ParseString(context.Background(), query)
	switch {
	case err != nil:
		fmt.Printf("Parse error, case marked todo: %v\n", err)
		metadata.Todo = true
	case len(stmts) != 1:
		fmt.Fprintf(os.Stderr, "expected 1 statement, got %d\n", len(stmts))
		os.Exit(1)
	default:
		explain = parser.Explain(stmts[0])
	}

	if err := os.MkdirAll(testDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	files := map[string]string{
		"query.sql":   query + "\n",
		"explain.txt": explain,
	}
	if metadata != (testMetadata{}) {
		data, _ := json.Marshal(metadata)
		files["metadata.json"] = string(data) + "\n"
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(testDir, file), []byte(content), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", file, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Created %s\n", testDir)
	if explain != "" {
		fmt.Print(explain)
	}
}
