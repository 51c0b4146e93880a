package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sqlc-dev/fluxo/parser"
)

var todoFlag = flag.Bool("todo", false, "Find tests marked todo (required)")

type testMetadata struct {
	Todo      bool   `json:"todo,omitempty"`
	Source    string `json:"source,omitempty"`
	AfterShip bool   `json:"aftership,omitempty"`
}

type todoTest struct {
	name      string
	querySize int
	parseErr  error
}

func main() {
	flag.Parse()

	if !*todoFlag {
		fmt.Fprintf(os.Stderr, "Usage: go run ./cmd/next-test -todo\n")
		fmt.Fprintf(os.Stderr, "Finds tests with todo: true in metadata.\n")
		os.Exit(1)
	}

	testdataDir := "parser/testdata"
	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading testdata: %v\n", err)
		os.Exit(1)
	}

	var todoTests []todoTest

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		testDir := filepath.Join(testdataDir, entry.Name())
		metadataBytes, err := os.ReadFile(filepath.Join(testDir, "metadata.json"))
		if err != nil {
			continue
		}
		var metadata testMetadata
		if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
			continue
		}
		if !metadata.Todo {
			continue
		}

		queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
		if err != nil {
			continue
		}
		_, parseErr := parser.ParseString(context.Background(), string(queryBytes))

		todoTests = append(todoTests, todoTest{
			name:      entry.Name(),
			querySize: len(queryBytes),
			parseErr:  parseErr,
		})
	}

	if len(todoTests) == 0 {
		fmt.Printf("No todo tests found!\n")
		return
	}

	// Shortest query first
	sort.Slice(todoTests, func(i, j int) bool {
		return todoTests[i].querySize < todoTests[j].querySize
	})

	next := todoTests[0]
	testDir := filepath.Join(testdataDir, next.name)

	fmt.Printf("Next todo test: %s\n\n", next.name)

	queryBytes, _ := os.ReadFile(filepath.Join(testDir, "query.sql"))
	fmt.Printf("Query (%d bytes):\n%s\n", next.querySize, string(queryBytes))

	if next.parseErr != nil {
		fmt.Printf("\nCurrent parse error: %v\n", next.parseErr)
	} else {
		fmt.Printf("\nParses now; check explain.txt and drop the todo flag.\n")
	}

	if explainBytes, err := os.ReadFile(filepath.Join(testDir, "explain.txt")); err == nil {
		fmt.Printf("\nExpected EXPLAIN output:\n%s\n", string(explainBytes))
	}

	fmt.Printf("\nRemaining todo tests: %d\n", len(todoTests))
}
