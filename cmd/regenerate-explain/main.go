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
	Todo bool `json:"todo,omitempty"`
}

func main() {
	testName := flag.String("test", "", "Single test directory name to process (if empty, process all)")
	dryRun := flag.Bool("dry-run", false, "Print what would change without writing")
	flag.Parse()

	testdataDir := "parser/testdata"

	if *testName != "" {
		changed, err := processTest(filepath.Join(testdataDir, *testName), *dryRun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", *testName, err)
			os.Exit(1)
		}
		report(*testName, changed, *dryRun)
		return
	}

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading testdata: %v\n", err)
		os.Exit(1)
	}

	var errors []string
	var processed, updated, skipped int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		testDir := filepath.Join(testdataDir, entry.Name())
		if readMetadata(testDir).Todo {
			skipped++
			continue
		}
		changed, err := processTest(testDir, *dryRun)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", entry.Name(), err))
			continue
		}
		processed++
		if changed {
			updated++
			report(entry.Name(), changed, *dryRun)
		}
	}

	fmt.Printf("\nProcessed: %d, Updated: %d, Skipped: %d, Errors: %d\n", processed, updated, skipped, len(errors))
	if len(errors) > 0 {
		fmt.Fprintf(os.Stderr, "\nErrors:\n")
		for _, e := range errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		os.Exit(1)
	}
}

func report(name string, changed, dryRun bool) {
	switch {
	case !changed:
		fmt.Printf("%s: up to date\n", name)
	case dryRun:
		fmt.Printf("%s: explain.txt would change\n", name)
	default:
		fmt.Printf("%s: explain.txt updated\n", name)
	}
}

func readMetadata(testDir string) testMetadata {
	var metadata testMetadata
	if data, err := os.ReadFile(filepath.Join(testDir, "metadata.json")); err == nil {
		json.Unmarshal(data, &metadata)
	}
	return metadata
}

// processTest parses query.sql and rewrites explain.txt from the tree.
// It reports whether the file content changed.
func processTest(testDir string, dryRun bool) (bool, error) {
	queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
	if err != nil {
		return false, fmt.Errorf("reading query.sql: %w", err)
	}

	stmts, err := parser.ParseString(context.Background(), string(queryBytes))
	if err != nil {
		return false, fmt.Errorf("parse error: %w", err)
	}
	if len(stmts) != 1 {
		return false, fmt.Errorf("expected 1 statement, got %d", len(stmts))
	}
	explain := parser.Explain(stmts[0])

	explainPath := filepath.Join(testDir, "explain.txt")
	if old, err := os.ReadFile(explainPath); err == nil && string(old) == explain {
		return false, nil
	}
	if dryRun {
		fmt.Printf("--- %s\n%s", explainPath, indent(explain))
		return true, nil
	}
	if err := os.WriteFile(explainPath, []byte(explain), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", explainPath, err)
	}
	return true, nil
}

func indent(s string) string {
	lines := strings.SplitAfter(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "  " + l
		}
	}
	return strings.Join(lines, "")
}
