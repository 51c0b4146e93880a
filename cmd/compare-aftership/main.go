// Command compare-aftership runs every parser test case through the
// ClickHouse parser and reports where its verdict disagrees with the
// aftership flag in metadata.json.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	aftership "github.com/AfterShip/clickhouse-sql-parser/parser"

	"github.com/sqlc-dev/fluxo/parser"
)

type testMetadata struct {
	Todo      bool `json:"todo,omitempty"`
	AfterShip bool `json:"aftership,omitempty"`
}

func tryParseWithAfterShip(query string) (parsed bool, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			parsed = false
		}
	}()
	p := aftership.NewParser(query)
	stmts, err := p.ParseStmts()
	return err == nil && len(stmts) > 0, false
}

func main() {
	testdataDir := "parser/testdata"

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	var total, aftershipParsed, aftershipPanicked int
	var candidates, stale []string

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		testDir := filepath.Join(testdataDir, entry.Name())

		var metadata testMetadata
		if data, err := os.ReadFile(filepath.Join(testDir, "metadata.json")); err == nil {
			if err := json.Unmarshal(data, &metadata); err != nil {
				fmt.Printf("%s: bad metadata.json: %v\n", entry.Name(), err)
				continue
			}
		}
		if metadata.Todo {
			continue
		}

		queryBytes, err := os.ReadFile(filepath.Join(testDir, "query.sql"))
		if err != nil {
			continue
		}
		query := string(queryBytes)
		if _, err := parser.ParseString(context.Background(), query); err != nil {
			fmt.Printf("%s: fluxo parse error: %v\n", entry.Name(), err)
			continue
		}
		total++

		parsed, panicked := tryParseWithAfterShip(query)
		switch {
		case panicked:
			aftershipPanicked++
		case parsed:
			aftershipParsed++
		}

		if parsed && !metadata.AfterShip {
			candidates = append(candidates, entry.Name())
		}
		if !parsed && metadata.AfterShip {
			stale = append(stale, entry.Name())
		}
	}

	fmt.Printf("Test cases:               %3d\n", total)
	fmt.Printf("AfterShip CAN parse:      %3d\n", aftershipParsed)
	fmt.Printf("AfterShip CANNOT parse:   %3d\n", total-aftershipParsed)
	fmt.Printf("AfterShip CRASHED:        %3d\n", aftershipPanicked)

	if len(candidates) > 0 {
		fmt.Printf("\nParsed by both, not yet marked aftership:\n")
		for _, name := range candidates {
			fmt.Printf("  - %s\n", name)
		}
	}
	if len(stale) > 0 {
		fmt.Printf("\nMarked aftership but rejected by the ClickHouse parser:\n")
		for _, name := range stale {
			fmt.Printf("  - %s\n", name)
		}
		os.Exit(1)
	}
}
