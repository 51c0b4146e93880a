package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/executor"
	"github.com/sqlc-dev/fluxo/internal/config"
	"github.com/sqlc-dev/fluxo/internal/normalize"
	"github.com/sqlc-dev/fluxo/parser"
)

var (
	errUsage       = errors.New("usage")
	errUnformatted = errors.New("unformatted")
)

// input is one script to process. Name is "-" for standard input.
type input struct {
	Name string
	Src  string
}

func (a *app) inputs(files []string) ([]input, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	var ins []input
	for _, name := range files {
		var data []byte
		var err error
		if name == "-" {
			data, err = io.ReadAll(a.stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		ins = append(ins, input{Name: name, Src: string(data)})
	}
	return ins, nil
}

func (a *app) parse(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	output := fs.String("o", a.cfg.Output, "Output format: explain, sql or json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	switch *output {
	case config.OutputExplain, config.OutputSQL, config.OutputJSON:
	default:
		fmt.Fprintf(a.stderr, "invalid output %q\n", *output)
		return errUsage
	}

	ins, err := a.inputs(fs.Args())
	if err != nil {
		return err
	}
	for _, in := range ins {
		stmts, err := parser.ParseString(ctx, in.Src)
		if err != nil {
			return fmt.Errorf("%s: %w", in.Name, err)
		}
		if err := writeStatements(a.stdout, *output, stmts); err != nil {
			return err
		}
	}
	return nil
}

// jsonStatement tags a statement with its node type.
type jsonStatement struct {
	Type      string        `json:"type"`
	Statement ast.Statement `json:"statement"`
}

func writeStatements(w io.Writer, output string, stmts []ast.Statement) error {
	switch output {
	case config.OutputSQL:
		if len(stmts) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, parser.Format(stmts))
		return err
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		for _, stmt := range stmts {
			if err := enc.Encode(jsonStatement{Type: nodeType(stmt), Statement: stmt}); err != nil {
				return err
			}
		}
		return nil
	default:
		for _, stmt := range stmts {
			if _, err := io.WriteString(w, parser.Explain(stmt)); err != nil {
				return err
			}
		}
		return nil
	}
}

func nodeType(n ast.Node) string {
	return reflect.TypeOf(n).Elem().Name()
}

func (a *app) format(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	write := fs.Bool("w", false, "Write the result back to the source file")
	check := fs.Bool("check", false, "List files that are not in canonical form")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ins, err := a.inputs(fs.Args())
	if err != nil {
		return err
	}
	unformatted := false
	for _, in := range ins {
		stmts, err := parser.ParseString(ctx, in.Src)
		if err != nil {
			return fmt.Errorf("%s: %w", in.Name, err)
		}
		formatted := parser.Format(stmts)

		switch {
		case *check:
			if normalize.Whitespace(in.Src) != normalize.Whitespace(formatted) {
				fmt.Fprintln(a.stdout, in.Name)
				unformatted = true
			}
		case *write && in.Name != "-":
			if strings.TrimSpace(in.Src) == formatted {
				continue
			}
			if err := os.WriteFile(in.Name, []byte(formatted+"\n"), 0o644); err != nil {
				return err
			}
			a.logger.Info("formatted", "file", in.Name)
		default:
			fmt.Fprintln(a.stdout, formatted)
		}
	}
	if unformatted {
		return errUnformatted
	}
	return nil
}

func (a *app) exec(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("exec", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	catalogPath := fs.String("catalog", a.cfg.Catalog.Path, "Catalog database file (empty keeps it in memory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ins, err := a.inputs(fs.Args())
	if err != nil {
		return err
	}
	c, closeCatalog, err := openCatalog(ctx, *catalogPath)
	if err != nil {
		return err
	}
	defer closeCatalog()

	ex := executor.New(c, a.logger)
	for _, in := range ins {
		stmts, err := parser.ParseString(ctx, in.Src)
		if err != nil {
			return fmt.Errorf("%s: %w", in.Name, err)
		}
		results, err := ex.ExecuteAll(ctx, stmts)
		for _, res := range results {
			if res.Message != "" {
				fmt.Fprintln(a.stdout, res.Message)
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", in.Name, err)
		}
	}
	return nil
}
