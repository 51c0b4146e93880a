package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/executor"
	"github.com/sqlc-dev/fluxo/internal/normalize"
	"github.com/sqlc-dev/fluxo/parser"
	"github.com/sqlc-dev/fluxo/token"
)

const continuationPrompt = "   ... "

// session evaluates REPL input. Statements run against the executor and
// statements without a confirmation print their tree in the current
// output mode.
type session struct {
	exec   *executor.Executor
	output string
	out    io.Writer
}

// eval parses and runs one complete input.
func (s *session) eval(ctx context.Context, src string) {
	stmts, err := parser.ParseString(ctx, src)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	for _, stmt := range stmts {
		res, err := s.exec.Execute(ctx, stmt)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		if res.Message != "" {
			fmt.Fprintln(s.out, res.Message)
			continue
		}
		if err := writeStatements(s.out, s.output, []ast.Statement{stmt}); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// command handles a ':' meta-command. It reports false when the REPL
// should exit.
func (s *session) command(cmd string) bool {
	switch cmd {
	case ":help", ":h", ":?":
		fmt.Fprintln(s.out, "REPL Commands:")
		fmt.Fprintln(s.out, "  :help, :h, :?   Show this help")
		fmt.Fprintln(s.out, "  :explain        Print statement trees")
		fmt.Fprintln(s.out, "  :sql            Print statements in canonical form")
		fmt.Fprintln(s.out, "  :json           Print statements as JSON")
		fmt.Fprintln(s.out, "  :quit, :q       Exit the REPL (also exit or quit)")
		fmt.Fprintln(s.out, "")
		fmt.Fprintln(s.out, "Statements end with ';'.")
	case ":explain", ":sql", ":json":
		s.output = strings.TrimPrefix(cmd, ":")
		fmt.Fprintf(s.out, "Output mode: %s\n", s.output)
	case ":quit", ":q":
		return false
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type :help for commands)\n", cmd)
	}
	return true
}

// needsMoreInput reports whether src is an unfinished statement. A
// statement is finished by a ';' outside a string literal.
func needsMoreInput(src string) bool {
	inString := false
	last := byte(0)
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inString && c == '\\' && i+1 < len(src) && src[i+1] == '\'':
			i++
			continue
		case c == '\'':
			inString = !inString
		}
		if !inString && c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			last = c
		}
	}
	return inString || last != ';'
}

// complete returns completions for the last word of line: SQL keywords
// in upper case, matched case-insensitively.
func complete(line string) []string {
	start := strings.LastIndexAny(line, " \t(,") + 1
	prefix, word := line[:start], strings.ToUpper(line[start:])
	if word == "" {
		return nil
	}
	var out []string
	for kw := range token.Keywords {
		if strings.HasPrefix(kw, word) {
			out = append(out, prefix+kw)
		}
	}
	sort.Strings(out)
	return out
}

func (a *app) repl(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	catalogPath := fs.String("catalog", a.cfg.Catalog.Path, "Catalog database file (empty keeps it in memory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, closeCatalog, err := openCatalog(ctx, *catalogPath)
	if err != nil {
		return err
	}
	defer closeCatalog()

	s := &session{exec: executor.New(c, a.logger), output: a.cfg.Output, out: a.stdout}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	historyFile := a.cfg.REPL.History
	if historyFile == "" {
		historyFile = filepath.Join(os.TempDir(), ".fluxo_history")
	}
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(a.stdout, "fluxo SQL shell. Type :help for commands, Ctrl+D to quit.")

	var buf strings.Builder
	lastEntry := ""
	for ctx.Err() == nil {
		prompt := a.cfg.REPL.Prompt
		if buf.Len() > 0 {
			prompt = continuationPrompt
		}
		text, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				if buf.Len() > 0 {
					fmt.Fprintln(a.stdout, "^C (cleared)")
				}
				buf.Reset()
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.stdout)
				return nil
			}
			return err
		}

		trimmed := strings.TrimSpace(text)
		if buf.Len() == 0 {
			if trimmed == "" {
				continue
			}
			if trimmed == "exit" || trimmed == "quit" {
				return nil
			}
			if strings.HasPrefix(trimmed, ":") {
				if !s.command(trimmed) {
					return nil
				}
				continue
			}
		}

		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
		src := buf.String()
		if needsMoreInput(src) {
			continue
		}
		buf.Reset()

		// Only record an entry that differs from the previous one in more
		// than spelling.
		if entry := normalize.SQL(src); entry != lastEntry {
			line.AppendHistory(src)
			lastEntry = entry
		}
		s.eval(ctx, src)
	}
	return ctx.Err()
}
