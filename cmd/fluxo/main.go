// Command fluxo parses, formats and executes SQL scripts.
//
// Usage:
//
//	fluxo [-config fluxo.yaml] <command> [flags] [files...]
//
// Commands:
//
//	parse   print the statement trees as explain, sql or json
//	fmt     rewrite scripts in canonical form
//	exec    run scripts against the catalog
//	repl    interactive shell
//	watch   re-parse a script whenever it changes
//
// Files default to standard input.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sqlc-dev/fluxo/catalog"
	"github.com/sqlc-dev/fluxo/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

const usage = `Usage: fluxo [-config path] <command> [flags] [files...]

Commands:
  parse   print the statement trees (-o explain|sql|json)
  fmt     rewrite scripts in canonical form (-w, -check)
  exec    run scripts against the catalog (-catalog path)
  repl    interactive shell
  watch   re-parse a script whenever it changes
`

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fluxo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", "", "Path to fluxo.yaml")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath, os.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger, err := cfg.Logger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	a := &app{cfg: cfg, logger: logger, stdin: stdin, stdout: stdout, stderr: stderr}
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "parse":
		err = a.parse(ctx, rest)
	case "fmt":
		err = a.format(ctx, rest)
	case "exec":
		err = a.exec(ctx, rest)
	case "repl":
		err = a.repl(ctx, rest)
	case "watch":
		err = a.watch(ctx, rest)
	case "help":
		fs.Usage()
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}

	switch {
	case err == nil:
		return 0
	case err == flag.ErrHelp:
		return 0
	case err == errUsage:
		return 2
	case err == errUnformatted:
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

// openCatalog returns the catalog at path, or an in-memory catalog when
// path is empty. The returned func releases the store.
func openCatalog(ctx context.Context, path string) (*catalog.Catalog, func() error, error) {
	if path == "" || path == ":memory:" {
		return catalog.New(), func() error { return nil }, nil
	}
	store, err := catalog.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	c, err := catalog.Open(ctx, store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return c, store.Close, nil
}
