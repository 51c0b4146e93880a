package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sqlc-dev/fluxo/parser"
)

// Rapid successive writes to the watched file are reported once.
const debounce = 100 * time.Millisecond

// watchFile calls onChange once at start and again after each write to
// path, until ctx is done. The parent directory is watched so that
// editors that replace the file are followed.
func watchFile(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	onChange()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", err)
		}
	}
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	output := fs.String("o", a.cfg.Output, "Output format: explain, sql or json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "Usage: fluxo watch [-o format] <file>")
		return errUsage
	}
	path := fs.Arg(0)

	a.logger.Info("watching", "file", path)
	return watchFile(ctx, path, func() {
		stmts, err := parser.ParseFile(ctx, path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return
			}
			fmt.Fprintf(a.stdout, "%s: %v\n", path, err)
			return
		}
		fmt.Fprintf(a.stdout, "-- %s (%d statements)\n", path, len(stmts))
		if err := writeStatements(a.stdout, *output, stmts); err != nil {
			a.logger.Error("writing output", "err", err)
		}
	})
}
