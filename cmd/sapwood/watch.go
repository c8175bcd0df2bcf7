package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces the burst of filesystem events editors produce
// when saving a file.
const watchDebounce = 100 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "watch <input.csg>",
		Short: "Re-run the conversion whenever the input changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input with .xcsg extension)")
	return cmd
}

func runWatch(cmd *cobra.Command, input, output string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Watch the directory, not the file: editors typically replace the
	// file on save, which would drop a direct watch.
	dir := filepath.Dir(input)
	base := filepath.Base(input)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	convert := func() {
		if err := runConvert(input, output); err != nil {
			slog.Error("conversion failed", "input", input, "error", err)
		}
	}
	convert()
	slog.Info("watching", "input", input)

	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			slog.Info("stopping watch")
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, convert)
		}
	}
}
