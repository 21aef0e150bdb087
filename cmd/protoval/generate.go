package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/protoval/compiler"
	"github.com/syssam/protoval/compiler/gen"
)

// settleDelay groups the bursts of events editors produce on save.
const settleDelay = 100 * time.Millisecond

func generateCmd() *cobra.Command {
	var (
		configPath string
		opts       struct {
			pkg, target, header string
			workers             int
			noFormat            bool
		}
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "generate [flags] FILE",
		Short: "Generate Go code for every message of an IDL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := gen.DefaultConfig()
			if configPath != "" {
				loaded, err := gen.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			var options []gen.Option
			flags := cmd.Flags()
			if flags.Changed("package") {
				options = append(options, gen.WithPackage(opts.pkg))
			}
			if flags.Changed("target") || cfg.Target == "" {
				options = append(options, gen.WithTarget(opts.target))
			}
			if flags.Changed("header") {
				options = append(options, gen.WithHeader(opts.header))
			}
			if flags.Changed("workers") {
				options = append(options, gen.WithWorkers(opts.workers))
			}
			if flags.Changed("no-format") {
				options = append(options, gen.WithFormat(!opts.noFormat))
			}
			if err := cfg.ApplyAll(options...); err != nil {
				return err
			}
			if !watch {
				return generate(cmd.Context(), args[0], cfg)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchFile(ctx, args[0], cfg)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Generator config file (.yaml, .yml or .toml)")
	flags.StringVarP(&opts.pkg, "package", "p", "", "Go package name of the generated code (default: last element of the IDL package)")
	flags.StringVarP(&opts.target, "target", "t", ".", "Output directory")
	flags.StringVar(&opts.header, "header", "", "Header comment added to every file")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "Number of files generated in parallel (default: GOMAXPROCS)")
	flags.BoolVar(&opts.noFormat, "no-format", false, "Skip the goimports pass")
	flags.BoolVar(&watch, "watch", false, "Regenerate whenever the IDL file changes")
	return cmd
}

func generate(ctx context.Context, path string, cfg *gen.Config) error {
	return compiler.Generate(ctx, path, cfg, gen.WithLogger(slog.Default()))
}

// watchFile generates once, then again on every change of path until ctx
// is done. Failed runs are logged and do not stop watching.
func watchFile(ctx context.Context, path string, cfg *gen.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	// Editors often replace the file on save, so the directory is watched.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	run := func() {
		if err := generate(ctx, path, cfg); err != nil {
			slog.Error("protoval: generation failed", "file", path, "error", err)
		}
	}
	run()
	slog.Info("protoval: watching for changes", "file", path)

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			settle = time.After(settleDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("protoval: watcher error", "error", err)
		case <-settle:
			settle = nil
			run()
		}
	}
}
