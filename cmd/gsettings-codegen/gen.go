package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gsettings-codegen/internal/compile"
	"gsettings-codegen/internal/emit"
	"gsettings-codegen/internal/request"
)

var (
	genOutput string
	genWatch  bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Compile the schema and write the generated bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		if genWatch {
			return watchAndGenerate(cmd.Context(), logger)
		}

		return generate(logger)
	},
}

func init() {
	genCmd.Flags().StringVarP(&genOutput, "output", "o", "", "override the request's output path")
	genCmd.Flags().BoolVarP(&genWatch, "watch", "w", false, "regenerate whenever the schema or request file changes")

	rootCmd.AddCommand(genCmd)
}

// generate runs one compile-and-emit pass.
func generate(logger zerolog.Logger) error {
	req, err := request.LoadFile(requestPath)
	if err != nil {
		return err
	}

	if genOutput != "" {
		req.Output.Path = genOutput
	}

	res, err := compile.Run(req, logger)
	if err != nil {
		return err
	}

	emitter := &emit.Emitter{DebugDir: filepath.Dir(req.Output.Path)}

	file, err := emitter.Emit(res)
	if err != nil {
		return err
	}

	if err := emit.WriteFile(file, req.Output.Path); err != nil {
		return err
	}

	logger.Info().
		Str("schema", res.Doc.Schema.ID).
		Int("keys", len(res.Specs)).
		Str("output", req.Output.Path).
		Msg("generated bindings")

	return nil
}

// watchAndGenerate regenerates on every change of the request file or
// the schema file until interrupted. A failing pass logs its error and
// keeps the watch alive.
func watchAndGenerate(ctx context.Context, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := generate(logger); err != nil {
		logger.Error().Err(err).Msg("generation failed")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch directories rather than files; editors that save
	// atomically replace the file and break file-level watches.
	dirs := map[string]struct{}{filepath.Dir(requestPath): {}}

	var outPath string

	if req, err := request.LoadFile(requestPath); err == nil {
		dirs[filepath.Dir(req.File)] = struct{}{}

		outPath = req.Output.Path
		if genOutput != "" {
			outPath = genOutput
		}
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}

		logger.Debug().Str("dir", dir).Msg("watching")
	}

	// Debounce bursts of events from a single save.
	var timer *time.Timer

	regen := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("stopping watch")

			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			// Our own output lands in a watched directory; reacting to
			// it would loop the watch forever.
			if outPath != "" && filepath.Clean(event.Name) == filepath.Clean(outPath) {
				continue
			}

			logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("file changed")

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(200*time.Millisecond, func() {
				select {
				case regen <- struct{}{}:
				default:
				}
			})
		case <-regen:
			if err := generate(logger); err != nil {
				logger.Error().Err(err).Msg("generation failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Error().Err(err).Msg("watch error")
		}
	}
}
