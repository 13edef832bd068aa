package main

import (
	"coachplus/coachlog/internal/bootstrap"
	"coachplus/coachlog/internal/config"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "coachlog",
		Short:         "Per-day coaching log",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yaml")

	root.AddCommand(newSessionCmd(&configPath))
	root.AddCommand(newTemplateCmd(&configPath))
	root.AddCommand(newStatsCmd(&configPath))
	root.AddCommand(newFocusCmd(&configPath))
	root.AddCommand(newExportCmd(&configPath))
	root.AddCommand(newImportCmd(&configPath))
	return root
}

// withApp loads configuration, runs fn against a freshly wired app and closes
// the storage backend afterwards.
func withApp(configPath string, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Close(ctx); err != nil {
			log.Printf("ERROR: Failed to close storage: %v", err)
		}
	}()
	return fn(context.Background(), app)
}

// parseDayOrToday parses YYYY-MM-DD; an empty value means today.
func parseDayOrToday(app *bootstrap.App, s string) (time.Time, error) {
	if s == "" {
		return app.Calendar.StartOfDay(time.Now()), nil
	}
	return app.Calendar.ParseDay(s)
}
