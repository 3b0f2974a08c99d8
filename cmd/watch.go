package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/conneroisu/headset/internal/config"
	"github.com/conneroisu/headset/internal/errors"
	"github.com/conneroisu/headset/internal/logging"
	"github.com/conneroisu/headset/internal/watcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the parts whenever the configuration file changes",
	Long: `Generate the parts once, then watch the configuration file and generate
them again every time it is saved. An invalid edit is reported and the
previous meshes are left in place until the file is fixed.

Examples:
  headset watch                        # Watch .headset.yml
  headset watch --config alice.yml     # Watch another file
  headset watch -p headband -r 100     # Quick headband previews`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var watchDelay time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)

	AddOutputFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 300*time.Millisecond, "Wait this long after the last change before regenerating")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := configFilePath()
	if !watcher.YAMLFilter(path) {
		return fmt.Errorf("cannot watch %s: only YAML configuration files are watched", path)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, closeLog, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	if _, err := generate(ctx, cfg, logger, out, cfg.Output.Parts); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Initial generation failed: %s\n", errors.FormatErrorWithSuggestions(err))
	}

	fileWatcher, err := watcher.NewFileWatcher(watchDelay, logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fileWatcher.Stop()

	fileWatcher.AddFilter(watcher.YAMLFilter)
	fileWatcher.AddFilter(watcher.NoBackupFilter)
	fileWatcher.AddHandler(regenerate(ctx, logger, out))

	if err := fileWatcher.AddFile(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	if err := fileWatcher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	fmt.Fprintf(out, "Watching %s for changes... (Press Ctrl+C to stop)\n", path)
	<-ctx.Done()
	fmt.Fprintln(out, "Stopping file watcher...")

	return nil
}

// regenerate returns a change handler that reloads the configuration and
// generates the parts again. Errors are reported and never stop the watcher.
func regenerate(ctx context.Context, logger logging.Logger, out io.Writer) watcher.ChangeHandler {
	return func(events []watcher.ChangeEvent) error {
		for _, event := range events {
			logger.Debug(ctx, "Configuration changed", "path", event.Path, "type", event.Type.String())
		}

		if err := viper.ReadInConfig(); err != nil {
			logger.Error(ctx, err, "Failed to read configuration file")
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(out, "Configuration is invalid, keeping previous meshes:\n%s\n", errors.FormatErrorWithSuggestions(err))
			return nil
		}

		if _, err := generate(ctx, cfg, logger, out, cfg.Output.Parts); err != nil {
			if errors.IsRecoverable(err) {
				logger.Warn(ctx, err, "Regeneration failed, waiting for the next change")
			} else {
				logger.Error(ctx, err, "Regeneration failed")
			}
		}
		return nil
	}
}
