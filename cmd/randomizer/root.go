package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/randomizer"
	"github.com/aretw0/randomizer/internal/cli"
	"github.com/aretw0/randomizer/internal/logging"
	"github.com/aretw0/randomizer/pkg/observability"
	"github.com/aretw0/randomizer/pkg/ports"
	"github.com/aretw0/randomizer/pkg/registry"
	"github.com/aretw0/randomizer/pkg/runner"
)

var (
	cfg    cli.Config
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "randomizer",
	Short: "Randomizer generates reproducible random data from a seed",
	Long: `Randomizer composes seeded factories into arrays, objects and trees.
The same blueprint and seed always produce the same values.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := cli.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		if cfg.LogJSON {
			logger = logging.NewJSON(os.Stderr, level)
		} else {
			logger = logging.New(level)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("templates", "", "Template directory (default $RANDOMIZER_TEMPLATES)")
}

// templatesDir resolves the template directory from flags, then config.
func templatesDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("templates"); dir != "" {
		return dir
	}
	return cfg.Templates
}

// newRunner builds a runner that logs group events at debug level and
// reports them to metrics when given.
func newRunner(store ports.FixtureStore, source string, metrics *observability.Metrics) (*runner.Runner, error) {
	hooks := []randomizer.Hooks{}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		hooks = append(hooks, observability.LogHooks(logger))
	}
	if metrics != nil {
		hooks = append(hooks, metrics.Hooks())
	}

	opts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithHooks(observability.Combine(hooks...)),
		runner.WithWorkers(cfg.Workers),
	}
	if store != nil {
		opts = append(opts, runner.WithStore(store))
	}

	if source != "" {
		factory, err := registry.Default().Lookup(source)
		if err != nil {
			return nil, err
		}
		opts = append(opts, runner.WithSource(factory))
	}

	return runner.New(opts...), nil
}
