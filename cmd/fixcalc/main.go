// Command fixcalc evaluates fixed-point decimal expressions written in
// prefix notation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/govalues/fixed"
)

// app is the state shared by the commands once the global flags are parsed.
type app struct {
	opts      options
	newLogger loggerFactory

	cfg    *config
	logger *zap.Logger
	a      *fixed.Arithmetic
}

func newApp(newLogger loggerFactory) *app {
	return &app{newLogger: newLogger}
}

func (app *app) setup(fs *pflag.FlagSet) error {
	cfg := newDefaultConfig()
	if app.opts.configPath != "" {
		var err error
		if cfg, err = newConfigFromFile(app.opts.configPath); err != nil {
			return err
		}
	}
	app.opts.override(fs, cfg)
	if err := cfg.validate(); err != nil {
		return err
	}
	a, err := cfg.arithmetic()
	if err != nil {
		return err
	}
	logger, err := app.newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	app.cfg, app.a, app.logger = cfg, a, logger
	logger.Debug("engine ready", zap.Stringer("arithmetic", a), zap.Int("workers", cfg.Workers))
	return nil
}

func (app *app) sync() {
	if app.logger != nil {
		_ = app.logger.Sync()
	}
}

func (app *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fixcalc",
		Short:         "Fixed-point decimal calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd.Flags())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			app.sync()
		},
	}
	app.opts.bind(cmd.PersistentFlags())
	cmd.AddCommand(
		newEvalCmd(app),
		newBatchCmd(app),
		newMetricsCmd(app),
	)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newApp(newLogger).command().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
