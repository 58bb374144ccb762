package cmd

import (
	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/mcalc/foundation/core/log"
	"github.com/msto63/mcalc/internal/history"
	"github.com/msto63/mcalc/internal/session"
	"github.com/msto63/mcalc/pkg/core/config"
	"github.com/msto63/mcalc/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
	strict  bool
)

var rootCmd = &cobra.Command{
	Use:   "mcalc",
	Short: "mCalc - interactive integer calculator",
	Long: `mCalc evaluates integer arithmetic line by line.

  1 + 2 * 3        precedence and parentheses: + - * / ( )
  x = 5            variables persist for the whole session
  x * 2            division truncates toward zero

Without a subcommand mcalc starts the line-oriented REPL.`,
	SilenceUsage: true,
	RunE:         runREPL,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "reject tokens after a complete expression")
}

// app bundles what every command needs
type app struct {
	config  *config.Config
	logger  *mdwlog.Logger
	store   history.Store
	session *session.Session
}

// loadApp resolves configuration, logging and history for cmd
func loadApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("strict") {
		cfg.Evaluator.Strict = strict
	}

	logger := logging.FromConfig(cfg, verbose).WithOutput(cmd.ErrOrStderr())
	mdwlog.SetDefault(logger)

	store, err := history.Open(cfg.History)
	if err != nil {
		logger.LogError(err)
		return nil, err
	}

	logger.Debug("configuration loaded", mdwlog.Fields{
		"config":  cfgFile,
		"strict":  cfg.Evaluator.Strict,
		"history": cfg.History.Enabled,
	})

	return &app{
		config: cfg,
		logger: logger,
		store:  store,
		session: session.New(session.Options{
			Config: cfg,
			Logger: logger,
			Store:  store,
		}),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
