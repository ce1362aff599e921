package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	iconcache "github.com/sanshu/iconcache"
	"github.com/sanshu/iconcache/config"
	"github.com/sanshu/iconcache/iconfont"
	"github.com/sanshu/iconcache/types"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "iconcache",
		Short: "Caching front end for the iconfont icon library",
		Long: `iconcache answers icon searches and icon content requests from an
in-memory cache, calling iconfont only on a miss.

Run "iconcache serve" to speak newline-delimited JSON on stdin/stdout,
or use the search and content commands directly.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to configuration file (default: $ICONCACHE_CONFIG or ./iconcache.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text or json")

	root.AddCommand(
		newServeCmd(a),
		newSearchCmd(a),
		newContentCmd(a),
		newBenchCmd(a),
	)
	return root
}

func (a *app) init() error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.Load(a.configPath)
		if err == nil {
			err = config.ApplyEnv(cfg)
		}
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	// stdout belongs to command output and the ipc channel
	a.logger = cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(a.logger)
	return nil
}

// newService builds a Service over fetcher, or over the iconfont client
// when fetcher is nil.
func (a *app) newService(fetcher types.IconFetcher) (*iconcache.Service, error) {
	if fetcher == nil {
		fetcher = iconfont.NewClient(a.cfg.Provider, iconfont.WithLogger(a.logger.With("component", "iconfont")))
	}
	return iconcache.NewService(a.cfg, fetcher, a.logger)
}
