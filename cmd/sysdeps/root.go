package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/git-pkgs/sysdeps"
	_ "github.com/git-pkgs/sysdeps/all"
)

var (
	// Global flags
	cfgFile     string
	installRoot string
	debug       bool
	metricsFile string
)

// newRootCommand creates the command tree. Each call binds fresh flag
// values, so a tree is good for one execution.
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sysdeps",
		Short: "Resolve build dependencies to system-installed artifacts",
		Long: `sysdeps lets packaged builds consume dependencies that the system package
manager already installed instead of fetching them from remote repositories.

Configuration is read from, most dominant first:
  --config FILE
  $XDG_CONFIG_HOME/sysdeps/configuration.yaml
  <root>/etc/sysdeps/configuration.yaml
  <root>/usr/share/sysdeps/configuration.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "configuration file taking precedence over all layers")
	rootCmd.PersistentFlags().StringVar(&installRoot, "root", "/", "root the system configuration layers are read from")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus counters to this file on exit")

	rootCmd.AddCommand(
		newResolveCommand(),
		newSubstCommand(),
		newOwnerCommand(),
		newConfigCommand(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfiguration() (*sysdeps.Configuration, error) {
	layers := sysdeps.DefaultLayers(installRoot)
	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); err != nil {
			return nil, err
		}
		layers = append([]string{cfgFile}, layers...)
	}
	return sysdeps.LoadConfiguration(layers)
}

func newLogger(w io.Writer, cfg *sysdeps.Configuration) *slog.Logger {
	level := slog.LevelInfo
	if debug || cfg.Debug() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// setup loads the configuration and builds the environment. The returned
// function writes the metrics file, if one was requested.
func setup(cmd *cobra.Command, opts ...sysdeps.Option) (*sysdeps.Env, func() error, error) {
	cfg, err := loadConfiguration()
	if err != nil {
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	opts = append([]sysdeps.Option{
		sysdeps.WithLogger(newLogger(cmd.ErrOrStderr(), cfg)),
		sysdeps.WithRegisterer(reg),
	}, opts...)

	env, err := sysdeps.NewEnv(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}

	flush := func() error {
		if metricsFile == "" {
			return nil
		}
		return prometheus.WriteToTextfile(metricsFile, reg)
	}
	return env, flush, nil
}
