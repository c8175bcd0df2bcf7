package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// cfg is the active configuration, populated before any command runs.
var cfg *Config

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "sapwood",
		Short:         "Convert OpenSCAD .csg dumps to xcsg documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return setupLogging(cfg.Log.Level)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: sapwood.yaml in the working directory)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newConvertCmd())
	root.AddCommand(newMeshCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// setupLogging installs the default slog handler at the configured level.
func setupLogging(level string) error {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info", "":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}
