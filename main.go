// Command enclose evaluates scene scripts and reports which probe points lie
// inside which solids.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chazu/enclose/pkg/config"
	"github.com/chazu/enclose/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is the release version reported by the version command.
const Version = "0.3.0"

var (
	cfg config.Config
	log *logrus.Logger

	logLevel  string
	logFormat string
	meshCells int
	workers   int
	trace     bool
	timeout   time.Duration
	asJSON    bool
)

// RootCmd is the main command.
var RootCmd = &cobra.Command{
	Use:   "enclose",
	Short: "Point-in-solid classification for scene scripts.",
	Long: `enclose evaluates a scene script, meshes every solid it defines and
reports whether each probe point lies inside or outside each solid.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return startup(cmd)
	},
}

// startup loads the environment configuration and lets explicitly set flags
// override it.
func startup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("cells") {
		cfg.MeshCells = meshCells
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("trace") {
		cfg.Trace = trace
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("addr") {
		cfg.Addr = addr
	}
	if cfg.Trace && !flags.Changed("log-level") {
		cfg.LogLevel = "debug"
	}
	log = logger.Setup(cfg.LogLevel, cfg.LogFormat)
	return nil
}

func init() {
	RootCmd.AddCommand(evalCmd)
	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(versionCmd)

	pf := RootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text or json")
	pf.IntVar(&meshCells, "cells", 200, "marching cubes resolution along the longest axis")
	pf.IntVar(&workers, "workers", 0, "classification goroutines (0 means GOMAXPROCS)")
	pf.BoolVar(&trace, "trace", false, "log the ray cast for every classification")
	pf.DurationVar(&timeout, "timeout", 5*time.Second, "limit for evaluating one scene")

	evalCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
}

var evalCmd = &cobra.Command{
	Use:   "eval FILE",
	Short: "Evaluate a scene script and classify its probes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		result := NewApp(cfg, log).Evaluate(cmd.Context(), string(source))

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
		} else {
			printResult(out, result)
		}
		if !result.OK() {
			return fmt.Errorf("%s: %d error(s)", args[0], len(result.Errors))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of enclose",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "enclose v%s\n", Version)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}

func main() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
