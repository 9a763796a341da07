// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"dnsrdf/config"
	"dnsrdf/identifier"
	"dnsrdf/logger"
	"dnsrdf/mapper"

	"github.com/spf13/cobra"
)

const (
	appName    = "dnsrdf"
	appversion = "0.3.1"
)

// runtimeEnv is the state shared by every subcommand once flags are parsed.
type runtimeEnv struct {
	cfg    config.Config
	path   string
	logger *slog.Logger
	mapper *mapper.Mapper
}

type rootFlags struct {
	configPath string
	workers    int
	logLevel   string
	probeBase  string
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		flags rootFlags
		env   runtimeEnv
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Convert DNS scan records into RDF N-Quads",
		Long: `dnsrdf turns DNS scan observations (A, AAAA, CNAME, DNAME, MX, NS, SOA
and TXT records) into RDF N-Quads. Every observation gets its own named
graph, identified by the probe time, so repeated scans of the same name
can be told apart while domains and addresses keep one identity.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadEnv(cmd, flags)
			if err != nil {
				return err
			}
			env = *loaded
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Config file or directory (default: search for "+config.FileName+")")
	pf.IntVarP(&flags.workers, "workers", "w", 0, "Map records with N workers; output order is kept")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log severity (debug, info, warn, error, none)")
	pf.StringVar(&flags.probeBase, "probe-base", "", "Base URI for probe graph names")

	cmd.AddCommand(
		convertCmd(&env),
		zoneCmd(&env),
		serveCmd(&env),
		shellCmd(&env),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, appversion)
			},
		},
	)
	return cmd
}

// loadEnv resolves configuration, applies flag overrides and builds the
// logger and mapper.
func loadEnv(cmd *cobra.Command, flags rootFlags) (*runtimeEnv, error) {
	var (
		loaded *config.Loaded
		err    error
	)
	if flags.configPath != "" {
		loaded, err = config.LoadFromPath(flags.configPath)
	} else {
		loaded, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	cfg := loaded.Config

	if cmd.Flags().Changed("workers") {
		cfg.Workers = flags.workers
	}
	if flags.logLevel != "" {
		if !logger.ValidSeverity(flags.logLevel) {
			return nil, fmt.Errorf("invalid --log-level %q", flags.logLevel)
		}
		cfg.Log.Severity = flags.logLevel
	}
	if flags.probeBase != "" {
		cfg.ProbeBase = flags.probeBase
	}
	cfg.Normalize(configDir(loaded.Path))

	log := logger.New(cfg.Log)
	if loaded.Created {
		log.Info("created default config", "path", loaded.Path)
	}
	return &runtimeEnv{
		cfg:    cfg,
		path:   loaded.Path,
		logger: log,
		mapper: mapper.New(identifier.NewScheme(cfg.ProbeBase)),
	}, nil
}

func configDir(path string) string {
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	return filepath.Dir(path)
}
