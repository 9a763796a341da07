// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"dnsrdf/api"
	"dnsrdf/dnsrecords"
	"dnsrdf/identifier"
	"dnsrdf/pipeline"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ioFlags name the input and output files of a conversion; "-" or empty
// means stdin/stdout.
type ioFlags struct {
	input  string
	output string
}

func (f *ioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "-", "Input file")
	cmd.Flags().StringVarP(&f.output, "output", "o", "-", "Output file")
}

func (f *ioFlags) open(cmd *cobra.Command) (io.Reader, io.Writer, func() error, error) {
	var (
		in      io.Reader = cmd.InOrStdin()
		out     io.Writer = cmd.OutOrStdout()
		closers []io.Closer
	)
	if f.input != "" && f.input != "-" {
		file, err := os.Open(f.input)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open input: %w", err)
		}
		in = file
		closers = append(closers, file)
	}
	if f.output != "" && f.output != "-" {
		file, err := os.Create(f.output)
		if err != nil {
			for _, c := range closers {
				_ = c.Close()
			}
			return nil, nil, nil, fmt.Errorf("create output: %w", err)
		}
		out = file
		closers = append(closers, file)
	}
	return in, out, closeOnce(closers), nil
}

// closeOnce returns a func closing every closer on its first call. Later
// calls return the first close error again without closing anything.
func closeOnce(closers []io.Closer) func() error {
	var (
		once  sync.Once
		first error
	)
	return func() error {
		once.Do(func() {
			for _, c := range closers {
				if err := c.Close(); err != nil && first == nil {
					first = err
				}
			}
		})
		return first
	}
}

func kindNames() string {
	kinds := dnsrecords.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func convertCmd(env *runtimeEnv) *cobra.Command {
	var files ioFlags
	cmd := &cobra.Command{
		Use:   "convert <kind>",
		Short: "Convert CSV rows of one record kind to N-Quads",
		Long: "Reads a CSV file whose header names the record fields (name, isotime and\n" +
			"the kind's own columns) and writes one N-Quads block per row.\n" +
			"Kinds: " + kindNames(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := dnsrecords.ParseKind(args[0])
			if err != nil {
				return err
			}
			in, out, closeAll, err := files.open(cmd)
			if err != nil {
				return err
			}
			defer closeAll()
			if in == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
				fmt.Fprintln(cmd.ErrOrStderr(), "reading CSV from the terminal; finish with Ctrl-D")
			}
			_, err = pipeline.Run(cmd.Context(), pipeline.NewCSVSource(in, kind), out, env.options())
			if err != nil {
				return err
			}
			return closeAll()
		},
	}
	files.register(cmd)
	return cmd
}

func zoneCmd(env *runtimeEnv) *cobra.Command {
	var (
		files   ioFlags
		isotime string
		origin  string
	)
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Convert an RFC 1035 zone file to N-Quads",
		Long: "Parses a master file and maps every A, AAAA, CNAME, DNAME, MX, NS, SOA and\n" +
			"TXT record as one observation made at --isotime. Other types are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if isotime == "" {
				isotime = identifier.FormatTimestamp(time.Now().UTC())
			} else if _, err := identifier.ParseTimestamp(isotime); err != nil {
				return err
			}
			in, out, closeAll, err := files.open(cmd)
			if err != nil {
				return err
			}
			defer closeAll()
			_, err = pipeline.Run(cmd.Context(), pipeline.NewZoneSource(in, origin, isotime), out, env.options())
			if err != nil {
				return err
			}
			return closeAll()
		},
	}
	files.register(cmd)
	cmd.Flags().StringVar(&isotime, "isotime", "", "Observation time for every record (default: now)")
	cmd.Flags().StringVar(&origin, "origin", "", "Origin for relative names")
	return cmd
}

func serveCmd(env *runtimeEnv) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversions over HTTP",
		Long: "POST /convert/<kind> converts a CSV body; POST /convert/zone converts a\n" +
			"zone file (query parameters isotime and origin). GET /health and\n" +
			"GET /metrics report status and Prometheus counters.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = env.cfg.APIPort
			}
			srv := api.New(env.mapper, env.cfg.Workers, env.logger)
			return api.Run(cmd.Context(), port, srv.Register, env.logger)
		},
	}
	cmd.Flags().StringVar(&port, "apiport", "", "Port for the HTTP API (default from config)")
	return cmd
}

func shellCmd(env *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Map records typed interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(env, cmd.OutOrStdout())
		},
	}
}

func (env *runtimeEnv) options() pipeline.Options {
	return pipeline.Options{
		Mapper:  env.mapper,
		Workers: env.cfg.Workers,
		Logger:  env.logger,
	}
}
