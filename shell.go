// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dnsrdf/cliutil"
	"dnsrdf/dnsrecords"
	"dnsrdf/identifier"
	"dnsrdf/rdf"

	"github.com/chzyer/readline"
)

const shellPrompt = "dnsrdf> "

var errShellExit = errors.New("exit")

// runShell reads "<kind> field=value ..." lines and prints each block.
func runShell(env *runtimeEnv, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     filepath.Join(os.TempDir(), "dnsrdf.history"),
		AutoComplete:    shellCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          out,
	})
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(out, "Type a record as: <kind> name=... isotime=... field=value. '?' for help.")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if err != nil {
			return nil
		}
		if err := handleShellLine(env, line, out); err != nil {
			if errors.Is(err, errShellExit) {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

// handleShellLine maps one shell line and writes the resulting block to out.
// A missing isotime is filled with the current time.
func handleShellLine(env *runtimeEnv, line string, out io.Writer) error {
	args, err := cliutil.SplitLine(strings.TrimSpace(line))
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	switch strings.ToLower(args[0]) {
	case "exit", "quit", "q":
		return errShellExit
	}
	if cliutil.IsHelpRequest(args) {
		shellHelp(out)
		return nil
	}

	kind, err := dnsrecords.ParseKind(args[0])
	if err != nil {
		return err
	}
	if cliutil.ContainsHelpToken(args[1:]) {
		kindHelp(out, kind)
		return nil
	}
	fields, err := cliutil.ParseAssignments(args[1:])
	if err != nil {
		return err
	}
	row := dnsrecords.Row(fields)
	if _, ok := row.Get(dnsrecords.FieldIsoTime); !ok {
		row[dnsrecords.FieldIsoTime] = identifier.FormatTimestamp(time.Now().UTC())
	}
	rec, err := dnsrecords.FromRow(kind, row)
	if err != nil {
		return err
	}
	block, err := env.mapper.Map(rec)
	if err != nil {
		return err
	}
	enc := rdf.NewEncoder(out)
	if err := enc.WriteBlock(block.Quads); err != nil {
		return err
	}
	return enc.Flush()
}

func shellHelp(out io.Writer) {
	fmt.Fprintln(out, "Available commands:")
	for _, k := range dnsrecords.Kinds() {
		fmt.Fprintf(out, "%-15s %s\n", k, "- Map a "+string(k)+" record ("+string(k)+" ? lists its fields)")
	}
	fmt.Fprintf(out, "%-15s %s\n", "exit", "- Leave the shell")
	fmt.Fprintf(out, "%-15s %s\n", "help", "- Show this help")
}

func kindHelp(out io.Writer, kind dnsrecords.Kind) {
	fmt.Fprintf(out, "%s fields:\n", kind)
	for _, f := range dnsrecords.Fields(kind) {
		req := "optional"
		if f.Required {
			req = "required"
		}
		if f.Name == dnsrecords.FieldIsoTime {
			req = "default: now"
		}
		fmt.Fprintf(out, "%-15s - %s\n", f.Name, req)
	}
}

func shellCompleter() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(dnsrecords.Kinds())+4)
	for _, k := range dnsrecords.Kinds() {
		var fields []readline.PrefixCompleterInterface
		for _, f := range dnsrecords.Fields(k) {
			fields = append(fields, readline.PcItem(f.Name+"="))
		}
		items = append(items, readline.PcItem(string(k), fields...))
	}
	items = append(items,
		readline.PcItem("exit"),
		readline.PcItem("help"),
		readline.PcItem("?"),
	)
	return readline.NewPrefixCompleter(items...)
}
