// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only

// Package pipeline drives record-at-a-time conversion: read an item, map it,
// write its quad block, move on. A failed record is logged and skipped; it
// never affects the output of its neighbours.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"dnsrdf/converters"
	"dnsrdf/dnsrecords"
	"dnsrdf/ipvalidator"
	"dnsrdf/mapper"
	"dnsrdf/metrics"
	"dnsrdf/rdf"

	"golang.org/x/sync/errgroup"
)

// Options configures a run.
type Options struct {
	// Mapper defaults to mapper.Default.
	Mapper *mapper.Mapper
	// Workers > 1 maps records concurrently; output order is preserved.
	Workers int
	// Logger receives per-record diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Summary counts what a run did.
type Summary struct {
	Read    int `json:"read"`
	Emitted int `json:"emitted"`
	Skipped int `json:"skipped"`
	Quads   int `json:"quads"`
}

type result struct {
	item  Item
	block mapper.Block
	err   error
}

// Run converts every item of src and writes one N-Quads block per record to
// w, each followed by a blank line. It returns an error only for input
// framing or output failures.
func Run(ctx context.Context, src Source, w io.Writer, opts Options) (Summary, error) {
	if opts.Mapper == nil {
		opts.Mapper = mapper.Default
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &runner{opts: opts, enc: rdf.NewEncoder(w)}

	var err error
	if opts.Workers > 1 {
		err = r.runParallel(ctx, src)
	} else {
		err = r.runSequential(ctx, src)
	}
	if flushErr := r.enc.Flush(); err == nil {
		err = flushErr
	}
	opts.Logger.Info("conversion finished",
		"read", r.summary.Read,
		"emitted", r.summary.Emitted,
		"skipped", r.summary.Skipped,
		"quads", r.summary.Quads)
	return r.summary, err
}

type runner struct {
	opts    Options
	enc     *rdf.Encoder
	summary Summary
}

func (r *runner) process(item Item) result {
	if item.Err != nil {
		return result{item: item, err: item.Err}
	}
	if a, ok := item.Record.(dnsrecords.A); ok && ipvalidator.ValidateIP(a.IP4Address) != ipvalidator.IPv4 {
		r.opts.Logger.Debug("IPv4 address kept verbatim", "line", item.Line, "address", a.IP4Address)
	}
	block, err := r.opts.Mapper.Map(item.Record)
	return result{item: item, block: block, err: err}
}

// emit writes one result. Only output errors are returned.
func (r *runner) emit(res result) error {
	r.summary.Read++
	kind := string(res.item.Kind)
	if res.err != nil {
		r.summary.Skipped++
		metrics.RecordSkipped(kind)
		level := slog.LevelWarn
		if errors.Is(res.err, converters.ErrUnsupportedRR) {
			level = slog.LevelDebug
		}
		r.opts.Logger.Log(context.Background(), level, "record skipped",
			"line", res.item.Line, "kind", kind, "error", res.err)
		return nil
	}
	if err := r.enc.WriteBlock(res.block.Quads); err != nil {
		return fmt.Errorf("pipeline: write block: %w", err)
	}
	if err := r.enc.Flush(); err != nil {
		return fmt.Errorf("pipeline: flush: %w", err)
	}
	r.summary.Emitted++
	r.summary.Quads += len(res.block.Quads)
	metrics.RecordMapped(kind, len(res.block.Quads))
	return nil
}

func (r *runner) runSequential(ctx context.Context, src Source) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		item, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := r.emit(r.process(item)); err != nil {
			return err
		}
	}
}

// job pairs an item with the slot its worker fills. Jobs are queued twice:
// once for the workers and once, in input order, for the writer.
type job struct {
	item Item
	done chan result
}

func (r *runner) runParallel(ctx context.Context, src Source) error {
	g, ctx := errgroup.WithContext(ctx)
	workers := r.opts.Workers
	jobs := make(chan *job, workers)
	ordered := make(chan *job, workers*4)

	g.Go(func() error {
		defer close(jobs)
		defer close(ordered)
		for {
			item, err := src.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			j := &job{item: item, done: make(chan result, 1)}
			select {
			case ordered <- j:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case jobs <- j:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := range jobs {
				j.done <- r.process(j.item)
			}
			return nil
		})
	}

	g.Go(func() error {
		for j := range ordered {
			select {
			case res := <-j.done:
				if err := r.emit(res); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}
