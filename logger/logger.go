// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"dnsrdf/config"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

const rotationCheckInterval = 5 * time.Minute

// SeverityNone disables logging: no files are created, all output is discarded.
const SeverityNone = "none"

// safeWriter wraps a writer and on write failure falls back to stderr without failing.
type safeWriter struct {
	inner io.Writer
}

func (w *safeWriter) Write(p []byte) (n int, err error) {
	n, err = w.inner.Write(p)
	if err != nil {
		_, _ = os.Stderr.Write([]byte("[log write failed, logging to stderr] "))
		_, _ = os.Stderr.Write(p)
		return len(p), nil
	}
	return n, nil
}

// throttleRotateWriter wraps lumberjack and only runs a time-based rotation check every 5m.
type throttleRotateWriter struct {
	lj         *lj.Logger
	lastCheck  time.Time
	mu         sync.Mutex
	maxAgeDays int
}

func (w *throttleRotateWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	if time.Since(w.lastCheck) > rotationCheckInterval {
		w.lastCheck = time.Now()
		info, err := os.Stat(w.lj.Filename)
		if err == nil && info.ModTime().Before(time.Now().Add(-time.Duration(w.maxAgeDays)*24*time.Hour)) {
			_ = w.lj.Rotate()
		}
	}
	w.mu.Unlock()
	return w.lj.Write(p)
}

// buildLumberjack creates a lumberjack logger for the given path and config.
// For rotation "none", maxSize and maxAge are 0 (no rotation).
func buildLumberjack(logPath string, logCfg config.LogConfig) *lj.Logger {
	rot := &lj.Logger{Filename: logPath}
	switch logCfg.Rotation {
	case config.LogRotationSize:
		rot.MaxSize = logCfg.RotationSizeMB
		if rot.MaxSize <= 0 {
			rot.MaxSize = 100
		}
		rot.MaxAge = logCfg.RotationDays
		rot.MaxBackups = 3
	case config.LogRotationTime:
		rot.MaxAge = logCfg.RotationDays
		if rot.MaxAge <= 0 {
			rot.MaxAge = 7
		}
		rot.MaxBackups = 3
	}
	return rot
}

func isSeverityNone(severity string) bool {
	return strings.EqualFold(severity, SeverityNone)
}

// levelFromSeverity maps config severity string to slog.Level.
func levelFromSeverity(severity string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case SeverityNone:
		return slog.LevelError + 1000
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "", "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidSeverity reports whether s is a recognised severity name.
func ValidSeverity(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SeverityNone, "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// newFileWriter creates an io.Writer for the given path and log config.
// It creates the directory if needed. On write failure it falls back to stderr (safeWriter).
func newFileWriter(logPath string, logCfg config.LogConfig) (io.Writer, error) {
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", dir, err)
	}
	rot := buildLumberjack(logPath, logCfg)
	var inner io.Writer = rot
	if logCfg.Rotation == config.LogRotationTime {
		inner = &throttleRotateWriter{lj: rot, maxAgeDays: rot.MaxAge}
	}
	return &safeWriter{inner: inner}, nil
}

// New builds the process logger. An empty logCfg.Dir logs to stderr, which
// keeps stdout free for quad output; otherwise records go to Dir/dnsrdf.log.
func New(logCfg config.LogConfig) *slog.Logger {
	if isSeverityNone(logCfg.Severity) {
		return Discard()
	}
	var wr io.Writer = os.Stderr
	if logCfg.Dir != "" {
		logPath := filepath.Join(logCfg.Dir, config.LogFileName)
		fw, err := newFileWriter(logPath, logCfg)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "logger: failed to open %s: %v; using stderr\n", logPath, err)
		} else {
			wr = fw
		}
	}
	return NewWithWriter(wr, logCfg.Severity)
}

// NewWithWriter returns a text logger writing to w at the given severity.
func NewWithWriter(w io.Writer, severity string) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelFromSeverity(severity)})
	return slog.New(h)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1000}))
}
