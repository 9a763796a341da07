// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FileName is the canonical name of the configuration file.
	FileName = "dnsrdf.json"
	// systemConfigPath is the location checked last when resolving the config.
	systemConfigPath = "/etc/" + FileName
	// LogFileName is the log file written under Log.Dir.
	LogFileName = "dnsrdf.log"

	defaultProbeBase = "https://dnscensus2013.neocities.org"
	defaultAPIPort   = "8080"
	defaultSeverity  = "warn"
)

// LogRotationMode is the log rotation strategy: "none", "size", or "time".
type LogRotationMode string

const (
	LogRotationNone LogRotationMode = "none"
	LogRotationSize LogRotationMode = "size"
	LogRotationTime LogRotationMode = "time"
)

// LogConfig holds logging directory, severity, and rotation settings.
// An empty Dir sends logs to stderr.
type LogConfig struct {
	Dir            string          `json:"log_dir"`
	Severity       string          `json:"log_severity"`
	Rotation       LogRotationMode `json:"log_rotation"`
	RotationSizeMB int             `json:"log_rotation_size_mb"`
	RotationDays   int             `json:"log_rotation_time_days"`
}

// Config captures all persisted settings for dnsrdf.
type Config struct {
	// ProbeBase is the URI base under which probe-<timestamp> graph names are minted.
	ProbeBase string    `json:"probe_base"`
	Workers   int       `json:"workers"`
	APIPort   string    `json:"apiport"`
	Log       LogConfig `json:"log"`
}

// Loaded contains the configuration together with metadata about the source file.
type Loaded struct {
	// Path is empty when no file was found and defaults are in use.
	Path    string
	Created bool
	Config  Config
}

// Load searches the executable directory, the user config directory and
// /etc for dnsrdf.json. When none exists the defaults are returned and
// nothing is written.
func Load() (*Loaded, error) {
	candidates, err := candidatePaths()
	if err != nil {
		return nil, err
	}

	for _, path := range candidates {
		cfg, err := readConfig(path)
		if err == nil {
			cfg.applyDefaults(filepath.Dir(path))
			return &Loaded{Path: path, Config: *cfg}, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	cfg := Default()
	return &Loaded{Config: cfg}, nil
}

// LoadFromPath reads the configuration at path, creating a default file there
// when it does not exist. A directory path resolves to path/dnsrdf.json.
func LoadFromPath(path string) (*Loaded, error) {
	configPath, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	cfg, err := readConfig(configPath)
	if err == nil {
		cfg.applyDefaults(filepath.Dir(configPath))
		return &Loaded{Path: configPath, Config: *cfg}, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read %s: %w", configPath, err)
	}
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("config: ensure config directory %s: %w", dir, err)
	}
	defaultCfg := Default()
	if err := writeConfig(configPath, &defaultCfg); err != nil {
		return nil, err
	}
	defaultCfg.applyDefaults(dir)
	return &Loaded{Path: configPath, Created: true, Config: defaultCfg}, nil
}

// resolveConfigPath returns the config file path. If path is a directory (ends
// with /, exists as dir, or path has no extension), returns path/FileName;
// otherwise returns path as the config file path.
func resolveConfigPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("config: path is empty")
	}
	isDir := strings.HasSuffix(trimmed, string(filepath.Separator))
	path = filepath.Clean(trimmed)
	if path == "." {
		return "", fmt.Errorf("config: path is empty")
	}
	if !isDir {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			isDir = true
		} else if !strings.Contains(filepath.Base(path), ".") {
			isDir = true
		}
	}
	if isDir {
		return filepath.Join(path, FileName), nil
	}
	return path, nil
}

// Read loads and normalises configuration from the specified path without
// searching other locations.
func Read(path string) (*Config, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults(filepath.Dir(path))
	return cfg, nil
}

// Save writes the supplied configuration back to the given path.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: ensure config directory %s: %w", dir, err)
	}
	cfg.applyDefaults(dir)
	return writeConfig(path, &cfg)
}

// Normalize fills unset fields with defaults; a relative log directory is
// resolved against configDir.
func (c *Config) Normalize(configDir string) {
	c.applyDefaults(configDir)
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ProbeBase: defaultProbeBase,
		Workers:   1,
		APIPort:   defaultAPIPort,
		Log: LogConfig{
			Severity:       defaultSeverity,
			Rotation:       LogRotationSize,
			RotationSizeMB: 100,
			RotationDays:   7,
		},
	}
}

func candidatePaths() ([]string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("config: determine executable path: %w", err)
	}
	execDir := filepath.Dir(execPath)

	var paths []string
	paths = appendIfMissing(paths, filepath.Join(execDir, FileName))

	if userPath, err := userConfigPath(); err == nil && userPath != "" {
		paths = appendIfMissing(paths, userPath)
	}

	paths = appendIfMissing(paths, systemConfigPath)
	return paths, nil
}

func userConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: determine user config dir: %w", err)
	}
	return filepath.Join(dir, "dnsrdf", FileName), nil
}

func readConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("config: file %s is empty", path)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

func writeConfig(path string, cfg *Config) error {
	payload, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal config: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults(configDir string) {
	c.ProbeBase = strings.TrimRight(strings.TrimSpace(c.ProbeBase), "/")
	if c.ProbeBase == "" {
		c.ProbeBase = defaultProbeBase
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if strings.TrimSpace(c.APIPort) == "" {
		c.APIPort = defaultAPIPort
	}

	if c.Log.Dir != "" && !filepath.IsAbs(c.Log.Dir) {
		c.Log.Dir = filepath.Join(configDir, c.Log.Dir)
	}
	if c.Log.Severity == "" {
		c.Log.Severity = defaultSeverity
	}
	if c.Log.Rotation == "" {
		c.Log.Rotation = LogRotationSize
	}
	if c.Log.RotationSizeMB <= 0 {
		c.Log.RotationSizeMB = 100
	}
	if c.Log.RotationDays <= 0 {
		c.Log.RotationDays = 7
	}
}

func appendIfMissing(paths []string, candidate string) []string {
	for _, existing := range paths {
		if existing == candidate {
			return paths
		}
	}
	return append(paths, candidate)
}
