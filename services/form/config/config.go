// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads the application configuration file.
//
// # Description
//
// FormNeuro reads an optional YAML file at ~/.formneuro/config.yaml. A
// missing file yields the defaults; a malformed or oversized one is an
// error the caller decides how to handle (the CLI aborts, the TUI falls
// back to defaults with a logged warning).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/formneuro/formneuro/pkg/logging"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// MaxConfigFileSize caps the config file read (1MB).
	MaxConfigFileSize = 1024 * 1024

	// DefaultImportMaxBytes caps imported JSON documents (1MB).
	DefaultImportMaxBytes = 1024 * 1024
)

// DefaultPath is the well-known config location, with ~ unexpanded.
const DefaultPath = "~/.formneuro/config.yaml"

// =============================================================================
// Config
// =============================================================================

// Config is the application configuration.
type Config struct {
	// DataDir holds the badger session store. Default ~/.formneuro/session.
	DataDir string `yaml:"data_dir"`

	// LogDir receives the JSON log files. Default ~/.formneuro/logs.
	LogDir string `yaml:"log_dir"`

	// LogLevel is one of debug, info, warn, error. Default info.
	LogLevel string `yaml:"log_level"`

	// ExportDir is where exports land unless --out overrides. Default ".".
	ExportDir string `yaml:"export_dir"`

	// ImportMaxBytes caps the size of imported JSON documents.
	ImportMaxBytes int64 `yaml:"import_max_bytes"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DataDir:        "~/.formneuro/session",
		LogDir:         "~/.formneuro/logs",
		LogLevel:       "info",
		ExportDir:      ".",
		ImportMaxBytes: DefaultImportMaxBytes,
	}
}

// Level maps the configured log level name to a logging.Level, defaulting
// to Info for unknown names.
func (c Config) Level() logging.Level {
	switch c.LogLevel {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the configuration at path (with ~ expansion).
//
// # Description
//
// A missing file is not an error; the defaults come back. Fields absent
// from the file keep their default values. Files over MaxConfigFileSize
// are rejected before parsing.
//
// Outputs:
//
//	Config - The merged configuration; valid even when error is non-nil.
//	error  - Non-nil for unreadable, oversized or malformed files.
func Load(path string) (Config, error) {
	cfg := Default()
	expanded := ExpandPath(path)

	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	if info.Size() > MaxConfigFileSize {
		return cfg, fmt.Errorf("config file too large: %d bytes (max %d)",
			info.Size(), MaxConfigFileSize)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.ImportMaxBytes <= 0 {
		cfg.ImportMaxBytes = DefaultImportMaxBytes
	}
	return cfg, nil
}

// ExpandPath expands a leading ~ to the user's home directory. Paths from
// the config file (data dir, export dir) go through this before use.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
