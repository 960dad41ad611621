// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Level Tests
// =============================================================================

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
		{Level(-1), "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestLevelToSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(42), slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.toSlogLevel())
	}
}

// =============================================================================
// Logger Tests
// =============================================================================

// TestFileLogging verifies quiet mode still writes JSON entries to the
// dated log file.
func TestFileLogging(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelDebug,
		LogDir:  dir,
		Service: "test",
		Quiet:   true,
	})
	logger.Info("session resumed", "screen", "form")
	require.NoError(t, logger.Close())

	name := "test_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	assert.Contains(t, string(data), `"msg":"session resumed"`)
	assert.Contains(t, string(data), `"screen":"form"`)
	assert.Contains(t, string(data), `"service":"test"`)
}

// TestLevelFiltering verifies entries below the configured level are
// discarded.
func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelWarn,
		LogDir:  dir,
		Service: "test",
		Quiet:   true,
	})
	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")
	require.NoError(t, logger.Close())

	name := "test_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

// TestWithAddsAttributes verifies child loggers carry their attributes.
func TestWithAddsAttributes(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{LogDir: dir, Service: "test", Quiet: true})
	child := logger.With("session", "abc")
	child.Info("hello")
	require.NoError(t, logger.Close())

	name := "test_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session":"abc"`)
}

// TestQuietWithoutFileDropsEverything verifies the degenerate configuration
// neither panics nor writes anywhere.
func TestQuietWithoutFileDropsEverything(t *testing.T) {
	logger := New(Config{Quiet: true})
	logger.Error("nowhere to go")
	assert.NoError(t, logger.Close())
}

// TestDefaultLogger sanity-checks the default configuration.
func TestDefaultLogger(t *testing.T) {
	logger := Default()
	assert.Equal(t, LevelInfo, logger.config.Level)
	assert.Equal(t, "formneuro", logger.config.Service)
	assert.NotNil(t, logger.Slog())
	assert.NoError(t, logger.Close())
}

// TestExpandPath covers ~ expansion.
func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".formneuro/logs"), expandPath("~/.formneuro/logs"))
	assert.Equal(t, "/var/log", expandPath("/var/log"))
	assert.True(t, strings.HasPrefix(expandPath("~/x"), home))
}
