// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// Config holds configuration for the BadgerDB-backed store.
type Config struct {
	// Path is the directory for BadgerDB files.
	// Required for persistent stores. Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability. Session
	// snapshots are small and written on every keystroke-level change, so
	// async writes are acceptable; the default leaves this off.
	SyncWrites bool

	// Logger receives BadgerDB's internal log output. If nil, BadgerDB
	// logging is disabled entirely so it cannot write over the TUI.
	Logger *slog.Logger
}

// DefaultConfig returns the production configuration for a data directory.
func DefaultConfig(path string) Config {
	return Config{Path: path}
}

// InMemoryConfig returns a configuration for tests: no disk I/O, no logs.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// BadgerStore implements Store on an embedded BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// Ensure BadgerStore implements Store.
var _ Store = (*BadgerStore)(nil)

// Open creates and opens a BadgerDB-backed store.
//
// # Description
//
// Opens the database at the configured path, creating the directory if
// needed, or in memory when InMemory is set. Callers that cannot open the
// store should fall back to NewMemoryStore rather than failing the session.
//
// Inputs:
//
//	cfg - Store configuration. Path is required unless InMemory is true.
//
// Outputs:
//
//	*BadgerStore - The opened store. Caller must Close() it.
//	error        - Non-nil if the path is invalid or badger cannot open.
func Open(cfg Config) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent session store")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create session directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// SaveRecord stores the record snapshot under the fixed record key.
func (s *BadgerStore) SaveRecord(data []byte) error {
	return s.set(recordKey, data)
}

// SaveScreen stores the screen name under the fixed screen key.
func (s *BadgerStore) SaveScreen(screen string) error {
	return s.set(screenKey, []byte(screen))
}

// Load reads both snapshot keys in one read transaction.
func (s *BadgerStore) Load() (Snapshot, error) {
	var snap Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		if data, err := getValue(txn, recordKey); err == nil {
			snap.Record = data
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if data, err := getValue(txn, screenKey); err == nil {
			snap.Screen = string(data)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("load session snapshot: %w", err)
	}
	return snap, nil
}

// Clear erases both snapshot keys.
func (s *BadgerStore) Clear() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(recordKey)); err != nil {
			return err
		}
		return txn.Delete([]byte(screenKey))
	})
	if err != nil {
		return fmt.Errorf("clear session snapshot: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) set(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func getValue(txn *badger.Txn, key string) ([]byte, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}
