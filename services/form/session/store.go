// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package session persists the in-progress form between process runs.
//
// # Description
//
// The controller mirrors the current record and screen into a Store after
// every change and replays them on startup. Persistence is strictly
// best-effort: a store that cannot be opened degrades to the in-memory
// implementation and a write that fails is logged and forgotten. Nothing in
// this package ever blocks or fails a user-visible operation.
//
// Two implementations exist: BadgerStore (embedded BadgerDB under the data
// directory) and MemoryStore (fallback and tests).
package session

// Fixed snapshot keys. The values predate this implementation and must not
// change, or existing sessions stop resuming.
const (
	recordKey = "form-neuro-data"
	screenKey = "form-neuro-screen"
)

// Snapshot is the persisted pair read back at startup. Record is nil when no
// record snapshot exists; Screen is empty when no screen was stored.
type Snapshot struct {
	Record []byte
	Screen string
}

// Store mirrors the session state into a key-value store.
//
// Implementations must tolerate concurrent use; the controller serializes
// its own calls but tests do not always bother.
type Store interface {
	// SaveRecord stores the JSON-encoded record snapshot.
	SaveRecord(data []byte) error

	// SaveScreen stores the current screen name.
	SaveScreen(screen string) error

	// Load reads both snapshot keys. Absent keys are not an error; they
	// come back as zero values.
	Load() (Snapshot, error)

	// Clear erases both snapshot keys.
	Clear() error

	// Close releases the underlying resources.
	Close() error
}
