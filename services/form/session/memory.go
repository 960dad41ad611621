// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package session

import "sync"

// MemoryStore implements Store in process memory. It is the degradation
// target when the badger store cannot be opened (the session then simply
// does not survive the process) and the default store in tests.
type MemoryStore struct {
	mu     sync.Mutex
	record []byte
	screen string
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveRecord stores a copy of the record snapshot.
func (s *MemoryStore) SaveRecord(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = append([]byte(nil), data...)
	return nil
}

// SaveScreen stores the screen name.
func (s *MemoryStore) SaveScreen(screen string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = screen
	return nil
}

// Load returns the current snapshot.
func (s *MemoryStore) Load() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var record []byte
	if s.record != nil {
		record = append([]byte(nil), s.record...)
	}
	return Snapshot{Record: record, Screen: s.screen}, nil
}

// Clear erases the snapshot.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	s.screen = ""
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
