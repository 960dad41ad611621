// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package controller owns the mutable form state and its transitions.
//
// # Description
//
// The Controller holds the one live Record, the current screen
// (home/form/review), the wizard step (0-3) and the validation error map.
// Every mutation goes through it, and after every mutation it mirrors the
// state into the session store as a side effect. Validation runs only at
// the finish gate, never per keystroke.
//
// Screen transitions form a small fixed machine:
//
//	home → form      StartNew, Import (success)
//	form → review    Finish (validation passes)
//	review → form    Edit
//	form → home      BackToHome (erases the persisted snapshot)
//	review → home    BackToHome (erases the persisted snapshot)
//
// # Thread Safety
//
// All methods take an internal mutex. In practice there is a single writer
// (the TUI event loop), but the lock keeps the persistence observer and
// tests honest.
package controller

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/formneuro/formneuro/pkg/logging"
	"github.com/formneuro/formneuro/services/form/age"
	"github.com/formneuro/formneuro/services/form/schema"
	"github.com/formneuro/formneuro/services/form/session"
)

// Screen is one of the three top-level UI states.
type Screen string

const (
	ScreenHome   Screen = "home"
	ScreenForm   Screen = "form"
	ScreenReview Screen = "review"
)

// Wizard steps, in order.
const (
	StepHeader   = 0
	StepAnamnese = 1
	StepTdah     = 2
	StepTea      = 3

	maxStep = StepTea
)

// ErrInvalidDocument reports an import whose document parsed or validated
// badly. The current record is untouched when this is returned.
var ErrInvalidDocument = errors.New("documento em formato inesperado")

// Config configures a Controller. Zero values get safe defaults.
type Config struct {
	// Store receives the session snapshots. Defaults to an in-memory
	// store (no persistence across runs).
	Store session.Store

	// Logger for state transitions. Defaults to logging.Default().
	Logger *logging.Logger

	// Now is the clock used for the derived age field. Defaults to
	// time.Now. Tests inject a fixed date here.
	Now func() time.Time

	// OnScroll is invoked on step transitions and on a failed finish, the
	// moments the view scrolls back to the top. Optional.
	OnScroll func()
}

// Controller is the explicit state container for one form session.
type Controller struct {
	mu sync.Mutex

	record *schema.Record
	screen Screen
	step   int
	errs   map[string]string

	store    session.Store
	logger   *logging.Logger
	now      func() time.Time
	onScroll func()
}

// New creates a Controller and attempts to resume the previous session.
//
// # Description
//
// If the store holds a record snapshot that decodes and passes full
// validation, the session resumes on the saved screen (defaulting to the
// form screen when no screen was stored). Anything corrupt is discarded
// silently and the session starts at home with a fresh record. Store
// failures never propagate; they only cost the resume.
func New(cfg Config) *Controller {
	c := &Controller{
		record:   schema.Default(),
		screen:   ScreenHome,
		store:    cfg.Store,
		logger:   cfg.Logger,
		now:      cfg.Now,
		onScroll: cfg.OnScroll,
	}
	if c.store == nil {
		c.store = session.NewMemoryStore()
	}
	if c.logger == nil {
		c.logger = logging.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.onScroll == nil {
		c.onScroll = func() {}
	}

	c.restore()
	return c
}

// restore replays the persisted snapshot, if any.
func (c *Controller) restore() {
	snap, err := c.store.Load()
	if err != nil {
		c.logger.Warn("session load failed", "error", err.Error())
		return
	}
	if snap.Record == nil {
		return
	}

	rec, err := schema.Decode(snap.Record)
	if err == nil && schema.Validate(rec) == nil {
		c.record = rec
		c.screen = validScreen(snap.Screen)
		c.logger.Info("session resumed", "screen", string(c.screen))
		return
	}

	// Corrupt or stale snapshot: discard and start fresh.
	c.logger.Warn("discarding unusable session snapshot")
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("session clear failed", "error", err.Error())
	}
}

func validScreen(name string) Screen {
	switch Screen(name) {
	case ScreenHome, ScreenForm, ScreenReview:
		return Screen(name)
	default:
		return ScreenForm
	}
}

// =============================================================================
// Read Access
// =============================================================================

// Record returns the live record. Callers must treat it as read-only and
// route changes through UpdateField.
func (c *Controller) Record() *schema.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}

// Screen returns the current screen.
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Step returns the current wizard step (0-3).
func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Errors returns a copy of the validation error map from the last failed
// finish, keyed by dotted field path. Nil when the last gate passed.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.errs == nil {
		return nil
	}
	out := make(map[string]string, len(c.errs))
	for k, v := range c.errs {
		out[k] = v
	}
	return out
}

// =============================================================================
// Mutations
// =============================================================================

// UpdateField replaces one field's value.
//
// # Description
//
// Does not revalidate; the finish gate is the only validation point. When
// the birth date changes, the derived age field is recomputed immediately;
// an uncomputable age (empty, malformed or future date) leaves the previous
// age value in place.
//
// Outputs:
//
//	bool - false for an unknown section/key address (record unchanged).
func (c *Controller) UpdateField(section, key, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.record.SetValue(section, key, value) {
		return false
	}
	if section == schema.SectionAnamnese && key == "birthDate" {
		if computed := age.String(value, c.now()); computed != "" {
			c.record.Anamnese.AgeYearsMonths = computed
		}
	}
	c.persistRecord()
	return true
}

// AdvanceStep moves to the next wizard step; a no-op on the last step.
func (c *Controller) AdvanceStep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step < maxStep {
		c.step++
		c.onScroll()
	}
}

// RetreatStep moves to the previous wizard step; a no-op on the first step.
func (c *Controller) RetreatStep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step > 0 {
		c.step--
		c.onScroll()
	}
}

// Finish runs the full-form validation gate.
//
// # Description
//
// On success the error map is cleared and the screen moves to review. On
// failure the error map is populated, the wizard returns to step 0 where
// the required fields live, and every already-entered value is retained.
//
// Outputs:
//
//	bool - true when the record validated and the screen is now review.
func (c *Controller) Finish() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if problems := schema.Validate(c.record); problems != nil {
		c.errs = problems
		c.step = StepHeader
		c.onScroll()
		c.logger.Info("finish blocked by validation", "fields", len(problems))
		return false
	}

	c.errs = nil
	c.setScreen(ScreenReview)
	return true
}

// Edit returns from the review screen to the form for further changes.
func (c *Controller) Edit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.screen == ScreenReview {
		c.setScreen(ScreenForm)
	}
}

// StartNew replaces the record with a fresh, independent default record and
// enters the form screen.
func (c *Controller) StartNew() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.record = schema.Default()
	c.errs = nil
	c.step = StepHeader
	c.persistRecord()
	c.setScreen(ScreenForm)
	c.logger.Info("new form started")
}

// Import replaces the record with a validated external document.
//
// # Description
//
// Parse failures and shape/validation failures reject the import and leave
// the current record, screen and step exactly as they were. On success the
// record is replaced wholesale and the session moves straight to the form
// screen.
//
// Outputs:
//
//	error - ErrInvalidDocument (wrapped) when the document is unusable.
func (c *Controller) Import(raw []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := schema.Decode(raw)
	if err != nil {
		c.logger.Warn("import rejected", "error", err.Error())
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if problems := schema.Validate(rec); problems != nil {
		c.logger.Warn("import rejected by validation", "fields", len(problems))
		return fmt.Errorf("%w: campos obrigatórios ausentes", ErrInvalidDocument)
	}

	c.record = rec
	c.errs = nil
	c.step = StepHeader
	c.persistRecord()
	c.setScreen(ScreenForm)
	c.logger.Info("form imported")
	return nil
}

// BackToHome leaves the form or review screen and erases the persisted
// snapshot. The in-memory record survives until StartNew or Import.
func (c *Controller) BackToHome() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		c.logger.Warn("session clear failed", "error", err.Error())
	}
	c.screen = ScreenHome
	c.logger.Info("returned to home")
}

// =============================================================================
// Persistence Observer
// =============================================================================

// setScreen transitions the screen and mirrors it to the store. Callers
// hold the mutex.
func (c *Controller) setScreen(screen Screen) {
	c.screen = screen
	if err := c.store.SaveScreen(string(screen)); err != nil {
		c.logger.Debug("screen snapshot failed", "error", err.Error())
	}
}

// persistRecord mirrors the record to the store. Failures are logged and
// swallowed; persistence is best-effort by contract. Callers hold the mutex.
func (c *Controller) persistRecord() {
	data, err := schema.Encode(c.record)
	if err != nil {
		c.logger.Debug("record snapshot encode failed", "error", err.Error())
		return
	}
	if err := c.store.SaveRecord(data); err != nil {
		c.logger.Debug("record snapshot failed", "error", err.Error())
	}
}
