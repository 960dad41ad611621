// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package controller

import (
	"testing"
	"time"

	"github.com/formneuro/formneuro/services/form/schema"
	"github.com/formneuro/formneuro/services/form/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow keeps the derived age deterministic across test runs.
var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newController(t *testing.T) *Controller {
	t.Helper()
	return New(Config{
		Store: session.NewMemoryStore(),
		Now:   func() time.Time { return fixedNow },
	})
}

func fillHeader(c *Controller) {
	c.UpdateField(schema.SectionAnamnese, "patientName", "João da Silva")
	c.UpdateField(schema.SectionAnamnese, "birthDate", "2000-01-15")
	c.UpdateField(schema.SectionAnamnese, "education", "Ensino superior")
	c.UpdateField(schema.SectionAnamnese, "gender", "Masculino")
}

// TestInitialState verifies a fresh controller starts at home, step 0, with
// an all-empty record and no errors.
func TestInitialState(t *testing.T) {
	c := newController(t)
	assert.Equal(t, ScreenHome, c.Screen())
	assert.Equal(t, StepHeader, c.Step())
	assert.Nil(t, c.Errors())
	assert.Equal(t, schema.Default(), c.Record())
}

// TestUpdateFieldRecomputesAge verifies the derived age field follows the
// birth date and never goes backwards to empty.
func TestUpdateFieldRecomputesAge(t *testing.T) {
	c := newController(t)
	c.StartNew()

	require.True(t, c.UpdateField(schema.SectionAnamnese, "birthDate", "2000-01-15"))
	assert.Equal(t, "24 anos e 5 meses", c.Record().Anamnese.AgeYearsMonths)

	// Malformed date keeps the previous computed age.
	require.True(t, c.UpdateField(schema.SectionAnamnese, "birthDate", "garbage"))
	assert.Equal(t, "24 anos e 5 meses", c.Record().Anamnese.AgeYearsMonths)

	require.True(t, c.UpdateField(schema.SectionAnamnese, "birthDate", "2023-01-15"))
	assert.Equal(t, "1 ano e 5 meses", c.Record().Anamnese.AgeYearsMonths)

	assert.False(t, c.UpdateField("nope", "birthDate", "x"))
}

// TestStepBounds verifies navigation clamps to [0,3] and fires the scroll
// hook only on real transitions.
func TestStepBounds(t *testing.T) {
	scrolls := 0
	c := New(Config{
		Store:    session.NewMemoryStore(),
		Now:      func() time.Time { return fixedNow },
		OnScroll: func() { scrolls++ },
	})
	c.StartNew()

	c.RetreatStep()
	assert.Equal(t, StepHeader, c.Step())
	assert.Zero(t, scrolls)

	for i := 0; i < 10; i++ {
		c.AdvanceStep()
	}
	assert.Equal(t, StepTea, c.Step())
	assert.Equal(t, 3, scrolls)

	c.RetreatStep()
	assert.Equal(t, StepTdah, c.Step())
	assert.Equal(t, 4, scrolls)
}

// TestFinishWithHeaderOnly replays the happy-path scenario: all header
// fields filled, no screening answers, finish succeeds and review shows the
// entered values verbatim.
func TestFinishWithHeaderOnly(t *testing.T) {
	c := newController(t)
	c.StartNew()
	fillHeader(c)
	for i := 0; i < 3; i++ {
		c.AdvanceStep()
	}

	require.True(t, c.Finish())
	assert.Equal(t, ScreenReview, c.Screen())
	assert.Nil(t, c.Errors())
	assert.Equal(t, "João da Silva", c.Record().Anamnese.PatientName)
	assert.Equal(t, "24 anos e 5 meses", c.Record().Anamnese.AgeYearsMonths)
}

// TestFinishMissingName replays the failure scenario: empty patient name
// blocks the gate, the error map names the field, the wizard returns to
// step 0 and other data is retained.
func TestFinishMissingName(t *testing.T) {
	c := newController(t)
	c.StartNew()
	fillHeader(c)
	c.UpdateField(schema.SectionAnamnese, "patientName", "")
	c.UpdateField(schema.SectionTea, "tea3", "Sim")
	for i := 0; i < 3; i++ {
		c.AdvanceStep()
	}

	require.False(t, c.Finish())
	assert.Equal(t, ScreenForm, c.Screen())
	assert.Equal(t, StepHeader, c.Step())
	assert.Equal(t, "Nome do avaliado é obrigatório", c.Errors()["anamnese.patientName"])
	assert.Equal(t, "Sim", c.Record().Tea.Tea3)

	// Fixing the field and finishing again clears the errors.
	c.UpdateField(schema.SectionAnamnese, "patientName", "João da Silva")
	require.True(t, c.Finish())
	assert.Nil(t, c.Errors())
}

// TestStartNewIsIndependent verifies the fresh record shares nothing with a
// previously held reference.
func TestStartNewIsIndependent(t *testing.T) {
	c := newController(t)
	c.StartNew()
	fillHeader(c)
	old := c.Record()

	c.BackToHome()
	c.StartNew()
	c.UpdateField(schema.SectionAnamnese, "patientName", "Outra Pessoa")

	assert.Equal(t, "João da Silva", old.Anamnese.PatientName)
	assert.Empty(t, c.Record().Anamnese.Education)
	assert.Equal(t, ScreenForm, c.Screen())
}

// TestImportValidDocument verifies a valid import replaces the record and
// jumps straight to the form screen.
func TestImportValidDocument(t *testing.T) {
	source := newController(t)
	source.StartNew()
	fillHeader(source)
	doc, err := schema.Encode(source.Record())
	require.NoError(t, err)

	c := newController(t)
	require.NoError(t, c.Import(doc))
	assert.Equal(t, ScreenForm, c.Screen())
	assert.Equal(t, "João da Silva", c.Record().Anamnese.PatientName)
}

// TestImportRejectsBadDocuments verifies rejected imports leave the session
// exactly as it was.
func TestImportRejectsBadDocuments(t *testing.T) {
	c := newController(t)
	c.StartNew()
	fillHeader(c)
	before := c.Record().Clone()

	for name, doc := range map[string]string{
		"not json":       "{{{",
		"missing tea":    `{"anamnese":{},"tdah":{}}`,
		"required empty": `{"anamnese":{},"tdah":{},"tea":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			err := c.Import([]byte(doc))
			require.ErrorIs(t, err, ErrInvalidDocument)
			assert.Equal(t, before, c.Record())
			assert.Equal(t, ScreenForm, c.Screen())
		})
	}
}

// TestSessionResume verifies a validated snapshot resumes on the saved
// screen and a corrupt one starts fresh at home.
func TestSessionResume(t *testing.T) {
	t.Run("valid snapshot resumes", func(t *testing.T) {
		store := session.NewMemoryStore()
		first := New(Config{Store: store, Now: func() time.Time { return fixedNow }})
		first.StartNew()
		fillHeader(first)
		require.True(t, first.Finish())

		second := New(Config{Store: store, Now: func() time.Time { return fixedNow }})
		assert.Equal(t, ScreenReview, second.Screen())
		assert.Equal(t, "João da Silva", second.Record().Anamnese.PatientName)
	})

	t.Run("snapshot without screen defaults to form", func(t *testing.T) {
		store := session.NewMemoryStore()
		first := New(Config{Store: store, Now: func() time.Time { return fixedNow }})
		first.StartNew()
		fillHeader(first)
		require.NoError(t, store.SaveScreen(""))

		second := New(Config{Store: store, Now: func() time.Time { return fixedNow }})
		assert.Equal(t, ScreenForm, second.Screen())
	})

	t.Run("corrupt snapshot starts fresh", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.SaveRecord([]byte("corrupted {{{")))
		require.NoError(t, store.SaveScreen("review"))

		c := New(Config{Store: store, Now: func() time.Time { return fixedNow }})
		assert.Equal(t, ScreenHome, c.Screen())
		assert.Equal(t, schema.Default(), c.Record())

		// The corrupt snapshot was discarded for good.
		snap, err := store.Load()
		require.NoError(t, err)
		assert.Nil(t, snap.Record)
	})

	t.Run("incomplete snapshot starts fresh", func(t *testing.T) {
		store := session.NewMemoryStore()
		empty, err := schema.Encode(schema.Default())
		require.NoError(t, err)
		require.NoError(t, store.SaveRecord(empty))

		c := New(Config{Store: store, Now: func() time.Time { return fixedNow }})
		assert.Equal(t, ScreenHome, c.Screen())
	})
}

// TestBackToHomeErasesSnapshot verifies the explicit back-to-home action
// clears the persisted snapshot while keeping the in-memory record.
func TestBackToHomeErasesSnapshot(t *testing.T) {
	store := session.NewMemoryStore()
	c := New(Config{Store: store, Now: func() time.Time { return fixedNow }})
	c.StartNew()
	fillHeader(c)

	c.BackToHome()
	assert.Equal(t, ScreenHome, c.Screen())

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap.Record)
}

// TestReviewEditCycle verifies review → form via Edit and that Edit is a
// no-op elsewhere.
func TestReviewEditCycle(t *testing.T) {
	c := newController(t)
	c.StartNew()
	fillHeader(c)
	require.True(t, c.Finish())

	c.Edit()
	assert.Equal(t, ScreenForm, c.Screen())

	c.Edit()
	assert.Equal(t, ScreenForm, c.Screen())
}
