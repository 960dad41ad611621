// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSequenceSizes pins the catalog dimensions the schema relies on.
func TestSequenceSizes(t *testing.T) {
	assert.Len(t, Header(), 6)
	assert.Len(t, Anamnese(), 44)
	assert.Len(t, Tdah(), 14)
	assert.Len(t, Tea(), 12)
}

// TestVerifyAllSequences runs the invariant check on every sequence.
func TestVerifyAllSequences(t *testing.T) {
	for name, seq := range map[string][]Question{
		"header":   Header(),
		"anamnese": Anamnese(),
		"tdah":     Tdah(),
		"tea":      Tea(),
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, Verify(seq))
		})
	}
}

// TestVerifyRejectsDuplicateKeys checks the duplicate-key invariant.
func TestVerifyRejectsDuplicateKeys(t *testing.T) {
	bad := []Question{
		{ID: "x1", Key: "field"},
		{ID: "x2", Key: "field"},
	}
	err := Verify(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field key")
}

// TestVerifyRejectsForwardCondition checks the parent-precedes-child invariant.
func TestVerifyRejectsForwardCondition(t *testing.T) {
	bad := []Question{
		{ID: "x1", Key: "child", Kind: KindConditionalText,
			ConditionalOn: &Condition{Field: "parent", Value: "SIM"}},
		{ID: "x2", Key: "parent", Kind: KindYesNo, Options: YesNoOptions},
	}
	err := Verify(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not precede")
}

// TestConditionalParentsAreYesNo verifies every conditional question in the
// anamnesis hangs off a SIM answer of an earlier yes/no question.
func TestConditionalParentsAreYesNo(t *testing.T) {
	byKey := make(map[string]Question)
	for _, q := range Anamnese() {
		byKey[q.Key] = q
	}
	for _, q := range Anamnese() {
		if q.ConditionalOn == nil {
			continue
		}
		parent, ok := byKey[q.ConditionalOn.Field]
		require.True(t, ok, "parent of %s missing", q.ID)
		assert.Equal(t, KindYesNo, parent.Kind, "parent of %s", q.ID)
		assert.Equal(t, "SIM", q.ConditionalOn.Value, "condition value of %s", q.ID)
	}
}

// TestTeaSubSections pins the A/B/C grouping sizes and labels.
func TestTeaSubSections(t *testing.T) {
	counts := map[string]int{}
	for _, q := range Tea() {
		counts[q.SubSection]++
	}
	assert.Equal(t, map[string]int{"A": 5, "B": 5, "C": 2}, counts)

	assert.Equal(t, "A. Déficits na comunicação social e interação", TeaSubSectionLabel("A"))
	assert.Equal(t, "B. Comportamentos repetitivos e interesses restritos", TeaSubSectionLabel("B"))
	assert.Equal(t, "C. Desenvolvimento e padrão de comportamento", TeaSubSectionLabel("C"))
	assert.Empty(t, TeaSubSectionLabel("D"))
}

// TestTdahDomains verifies every TDAH question carries the frequency options.
func TestTdahDomains(t *testing.T) {
	for _, q := range Tdah() {
		assert.Equal(t, FrequencyOptions, q.Options, q.ID)
		assert.Equal(t, KindRadio, q.Kind, q.ID)
	}
}
