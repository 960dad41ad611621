// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package export renders a completed record for the outside world: a plain
// text layout for pasting into clinical reports, the canonical JSON document
// and a printable PDF.
//
// All three walk the question catalog in order, so the output tracks the
// form exactly, including hidden conditional questions being skipped.
package export

import (
	"strconv"
	"strings"

	"github.com/formneuro/formneuro/services/form/catalog"
	"github.com/formneuro/formneuro/services/form/schema"
)

// mark renders a checked or unchecked box.
func mark(selected bool) string {
	if selected {
		return "(X)"
	}
	return "(  )"
}

// Text renders the record as the fixed plain-text layout.
//
// # Description
//
// The layout mirrors the paper form: header fields as "Label: value" lines,
// yes/no and radio questions with checkbox marks, free-text answers on an
// "R:" line with a ___ placeholder when empty. TDAH questions are numbered
// with one line per frequency option; TEA questions are grouped under their
// sub-section labels with the Sim/Não marks inline. Conditional questions
// whose parent answer is not SIM are omitted.
func Text(r *schema.Record) string {
	var lines []string
	push := func(s string) { lines = append(lines, s) }

	push("ANAMNESE")
	push("")

	for _, q := range catalog.Header() {
		val, _ := r.Value(schema.SectionAnamnese, q.Key)
		push(q.Label + ": " + val)
	}
	push("")

	for _, q := range catalog.Anamnese() {
		if q.ConditionalOn != nil {
			parent, _ := r.Value(schema.SectionAnamnese, q.ConditionalOn.Field)
			if parent != q.ConditionalOn.Value {
				continue
			}
		}
		val, _ := r.Value(schema.SectionAnamnese, q.Key)

		switch q.Kind {
		case catalog.KindYesNo:
			push(q.Label)
			push(mark(val == "SIM") + " SIM              " + mark(val == "NÃO") + " NÃO")
		case catalog.KindRadio:
			push(q.Label)
			marked := make([]string, len(q.Options))
			for i, opt := range q.Options {
				marked[i] = mark(val == opt) + " " + opt
			}
			push(strings.Join(marked, "       "))
		case catalog.KindText, catalog.KindConditionalText:
			answer := val
			if answer == "" {
				answer = "___"
			}
			switch {
			case strings.HasPrefix(q.Label, "Se sim"),
				strings.HasPrefix(q.Label, "Obs"),
				strings.HasPrefix(q.Label, "Até que idade"):
				push(q.Label + " R: " + answer)
			case strings.Contains(q.Label, "?"):
				push(q.Label)
				push("R: " + answer)
			default:
				push(q.Label + ": " + val)
			}
		}
	}

	push("")
	push("Rastreio para TDAH")
	push("")

	for _, q := range catalog.Tdah() {
		val, _ := r.Value(schema.SectionTdah, q.Key)
		push(numbered(q))
		for _, opt := range catalog.FrequencyOptions {
			push(mark(val == opt) + " " + opt)
		}
		push("")
	}

	push("RASTREIO PARA TEA")
	push("")

	currentSub := ""
	for _, q := range catalog.Tea() {
		if q.SubSection != currentSub {
			currentSub = q.SubSection
			push("")
			push(catalog.TeaSubSectionLabel(currentSub))
			push("")
		}
		val, _ := r.Value(schema.SectionTea, q.Key)
		push(numbered(q) + " " + mark(val == "Sim") + " Sim   " + mark(val == "Não") + " Não")
	}

	return strings.Join(lines, "\n")
}

// numbered formats "N. Label" for screening questions.
func numbered(q catalog.Question) string {
	return strconv.Itoa(q.Number) + ". " + q.Label
}
