// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package catalog

// Row is one renderable entry of a question sequence: a visible question,
// optionally preceded by a sub-section boundary.
type Row struct {
	// Question is the visible catalog entry.
	Question Question

	// SubSectionLabel is non-empty when this row opens a new sub-section.
	SubSectionLabel string
}

// VisibleRows computes the ordered, currently-visible rows of a sequence.
//
// # Description
//
// A conditional question is included only while its parent field currently
// holds the required value. Hiding a question never touches its stored
// answer; it merely drops out of the returned rows. Sub-section boundaries
// (TEA A/B/C) are emitted on the first visible question of each group.
//
// The function is pure: it reads values through the accessor and allocates
// a fresh slice on every call, so there is no render-order state to corrupt.
//
// Inputs:
//
//	questions - One of the catalog sequences.
//	value     - Accessor returning the current value of a field key.
//
// Outputs:
//
//	[]Row - Visible questions in catalog order with boundary markers.
func VisibleRows(questions []Question, value func(key string) string) []Row {
	rows := make([]Row, 0, len(questions))
	currentSub := ""
	for _, q := range questions {
		if q.ConditionalOn != nil && value(q.ConditionalOn.Field) != q.ConditionalOn.Value {
			continue
		}
		row := Row{Question: q}
		if q.SubSection != "" && q.SubSection != currentSub {
			currentSub = q.SubSection
			row.SubSectionLabel = teaSubSectionLabels[q.SubSection]
		}
		rows = append(rows, row)
	}
	return rows
}
