// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package export

import (
	"regexp"
	"strings"

	"github.com/formneuro/formneuro/services/form/schema"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// JSON renders the record as the canonical indented document, the same
// shape Import accepts back.
func JSON(r *schema.Record) ([]byte, error) {
	return schema.Encode(r)
}

// Filename derives the export file name from the patient name.
//
// # Description
//
// The name is lowercased with whitespace runs collapsed to underscores and
// prefixed with "anamnese_"; an empty patient name falls back to the word
// "anamnese" itself. The extension is appended as given ("json", "pdf",
// "txt").
func Filename(patientName, ext string) string {
	name := patientName
	if name == "" {
		name = "anamnese"
	}
	name = strings.ToLower(whitespaceRun.ReplaceAllString(name, "_"))
	return "anamnese_" + name + "." + ext
}
