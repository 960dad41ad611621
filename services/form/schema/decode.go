// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/formneuro/formneuro/services/form/catalog"
)

// Sentinel errors for the two hard-failure modes of Decode. Everything else
// inside a present section degrades to the empty value instead of failing.
var (
	// ErrParse reports a document that is not valid JSON or whose root is
	// not an object.
	ErrParse = errors.New("invalid form document")

	// ErrMissingSection reports a root object without one of the three
	// required section keys (or with a section that is not an object).
	ErrMissingSection = errors.New("missing form section")
)

// Decode parses and leniently validates a full form document.
//
// # Description
//
// The root must be a JSON object carrying all three section keys; a missing
// or non-object section is the one absence that fails the whole decode.
// Within a present section the policy is resilience over strictness:
//
//   - absent fields default to ""
//   - non-string scalars coerce to ""
//   - enum values outside the declared option set coerce to "" (unset)
//   - unknown keys are ignored
//
// This keeps documents exported by older or newer catalog revisions
// importable; the required-field gate is Validate's job, not Decode's.
//
// Inputs:
//
//	raw - The document bytes, typically a read import file.
//
// Outputs:
//
//	*Record - Fully populated record, enum fields already coerced.
//	error   - ErrParse or ErrMissingSection (wrapped); nil on success.
func Decode(raw []byte) (*Record, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrParse)
	}

	rec := Default()
	for _, section := range []string{SectionAnamnese, SectionTdah, SectionTea} {
		body, ok := doc[section]
		if !ok || isJSONNull(body) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSection, section)
		}
		fields, _ := rec.sectionFields(section)
		if err := decodeSection(body, fields); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingSection, section)
		}
	}

	rec.Normalize()
	return rec, nil
}

// Encode renders the record as the canonical 2-space-indented JSON document.
// Field order follows the struct definitions, so encoding is deterministic
// and Encode∘Decode∘Encode is the identity for any valid document.
func Encode(r *Record) ([]byte, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode form document: %w", err)
	}
	return out, nil
}

// Normalize applies the lenient enum policy in place: any enum-typed field
// whose value is neither empty nor a member of its declared option set is
// reset to "". Free-text fields are never touched. Applied per field, so one
// out-of-domain value never disturbs its neighbors.
func (r *Record) Normalize() {
	coerce := func(fields map[string]*string, questions []catalog.Question) {
		for _, q := range questions {
			if len(q.Options) == 0 {
				continue
			}
			ptr, ok := fields[q.Key]
			if !ok {
				continue
			}
			if *ptr != "" && !slices.Contains(q.Options, *ptr) {
				*ptr = ""
			}
		}
	}
	coerce(r.Anamnese.fields(), catalog.Anamnese())
	coerce(r.Tdah.fields(), catalog.Tdah())
	coerce(r.Tea.fields(), catalog.Tea())
}

// decodeSection copies the string-valued entries of one section object into
// the section's fields. Anything that is not a string is left at "".
func decodeSection(body json.RawMessage, fields map[string]*string) error {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return err
	}
	for key, ptr := range fields {
		if s, ok := m[key].(string); ok {
			*ptr = s
		}
	}
	return nil
}

func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
