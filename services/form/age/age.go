// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package age derives the human-readable age string from a birth date.
//
// # Description
//
// The form carries a derived "Idade em anos e meses" field that is
// recomputed whenever the birth date changes. The output is either empty
// (no date, unparseable date, date in the future) or a Portuguese phrase
// like "24 anos e 5 meses", with the month clause omitted when zero.
//
// The reference date is always an explicit parameter so that callers and
// tests are deterministic; only the controller passes time.Now().
package age

import (
	"fmt"
	"time"
)

// Layout is the wire format of the birth-date field.
const Layout = "2006-01-02"

// String computes elapsed whole years and remaining whole months between
// birthDate and today.
//
// # Description
//
// The month count is corrected twice: once when the month difference is
// negative (or zero with the day of month not yet reached), and once more
// when the day of month is not yet reached. A future birth date leaves the
// year count negative and yields the empty string.
//
// Inputs:
//
//	birthDate - Date string in Layout format. May be empty or malformed.
//	today     - Reference date for the computation.
//
// Outputs:
//
//	string - "<N> ano[s][ e <M> mês/meses]", or "" for invalid input.
func String(birthDate string, today time.Time) string {
	if birthDate == "" {
		return ""
	}
	birth, err := time.Parse(Layout, birthDate)
	if err != nil {
		return ""
	}

	years := today.Year() - birth.Year()
	months := int(today.Month()) - int(birth.Month())

	if months < 0 || (months == 0 && today.Day() < birth.Day()) {
		years--
		months += 12
	}
	if today.Day() < birth.Day() {
		months--
		if months < 0 {
			months += 12
		}
	}

	if years < 0 {
		return ""
	}

	yearLabel := "anos"
	if years == 1 {
		yearLabel = "ano"
	}
	monthLabel := "meses"
	if months == 1 {
		monthLabel = "mês"
	}

	if months == 0 {
		return fmt.Sprintf("%d %s", years, yearLabel)
	}
	return fmt.Sprintf("%d %s e %d %s", years, yearLabel, months, monthLabel)
}
