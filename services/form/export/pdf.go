// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/formneuro/formneuro/services/form/catalog"
	"github.com/formneuro/formneuro/services/form/schema"
)

// Page geometry in millimeters (A4 portrait).
const (
	marginLeft   = 20.0
	marginRight  = 20.0
	pageWidth    = 210.0
	contentWidth = pageWidth - marginLeft - marginRight
	lineHeight   = 6.0
	sectionGap   = 10.0
	breakAt      = 280.0
	footerY      = 292.0
)

// pdfWriter tracks the cursor on a manually paginated document. fpdf's
// auto page break is disabled; every advance goes through ensure so the
// layout matches the fixed paper form.
type pdfWriter struct {
	doc *fpdf.Fpdf
	tr  func(string) string
	y   float64
}

// ensure starts a new page when fewer than needed millimeters remain.
func (w *pdfWriter) ensure(needed float64) {
	if w.y+needed > breakAt {
		w.doc.AddPage()
		w.y = 20
	}
}

// text draws one line at the cursor without advancing it.
func (w *pdfWriter) text(x float64, s string) {
	w.doc.Text(x, w.y, w.tr(s))
}

// wrapped draws a wrapped block and advances the cursor one line per row.
func (w *pdfWriter) wrapped(x, width float64, s string) {
	for _, line := range w.doc.SplitText(w.tr(s), width) {
		w.ensure(20)
		w.doc.Text(x, w.y, line)
		w.y += lineHeight
	}
}

func (w *pdfWriter) sectionTitle(title string) {
	w.y += sectionGap
	w.doc.SetFont("Helvetica", "B", 14)
	w.doc.SetTextColor(26, 54, 93)
	w.ensure(15)
	w.text(marginLeft, title)
	w.y += 10
	w.doc.SetFontSize(10)
}

// orDash substitutes the em dash placeholder for unanswered fields.
func orDash(val string) string {
	if val == "" {
		return "—"
	}
	return val
}

// PDF renders the record as a paginated A4 document and writes it to w.
//
// # Description
//
// The document carries the same content as the text export: header fields,
// the anamnesis questions with boxed free-text answers, the numbered TDAH
// questions with their four frequency options, and the TEA questions
// grouped by sub-section. Conditional questions left unanswered are
// skipped. Every page gets a "Página i de n" footer plus a generation
// timestamp derived from generatedAt.
//
// Inputs:
//
//	r           - The record to render. Not modified.
//	generatedAt - Timestamp stamped into the footer. Injectable for tests.
//	out         - Destination for the finished PDF bytes.
//
// Outputs:
//
//	error - Non-nil when fpdf fails to produce the document.
func PDF(r *schema.Record, generatedAt time.Time, out io.Writer) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AliasNbPages("")
	// Pin the metadata clock so identical inputs yield identical bytes.
	doc.SetCreationDate(generatedAt)
	doc.SetModificationDate(generatedAt)

	w := &pdfWriter{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	footer := fmt.Sprintf("Gerado em %s às %s",
		generatedAt.Format("02/01/2006"), generatedAt.Format("15:04:05"))
	doc.SetFooterFunc(func() {
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(150, 150, 150)
		page := fmt.Sprintf("Página %d de {nb}", doc.PageNo())
		doc.Text(pageWidth/2-doc.GetStringWidth(w.tr(page))/2, footerY, w.tr(page))
		doc.Text(pageWidth-marginRight-doc.GetStringWidth(w.tr(footer)), footerY, w.tr(footer))
	})

	doc.AddPage()

	// Title
	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(26, 54, 93)
	title := "ANAMNESE"
	doc.Text(pageWidth/2-doc.GetStringWidth(title)/2, 25, title)

	w.y = 40

	// Header fields
	doc.SetFontSize(10)
	for _, q := range catalog.Header() {
		w.ensure(20)
		val, _ := r.Value(schema.SectionAnamnese, q.Key)
		doc.SetFont("Helvetica", "B", 10)
		doc.SetTextColor(0, 0, 0)
		w.text(marginLeft, q.Label+":")
		labelWidth := doc.GetStringWidth(w.tr(q.Label + ": "))
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(37, 99, 235)
		w.text(marginLeft+labelWidth+2, orDash(val))
		w.y += lineHeight + 2
	}

	// Anamnese questions
	w.sectionTitle("Anamnese — Perguntas")
	for _, q := range catalog.Anamnese() {
		val, _ := r.Value(schema.SectionAnamnese, q.Key)
		if q.Kind == catalog.KindConditionalText && val == "" {
			continue
		}

		w.ensure(14)
		doc.SetFont("Helvetica", "B", 10)
		doc.SetTextColor(0, 0, 0)
		w.wrapped(marginLeft, contentWidth, q.Label)

		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(37, 99, 235)

		if q.Kind == catalog.KindText || q.Kind == catalog.KindConditionalText {
			lines := doc.SplitText(w.tr("R: "+orDash(val)), contentWidth-6)
			boxHeight := float64(len(lines))*lineHeight + 4
			w.ensure(boxHeight + 2)
			doc.SetDrawColor(200, 200, 200)
			doc.SetFillColor(248, 250, 252)
			doc.RoundedRect(marginLeft, w.y-3, contentWidth, boxHeight, 1, "1234", "FD")
			doc.SetTextColor(37, 99, 235)
			for _, line := range lines {
				doc.Text(marginLeft+3, w.y+2, line)
				w.y += lineHeight
			}
			w.y += 4
		} else {
			w.ensure(20)
			w.text(marginLeft+4, "R: "+orDash(val))
			w.y += lineHeight + 2
		}
	}

	// TDAH screening
	w.sectionTitle("Rastreio para TDAH")
	for _, q := range catalog.Tdah() {
		val, _ := r.Value(schema.SectionTdah, q.Key)
		w.ensure(20)

		doc.SetFont("Helvetica", "B", 10)
		doc.SetTextColor(0, 0, 0)
		w.wrapped(marginLeft, contentWidth, numbered(q))

		doc.SetFontSize(9)
		for _, opt := range catalog.FrequencyOptions {
			w.ensure(20)
			if opt == val {
				doc.SetFont("Helvetica", "B", 9)
				doc.SetTextColor(37, 99, 235)
				w.text(marginLeft+4, "  (X) "+opt)
			} else {
				doc.SetFont("Helvetica", "", 9)
				doc.SetTextColor(150, 150, 150)
				w.text(marginLeft+4, "  (   ) "+opt)
			}
			w.y += lineHeight - 1
		}
		doc.SetFontSize(10)
		w.y += 3
	}

	// TEA screening
	w.sectionTitle("Rastreio para TEA")
	currentSub := ""
	for _, q := range catalog.Tea() {
		if q.SubSection != currentSub {
			currentSub = q.SubSection
			w.y += 4
			w.ensure(14)
			doc.SetFont("Helvetica", "B", 11)
			doc.SetTextColor(26, 54, 93)
			w.text(marginLeft, catalog.TeaSubSectionLabel(currentSub))
			w.y += 8
			doc.SetFontSize(10)
		}

		val, _ := r.Value(schema.SectionTea, q.Key)
		w.ensure(14)

		doc.SetFont("Helvetica", "B", 10)
		doc.SetTextColor(0, 0, 0)
		w.wrapped(marginLeft, contentWidth, numbered(q))

		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(37, 99, 235)
		w.ensure(20)
		w.text(marginLeft+4, "R: "+orDash(val))
		w.y += lineHeight + 3
	}

	if err := doc.Output(out); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
