// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/formneuro/formneuro/services/form/catalog"
	"github.com/formneuro/formneuro/services/form/controller"
	"github.com/formneuro/formneuro/services/form/export"
)

// =============================================================================
// Styles
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("26"))

	stepActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	stepInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	focusedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))

	optionOnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	optionOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	subSectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// =============================================================================
// View
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return "Até logo.\n"
	}
	if !m.ready {
		return "Carregando...\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// refresh re-renders the current screen into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	switch m.ctrl.Screen() {
	case controller.ScreenHome:
		m.viewport.SetContent(m.renderHome())
	case controller.ScreenForm:
		m.viewport.SetContent(m.renderForm())
	case controller.ScreenReview:
		m.viewport.SetContent(m.renderReview())
	}
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("FormNeuro — Anamnese Neuropsicológica")
	if m.ctrl.Screen() != controller.ScreenForm {
		return title + "\n"
	}

	parts := make([]string, len(stepTitles))
	for i, name := range stepTitles {
		label := fmt.Sprintf("%d. %s", i+1, name)
		if i == m.ctrl.Step() {
			parts[i] = stepActiveStyle.Render(label)
		} else {
			parts[i] = stepInactiveStyle.Render(label)
		}
	}
	return title + "\n" + strings.Join(parts, stepInactiveStyle.Render("  ·  "))
}

func (m Model) renderFooter() string {
	var help string
	switch {
	case m.editing:
		help = "enter confirmar · esc cancelar"
	case m.importing:
		help = "enter importar · esc cancelar"
	default:
		switch m.ctrl.Screen() {
		case controller.ScreenHome:
			help = "n novo formulário · i importar JSON · q sair"
		case controller.ScreenForm:
			help = "↑/↓ campo · enter editar/alternar · tab/shift+tab etapa · ctrl+s concluir · esc início"
		case controller.ScreenReview:
			help = "e editar · t copiar texto · s salvar JSON · p salvar PDF · esc início"
		}
	}

	line := helpStyle.Render(help)
	if m.status != "" {
		line = statusStyle.Render(m.status) + "\n" + line
	}
	return line
}

// =============================================================================
// Screens
// =============================================================================

func (m Model) renderHome() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Formulário de anamnese para avaliação neuropsicológica."))
	b.WriteString("\n\n")
	b.WriteString("  [n] Novo formulário\n")
	b.WriteString("  [i] Importar um JSON exportado anteriormente\n")
	b.WriteString("  [q] Sair\n")

	if m.importing {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Arquivo: "))
		b.WriteString(m.pathInput.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder

	// Required-field notices sit on top of the first step, where those
	// fields live.
	if errs := m.ctrl.Errors(); len(errs) > 0 && m.ctrl.Step() == controller.StepHeader {
		for _, q := range catalog.Header() {
			if msg, ok := errs["anamnese."+q.Key]; ok {
				b.WriteString(errorStyle.Render("! " + msg))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	for i, row := range m.rows() {
		if row.SubSectionLabel != "" {
			b.WriteString("\n")
			b.WriteString(subSectionStyle.Render(row.SubSectionLabel))
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderRow(i, row.Question))
	}
	return b.String()
}

// renderRow renders one question with its cursor, label and value/options.
func (m Model) renderRow(index int, q catalog.Question) string {
	cursor := "  "
	label := labelStyle.Render(questionLabel(q))
	if index == m.cursor {
		cursor = focusedStyle.Render("> ")
		label = focusedStyle.Render(questionLabel(q))
	}

	val := m.fieldValue(q)

	switch q.Kind {
	case catalog.KindYesNo, catalog.KindRadio:
		opts := make([]string, len(q.Options))
		for i, opt := range q.Options {
			if opt == val {
				opts[i] = optionOnStyle.Render("(X) " + opt)
			} else {
				opts[i] = optionOffStyle.Render("(  ) " + opt)
			}
		}
		return cursor + label + "\n    " + strings.Join(opts, "   ") + "\n"

	default:
		if m.editing && index == m.cursor {
			return cursor + label + "\n    " + m.input.View() + "\n"
		}
		shown := val
		if shown == "" {
			shown = "___"
		}
		if m.ageIsDerived(q) {
			shown += " (calculado)"
		}
		return cursor + label + "\n    " + valueStyle.Render(shown) + "\n"
	}
}

// questionLabel prefixes screening questions with their display number.
func questionLabel(q catalog.Question) string {
	if q.Number > 0 {
		return fmt.Sprintf("%d. %s", q.Number, q.Label)
	}
	return q.Label
}

func (m Model) renderReview() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Revisão"))
	b.WriteString("\n\n")
	b.WriteString(export.Text(m.ctrl.Record()))
	b.WriteString("\n")
	return b.String()
}
