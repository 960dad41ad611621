// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tui implements the interactive anamnesis form using bubbletea.
//
// # Description
//
// The model mirrors the controller's three screens: a home screen (new
// form / import / quit), the four-step form wizard and the read-only
// review screen. All form state lives in the controller; the model only
// holds view state (cursor, viewport, the text input while editing).
//
// # Thread Safety
//
// The model is single-threaded inside the bubbletea event loop. Do not
// access it from other goroutines.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/formneuro/formneuro/pkg/logging"
	"github.com/formneuro/formneuro/services/form/catalog"
	"github.com/formneuro/formneuro/services/form/config"
	"github.com/formneuro/formneuro/services/form/controller"
	"github.com/formneuro/formneuro/services/form/export"
	"github.com/formneuro/formneuro/services/form/schema"
)

// stepTitles are the wizard step headings, in step order.
var stepTitles = []string{
	"Dados do avaliado",
	"Anamnese",
	"Rastreio para TDAH",
	"Rastreio para TEA",
}

// =============================================================================
// Config
// =============================================================================

// Config configures the form TUI.
type Config struct {
	// Controller drives all form state. Required.
	Controller *controller.Controller

	// App is the loaded application config (import size cap, export dir).
	App config.Config

	// Logger for UI-level events. Defaults to logging.Default().
	Logger *logging.Logger

	// Now is the clock for export timestamps. Defaults to time.Now.
	Now func() time.Time
}

// =============================================================================
// Model
// =============================================================================

// Model is the bubbletea model for the anamnesis form.
type Model struct {
	config Config
	ctrl   *controller.Controller
	logger *logging.Logger
	now    func() time.Time

	// Viewport over the current screen's content.
	viewport viewport.Model
	width    int
	height   int
	ready    bool

	// cursor is the focused row index within the current step's rows.
	cursor int

	// Text editing state. editing is true while input owns the keyboard.
	editing bool
	input   textinput.Model

	// Import path prompt on the home screen.
	importing bool
	pathInput textinput.Model

	// status is a transient one-line notice (export done, import failed).
	status string

	quitting bool
}

// New creates the form model.
func New(cfg Config) Model {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	input := textinput.New()
	input.CharLimit = 500
	input.Width = 60

	pathInput := textinput.New()
	pathInput.Placeholder = "caminho do arquivo .json"
	pathInput.CharLimit = 500
	pathInput.Width = 60

	return Model{
		config:    cfg,
		ctrl:      cfg.Controller,
		logger:    cfg.Logger,
		now:       cfg.Now,
		input:     input,
		pathInput: pathInput,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// =============================================================================
// Rows
// =============================================================================

// rows returns the current step's visible rows in catalog order.
func (m Model) rows() []catalog.Row {
	anamneseValue := func(key string) string {
		v, _ := m.ctrl.Record().Value(schema.SectionAnamnese, key)
		return v
	}

	switch m.ctrl.Step() {
	case controller.StepHeader:
		return catalog.VisibleRows(catalog.Header(), anamneseValue)
	case controller.StepAnamnese:
		return catalog.VisibleRows(catalog.Anamnese(), anamneseValue)
	case controller.StepTdah:
		return catalog.VisibleRows(catalog.Tdah(), func(key string) string {
			v, _ := m.ctrl.Record().Value(schema.SectionTdah, key)
			return v
		})
	default:
		return catalog.VisibleRows(catalog.Tea(), func(key string) string {
			v, _ := m.ctrl.Record().Value(schema.SectionTea, key)
			return v
		})
	}
}

// section returns the record section the current step edits.
func (m Model) section() string {
	switch m.ctrl.Step() {
	case controller.StepTdah:
		return schema.SectionTdah
	case controller.StepTea:
		return schema.SectionTea
	default:
		return schema.SectionAnamnese
	}
}

// fieldValue reads the focused row's current value.
func (m Model) fieldValue(q catalog.Question) string {
	v, _ := m.ctrl.Record().Value(m.section(), q.Key)
	return v
}

// ageIsDerived reports whether the focused question is the read-only age
// field (derived from the birth date once one is set).
func (m Model) ageIsDerived(q catalog.Question) bool {
	if q.Key != "ageYearsMonths" {
		return false
	}
	birth, _ := m.ctrl.Record().Value(schema.SectionAnamnese, "birthDate")
	return birth != ""
}

// =============================================================================
// Update
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		footerHeight := 2
		viewportHeight := m.height - headerHeight - footerHeight

		if !m.ready {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.refresh()

	case tea.KeyMsg:
		m.status = ""

		if m.editing {
			return m.handleEditKey(msg)
		}
		if m.importing {
			return m.handleImportKey(msg)
		}

		switch m.ctrl.Screen() {
		case controller.ScreenHome:
			return m.handleHomeKey(msg)
		case controller.ScreenForm:
			return m.handleFormKey(msg)
		case controller.ScreenReview:
			return m.handleReviewKey(msg)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// Key Handling
// =============================================================================

func (m Model) handleHomeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "n", "N", "enter":
		m.ctrl.StartNew()
		m.cursor = 0
		m.refresh()
	case "i", "I":
		m.importing = true
		m.pathInput.SetValue("")
		m.refresh()
		return m, m.pathInput.Focus()
	case "q", "Q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleImportKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.importing = false
		m.pathInput.Blur()
		m.importFile(m.pathInput.Value())
		m.cursor = 0
		m.refresh()
		return m, nil
	case "esc":
		m.importing = false
		m.pathInput.Blur()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	rows := m.rows()

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.ctrl.BackToHome()
		m.cursor = 0
		m.refresh()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refresh()
		}

	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
			m.refresh()
		}

	case "tab", "right", "l":
		m.ctrl.AdvanceStep()
		m.cursor = 0
		m.viewport.GotoTop()
		m.refresh()

	case "shift+tab", "left", "h":
		m.ctrl.RetreatStep()
		m.cursor = 0
		m.viewport.GotoTop()
		m.refresh()

	case "ctrl+s":
		if m.ctrl.Finish() {
			m.status = "Formulário validado."
		} else {
			m.status = fmt.Sprintf("%d campo(s) obrigatório(s) pendente(s).", len(m.ctrl.Errors()))
			m.cursor = 0
		}
		m.viewport.GotoTop()
		m.refresh()

	case "enter", " ":
		if m.cursor < len(rows) {
			return m.activateRow(rows[m.cursor].Question)
		}

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// activateRow starts editing a text question or cycles a choice question.
func (m Model) activateRow(q catalog.Question) (Model, tea.Cmd) {
	switch q.Kind {
	case catalog.KindYesNo, catalog.KindRadio:
		m.ctrl.UpdateField(m.section(), q.Key, nextOption(q.Options, m.fieldValue(q)))
		m.refresh()
		return m, nil
	default:
		if m.ageIsDerived(q) {
			m.status = "Idade é calculada a partir da data de nascimento."
			m.refresh()
			return m, nil
		}
		m.editing = true
		m.input.SetValue(m.fieldValue(q))
		m.input.CursorEnd()
		m.refresh()
		return m, m.input.Focus()
	}
}

// nextOption cycles through the option set; an unset or foreign value
// starts at the first option.
func nextOption(options []string, current string) string {
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (m Model) handleEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		rows := m.rows()
		if m.cursor < len(rows) {
			m.ctrl.UpdateField(m.section(), rows[m.cursor].Question.Key, m.input.Value())
		}
		m.editing = false
		m.input.Blur()
		m.refresh()
		return m, nil
	case "esc":
		m.editing = false
		m.input.Blur()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "e", "E":
		m.ctrl.Edit()
		m.cursor = 0
		m.viewport.GotoTop()
		m.refresh()

	case "t", "T":
		if err := export.CopyText(m.ctrl.Record()); err != nil {
			m.status = err.Error()
		} else {
			m.status = "Texto copiado para a área de transferência."
		}
		m.refresh()

	case "p", "P":
		m.exportFile("pdf")
		m.refresh()

	case "s", "S":
		m.exportFile("json")
		m.refresh()

	case "esc", "q", "Q":
		m.ctrl.BackToHome()
		m.cursor = 0
		m.refresh()

	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// File Operations
// =============================================================================

// importFile loads and imports a JSON document, reporting the outcome in
// the status line. The session is untouched on failure.
func (m *Model) importFile(path string) {
	if path == "" {
		m.status = "Nenhum arquivo informado."
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		m.status = "Arquivo não encontrado."
		return
	}
	if info.Size() > m.config.App.ImportMaxBytes {
		m.status = "Arquivo grande demais."
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		m.status = "Erro ao ler o arquivo."
		return
	}
	if err := m.ctrl.Import(data); err != nil {
		m.logger.Warn("tui import failed", "error", err.Error())
		m.status = "Arquivo JSON inválido."
		return
	}
	m.status = "Formulário importado."
}

// exportFile writes the record as JSON or PDF into the export directory.
func (m *Model) exportFile(format string) {
	rec := m.ctrl.Record()
	name := export.Filename(rec.Anamnese.PatientName, format)
	path := filepath.Join(m.config.App.ExportDir, name)

	var err error
	switch format {
	case "pdf":
		var f *os.File
		if f, err = os.Create(path); err == nil {
			err = export.PDF(rec, m.now(), f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}
	default:
		var data []byte
		if data, err = export.JSON(rec); err == nil {
			err = os.WriteFile(path, data, 0600)
		}
	}

	if err != nil {
		m.logger.Warn("tui export failed", "format", format, "error", err.Error())
		m.status = "Falha ao exportar."
		return
	}
	m.status = "Exportado: " + path
}
