// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/formneuro/formneuro/pkg/logging"
	"github.com/formneuro/formneuro/services/form/config"
	"github.com/formneuro/formneuro/services/form/controller"
	"github.com/formneuro/formneuro/services/form/export"
	"github.com/formneuro/formneuro/services/form/schema"
	"github.com/formneuro/formneuro/services/form/session"
	"github.com/formneuro/formneuro/services/form/tui"
)

const version = "1.0.0"

var (
	rootCmd = &cobra.Command{
		Use:   "formneuro",
		Short: "Formulário de anamnese para avaliação neuropsicológica",
		Long: `FormNeuro conduz a anamnese neuropsicológica em quatro etapas
(dados do avaliado, anamnese clínica, rastreio TDAH, rastreio TEA),
valida os campos obrigatórios e exporta o resultado em JSON, texto ou PDF.`,
		RunE: runForm,
	}

	validateCmd = &cobra.Command{
		Use:   "validate [arquivo.json]",
		Short: "Valida um documento JSON exportado",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	exportFormat string
	exportOut    string
	exportForce  bool

	exportCmd = &cobra.Command{
		Use:   "export [arquivo.json]",
		Short: "Reexporta um documento JSON como texto, PDF ou JSON normalizado",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Mostra a versão",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("formneuro %s\n", version)
		},
	}
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "pdf", "formato de saída: pdf, txt ou json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "arquivo de destino (padrão: nome derivado do avaliado)")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "sobrescreve o destino sem perguntar")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// =============================================================================
// Interactive Form
// =============================================================================

func runForm(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("o formulário interativo precisa de um terminal; use os subcomandos validate/export")
	}

	// The TUI owns the screen, so logs go to file only.
	logger := logging.New(logging.Config{
		Level:   appConfig.Level(),
		LogDir:  appConfig.LogDir,
		Service: "tui",
		Quiet:   true,
	})
	defer logger.Close()

	store := openStore(logger)
	defer store.Close()

	ctrl := controller.New(controller.Config{
		Store:  store,
		Logger: logger,
	})

	return tui.Run(tui.Config{
		Controller: ctrl,
		App:        appConfig,
		Logger:     logger,
	})
}

// openStore opens the badger session store, degrading to the in-memory
// store when the data directory is unusable. The form still works; only
// resume-on-restart is lost.
func openStore(logger *logging.Logger) session.Store {
	dataDir := config.ExpandPath(appConfig.DataDir)
	storeCfg := session.DefaultConfig(dataDir)
	storeCfg.Logger = logger.Slog()
	store, err := session.Open(storeCfg)
	if err != nil {
		logger.Warn("session store unavailable, using memory store", "error", err.Error())
		return session.NewMemoryStore()
	}
	return store
}

// =============================================================================
// Validate
// =============================================================================

func runValidate(cmd *cobra.Command, args []string) error {
	rec, err := readDocument(args[0])
	if err != nil {
		return err
	}

	if problems := schema.Validate(rec); problems != nil {
		paths := make([]string, 0, len(problems))
		for path := range problems {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, problems[path])
		}
		return fmt.Errorf("%d campo(s) obrigatório(s) pendente(s)", len(problems))
	}

	fmt.Println("Documento válido.")
	return nil
}

// =============================================================================
// Export
// =============================================================================

func runExport(cmd *cobra.Command, args []string) error {
	rec, err := readDocument(args[0])
	if err != nil {
		return err
	}

	if exportFormat == "text" {
		exportFormat = "txt"
	}
	switch exportFormat {
	case "pdf", "txt", "json":
	default:
		return fmt.Errorf("formato desconhecido: %q (use pdf, txt ou json)", exportFormat)
	}

	out := exportOut
	if out == "" {
		out = filepath.Join(config.ExpandPath(appConfig.ExportDir),
			export.Filename(rec.Anamnese.PatientName, exportFormat))
	}

	if !exportForce {
		if _, err := os.Stat(out); err == nil {
			overwrite := false
			confirm := huh.NewConfirm().
				Title(fmt.Sprintf("Sobrescrever %s?", out)).
				Affirmative("Sim").
				Negative("Não").
				Value(&overwrite)
			if err := confirm.Run(); err != nil {
				return fmt.Errorf("confirmação cancelada: %w", err)
			}
			if !overwrite {
				return fmt.Errorf("exportação cancelada")
			}
		}
	}

	switch exportFormat {
	case "pdf":
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("criar %s: %w", out, err)
		}
		if err := export.PDF(rec, time.Now(), f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("fechar %s: %w", out, err)
		}
	case "txt":
		if err := os.WriteFile(out, []byte(export.Text(rec)+"\n"), 0600); err != nil {
			return fmt.Errorf("escrever %s: %w", out, err)
		}
	case "json":
		data, err := export.JSON(rec)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0600); err != nil {
			return fmt.Errorf("escrever %s: %w", out, err)
		}
	}

	fmt.Printf("Exportado: %s\n", out)
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// readDocument loads and decodes one exported JSON document, honoring the
// configured size cap.
func readDocument(path string) (*schema.Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	if info.Size() > appConfig.ImportMaxBytes {
		return nil, fmt.Errorf("%s: arquivo grande demais (%d bytes, máximo %d)",
			path, info.Size(), appConfig.ImportMaxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ler %s: %w", path, err)
	}
	rec, err := schema.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: documento em formato inesperado: %w", path, err)
	}
	return rec, nil
}
