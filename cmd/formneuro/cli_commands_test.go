// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/formneuro/formneuro/services/form/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocument(t *testing.T, rec *schema.Record) string {
	t.Helper()
	data, err := schema.Encode(rec)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func completeRecord() *schema.Record {
	rec := schema.Default()
	rec.Anamnese.PatientName = "Maria Silva"
	rec.Anamnese.BirthDate = "2000-01-15"
	rec.Anamnese.AgeYearsMonths = "24 anos e 5 meses"
	rec.Anamnese.Education = "Superior"
	rec.Anamnese.Gender = "Feminino"
	return rec
}

func TestReadDocument(t *testing.T) {
	path := writeDocument(t, completeRecord())

	rec, err := readDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", rec.Anamnese.PatientName)
}

func TestReadDocumentMissingFile(t *testing.T) {
	_, err := readDocument(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestReadDocumentRejectsOversized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.json")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0600))

	old := appConfig.ImportMaxBytes
	appConfig.ImportMaxBytes = 1024
	defer func() { appConfig.ImportMaxBytes = old }()

	_, err := readDocument(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grande demais")
}

func TestReadDocumentRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0600))

	_, err := readDocument(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formato inesperado")
}

func TestRunValidate(t *testing.T) {
	t.Run("complete document passes", func(t *testing.T) {
		path := writeDocument(t, completeRecord())
		assert.NoError(t, runValidate(validateCmd, []string{path}))
	})

	t.Run("empty document fails", func(t *testing.T) {
		path := writeDocument(t, schema.Default())
		err := runValidate(validateCmd, []string{path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "obrigatório")
	})
}

func TestRunExportText(t *testing.T) {
	doc := writeDocument(t, completeRecord())
	out := filepath.Join(t.TempDir(), "saida.txt")

	exportFormat = "txt"
	exportOut = out
	exportForce = true
	defer func() { exportFormat = "pdf"; exportOut = ""; exportForce = false }()

	require.NoError(t, runExport(exportCmd, []string{doc}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ANAMNESE")
	assert.Contains(t, string(data), "Maria Silva")
}

func TestRunExportUnknownFormat(t *testing.T) {
	doc := writeDocument(t, completeRecord())

	exportFormat = "docx"
	defer func() { exportFormat = "pdf" }()

	err := runExport(exportCmd, []string{doc})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formato desconhecido")
}
