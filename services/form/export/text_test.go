// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package export

import (
	"strings"
	"testing"

	"github.com/formneuro/formneuro/services/form/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextStartsWithTitle(t *testing.T) {
	text := Text(schema.Default())
	assert.True(t, strings.HasPrefix(text, "ANAMNESE\n"))
}

func TestTextHeaderFields(t *testing.T) {
	r := schema.Default()
	r.Anamnese.PatientName = "Maria Silva"
	r.Anamnese.Education = "Superior"

	text := Text(r)
	assert.Contains(t, text, "Nome do avaliado(a): Maria Silva")
	assert.Contains(t, text, "Escolaridade: Superior")
}

func TestTextYesNoMarks(t *testing.T) {
	r := schema.Default()
	r.Anamnese.PlannedPregnancy = "SIM"

	text := Text(r)
	assert.Contains(t, text, "Nasceu de gestação planejada?\n(X) SIM              (  ) NÃO")
}

func TestTextRadioMarks(t *testing.T) {
	r := schema.Default()
	r.Anamnese.DeliveryType = "NORMAL"

	text := Text(r)
	assert.Contains(t, text, "Parto?\n(  ) CESÁRIA       (X) NORMAL")
}

func TestTextHidesUnmetConditionals(t *testing.T) {
	r := schema.Default()
	text := Text(r)
	assert.NotContains(t, text, "Se sim, quantos?")

	r.Anamnese.HasSiblings = "SIM"
	r.Anamnese.SiblingsCount = "2"
	text = Text(r)
	assert.Contains(t, text, "Se sim, quantos? R: 2")
}

func TestTextFreeTextHeuristics(t *testing.T) {
	r := schema.Default()
	r.Anamnese.DictionProblems = "SIM"
	text := Text(r)

	// "Obs" labels keep the answer inline with a ___ placeholder.
	assert.Contains(t, text, "Obs (problemas na fala) R: ___")
	// Question-phrased free text puts the answer on its own R: line.
	assert.Contains(t, text, "Foi amamentado(a) por quanto tempo?\nR: ___")
	assert.Contains(t, text, "Qual idade dos pais na ocasião da gestação? - Mãe\nR: ___")
}

func TestTextTdahBlock(t *testing.T) {
	r := schema.Default()
	r.Tdah.Tdah1 = "Frequentemente"

	text := Text(r)
	require.Contains(t, text, "Rastreio para TDAH")
	assert.Contains(t, text,
		"1. Tem dificuldade em prestar atenção a detalhes ou comete erros por descuido em atividades do trabalho ou estudo?\n"+
			"(  ) Nunca / Raramente\n(  ) Algumas vezes\n(X) Frequentemente\n(  ) Muito frequentemente")
}

func TestTextTeaBlock(t *testing.T) {
	r := schema.Default()
	r.Tea.Tea1 = "Sim"
	r.Tea.Tea12 = "Não"

	text := Text(r)
	require.Contains(t, text, "RASTREIO PARA TEA")
	assert.Contains(t, text, "A. Déficits na comunicação social e interação")
	assert.Contains(t, text, "B. Comportamentos repetitivos e interesses restritos")
	assert.Contains(t, text, "C. Desenvolvimento e padrão de comportamento")
	assert.Contains(t, text, "1. Tem dificuldade em iniciar ou manter conversas? (X) Sim   (  ) Não")
	assert.Contains(t, text, "12. Demonstrou sinais de TEA na infância (mesmo que não diagnosticado)? (  ) Sim   (X) Não")
}
