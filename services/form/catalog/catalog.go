// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package catalog defines the static question catalog for the anamnesis form.
//
// # Description
//
// The catalog enumerates every question of the four form sections (header
// data, clinical anamnesis, TDAH screening, TEA screening) with its kind,
// display label, option set and optional visibility condition. It is pure
// data: the schema, the TUI and the exporters all iterate these sequences,
// so their ordering is load-bearing.
//
// # Invariants
//
//   - Question keys are unique within each sequence.
//   - A ConditionalOn parent key refers to a question that appears earlier
//     in the same sequence.
//
// Verify checks both; the package tests run it against every sequence.
//
// # Thread Safety
//
// All exported data is read-only after package initialization. Callers must
// not mutate the returned slices.
package catalog

import "fmt"

// =============================================================================
// Question Kinds
// =============================================================================

// Kind is the closed set of question variants the form can render.
type Kind int

const (
	// KindText is a free-text input.
	KindText Kind = iota

	// KindDate is a date input (YYYY-MM-DD).
	KindDate

	// KindYesNo is a binary SIM/NÃO choice.
	KindYesNo

	// KindRadio is a single choice from a declared option set.
	KindRadio

	// KindConditionalText is a free-text input that is only visible while
	// its parent question holds a specific value.
	KindConditionalText
)

// String returns the kind name used in logs and error messages.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindDate:
		return "date"
	case KindYesNo:
		return "yesno"
	case KindRadio:
		return "radio"
	case KindConditionalText:
		return "conditional-text"
	default:
		return "unknown"
	}
}

// =============================================================================
// Question Definition
// =============================================================================

// Condition gates a question's visibility on another field of the same
// section holding exactly Value.
type Condition struct {
	// Field is the parent question's field key.
	Field string

	// Value is the parent value that makes the dependent question visible.
	Value string
}

// Question is one catalog entry.
type Question struct {
	// ID is the stable catalog identity (h1, a10b, tdah3, ...).
	ID string

	// Number is the display number for screening questions (0 for none).
	Number int

	// Label is the fixed natural-language prompt shown to the clinician.
	Label string

	// Key is the field key in the section record and in exported JSON.
	Key string

	// Kind selects the variant; Options and ConditionalOn are its payload.
	Kind Kind

	// Options is the declared option set for KindYesNo and KindRadio.
	Options []string

	// ConditionalOn is non-nil only for KindConditionalText.
	ConditionalOn *Condition

	// SubSection is the TEA grouping key (A, B or C); empty elsewhere.
	SubSection string
}

// =============================================================================
// Option Sets
// =============================================================================

// YesNoOptions is the SIM/NÃO domain of the anamnesis binary questions.
var YesNoOptions = []string{"SIM", "NÃO"}

// FrequencyOptions is the four-point frequency domain of the TDAH screening.
var FrequencyOptions = []string{
	"Nunca / Raramente",
	"Algumas vezes",
	"Frequentemente",
	"Muito frequentemente",
}

// TeaOptions is the Sim/Não domain of the TEA screening.
var TeaOptions = []string{"Sim", "Não"}

// DeliveryOptions is the delivery-type domain.
var DeliveryOptions = []string{"CESÁRIA", "NORMAL"}

// TermOptions is the prematurity domain.
var TermOptions = []string{"PREMATURO", "A TERMO"}

// =============================================================================
// Sequences
// =============================================================================

var headerQuestions = []Question{
	{ID: "h1", Label: "Nome do avaliado(a)", Kind: KindText, Key: "patientName"},
	{ID: "h2", Label: "Data de nascimento", Kind: KindDate, Key: "birthDate"},
	{ID: "h3", Label: "Idade em anos e meses", Kind: KindText, Key: "ageYearsMonths"},
	{ID: "h4", Label: "Escolaridade", Kind: KindText, Key: "education"},
	{ID: "h5", Label: "Nome do profissional caso tenha sido encaminhado", Kind: KindText, Key: "referralProfessional"},
	{ID: "h6", Label: "Gênero", Kind: KindText, Key: "gender"},
}

var anamneseQuestions = []Question{
	{ID: "a1", Label: "Nasceu de gestação planejada?", Kind: KindYesNo, Options: YesNoOptions, Key: "plannedPregnancy"},
	{ID: "a2a", Label: "Qual idade dos pais na ocasião da gestação? - Mãe", Kind: KindText, Key: "motherAgeAtPregnancy"},
	{ID: "a2b", Label: "Qual idade dos pais na ocasião da gestação? - Pai", Kind: KindText, Key: "fatherAgeAtPregnancy"},
	{ID: "a3", Label: "A gestação foi tranquila?", Kind: KindYesNo, Options: YesNoOptions, Key: "calmPregnancy"},
	{ID: "a4", Label: "Foi bem aceito(a) no núcleo familiar?", Kind: KindYesNo, Options: YesNoOptions, Key: "familyAccepted"},
	{ID: "a5", Label: "A mãe fez o Pré-Natal?", Kind: KindYesNo, Options: YesNoOptions, Key: "prenatalCare"},
	{ID: "a6", Label: "Parto?", Kind: KindRadio, Options: DeliveryOptions, Key: "deliveryType"},
	{ID: "a7", Label: "Houve complicações no parto?", Kind: KindYesNo, Options: YesNoOptions, Key: "deliveryComplications"},
	{ID: "a8", Label: "Prematuro ou a termo?", Kind: KindRadio, Options: TermOptions, Key: "prematureOrFullTerm"},
	{ID: "a9", Label: "Foi um bebê choroso?", Kind: KindYesNo, Options: YesNoOptions, Key: "cryingBaby"},
	{ID: "a10", Label: "Possui Irmãos?", Kind: KindYesNo, Options: YesNoOptions, Key: "hasSiblings"},
	{ID: "a10b", Label: "Se sim, quantos?", Kind: KindConditionalText, ConditionalOn: &Condition{Field: "hasSiblings", Value: "SIM"}, Key: "siblingsCount"},
	{ID: "a11", Label: "Algum dos pais era usuário de drogas ou alcoólatra?", Kind: KindYesNo, Options: YesNoOptions, Key: "parentsDrugUse"},
	{ID: "a12", Label: "Foi amamentado(a) por quanto tempo?", Kind: KindText, Key: "breastfeedingDuration"},
	{ID: "a13", Label: "Engatinhou?", Kind: KindYesNo, Options: YesNoOptions, Key: "crawled"},
	{ID: "a14", Label: "Usou andador?", Kind: KindYesNo, Options: YesNoOptions, Key: "usedWalker"},
	{ID: "a15", Label: "Andou com que idade?", Kind: KindText, Key: "ageStartedWalking"},
	{ID: "a16", Label: "Teve atraso na fala?", Kind: KindYesNo, Options: YesNoOptions, Key: "speechDelay"},
	{ID: "a17", Label: "Tem/Teve problemas com dicção, troca de letras ou outros na fala?", Kind: KindYesNo, Options: YesNoOptions, Key: "dictionProblems"},
	{ID: "a17b", Label: "Obs (problemas na fala)", Kind: KindConditionalText, ConditionalOn: &Condition{Field: "dictionProblems", Value: "SIM"}, Key: "dictionNotes"},
	{ID: "a18", Label: "Entrou na escola ou creche com que idade?", Kind: KindText, Key: "ageStartedSchool"},
	{ID: "a19", Label: "A adaptação foi tranquila?", Kind: KindYesNo, Options: YesNoOptions, Key: "smoothSchoolAdaptation"},
	{ID: "a20", Label: "Quais eram suas brincadeiras preferidas na infância?", Kind: KindText, Key: "favoriteChildhoodGames"},
	{ID: "a21", Label: "Teve icterícia neonatal?", Kind: KindYesNo, Options: YesNoOptions, Key: "neonatalJaundice"},
	{ID: "a22", Label: "Teve COVID?", Kind: KindText, Key: "hadCovid"},
	{ID: "a23", Label: "A mãe teve candidíase durante a gestação?", Kind: KindText, Key: "motherCandidiasis"},
	{ID: "a24", Label: "Usou chupeta ou chupou o dedo?", Kind: KindYesNo, Options: YesNoOptions, Key: "usedPacifier"},
	{ID: "a24b", Label: "Até que idade?", Kind: KindConditionalText, ConditionalOn: &Condition{Field: "usedPacifier", Value: "SIM"}, Key: "pacifierUntilAge"},
	{ID: "a25", Label: "Tinha um objeto transicional, que ficava sempre com ele e tinha dependência para dormir ou se acalmar? (Cobertor, fraldinha, bichinho de pelúcia etc)", Kind: KindYesNo, Options: YesNoOptions, Key: "transitionalObject"},
	{ID: "a26", Label: "Tem dificuldade em atender telefonemas?", Kind: KindYesNo, Options: YesNoOptions, Key: "phoneCallDifficulty"},
	{ID: "a27", Label: "Tem problemas gastrointestinais?", Kind: KindYesNo, Options: YesNoOptions, Key: "gastrointestinalProblems"},
	{ID: "a28", Label: "Tem diabetes?", Kind: KindYesNo, Options: YesNoOptions, Key: "diabetes"},
	{ID: "a29", Label: "Tem problemas com o sono?", Kind: KindYesNo, Options: YesNoOptions, Key: "sleepProblems"},
	{ID: "a30", Label: "Tem dores no corpo?", Kind: KindYesNo, Options: YesNoOptions, Key: "bodyPain"},
	{ID: "a31", Label: "Tem casos de autismo na família?", Kind: KindYesNo, Options: YesNoOptions, Key: "familyAutism"},
	{ID: "a32", Label: "Costuma sentir vertigens ou tontura?", Kind: KindYesNo, Options: YesNoOptions, Key: "dizziness"},
	{ID: "a33", Label: "Foi uma criança medrosa?", Kind: KindYesNo, Options: YesNoOptions, Key: "fearfulChild"},
	{ID: "a34", Label: "Não tem noção de perigo? (atravessa a rua sem olhar etc.)", Kind: KindYesNo, Options: YesNoOptions, Key: "noDangerAwareness"},
	{ID: "a35", Label: "Tem interesse por outras pessoas?", Kind: KindYesNo, Options: YesNoOptions, Key: "interestInOthers"},
	{ID: "a36", Label: "Possui outros diagnósticos?", Kind: KindYesNo, Options: YesNoOptions, Key: "otherDiagnoses"},
	{ID: "a36b", Label: "Se sim, quais?", Kind: KindConditionalText, ConditionalOn: &Condition{Field: "otherDiagnoses", Value: "SIM"}, Key: "whichDiagnoses"},
	{ID: "a37", Label: "Toma medicamentos?", Kind: KindYesNo, Options: YesNoOptions, Key: "takesMedication"},
	{ID: "a37b", Label: "Se sim, quais?", Kind: KindConditionalText, ConditionalOn: &Condition{Field: "takesMedication", Value: "SIM"}, Key: "whichMedication"},
	{ID: "a38", Label: "Tem a sensação que está sempre cansado?", Kind: KindYesNo, Options: YesNoOptions, Key: "alwaysTired"},
}

var tdahQuestions = []Question{
	{ID: "tdah1", Number: 1, Label: "Tem dificuldade em prestar atenção a detalhes ou comete erros por descuido em atividades do trabalho ou estudo?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah1"},
	{ID: "tdah2", Number: 2, Label: "Tem dificuldade em manter a atenção em tarefas prolongadas ou tediosas?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah2"},
	{ID: "tdah3", Number: 3, Label: "Parece não escutar quando falam com você, mesmo sem distrações óbvias?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah3"},
	{ID: "tdah4", Number: 4, Label: "Tem dificuldade em seguir instruções ou concluir tarefas no prazo?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah4"},
	{ID: "tdah5", Number: 5, Label: "Tem dificuldade em organizar tarefas ou atividades?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah5"},
	{ID: "tdah6", Number: 6, Label: "Evita ou adia tarefas que exigem esforço mental prolongado?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah6"},
	{ID: "tdah7", Number: 7, Label: "Perde objetos necessários para o trabalho, estudo ou atividades diárias (chaves, documentos, celular, etc.)?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah7"},
	{ID: "tdah8", Number: 8, Label: "Distraí-se facilmente com estímulos externos ou pensamentos irrelevantes?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah8"},
	{ID: "tdah9", Number: 9, Label: "Esquece compromissos, datas ou tarefas importantes com frequência?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah9"},
	{ID: "tdah10", Number: 10, Label: "Sente-se inquieto, agitado ou incapaz de relaxar?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah10"},
	{ID: "tdah11", Number: 11, Label: "Tem dificuldade em permanecer sentado em situações em que se espera que fique quieto?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah11"},
	{ID: "tdah12", Number: 12, Label: "Fala excessivamente ou interrompe os outros com frequência?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah12"},
	{ID: "tdah13", Number: 13, Label: "Age impulsivamente, tomando decisões rápidas sem considerar consequências?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah13"},
	{ID: "tdah14", Number: 14, Label: "Tem dificuldade em esperar sua vez em filas, reuniões ou situações de grupo?", Kind: KindRadio, Options: FrequencyOptions, Key: "tdah14"},
}

var teaQuestions = []Question{
	{ID: "tea1", Number: 1, Label: "Tem dificuldade em iniciar ou manter conversas?", Kind: KindYesNo, Options: TeaOptions, Key: "tea1", SubSection: "A"},
	{ID: "tea2", Number: 2, Label: "Tem dificuldade em compreender ou usar gestos, expressões faciais ou tom de voz?", Kind: KindYesNo, Options: TeaOptions, Key: "tea2", SubSection: "A"},
	{ID: "tea3", Number: 3, Label: "Tem dificuldade em fazer amigos ou manter relações sociais significativas?", Kind: KindYesNo, Options: TeaOptions, Key: "tea3", SubSection: "A"},
	{ID: "tea4", Number: 4, Label: "Tem dificuldade em perceber sinais sociais sutis, como ironia, sarcasmo ou piadas?", Kind: KindYesNo, Options: TeaOptions, Key: "tea4", SubSection: "A"},
	{ID: "tea5", Number: 5, Label: "Dificuldade em compreender o ponto de vista ou sentimentos de outras pessoas?", Kind: KindYesNo, Options: TeaOptions, Key: "tea5", SubSection: "A"},
	{ID: "tea6", Number: 6, Label: "Realiza comportamentos repetitivos ou estereotipados (ex.: balançar, repetir palavras ou movimentos)?", Kind: KindYesNo, Options: TeaOptions, Key: "tea6", SubSection: "B"},
	{ID: "tea7", Number: 7, Label: "Possui interesses altamente focados ou intensos em temas específicos?", Kind: KindYesNo, Options: TeaOptions, Key: "tea7", SubSection: "B"},
	{ID: "tea8", Number: 8, Label: "Apresenta resistência a mudanças na rotina ou dificuldades em lidar com imprevistos?", Kind: KindYesNo, Options: TeaOptions, Key: "tea8", SubSection: "B"},
	{ID: "tea9", Number: 9, Label: "Tem sensibilidade sensorial (sons, texturas, luzes, cheiros) que interfere em atividades diárias?", Kind: KindYesNo, Options: TeaOptions, Key: "tea9", SubSection: "B"},
	{ID: "tea10", Number: 10, Label: "Dificuldade em alternar entre tarefas ou manter foco em atividades não relacionadas ao interesse principal?", Kind: KindYesNo, Options: TeaOptions, Key: "tea10", SubSection: "B"},
	{ID: "tea11", Number: 11, Label: "Observa diferenças significativas de comportamento ou habilidades em relação a outras pessoas da mesma idade?", Kind: KindYesNo, Options: TeaOptions, Key: "tea11", SubSection: "C"},
	{ID: "tea12", Number: 12, Label: "Demonstrou sinais de TEA na infância (mesmo que não diagnosticado)?", Kind: KindYesNo, Options: TeaOptions, Key: "tea12", SubSection: "C"},
}

// teaSubSectionLabels maps the TEA grouping key to its display label.
var teaSubSectionLabels = map[string]string{
	"A": "A. Déficits na comunicação social e interação",
	"B": "B. Comportamentos repetitivos e interesses restritos",
	"C": "C. Desenvolvimento e padrão de comportamento",
}

// =============================================================================
// Accessors
// =============================================================================

// Header returns the ordered header (patient data) questions.
func Header() []Question { return headerQuestions }

// Anamnese returns the ordered clinical anamnesis questions.
func Anamnese() []Question { return anamneseQuestions }

// Tdah returns the ordered TDAH screening questions.
func Tdah() []Question { return tdahQuestions }

// Tea returns the ordered TEA screening questions.
func Tea() []Question { return teaQuestions }

// TeaSubSectionLabel returns the display label for a TEA sub-section key,
// or the empty string for an unknown key.
func TeaSubSectionLabel(key string) string { return teaSubSectionLabels[key] }

// =============================================================================
// Verification
// =============================================================================

// Verify checks the catalog invariants over one sequence: keys are unique and
// every ConditionalOn parent resolves to an earlier question in the sequence.
//
// Outputs:
//
//	error - Non-nil naming the first offending question.
func Verify(questions []Question) error {
	seen := make(map[string]int, len(questions))
	for i, q := range questions {
		if q.Key == "" {
			return fmt.Errorf("question %s has no field key", q.ID)
		}
		if prev, dup := seen[q.Key]; dup {
			return fmt.Errorf("duplicate field key %q (questions %s and %s)",
				q.Key, questions[prev].ID, q.ID)
		}
		if q.ConditionalOn != nil {
			if _, ok := seen[q.ConditionalOn.Field]; !ok {
				return fmt.Errorf("question %s depends on %q which does not precede it",
					q.ID, q.ConditionalOn.Field)
			}
		}
		seen[q.Key] = i
	}
	return nil
}
