// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package schema holds the form record types and their decode/validate logic.
//
// # Description
//
// A Record is the single root entity of the application: three sections
// (anamnese, tdah, tea) whose field keys mirror the question catalog. All
// fields are strings; "unset" is always the empty string and a field is
// never absent from a section. Decoding is lenient for scalar values (enum
// values outside their declared set coerce to "") and strict only about the
// presence of the three section keys.
//
// # Thread Safety
//
// Records are plain value types with no internal synchronization. The
// controller owns the one mutable instance; everything else works on copies
// or treats its reference as read-only.
package schema

// Section key names as they appear in exported JSON and error paths.
const (
	SectionAnamnese = "anamnese"
	SectionTdah     = "tdah"
	SectionTea      = "tea"
)

// =============================================================================
// Section Types
// =============================================================================

// Anamnese holds the header (patient data) fields and the clinical history
// answers. The five required fields carry validator tags; everything else
// defaults to "".
type Anamnese struct {
	PatientName          string `json:"patientName" validate:"required"`
	BirthDate            string `json:"birthDate" validate:"required"`
	AgeYearsMonths       string `json:"ageYearsMonths" validate:"required"`
	Education            string `json:"education" validate:"required"`
	ReferralProfessional string `json:"referralProfessional"`
	Gender               string `json:"gender" validate:"required"`

	PlannedPregnancy         string `json:"plannedPregnancy"`
	MotherAgeAtPregnancy     string `json:"motherAgeAtPregnancy"`
	FatherAgeAtPregnancy     string `json:"fatherAgeAtPregnancy"`
	CalmPregnancy            string `json:"calmPregnancy"`
	FamilyAccepted           string `json:"familyAccepted"`
	PrenatalCare             string `json:"prenatalCare"`
	DeliveryType             string `json:"deliveryType"`
	DeliveryComplications    string `json:"deliveryComplications"`
	PrematureOrFullTerm      string `json:"prematureOrFullTerm"`
	CryingBaby               string `json:"cryingBaby"`
	HasSiblings              string `json:"hasSiblings"`
	SiblingsCount            string `json:"siblingsCount"`
	ParentsDrugUse           string `json:"parentsDrugUse"`
	BreastfeedingDuration    string `json:"breastfeedingDuration"`
	Crawled                  string `json:"crawled"`
	UsedWalker               string `json:"usedWalker"`
	AgeStartedWalking        string `json:"ageStartedWalking"`
	SpeechDelay              string `json:"speechDelay"`
	DictionProblems          string `json:"dictionProblems"`
	DictionNotes             string `json:"dictionNotes"`
	AgeStartedSchool         string `json:"ageStartedSchool"`
	SmoothSchoolAdaptation   string `json:"smoothSchoolAdaptation"`
	FavoriteChildhoodGames   string `json:"favoriteChildhoodGames"`
	NeonatalJaundice         string `json:"neonatalJaundice"`
	HadCovid                 string `json:"hadCovid"`
	MotherCandidiasis        string `json:"motherCandidiasis"`
	UsedPacifier             string `json:"usedPacifier"`
	PacifierUntilAge         string `json:"pacifierUntilAge"`
	TransitionalObject       string `json:"transitionalObject"`
	PhoneCallDifficulty      string `json:"phoneCallDifficulty"`
	GastrointestinalProblems string `json:"gastrointestinalProblems"`
	Diabetes                 string `json:"diabetes"`
	SleepProblems            string `json:"sleepProblems"`
	BodyPain                 string `json:"bodyPain"`
	FamilyAutism             string `json:"familyAutism"`
	Dizziness                string `json:"dizziness"`
	FearfulChild             string `json:"fearfulChild"`
	NoDangerAwareness        string `json:"noDangerAwareness"`
	InterestInOthers         string `json:"interestInOthers"`
	OtherDiagnoses           string `json:"otherDiagnoses"`
	WhichDiagnoses           string `json:"whichDiagnoses"`
	TakesMedication          string `json:"takesMedication"`
	WhichMedication          string `json:"whichMedication"`
	AlwaysTired              string `json:"alwaysTired"`
}

// Tdah holds the 14 frequency answers of the TDAH screening.
type Tdah struct {
	Tdah1  string `json:"tdah1"`
	Tdah2  string `json:"tdah2"`
	Tdah3  string `json:"tdah3"`
	Tdah4  string `json:"tdah4"`
	Tdah5  string `json:"tdah5"`
	Tdah6  string `json:"tdah6"`
	Tdah7  string `json:"tdah7"`
	Tdah8  string `json:"tdah8"`
	Tdah9  string `json:"tdah9"`
	Tdah10 string `json:"tdah10"`
	Tdah11 string `json:"tdah11"`
	Tdah12 string `json:"tdah12"`
	Tdah13 string `json:"tdah13"`
	Tdah14 string `json:"tdah14"`
}

// Tea holds the 12 Sim/Não answers of the TEA screening.
type Tea struct {
	Tea1  string `json:"tea1"`
	Tea2  string `json:"tea2"`
	Tea3  string `json:"tea3"`
	Tea4  string `json:"tea4"`
	Tea5  string `json:"tea5"`
	Tea6  string `json:"tea6"`
	Tea7  string `json:"tea7"`
	Tea8  string `json:"tea8"`
	Tea9  string `json:"tea9"`
	Tea10 string `json:"tea10"`
	Tea11 string `json:"tea11"`
	Tea12 string `json:"tea12"`
}

// Record is the full form document: exactly the three sections, keyed as in
// the import/export JSON format.
type Record struct {
	Anamnese Anamnese `json:"anamnese"`
	Tdah     Tdah     `json:"tdah"`
	Tea      Tea      `json:"tea"`
}

// =============================================================================
// Field Access
// =============================================================================

// fields maps every catalog field key to its struct field. The same map
// backs decoding, generic get/set and enum coercion, so the key set here is
// the single point that must stay in sync with the catalog (the schema tests
// diff the two).
func (a *Anamnese) fields() map[string]*string {
	return map[string]*string{
		"patientName":              &a.PatientName,
		"birthDate":                &a.BirthDate,
		"ageYearsMonths":           &a.AgeYearsMonths,
		"education":                &a.Education,
		"referralProfessional":     &a.ReferralProfessional,
		"gender":                   &a.Gender,
		"plannedPregnancy":         &a.PlannedPregnancy,
		"motherAgeAtPregnancy":     &a.MotherAgeAtPregnancy,
		"fatherAgeAtPregnancy":     &a.FatherAgeAtPregnancy,
		"calmPregnancy":            &a.CalmPregnancy,
		"familyAccepted":           &a.FamilyAccepted,
		"prenatalCare":             &a.PrenatalCare,
		"deliveryType":             &a.DeliveryType,
		"deliveryComplications":    &a.DeliveryComplications,
		"prematureOrFullTerm":      &a.PrematureOrFullTerm,
		"cryingBaby":               &a.CryingBaby,
		"hasSiblings":              &a.HasSiblings,
		"siblingsCount":            &a.SiblingsCount,
		"parentsDrugUse":           &a.ParentsDrugUse,
		"breastfeedingDuration":    &a.BreastfeedingDuration,
		"crawled":                  &a.Crawled,
		"usedWalker":               &a.UsedWalker,
		"ageStartedWalking":        &a.AgeStartedWalking,
		"speechDelay":              &a.SpeechDelay,
		"dictionProblems":          &a.DictionProblems,
		"dictionNotes":             &a.DictionNotes,
		"ageStartedSchool":         &a.AgeStartedSchool,
		"smoothSchoolAdaptation":   &a.SmoothSchoolAdaptation,
		"favoriteChildhoodGames":   &a.FavoriteChildhoodGames,
		"neonatalJaundice":         &a.NeonatalJaundice,
		"hadCovid":                 &a.HadCovid,
		"motherCandidiasis":        &a.MotherCandidiasis,
		"usedPacifier":             &a.UsedPacifier,
		"pacifierUntilAge":         &a.PacifierUntilAge,
		"transitionalObject":       &a.TransitionalObject,
		"phoneCallDifficulty":      &a.PhoneCallDifficulty,
		"gastrointestinalProblems": &a.GastrointestinalProblems,
		"diabetes":                 &a.Diabetes,
		"sleepProblems":            &a.SleepProblems,
		"bodyPain":                 &a.BodyPain,
		"familyAutism":             &a.FamilyAutism,
		"dizziness":                &a.Dizziness,
		"fearfulChild":             &a.FearfulChild,
		"noDangerAwareness":        &a.NoDangerAwareness,
		"interestInOthers":         &a.InterestInOthers,
		"otherDiagnoses":           &a.OtherDiagnoses,
		"whichDiagnoses":           &a.WhichDiagnoses,
		"takesMedication":          &a.TakesMedication,
		"whichMedication":          &a.WhichMedication,
		"alwaysTired":              &a.AlwaysTired,
	}
}

func (d *Tdah) fields() map[string]*string {
	return map[string]*string{
		"tdah1":  &d.Tdah1,
		"tdah2":  &d.Tdah2,
		"tdah3":  &d.Tdah3,
		"tdah4":  &d.Tdah4,
		"tdah5":  &d.Tdah5,
		"tdah6":  &d.Tdah6,
		"tdah7":  &d.Tdah7,
		"tdah8":  &d.Tdah8,
		"tdah9":  &d.Tdah9,
		"tdah10": &d.Tdah10,
		"tdah11": &d.Tdah11,
		"tdah12": &d.Tdah12,
		"tdah13": &d.Tdah13,
		"tdah14": &d.Tdah14,
	}
}

func (e *Tea) fields() map[string]*string {
	return map[string]*string{
		"tea1":  &e.Tea1,
		"tea2":  &e.Tea2,
		"tea3":  &e.Tea3,
		"tea4":  &e.Tea4,
		"tea5":  &e.Tea5,
		"tea6":  &e.Tea6,
		"tea7":  &e.Tea7,
		"tea8":  &e.Tea8,
		"tea9":  &e.Tea9,
		"tea10": &e.Tea10,
		"tea11": &e.Tea11,
		"tea12": &e.Tea12,
	}
}

// sectionFields resolves a section name to that section's field map.
func (r *Record) sectionFields(section string) (map[string]*string, bool) {
	switch section {
	case SectionAnamnese:
		return r.Anamnese.fields(), true
	case SectionTdah:
		return r.Tdah.fields(), true
	case SectionTea:
		return r.Tea.fields(), true
	default:
		return nil, false
	}
}

// Value returns the current value of a field, addressed by section name and
// field key. Unknown addresses return ("", false).
func (r *Record) Value(section, key string) (string, bool) {
	fields, ok := r.sectionFields(section)
	if !ok {
		return "", false
	}
	ptr, ok := fields[key]
	if !ok {
		return "", false
	}
	return *ptr, true
}

// SetValue replaces one field's value, addressed by section name and field
// key. Returns false for an unknown address; the record is then unchanged.
func (r *Record) SetValue(section, key, value string) bool {
	fields, ok := r.sectionFields(section)
	if !ok {
		return false
	}
	ptr, ok := fields[key]
	if !ok {
		return false
	}
	*ptr = value
	return true
}

// =============================================================================
// Construction
// =============================================================================

// Default returns a fresh record with every field at its empty value. Every
// catalog field is present; none is ever absent from a section.
func Default() *Record {
	return &Record{}
}

// Clone returns an independent deep copy. Sections contain only string
// fields, so a value copy is a deep copy; mutating the clone never affects
// the receiver.
func (r *Record) Clone() *Record {
	clone := *r
	return &clone
}
