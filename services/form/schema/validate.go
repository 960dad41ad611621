// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package schema

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

// formValidate is the validator instance for form records. Initialized in
// init() to report field names by their json tag, so error paths match the
// exported document keys.
var formValidate *validator.Validate

func init() {
	formValidate = validator.New()
	formValidate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// requiredMessages maps the dotted path of each required field to the
// message shown next to it. These strings are part of the product surface;
// do not rephrase them.
var requiredMessages = map[string]string{
	"anamnese.patientName":    "Nome do avaliado é obrigatório",
	"anamnese.birthDate":      "Data de nascimento é obrigatória",
	"anamnese.ageYearsMonths": "Idade é obrigatória",
	"anamnese.education":      "Escolaridade é obrigatória",
	"anamnese.gender":         "Gênero é obrigatório",
}

// Validate runs the full-form validation gate.
//
// # Description
//
// Checks the five required header fields. Enum domains are not re-checked
// here: Decode and the controller only ever store declared options or "",
// and an unset screening answer is valid (those sections have no required
// fields).
//
// Outputs:
//
//	map[string]string - Dotted field path → human-readable message.
//	                    Nil when the record is valid.
func Validate(r *Record) map[string]string {
	err := formValidate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError only happens for non-struct input.
		return map[string]string{"record": err.Error()}
	}

	problems := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// Namespace is "Record.anamnese.patientName"; drop the root.
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		msg, ok := requiredMessages[path]
		if !ok {
			msg = "Campo obrigatório"
		}
		problems[path] = msg
	}
	return problems
}
