// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command formneuro runs the neuropsychological anamnesis form.
//
// Without arguments it starts the interactive terminal form (requires a
// TTY). Subcommands work on exported JSON documents:
//
//	formneuro                           # interactive form
//	formneuro validate anamnese_x.json  # check a document
//	formneuro export anamnese_x.json --format pdf
//	formneuro version
//
// Configuration is read from ~/.formneuro/config.yaml when present.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/formneuro/formneuro/services/form/config"
)

// appConfig is loaded once before any command runs.
var appConfig = config.Default()

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(config.DefaultPath)
		if err != nil {
			// A broken config file should not lock the user out of the
			// form; fall back to defaults and say so.
			fmt.Fprintf(os.Stderr, "aviso: %v (usando configuração padrão)\n", err)
		}
		appConfig = cfg
	}
}
