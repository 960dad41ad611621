// Copyright (C) 2025 FormNeuro (dev@formneuro.app)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package export

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/formneuro/formneuro/services/form/schema"
)

// ErrClipboardUnavailable reports a platform without a usable clipboard
// (typically a headless Linux box with no X11/Wayland utilities).
var ErrClipboardUnavailable = errors.New("área de transferência indisponível")

// CopyText places the plain-text rendering of the record on the system
// clipboard.
func CopyText(r *schema.Record) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(Text(r)); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	return nil
}
