// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"

	apperrors "chatty/cli/internal/errors"
)

// PresentError formats an error for user display with masking.
// Typed errors show their human-friendly message only.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	msg := Mask(apperrors.Reason(err))
	if context == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", context, msg)
}
