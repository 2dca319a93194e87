// Package recovery turns raw, frequently malformed model output into a
// structured document, regenerating with corrective prompts when needed.
package recovery

import "strings"

// Normalize trims raw generator output. ok is false when nothing usable
// remains, which callers treat as an empty generation.
func Normalize(raw string) (text string, ok bool) {
	text = strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
	return text, text != ""
}
