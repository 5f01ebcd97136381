package fileutils

import "strings"

// StripCodeFences removes a wrapping ``` fence (with optional language tag)
// from model output. Unfenced text is returned trimmed. Stripping is the
// only tolerance applied to model responses; anything that still fails to
// parse afterwards is surfaced to the caller with the raw text.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
