package translator

import (
	"regexp"
	"strings"
)

// Conversational framing the backend sometimes leaks at the start of
// generated text: a start-of-turn marker and a bare assistant label.
var leadingMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^<\|im_start\|>assistant###\s*`),
	regexp.MustCompile(`(?i)^(assistant###|assistant:)\s*`),
}

// CleanResponse strips leading assistant framing from generated text.
// Markers are removed repeatedly until none match, so the function is
// idempotent; text without framing passes through untouched.
func CleanResponse(text string) string {
	text = strings.TrimSpace(text)
	for {
		stripped := text
		for _, re := range leadingMarkers {
			stripped = re.ReplaceAllString(stripped, "")
		}
		if stripped == text {
			return text
		}
		text = stripped
	}
}
