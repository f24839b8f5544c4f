package translator

import (
	"strings"

	"github.com/lmbridge/lm-proxy/internal/models"
)

// Default sampling parameters applied when the caller omits them.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 512
)

// CompilePrompt flattens an ordered list of chat messages into the single
// prompt string the upstream completion backend expects. Each message
// becomes a "<ROLE>: <content>" line; the role defaults to "user" when
// absent. Malformed fragments are skipped, never rejected.
func CompilePrompt(messages []models.ChatMessage) string {
	var b strings.Builder
	for _, msg := range messages {
		role := msg.Role
		if role == "" {
			role = "user"
		}
		b.WriteString(strings.ToUpper(role))
		b.WriteString(": ")
		b.WriteString(messageText(msg.Content))
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// messageText resolves a message content value: plain strings are used
// verbatim, fragment lists contribute the text of every fragment that
// carries a string "text" field, joined by newlines.
func messageText(content any) string {
	switch v := content.(type) {
	case string:
		return v
	case []any:
		var parts []string
		for _, item := range v {
			fragment, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if text, ok := fragment["text"].(string); ok {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

func temperatureOrDefault(t *float64) float64 {
	if t == nil {
		return DefaultTemperature
	}
	return *t
}

func maxTokensOrDefault(n *int) int {
	if n == nil {
		return DefaultMaxTokens
	}
	return *n
}
