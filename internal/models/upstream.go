package models

import "encoding/json"

// CompletionPayload is the single request shape the upstream completion
// backend accepts. Both downstream routes are translated into it.
type CompletionPayload struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Stream      bool    `json:"stream"`
}

// CompletionResponse is the upstream reply to a non-streaming call.
// Fields are pointers so that translation can tell an absent field
// from a zero value.
type CompletionResponse struct {
	ID      *string             `json:"id"`
	Created *int64              `json:"created"`
	Choices *[]CompletionChoice `json:"choices"`
	Usage   json.RawMessage     `json:"usage"`
}

type CompletionChoice struct {
	Index        *int    `json:"index"`
	Text         *string `json:"text"`
	FinishReason *string `json:"finish_reason"`
}
