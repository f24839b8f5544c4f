package models

// Ollama-style generate request. The model name is forwarded to the
// upstream backend exactly as received; no alias lookup happens on
// this route.
type GenerateRequest struct {
	Model       string   `json:"model" binding:"required"`
	Prompt      string   `json:"prompt" binding:"required"`
	Stream      bool     `json:"stream,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
}

// Ollama-style generate response. CreatedAt carries the upstream
// "created" timestamp when present, or an empty string when absent.
type GenerateResponse struct {
	Model     string `json:"model"`
	CreatedAt any    `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}
