package translator

import (
	"github.com/lmbridge/lm-proxy/internal/models"
)

// BuildGeneratePayload translates an Ollama-style generate request into
// the upstream completion payload. The caller's model name and prompt
// are forwarded unmodified; the alias table is never consulted here.
func BuildGeneratePayload(req *models.GenerateRequest) *models.CompletionPayload {
	return &models.CompletionPayload{
		Model:       req.Model,
		Prompt:      req.Prompt,
		Temperature: temperatureOrDefault(req.Temperature),
		MaxTokens:   maxTokensOrDefault(req.MaxTokens),
		Stream:      req.Stream,
	}
}

// TranslateGenerateResponse rebuilds an upstream reply as an Ollama-style
// generate response. This leg is lenient: missing fields degrade to empty
// values instead of failing.
func TranslateGenerateResponse(model string, reply *models.CompletionResponse) *models.GenerateResponse {
	var createdAt any = ""
	if reply.Created != nil {
		createdAt = *reply.Created
	}

	response := ""
	if reply.Choices != nil && len(*reply.Choices) > 0 {
		if text := (*reply.Choices)[0].Text; text != nil {
			response = *text
		}
	}

	return &models.GenerateResponse{
		Model:     model,
		CreatedAt: createdAt,
		Response:  response,
		Done:      true,
	}
}
