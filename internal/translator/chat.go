package translator

import (
	"github.com/lmbridge/lm-proxy/internal/models"
)

// BuildChatPayload translates an OpenAI-style chat request into the
// upstream completion payload. The public model name is resolved through
// the alias table when mapped and passed through unchanged otherwise;
// the resolved name is available as the payload's Model field.
func BuildChatPayload(aliases map[string]string, req *models.ChatCompletionRequest) *models.CompletionPayload {
	model := req.Model
	if mapped, ok := aliases[model]; ok {
		model = mapped
	}

	return &models.CompletionPayload{
		Model:       model,
		Prompt:      CompilePrompt(req.Messages),
		Temperature: temperatureOrDefault(req.Temperature),
		MaxTokens:   maxTokensOrDefault(req.MaxTokens),
		Stream:      req.Stream,
	}
}

// TranslateChatResponse rebuilds a non-streaming upstream reply as an
// OpenAI chat completion object. This leg has no defaults: a reply
// missing any required field fails with MalformedReplyError.
func TranslateChatResponse(model string, reply *models.CompletionResponse) (*models.ChatCompletionResponse, error) {
	switch {
	case reply.ID == nil:
		return nil, &MalformedReplyError{Field: "id"}
	case reply.Created == nil:
		return nil, &MalformedReplyError{Field: "created"}
	case reply.Choices == nil:
		return nil, &MalformedReplyError{Field: "choices"}
	case reply.Usage == nil:
		return nil, &MalformedReplyError{Field: "usage"}
	}

	choices := make([]models.ChatCompletionChoice, 0, len(*reply.Choices))
	for _, choice := range *reply.Choices {
		switch {
		case choice.Index == nil:
			return nil, &MalformedReplyError{Field: "choices.index"}
		case choice.Text == nil:
			return nil, &MalformedReplyError{Field: "choices.text"}
		case choice.FinishReason == nil:
			return nil, &MalformedReplyError{Field: "choices.finish_reason"}
		}

		choices = append(choices, models.ChatCompletionChoice{
			Index: *choice.Index,
			Message: models.ChatCompletionMessage{
				Role:    "assistant",
				Content: CleanResponse(*choice.Text),
			},
			FinishReason: *choice.FinishReason,
		})
	}

	return &models.ChatCompletionResponse{
		ID:      *reply.ID,
		Object:  "chat.completion",
		Created: *reply.Created,
		Model:   model,
		Choices: choices,
		Usage:   reply.Usage,
	}, nil
}
