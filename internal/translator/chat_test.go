package translator

import (
	"encoding/json"
	"testing"

	"github.com/lmbridge/lm-proxy/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAliases = map[string]string{
	"qwen2.5": "qwen2.5-coder-32b-instruct-mlx",
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func validReply() *models.CompletionResponse {
	return &models.CompletionResponse{
		ID:      strPtr("cmpl-1"),
		Created: int64Ptr(1700000000),
		Choices: &[]models.CompletionChoice{
			{
				Index:        intPtr(0),
				Text:         strPtr("<|im_start|>Assistant### Hello"),
				FinishReason: strPtr("stop"),
			},
		},
		Usage: json.RawMessage(`{"prompt_tokens":1,"completion_tokens":2,"total_tokens":3}`),
	}
}

func TestBuildChatPayload_AliasApplied(t *testing.T) {
	req := &models.ChatCompletionRequest{
		Model:    "qwen2.5",
		Messages: []models.ChatMessage{{Role: "user", Content: "hi"}},
	}

	payload := BuildChatPayload(testAliases, req)

	assert.Equal(t, "qwen2.5-coder-32b-instruct-mlx", payload.Model)
	assert.Equal(t, "USER: hi", payload.Prompt)
}

func TestBuildChatPayload_UnmappedModelPassesThrough(t *testing.T) {
	req := &models.ChatCompletionRequest{
		Model:    "llama3",
		Messages: []models.ChatMessage{{Role: "user", Content: "hi"}},
	}

	payload := BuildChatPayload(testAliases, req)

	assert.Equal(t, "llama3", payload.Model)
}

func TestBuildChatPayload_Defaults(t *testing.T) {
	req := &models.ChatCompletionRequest{
		Model:    "llama3",
		Messages: []models.ChatMessage{{Role: "user", Content: "hi"}},
	}

	payload := BuildChatPayload(testAliases, req)

	assert.Equal(t, 0.7, payload.Temperature)
	assert.Equal(t, 512, payload.MaxTokens)
	assert.False(t, payload.Stream)
}

func TestBuildChatPayload_ExplicitParameters(t *testing.T) {
	temperature := 0.2
	maxTokens := 64
	req := &models.ChatCompletionRequest{
		Model:       "llama3",
		Messages:    []models.ChatMessage{{Role: "user", Content: "hi"}},
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		Stream:      true,
	}

	payload := BuildChatPayload(testAliases, req)

	assert.Equal(t, 0.2, payload.Temperature)
	assert.Equal(t, 64, payload.MaxTokens)
	assert.True(t, payload.Stream)
}

func TestTranslateChatResponse_Success(t *testing.T) {
	resp, err := TranslateChatResponse("qwen2.5-coder-32b-instruct-mlx", validReply())
	require.NoError(t, err)

	assert.Equal(t, "cmpl-1", resp.ID)
	assert.Equal(t, "chat.completion", resp.Object)
	assert.Equal(t, int64(1700000000), resp.Created)
	assert.Equal(t, "qwen2.5-coder-32b-instruct-mlx", resp.Model)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, 0, resp.Choices[0].Index)
	assert.Equal(t, "assistant", resp.Choices[0].Message.Role)
	assert.Equal(t, "Hello", resp.Choices[0].Message.Content)
	assert.Equal(t, "stop", resp.Choices[0].FinishReason)
	assert.JSONEq(t, `{"prompt_tokens":1,"completion_tokens":2,"total_tokens":3}`, string(resp.Usage))
}

func TestTranslateChatResponse_MissingUsage(t *testing.T) {
	reply := validReply()
	reply.Usage = nil

	resp, err := TranslateChatResponse("m", reply)
	assert.Nil(t, resp)

	var malformed *MalformedReplyError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "usage", malformed.Field)
}

func TestTranslateChatResponse_MissingTopLevelFields(t *testing.T) {
	for _, field := range []string{"id", "created", "choices"} {
		reply := validReply()
		switch field {
		case "id":
			reply.ID = nil
		case "created":
			reply.Created = nil
		case "choices":
			reply.Choices = nil
		}

		_, err := TranslateChatResponse("m", reply)

		var malformed *MalformedReplyError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, field, malformed.Field)
	}
}

func TestTranslateChatResponse_MissingChoiceField(t *testing.T) {
	reply := validReply()
	(*reply.Choices)[0].FinishReason = nil

	_, err := TranslateChatResponse("m", reply)

	var malformed *MalformedReplyError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "choices.finish_reason", malformed.Field)
}
