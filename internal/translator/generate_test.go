package translator

import (
	"testing"

	"github.com/lmbridge/lm-proxy/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildGeneratePayload_ModelNeverAliased(t *testing.T) {
	// "qwen2.5" is in the alias table, but this route must forward it
	// exactly as received.
	req := &models.GenerateRequest{
		Model:  "qwen2.5",
		Prompt: "Say hi",
	}

	payload := BuildGeneratePayload(req)

	assert.Equal(t, "qwen2.5", payload.Model)
	assert.Equal(t, "Say hi", payload.Prompt)
	assert.Equal(t, 0.7, payload.Temperature)
	assert.Equal(t, 512, payload.MaxTokens)
}

func TestTranslateGenerateResponse_Full(t *testing.T) {
	resp := TranslateGenerateResponse("qwen2.5", validReply())

	assert.Equal(t, "qwen2.5", resp.Model)
	assert.Equal(t, int64(1700000000), resp.CreatedAt)
	assert.Equal(t, "<|im_start|>Assistant### Hello", resp.Response) // no cleaning on this route
	assert.True(t, resp.Done)
}

func TestTranslateGenerateResponse_Lenient(t *testing.T) {
	resp := TranslateGenerateResponse("qwen2.5", &models.CompletionResponse{})

	assert.Equal(t, "qwen2.5", resp.Model)
	assert.Equal(t, "", resp.CreatedAt)
	assert.Equal(t, "", resp.Response)
	assert.True(t, resp.Done)
}

func TestTranslateGenerateResponse_EmptyChoices(t *testing.T) {
	reply := validReply()
	reply.Choices = &[]models.CompletionChoice{}

	resp := TranslateGenerateResponse("qwen2.5", reply)

	assert.Equal(t, "", resp.Response)
	assert.True(t, resp.Done)
}
