package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanResponse_StartOfTurnMarker(t *testing.T) {
	assert.Equal(t, "Hello", CleanResponse("<|im_start|>Assistant### Hello"))
}

func TestCleanResponse_AssistantLabels(t *testing.T) {
	assert.Equal(t, "Hello", CleanResponse("ASSISTANT: Hello"))
	assert.Equal(t, "Hello", CleanResponse("assistant### Hello"))
	assert.Equal(t, "Hello", CleanResponse("  ASSISTANT:   Hello"))
}

func TestCleanResponse_StackedMarkers(t *testing.T) {
	assert.Equal(t, "hi", CleanResponse("ASSISTANT: <|im_start|>Assistant### ASSISTANT: hi"))
}

func TestCleanResponse_Idempotent(t *testing.T) {
	samples := []string{
		"<|im_start|>Assistant### Hello",
		"ASSISTANT: ASSISTANT: hi",
		"ASSISTANT: <|im_start|>Assistant### hi",
		"plain text",
		"  padded  ",
		"",
	}

	for _, sample := range samples {
		once := CleanResponse(sample)
		assert.Equal(t, once, CleanResponse(once), "not idempotent for %q", sample)
	}
}

func TestCleanResponse_NonMatchingUntouched(t *testing.T) {
	assert.Equal(t, "Hello world", CleanResponse("Hello world"))

	// Markers past the start of the text are part of the content.
	assert.Equal(t, "Hello <|im_start|>Assistant### world",
		CleanResponse("Hello <|im_start|>Assistant### world"))
}
