package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMessagesTextOnly(t *testing.T) {
	messages := chatMessages("Do you deliver on Sundays?", "")

	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "Do you deliver on Sundays?", messages[1].Content)
}

func TestChatMessagesCarryImage(t *testing.T) {
	messages := chatMessages("What cake is this?", "data:image/png;base64,abc123")

	require.Len(t, messages, 2)
	parts, ok := messages[1].Content.([]chatContentPart)
	require.True(t, ok)
	require.Len(t, parts, 2)
	assert.Equal(t, "text", parts[0].Type)
	assert.Equal(t, "What cake is this?", parts[0].Text)
	assert.Equal(t, "image_url", parts[1].Type)
	require.NotNil(t, parts[1].ImageURL)
	assert.Equal(t, "data:image/png;base64,abc123", parts[1].ImageURL.URL)
}

func TestChatMessagesImageWireFormat(t *testing.T) {
	payload := chatCompletionRequest{
		Model:    "llama-3.3-70b-versatile",
		Messages: chatMessages("What cake is this?", "https://example.com/cake.jpg"),
	}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var decoded struct {
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Messages, 2)

	var parts []map[string]any
	require.NoError(t, json.Unmarshal(decoded.Messages[1].Content, &parts))
	require.Len(t, parts, 2)
	assert.Equal(t, "image_url", parts[1]["type"])
	assert.NotContains(t, parts[0], "image_url")
}

func TestReplyWithoutAPIKeyFallsBack(t *testing.T) {
	chat := NewChatService("https://api.example.com", "", "llama-3.3-70b-versatile")

	reply, err := chat.Reply("hello", "")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}
