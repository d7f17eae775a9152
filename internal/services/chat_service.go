package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ChatService relays storefront chat messages to the configured
// completion API.
type ChatService struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

// NewChatService creates a new ChatService.
func NewChatService(apiURL, apiKey, model string) *ChatService {
	return &ChatService{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatCompletionRequest struct {
	Model    string                  `json:"model"`
	Messages []chatCompletionMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const chatSystemPrompt = "You are the Matie Cake bakery assistant. Answer questions about products, orders and delivery briefly and politely."

// chatMessages builds the upstream message list. A non-empty image (URL
// or data URL) rides along as an image content part on the user turn.
func chatMessages(message, image string) []chatCompletionMessage {
	userContent := any(message)
	if image != "" {
		userContent = []chatContentPart{
			{Type: "text", Text: message},
			{Type: "image_url", ImageURL: &chatImageURL{URL: image}},
		}
	}
	return []chatCompletionMessage{
		{Role: "system", Content: chatSystemPrompt},
		{Role: "user", Content: userContent},
	}
}

// Reply sends one user message (with an optional attached image)
// upstream and returns the assistant reply.
func (s *ChatService) Reply(message, image string) (string, error) {
	if s.apiKey == "" {
		log.Println("[Chat] API key not configured")
		return "Chat is not available right now. Please try again later.", nil
	}

	payload := chatCompletionRequest{
		Model:    s.model,
		Messages: chatMessages(message, image),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Chat] upstream request failed: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[Chat] unexpected status %d: %s", resp.StatusCode, detail)
		return "", fmt.Errorf("chat upstream returned status %d", resp.StatusCode)
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat upstream returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
