// Package ai is the generative-content adapter. Handlers call it directly
// with prompts assembled from the user's in-memory jobs and profile; its
// output is written back through the ordinary job/profile update paths.
// Failures are returned to the call site and surfaced inline, never retried.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"JobJumper-backend/internal/logger"
)

const (
	chatCompletionsURL = "https://api.openai.com/v1/chat/completions"
	imageEditsURL      = "https://api.openai.com/v1/images/edits"

	defaultModel      = "gpt-4o"
	defaultImageModel = "gpt-image-1"
)

// Client talks to the OpenAI API. Construct one at startup and share it.
type Client struct {
	apiKey     string
	model      string
	imageModel string
	httpClient *http.Client
	log        *logger.Logger
}

// NewFromEnv builds a Client from OPENAI_API_KEY, OPENAI_MODEL and
// OPENAI_IMAGE_MODEL.
func NewFromEnv(log *logger.Logger) (*Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not configured")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}
	imageModel := os.Getenv("OPENAI_IMAGE_MODEL")
	if imageModel == "" {
		imageModel = defaultImageModel
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		imageModel: imageModel,
		httpClient: &http.Client{},
		log:        log.With("service", "ai"),
	}, nil
}

// OpenAIRequest represents the request structure for the chat completions API.
type OpenAIRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIResponse represents the response from the chat completions API.
type OpenAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, messages []Message) (string, error) {
	requestBody := OpenAIRequest{
		Model:    c.model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", chatCompletionsURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call OpenAI API: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("failed to close response body", "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return openAIResp.Choices[0].Message.Content, nil
}

// completeText runs a system+user prompt and returns the raw text content.
func (c *Client) completeText(ctx context.Context, system, user string) (string, error) {
	return c.complete(ctx, []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
}

// completeJSON runs a system+user prompt and unmarshals the content into out.
// Models occasionally wrap JSON in markdown fences, so those are stripped
// before parsing.
func (c *Client) completeJSON(ctx context.Context, system, user string, out any) error {
	content, err := c.completeText(ctx, system+" You must respond only with valid JSON.", user)
	if err != nil {
		return err
	}
	content = stripJSONFences(content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}
	return nil
}

func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
