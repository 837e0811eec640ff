package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Client wraps the Google GenAI client for simple prompt-in, text-out calls.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates a Client configured for the Gemini API backend.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Client{client: client, modelName: model}, nil
}

// GenerateContent sends the prompt to Gemini and returns the concatenated
// textual response.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}
