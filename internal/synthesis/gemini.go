package synthesis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Client wraps the Gemini API behind the one operation the store needs.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient dials the Gemini API with an explicit key and model name.
func NewClient(ctx context.Context, apiKey string, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("synthesis API key is empty; set synthesis.api_key or GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Generate sends one prompt and returns the generated text. No streaming;
// the synthesis workflow is a single request/response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("generative service returned no text")
	}
	return text, nil
}
