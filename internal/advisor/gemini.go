package advisor

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"upilens/internal/core"
)

// Gemini asks a Gemini model for advice over the rendered prompt.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini dials the Gemini API. The key is required; the model name is the
// caller's choice (for example gemini-2.5-flash).
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if model == "" {
		return nil, errors.New("gemini: model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			APIVersion: "v1",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Advise(ctx context.Context, sum core.Summary) (string, error) {
	prompt := BuildPrompt(sum)

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
