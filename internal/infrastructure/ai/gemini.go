package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medical-imaging-backend/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrEmptyResponse is returned when the model call succeeds but yields
// no usable text.
var ErrEmptyResponse = errors.New("empty response from model")

// Drafter produces report text from a prompt and inline image bytes.
// The drafting use case depends on this interface so the upstream model
// can be swapped or mocked.
type Drafter interface {
	Draft(ctx context.Context, prompt string, imageData []byte, format string) (string, error)
}

// GeminiDrafter calls the Gemini API synchronously. Single attempt, no
// retry; timeouts are whatever the underlying client defaults to.
type GeminiDrafter struct {
	client *genai.Client
	model  string
}

func NewGeminiDrafter(ctx context.Context, cfg config.AIConfig) (*GeminiDrafter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiDrafter{client: client, model: cfg.Model}, nil
}

func (d *GeminiDrafter) Draft(ctx context.Context, prompt string, imageData []byte, format string) (string, error) {
	model := d.client.GenerativeModel(d.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt), genai.ImageData(format, imageData))
	if err != nil {
		return "", err
	}

	text := collectText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (d *GeminiDrafter) Close() error {
	return d.client.Close()
}

func collectText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
