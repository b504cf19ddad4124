// Package vision submits image payloads to a vision-capable Gemini model with
// a fixed critique prompt and normalizes whatever text comes back.
package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Options controls how the vision client is configured.
type Options struct {
	APIKey string
	Model  string
	Logger zerolog.Logger
}

// Client is a thin facade over the Gemini API: one image plus one instruction
// in, raw response text out. Single attempt, no retries, no streaming.
type Client struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// NewClient constructs a vision client. The API key is required; the model
// defaults to a vision-capable flash model.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: opts.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: client, model: model, logger: opts.Logger}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Analyze submits the optimized JPEG bytes with the critique prompt and
// returns the model's raw text. Callers run Coerce on the result.
func (c *Client) Analyze(ctx context.Context, imageData []byte, productContext string) (string, error) {
	if len(imageData) == 0 {
		return "", errors.New("dados da imagem inválidos ou vazios")
	}

	parts := []*genai.Part{
		genai.NewPartFromText(BuildPrompt(productContext)),
		{InlineData: &genai.Blob{Data: imageData, MIMEType: "image/jpeg"}},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("falha na análise com o modelo: %w", err)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("resposta vazia do modelo")
	}

	event := c.logger.Info().
		Str("model", c.model).
		Int("image_bytes", len(imageData))
	if result.UsageMetadata != nil {
		event = event.
			Int32("input_tokens", result.UsageMetadata.PromptTokenCount).
			Int32("output_tokens", result.UsageMetadata.CandidatesTokenCount).
			Int32("total_tokens", result.UsageMetadata.TotalTokenCount)
	}
	event.Msg("vision: analysis call complete")

	return result.Text(), nil
}
