package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/memoflow/memoflow/internal/summarizer"
)

const prompt = "Summarize the following text concisely.\n"

// Config configures one Gemini-backed summarizer instance.
type Config struct {
	// APIKey is the credential used to authenticate requests.
	APIKey string
	// Model names the generation model, e.g. gemini-1.5-pro.
	Model string
}

// Summarizer generates memo summaries with the Gemini API.
type Summarizer struct {
	models modelsClient
	model  string
	log    zerolog.Logger
}

type modelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// New builds a Gemini summarizer.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Summarizer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("new gemini summarizer: missing api key")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("new gemini summarizer: missing model")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("new gemini client: %w", err)
	}
	return &Summarizer{models: client.Models, model: cfg.Model, log: log}, nil
}

// Summarize sends the text to Gemini and returns the summary text. Every
// failure collapses to the fixed placeholder; the error is only logged.
func (s *Summarizer) Summarize(ctx context.Context, text string) string {
	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(prompt+text), nil)
	if err != nil {
		s.log.Warn().Err(err).Str("model", s.model).Msg("summary generation failed")
		return summarizer.FailurePlaceholder
	}
	out := strings.TrimSpace(resp.Text())
	if out == "" {
		s.log.Warn().Str("model", s.model).Msg("summary response had no text")
		return summarizer.FailurePlaceholder
	}
	return out
}

var _ summarizer.Summarizer = (*Summarizer)(nil)
