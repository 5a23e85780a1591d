package factory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/memoflow/memoflow/internal/config"
	summ "github.com/memoflow/memoflow/internal/summarizer"
	"github.com/memoflow/memoflow/internal/summarizer/gemini"
)

// NewSummarizer creates the Gemini summarizer when a credential is
// configured. The credential is read once here; a nil return disables
// summarization for the whole session.
func NewSummarizer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (summ.Summarizer, error) {
	if !cfg.SummarizerEnabled() {
		log.Warn().Msg("no summarizer credential configured; summarization disabled")
		return nil, nil
	}
	s, err := gemini.New(ctx, gemini.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.SummarizerModel}, log)
	if err != nil {
		return nil, err
	}
	return s, nil
}
