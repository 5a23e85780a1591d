package summarizer

import "context"

// FailurePlaceholder is what a summarizer yields when generation fails for
// any reason. It is data, not an error: callers display it as the summary.
const FailurePlaceholder = "summary could not be generated"

// Summarizer turns raw memo text into a short summary. Implementations
// never fail; on any error they return FailurePlaceholder.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}
