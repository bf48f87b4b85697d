package jobsift

import "context"

// CompleteOptions configures a single completion call.
type CompleteOptions struct {
	// Temperature for sampling; extraction uses 0 for determinism.
	Temperature float32

	// JSONResponse asks the model to emit a JSON document.
	JSONResponse bool
}

// Completer produces a text completion for a prompt. Implementations may
// fail transiently (rate limits, timeouts); callers apply backoff retries.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)
}

// Converter converts HTML to Markdown. Used to shrink LLM input when a
// page's reduced HTML is still large.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
