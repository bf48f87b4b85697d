// Package gemini implements LLM completion using Google Gemini.
package gemini

import (
	"context"

	"github.com/jobsift/jobsift"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Completer implements jobsift.Completer at compile time.
var _ jobsift.Completer = (*Completer)(nil)

// Completer implements jobsift.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
}

// NewCompleter creates a new Completer.
func NewCompleter(client *genai.Client) *Completer {
	return &Completer{client: client}
}

// Complete sends the prompt to Gemini and returns the response text.
func (c *Completer) Complete(ctx context.Context, prompt string, opts jobsift.CompleteOptions) (string, error) {
	if prompt == "" {
		return "", jobsift.Errorf(jobsift.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(opts),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", jobsift.Errorf(jobsift.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(opts jobsift.CompleteOptions) *genai.GenerateContentConfig {
	temp := opts.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if opts.JSONResponse {
		config.ResponseMIMEType = "application/json"
	}
	return config
}
