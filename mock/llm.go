package mock

import (
	"context"

	"github.com/jobsift/jobsift"
)

// Compile-time interface verification.
var (
	_ jobsift.Completer = (*Completer)(nil)
	_ jobsift.Converter = (*Converter)(nil)
)

// Completer is a mock implementation of jobsift.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string, opts jobsift.CompleteOptions) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string, opts jobsift.CompleteOptions) (string, error) {
	return c.CompleteFn(ctx, prompt, opts)
}

// Converter is a mock implementation of jobsift.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
