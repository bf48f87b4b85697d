// Package slog provides logging decorators for jobsift service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jobsift/jobsift"
)

// Ensure LoggingCompleter implements jobsift.Completer.
var _ jobsift.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with debug logging.
type LoggingCompleter struct {
	next   jobsift.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next jobsift.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs the operation.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string, opts jobsift.CompleteOptions) (out string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("llm completion",
			"prompt_chars", len(prompt),
			"response_chars", len(out),
			"json", opts.JSONResponse,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, prompt, opts)
}
