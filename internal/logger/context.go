package logger

import "context"

type contextKey string

const runIDKey contextKey = "run_id"

// WithRunID tags ctx so every log line of one pipeline run carries the same id.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunID returns the run id stored in ctx, or "".
func RunID(ctx context.Context) string {
	if v, ok := ctx.Value(runIDKey).(string); ok {
		return v
	}
	return ""
}
