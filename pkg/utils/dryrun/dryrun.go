package dryrun

import (
	"context"
)

type contextKey string

const contextKeyDryRun contextKey = "dry_run"

// With sets the dry-run flag in the context.
func With(ctx context.Context, dryRun bool) context.Context {
	return context.WithValue(ctx, contextKeyDryRun, dryRun)
}

// IsDryRun reports whether the context carries an enabled dry-run flag.
func IsDryRun(ctx context.Context) bool {
	if value, ok := ctx.Value(contextKeyDryRun).(bool); ok {
		return value
	}
	return false
}
