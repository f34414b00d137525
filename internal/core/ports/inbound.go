package ports

import "context"

// ContextBuilder is the inbound contract for assembling task-relevant
// documentation from a directory tree.
type ContextBuilder interface {
	Build(ctx context.Context, task, docsPath string) (string, error)
}
