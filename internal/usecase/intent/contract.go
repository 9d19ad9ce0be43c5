package intent

import "context"

// Completer is the completion provider contract the router depends on.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, jsonMode bool) (string, error)
}
