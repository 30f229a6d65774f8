package llm

import "context"

// Provider is the narrow seam between the answer pipeline and an external
// text generator. The orchestrator never depends on anything beyond it.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}
