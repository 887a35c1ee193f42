package models

import "context"

// Interface is the generation backend contract: prompt in, raw text out.
// Implementations retry transient transport failures internally; a returned
// error means the backend is unusable for this call.
type Interface interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// Embedder is implemented by backends that can embed text for the retrieval layer.
type Embedder interface {
	EmbedText(ctx context.Context, input string) ([]float32, error)
}

// Options are the per-call generation parameters. Caller names the requesting
// stage and is used for logging only.
type Options struct {
	Temperature     float64
	TopP            float64
	MaxOutputTokens int
	Caller          string
}
