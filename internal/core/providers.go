// ABOUTME: Provider contracts the core requires of the external LLM service
// ABOUTME: Arbitrary-length text in, fixed-dimension vector or text out
package core

// Embedder generates a fixed-dimension embedding vector for a text.
type Embedder interface {
	GenerateEmbedding(text string) ([]float64, error)
}

// Completion is the result of a text completion call.
type Completion struct {
	Text       string
	TokensUsed int
}

// Completer generates a text completion from a system and user prompt.
type Completer interface {
	Complete(system, user string, maxTokens int, temperature float64) (Completion, error)
}
