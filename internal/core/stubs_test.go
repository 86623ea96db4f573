// ABOUTME: Stub embedding and completion providers shared by core tests
// ABOUTME: Deterministic, call-counting, no network
package core

import (
	"errors"
	"strings"
	"sync"
)

// stubEmbedder returns canned vectors keyed by substring match, counting
// calls so memoization can be asserted.
type stubEmbedder struct {
	mu      sync.Mutex
	calls   int
	vectors map[string][]float64 // substring -> vector
	fail    bool
}

func newStubEmbedder() *stubEmbedder {
	return &stubEmbedder{vectors: make(map[string][]float64)}
}

func (e *stubEmbedder) GenerateEmbedding(text string) ([]float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls++
	if e.fail {
		return nil, errors.New("embedding provider unavailable")
	}

	for substr, vec := range e.vectors {
		if strings.Contains(strings.ToLower(text), substr) {
			return vec, nil
		}
	}
	return []float64{0, 0, 1}, nil
}

func (e *stubEmbedder) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// stubCompleter returns a fixed completion text.
type stubCompleter struct {
	mu    sync.Mutex
	calls int
	text  string
	fail  bool
}

func (c *stubCompleter) Complete(system, user string, maxTokens int, temperature float64) (Completion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++
	if c.fail {
		return Completion{}, errors.New("completion provider unavailable")
	}
	return Completion{Text: c.text, TokensUsed: 42}, nil
}

func (c *stubCompleter) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
