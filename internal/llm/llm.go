// Package llm adapts chat-completion providers to a single blocking call:
// ordered role-tagged messages plus a sampling temperature in, text out.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ashureev/scaffolder/internal/domain"
)

// ErrEmptyResponse is returned when a call succeeds but carries no text,
// e.g. a refusal or a safety block.
var ErrEmptyResponse = errors.New("empty response")

// Client is the language model black box.
type Client interface {
	Complete(ctx context.Context, messages []domain.Message, temperature float64) (string, error)
}

// Factory builds a Client for a provider.
type Factory func(ctx context.Context) (Client, error)

// Registry resolves a provider name to a Client factory.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Open builds the Client registered under name.
func (r *Registry) Open(ctx context.Context, name string) (Client, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", name)
	}
	return f(ctx)
}
