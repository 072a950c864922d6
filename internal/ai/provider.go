package ai

import (
	"context"
	"sync"
)

// Provider is a swappable handle around Client so the settings endpoint can
// apply a new credential without restarting the process. Services hold the
// Provider; reads and swaps are serialized here.
type Provider struct {
	mu     sync.RWMutex
	client *Client
}

// NewProvider wraps a client.
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// Generate forwards to the current client.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	p.mu.RLock()
	c := p.client
	p.mu.RUnlock()
	return c.Generate(ctx, prompt)
}

// Configured forwards to the current client.
func (p *Provider) Configured() bool {
	p.mu.RLock()
	c := p.client
	p.mu.RUnlock()
	return c.Configured()
}

// Reconfigure replaces the underlying client.
func (p *Provider) Reconfigure(cfg *Config) {
	client := NewClient(cfg)
	p.mu.Lock()
	p.client = client
	p.mu.Unlock()
}
