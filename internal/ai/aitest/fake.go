// Package aitest provides a scripted ai.Provider for tests.
package aitest

import (
	"context"
	"strings"
	"sync"

	"github.com/v0xg/themeforge/internal/ai"
)

// Rule answers any request whose prompt contains Match.
type Rule struct {
	Match    string
	Response string
	Err      error
}

// Provider answers from the first matching rule. It is safe for concurrent
// use and records every request it receives.
type Provider struct {
	Rules    []Rule
	Fallback string

	mu    sync.Mutex
	calls []ai.Request
}

// New returns a Provider with the given rules.
func New(rules ...Rule) *Provider {
	return &Provider{Rules: rules}
}

func (p *Provider) Name() string { return "fake" }

func (p *Provider) Generate(ctx context.Context, req ai.Request) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, req)
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, r := range p.Rules {
		if strings.Contains(req.Prompt, r.Match) {
			if r.Err != nil {
				return "", r.Err
			}
			return r.Response, nil
		}
	}
	if p.Fallback != "" {
		return p.Fallback, nil
	}
	return "", &ai.CallError{Provider: "fake", Err: ai.ErrEmptyResponse}
}

// Calls returns a copy of the recorded requests.
func (p *Provider) Calls() []ai.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ai.Request, len(p.calls))
	copy(out, p.calls)
	return out
}
