package ai

import (
	"context"
	"fmt"
	"time"
)

// Request is one call to a generative text/vision service.
type Request struct {
	Model       string
	Prompt      string
	System      string
	Temperature float64
	MaxTokens   int

	// ImageBase64 carries an optional inline image. The providers only look at
	// the payload and its declared MIME type.
	ImageBase64 string
	ImageMIME   string
}

// HasImage reports whether the request carries an inline image.
func (r Request) HasImage() bool {
	return r.ImageBase64 != ""
}

// Provider defines the interface for generative calls. Implementations hold
// no per-call state and are safe for concurrent use.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Options configures a provider.
type Options struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// NewProvider creates a new AI provider based on the provider name
func NewProvider(ctx context.Context, name string, opts Options) (Provider, error) {
	switch name {
	case "claude", "anthropic":
		return NewClaudeProvider(opts)
	case "openai", "gpt":
		return NewOpenAIProvider(opts)
	case "gemini", "google":
		return NewGeminiProvider(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: claude, openai, gemini)", name)
	}
}

// callContext applies the request-level timeout. There is no retry: a failed
// call fails its stage.
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func maxTokens(req Request, opts Options) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	if opts.MaxTokens > 0 {
		return opts.MaxTokens
	}
	return 8192
}

func modelFor(req Request, fallback string) string {
	if req.Model != "" {
		return req.Model
	}
	return fallback
}
