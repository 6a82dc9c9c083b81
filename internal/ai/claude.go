package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeProvider implements Provider using Anthropic's Claude
type ClaudeProvider struct {
	client *anthropic.Client
	opts   Options
}

// NewClaudeProvider creates a new Claude provider
func NewClaudeProvider(opts Options) (*ClaudeProvider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("THEMEFORGE_AI_ANTHROPIC_KEY or ANTHROPIC_API_KEY environment variable required")
	}

	client := anthropic.NewClient(option.WithAPIKey(opts.APIKey))

	if opts.Model == "" {
		opts.Model = string(anthropic.ModelClaudeSonnet4_20250514)
	}

	return &ClaudeProvider{
		client: &client,
		opts:   opts,
	}, nil
}

func (p *ClaudeProvider) Name() string { return "claude" }

// Generate sends one message and returns the concatenated text blocks.
func (p *ClaudeProvider) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := callContext(ctx, p.opts.Timeout)
	defer cancel()

	var blocks []anthropic.ContentBlockParamUnion
	if req.HasImage() {
		blocks = append(blocks, anthropic.NewImageBlockBase64(req.ImageMIME, req.ImageBase64))
	}
	blocks = append(blocks, anthropic.NewTextBlock(req.Prompt))

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(modelFor(req, p.opts.Model)),
		MaxTokens:   int64(maxTokens(req, p.opts)),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", &CallError{Provider: p.Name(), Err: err}
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if sb.Len() == 0 {
		return "", &CallError{Provider: p.Name(), Err: ErrEmptyResponse}
	}
	return sb.String(), nil
}
