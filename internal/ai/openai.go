package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using OpenAI chat completions
type OpenAIProvider struct {
	client *openai.Client
	opts   Options
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(opts Options) (*OpenAIProvider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("THEMEFORGE_AI_OPENAI_KEY or OPENAI_API_KEY environment variable required")
	}

	if opts.Model == "" {
		opts.Model = "gpt-4o"
	}

	return &OpenAIProvider{
		client: openai.NewClient(opts.APIKey),
		opts:   opts,
	}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := callContext(ctx, p.opts.Timeout)
	defer cancel()

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if req.HasImage() {
		user.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    "data:" + req.ImageMIME + ";base64," + req.ImageBase64,
					Detail: openai.ImageURLDetailHigh,
				},
			},
		}
	} else {
		user.Content = req.Prompt
	}
	messages = append(messages, user)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       modelFor(req, p.opts.Model),
		Messages:    messages,
		MaxTokens:   maxTokens(req, p.opts),
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		return "", &CallError{Provider: p.Name(), Err: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &CallError{Provider: p.Name(), Err: ErrEmptyResponse}
	}
	return resp.Choices[0].Message.Content, nil
}
