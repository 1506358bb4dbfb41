package llm

import (
	"context"
	"errors"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel     = string(anthropic.ModelClaudeSonnet4_20250514)
	defaultAnthropicMaxTokens = 2048
)

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicAdapter struct {
	messages AnthropicMessager
	model    string
}

type anthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient anthropicClientCreator = defaultAnthropicCreator

// NewAnthropicAdapterFromEnv reads ANTHROPIC_API_KEY and optionally
// ANTHROPIC_MODEL.
func NewAnthropicAdapterFromEnv() (*AnthropicAdapter, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	model := strings.TrimSpace(os.Getenv("ANTHROPIC_MODEL"))
	if model == "" {
		model = defaultAnthropicModel
	}
	return &AnthropicAdapter{messages: newAnthropicClient(apiKey), model: model}, nil
}

func (a *AnthropicAdapter) Generate(ctx context.Context, prompt string, opts Options) Response {
	messages := []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))}
	return a.call(ctx, messages, opts)
}

func (a *AnthropicAdapter) Chat(ctx context.Context, messages []Message, opts Options) Response {
	var params []anthropic.MessageParam
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			// The API takes system text out of band.
			if opts.SystemPrompt == "" {
				opts.SystemPrompt = m.Content
			}
		case RoleAssistant:
			params = append(params, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params = append(params, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return a.call(ctx, params, opts)
}

func (a *AnthropicAdapter) call(ctx context.Context, messages []anthropic.MessageParam, opts Options) Response {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(maxTokens),
		Messages:  messages,
	}
	if opts.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: opts.SystemPrompt}}
	}
	if opts.Temperature > 0 {
		params.Temperature = anthropic.Float(opts.Temperature)
	}

	resp, err := a.messages.New(ctx, params)
	if err != nil {
		return ErrorResponse(a.model, err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return Response{
		Content: sb.String(),
		Model:   a.model,
		Usage: map[string]int{
			"prompt_tokens":     int(resp.Usage.InputTokens),
			"completion_tokens": int(resp.Usage.OutputTokens),
		},
	}
}
