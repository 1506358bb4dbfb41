// Package llm defines the capability boundary for optional language-model
// enrichment. Transport failures are returned as values: the response
// content carries an "Error:" prefix and the metadata an "error" key, so
// callers check the response instead of handling transport errors inline.
package llm

import (
	"context"
	"strings"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"

	errorPrefix = "Error: "
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Response struct {
	Content  string         `json:"content"`
	Model    string         `json:"model"`
	Usage    map[string]int `json:"usage,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// IsError reports whether the response represents a failed call.
func (r Response) IsError() bool {
	if strings.HasPrefix(r.Content, errorPrefix) {
		return true
	}
	if r.Metadata != nil {
		if _, ok := r.Metadata["error"]; ok {
			return true
		}
	}
	return false
}

// ErrorResponse wraps a failure into the error-as-value shape.
func ErrorResponse(model string, err error) Response {
	return Response{
		Content:  errorPrefix + err.Error(),
		Model:    model,
		Metadata: map[string]any{"error": err.Error()},
	}
}

// Options tune a single call. Zero values defer to the adapter's defaults.
type Options struct {
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
}

// Adapter is implemented by every model provider.
type Adapter interface {
	Generate(ctx context.Context, prompt string, opts Options) Response
	Chat(ctx context.Context, messages []Message, opts Options) Response
}
