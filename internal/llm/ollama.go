package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama3"
	ollamaTimeout        = 60 * time.Second
)

// OllamaAdapter talks to a local Ollama server over its HTTP API.
type OllamaAdapter struct {
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
}

func NewOllamaAdapter(baseURL, model string, temperature float64) *OllamaAdapter {
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	if model == "" {
		model = defaultOllamaModel
	}
	return &OllamaAdapter{
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		client:      &http.Client{Timeout: ollamaTimeout},
	}
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []Message     `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

type ollamaResponse struct {
	Response        string  `json:"response"`
	Message         Message `json:"message"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
}

func (o *OllamaAdapter) Generate(ctx context.Context, prompt string, opts Options) Response {
	req := ollamaGenerateRequest{
		Model:   o.model,
		Prompt:  prompt,
		System:  opts.SystemPrompt,
		Options: o.options(opts),
	}
	result, err := o.post(ctx, "/api/generate", req)
	if err != nil {
		return ErrorResponse(o.model, err)
	}
	return Response{
		Content: result.Response,
		Model:   o.model,
		Usage: map[string]int{
			"prompt_tokens":     result.PromptEvalCount,
			"completion_tokens": result.EvalCount,
		},
	}
}

func (o *OllamaAdapter) Chat(ctx context.Context, messages []Message, opts Options) Response {
	req := ollamaChatRequest{
		Model:    o.model,
		Messages: messages,
		Options:  o.options(opts),
	}
	result, err := o.post(ctx, "/api/chat", req)
	if err != nil {
		return ErrorResponse(o.model, err)
	}
	return Response{
		Content: result.Message.Content,
		Model:   o.model,
		Usage: map[string]int{
			"prompt_tokens":     result.PromptEvalCount,
			"completion_tokens": result.EvalCount,
		},
	}
}

func (o *OllamaAdapter) options(opts Options) ollamaOptions {
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = o.temperature
	}
	return ollamaOptions{Temperature: temperature, NumPredict: opts.MaxTokens}
}

func (o *OllamaAdapter) post(ctx context.Context, path string, payload any) (*ollamaResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ollama status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	var result ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}
