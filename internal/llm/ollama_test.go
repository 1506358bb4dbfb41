package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaGenerate(t *testing.T) {
	var got ollamaGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"response":          "use phase transitions",
			"prompt_eval_count": 30,
			"eval_count":        11,
		})
	}))
	defer srv.Close()

	adapter := NewOllamaAdapter(srv.URL, "llama3", 0.7)
	resp := adapter.Generate(context.Background(), "how to cool faster", Options{SystemPrompt: "be brief", MaxTokens: 128})
	if resp.IsError() {
		t.Fatalf("unexpected error response: %q", resp.Content)
	}
	if resp.Content != "use phase transitions" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.Usage["prompt_tokens"] != 30 || resp.Usage["completion_tokens"] != 11 {
		t.Errorf("usage = %v", resp.Usage)
	}
	if got.Stream {
		t.Error("stream should be false")
	}
	if got.System != "be brief" || got.Prompt != "how to cool faster" {
		t.Errorf("request = %+v", got)
	}
	if got.Options.Temperature != 0.7 || got.Options.NumPredict != 128 {
		t.Errorf("options = %+v", got.Options)
	}
}

func TestOllamaChat(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"message":           map[string]string{"role": "assistant", "content": "consider segmentation"},
			"prompt_eval_count": 8,
			"eval_count":        5,
		})
	}))
	defer srv.Close()

	adapter := NewOllamaAdapter(srv.URL, "llama3", 0.5)
	messages := []Message{
		{Role: RoleSystem, Content: "assistant"},
		{Role: RoleUser, Content: "ideas?"},
	}
	resp := adapter.Chat(context.Background(), messages, Options{Temperature: 0.2})
	if resp.IsError() {
		t.Fatalf("unexpected error response: %q", resp.Content)
	}
	if resp.Content != "consider segmentation" {
		t.Errorf("content = %q", resp.Content)
	}
	if len(got.Messages) != 2 {
		t.Errorf("got %d messages, want 2", len(got.Messages))
	}
	// Per-call temperature overrides the adapter default.
	if got.Options.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", got.Options.Temperature)
	}
}

func TestOllamaServerErrorAsValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	adapter := NewOllamaAdapter(srv.URL, "missing", 0)
	resp := adapter.Generate(context.Background(), "prompt", Options{})
	if !resp.IsError() {
		t.Fatal("expected error response")
	}
	if !strings.HasPrefix(resp.Content, "Error: ") {
		t.Errorf("content = %q", resp.Content)
	}
	if !strings.Contains(resp.Content, "404") {
		t.Errorf("content = %q, want status in message", resp.Content)
	}
	if _, ok := resp.Metadata["error"]; !ok {
		t.Error("metadata missing error key")
	}
}

func TestOllamaUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	adapter := NewOllamaAdapter(srv.URL, "llama3", 0)
	resp := adapter.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, Options{})
	if !resp.IsError() {
		t.Fatal("expected error response for closed server")
	}
	if resp.Model != "llama3" {
		t.Errorf("model = %q", resp.Model)
	}
}

func TestOllamaDefaults(t *testing.T) {
	adapter := NewOllamaAdapter("", "", 0)
	if adapter.baseURL != defaultOllamaBaseURL {
		t.Errorf("baseURL = %q", adapter.baseURL)
	}
	if adapter.model != defaultOllamaModel {
		t.Errorf("model = %q", adapter.model)
	}
}
