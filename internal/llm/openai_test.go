package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, mode schemaMode, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  "gpt-4o-mini",
		mode:   mode,
	}
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	}
}

func grammarSchema() *Schema {
	return &Schema{
		Name:        "grammar-check-test",
		Description: "grammar findings",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"errors": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"rule":    map[string]any{"type": "string"},
							"message": map[string]any{"type": "string"},
						},
						"required": []any{"rule", "message"},
					},
				},
			},
			"required": []any{"errors"},
		},
	}
}

func TestOpenAIProvider_PlainText(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("  Guten Tag! Wie geht's?\n", "stop"))
	}

	p := newTestOpenAIProvider(t, schemaModeStrict, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a German tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "Respond in German at beginner level to: hello"}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Guten Tag! Wie geht's?" {
		t.Fatalf("unexpected text %q", resp.Text())
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("unexpected usage %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
}

func TestOpenAIProvider_StrictSchemaRequest(t *testing.T) {
	var got openai.ChatCompletionRequest
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"errors":[{"rule":"ARTICLE","message":"use 'das Haus'"}]}`, "stop"))
	}

	p := newTestOpenAIProvider(t, schemaModeStrict, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Der Haus ist groß."}},
		Schema:   grammarSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(resp.Content), "ARTICLE") {
		t.Fatalf("unexpected content %s", resp.Content)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONSchema {
		t.Fatalf("expected json_schema response format, got %+v", got.ResponseFormat)
	}
}

func TestOpenAIProvider_JSONObjectModeDescribesSchema(t *testing.T) {
	var got openai.ChatCompletionRequest
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"errors":[]}`, "stop"))
	}

	p := newTestOpenAIProvider(t, schemaModeJSONObject, handler)
	_, err := p.Generate(context.Background(), Request{
		System:   "You are a German grammar checker.",
		Messages: []Message{{Role: RoleUser, Content: "Ich lerne Deutsch."}},
		Schema:   grammarSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Fatalf("expected json_object response format, got %+v", got.ResponseFormat)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("expected system + user messages, got %+v", got.Messages)
	}
	if !strings.HasPrefix(got.Messages[0].Content, "You are a German grammar checker.") ||
		!strings.Contains(got.Messages[0].Content, `"errors"`) {
		t.Fatalf("schema not described in system prompt: %q", got.Messages[0].Content)
	}
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"findings":[]}`, "stop"))
	}

	p := newTestOpenAIProvider(t, schemaModeJSONObject, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Ich bin müde."}},
		Schema:   grammarSchema(),
	})
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_TruncatedStructuredOutput(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"errors":[{"rule":`, "length"))
	}

	p := newTestOpenAIProvider(t, schemaModeStrict, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Das ist ein sehr langer Satz."}},
		Schema:    grammarSchema(),
		MaxTokens: 8,
	})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "tokens",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	}

	p := newTestOpenAIProvider(t, schemaModeStrict, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Hallo"}},
	})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "server_error", "message": "upstream down"},
		})
	}

	p := newTestOpenAIProvider(t, schemaModeStrict, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Hallo"}},
	})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("expected 'gpt-4o', got %q", p.ModelID())
	}
}

func TestNewDeepSeekProvider(t *testing.T) {
	if _, err := NewDeepSeekProvider(DeepSeekConfig{Model: "deepseek-chat"}); err == nil {
		t.Fatal("expected error for empty API key")
	}

	p, err := NewDeepSeekProvider(DeepSeekConfig{APIKey: "sk-ds", Model: "deepseek-chat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "deepseek-chat" {
		t.Fatalf("expected 'deepseek-chat', got %q", p.ModelID())
	}
	if p.mode != schemaModeJSONObject {
		t.Fatal("deepseek must use json_object mode")
	}
}
