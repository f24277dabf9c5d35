package llm

import "testing"

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("model passes through unmapped", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "deepseek/deepseek-chat",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "deepseek/deepseek-chat" {
			t.Errorf("model = %q", p.ModelID())
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x/y"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("custom base URL", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey:  "sk-or-test",
			Model:   "google/gemini-2.0-flash-exp",
			BaseURL: "https://router.example/v1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.mode != schemaModeStrict {
			t.Fatal("openrouter should request strict json_schema output")
		}
	})
}
