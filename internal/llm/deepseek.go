package llm

import "fmt"

const defaultDeepSeekBaseURL = "https://api.deepseek.com/v1"

var deepseekModels = map[string]string{
	"deepseek-chat":     "deepseek-chat",
	"deepseek-reasoner": "deepseek-reasoner",
}

// DeepSeekProvider talks to DeepSeek's OpenAI-compatible API. DeepSeek has
// no json_schema response format, so structured requests use json_object
// mode with the schema spelled out in the system prompt; the reply is still
// validated locally.
type DeepSeekProvider struct {
	*OpenAIProvider
}

// NewDeepSeekProvider creates a provider targeting the DeepSeek API.
func NewDeepSeekProvider(cfg DeepSeekConfig) (*DeepSeekProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("deepseek API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultDeepSeekBaseURL
	}

	inner := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, deepseekModels, schemaModeJSONObject)

	return &DeepSeekProvider{OpenAIProvider: inner}, nil
}
