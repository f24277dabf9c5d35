package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// schemaMode selects how structured output is requested from an
// OpenAI-compatible endpoint.
type schemaMode int

const (
	// schemaModeStrict sends the schema as response_format json_schema.
	schemaModeStrict schemaMode = iota
	// schemaModeJSONObject asks for json_object and describes the schema
	// in the system prompt, for endpoints without json_schema support.
	schemaModeJSONObject
)

// OpenAIProvider implements Provider with go-openai. DeepSeek and
// OpenRouter reuse it through their OpenAI-compatible APIs.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	mode   schemaMode
}

// NewOpenAIProvider creates a provider for the OpenAI API.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	return newOpenAIProviderRaw(cfg, openaiModels, schemaModeStrict), nil
}

func newOpenAIProviderRaw(cfg OpenAIConfig, models map[string]string, mode schemaMode) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  resolveModel(cfg.Model, models),
		mode:   mode,
	}
}

// Client exposes the underlying SDK client so other OpenAI endpoints
// (speech synthesis) can share its configuration.
func (p *OpenAIProvider) Client() *openai.Client {
	return p.client
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            buildOpenAIMessages(req, p.mode),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	if req.Schema != nil {
		format, err := p.responseFormat(req.Schema)
		if err != nil {
			return nil, err
		}
		chatReq.ResponseFormat = format
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no choices in OpenAI response")}
	}

	content := json.RawMessage(resp.Choices[0].Message.Content)
	if resp.Choices[0].FinishReason == openai.FinishReasonLength && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: mapOpenAIStopReason(resp.Choices[0].FinishReason),
	}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func (p *OpenAIProvider) responseFormat(schema *Schema) (*openai.ChatCompletionResponseFormat, error) {
	if p.mode == schemaModeJSONObject {
		return &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}, nil
	}

	schemaBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   schema.Name,
			Schema: json.RawMessage(schemaBytes),
			Strict: true,
		},
	}, nil
}

func buildOpenAIMessages(req Request, mode schemaMode) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage

	system := req.System
	if mode == schemaModeJSONObject && req.Schema != nil {
		system = appendSchemaInstruction(system, req.Schema)
	}
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}

	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	return messages
}

// appendSchemaInstruction tells a json_object-only model which shape to
// produce.
func appendSchemaInstruction(system string, schema *Schema) string {
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return system
	}
	instr := fmt.Sprintf("Reply with a single JSON object (%s) matching this JSON Schema:\n%s", schema.Description, def)
	if system == "" {
		return instr
	}
	return system + "\n\n" + instr
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	switch reason {
	case openai.FinishReasonStop:
		return "end"
	case openai.FinishReasonLength:
		return "max_tokens"
	default:
		return "end"
	}
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}
