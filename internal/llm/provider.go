package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the single entry point the tutor uses to talk to a language
// model. Implementations wrap one vendor SDK each.
type Provider interface {
	// Generate sends the request and returns the model output. When
	// req.Schema is set the provider asks for structured output and the
	// returned Content is JSON validated against that schema. Otherwise
	// Content holds the raw reply text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier the provider is configured with.
	ModelID() string
}

// Request describes a single model call.
type Request struct {
	// System sets the model's role, e.g. "You are a German tutor".
	System string

	// Messages is the conversation sent to the model. Tutor capabilities
	// send exactly one user message per call.
	Messages []Message

	// Schema, when set, requests JSON output conforming to it.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness (0.0 - 1.0). Zero leaves the
	// provider default in place.
	Temperature float64
}

// Message is one entry in Request.Messages.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema used for structured output.
type Schema struct {
	// Name identifies the schema, kebab-case (e.g. "grammar-check").
	// Used as the schema name for OpenAI and as the compile cache key.
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is validated JSON when a schema was requested and raw text
	// otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns Content as trimmed plain text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

// Usage is the token accounting for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
