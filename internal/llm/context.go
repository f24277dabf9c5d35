package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// Purposes used by the tutor capabilities. They label rows in the LLM
// request log so usage can be broken down per capability.
const (
	PurposeGrammarCheck   = "grammar-check"
	PurposeGrammarExplain = "grammar-explain"
	PurposeDefinition     = "definition"
	PurposeTranslation    = "translation"
	PurposeConversation   = "conversation"
)

// WithPurpose attaches a purpose label to ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose label on ctx, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
