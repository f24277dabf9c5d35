// Package intent routes a learner's message to the handler that should
// answer it.
package intent

import "strings"

// Handler names a node of the tutor's routing graph.
type Handler string

const (
	Grammar        Handler = "grammar"
	Vocabulary     Handler = "vocabulary"
	Pronunciation  Handler = "pronunciation"
	TranslateEN    Handler = "translate_en"
	TranslateBN    Handler = "translate_bn"
	GrammarExplain Handler = "grammar_explain"
	Conversation   Handler = "conversation"

	// End is the terminal state; no handler runs after it.
	End Handler = "end"
)

// Handlers lists every routable handler.
func Handlers() []Handler {
	return []Handler{Grammar, Vocabulary, Pronunciation, TranslateEN, TranslateBN, GrammarExplain, Conversation}
}

// Valid reports whether h is a routable handler or End.
func (h Handler) Valid() bool {
	if h == End {
		return true
	}
	for _, k := range Handlers() {
		if h == k {
			return true
		}
	}
	return false
}

// Rule sends a message to Handler when any of Keywords occurs in it.
// Keywords are matched against the lower-cased message, so they must be
// lower case.
type Rule struct {
	Handler  Handler
	Keywords []string
}

// DefaultRules is the standard routing table. Order matters: the first
// matching rule wins, so the phrase rules come before the bare words
// they contain.
func DefaultRules() []Rule {
	return []Rule{
		{TranslateEN, []string{"translate to english", "translate into english", "in english"}},
		{TranslateBN, []string{"translate to bengali", "translate into bengali", "translate to bangla", "in bengali", "in bangla"}},
		{GrammarExplain, []string{"explain grammar", "explain the grammar", "grammar explanation", "explain this grammar"}},
		{Grammar, []string{"grammar"}},
		{Vocabulary, []string{"vocabulary", "word"}},
		{Pronunciation, []string{"pronounce", "pronunciation"}},
	}
}

// Match is the outcome of classifying a message.
type Match struct {
	Handler Handler
	// Keyword is the rule keyword that matched, empty for the
	// conversation fallback.
	Keyword string
}

// Classifier maps free text to a Handler with an ordered rule table. It is
// immutable and safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier over rules, or DefaultRules when none
// are given.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	cp := make([]Rule, len(rules))
	for i, r := range rules {
		kw := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			kw[j] = strings.ToLower(k)
		}
		cp[i] = Rule{Handler: r.Handler, Keywords: kw}
	}
	return &Classifier{rules: cp}
}

// Rules returns a copy of the routing table.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = Rule{Handler: r.Handler, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Classify returns the handler for text. Empty or unmatched text goes to
// Conversation.
func (c *Classifier) Classify(text string) Handler {
	return c.Match(text).Handler
}

// Match is Classify plus the keyword that decided it.
func (c *Classifier) Match(text string) Match {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return Match{Handler: Conversation}
	}
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if kw != "" && strings.Contains(normalized, kw) {
				return Match{Handler: r.Handler, Keyword: kw}
			}
		}
	}
	return Match{Handler: Conversation}
}
