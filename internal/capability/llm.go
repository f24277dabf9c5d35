package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/lingua/internal/llm"
)

// LLMConfig tunes the requests an LLM-backed capability sends.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMConfig returns settings suited to short tutoring replies.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{MaxTokens: 512, Temperature: 0.3}
}

// LLMGrammarChecker checks grammar with a language model.
type LLMGrammarChecker struct {
	provider llm.Provider
	language string
	cfg      LLMConfig
}

// NewLLMGrammarChecker creates a checker for sentences in language.
func NewLLMGrammarChecker(p llm.Provider, language string, cfg LLMConfig) *LLMGrammarChecker {
	return &LLMGrammarChecker{provider: p, language: language, cfg: cfg}
}

type grammarOutput struct {
	Errors []Correction `json:"errors"`
}

func (g *LLMGrammarChecker) Check(ctx context.Context, text string) ([]Correction, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeGrammarCheck)

	system, err := render(grammarSystemTmpl, promptData{Language: g.language})
	if err != nil {
		return nil, err
	}

	var out grammarOutput
	if err := generateJSON(ctx, g.provider, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: text}},
		Schema:      GrammarSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}, &out); err != nil {
		return nil, err
	}
	return out.Errors, nil
}

var grammarSystemTmpl = template.Must(template.New("grammar").Parse(
	`You are a strict {{.Language}} grammar checker for language learners.
Report every grammatical error in the learner's text: agreement, case, verb position, conjugation, articles and spelling.
Do not report style preferences. If the text is correct, return an empty errors list.`))

// LLMDictionary defines words with a language model.
type LLMDictionary struct {
	provider llm.Provider
	language string
	cfg      LLMConfig
}

// NewLLMDictionary creates a dictionary for words of language.
func NewLLMDictionary(p llm.Provider, language string, cfg LLMConfig) *LLMDictionary {
	return &LLMDictionary{provider: p, language: language, cfg: cfg}
}

type definitionOutput struct {
	Found      bool   `json:"found"`
	Definition string `json:"definition"`
}

func (d *LLMDictionary) Define(ctx context.Context, word string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeDefinition)

	system, err := render(definitionSystemTmpl, promptData{Language: d.language})
	if err != nil {
		return "", err
	}

	var out definitionOutput
	if err := generateJSON(ctx, d.provider, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: word}},
		Schema:      DefinitionSchema,
		MaxTokens:   d.cfg.MaxTokens,
		Temperature: d.cfg.Temperature,
	}, &out); err != nil {
		return "", err
	}

	def := strings.TrimSpace(out.Definition)
	if !out.Found || def == "" {
		return "", ErrNotFound
	}
	return def, nil
}

var definitionSystemTmpl = template.Must(template.New("definition").Parse(
	`You are a {{.Language}}-English dictionary. Give the short English meaning of the {{.Language}} word you are sent.
Answer with the gloss only, without examples. If it is not a {{.Language}} word, set found to false.`))

// LLMTranslator translates into a fixed target language.
type LLMTranslator struct {
	provider llm.Provider
	target   string
	cfg      LLMConfig
}

// NewLLMTranslator creates a translator into target, e.g. "English".
func NewLLMTranslator(p llm.Provider, target string, cfg LLMConfig) *LLMTranslator {
	return &LLMTranslator{provider: p, target: target, cfg: cfg}
}

func (t *LLMTranslator) Translate(ctx context.Context, text string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeTranslation)

	resp, err := t.provider.Generate(ctx, llm.Request{
		System: fmt.Sprintf("Translate the user's text into %s. Reply with the translation only, "+
			"keeping names and punctuation. If it is already %s, repeat it unchanged.", t.target, t.target),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: text}},
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", t.target, err)
	}

	out := resp.Text()
	if out == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty translation")}
	}
	return out, nil
}

// LLMExplainer explains grammar in English and Bengali.
type LLMExplainer struct {
	provider llm.Provider
	language string
	cfg      LLMConfig
}

// NewLLMExplainer creates an explainer for sentences in language.
func NewLLMExplainer(p llm.Provider, language string, cfg LLMConfig) *LLMExplainer {
	return &LLMExplainer{provider: p, language: language, cfg: cfg}
}

type explanationOutput struct {
	English string `json:"english"`
	Bengali string `json:"bengali"`
}

func (e *LLMExplainer) Explain(ctx context.Context, text string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeGrammarExplain)

	var out explanationOutput
	if err := generateJSON(ctx, e.provider, llm.Request{
		System: fmt.Sprintf("You are a %s teacher for Bengali-speaking learners. Explain the grammar of the "+
			"sentence you are sent: word order, cases and verb forms. Be brief and concrete.", e.language),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: text}},
		Schema:      ExplanationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	}, &out); err != nil {
		return "", err
	}
	return fmt.Sprintf("English: %s\nBengali: %s", strings.TrimSpace(out.English), strings.TrimSpace(out.Bengali)), nil
}

// LLMGenerator answers conversation prompts.
type LLMGenerator struct {
	provider llm.Provider
	cfg      LLMConfig
}

// NewLLMGenerator creates a conversation generator.
func NewLLMGenerator(p llm.Provider, cfg LLMConfig) *LLMGenerator {
	return &LLMGenerator{provider: p, cfg: cfg}
}

func (g *LLMGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeConversation)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      "You are a friendly language tutor chatting with a learner. Keep replies to two or three sentences.",
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	out := resp.Text()
	if out == "" {
		return "", &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty reply")}
	}
	return out, nil
}

func generateJSON(ctx context.Context, p llm.Provider, req llm.Request, v any) error {
	resp, err := p.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("LLM %s failed: %w", req.Schema.Name, err)
	}
	if err := json.Unmarshal(resp.Content, v); err != nil {
		return fmt.Errorf("parse %s response: %w", req.Schema.Name, err)
	}
	return nil
}

type promptData struct {
	Language string
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
