package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/capability"
	"github.com/abhisek/lingua/internal/intent"
)

// handlerFunc produces the reply for one routed message. It never fails:
// capability errors become reply text.
type handlerFunc func(ctx context.Context, learnerID, text string, m intent.Match) string

const noGrammarErrors = "No grammar errors found!"

func (o *Orchestrator) handleGrammar(ctx context.Context, learnerID, text string, _ intent.Match) string {
	res := capability.Call(ctx, o.timeout, func(ctx context.Context) ([]capability.Correction, error) {
		return o.caps.Grammar.Check(ctx, text)
	})
	if !res.OK() {
		o.capabilityFailed(learnerID, "grammar-check", res.Err, res.Elapsed)
		return "Error checking grammar: " + res.Err.Error()
	}

	o.progress.Record(ctx, learnerID, len(res.Value) == 0)

	if len(res.Value) == 0 {
		return noGrammarErrors
	}
	lines := make([]string, len(res.Value))
	for i, c := range res.Value {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}

func (o *Orchestrator) handleVocabulary(ctx context.Context, learnerID, text string, _ intent.Match) string {
	word := lastWord(text)
	res := capability.Call(ctx, o.timeout, func(ctx context.Context) (string, error) {
		return o.caps.Dictionary.Define(ctx, word)
	})
	switch {
	case res.OK():
		return fmt.Sprintf("%s: %s", word, res.Value)
	case errors.Is(res.Err, capability.ErrNotFound):
		return fmt.Sprintf("No definition found for '%s'. Try another word!", word)
	default:
		o.capabilityFailed(learnerID, "word-definition", res.Err, res.Elapsed)
		return fmt.Sprintf("Error looking up '%s': %s", word, res.Err)
	}
}

func (o *Orchestrator) handlePronunciation(ctx context.Context, learnerID, text string, _ intent.Match) string {
	res := capability.Call(ctx, o.timeout, func(ctx context.Context) (string, error) {
		return o.caps.Speaker.Speak(ctx, text)
	})
	if !res.OK() {
		o.capabilityFailed(learnerID, "text-to-speech", res.Err, res.Elapsed)
		return "Error generating pronunciation: " + res.Err.Error()
	}
	return "Pronunciation audio generated: " + res.Value
}

func (o *Orchestrator) handleTranslateEN(ctx context.Context, learnerID, text string, m intent.Match) string {
	return o.translate(ctx, learnerID, stripTrigger(text, m.Keyword), o.caps.ToEnglish, "English")
}

func (o *Orchestrator) handleTranslateBN(ctx context.Context, learnerID, text string, m intent.Match) string {
	return o.translate(ctx, learnerID, stripTrigger(text, m.Keyword), o.caps.ToBengali, "Bengali")
}

func (o *Orchestrator) translate(ctx context.Context, learnerID, text string, tr capability.Translator, target string) string {
	res := capability.Call(ctx, o.timeout, func(ctx context.Context) (string, error) {
		return tr.Translate(ctx, text)
	})
	if !res.OK() {
		o.capabilityFailed(learnerID, "translate-"+strings.ToLower(target), res.Err, res.Elapsed)
		return fmt.Sprintf("Error translating to %s: %s", target, res.Err)
	}
	return res.Value
}

func (o *Orchestrator) handleGrammarExplain(ctx context.Context, learnerID, text string, m intent.Match) string {
	sentence := stripTrigger(text, m.Keyword)
	res := capability.Call(ctx, o.timeout, func(ctx context.Context) (string, error) {
		return o.caps.Explainer.Explain(ctx, sentence)
	})
	if !res.OK() {
		o.capabilityFailed(learnerID, "grammar-explain", res.Err, res.Elapsed)
		return "Error explaining grammar: " + res.Err.Error()
	}
	return res.Value
}

// handleConversation answers in the learning language at the learner's
// level, followed by English and Bengali translations of that answer.
func (o *Orchestrator) handleConversation(ctx context.Context, learnerID, text string, _ intent.Match) string {
	level := o.progress.Level(ctx, learnerID)
	prompt := fmt.Sprintf("Respond in %s at %s level to: %s", o.language, level, text)

	gen := capability.Call(ctx, o.timeout, func(ctx context.Context) (string, error) {
		return o.caps.Generator.Generate(ctx, prompt)
	})
	if !gen.OK() {
		o.capabilityFailed(learnerID, "text-generation", gen.Err, gen.Elapsed)
		return "Error generating response: " + gen.Err.Error()
	}

	english := o.translate(ctx, learnerID, gen.Value, o.caps.ToEnglish, "English")
	bengali := o.translate(ctx, learnerID, gen.Value, o.caps.ToBengali, "Bengali")

	return strings.Join([]string{gen.Value, english, bengali}, "\n")
}

func (o *Orchestrator) capabilityFailed(learnerID, name string, err error, elapsed time.Duration) {
	o.log.Warn("capability failed",
		zap.String("learner", learnerID),
		zap.String("capability", name),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
}
