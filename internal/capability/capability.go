// Package capability defines the external services the tutor calls during a
// turn and the uniform way they are invoked.
package capability

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned for a capability that is not configured.
	ErrUnavailable = errors.New("capability unavailable")

	// ErrNotFound is returned by a Dictionary that has no entry for a word.
	ErrNotFound = errors.New("no definition found")
)

// Correction is one grammar finding.
type Correction struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (c Correction) String() string {
	return fmt.Sprintf("Error: %s - %s", c.Rule, c.Message)
}

// GrammarChecker finds grammar errors. An empty result means the text is
// correct.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]Correction, error)
}

// Dictionary defines a single word, returning ErrNotFound for unknown
// words.
type Dictionary interface {
	Define(ctx context.Context, word string) (string, error)
}

// Speaker synthesizes speech and returns a URL the client can fetch.
type Speaker interface {
	Speak(ctx context.Context, text string) (string, error)
}

// Translator translates text into one fixed target language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Explainer explains the grammar of a sentence.
type Explainer interface {
	Explain(ctx context.Context, text string) (string, error)
}

// Generator produces free-form text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Set is the full collection of capabilities a tutor uses. Nil members are
// allowed and behave as unavailable.
type Set struct {
	Grammar    GrammarChecker
	Dictionary Dictionary
	Speaker    Speaker
	ToEnglish  Translator
	ToBengali  Translator
	Explainer  Explainer
	Generator  Generator
}

// Complete returns a copy of s with every nil member replaced by
// Unavailable.
func (s Set) Complete() Set {
	if s.Grammar == nil {
		s.Grammar = Unavailable{}
	}
	if s.Dictionary == nil {
		s.Dictionary = Unavailable{}
	}
	if s.Speaker == nil {
		s.Speaker = Unavailable{}
	}
	if s.ToEnglish == nil {
		s.ToEnglish = Unavailable{}
	}
	if s.ToBengali == nil {
		s.ToBengali = Unavailable{}
	}
	if s.Explainer == nil {
		s.Explainer = Unavailable{}
	}
	if s.Generator == nil {
		s.Generator = Unavailable{}
	}
	return s
}

// Unavailable implements every capability by failing with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Check(context.Context, string) ([]Correction, error) { return nil, ErrUnavailable }
func (Unavailable) Define(context.Context, string) (string, error)      { return "", ErrUnavailable }
func (Unavailable) Speak(context.Context, string) (string, error)       { return "", ErrUnavailable }
func (Unavailable) Translate(context.Context, string) (string, error)   { return "", ErrUnavailable }
func (Unavailable) Explain(context.Context, string) (string, error)     { return "", ErrUnavailable }
func (Unavailable) Generate(context.Context, string) (string, error)    { return "", ErrUnavailable }
