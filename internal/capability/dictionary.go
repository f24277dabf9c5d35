package capability

import (
	"context"
	"errors"
)

// StaticDictionary is an in-memory word list.
type StaticDictionary map[string]string

// DefaultStaticDictionary returns the built-in German starter entries.
func DefaultStaticDictionary() StaticDictionary {
	return StaticDictionary{
		"Haus":   "house",
		"Auto":   "car",
		"lernen": "to learn",
	}
}

// Define looks word up exactly as given; German nouns are capitalized, so
// case is significant.
func (d StaticDictionary) Define(_ context.Context, word string) (string, error) {
	if def, ok := d[word]; ok {
		return def, nil
	}
	return "", ErrNotFound
}

// ChainDictionary asks each dictionary in turn until one knows the word.
// Only ErrNotFound moves on to the next one; any other error stops the
// lookup.
type ChainDictionary []Dictionary

func (c ChainDictionary) Define(ctx context.Context, word string) (string, error) {
	for _, d := range c {
		if d == nil {
			continue
		}
		def, err := d.Define(ctx, word)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return def, err
	}
	return "", ErrNotFound
}
