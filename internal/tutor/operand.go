package tutor

import (
	"strings"
	"unicode"
)

// stripTrigger removes the routing phrase kw from the start or end of text
// together with separators such as ':' or '-', leaving the part the
// learner wants processed. Text that does not start or end with kw, or
// that is nothing but kw, is returned trimmed but otherwise unchanged.
func stripTrigger(text, kw string) string {
	trimmed := strings.TrimSpace(text)
	if kw == "" {
		return trimmed
	}

	if len(trimmed) >= len(kw) && strings.EqualFold(trimmed[:len(kw)], kw) {
		if rest := strings.TrimLeftFunc(trimmed[len(kw):], isSeparator); rest != "" {
			return rest
		}
		return trimmed
	}

	body := strings.TrimRightFunc(trimmed, isClosingPunct)
	if len(body) >= len(kw) && strings.EqualFold(body[len(body)-len(kw):], kw) {
		if rest := strings.TrimRightFunc(body[:len(body)-len(kw)], isSeparator); rest != "" {
			return rest
		}
	}
	return trimmed
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ':' || r == '-' || r == ','
}

func isClosingPunct(r rune) bool {
	return unicode.IsSpace(r) || r == '?' || r == '!' || r == '.'
}

// wordPunct is trimmed from both ends of a vocabulary operand.
const wordPunct = "?!.,;:\"'"

// lastWord returns the last whitespace-separated token of text that is
// not pure punctuation, with surrounding punctuation removed.
func lastWord(text string) string {
	fields := strings.Fields(text)
	for i := len(fields) - 1; i >= 0; i-- {
		if w := strings.Trim(fields[i], wordPunct); w != "" {
			return w
		}
	}
	return ""
}
