package reasoning

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/lavesh00/HackRx-6/query"
)

// cannedPrefixes are boilerplate openers models emit despite instructions.
var cannedPrefixes = []string{
	"Based on the context provided,",
	"Based on the context,",
	"Based on the provided context,",
	"Based on the document excerpts,",
	"Based on the document,",
	"According to the document excerpts,",
	"According to the document,",
	"According to the provided context,",
	"Answer:",
	"ANSWER:",
}

var percentWordRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*percent\b`)

// postProcess normalizes a raw model response: strips boilerplate openers,
// fixes capitalization and the terminal period, and for numerical answers
// rewrites spelled-out percentages as symbols.
func postProcess(raw string, qtype query.Type) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return text
	}

	for changed := true; changed; {
		changed = false
		for _, prefix := range cannedPrefixes {
			if strings.HasPrefix(text, prefix) {
				text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
				changed = true
			}
		}
	}
	if text == "" {
		return text
	}

	if qtype == query.TypeNumerical {
		text = percentWordRe.ReplaceAllString(text, "$1%")
	}

	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	text = string(runes)

	switch text[len(text)-1] {
	case '.', '!', '?', '%', ':':
	default:
		text += "."
	}
	return text
}
