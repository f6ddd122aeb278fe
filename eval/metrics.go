package eval

import (
	"strings"
	"unicode"
)

// normalizeAnswerText normalizes Unicode characters commonly emitted by
// LLMs so substring matching works reliably: Unicode whitespace becomes an
// ASCII space, Unicode hyphens become ASCII hyphens, and zero-width
// characters are stripped.
func normalizeAnswerText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case r == '\u2010' || r == '\u2011' || r == '\u2012' || r == '\u2013' || r == '\u2014':
			b.WriteByte('-')
		case r == '\u200B' || r == '\u200C' || r == '\u200D' || r == '\uFEFF':
			// zero-width, drop
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// factRecall returns the fraction of expected facts present in the answer,
// along with the facts that were missing. Matching is case-insensitive over
// normalized text.
func factRecall(answer string, facts []string) (float64, []string) {
	if len(facts) == 0 {
		return 1, nil
	}
	haystack := strings.ToLower(normalizeAnswerText(answer))

	found := 0
	var missing []string
	for _, fact := range facts {
		if strings.Contains(haystack, strings.ToLower(normalizeAnswerText(fact))) {
			found++
		} else {
			missing = append(missing, fact)
		}
	}
	return float64(found) / float64(len(facts)), missing
}

// keywordRecall measures how many meaningful question words the answer
// echoes. A very low value usually means the model answered a different
// question.
func keywordRecall(question, answer string) float64 {
	answerLower := strings.ToLower(normalizeAnswerText(answer))

	total, found := 0, 0
	for _, w := range strings.Fields(strings.ToLower(question)) {
		w = strings.Trim(w, ".,?!;:'\"()")
		if len(w) <= 3 {
			continue
		}
		total++
		if strings.Contains(answerLower, w) {
			found++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(found) / float64(total)
}
