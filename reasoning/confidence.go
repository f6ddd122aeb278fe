package reasoning

import (
	"regexp"
	"strings"

	"github.com/lavesh00/HackRx-6/query"
)

var (
	answerDigitRe = regexp.MustCompile(`\d`)
	answerUINRe   = regexp.MustCompile(`\b[A-Z]{3,}[0-9]{2,}[A-Z0-9]*\b`)
	percentRe     = regexp.MustCompile(`\d+(?:\.\d+)?\s*%`)
)

// scoreAnswer estimates answer confidence from surface signals: length,
// specificity markers, a percentage for numerical questions, and whether a
// UIN-shaped code appears in the text.
func scoreAnswer(text string, qtype query.Type) float64 {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "information not available") ||
		strings.Contains(lower, "not available in the document") ||
		strings.Contains(lower, "do not contain") {
		return 0.1
	}

	score := 0.5
	if len(text) > 50 {
		score += 0.2
	}
	if answerDigitRe.MatchString(text) {
		score += 0.1
	}
	if strings.Contains(lower, "exactly") || strings.Contains(lower, "specifically") {
		score += 0.1
	}
	if qtype == query.TypeNumerical && percentRe.MatchString(text) {
		score += 0.1
	}
	if answerUINRe.MatchString(text) {
		score += 0.15
	}
	if strings.Contains(lower, "may ") || strings.Contains(lower, "might ") {
		score -= 0.1
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
