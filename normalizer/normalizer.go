// Package normalizer cleans raw extracted document text and canonicalizes
// insurance terminology so that downstream chunking, retrieval, and clause
// matching operate over a predictable vocabulary.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	hyphenBreakRe    = regexp.MustCompile(`(\w+)-[ \t]*\n[ \t]*(\w+)`)
	spaceBeforePunct = regexp.MustCompile(`[ \t]+([,.;:!?])`)
	punctThenUpper   = regexp.MustCompile(`([,.;:!?])[ \t]*([A-Z])`)
	spaceRunRe       = regexp.MustCompile(`[ \t]+`)
	blankRunRe       = regexp.MustCompile(`\n[ \t]*\n[ \t\n]*`)
	bulletRe         = regexp.MustCompile(`\n[ \t]*[•·▪▫‣⁃][ \t]*`)
	sentenceGlueRe   = regexp.MustCompile(`\.([A-Z])`)
)

// Normalize runs the full cleaning pipeline: Unicode and whitespace cleanup,
// terminology canonicalization, and structural marker injection.
func Normalize(text string) string {
	text = CleanText(text)
	text = applyRules(termRules, text)
	text = applyRules(structureRules, text)
	return finalCleanup(text)
}

// CleanText performs the format-independent cleanup: NFKD normalization,
// control character stripping, line-break repair, and whitespace collapsing.
// Newlines survive so that structural markers can still be recognized.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKD.String(text)
	text = strings.ReplaceAll(text, "­", "") // soft hyphen
	text = strings.ReplaceAll(text, "​", "") // zero-width space
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	text = b.String()

	// Rejoin words broken by hyphenated line wraps: "pay-\nment" -> "payment".
	text = hyphenBreakRe.ReplaceAllString(text, "$1$2")

	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = punctThenUpper.ReplaceAllString(text, "$1 $2")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// finalCleanup tidies the artifacts the substitution passes leave behind.
func finalCleanup(text string) string {
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = sentenceGlueRe.ReplaceAllString(text, ". $1")
	text = bulletRe.ReplaceAllString(text, "\n• ")
	return strings.TrimSpace(text)
}

// rule pairs a compiled pattern with its replacement template.
type rule struct {
	re   *regexp.Regexp
	repl string
}

func applyRules(rules []rule, text string) string {
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return text
}

// compileRules builds the rule table once at package init. Patterns are
// matched case-insensitively.
func compileRules(pairs [][2]string) []rule {
	rules := make([]rule, len(pairs))
	for i, p := range pairs {
		rules[i] = rule{re: regexp.MustCompile(`(?i)` + p[0]), repl: p[1]}
	}
	return rules
}
