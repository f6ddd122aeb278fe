package query

import (
	"regexp"
	"sort"
	"strings"
)

// Variant is one retrieval phrasing of a question with its priority score.
// The original question always carries priority 100.
type Variant struct {
	Text     string `json:"text"`
	Priority int    `json:"priority"`
}

// Expander generates scored query variants for retrieval.
type Expander struct {
	max int
}

// NewExpander returns an Expander producing at most max variants.
// Zero means the default cap of 20.
func NewExpander(max int) *Expander {
	if max <= 0 {
		max = 20
	}
	return &Expander{max: max}
}

var (
	codeRe  = regexp.MustCompile(`\b[A-Z]{2,}[0-9]{2,}[A-Z0-9]*\b`)
	digitRe = regexp.MustCompile(`\d`)
	uinRe   = regexp.MustCompile(`\b[A-Z]{3,}[0-9]{2,}[A-Z0-9]*\b`)
	kmRe    = regexp.MustCompile(`(?i)\b(?:km|kilometers?|kilometres?)\b`)
	timeRe  = regexp.MustCompile(`(?i)\b(?:days?|months?|years?|hours?)\b`)

	compiledRules = compileRules(expansionRules)
)

type compiledRule struct {
	re        *regexp.Regexp
	templates []string
}

func compileRules(rules []expansionRule) []compiledRule {
	out := make([]compiledRule, len(rules))
	for i, r := range rules {
		out[i] = compiledRule{
			re:        regexp.MustCompile(`(?i)` + r.pattern),
			templates: r.templates,
		}
	}
	return out
}

// Expand produces retrieval variants of a question: the original first,
// then synonym substitutions, number-form conversions, product-code
// expansions, semantic neighbors, and shape-based rewrites, sorted by
// priority and capped.
func (e *Expander) Expand(question string) []Variant {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil
	}

	variants := []Variant{{Text: question, Priority: 100}}
	seen := map[string]bool{dedupeKey(question): true}

	add := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		key := dedupeKey(text)
		if seen[key] {
			return
		}
		seen[key] = true
		variants = append(variants, Variant{Text: text, Priority: scoreVariant(text)})
	}

	lower := strings.ToLower(question)

	// Synonym substitution; the synonym on its own is also a useful probe.
	for term, syns := range synonymMap {
		if !strings.Contains(lower, term) {
			continue
		}
		for _, syn := range syns {
			add(strings.ReplaceAll(lower, term, syn))
			add(syn)
		}
	}

	// Spelled-out numbers to digits and back.
	for word, digit := range numberWords {
		if strings.Contains(lower, word) {
			add(strings.ReplaceAll(lower, word, digit))
		}
		if containsWord(lower, digit) {
			add(strings.ReplaceAll(lower, digit, word))
		}
	}

	// Product codes get UIN-focused variants.
	for _, code := range codeRe.FindAllString(question, -1) {
		add("product " + code)
		add("policy " + code)
		add("UIN " + code)
	}

	// Related concepts as standalone probes.
	for concept, related := range semanticMap {
		if !strings.Contains(lower, concept) {
			continue
		}
		for _, term := range related {
			add(term)
		}
	}

	// Shape-based rewrites.
	for _, rule := range compiledRules {
		m := rule.re.FindStringSubmatchIndex(lower)
		if m == nil {
			continue
		}
		for _, tmpl := range rule.templates {
			add(string(rule.re.ExpandString(nil, tmpl, lower, m)))
		}
	}

	// The original stays first regardless of how generated variants score.
	rest := variants[1:]
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Priority > rest[j].Priority
	})

	if len(variants) > e.max {
		variants = variants[:e.max]
	}
	return variants
}

// scoreVariant estimates how likely a variant is to retrieve decisive text.
func scoreVariant(text string) int {
	score := 0

	switch wc := len(strings.Fields(text)); {
	case wc >= 5:
		score += 60
	case wc >= 3:
		score += 40
	case wc >= 2:
		score += 20
	}

	if digitRe.MatchString(text) {
		score += 25
	}

	lower := strings.ToLower(text)
	for _, term := range highValueTerms {
		if strings.Contains(lower, term) {
			score += 30
			break
		}
	}
	for _, term := range mediumValueTerms {
		if strings.Contains(lower, term) {
			score += 15
			break
		}
	}

	if uinRe.MatchString(text) {
		score += 40
	}
	if kmRe.MatchString(text) {
		score += 35
	}
	if timeRe.MatchString(text) {
		score += 30
	}

	return score
}

func dedupeKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// containsWord reports whether s contains w as a whole token.
func containsWord(s, w string) bool {
	for _, f := range strings.Fields(s) {
		if strings.Trim(f, ".,?!;:") == w {
			return true
		}
	}
	return false
}
