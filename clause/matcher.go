package clause

import (
	"sort"
	"strings"

	"github.com/lavesh00/HackRx-6/query"
)

// Candidate is a retrieved chunk with its vector similarity to the question.
// ID carries the chunk's store identity through scoring so callers can join
// confidences back to their own result sets.
type Candidate struct {
	ID         int64
	Content    string
	Similarity float64
}

// Match is a candidate that survived filtering, with its clause confidence
// and the clause families that matched its text.
type Match struct {
	ID         int64
	Content    string
	Similarity float64
	Confidence float64
	Families   []string
}

// Matcher scores candidates against the clause families for a question's
// likely types and drops chunks with no supporting signal.
type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match scores each candidate and keeps the ones that show at least one
// strong signal: high similarity, high confidence, a clause pattern hit,
// dense question-keyword overlap, or a regulatory citation. If filtering
// would leave fewer than three survivors from a larger pool, the top eight
// by confidence are kept instead so the answerer is never starved.
func (m *Matcher) Match(question string, candidates []Candidate) []Match {
	if len(candidates) == 0 {
		return nil
	}

	types := query.ClassifyTop(question, 3)
	qTokens := questionTokens(question)
	qLower := strings.ToLower(strings.TrimSpace(question))

	all := make([]Match, 0, len(candidates))
	kept := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		lower := strings.ToLower(c.Content)

		families, pattern := patternScore(c.Content, types)
		kd := keywordDensity(qLower, qTokens, lower)
		ctx := contextScore(lower, types)
		length := lengthScore(c.Content)
		ins := insuranceScore(lower)
		reg := regulatoryScore(c.Content)

		conf := 0.4*c.Similarity +
			0.25*pattern +
			0.15*kd +
			0.1*ctx +
			0.05*length +
			0.05*ins
		conf = clamp01(conf)

		match := Match{
			ID:         c.ID,
			Content:    c.Content,
			Similarity: c.Similarity,
			Confidence: conf,
			Families:   families,
		}
		all = append(all, match)

		if c.Similarity > 0.8 || conf > 0.7 || len(families) > 0 || kd > 0.5 || reg > 0.3 {
			kept = append(kept, match)
		}
	}

	if len(kept) < 3 && len(candidates) > 3 {
		kept = append(kept[:0], all...)
		sortByConfidence(kept)
		if len(kept) > 8 {
			kept = kept[:8]
		}
		return kept
	}

	sortByConfidence(kept)
	return kept
}

func sortByConfidence(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
}

// patternScore sums per-type clause pattern scores. Each type contributes
// min(0.3, 0.1 * hits * weight); the total is capped at 0.5. Returns the
// deduplicated family names that matched.
func patternScore(content string, types []query.Type) ([]string, float64) {
	var families []string
	seen := map[string]bool{}
	total := 0.0

	for _, typ := range types {
		typeScore := 0.0
		for _, f := range typeFamilies[typ] {
			hits := 0
			for _, re := range f.patterns {
				if re.MatchString(content) {
					hits++
				}
			}
			if hits == 0 {
				continue
			}
			typeScore += 0.1 * float64(hits) * f.weight
			if !seen[f.name] {
				seen[f.name] = true
				families = append(families, f.name)
			}
		}
		if typeScore > 0.3 {
			typeScore = 0.3
		}
		total += typeScore
	}

	if total > 0.5 {
		total = 0.5
	}
	return families, total
}

// keywordDensity measures how much of the question's meaningful vocabulary
// the chunk contains: the overlap ratio of stop-word-filtered question
// tokens, plus bonuses for a verbatim question match and shared bigrams.
func keywordDensity(questionLower string, qTokens []string, contentLower string) float64 {
	if len(qTokens) == 0 {
		return 0
	}

	matched := 0
	for _, tok := range qTokens {
		if strings.Contains(contentLower, tok) {
			matched++
		}
	}
	density := float64(matched) / float64(len(qTokens))

	if questionLower != "" && strings.Contains(contentLower, strings.TrimRight(questionLower, "?!. ")) {
		density += 0.3
	}

	bigramBonus := 0.0
	for i := 0; i+1 < len(qTokens); i++ {
		if strings.Contains(contentLower, qTokens[i]+" "+qTokens[i+1]) {
			bigramBonus += 0.1
		}
	}
	if bigramBonus > 0.2 {
		bigramBonus = 0.2
	}
	density += bigramBonus

	return clamp01(density)
}

// contextScore sums per-type contextual keyword scores, each capped the
// same way as pattern scores, then clamps the total.
func contextScore(contentLower string, types []query.Type) float64 {
	total := 0.0
	for _, typ := range types {
		cs, ok := typeContext[typ]
		if !ok {
			continue
		}
		count := 0
		for _, kw := range cs.keywords {
			if strings.Contains(contentLower, kw) {
				count++
			}
		}
		typeScore := 0.1 * float64(count) * cs.weight
		if typeScore > 0.3 {
			typeScore = 0.3
		}
		total += typeScore
	}
	return clamp01(total)
}

// regulatoryScore counts regulatory citation patterns at 0.1 each.
func regulatoryScore(content string) float64 {
	score := 0.0
	for _, re := range regulatoryPatterns {
		if re.MatchString(content) {
			score += 0.1
		}
	}
	return clamp01(score)
}

// lengthScore penalizes fragments and rewards chunks long enough to hold a
// complete clause but short enough to stay on topic.
func lengthScore(content string) float64 {
	switch wc := len(strings.Fields(content)); {
	case wc < 15:
		return -0.1
	case wc < 30:
		return 0
	case wc < 100:
		return 0.1
	case wc < 200:
		return 0.15
	default:
		return 0.1
	}
}

// insuranceScore rewards policy-specific vocabulary density.
func insuranceScore(contentLower string) float64 {
	score := 0.0
	for _, term := range insuranceHighTerms {
		if strings.Contains(contentLower, term) {
			score += 0.05
		}
	}
	for _, term := range insuranceMediumTerms {
		if strings.Contains(contentLower, term) {
			score += 0.02
		}
	}
	if score > 0.3 {
		score = 0.3
	}
	return score
}

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "of": true, "for": true,
	"to": true, "in": true, "on": true, "at": true, "by": true, "with": true,
	"and": true, "or": true, "what": true, "which": true, "who": true,
	"how": true, "when": true, "where": true, "why": true, "does": true,
	"do": true, "did": true, "can": true, "will": true, "would": true,
	"this": true, "that": true, "there": true, "it": true, "its": true,
	"any": true, "under": true, "if": true, "my": true, "i": true,
}

// questionTokens lowercases, strips punctuation, and drops stop words.
func questionTokens(question string) []string {
	var tokens []string
	for _, f := range strings.Fields(strings.ToLower(question)) {
		f = strings.Trim(f, ".,?!;:'\"()")
		if f == "" || stopWords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
