package parser

import (
	"regexp"
	"strings"
)

// Metadata summarises a parsed document for logging and diagnostics.
type Metadata struct {
	WordCount      int            `json:"word_count"`
	CharCount      int            `json:"char_count"`
	SentenceCount  int            `json:"sentence_count"`
	ParagraphCount int            `json:"paragraph_count"`
	PageCount      int            `json:"page_count"`
	TableCount     int            `json:"table_count"`
	TermCounts     map[string]int `json:"term_counts"`
	Complexity     float64        `json:"complexity"`
}

// termCategories groups the insurance vocabulary whose density signals what
// kind of policy document this is.
var termCategories = map[string][]string{
	"coverage":   {"coverage", "covered", "benefit", "sum insured", "cashless", "reimbursement"},
	"exclusions": {"exclusion", "excluded", "not covered", "non-payable", "limitation"},
	"claims":     {"claim", "settlement", "intimation", "discharge summary", "tpa"},
	"periods":    {"waiting period", "grace period", "policy period", "policy year"},
	"maternity":  {"maternity", "pregnancy", "childbirth", "well-baby", "well-mother", "newborn"},
	"financial":  {"premium", "deductible", "co-payment", "sub-limit", "rs.", "lakhs", "crores"},
	"regulatory": {"irdai", "irda", "uin", "regulatory", "ombudsman"},
	"medical":    {"hospital", "hospitalization", "surgery", "treatment", "icu", "ambulance"},
}

var (
	numericRe     = regexp.MustCompile(`\d`)
	sentenceEndRe = regexp.MustCompile(`[.!?](\s|$)`)
)

// Analyze computes document statistics from a parse result.
func Analyze(res *Result) *Metadata {
	text := res.Text
	lower := strings.ToLower(text)
	words := strings.Fields(text)

	m := &Metadata{
		WordCount:      len(words),
		CharCount:      len(text),
		SentenceCount:  len(sentenceEndRe.FindAllString(text, -1)),
		ParagraphCount: len(strings.Split(text, "\n\n")),
		PageCount:      res.Pages,
		TableCount:     len(res.Tables),
		TermCounts:     make(map[string]int, len(termCategories)),
	}

	for category, terms := range termCategories {
		count := 0
		for _, term := range terms {
			count += strings.Count(lower, term)
		}
		if count > 0 {
			m.TermCounts[category] = count
		}
	}

	m.Complexity = complexityScore(m, words)
	return m
}

// complexityScore estimates document complexity on a 0-10 scale from sentence
// length, numeric density, table presence, and technical term density.
func complexityScore(m *Metadata, words []string) float64 {
	if m.WordCount == 0 {
		return 0
	}

	score := 0.0

	// Long sentences read harder. 20 words per sentence maps to ~3 points.
	if m.SentenceCount > 0 {
		avgLen := float64(m.WordCount) / float64(m.SentenceCount)
		score += min(avgLen/20.0*3.0, 3.0)
	}

	// Numeric density: schedules and benefit tables carry many figures.
	numeric := 0
	for _, w := range words {
		if numericRe.MatchString(w) {
			numeric++
		}
	}
	score += min(float64(numeric)/float64(m.WordCount)*20.0, 3.0)

	// Technical vocabulary density.
	terms := 0
	for _, c := range m.TermCounts {
		terms += c
	}
	score += min(float64(terms)/float64(m.WordCount)*40.0, 3.0)

	if m.TableCount > 0 {
		score += 1.0
	}

	return min(score, 10.0)
}
