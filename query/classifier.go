package query

import "regexp"

// typePatterns maps each question type to the regexes that vote for it.
// Classification is a plain vote count with tiePriority breaking ties.
var typePatterns = map[Type][]*regexp.Regexp{
	TypeNumerical: compilePatterns(
		`\bhow much\b`,
		`\bhow many\b`,
		`\bwhat (?:is|are) the (?:amount|limit|percentage|rate)\b`,
		`\d+\s*%`,
		`\bpercent(?:age)?\b`,
		`\bmaximum\b.*\b(?:amount|limit|payable)\b`,
		`\bsub-?limit\b`,
		`\broom rent\b`,
		`\bicu charges\b`,
		`\b(?:lakhs?|crores?)\b`,
	),
	TypeUIN: compilePatterns(
		`\buin\b`,
		`unique identification number`,
		`\b[A-Z]{3,}[0-9]{2,}[A-Z0-9]*\b`,
		`product identification`,
	),
	TypeAirAmbulance: compilePatterns(
		`air[\s\-]*ambulance`,
		`\bairlift\b`,
		`aerial (?:evacuation|transport)`,
		`emergency air transport`,
	),
	TypeMaternity: compilePatterns(
		`\bmaternity\b`,
		`well[\s\-]*baby`,
		`well[\s\-]*mother`,
		`\bpregnancy\b`,
		`\bchildbirth\b`,
		`\bnew\s*born\b`,
		`\bdelivery\b`,
	),
	TypeWaiting: compilePatterns(
		`waiting period`,
		`pre[\s\-]*existing`,
		`\bped\b`,
		`specific (?:disease|illness)`,
		`initial waiting`,
	),
	TypeGrace: compilePatterns(
		`grace period`,
		`premium (?:payment|due)`,
		`renew(?:al|ing).*premium`,
		`premium.*renew(?:al|ing)`,
		`late payment`,
	),
	TypeExclusion: compilePatterns(
		`\bexclusions?\b`,
		`\bexcluded?\b`,
		`not covered`,
		`non[\s\-]*payable`,
		`\blimitations?\b`,
	),
	TypeDefinition: compilePatterns(
		`\bdefines?\b`,
		`\bdefinitions?\b`,
		`\bdefined\b`,
		`how (?:is|does) .{1,60} defined`,
		`what (?:is|does) .{1,60} mean`,
		`meaning of`,
	),
	TypeTable: compilePatterns(
		`\btable\b`,
		`schedule of benefits`,
		`benefit schedule`,
		`\bplan [abc]\b`,
		`\bzone\b`,
		`\btier\b`,
	),
	TypeCoverage: compilePatterns(
		`\bcover(?:s|ed|age)?\b`,
		`\bbenefits?\b`,
		`\bindemnif`,
		`\breimburse`,
		`\beligible\b`,
	),
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

// Classify returns the question type with the most pattern votes. Ties go
// to the more specific type per tiePriority; no votes at all means general.
func Classify(question string) Type {
	votes := make(map[Type]int, len(typePatterns))
	for typ, patterns := range typePatterns {
		for _, re := range patterns {
			if re.MatchString(question) {
				votes[typ]++
			}
		}
	}

	best := TypeGeneral
	bestVotes := 0
	for _, typ := range tiePriority {
		if v := votes[typ]; v > bestVotes {
			best = typ
			bestVotes = v
		}
	}
	return best
}

// ClassifyTop returns up to n question types ordered by vote count, with
// tiePriority as the secondary order. Used by clause matching to consider
// adjacent interpretations of a question.
func ClassifyTop(question string, n int) []Type {
	votes := make(map[Type]int, len(typePatterns))
	for typ, patterns := range typePatterns {
		for _, re := range patterns {
			if re.MatchString(question) {
				votes[typ]++
			}
		}
	}

	var ranked []Type
	for _, typ := range tiePriority {
		if votes[typ] > 0 {
			ranked = append(ranked, typ)
		}
	}
	// Sort by votes descending; tiePriority order is preserved for equal
	// votes because the sort below is stable over the priority-ordered list.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && votes[ranked[j]] > votes[ranked[j-1]]; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if len(ranked) == 0 {
		ranked = []Type{TypeGeneral}
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
