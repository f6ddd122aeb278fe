package reasoning

import (
	"fmt"
	"strings"

	"github.com/lavesh00/HackRx-6/query"
	"github.com/lavesh00/HackRx-6/retrieval"
)

const systemPrompt = `You are an expert insurance policy analyst. You answer questions about insurance policy documents using only the document excerpts provided. You never invent clauses, numbers, or conditions that are not in the excerpts.`

// buildContext renders the fused chunks as numbered sections, each tagged
// with the query variant that retrieved it.
func buildContext(chunks []retrieval.FusedResult) string {
	var b strings.Builder
	for i, c := range chunks {
		fmt.Fprintf(&b, "[SECTION %d]\n", i+1)
		fmt.Fprintf(&b, "[MATCHED: %s]\n", truncate(c.MatchedQuery, 80))
		b.WriteString(strings.TrimSpace(c.Content))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// typeInstructions tell the model what to extract for each question type.
var typeInstructions = map[query.Type]string{
	query.TypeNumerical: `Extract the exact number, amount, percentage, or limit from the document. Quote the figure exactly as written, including units and any conditions attached to it.`,
	query.TypeUIN: `Find the Unique Identification Number (UIN) of the product. UINs are alphanumeric codes such as ICIHLIP22012V012223. Quote the code exactly, character for character.`,
	query.TypeAirAmbulance: `Answer about air ambulance coverage: whether it is covered, any distance or amount limits, and the conditions under which it applies.`,
	query.TypeMaternity: `Answer about maternity, well-mother, or well-baby benefits: what is covered, waiting periods, limits, and conditions.`,
	query.TypeWaiting: `State the waiting period exactly as the document specifies it, including its duration in months or years and what it applies to.`,
	query.TypeGrace: `State the grace period for premium payment exactly as the document specifies it, including its duration and any conditions on continuity of coverage.`,
	query.TypeExclusion: `List what the document excludes from coverage relevant to the question. Include the specific exclusion wording and any exceptions to the exclusion.`,
	query.TypeDefinition: `Give the document's own definition of the term, quoting the defining language. If the document says a term "means" or "shall mean" something, use that wording.`,
	query.TypeTable: `Read the table data carefully. Identify the correct row and column for the plan, zone, or tier asked about and report the value at that intersection.`,
	query.TypeCoverage: `State whether the item is covered, under what conditions, with what limits, and note any related exclusions or waiting periods that apply.`,
	query.TypeGeneral: `Answer the question directly using the document excerpts. Be specific and cite the relevant policy terms.`,
}

// typeFormats constrain the answer shape per question type.
var typeFormats = map[query.Type]string{
	query.TypeNumerical:    `Answer in one or two sentences containing the exact figure.`,
	query.TypeUIN:          `Answer with the UIN code and the product name if available.`,
	query.TypeAirAmbulance: `Answer in two to three sentences covering eligibility, limits, and conditions.`,
	query.TypeMaternity:    `Answer in two to four sentences covering benefits, waiting periods, and limits.`,
	query.TypeWaiting:      `Answer in one or two sentences stating the period and what it applies to.`,
	query.TypeGrace:        `Answer in one or two sentences stating the period and its effect on coverage.`,
	query.TypeExclusion:    `Answer with the exclusions relevant to the question, each stated precisely.`,
	query.TypeDefinition:   `Answer with the definition in one or two sentences.`,
	query.TypeTable:        `Answer with the specific value and the plan or zone it belongs to.`,
	query.TypeCoverage:     `Answer in one to three sentences stating coverage, conditions, and limits.`,
	query.TypeGeneral:      `Answer in one to three precise sentences.`,
}

// buildPrompt assembles the full user prompt: context, type-specific
// instruction and format, the question, and the answer cue.
func buildPrompt(question string, qtype query.Type, contextStr string) string {
	instruction, ok := typeInstructions[qtype]
	if !ok {
		instruction = typeInstructions[query.TypeGeneral]
	}
	format, ok := typeFormats[qtype]
	if !ok {
		format = typeFormats[query.TypeGeneral]
	}

	var b strings.Builder
	b.WriteString("DOCUMENT EXCERPTS:\n\n")
	b.WriteString(contextStr)
	b.WriteString("\n\nINSTRUCTIONS:\n")
	b.WriteString(instruction)
	b.WriteString("\n")
	b.WriteString(format)
	b.WriteString("\nOnly after thoroughly analyzing every section, if the excerpts still do not contain what is needed, answer \"Information not available in the provided document.\" instead of guessing.\n")
	b.WriteString("\nQUESTION: ")
	b.WriteString(question)
	b.WriteString("\n\nYOUR ANSWER:")
	return b.String()
}
