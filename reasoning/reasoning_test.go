package reasoning

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/lavesh00/HackRx-6/llm"
	"github.com/lavesh00/HackRx-6/query"
	"github.com/lavesh00/HackRx-6/retrieval"
)

type fakeGenerator struct {
	lastReq llm.GenerateRequest
	content string
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Content: f.content, TotalTokens: 42}, nil
}

func testChunks() []retrieval.FusedResult {
	return []retrieval.FusedResult{
		{ChunkID: 1, Content: "A grace period of thirty days is allowed for premium payment.", MatchedQuery: "grace period premium payment", Score: 0.9},
		{ChunkID: 2, Content: "The policy shall be renewable lifelong.", MatchedQuery: "renewal conditions", Score: 0.7},
	}
}

func TestAnswerBuildsTypedPrompt(t *testing.T) {
	gen := &fakeGenerator{content: "A grace period of thirty days is provided."}
	a := NewAnswerer(gen, "gemini-2.0-flash")

	ans, err := a.Answer(context.Background(), "What is the grace period?", query.TypeGrace, testChunks())
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	prompt := gen.lastReq.Prompt
	for _, want := range []string{
		"[SECTION 1]",
		"[SECTION 2]",
		"[MATCHED: grace period premium payment]",
		"QUESTION: What is the grace period?",
		// The fallback instruction uses the exact phrase the confidence
		// scorer keys its low-confidence path on.
		`"Information not available in the provided document."`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !strings.HasSuffix(prompt, "YOUR ANSWER:") {
		t.Errorf("prompt does not end with the answer cue")
	}
	if gen.lastReq.System != systemPrompt {
		t.Errorf("system prompt not set")
	}
	if gen.lastReq.Model != "gemini-2.0-flash" {
		t.Errorf("model = %q, want gemini-2.0-flash", gen.lastReq.Model)
	}
	if ans.ChunksUsed != 2 {
		t.Errorf("ChunksUsed = %d, want 2", ans.ChunksUsed)
	}
	if ans.TotalTokens != 42 {
		t.Errorf("TotalTokens = %d, want 42", ans.TotalTokens)
	}
}

func TestAnswerNoChunks(t *testing.T) {
	a := NewAnswerer(&fakeGenerator{}, "m")
	if _, err := a.Answer(context.Background(), "q", query.TypeGeneral, nil); err == nil {
		t.Errorf("Answer() with no chunks: error = nil, want error")
	}
}

func TestAnswerGenerateFailure(t *testing.T) {
	a := NewAnswerer(&fakeGenerator{err: errors.New("quota")}, "m")
	if _, err := a.Answer(context.Background(), "q", query.TypeGeneral, testChunks()); err == nil {
		t.Errorf("Answer() error = nil, want generate failure propagated")
	}
}

func TestGenerationConfig(t *testing.T) {
	tests := []struct {
		qtype query.Type
		want  llm.GenerationConfig
	}{
		{query.TypeGeneral, llm.GenerationConfig{Temperature: 0.10, TopP: 0.80, TopK: 10, MaxOutputTokens: 2048}},
		{query.TypeNumerical, llm.GenerationConfig{Temperature: 0.05, TopP: 0.80, TopK: 5, MaxOutputTokens: 2048}},
		{query.TypeUIN, llm.GenerationConfig{Temperature: 0.05, TopP: 0.80, TopK: 5, MaxOutputTokens: 2048}},
		{query.TypeExclusion, llm.GenerationConfig{Temperature: 0.10, TopP: 0.80, TopK: 10, MaxOutputTokens: 3000}},
		{query.TypeDefinition, llm.GenerationConfig{Temperature: 0.10, TopP: 0.80, TopK: 10, MaxOutputTokens: 2500}},
		{query.TypeCoverage, llm.GenerationConfig{Temperature: 0.10, TopP: 0.80, TopK: 10, MaxOutputTokens: 2500}},
	}
	for _, tt := range tests {
		t.Run(string(tt.qtype), func(t *testing.T) {
			if got := generationConfig(tt.qtype); got != tt.want {
				t.Errorf("generationConfig(%q) = %+v, want %+v", tt.qtype, got, tt.want)
			}
		})
	}
}

func TestPostProcess(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		qtype query.Type
		want  string
	}{
		{
			"strips canned prefix",
			"According to the document, the grace period is thirty days.",
			query.TypeGrace,
			"The grace period is thirty days.",
		},
		{
			"strips stacked prefixes",
			"Based on the context, Answer: the waiting period is 36 months",
			query.TypeWaiting,
			"The waiting period is 36 months.",
		},
		{
			"adds terminal period and capitalizes",
			"the policy covers cataract surgery",
			query.TypeCoverage,
			"The policy covers cataract surgery.",
		},
		{
			"rewrites percent words for numerical answers",
			"The co-payment is 10 percent of the claim.",
			query.TypeNumerical,
			"The co-payment is 10% of the claim.",
		},
		{
			"leaves percent words alone for other types",
			"The co-payment is 10 percent of the claim.",
			query.TypeCoverage,
			"The co-payment is 10 percent of the claim.",
		},
		{
			"empty input",
			"   ",
			query.TypeGeneral,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := postProcess(tt.raw, tt.qtype); got != tt.want {
				t.Errorf("postProcess() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreAnswer(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		qtype query.Type
		want  float64
	}{
		{
			"no information canned answer",
			"Information not available in the document.",
			query.TypeGeneral,
			0.1,
		},
		{
			"short factual with digit",
			"The grace period is 30 days.",
			query.TypeGrace,
			0.6,
		},
		{
			"long specific answer",
			"The policy covers exactly 24 months of continuous coverage for pre-existing conditions.",
			query.TypeWaiting,
			0.9,
		},
		{
			"numerical with percentage",
			"The co-payment is 10% of the admissible claim amount applicable to all claims.",
			query.TypeNumerical,
			0.9,
		},
		{
			"uin shaped answer",
			"The UIN is ICIHLIP22012V012223.",
			query.TypeUIN,
			0.75,
		},
		{
			"uin code in a general answer",
			"Product code ICIHLIP22012V012223 applies.",
			query.TypeGeneral,
			0.75,
		},
		{
			"hedged answer",
			"Coverage may apply.",
			query.TypeCoverage,
			0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreAnswer(tt.text, tt.qtype); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("scoreAnswer(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestBuildContextTruncatesMatchedQuery(t *testing.T) {
	long := strings.Repeat("waiting period ", 10) // over 80 chars
	ctx := buildContext([]retrieval.FusedResult{
		{ChunkID: 1, Content: "text", MatchedQuery: long},
	})
	if strings.Contains(ctx, long) {
		t.Errorf("matched query was not truncated")
	}
	if !strings.Contains(ctx, "...") {
		t.Errorf("truncated query missing ellipsis")
	}
}
