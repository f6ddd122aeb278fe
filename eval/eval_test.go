package eval

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/lavesh00/HackRx-6/store"
)

func TestFactRecall(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		facts   []string
		want    float64
		missing int
	}{
		{
			"all facts present",
			"A grace period of thirty days applies.",
			[]string{"grace period", "thirty days"},
			1.0, 0,
		},
		{
			"half the facts present",
			"A grace period applies.",
			[]string{"grace period", "thirty days"},
			0.5, 1,
		},
		{
			"case insensitive",
			"THE GRACE PERIOD IS THIRTY DAYS.",
			[]string{"grace period"},
			1.0, 0,
		},
		{
			"unicode hyphen matches ascii fact",
			"Coverage requires thirty\u2011six months of enrollment.",
			[]string{"thirty-six months"},
			1.0, 0,
		},
		{
			"no facts expected",
			"anything",
			nil,
			1.0, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := factRecall(tt.answer, tt.facts)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("factRecall() = %v, want %v", got, tt.want)
			}
			if len(missing) != tt.missing {
				t.Errorf("missing = %v, want %d facts", missing, tt.missing)
			}
		})
	}
}

func TestKeywordRecall(t *testing.T) {
	got := keywordRecall(
		"What is the grace period for premium payment?",
		"The grace period for premium payment is thirty days.")
	if got != 1.0 {
		t.Errorf("keywordRecall() = %v, want 1.0 for a fully on-topic answer", got)
	}

	got = keywordRecall("What is the grace period?", "Completely unrelated text.")
	if got != 0 {
		t.Errorf("keywordRecall() = %v, want 0 for an off-topic answer", got)
	}
}

func TestNormalizeAnswerText(t *testing.T) {
	in := "thirty\u2011six\u00A0months\u200B"
	want := "thirty-six months"
	if got := normalizeAnswerText(in); got != want {
		t.Errorf("normalizeAnswerText() = %q, want %q", got, want)
	}
}

// scriptedPipeline returns fixed answers keyed by question.
type scriptedPipeline struct {
	answers map[string]string
	batches [][]string
}

func (s *scriptedPipeline) ProcessDocumentQueries(_ context.Context, _ string, questions []string) ([]string, error) {
	s.batches = append(s.batches, questions)
	out := make([]string, len(questions))
	for i, q := range questions {
		out[i] = s.answers[q]
	}
	return out, nil
}

func (s *scriptedPipeline) ProcessDocument(context.Context, string) (string, error) { return "d", nil }
func (s *scriptedPipeline) RemoveDocument(context.Context, string) error            { return nil }
func (s *scriptedPipeline) Stats(context.Context) (*store.DBStats, error)           { return &store.DBStats{}, nil }
func (s *scriptedPipeline) Close() error                                            { return nil }

func TestEvaluatorRun(t *testing.T) {
	ds := Dataset{
		Name:        "mini",
		DocumentURL: "https://example.com/policy.pdf",
		Tests: []TestCase{
			{Question: "q1", ExpectedFacts: []string{"thirty days"}, Category: "grace"},
			{Question: "q2", ExpectedFacts: []string{"36 months", "continuous"}, Category: "waiting"},
			{Question: "q3", ExpectedFacts: []string{"not in any answer"}, Category: "coverage"},
		},
	}
	p := &scriptedPipeline{answers: map[string]string{
		"q1": "A grace period of thirty days applies.",
		"q2": "Covered after 36 months.",
		"q3": "Something else entirely.",
	}}

	report, err := NewEvaluator(p).Run(context.Background(), ds)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.TotalTests != 3 {
		t.Errorf("TotalTests = %d, want 3", report.TotalTests)
	}
	// q1 recall 1.0, q2 recall 0.5, q3 recall 0.
	if report.Passed != 2 || report.Failed != 1 {
		t.Errorf("passed/failed = %d/%d, want 2/1", report.Passed, report.Failed)
	}
	want := (1.0 + 0.5 + 0.0) / 3
	if math.Abs(report.MeanFactRecall-want) > 1e-9 {
		t.Errorf("MeanFactRecall = %v, want %v", report.MeanFactRecall, want)
	}
}

func TestEvaluatorBatches(t *testing.T) {
	var tests []TestCase
	for i := 0; i < 25; i++ {
		tests = append(tests, TestCase{
			Question:      strings.Repeat("q", i+3),
			ExpectedFacts: []string{"x"},
		})
	}
	p := &scriptedPipeline{answers: map[string]string{}}

	if _, err := NewEvaluator(p).Run(context.Background(), Dataset{
		Name: "big", DocumentURL: "https://example.com/p.pdf", Tests: tests,
	}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(p.batches) != 2 {
		t.Fatalf("sent %d batches, want 2", len(p.batches))
	}
	if len(p.batches[0]) != 20 || len(p.batches[1]) != 5 {
		t.Errorf("batch sizes = %d/%d, want 20/5", len(p.batches[0]), len(p.batches[1]))
	}
}

func TestPolicyDataset(t *testing.T) {
	ds := PolicyDataset("https://example.com/policy.pdf")
	if ds.DocumentURL == "" || len(ds.Tests) == 0 {
		t.Fatalf("PolicyDataset() is empty")
	}
	for _, tc := range ds.Tests {
		if tc.Question == "" || len(tc.ExpectedFacts) == 0 || tc.Category == "" {
			t.Errorf("incomplete test case: %+v", tc)
		}
	}
}
