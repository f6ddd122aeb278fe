package eval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	hackrx "github.com/lavesh00/HackRx-6"
)

// passThreshold is the minimum fact recall for a test to count as passed.
const passThreshold = 0.5

// batchSize matches the pipeline's per-request question cap.
const batchSize = 20

// Evaluator runs evaluation datasets against a QA pipeline.
type Evaluator struct {
	pipeline hackrx.Pipeline
}

func NewEvaluator(p hackrx.Pipeline) *Evaluator {
	return &Evaluator{pipeline: p}
}

// TestResult records the outcome of a single test case.
type TestResult struct {
	Question      string   `json:"question"`
	Category      string   `json:"category"`
	Answer        string   `json:"answer"`
	Passed        bool     `json:"passed"`
	FactRecall    float64  `json:"fact_recall"`
	KeywordRecall float64  `json:"keyword_recall"`
	MissingFacts  []string `json:"missing_facts,omitempty"`
}

// Report holds the results of an evaluation run.
type Report struct {
	Dataset        string        `json:"dataset"`
	TotalTests     int           `json:"total_tests"`
	Passed         int           `json:"passed"`
	Failed         int           `json:"failed"`
	MeanFactRecall float64       `json:"mean_fact_recall"`
	Results        []TestResult  `json:"results"`
	RunTime        time.Duration `json:"run_time"`
}

// Run answers every test question against the dataset's document and scores
// the answers by expected-fact containment. Questions are sent in batches
// that respect the pipeline's request limits.
func (e *Evaluator) Run(ctx context.Context, ds Dataset) (*Report, error) {
	if ds.DocumentURL == "" {
		return nil, fmt.Errorf("eval: dataset %q has no document URL", ds.Name)
	}

	start := time.Now()
	report := &Report{Dataset: ds.Name, TotalTests: len(ds.Tests)}

	for begin := 0; begin < len(ds.Tests); begin += batchSize {
		end := begin + batchSize
		if end > len(ds.Tests) {
			end = len(ds.Tests)
		}
		batch := ds.Tests[begin:end]

		questions := make([]string, len(batch))
		for i, tc := range batch {
			questions[i] = tc.Question
		}

		answers, err := e.pipeline.ProcessDocumentQueries(ctx, ds.DocumentURL, questions)
		if err != nil {
			return nil, fmt.Errorf("eval: batch starting at %d: %w", begin, err)
		}

		for i, tc := range batch {
			recall, missing := factRecall(answers[i], tc.ExpectedFacts)
			result := TestResult{
				Question:      tc.Question,
				Category:      tc.Category,
				Answer:        answers[i],
				Passed:        recall >= passThreshold,
				FactRecall:    recall,
				KeywordRecall: keywordRecall(tc.Question, answers[i]),
				MissingFacts:  missing,
			}
			if result.Passed {
				report.Passed++
			} else {
				report.Failed++
				slog.Info("eval: test failed",
					"question", tc.Question, "recall", recall, "missing", missing)
			}
			report.MeanFactRecall += recall
			report.Results = append(report.Results, result)
		}
	}

	if report.TotalTests > 0 {
		report.MeanFactRecall /= float64(report.TotalTests)
	}
	report.RunTime = time.Since(start)
	return report, nil
}
