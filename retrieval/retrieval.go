// Package retrieval runs multi-pass vector search over query variants and
// fuses vector, clause, and pass signals into a final context ranking.
package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lavesh00/HackRx-6/query"
	"github.com/lavesh00/HackRx-6/store"
)

// Embedder turns texts into vectors. *llm.Driver satisfies this.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorSearcher runs scoped KNN search. *store.Store satisfies this.
type VectorSearcher interface {
	VectorSearch(ctx context.Context, docID string, embedding []float32, k int, threshold float64) ([]store.RetrievalResult, error)
}

// pass describes one retrieval sweep over the variants. The second pass runs
// with a higher threshold and a dampened boost to surface precise matches
// the broad pass may have buried.
type pass struct {
	threshold float64
	k         int
	boost     float64
}

var passes = []pass{
	{threshold: 0.30, k: 6, boost: 1.0},
	{threshold: 0.40, k: 4, boost: 0.8},
}

// maxMerged caps the candidate pool handed to clause matching.
const maxMerged = 15

// Result is one retrieved chunk with its best effective score across all
// passes and variants, tagged with the variant and pass that produced it.
type Result struct {
	ChunkID      int64
	Content      string
	Position     int
	Score        float64
	MatchedQuery string
	Pass         int
}

// Engine retrieves candidate chunks for a question's variants.
type Engine struct {
	searcher VectorSearcher
	embedder Embedder
	logger   *slog.Logger
}

func NewEngine(searcher VectorSearcher, embedder Embedder, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{searcher: searcher, embedder: embedder, logger: logger}
}

// Search embeds every variant once, then sweeps both passes over them.
// Later variants search with smaller k, higher thresholds, and decayed
// scores so the original phrasing dominates. Per-chunk scores are merged by
// maximum; the top results by effective score are returned.
//
// A single failing variant is logged and skipped; Search fails only when
// embedding fails outright.
func (e *Engine) Search(ctx context.Context, docID string, variants []query.Variant) ([]Result, error) {
	if len(variants) == 0 {
		return nil, nil
	}

	texts := make([]string, len(variants))
	for i, v := range variants {
		texts[i] = v.Text
	}
	embeddings, err := e.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed variants: %w", err)
	}
	if len(embeddings) != len(variants) {
		return nil, fmt.Errorf("embed variants: got %d vectors for %d texts", len(embeddings), len(variants))
	}

	merged := make(map[int64]Result)
	for passIdx, p := range passes {
		for i, v := range variants {
			k := p.k - i/3
			if k < 3 {
				k = 3
			}
			threshold := p.threshold + 0.02*float64(i)
			if threshold > 0.70 {
				threshold = 0.70
			}
			decay := 1 - 0.02*float64(i)

			rows, err := e.searcher.VectorSearch(ctx, docID, embeddings[i], k, threshold)
			if err != nil {
				e.logger.Warn("variant search failed",
					"doc", docID, "pass", passIdx, "variant", i, "error", err)
				continue
			}

			for _, row := range rows {
				eff := row.Score * p.boost * decay
				prev, ok := merged[row.ChunkID]
				if ok && prev.Score >= eff {
					continue
				}
				merged[row.ChunkID] = Result{
					ChunkID:      row.ChunkID,
					Content:      row.Content,
					Position:     row.Position,
					Score:        eff,
					MatchedQuery: v.Text,
					Pass:         passIdx,
				}
			}
		}
	}

	results := make([]Result, 0, len(merged))
	for _, r := range merged {
		results = append(results, r)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ChunkID < results[j].ChunkID
	})
	if len(results) > maxMerged {
		results = results[:maxMerged]
	}
	return results, nil
}
