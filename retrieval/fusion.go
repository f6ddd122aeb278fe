package retrieval

import (
	"sort"

	"github.com/lavesh00/HackRx-6/query"
)

// Fusion weights. Vector similarity dominates, clause confidence refines,
// and a small bonus favors chunks found by the broad first pass.
const (
	weightVector = 0.6
	weightClause = 0.3
	weightPass   = 0.1
)

// FusedResult is a context chunk with its final combined score.
type FusedResult struct {
	ChunkID          int64
	Content          string
	Position         int
	MatchedQuery     string
	Pass             int
	VectorScore      float64
	ClauseConfidence float64
	Score            float64
}

// firstPassBonus rewards chunks found by the broad first pass.
const firstPassBonus = 0.1

// Fuse combines vector scores with clause confidences and ranks the results.
// Every retrieved chunk stays in: chunks the clause matcher did not match
// score with confidence 0 rather than being dropped. Dense question types
// get a wider context window because their answers span multiple clauses.
func Fuse(results []Result, clauseConf map[int64]float64, qtype query.Type) []FusedResult {
	fused := make([]FusedResult, 0, len(results))
	for _, r := range results {
		conf := clauseConf[r.ChunkID]
		passBonus := 0.0
		if r.Pass == 0 {
			passBonus = firstPassBonus
		}
		fused = append(fused, FusedResult{
			ChunkID:          r.ChunkID,
			Content:          r.Content,
			Position:         r.Position,
			MatchedQuery:     r.MatchedQuery,
			Pass:             r.Pass,
			VectorScore:      r.Score,
			ClauseConfidence: conf,
			Score:            weightVector*r.Score + weightClause*conf + weightPass*passBonus,
		})
	}

	sort.SliceStable(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		return fused[i].ChunkID < fused[j].ChunkID
	})

	if limit := contextLimit(qtype); len(fused) > limit {
		fused = fused[:limit]
	}
	return fused
}

// contextLimit returns how many chunks of context a question type gets.
func contextLimit(qtype query.Type) int {
	switch qtype {
	case query.TypeExclusion, query.TypeTable, query.TypeCoverage, query.TypeMaternity:
		return 8
	default:
		return 5
	}
}
