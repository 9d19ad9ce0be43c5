package aggregate

import (
	"sort"

	"github.com/lexora-cloud/lexsearch/internal/domain/search/hit"
)

// MaxResults caps the merged exploration result set.
const MaxResults = 24

// SubQueryStat records the outcome of one exploration sub-query. A failed
// sub-query carries its error note and a zero count; it never aborts the
// sibling sub-queries.
type SubQueryStat struct {
	Query string
	Count int
	Err   string
}

// ResultSet is the deduplicated union of hits from several sub-queries.
type ResultSet struct {
	hits  []hit.Hit
	stats []SubQueryStat
}

// Merge deduplicates hits by item identifier. When an identifier appears
// under several sub-queries the hit with the highest score is retained;
// score ties keep the first-seen hit. The merged set is sorted by score
// descending and capped at MaxResults.
func Merge(batches [][]hit.Hit, stats []SubQueryStat) ResultSet {
	best := make(map[string]hit.Hit)
	order := make([]string, 0)

	for _, batch := range batches {
		for _, h := range batch {
			cur, ok := best[h.ID()]
			if !ok {
				best[h.ID()] = h
				order = append(order, h.ID())
				continue
			}
			if h.Score() > cur.Score() {
				best[h.ID()] = h
			}
		}
	}

	merged := make([]hit.Hit, 0, len(order))
	for _, id := range order {
		merged = append(merged, best[id])
	}

	// Stable sort keeps first-seen order among equal scores deterministic.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score() > merged[j].Score()
	})

	if len(merged) > MaxResults {
		merged = merged[:MaxResults]
	}

	return ResultSet{hits: merged, stats: stats}
}

// Hits returns the deduplicated hits in descending score order.
func (r ResultSet) Hits() []hit.Hit { return r.hits }

// Stats returns the per-sub-query outcomes in execution order.
func (r ResultSet) Stats() []SubQueryStat { return r.stats }
