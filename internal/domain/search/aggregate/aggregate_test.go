package aggregate

import (
	"fmt"
	"testing"

	"github.com/lexora-cloud/lexsearch/internal/domain/search/hit"
)

func makeHit(id string, score float64) hit.Hit {
	return hit.New(id, "title-"+id, "", 10, "", "", "", nil, "in_stock", score)
}

func TestMerge_DedupKeepsHighestScore(t *testing.T) {
	batches := [][]hit.Hit{
		{makeHit("a", 0.5), makeHit("b", 0.9)},
		{makeHit("a", 0.8), makeHit("c", 0.3)},
	}

	rs := Merge(batches, nil)

	hits := rs.Hits()
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	for _, h := range hits {
		if h.ID() == "a" && h.Score() != 0.8 {
			t.Errorf("duplicate id should keep highest score, got %v", h.Score())
		}
	}
}

func TestMerge_ScoreTieKeepsFirstSeen(t *testing.T) {
	first := makeHit("a", 0.5).WithSubQuery("first")
	second := makeHit("a", 0.5).WithSubQuery("second")

	rs := Merge([][]hit.Hit{{first}, {second}}, nil)

	hits := rs.Hits()
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].SubQuery() != "first" {
		t.Errorf("score tie should keep first-seen hit, got %q", hits[0].SubQuery())
	}
}

func TestMerge_SortedByScoreDescending(t *testing.T) {
	batches := [][]hit.Hit{
		{makeHit("a", 0.1), makeHit("b", 0.9)},
		{makeHit("c", 0.5)},
	}

	hits := Merge(batches, nil).Hits()

	for i := 1; i < len(hits); i++ {
		if hits[i].Score() > hits[i-1].Score() {
			t.Fatalf("hits not sorted descending at %d: %v > %v", i, hits[i].Score(), hits[i-1].Score())
		}
	}
}

func TestMerge_CappedAtMaxResults(t *testing.T) {
	var batch []hit.Hit
	for i := 0; i < MaxResults+10; i++ {
		batch = append(batch, makeHit(fmt.Sprintf("id-%d", i), float64(i)/100))
	}

	hits := Merge([][]hit.Hit{batch}, nil).Hits()

	if len(hits) != MaxResults {
		t.Fatalf("expected %d hits, got %d", MaxResults, len(hits))
	}
	// Cap keeps the best-scoring hits.
	if hits[0].Score() < hits[len(hits)-1].Score() {
		t.Error("cap should retain the highest scores")
	}
}

func TestMerge_EmptyBatches(t *testing.T) {
	stats := []SubQueryStat{
		{Query: "q1", Count: 0, Err: "backend timeout"},
		{Query: "q2", Count: 0},
	}

	rs := Merge([][]hit.Hit{{}, nil}, stats)

	if len(rs.Hits()) != 0 {
		t.Fatalf("expected no hits, got %d", len(rs.Hits()))
	}
	if len(rs.Stats()) != 2 {
		t.Fatalf("expected 2 stats, got %d", len(rs.Stats()))
	}
	if rs.Stats()[0].Err != "backend timeout" {
		t.Errorf("stats should preserve error notes, got %q", rs.Stats()[0].Err)
	}
}
