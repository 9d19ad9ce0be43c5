package search

import (
	"errors"
	"math"
	"testing"

	"github.com/lexora-cloud/lexsearch/internal/domain"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hit"
)

func score(v float64) *float64 { return &v }

func TestProductHits_ConvertsSource(t *testing.T) {
	raw := []rawHit{{
		ID:    "p1",
		Score: score(0.83),
		Source: map[string]any{
			"title":               "Oxford Shoes",
			"description":         "Leather dress shoes",
			"price":               129.99,
			"brand":               "Acme",
			"category":            "Footwear",
			"rating":              4.5,
			"availability_status": "in_stock",
			"product_images_urls": []any{"https://img.example/1.jpg", "https://img.example/2.jpg"},
		},
	}}

	hits, err := productHits(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := hits[0]
	if h.ID() != "p1" || h.Title() != "Oxford Shoes" || h.Price() != 129.99 {
		t.Errorf("field conversion mismatch: %+v", h)
	}
	if h.ImageURL() != "https://img.example/1.jpg" {
		t.Errorf("first image url expected, got %q", h.ImageURL())
	}
	if h.Rating() == nil || *h.Rating() != 4.5 {
		t.Errorf("rating mismatch: %v", h.Rating())
	}
}

func TestProductHits_MissingRatingIsNil(t *testing.T) {
	raw := []rawHit{{ID: "p1", Score: score(0.5), Source: map[string]any{"title": "x"}}}

	hits, err := productHits(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits[0].Rating() != nil {
		t.Error("absent rating must convert to nil")
	}
}

func TestProductHits_RejectsMalformedHit(t *testing.T) {
	cases := []rawHit{
		{Score: score(0.5)},
		{ID: "p1"},
	}
	for _, r := range cases {
		if _, err := productHits([]rawHit{r}); !errors.Is(err, domain.ErrMalformedProviderResponse) {
			t.Errorf("expected ErrMalformedProviderResponse, got %v", err)
		}
	}
}

func TestKnowledgeChunks_ContentFieldFallbacks(t *testing.T) {
	cases := []struct {
		name   string
		source map[string]any
		want   string
	}{
		{"content", map[string]any{"content": "a"}, "a"},
		{"chunk_text", map[string]any{"chunk_text": "b"}, "b"},
		{"text", map[string]any{"text": "c"}, "c"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chunks, err := knowledgeChunks([]rawHit{{ID: "k1", Score: score(0.5), Source: tc.source}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if chunks[0].Content() != tc.want {
				t.Errorf("content = %q, want %q", chunks[0].Content(), tc.want)
			}
		})
	}
}

func TestNormalizeHitScores_CosinePassthrough(t *testing.T) {
	hits := []hit.Hit{
		hit.New("a", "", "", 0, "", "", "", nil, "", 0.91),
		hit.New("b", "", "", 0, "", "", "", nil, "", 0.42),
	}

	out := normalizeHitScores(hits)

	if out[0].Score() != 0.91 || out[1].Score() != 0.42 {
		t.Errorf("in-range scores must pass through unchanged: %v %v", out[0].Score(), out[1].Score())
	}
}

func TestNormalizeHitScores_BM25MinMax(t *testing.T) {
	hits := []hit.Hit{
		hit.New("a", "", "", 0, "", "", "", nil, "", 14.2),
		hit.New("b", "", "", 0, "", "", "", nil, "", 7.1),
		hit.New("c", "", "", 0, "", "", "", nil, "", 1.0),
	}

	out := normalizeHitScores(hits)

	if out[0].Score() != 1.0 {
		t.Errorf("top score should normalize to 1, got %v", out[0].Score())
	}
	if out[2].Score() != 0.0 {
		t.Errorf("bottom score should normalize to 0, got %v", out[2].Score())
	}
	mid := (7.1 - 1.0) / (14.2 - 1.0)
	if math.Abs(out[1].Score()-mid) > 1e-9 {
		t.Errorf("mid score = %v, want %v", out[1].Score(), mid)
	}
	for _, h := range out {
		if h.Score() < 0 || h.Score() > 1 {
			t.Errorf("score %v out of [0,1]", h.Score())
		}
	}
}

func TestNormalizeHitScores_SingleOutOfRangeHit(t *testing.T) {
	hits := []hit.Hit{hit.New("a", "", "", 0, "", "", "", nil, "", 9.3)}

	out := normalizeHitScores(hits)

	if out[0].Score() != 1.0 {
		t.Errorf("single out-of-range hit should score 1, got %v", out[0].Score())
	}
}

func TestNormalizeChunkScores(t *testing.T) {
	chunks, err := knowledgeChunks([]rawHit{
		{ID: "k1", Score: score(8.0), Source: map[string]any{"content": "x"}},
		{ID: "k2", Score: score(2.0), Source: map[string]any{"content": "y"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := normalizeChunkScores(chunks)

	if out[0].Score() != 1.0 || out[1].Score() != 0.25 {
		t.Errorf("chunk normalization mismatch: %v %v", out[0].Score(), out[1].Score())
	}
}
