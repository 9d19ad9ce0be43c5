package search

import (
	"fmt"

	"github.com/lexora-cloud/lexsearch/internal/domain"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hit"
	"github.com/lexora-cloud/lexsearch/internal/domain/support"
)

// searchResponse is the wire shape of an OpenSearch search response.
// Only the fields the service reads are declared; everything is validated
// before conversion.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []rawHit `json:"hits"`
	} `json:"hits"`
}

type rawHit struct {
	ID     string         `json:"_id"`
	Score  *float64       `json:"_score"`
	Source map[string]any `json:"_source"`
}

func (r rawHit) validate() error {
	if r.ID == "" {
		return fmt.Errorf("hit without _id: %w", domain.ErrMalformedProviderResponse)
	}
	if r.Score == nil {
		return fmt.Errorf("hit %s without _score: %w", r.ID, domain.ErrMalformedProviderResponse)
	}
	return nil
}

func (r rawHit) str(key string) string {
	if v, ok := r.Source[key].(string); ok {
		return v
	}
	return ""
}

func (r rawHit) num(key string) (float64, bool) {
	if v, ok := r.Source[key].(float64); ok {
		return v, true
	}
	return 0, false
}

// productHits converts and validates raw hits into domain hits.
// Scores are normalized afterwards via normalizeScores.
func productHits(raw []rawHit) ([]hit.Hit, error) {
	hits := make([]hit.Hit, 0, len(raw))
	for _, r := range raw {
		if err := r.validate(); err != nil {
			return nil, err
		}
		price, _ := r.num("price")
		var rating *float64
		if v, ok := r.num("rating"); ok {
			rating = &v
		}
		imageURL := r.str("product_images_urls")
		if urls, ok := r.Source["product_images_urls"].([]any); ok && len(urls) > 0 {
			if s, ok := urls[0].(string); ok {
				imageURL = s
			}
		}
		hits = append(hits, hit.New(
			r.ID,
			r.str("title"),
			r.str("description"),
			price,
			r.str("brand"),
			r.str("category"),
			imageURL,
			rating,
			r.str("availability_status"),
			*r.Score,
		))
	}
	return hits, nil
}

// knowledgeChunks converts raw hits from the support index.
func knowledgeChunks(raw []rawHit) ([]support.Chunk, error) {
	chunks := make([]support.Chunk, 0, len(raw))
	for _, r := range raw {
		if err := r.validate(); err != nil {
			return nil, err
		}
		content := r.str("content")
		if content == "" {
			content = r.str("chunk_text")
		}
		if content == "" {
			content = r.str("text")
		}
		chunks = append(chunks, support.NewChunk(
			r.ID,
			r.str("title"),
			content,
			r.str("category"),
			*r.Score,
		))
	}
	return chunks, nil
}

// normalizeHitScores maps every score in the batch into [0,1]. Pure cosine
// scores already sit in that range and pass through; BM25 scores (which
// share no scale across queries) are min-max normalized within the batch
// so one consistent score contract leaves this package.
func normalizeHitScores(hits []hit.Hit) []hit.Hit {
	maxScore := 0.0
	minScore := 0.0
	for i, h := range hits {
		if i == 0 || h.Score() > maxScore {
			maxScore = h.Score()
		}
		if i == 0 || h.Score() < minScore {
			minScore = h.Score()
		}
	}
	if maxScore <= 1 && minScore >= 0 {
		return hits
	}

	span := maxScore - minScore
	out := make([]hit.Hit, len(hits))
	for i, h := range hits {
		score := 1.0
		if span > 0 {
			score = (h.Score() - minScore) / span
		}
		var rating *float64
		if h.Rating() != nil {
			v := *h.Rating()
			rating = &v
		}
		out[i] = hit.New(
			h.ID(), h.Title(), h.Description(), h.Price(),
			h.Brand(), h.Category(), h.ImageURL(), rating,
			h.Availability(), score,
		)
	}
	return out
}

// normalizeChunkScores applies the same contract to knowledge chunks.
func normalizeChunkScores(chunks []support.Chunk) []support.Chunk {
	maxScore := 0.0
	for i, c := range chunks {
		if i == 0 || c.Score() > maxScore {
			maxScore = c.Score()
		}
	}
	if maxScore <= 1 {
		return chunks
	}
	out := make([]support.Chunk, len(chunks))
	for i, c := range chunks {
		out[i] = support.NewChunk(c.ID(), c.Title(), c.Content(), c.Category(), c.Score()/maxScore)
	}
	return out
}
