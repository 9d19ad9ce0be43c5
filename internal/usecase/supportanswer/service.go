// Package supportanswer synthesizes grounded answers to store-operation
// questions: retrieve the nearest knowledge chunks, then generate an
// answer constrained to them. Zero retrieved chunks always yields the
// canned fallback, never provider-generated prose.
package supportanswer

import (
	"context"
	"fmt"

	"github.com/lexora-cloud/lexsearch/internal/domain/support"
)

// DefaultTopK is the knowledge retrieval depth.
const DefaultTopK = 5

// Embedder vectorizes the question.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// KnowledgeSearcher retrieves chunks by vector similarity.
type KnowledgeSearcher interface {
	SearchKnowledge(ctx context.Context, vector []float32, k int) ([]support.Chunk, error)
}

// Completer generates the grounded answer text.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, jsonMode bool) (string, error)
}

// Synthesizer answers support questions.
type Synthesizer struct {
	embed     Embedder
	searcher  KnowledgeSearcher
	completer Completer
	topK      int
}

// New creates the synthesizer.
func New(embed Embedder, searcher KnowledgeSearcher, completer Completer, topK int) *Synthesizer {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Synthesizer{embed: embed, searcher: searcher, completer: completer, topK: topK}
}

// Answer retrieves grounding chunks and generates a cited answer. The
// ordered source list is returned alongside the text so the caller can
// render citations.
func (s *Synthesizer) Answer(ctx context.Context, question string) (support.Answer, error) {
	vector, err := s.embed.Embed(ctx, question)
	if err != nil {
		return support.Answer{}, fmt.Errorf("embed question: %w", err)
	}

	chunks, err := s.searcher.SearchKnowledge(ctx, vector, s.topK)
	if err != nil {
		return support.Answer{}, fmt.Errorf("retrieve knowledge: %w", err)
	}

	if len(chunks) == 0 {
		return support.Fallback(), nil
	}

	text, err := s.completer.Complete(ctx, answerPrompt, buildContext(question, chunks), false)
	if err != nil {
		return support.Answer{}, fmt.Errorf("generate answer: %w", err)
	}

	return support.NewAnswer(text, chunks), nil
}
