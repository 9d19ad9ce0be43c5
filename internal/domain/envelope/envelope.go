// Package envelope defines the caller-facing response of the orchestrator.
package envelope

import (
	"github.com/lexora-cloud/lexsearch/internal/domain/intent"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/aggregate"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hit"
	"github.com/lexora-cloud/lexsearch/internal/domain/support"
)

// DebugInfo captures how the retrieval request was constructed, for
// introspection by the presentation layer.
type DebugInfo struct {
	UsedVector      bool
	UsedLexical     bool
	EmbeddingInput  string
	FormalContext   bool
	AllowCategories []string
	DenyCategories  []string
	SubQueries      []string
	KnowledgeTopK   int
}

// Envelope is the single response shape for every intent. Exactly one of
// Hits, Exploration, or Answer is populated depending on the intent.
type Envelope struct {
	RequestID   string
	Intent      intent.Intent
	Confidence  float64
	Summary     string
	Reasoning   string
	Params      intent.Params
	Hits        []hit.Hit
	Total       int
	Exploration *aggregate.ResultSet
	Answer      *support.Answer
	Debug       DebugInfo
}
