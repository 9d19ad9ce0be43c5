// Package querybuilder assembles hybrid retrieval requests: vector
// similarity, lexical boosting, and hard filter clauses composed into one
// structured query. Semantic and lexical signals boost each other; filters
// constrain the candidate set before ranking.
package querybuilder

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lexora-cloud/lexsearch/internal/domain/category"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/filter"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hybrid"
	"github.com/lexora-cloud/lexsearch/internal/logger"
)

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Lexical match targets in boost order.
var defaultFields = []hybrid.WeightedField{
	{Name: "title", Boost: 3},
	{Name: "description", Boost: 2},
	{Name: "derived_keywords", Boost: 1.5},
	{Name: "brand.text", Boost: 1},
	{Name: "category.text", Boost: 1},
}

// Under formal context, title and description matches weigh more.
var formalFields = []hybrid.WeightedField{
	{Name: "title", Boost: 4},
	{Name: "description", Boost: 3},
	{Name: "derived_keywords", Boost: 1.5},
	{Name: "brand.text", Boost: 1},
	{Name: "category.text", Boost: 1},
}

// Info reports how the query was constructed, for envelope debug output.
type Info struct {
	UsedVector     bool
	UsedLexical    bool
	EmbeddingInput string
	FormalContext  bool
}

// Builder builds hybrid queries.
type Builder struct {
	embed       Embedder
	vectorField string
}

// New creates a query builder. vectorField is the knn field the vector
// clause targets.
func New(embed Embedder, vectorField string) *Builder {
	return &Builder{embed: embed, vectorField: vectorField}
}

// Build assembles a hybrid query from text, user filters, and the category
// guardrail. An embedding failure degrades the query to lexical-only over
// the same text; Build never fails for that reason. Identical inputs
// produce structurally identical queries.
func (b *Builder) Build(
	ctx context.Context,
	text string,
	filters filter.Set,
	constraint category.Constraint,
	k int,
) (hybrid.Query, Info, error) {
	if k <= 0 {
		k = hybrid.DefaultSize
	}

	qb := hybrid.NewBuilder().Paginate(0, k)
	var info Info

	if text != "" {
		info.UsedLexical = true
		info.FormalContext = hasFormalContext(text)

		fields := defaultFields
		embeddingInput := text
		if info.FormalContext {
			fields = formalFields
			embeddingInput = text + " " + formalContextWords
			if hasFootwearContext(text) {
				qb.MustNotMatch("title", athleticExclusions...)
			}
		}
		qb.Match(text, fields)

		vector, err := b.embed.Embed(ctx, embeddingInput)
		if err != nil {
			logger.FromContext(ctx).Warn(
				"embedding unavailable, degrading to lexical-only search", zap.Error(err))
		} else {
			qb.KNN(b.vectorField, vector, k)
			info.UsedVector = true
			info.EmbeddingInput = embeddingInput
		}
	}

	applyConstraint(qb, constraint)
	applyFilters(qb, filters)

	q, err := qb.Build()
	if err != nil {
		return hybrid.Query{}, Info{}, fmt.Errorf("build hybrid query: %w", err)
	}
	return q, info, nil
}

// applyConstraint turns the guardrail into hard filter clauses. Allowed
// becomes must-be-one-of; excluded becomes must-not-be-one-of.
func applyConstraint(qb *hybrid.Builder, constraint category.Constraint) {
	if allowed := constraint.Allowed(); len(allowed) > 0 {
		qb.FilterTerms("category", categoryValues(allowed)...)
	}
	if excluded := constraint.Excluded(); len(excluded) > 0 {
		qb.FilterNotTerms("category", categoryValues(excluded)...)
	}
}

// applyFilters translates user filters into hard clauses, intersected
// with the guardrail clauses.
func applyFilters(qb *hybrid.Builder, filters filter.Set) {
	if filters.Category() != "" {
		qb.FilterTerm("category", filters.Category())
	}
	if filters.Brand() != "" {
		qb.FilterTerm("brand", filters.Brand())
	}
	if filters.PriceMin() != nil || filters.PriceMax() != nil {
		qb.FilterRange("price", filters.PriceMin(), filters.PriceMax())
	}
	if filters.RatingFloor() != nil {
		qb.FilterRange("rating", filters.RatingFloor(), nil)
	}
	if filters.Availability() != "" {
		qb.FilterTerm("availability_status", filters.Availability())
	}
}

func categoryValues(cats []category.Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}
