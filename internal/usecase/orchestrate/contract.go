package orchestrate

import (
	"context"

	"github.com/lexora-cloud/lexsearch/internal/domain/category"
	"github.com/lexora-cloud/lexsearch/internal/domain/intent"
	"github.com/lexora-cloud/lexsearch/internal/domain/query"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/aggregate"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/filter"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hit"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hybrid"
	"github.com/lexora-cloud/lexsearch/internal/domain/support"
	"github.com/lexora-cloud/lexsearch/internal/usecase/querybuilder"
)

// Classifier routes queries to intents.
type Classifier interface {
	Classify(ctx context.Context, q query.Query) intent.Classification
}

// GuardrailInferencer derives category constraints for semantic searches.
type GuardrailInferencer interface {
	InferCategories(ctx context.Context, text string) category.Constraint
}

// QueryBuilder assembles hybrid retrieval requests.
type QueryBuilder interface {
	Build(ctx context.Context, text string, filters filter.Set, constraint category.Constraint, k int) (hybrid.Query, querybuilder.Info, error)
}

// ProductSearcher executes hybrid queries against the product collection.
type ProductSearcher interface {
	SearchProducts(ctx context.Context, q hybrid.Query) ([]hit.Hit, int, error)
}

// Explorer resolves exploratory intents via sub-query fan-out.
type Explorer interface {
	Explore(ctx context.Context, subQueries []string) aggregate.ResultSet
}

// AnswerSynthesizer produces grounded support answers.
type AnswerSynthesizer interface {
	Answer(ctx context.Context, question string) (support.Answer, error)
}
