// Package explore resolves exploratory queries by fanning out several
// hybrid sub-queries and merging the deduplicated union. Partial success
// is the expected outcome: a failed sub-query is recorded and skipped,
// never allowed to abort its siblings.
package explore

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lexora-cloud/lexsearch/internal/domain/category"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/aggregate"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/filter"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hit"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hybrid"
	"github.com/lexora-cloud/lexsearch/internal/logger"
	"github.com/lexora-cloud/lexsearch/internal/usecase/querybuilder"
)

// MaxSubQueries caps the fan-out even when the classifier suggested more.
const MaxSubQueries = 3

// QueryBuilder assembles hybrid queries for the sub-queries.
type QueryBuilder interface {
	Build(ctx context.Context, text string, filters filter.Set, constraint category.Constraint, k int) (hybrid.Query, querybuilder.Info, error)
}

// Searcher executes hybrid queries against the product collection.
type Searcher interface {
	SearchProducts(ctx context.Context, q hybrid.Query) ([]hit.Hit, int, error)
}

// Aggregator runs exploration fan-out and merges results.
type Aggregator struct {
	builder  QueryBuilder
	searcher Searcher
	perQuery int
}

// New creates the aggregator. perQuery is the result budget per sub-query.
func New(builder QueryBuilder, searcher Searcher, perQuery int) *Aggregator {
	if perQuery <= 0 {
		perQuery = hybrid.DefaultSize
	}
	return &Aggregator{builder: builder, searcher: searcher, perQuery: perQuery}
}

// Explore executes up to MaxSubQueries sub-queries concurrently and merges
// the hits: deduplicated by identifier, highest score retained, first-seen
// wins ties, sorted descending, capped. Exploration runs guardrail-free;
// the sub-queries themselves are already scoped by the classifier.
func (a *Aggregator) Explore(ctx context.Context, subQueries []string) aggregate.ResultSet {
	if len(subQueries) > MaxSubQueries {
		subQueries = subQueries[:MaxSubQueries]
	}

	batches := make([][]hit.Hit, len(subQueries))
	stats := make([]aggregate.SubQueryStat, len(subQueries))

	// The sub-queries are independent; concurrency here is throughput
	// only. Results land in per-index slots, merged after the wait.
	g, gctx := errgroup.WithContext(ctx)
	for i, sq := range subQueries {
		i, sq := i, sq
		g.Go(func() error {
			hits, err := a.runSubQuery(gctx, sq)
			if err != nil {
				logger.FromContext(ctx).Warn("exploration sub-query failed",
					zap.String("sub_query", sq), zap.Error(err))
				stats[i] = aggregate.SubQueryStat{Query: sq, Err: err.Error()}
				return nil
			}
			batches[i] = hits
			stats[i] = aggregate.SubQueryStat{Query: sq, Count: len(hits)}
			return nil
		})
	}
	_ = g.Wait() // sub-query errors are recorded in stats, never returned

	return aggregate.Merge(batches, stats)
}

func (a *Aggregator) runSubQuery(ctx context.Context, text string) ([]hit.Hit, error) {
	q, _, err := a.builder.Build(ctx, text, filter.Set{}, category.Constraint{}, a.perQuery)
	if err != nil {
		return nil, err
	}

	hits, _, err := a.searcher.SearchProducts(ctx, q)
	if err != nil {
		return nil, err
	}

	tagged := make([]hit.Hit, len(hits))
	for i, h := range hits {
		tagged[i] = h.WithSubQuery(text)
	}
	return tagged, nil
}
