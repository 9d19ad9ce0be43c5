package search

import (
	"fmt"

	"github.com/lexora-cloud/lexsearch/internal/domain/search/hybrid"
)

// renderQuery translates a hybrid query into the OpenSearch request body.
// Maps marshal with sorted keys, so identical queries render to identical
// bodies.
func renderQuery(q hybrid.Query) map[string]any {
	body := map[string]any{
		"size": q.Size,
		"from": q.From,
	}

	boolQuery := map[string]any{}

	var should []any
	if q.KNN != nil {
		should = append(should, map[string]any{
			"knn": map[string]any{
				q.KNN.Field: map[string]any{
					"vector": q.KNN.Vector,
					"k":      q.KNN.K,
				},
			},
		})
	}
	if q.Match != nil {
		fields := make([]string, len(q.Match.Fields))
		for i, f := range q.Match.Fields {
			fields[i] = fmt.Sprintf("%s^%g", f.Name, f.Boost)
		}
		should = append(should, map[string]any{
			"multi_match": map[string]any{
				"query":  q.Match.Text,
				"fields": fields,
			},
		})
	}

	var mustNot []any
	for _, tc := range q.MustNotMatch {
		for _, v := range tc.Values {
			mustNot = append(mustNot, map[string]any{
				"match": map[string]any{tc.Field: v},
			})
		}
	}
	for _, c := range q.FilterNot {
		mustNot = append(mustNot, renderClause(c))
	}

	var filter []any
	for _, c := range q.Filter {
		filter = append(filter, renderClause(c))
	}

	if len(should) > 0 {
		boolQuery["should"] = should
		boolQuery["minimum_should_match"] = 1
	}
	if len(mustNot) > 0 {
		boolQuery["must_not"] = mustNot
	}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}

	if len(boolQuery) == 0 {
		body["query"] = map[string]any{"match_all": map[string]any{}}
	} else {
		if len(should) == 0 {
			// Filter-only browsing still needs a matching clause.
			boolQuery["must"] = []any{map[string]any{"match_all": map[string]any{}}}
		}
		body["query"] = map[string]any{"bool": boolQuery}
	}

	if q.SortByScore {
		body["sort"] = []any{
			map[string]any{"_score": map[string]any{"order": "desc"}},
			map[string]any{"rating": map[string]any{"order": "desc", "missing": "_last"}},
		}
	}

	return body
}

func renderClause(c hybrid.Clause) map[string]any {
	switch {
	case c.Term != nil:
		return map[string]any{"term": map[string]any{c.Term.Field: c.Term.Value}}
	case c.Terms != nil:
		return map[string]any{"terms": map[string]any{c.Terms.Field: c.Terms.Values}}
	case c.Range != nil:
		bounds := map[string]any{}
		if c.Range.GTE != nil {
			bounds["gte"] = *c.Range.GTE
		}
		if c.Range.LTE != nil {
			bounds["lte"] = *c.Range.LTE
		}
		return map[string]any{"range": map[string]any{c.Range.Field: bounds}}
	}
	return map[string]any{}
}

// renderKNNQuery builds a pure vector similarity request for a single
// knn field, used for knowledge retrieval and image search.
func renderKNNQuery(field string, vector []float32, k int) map[string]any {
	return map[string]any{
		"size": k,
		"query": map[string]any{
			"knn": map[string]any{
				field: map[string]any{
					"vector": vector,
					"k":      k,
				},
			},
		},
	}
}
