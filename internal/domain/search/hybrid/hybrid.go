// Package hybrid defines the structured retrieval request sent to the
// search backend: an optional vector clause, an optional lexical clause,
// hard filter clauses, pagination, and the sort contract.
package hybrid

import "fmt"

// Pagination limits.
const (
	DefaultSize = 20
	MaxSize     = 100
)

// Query is a single structured retrieval request. It is built fresh per
// retrieval call and never reused across unrelated queries.
type Query struct {
	KNN          *KNNClause
	Match        *MatchClause
	MustNotMatch []TermsClause // lexical exclusions over scored text fields
	Filter       []Clause      // hard constraints, ANDed
	FilterNot    []Clause      // hard exclusions
	From         int
	Size         int
	SortByScore  bool // score desc, rating desc tie-break, missing ratings last
}

// KNNClause requests the k nearest neighbors of a query vector.
type KNNClause struct {
	Field  string
	Vector []float32
	K      int
}

// MatchClause is a lexical multi-field match that boosts, but never
// requires, exact term matches.
type MatchClause struct {
	Text   string
	Fields []WeightedField
}

// WeightedField is a lexical match target with its boost.
type WeightedField struct {
	Name  string
	Boost float64
}

// Clause is a hard filter: exactly one of Term, Terms, or Range is set.
type Clause struct {
	Term  *TermClause
	Terms *TermsClause
	Range *RangeClause
}

// TermClause matches a keyword field exactly.
type TermClause struct {
	Field string
	Value string
}

// TermsClause matches a keyword field against any of the given values.
type TermsClause struct {
	Field  string
	Values []string
}

// RangeClause bounds a numeric field. Nil bounds are open.
type RangeClause struct {
	Field string
	GTE   *float64
	LTE   *float64
}

// Builder assembles a Query clause by clause.
type Builder struct {
	q Query
}

// NewBuilder starts building a query with default pagination and the
// standard sort contract.
func NewBuilder() *Builder {
	return &Builder{q: Query{Size: DefaultSize, SortByScore: true}}
}

// KNN sets the vector similarity clause.
func (b *Builder) KNN(field string, vector []float32, k int) *Builder {
	b.q.KNN = &KNNClause{Field: field, Vector: vector, K: k}
	return b
}

// Match sets the lexical should clause.
func (b *Builder) Match(text string, fields []WeightedField) *Builder {
	b.q.Match = &MatchClause{Text: text, Fields: fields}
	return b
}

// MustNotMatch adds a lexical exclusion over a text field.
func (b *Builder) MustNotMatch(field string, values ...string) *Builder {
	b.q.MustNotMatch = append(b.q.MustNotMatch, TermsClause{Field: field, Values: values})
	return b
}

// FilterTerm adds a hard term-equality filter.
func (b *Builder) FilterTerm(field, value string) *Builder {
	b.q.Filter = append(b.q.Filter, Clause{Term: &TermClause{Field: field, Value: value}})
	return b
}

// FilterTerms adds a hard must-be-one-of filter.
func (b *Builder) FilterTerms(field string, values ...string) *Builder {
	b.q.Filter = append(b.q.Filter, Clause{Terms: &TermsClause{Field: field, Values: values}})
	return b
}

// FilterNotTerms adds a hard must-not-be-one-of filter.
func (b *Builder) FilterNotTerms(field string, values ...string) *Builder {
	b.q.FilterNot = append(b.q.FilterNot, Clause{Terms: &TermsClause{Field: field, Values: values}})
	return b
}

// FilterRange adds a hard numeric range filter.
func (b *Builder) FilterRange(field string, gte, lte *float64) *Builder {
	b.q.Filter = append(b.q.Filter, Clause{Range: &RangeClause{Field: field, GTE: gte, LTE: lte}})
	return b
}

// Paginate sets from/size. Size is clamped to MaxSize and defaulted when
// zero or negative.
func (b *Builder) Paginate(from, size int) *Builder {
	if from < 0 {
		from = 0
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	b.q.From = from
	b.q.Size = size
	return b
}

// Build validates and returns the query.
func (b *Builder) Build() (Query, error) {
	if err := b.q.Validate(); err != nil {
		return Query{}, err
	}
	return b.q, nil
}

// Validate checks clause consistency.
func (q *Query) Validate() error {
	if q.KNN != nil {
		if q.KNN.Field == "" {
			return fmt.Errorf("knn field is required")
		}
		if len(q.KNN.Vector) == 0 {
			return fmt.Errorf("knn vector is required")
		}
		if q.KNN.K <= 0 {
			return fmt.Errorf("knn k must be positive")
		}
	}
	if q.Match != nil {
		if q.Match.Text == "" {
			return fmt.Errorf("match text is required")
		}
		if len(q.Match.Fields) == 0 {
			return fmt.Errorf("match fields are required")
		}
	}
	for _, c := range append(append([]Clause{}, q.Filter...), q.FilterNot...) {
		set := 0
		if c.Term != nil {
			set++
		}
		if c.Terms != nil {
			set++
		}
		if c.Range != nil {
			set++
		}
		if set != 1 {
			return fmt.Errorf("filter clause must set exactly one of term, terms, range")
		}
	}
	if q.Size <= 0 || q.Size > MaxSize {
		return fmt.Errorf("size must be between 1 and %d", MaxSize)
	}
	return nil
}

// IsMatchAll reports whether the query has neither a vector nor a lexical
// clause and degenerates to match-everything (filter-only browsing).
func (q *Query) IsMatchAll() bool {
	return q.KNN == nil && q.Match == nil
}
