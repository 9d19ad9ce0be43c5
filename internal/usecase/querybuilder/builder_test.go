package querybuilder

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/lexora-cloud/lexsearch/internal/domain/category"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/filter"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hybrid"
)

type mockEmbedder struct {
	vec       []float32
	err       error
	lastInput string
	calls     int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	m.lastInput = text
	return m.vec, m.err
}

func TestBuild_HybridQuery(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1, 0.2}}
	b := New(embed, "text_embedding_vector")

	q, info, err := b.Build(context.Background(), "wireless headphones", filter.Set{}, category.Constraint{}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.KNN == nil {
		t.Fatal("expected knn clause")
	}
	if q.KNN.Field != "text_embedding_vector" || q.KNN.K != 20 {
		t.Errorf("unexpected knn clause %+v", q.KNN)
	}
	if q.Match == nil || q.Match.Text != "wireless headphones" {
		t.Errorf("unexpected match clause %+v", q.Match)
	}
	if !info.UsedVector || !info.UsedLexical {
		t.Errorf("expected both signals, got %+v", info)
	}
	if info.EmbeddingInput != "wireless headphones" {
		t.Errorf("plain query should embed unchanged, got %q", info.EmbeddingInput)
	}
}

func TestBuild_EmbeddingFailureDegradesToLexical(t *testing.T) {
	embed := &mockEmbedder{err: errors.New("provider down")}
	b := New(embed, "text_embedding_vector")

	q, info, err := b.Build(context.Background(), "wireless headphones", filter.Set{}, category.Constraint{}, 20)
	if err != nil {
		t.Fatalf("embedding failure must not fail the build: %v", err)
	}
	if q.KNN != nil {
		t.Error("degraded query should have no knn clause")
	}
	if q.Match == nil {
		t.Fatal("degraded query must keep the lexical clause")
	}
	if info.UsedVector {
		t.Error("info should report vector unused")
	}
	if !info.UsedLexical {
		t.Error("info should report lexical used")
	}
}

func TestBuild_EmptyTextIsFilterOnly(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1}}
	b := New(embed, "text_embedding_vector")

	filters, err := filter.New("Footwear", "", nil, nil, nil, "")
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	q, info, err := b.Build(context.Background(), "", filters, category.Constraint{}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.IsMatchAll() {
		t.Error("empty text should build a match-all query")
	}
	if embed.calls != 0 {
		t.Error("empty text should not be embedded")
	}
	if info.UsedVector || info.UsedLexical {
		t.Errorf("no scoring signals expected, got %+v", info)
	}
	if len(q.Filter) != 1 {
		t.Fatalf("expected category filter, got %+v", q.Filter)
	}
}

func TestBuild_FormalContextRewritesEmbeddingInput(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1}}
	b := New(embed, "text_embedding_vector")

	_, info, err := b.Build(context.Background(), "outfit for a wedding", filter.Set{}, category.Constraint{}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.FormalContext {
		t.Fatal("wedding query should trigger formal context")
	}
	want := "outfit for a wedding " + formalContextWords
	if embed.lastInput != want {
		t.Errorf("embedding input = %q, want %q", embed.lastInput, want)
	}
	if info.EmbeddingInput != want {
		t.Errorf("info embedding input = %q, want %q", info.EmbeddingInput, want)
	}
}

func TestBuild_FormalFootwearExcludesAthleticTerms(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1}}
	b := New(embed, "text_embedding_vector")

	q, _, err := b.Build(context.Background(), "shoes for a wedding", filter.Set{}, category.Constraint{}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.MustNotMatch) != 1 {
		t.Fatalf("expected athletic exclusion clause, got %+v", q.MustNotMatch)
	}
	if !reflect.DeepEqual(q.MustNotMatch[0].Values, athleticExclusions) {
		t.Errorf("exclusion values = %v", q.MustNotMatch[0].Values)
	}
}

func TestBuild_FormalWithoutFootwearHasNoExclusions(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1}}
	b := New(embed, "text_embedding_vector")

	q, _, err := b.Build(context.Background(), "dress for a wedding", filter.Set{}, category.Constraint{}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.MustNotMatch) != 0 {
		t.Errorf("non-footwear formal query must not exclude, got %+v", q.MustNotMatch)
	}
}

func TestBuild_ConstraintBecomesHardFilters(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1}}
	b := New(embed, "text_embedding_vector")

	constraint := category.NewConstraint([]string{"Footwear", "Clothing"}, []string{"Toys & Games"})
	q, _, err := b.Build(context.Background(), "party shoes", filter.Set{}, constraint, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found bool
	for _, c := range q.Filter {
		if c.Terms != nil && c.Terms.Field == "category" {
			found = true
			if !reflect.DeepEqual(c.Terms.Values, []string{"Footwear", "Clothing"}) {
				t.Errorf("allow-list values = %v", c.Terms.Values)
			}
		}
	}
	if !found {
		t.Error("allow-list should become a category terms filter")
	}
	if len(q.FilterNot) != 1 || q.FilterNot[0].Terms == nil {
		t.Fatalf("deny-list should become a must-not terms filter, got %+v", q.FilterNot)
	}
}

func TestBuild_UserFiltersBecomeClauses(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1}}
	b := New(embed, "text_embedding_vector")

	min, max, rating := 10.0, 200.0, 4.0
	filters, err := filter.New("Electronics", "Acme", &min, &max, &rating, "in_stock")
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}

	q, _, err := b.Build(context.Background(), "headphones", filters, category.Constraint{}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Filter) != 5 {
		t.Fatalf("expected 5 filter clauses, got %d: %+v", len(q.Filter), q.Filter)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1, 0.2, 0.3}}
	b := New(embed, "text_embedding_vector")

	constraint := category.NewConstraint([]string{"Footwear"}, nil)
	q1, _, err := b.Build(context.Background(), "oxfords for a gala", filter.Set{}, constraint, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q2, _, err := b.Build(context.Background(), "oxfords for a gala", filter.Set{}, constraint, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(q1, q2) {
		t.Error("identical inputs must build identical queries")
	}
}

func TestBuild_ZeroKDefaults(t *testing.T) {
	embed := &mockEmbedder{vec: []float32{0.1}}
	b := New(embed, "text_embedding_vector")

	q, _, err := b.Build(context.Background(), "lamp", filter.Set{}, category.Constraint{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Size != hybrid.DefaultSize {
		t.Errorf("expected default size, got %d", q.Size)
	}
	if q.KNN.K != hybrid.DefaultSize {
		t.Errorf("expected default k, got %d", q.KNN.K)
	}
}
