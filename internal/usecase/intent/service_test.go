package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/lexora-cloud/lexsearch/internal/domain/intent"
	"github.com/lexora-cloud/lexsearch/internal/domain/query"
)

type mockCompleter struct {
	response string
	err      error
	called   bool
}

func (m *mockCompleter) Complete(_ context.Context, _, _ string, _ bool) (string, error) {
	m.called = true
	return m.response, m.err
}

func textQuery(t *testing.T, text string) query.Query {
	t.Helper()
	q, err := query.New(text, nil)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

const validResponse = `{
	"intent": "text_search",
	"confidence": 0.92,
	"reasoning": "specific product request",
	"extractedParams": {"searchText": "red running shoes", "category": "Footwear"}
}`

func TestClassify_ModelResponse(t *testing.T) {
	r := NewRouter(&mockCompleter{response: validResponse})

	c := r.Classify(context.Background(), textQuery(t, "red running shoes"))

	if c.Intent() != intent.TextSearch {
		t.Fatalf("expected text_search, got %q", c.Intent())
	}
	if c.Confidence() != 0.92 {
		t.Errorf("expected confidence 0.92, got %v", c.Confidence())
	}
	if c.Params().SearchText != "red running shoes" {
		t.Errorf("unexpected search text %q", c.Params().SearchText)
	}
	if c.Params().CategoryHint != "Footwear" {
		t.Errorf("unexpected category hint %q", c.Params().CategoryHint)
	}
}

func TestClassify_CodeFencedResponse(t *testing.T) {
	r := NewRouter(&mockCompleter{response: "```json\n" + validResponse + "\n```"})

	c := r.Classify(context.Background(), textQuery(t, "red running shoes"))

	if c.Intent() != intent.TextSearch {
		t.Fatalf("fenced JSON should still parse, got %q", c.Intent())
	}
}

func TestClassify_ProviderErrorFallsBack(t *testing.T) {
	r := NewRouter(&mockCompleter{err: errors.New("rate limited")})

	c := r.Classify(context.Background(), textQuery(t, "wireless headphones"))

	if c.Intent() != intent.TextSearch {
		t.Fatalf("fallback should default to text_search, got %q", c.Intent())
	}
	if c.Params().SearchText != "wireless headphones" {
		t.Errorf("fallback should carry the raw query, got %q", c.Params().SearchText)
	}
	if c.Confidence() != 0.5 {
		t.Errorf("fallback confidence should be 0.5, got %v", c.Confidence())
	}
}

func TestClassify_UnknownIntentFallsBack(t *testing.T) {
	resp := `{"intent": "browse", "confidence": 0.9, "reasoning": "x", "extractedParams": {}}`
	r := NewRouter(&mockCompleter{response: resp})

	c := r.Classify(context.Background(), textQuery(t, "how do i return an order"))

	// Fallback catches the support keyword that the bad response dropped.
	if c.Intent() != intent.Support {
		t.Fatalf("expected support fallback, got %q", c.Intent())
	}
	if c.Params().SupportQuestion != "how do i return an order" {
		t.Errorf("support fallback should carry the question, got %q", c.Params().SupportQuestion)
	}
}

func TestClassify_MissingRequiredFieldsFallsBack(t *testing.T) {
	cases := []struct {
		name string
		resp string
	}{
		{"no confidence", `{"intent": "text_search", "reasoning": "x", "extractedParams": {}}`},
		{"no reasoning", `{"intent": "text_search", "confidence": 0.8, "extractedParams": {}}`},
		{"no params", `{"intent": "text_search", "confidence": 0.8, "reasoning": "x"}`},
		{"not json", `the intent is text_search`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRouter(&mockCompleter{response: tc.resp})
			c := r.Classify(context.Background(), textQuery(t, "blue office chair"))
			if c.Intent() != intent.TextSearch {
				t.Fatalf("expected fallback text_search, got %q", c.Intent())
			}
			if c.Reasoning() == "x" {
				t.Error("invalid response must be rejected wholesale")
			}
		})
	}
}

func TestClassify_UnderfilledExplorationHalvesConfidence(t *testing.T) {
	resp := `{
		"intent": "generic_exploration",
		"confidence": 0.8,
		"reasoning": "vague lifestyle request",
		"extractedParams": {"suggestedSearches": ["camping tent", "hiking boots"]}
	}`
	r := NewRouter(&mockCompleter{response: resp})

	c := r.Classify(context.Background(), textQuery(t, "going camping next month"))

	if c.Intent() != intent.GenericExploration {
		t.Fatalf("expected generic_exploration, got %q", c.Intent())
	}
	if c.Confidence() != 0.4 {
		t.Errorf("under-filled suggestions should halve confidence, got %v", c.Confidence())
	}
	if len(c.Params().SuggestedSearches) != 2 {
		t.Errorf("suggestions should be kept, got %v", c.Params().SuggestedSearches)
	}
}

func TestClassify_ShortQueryFallback(t *testing.T) {
	r := NewRouter(&mockCompleter{err: errors.New("provider down")})

	c := r.Classify(context.Background(), textQuery(t, "hi"))

	if c.Intent() != intent.Clarification {
		t.Fatalf("short query should clarify, got %q", c.Intent())
	}
}

func TestClassify_ImageOnlySkipsProvider(t *testing.T) {
	m := &mockCompleter{response: validResponse}
	r := NewRouter(m)

	q, err := query.New("", []byte{0xff, 0xd8})
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	c := r.Classify(context.Background(), q)

	if c.Intent() != intent.VisualSearch {
		t.Fatalf("image-only query should be visual_search, got %q", c.Intent())
	}
	if m.called {
		t.Error("provider should not be called without text")
	}
}

func TestClassifyByKeywords_VisualBeforeSupport(t *testing.T) {
	c := classifyByKeywords("find products similar to this photo")
	if c.Intent() != intent.VisualSearch {
		t.Fatalf("expected visual_search, got %q", c.Intent())
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{}\n```": "{}",
		"```\n{}\n```":     "{}",
		"{}":               "{}",
	}
	for in, want := range cases {
		if got := stripCodeFences(in); got != want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", in, got, want)
		}
	}
}
