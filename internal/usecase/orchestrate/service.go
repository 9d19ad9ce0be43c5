// Package orchestrate is the top-level entry point for text queries:
// classify once, dispatch to the retrieval strategy the intent selects,
// and assemble the response envelope. The pipeline state (classification,
// retrieval output, debug info) is threaded through one structure rather
// than accumulated as side effects.
package orchestrate

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lexora-cloud/lexsearch/internal/domain/category"
	"github.com/lexora-cloud/lexsearch/internal/domain/envelope"
	"github.com/lexora-cloud/lexsearch/internal/domain/intent"
	"github.com/lexora-cloud/lexsearch/internal/domain/query"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/aggregate"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/filter"
)

// Static envelope messages.
const (
	clarificationMessage = "Could you tell me a bit more about what you're looking for? " +
		"Try a product name, a brand, or a description of what you need."
	needDetailMessage = "I'd love to help you explore, but I need a little more detail " +
		"about what you're shopping for."
	imagePromptMessage = "It sounds like you're looking for something visual. " +
		"Upload an image and I'll find similar items."
)

// Orchestrator dispatches classified queries to retrieval strategies.
type Orchestrator struct {
	classifier  Classifier
	guardrails  GuardrailInferencer
	builder     QueryBuilder
	searcher    ProductSearcher
	explorer    Explorer
	synthesizer AnswerSynthesizer
	pageSize    int
}

// New creates the orchestrator.
func New(
	classifier Classifier,
	guardrails GuardrailInferencer,
	builder QueryBuilder,
	searcher ProductSearcher,
	explorer Explorer,
	synthesizer AnswerSynthesizer,
	pageSize int,
) *Orchestrator {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Orchestrator{
		classifier:  classifier,
		guardrails:  guardrails,
		builder:     builder,
		searcher:    searcher,
		explorer:    explorer,
		synthesizer: synthesizer,
		pageSize:    pageSize,
	}
}

// Run classifies the query and produces the response envelope. No-results
// and ambiguous input come back as valid envelopes; only an unreachable
// retrieval backend (or an unrecoverable provider failure on the support
// path) surfaces as an error.
func (o *Orchestrator) Run(ctx context.Context, q query.Query, filters filter.Set) (envelope.Envelope, error) {
	c := o.classifier.Classify(ctx, q)

	env := envelope.Envelope{
		RequestID:  uuid.NewString(),
		Intent:     c.Intent(),
		Confidence: c.Confidence(),
		Reasoning:  c.Reasoning(),
		Params:     c.Params(),
	}

	switch c.Intent() {
	case intent.TextSearch:
		return o.runTextSearch(ctx, env, q, c, filters)
	case intent.GenericExploration:
		return o.runExploration(ctx, env, c), nil
	case intent.Support:
		return o.runSupport(ctx, env, c, q)
	case intent.VisualSearch:
		env.Summary = imagePromptMessage
		return env, nil
	case intent.Clarification:
		env.Summary = clarificationMessage
		return env, nil
	}

	return env, fmt.Errorf("unsupported intent %q", c.Intent())
}

func (o *Orchestrator) runTextSearch(
	ctx context.Context,
	env envelope.Envelope,
	q query.Query,
	c intent.Classification,
	filters filter.Set,
) (envelope.Envelope, error) {
	searchText := c.Params().SearchText
	if searchText == "" {
		searchText = q.Text()
	}

	// Guardrails apply only when free text heads into semantic search;
	// pure filter browsing skips the inference round trip.
	var constraint category.Constraint
	if searchText != "" {
		constraint = o.guardrails.InferCategories(ctx, searchText)
	}

	hq, info, err := o.builder.Build(ctx, searchText, filters, constraint, o.pageSize)
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("build query: %w", err)
	}

	hits, total, err := o.searcher.SearchProducts(ctx, hq)
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("search products: %w", err)
	}

	env.Hits = hits
	env.Total = total
	env.Debug = envelope.DebugInfo{
		UsedVector:      info.UsedVector,
		UsedLexical:     info.UsedLexical,
		EmbeddingInput:  info.EmbeddingInput,
		FormalContext:   info.FormalContext,
		AllowCategories: categoryNames(constraint.Allowed()),
		DenyCategories:  categoryNames(constraint.Excluded()),
	}
	if len(hits) == 0 {
		env.Summary = fmt.Sprintf("No products matched %q. Try broadening your search.", searchText)
	} else {
		env.Summary = fmt.Sprintf("Found %d products for %q.", total, searchText)
	}
	return env, nil
}

func (o *Orchestrator) runExploration(
	ctx context.Context,
	env envelope.Envelope,
	c intent.Classification,
) envelope.Envelope {
	subQueries := c.Params().SuggestedSearches
	if len(subQueries) == 0 {
		env.Summary = needDetailMessage
		return env
	}

	rs := o.explorer.Explore(ctx, subQueries)
	env.Exploration = &rs
	env.Debug = envelope.DebugInfo{SubQueries: statQueries(rs)}
	if len(rs.Hits()) == 0 {
		env.Summary = "I couldn't find products for those ideas. Try describing your plans differently."
	} else {
		env.Summary = fmt.Sprintf("Here are %d ideas across %d searches.", len(rs.Hits()), len(rs.Stats()))
	}
	return env
}

func (o *Orchestrator) runSupport(
	ctx context.Context,
	env envelope.Envelope,
	c intent.Classification,
	q query.Query,
) (envelope.Envelope, error) {
	question := c.Params().SupportQuestion
	if question == "" {
		question = q.Text()
	}

	answer, err := o.synthesizer.Answer(ctx, question)
	if err != nil {
		return envelope.Envelope{}, fmt.Errorf("answer support question: %w", err)
	}

	env.Answer = &answer
	env.Debug = envelope.DebugInfo{KnowledgeTopK: len(answer.Sources())}
	if answer.IsFallback() {
		env.Summary = "No matching help article was found."
	} else {
		env.Summary = fmt.Sprintf("Answered from %d help articles.", len(answer.Sources()))
	}
	return env, nil
}

func categoryNames[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func statQueries(rs aggregate.ResultSet) []string {
	out := make([]string, len(rs.Stats()))
	for i, s := range rs.Stats() {
		out[i] = s.Query
	}
	return out
}
