package chi

import (
	"github.com/lexora-cloud/lexsearch/internal/domain/envelope"
	"github.com/lexora-cloud/lexsearch/internal/domain/intent"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/aggregate"
	"github.com/lexora-cloud/lexsearch/internal/domain/search/hit"
	"github.com/lexora-cloud/lexsearch/internal/domain/support"
)

// queryRequest is the wire shape of POST /v1/query.
type queryRequest struct {
	Query   string         `json:"query"`
	Filters *filterRequest `json:"filters,omitempty"`
}

type filterRequest struct {
	Category     string   `json:"category,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	PriceMin     *float64 `json:"price_min,omitempty"`
	PriceMax     *float64 `json:"price_max,omitempty"`
	RatingFloor  *float64 `json:"rating_floor,omitempty"`
	Availability string   `json:"availability,omitempty"`
}

// envelopeResponse is the wire shape of the orchestrator envelope.
type envelopeResponse struct {
	RequestID   string               `json:"request_id"`
	Intent      intent.Intent        `json:"intent"`
	Confidence  float64              `json:"confidence"`
	Summary     string               `json:"summary"`
	Reasoning   string               `json:"reasoning,omitempty"`
	Params      paramsResponse       `json:"extracted_params"`
	Hits        []hitResponse        `json:"hits,omitempty"`
	Total       int                  `json:"total,omitempty"`
	Exploration *explorationResponse `json:"exploration,omitempty"`
	Answer      *answerResponse      `json:"answer,omitempty"`
	Debug       debugResponse        `json:"query_debug_info"`
}

type paramsResponse struct {
	SearchText         string   `json:"search_text,omitempty"`
	CategoryHint       string   `json:"category_hint,omitempty"`
	BrandHint          string   `json:"brand_hint,omitempty"`
	PriceHint          string   `json:"price_hint,omitempty"`
	ImageDescription   string   `json:"image_description,omitempty"`
	SupportQuestion    string   `json:"support_question,omitempty"`
	SuggestedSearches  []string `json:"suggested_searches,omitempty"`
	ExplorationContext string   `json:"exploration_context,omitempty"`
}

type hitResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price"`
	Brand        string   `json:"brand,omitempty"`
	Category     string   `json:"category,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Score        float64  `json:"score"`
	SubQuery     string   `json:"sub_query,omitempty"`
}

type explorationResponse struct {
	Hits  []hitResponse      `json:"hits"`
	Stats []subQueryResponse `json:"sub_queries"`
}

type subQueryResponse struct {
	Query string `json:"query"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

type answerResponse struct {
	Text    string          `json:"text"`
	Sources []chunkResponse `json:"sources"`
}

type chunkResponse struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category,omitempty"`
	Score    float64 `json:"score"`
}

type debugResponse struct {
	UsedVector      bool     `json:"used_vector"`
	UsedLexical     bool     `json:"used_lexical"`
	EmbeddingInput  string   `json:"embedding_input,omitempty"`
	FormalContext   bool     `json:"formal_context,omitempty"`
	AllowCategories []string `json:"allow_categories,omitempty"`
	DenyCategories  []string `json:"deny_categories,omitempty"`
	SubQueries      []string `json:"sub_queries,omitempty"`
	KnowledgeTopK   int      `json:"knowledge_top_k,omitempty"`
}

type imageSearchResponse struct {
	Hits []hitResponse `json:"hits"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func envelopeToResponse(env envelope.Envelope) envelopeResponse {
	resp := envelopeResponse{
		RequestID:  env.RequestID,
		Intent:     env.Intent,
		Confidence: env.Confidence,
		Summary:    env.Summary,
		Reasoning:  env.Reasoning,
		Params: paramsResponse{
			SearchText:         env.Params.SearchText,
			CategoryHint:       env.Params.CategoryHint,
			BrandHint:          env.Params.BrandHint,
			PriceHint:          env.Params.PriceHint,
			ImageDescription:   env.Params.ImageDescription,
			SupportQuestion:    env.Params.SupportQuestion,
			SuggestedSearches:  env.Params.SuggestedSearches,
			ExplorationContext: env.Params.ExplorationContext,
		},
		Hits:  hitsToResponse(env.Hits),
		Total: env.Total,
		Debug: debugResponse{
			UsedVector:      env.Debug.UsedVector,
			UsedLexical:     env.Debug.UsedLexical,
			EmbeddingInput:  env.Debug.EmbeddingInput,
			FormalContext:   env.Debug.FormalContext,
			AllowCategories: env.Debug.AllowCategories,
			DenyCategories:  env.Debug.DenyCategories,
			SubQueries:      env.Debug.SubQueries,
			KnowledgeTopK:   env.Debug.KnowledgeTopK,
		},
	}
	if env.Exploration != nil {
		resp.Exploration = explorationToResponse(*env.Exploration)
	}
	if env.Answer != nil {
		resp.Answer = answerToResponse(*env.Answer)
	}
	return resp
}

func hitsToResponse(hits []hit.Hit) []hitResponse {
	if len(hits) == 0 {
		return nil
	}
	out := make([]hitResponse, len(hits))
	for i, h := range hits {
		out[i] = hitResponse{
			ID:           h.ID(),
			Title:        h.Title(),
			Description:  h.Description(),
			Price:        h.Price(),
			Brand:        h.Brand(),
			Category:     h.Category(),
			ImageURL:     h.ImageURL(),
			Rating:       h.Rating(),
			Availability: h.Availability(),
			Score:        h.Score(),
			SubQuery:     h.SubQuery(),
		}
	}
	return out
}

func explorationToResponse(rs aggregate.ResultSet) *explorationResponse {
	stats := make([]subQueryResponse, len(rs.Stats()))
	for i, s := range rs.Stats() {
		stats[i] = subQueryResponse{Query: s.Query, Count: s.Count, Error: s.Err}
	}
	return &explorationResponse{Hits: hitsToResponse(rs.Hits()), Stats: stats}
}

func answerToResponse(a support.Answer) *answerResponse {
	sources := make([]chunkResponse, len(a.Sources()))
	for i, c := range a.Sources() {
		sources[i] = chunkResponse{
			Title:    c.Title(),
			Content:  c.Content(),
			Category: c.Category(),
			Score:    c.Score(),
		}
	}
	return &answerResponse{Text: a.Text(), Sources: sources}
}
