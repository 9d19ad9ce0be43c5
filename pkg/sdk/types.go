package lexsearch

// Intent is the classified purpose of a query.
type Intent string

// Intents returned in Envelope.Intent.
const (
	IntentTextSearch    Intent = "text_search"
	IntentVisualSearch  Intent = "visual_search"
	IntentSupport       Intent = "support"
	IntentExploration   Intent = "generic_exploration"
	IntentClarification Intent = "clarification"
)

// Filters narrows a product search with hard constraints. All fields are
// optional; zero values are omitted from the request.
type Filters struct {
	Category     string   `json:"category,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	PriceMin     *float64 `json:"price_min,omitempty"`
	PriceMax     *float64 `json:"price_max,omitempty"`
	RatingFloor  *float64 `json:"rating_floor,omitempty"`
	Availability string   `json:"availability,omitempty"`
}

// Envelope is the full query response.
type Envelope struct {
	RequestID   string       `json:"request_id"`
	Intent      Intent       `json:"intent"`
	Confidence  float64      `json:"confidence"`
	Summary     string       `json:"summary"`
	Reasoning   string       `json:"reasoning,omitempty"`
	Params      Params       `json:"extracted_params"`
	Hits        []Hit        `json:"hits,omitempty"`
	Total       int          `json:"total,omitempty"`
	Exploration *Exploration `json:"exploration,omitempty"`
	Answer      *Answer      `json:"answer,omitempty"`
	Debug       DebugInfo    `json:"query_debug_info"`
}

// Params holds the parameters the classifier extracted from the query.
type Params struct {
	SearchText         string   `json:"search_text,omitempty"`
	CategoryHint       string   `json:"category_hint,omitempty"`
	BrandHint          string   `json:"brand_hint,omitempty"`
	PriceHint          string   `json:"price_hint,omitempty"`
	ImageDescription   string   `json:"image_description,omitempty"`
	SupportQuestion    string   `json:"support_question,omitempty"`
	SuggestedSearches  []string `json:"suggested_searches,omitempty"`
	ExplorationContext string   `json:"exploration_context,omitempty"`
}

// Hit is a single product result. Score is normalized to [0,1].
type Hit struct {
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

// Exploration is the merged result of a multi-query exploration.
type Exploration struct {
	Hits  []Hit          `json:"hits"`
	Stats []SubQueryStat `json:"sub_queries"`
}

// SubQueryStat reports how one exploration sub-query fared.
type SubQueryStat struct {
	Query string `json:"query"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

// Answer is a grounded support answer with its source chunks.
type Answer struct {
	Text    string  `json:"text"`
	Sources []Chunk `json:"sources"`
}

// Chunk is a knowledge base excerpt cited by an answer.
type Chunk struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category,omitempty"`
	Score    float64 `json:"score"`
}

// DebugInfo describes how the retrieval request was built.
type DebugInfo struct {
	UsedVector      bool     `json:"used_vector"`
	UsedLexical     bool     `json:"used_lexical"`
	EmbeddingInput  string   `json:"embedding_input,omitempty"`
	FormalContext   bool     `json:"formal_context,omitempty"`
	AllowCategories []string `json:"allow_categories,omitempty"`
	DenyCategories  []string `json:"deny_categories,omitempty"`
	SubQueries      []string `json:"sub_queries,omitempty"`
	KnowledgeTopK   int      `json:"knowledge_top_k,omitempty"`
}

// ImageSearchResult is the response of an image similarity search.
type ImageSearchResult struct {
	Hits []Hit `json:"hits"`
}

// HealthReport is the response of the health endpoint.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
