package intent

// Intent is the classified purpose of a user query. It selects the
// retrieval strategy the orchestrator dispatches to.
type Intent string

// Intent constants.
const (
	// TextSearch looks for specific products by name or attributes.
	TextSearch Intent = "text_search"
	// VisualSearch looks for products similar to an image.
	VisualSearch Intent = "visual_search"
	// Support asks about store operations (returns, shipping, policies).
	Support Intent = "support"
	// GenericExploration is a vague lifestyle or recommendation request,
	// resolved through several generated sub-queries.
	GenericExploration Intent = "generic_exploration"
	// Clarification means the query is too short or generic to act on.
	Clarification Intent = "clarification"
)

// IsValid checks if the intent is one of the supported values.
func (i Intent) IsValid() bool {
	switch i {
	case TextSearch, VisualSearch, Support, GenericExploration, Clarification:
		return true
	}
	return false
}

// Exploration sub-query bounds required from the classifier.
const (
	MinSuggestedSearches = 3
	MaxSuggestedSearches = 5
)

// Params is the structured parameter bag extracted during classification.
// Which fields are populated depends on the intent; all fields are
// read-only downstream.
type Params struct {
	SearchText         string
	CategoryHint       string
	BrandHint          string
	PriceHint          string
	ImageDescription   string
	SupportQuestion    string
	SuggestedSearches  []string
	ExplorationContext string
}

// Classification is the immutable result of intent routing: the intent,
// the classifier's confidence in [0,1], its free-text reasoning, and the
// extracted parameters.
type Classification struct {
	intent     Intent
	confidence float64
	reasoning  string
	params     Params
}

// NewClassification creates a classification. Confidence is clamped to [0,1]
// and suggested searches are truncated to the allowed maximum.
func NewClassification(i Intent, confidence float64, reasoning string, params Params) Classification {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	if len(params.SuggestedSearches) > MaxSuggestedSearches {
		params.SuggestedSearches = params.SuggestedSearches[:MaxSuggestedSearches]
	}
	return Classification{intent: i, confidence: confidence, reasoning: reasoning, params: params}
}

// Intent returns the classified intent.
func (c Classification) Intent() Intent { return c.intent }

// Confidence returns the classifier confidence in [0,1].
func (c Classification) Confidence() float64 { return c.confidence }

// Reasoning returns the classifier's free-text reasoning.
func (c Classification) Reasoning() string { return c.reasoning }

// Params returns the extracted parameters.
func (c Classification) Params() Params { return c.params }
