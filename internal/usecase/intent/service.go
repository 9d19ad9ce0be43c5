// Package intent classifies a user query into one of five intents and
// extracts structured parameters. The completion provider does the heavy
// lifting; a deterministic keyword heuristic covers every provider failure,
// so classification never comes back undetermined.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lexora-cloud/lexsearch/internal/domain/intent"
	"github.com/lexora-cloud/lexsearch/internal/domain/query"
	"github.com/lexora-cloud/lexsearch/internal/logger"
	"github.com/lexora-cloud/lexsearch/internal/metrics"
)

// Router classifies queries.
type Router struct {
	completer Completer
}

// NewRouter creates the intent router.
func NewRouter(completer Completer) *Router {
	return &Router{completer: completer}
}

// classifierResponse is the untrusted wire shape of the provider output.
type classifierResponse struct {
	Intent          string   `json:"intent"`
	Confidence      *float64 `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	ExtractedParams *struct {
		SearchText         string   `json:"searchText"`
		Category           string   `json:"category"`
		Brand              string   `json:"brand"`
		PriceHint          string   `json:"priceHint"`
		ImageDescription   string   `json:"imageDescription"`
		SupportQuestion    string   `json:"supportQuestion"`
		SuggestedSearches  []string `json:"suggestedSearches"`
		ExplorationContext string   `json:"explorationContext"`
	} `json:"extractedParams"`
}

// Classify determines the intent of a query. Provider errors, timeouts,
// and unparseable responses all fall back to the keyword heuristic.
func (r *Router) Classify(ctx context.Context, q query.Query) intent.Classification {
	log := logger.FromContext(ctx)

	if !q.HasText() {
		if q.HasImage() {
			return fallbackClassification(intent.VisualSearch, "", "image payload without text")
		}
		return fallbackClassification(intent.Clarification, "", "empty query")
	}

	raw, err := r.completer.Complete(ctx, classifyPrompt, q.Text(), true)
	if err != nil {
		log.Warn("intent classification failed, using keyword fallback", zap.Error(err))
		return classifyByKeywords(q.Text())
	}

	c, err := parseClassification(raw, q.Text())
	if err != nil {
		log.Warn("intent response failed validation, using keyword fallback",
			zap.Error(err), zap.String("response", truncate(raw, 500)))
		return classifyByKeywords(q.Text())
	}

	metrics.IntentClassifiedTotal.WithLabelValues(string(c.Intent()), "model").Inc()
	return c
}

// parseClassification is the parse-and-validate boundary for the provider
// output. Required fields must be present and well-formed or the whole
// response is rejected.
func parseClassification(raw, queryText string) (intent.Classification, error) {
	cleaned := stripCodeFences(raw)

	var resp classifierResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return intent.Classification{}, fmt.Errorf("unmarshal classifier response: %w", err)
	}

	it := intent.Intent(resp.Intent)
	if !it.IsValid() {
		return intent.Classification{}, fmt.Errorf("unknown intent %q", resp.Intent)
	}
	if resp.Confidence == nil {
		return intent.Classification{}, fmt.Errorf("missing confidence")
	}
	if resp.Reasoning == "" {
		return intent.Classification{}, fmt.Errorf("missing reasoning")
	}
	if resp.ExtractedParams == nil {
		return intent.Classification{}, fmt.Errorf("missing extractedParams")
	}

	p := intent.Params{
		SearchText:         strings.TrimSpace(resp.ExtractedParams.SearchText),
		CategoryHint:       strings.TrimSpace(resp.ExtractedParams.Category),
		BrandHint:          strings.TrimSpace(resp.ExtractedParams.Brand),
		PriceHint:          strings.TrimSpace(resp.ExtractedParams.PriceHint),
		ImageDescription:   strings.TrimSpace(resp.ExtractedParams.ImageDescription),
		SupportQuestion:    strings.TrimSpace(resp.ExtractedParams.SupportQuestion),
		SuggestedSearches:  cleanSearches(resp.ExtractedParams.SuggestedSearches),
		ExplorationContext: strings.TrimSpace(resp.ExtractedParams.ExplorationContext),
	}

	confidence := *resp.Confidence
	if it == intent.GenericExploration && len(p.SuggestedSearches) < intent.MinSuggestedSearches {
		// Keep what came, but an under-filled suggestion list is a weak signal.
		confidence = confidence / 2
	}
	if it == intent.TextSearch && p.SearchText == "" {
		p.SearchText = queryText
	}
	if it == intent.Support && p.SupportQuestion == "" {
		p.SupportQuestion = queryText
	}

	return intent.NewClassification(it, confidence, resp.Reasoning, p), nil
}

func cleanSearches(raw []string) []string {
	var out []string
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// stripCodeFences removes markdown fences some models wrap JSON in.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Keyword sets for the deterministic fallback classifier.
var (
	visualKeywords  = []string{"image", "photo", "picture", "looks like", "similar to this", "visually"}
	supportKeywords = []string{
		"help", "return", "refund", "shipping", "delivery", "policy", "policies",
		"how do i", "how to", "warranty", "track", "cancel", "payment", "exchange",
	}
)

// classifyByKeywords is the fallback used whenever the provider is
// unavailable or its response fails validation.
func classifyByKeywords(text string) intent.Classification {
	lower := strings.ToLower(text)

	if len(strings.TrimSpace(text)) < 3 {
		return fallbackClassification(intent.Clarification, text, "query too short to classify")
	}
	for _, kw := range visualKeywords {
		if strings.Contains(lower, kw) {
			return fallbackClassification(intent.VisualSearch, text, "visual keyword match")
		}
	}
	for _, kw := range supportKeywords {
		if strings.Contains(lower, kw) {
			return fallbackClassification(intent.Support, text, "support keyword match")
		}
	}
	return fallbackClassification(intent.TextSearch, text, "keyword fallback default")
}

func fallbackClassification(it intent.Intent, text, reason string) intent.Classification {
	metrics.IntentClassifiedTotal.WithLabelValues(string(it), "fallback").Inc()
	p := intent.Params{}
	switch it {
	case intent.TextSearch:
		p.SearchText = text
	case intent.Support:
		p.SupportQuestion = text
	case intent.VisualSearch:
		p.ImageDescription = text
	}
	return intent.NewClassification(it, 0.5, reason, p)
}
