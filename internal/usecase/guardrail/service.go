// Package guardrail infers per-query category constraints. Guardrails are
// hard filters, so the failure direction matters: every error path returns
// the open constraint (no restriction), never a deny-list that would
// exclude everything.
package guardrail

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lexora-cloud/lexsearch/internal/domain/category"
	"github.com/lexora-cloud/lexsearch/internal/logger"
)

// Completer is the completion provider contract.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, jsonMode bool) (string, error)
}

// Inferencer maps free-form query text to a category constraint.
type Inferencer struct {
	completer Completer
}

// New creates the inferencer.
func New(completer Completer) *Inferencer {
	return &Inferencer{completer: completer}
}

const promptTemplate = `You map a shopping query to catalog category guardrails.

The catalog has exactly these categories:
%s

Given the query, decide which categories the results should be restricted to
(allow) and which must never appear (exclude). Only use categories from the
list above. When the query gives no category signal, return empty lists.

Respond with a JSON object:
{"allow": ["<category>", ...], "exclude": ["<category>", ...], "rationale": "<one sentence>"}`

// constraintResponse is the untrusted wire shape of the provider output.
type constraintResponse struct {
	Allow     []string `json:"allow"`
	Exclude   []string `json:"exclude"`
	Rationale string   `json:"rationale"`
}

// InferCategories returns the category constraint for the query text.
// Unrecognized category values are dropped silently; provider errors
// degrade to the open constraint.
func (inf *Inferencer) InferCategories(ctx context.Context, text string) category.Constraint {
	log := logger.FromContext(ctx)

	known := category.Known()
	names := make([]string, len(known))
	for i, c := range known {
		names[i] = "- " + string(c)
	}
	systemPrompt := fmt.Sprintf(promptTemplate, strings.Join(names, "\n"))

	raw, err := inf.completer.Complete(ctx, systemPrompt, text, true)
	if err != nil {
		log.Warn("category inference failed, guardrails open", zap.Error(err))
		return category.Constraint{}
	}

	var resp constraintResponse
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &resp); err != nil {
		log.Warn("category inference response unparseable, guardrails open", zap.Error(err))
		return category.Constraint{}
	}

	constraint := category.NewConstraint(resp.Allow, resp.Exclude)
	if !constraint.IsOpen() {
		log.Debug("category guardrails inferred",
			zap.String("rationale", resp.Rationale),
			zap.Int("allowed", len(constraint.Allowed())),
			zap.Int("excluded", len(constraint.Excluded())),
		)
	}
	return constraint
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
