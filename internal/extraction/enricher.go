package extraction

import (
	"context"
	"encoding/json"
	"fmt"
)

// Enricher derives a category and memo for an extracted receipt
type Enricher struct {
	generator Generator
}

// NewEnricher creates a new Enricher backed by the given generator
func NewEnricher(generator Generator) *Enricher {
	return &Enricher{generator: generator}
}

// Enrich asks the generator to classify and summarize the record. It returns
// honest errors; callers substitute FallbackInsights when degrading.
func (e *Enricher) Enrich(ctx context.Context, rec *Receipt) (Insights, error) {
	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return Insights{}, fmt.Errorf("marshaling receipt: %w", err)
	}

	prompt := fmt.Sprintf(insightsPromptFmt, string(payload))

	response, err := e.generator.Generate(ctx, Request{Prompt: prompt})
	if err != nil {
		return Insights{}, fmt.Errorf("generating insights: %w", err)
	}

	insights, err := parseInsights(response)
	if err != nil {
		return Insights{}, fmt.Errorf("parsing insights: %w", err)
	}

	return insights, nil
}
