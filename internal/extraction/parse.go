package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// extractJSON isolates the JSON object in a model response
func extractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return "", fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return "", fmt.Errorf("invalid JSON object in response")
	}

	return text[startIdx : endIdx+1], nil
}

// decodeReceipt parses a generation response into a Receipt and checks the
// fields the pipeline depends on. Schema-constrained backends should always
// pass; anything non-conforming is an error, not a guess.
func decodeReceipt(text string) (*Receipt, error) {
	jsonText, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var rec Receipt
	if err := json.Unmarshal([]byte(jsonText), &rec); err != nil {
		return nil, fmt.Errorf("unmarshaling receipt: %w", err)
	}

	rec.VendorName = strings.TrimSpace(rec.VendorName)
	if rec.VendorName == "" {
		return nil, fmt.Errorf("missing vendor_name in response")
	}

	rec.TotalAmount = strings.TrimSpace(rec.TotalAmount)
	if rec.TotalAmount == "" {
		return nil, fmt.Errorf("missing total_amount in response")
	}

	date, err := normalizeDate(rec.ReceiptDate)
	if err != nil {
		return nil, err
	}
	rec.ReceiptDate = date

	return &rec, nil
}

// normalizeDate coerces common date layouts to ISO 8601
func normalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("missing receipt_date in response")
	}

	if d, err := time.Parse("2006-01-02", value); err == nil {
		return d.Format("2006-01-02"), nil
	}

	// Try other common formats
	formats := []string{
		"2006/01/02",
		"01/02/2006",
		"02-01-2006",
	}
	for _, format := range formats {
		if d, err := time.Parse(format, value); err == nil {
			return d.Format("2006-01-02"), nil
		}
	}

	return "", fmt.Errorf("unrecognized receipt_date %q", value)
}

// parseInsights parses the free-form enrichment response
func parseInsights(text string) (Insights, error) {
	jsonText, err := extractJSON(text)
	if err != nil {
		return Insights{}, err
	}

	var insights Insights
	if err := json.Unmarshal([]byte(jsonText), &insights); err != nil {
		return Insights{}, fmt.Errorf("unmarshaling insights: %w", err)
	}

	insights.Category = canonicalCategory(insights.Category)
	insights.Memo = strings.TrimSpace(insights.Memo)

	return insights, nil
}

// canonicalCategory matches a model-returned category against the fixed
// vocabulary, case-insensitively. Anything unrecognized becomes Other.
func canonicalCategory(category string) string {
	category = strings.TrimSpace(category)
	for _, c := range Categories {
		if strings.EqualFold(category, c) {
			return c
		}
	}
	return CategoryOther
}
