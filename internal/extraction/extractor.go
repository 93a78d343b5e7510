package extraction

import (
	"context"
	"fmt"
)

// Extractor turns raw receipt inputs into structured records
type Extractor struct {
	generator Generator
}

// NewExtractor creates a new Extractor backed by the given generator
func NewExtractor(generator Generator) *Extractor {
	return &Extractor{generator: generator}
}

// ExtractFromImage reads a receipt photo or document and returns the
// structured record. A single generation attempt is made; no retries.
func (e *Extractor) ExtractFromImage(ctx context.Context, imageData []byte, contentType string) (*Receipt, error) {
	pngData, err := normalizeImage(imageData, contentType)
	if err != nil {
		return nil, &Error{Op: "image", Err: err}
	}

	response, err := e.generator.Generate(ctx, Request{
		Prompt: imageExtractionPrompt,
		Image:  pngData,
		Schema: imageReceiptSchema,
	})
	if err != nil {
		return nil, &Error{Op: "image", Err: err}
	}

	rec, err := decodeReceipt(response)
	if err != nil {
		return nil, &Error{Op: "image", Err: err}
	}

	return rec, nil
}

// ExtractFromText converts a free-form shopping note into a structured
// record. referenceDate (ISO 8601) fills in for notes that never mention a
// date. A single generation attempt is made; no retries.
func (e *Extractor) ExtractFromText(ctx context.Context, note string, referenceDate string) (*Receipt, error) {
	prompt := fmt.Sprintf(noteExtractionPromptFmt, referenceDate, note)

	response, err := e.generator.Generate(ctx, Request{
		Prompt: prompt,
		Schema: noteReceiptSchema,
	})
	if err != nil {
		return nil, &Error{Op: "note", Err: err}
	}

	rec, err := decodeReceipt(response)
	if err != nil {
		return nil, &Error{Op: "note", Err: err}
	}

	// The note schema requires a quantity per item; backfill the documented
	// default when the model leaves one out anyway
	for i := range rec.LineItems {
		if rec.LineItems[i].Quantity == 0 {
			rec.LineItems[i].Quantity = 1
		}
	}

	return rec, nil
}
