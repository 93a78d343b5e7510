package expense

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/vhictorlhanceatendido123-sudo/ocr-telegram-bot/internal/extraction"
)

// Extractor turns raw inputs into receipt records
type Extractor interface {
	// ExtractFromImage reads a receipt photo or document
	ExtractFromImage(ctx context.Context, imageData []byte, contentType string) (*extraction.Receipt, error)
	// ExtractFromText converts a free-form shopping note
	ExtractFromText(ctx context.Context, note string, referenceDate string) (*extraction.Receipt, error)
}

// Enricher derives insights for an extracted record
type Enricher interface {
	Enrich(ctx context.Context, rec *extraction.Receipt) (extraction.Insights, error)
}

// Ledger appends finished records to the expense log
type Ledger interface {
	AppendRow(ctx context.Context, values []string) error
}

// Notifier sends chat messages back to the user
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string, format Format) error
}

// IDGenerator generates correlation IDs for requests
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates random UUIDs
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service runs the receipt pipeline: acknowledge, extract, enrich, persist,
// notify. One call handles one incoming message and shares nothing with
// concurrent calls beyond the collaborators themselves.
type Service struct {
	extractor   Extractor
	enricher    Enricher
	ledger      Ledger
	notifier    Notifier
	idGenerator IDGenerator
	timeSource  TimeSource

	processed          atomic.Uint64
	extractionFailures atomic.Uint64
}

// NewService creates a new Service with default ID generator and time source
func NewService(extractor Extractor, enricher Enricher, ledger Ledger, notifier Notifier) *Service {
	return NewServiceWithDeps(extractor, enricher, ledger, notifier, &defaultIDGenerator{}, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(extractor Extractor, enricher Enricher, ledger Ledger, notifier Notifier, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		extractor:   extractor,
		enricher:    enricher,
		ledger:      ledger,
		notifier:    notifier,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// Stats reports how many requests finished and how many failed extraction
func (s *Service) Stats() (processed, extractionFailures uint64) {
	return s.processed.Load(), s.extractionFailures.Load()
}

// ProcessPhoto runs the pipeline for a receipt photo or document attachment
func (s *Service) ProcessPhoto(ctx context.Context, chatID int64, imageData []byte, contentType string) error {
	logger := slog.With("request_id", s.idGenerator.Generate(), "chat_id", chatID, "kind", "photo")

	s.acknowledge(ctx, logger, chatID, photoAck)

	rec, err := s.extractor.ExtractFromImage(ctx, imageData, contentType)
	if err != nil {
		return s.failExtraction(ctx, logger, chatID, PhotoFailureReply, err)
	}

	return s.finish(ctx, logger, chatID, rec)
}

// ProcessNote runs the pipeline for a free-text shopping note
func (s *Service) ProcessNote(ctx context.Context, chatID int64, note string) error {
	logger := slog.With("request_id", s.idGenerator.Generate(), "chat_id", chatID, "kind", "note")

	s.acknowledge(ctx, logger, chatID, noteAck)

	referenceDate := s.timeSource.Now().Format("2006-01-02")
	rec, err := s.extractor.ExtractFromText(ctx, note, referenceDate)
	if err != nil {
		return s.failExtraction(ctx, logger, chatID, NoteFailureReply, err)
	}

	return s.finish(ctx, logger, chatID, rec)
}

// acknowledge tells the user their input arrived, before extraction starts.
// A failed acknowledgement never stops the pipeline.
func (s *Service) acknowledge(ctx context.Context, logger *slog.Logger, chatID int64, text string) {
	if err := s.notifier.Send(ctx, chatID, text, FormatPlain); err != nil {
		logger.Warn("Failed to send acknowledgement", "error", err)
	}
}

// failExtraction handles the one fatal failure class: count it, log it, send
// the generic apology. Nothing is persisted.
func (s *Service) failExtraction(ctx context.Context, logger *slog.Logger, chatID int64, reply string, err error) error {
	s.extractionFailures.Add(1)
	logger.Error("Failed to extract receipt", "error", err)

	if sendErr := s.notifier.Send(ctx, chatID, reply, FormatPlain); sendErr != nil {
		logger.Warn("Failed to send failure reply", "error", sendErr)
	}

	return fmt.Errorf("extracting receipt: %w", err)
}

// finish runs the enrich, persist and notify stages shared by both paths.
// Enrichment degrades to the fixed fallback insights; ledger and notify
// failures are logged and swallowed so neither blocks the other.
func (s *Service) finish(ctx context.Context, logger *slog.Logger, chatID int64, rec *extraction.Receipt) error {
	insights, err := s.enricher.Enrich(ctx, rec)
	if err != nil {
		logger.Warn("Failed to generate insights, using fallback", "error", err)
		insights = extraction.FallbackInsights()
	}

	record := Merge(rec, insights)

	if err := s.ledger.AppendRow(ctx, record.RowValues()); err != nil {
		logger.Error("Failed to append record to ledger", "error", err)
	}

	if err := s.notifier.Send(ctx, chatID, formatSummary(record), FormatMarkdown); err != nil {
		logger.Error("Failed to send summary", "error", err)
	}

	s.processed.Add(1)
	logger.Info("Processed receipt", "vendor", record.VendorName, "total", record.TotalAmount, "category", record.Category)

	return nil
}
