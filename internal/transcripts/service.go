package transcripts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transcript-backend/internal/analyses"
	"transcript-backend/internal/extract"
	"transcript-backend/internal/shared/metrics"
	"transcript-backend/internal/shared/telemetry"
)

// Analyzer produces a Result from transcript text.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) (analyses.Result, error)
}

// Service runs the extract and analyze stages for one upload.
type Service struct {
	Analyzer Analyzer
	// Extract defaults to extract.ExtractPDFText.
	Extract func(ctx context.Context, data []byte) (string, error)
}

// NewService constructs a Service backed by the PDF extractor.
func NewService(analyzer Analyzer) *Service {
	return &Service{Analyzer: analyzer, Extract: extract.ExtractPDFText}
}

// Process extracts the document text and analyzes it.
func (s *Service) Process(ctx context.Context, doc UploadedDocument) (analyses.Result, error) {
	start := time.Now()
	metrics.AnalysisStarted.Inc()

	result, err := s.process(ctx, doc)
	if err != nil {
		metrics.AnalysisFailed.WithLabelValues(failureReason(err)).Inc()
		return analyses.Result{}, err
	}

	metrics.AnalysisCompleted.Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	return result, nil
}

func (s *Service) process(ctx context.Context, doc UploadedDocument) (analyses.Result, error) {
	extractFn := s.Extract
	if extractFn == nil {
		extractFn = extract.ExtractPDFText
	}

	text, err := extractFn(ctx, doc.Data)
	if err != nil {
		return analyses.Result{}, fmt.Errorf("extract %s: %w", doc.DisplayName(), err)
	}
	telemetry.Info("transcript.extracted", map[string]any{
		"request_id": requestID(ctx),
		"file_name":  doc.DisplayName(),
		"chars":      len([]rune(text)),
		"truncated":  len([]rune(text)) > analyses.MaxTranscriptChars,
	})

	if s.Analyzer == nil {
		return analyses.Result{}, fmt.Errorf("analyze %s: %w", doc.DisplayName(), analyses.ErrExternalService)
	}
	result, err := s.Analyzer.Analyze(ctx, text)
	if err != nil {
		return analyses.Result{}, fmt.Errorf("analyze %s: %w", doc.DisplayName(), err)
	}
	return result, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, extract.ErrExtraction):
		return metrics.ReasonExtraction
	case errors.Is(err, analyses.ErrSchemaParse):
		return metrics.ReasonSchema
	case errors.Is(err, analyses.ErrExternalService):
		return metrics.ReasonExternal
	default:
		return metrics.ReasonInternal
	}
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	ctx = analyses.WithRequestID(ctx, id)
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
