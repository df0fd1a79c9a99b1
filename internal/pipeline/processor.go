package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/exam-ingest/constants"
	"github.com/joseph-ayodele/exam-ingest/internal/entity"
	"github.com/joseph-ayodele/exam-ingest/internal/extract"
	"github.com/joseph-ayodele/exam-ingest/internal/parse"
)

// Processor runs the full document-to-questions pipeline for one file:
// text extraction, then the mode-appropriate parsing path. It never
// touches persistence; callers decide what to do with the result.
type Processor struct {
	extractor extract.TextExtractor
	logger    *slog.Logger
}

func NewProcessor(extractor extract.TextExtractor, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{extractor: extractor, logger: logger}
}

// Result summarizes one processed document.
type Result struct {
	Questions []entity.ParsedQuestion
	Pages     int
	Method    string
	Duration  time.Duration
}

// Process extracts and parses a single document according to mode.
func (p *Processor) Process(ctx context.Context, path string, mode constants.ImportMode) (Result, error) {
	format := constants.MapExtToFormat(filepath.Ext(path))
	res, err := p.extractor.Extract(ctx, path, format)
	if err != nil {
		return Result{}, err
	}

	questions := p.ParseText(res.Text, mode)
	p.logger.Info("pipeline.processed",
		"path", path,
		"mode", mode,
		"method", res.Method,
		"pages", res.Pages,
		"questions", len(questions),
	)
	return Result{
		Questions: questions,
		Pages:     res.Pages,
		Method:    res.Method,
		Duration:  res.Duration,
	}, nil
}

// ParseText runs the pure text-to-questions half of the pipeline.
// Recitation sheets skip section isolation and answer-key truncation;
// their whole text is the content.
func (p *Processor) ParseText(text string, mode constants.ImportMode) []entity.ParsedQuestion {
	if mode == constants.ModeRecitation {
		return parse.ParseRecitation(text)
	}

	cleaned := parse.Clean(text)
	cleaned = parse.StripAnswerKey(cleaned)
	section := parse.Isolate(cleaned)
	units := parse.Segment(section)
	return parse.ClassifyAll(units)
}
