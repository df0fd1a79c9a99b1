package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/exam-ingest/constants"
	"github.com/joseph-ayodele/exam-ingest/internal/common"
)

// Extractor implements TextExtractor on top of local binaries and a
// remote OCR service. Word documents are read directly; PDFs start on
// the embedded-text path and escalate to whole-document OCR when the
// text layer looks broken.
type Extractor struct {
	cfg        common.ExtractConfig
	runner     Runner
	recognizer Recognizer
	openDoc    func(path string, timeout time.Duration) (pdfDoc, error)
	logger     *slog.Logger
}

func NewExtractor(cfg common.ExtractConfig, recognizer Recognizer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.RenderDPI <= 0 {
		cfg.RenderDPI = 150
	}
	if cfg.RetryDPI <= 0 {
		cfg.RetryDPI = 100
	}
	if cfg.JPEGQuality <= 0 {
		cfg.JPEGQuality = 80
	}
	if cfg.RetryQuality <= 0 {
		cfg.RetryQuality = 50
	}
	if cfg.DocTimeout <= 0 {
		cfg.DocTimeout = 30 * time.Second
	}
	if cfg.PageTimeout <= 0 {
		cfg.PageTimeout = 10 * time.Second
	}
	if cfg.OCRTimeout <= 0 {
		cfg.OCRTimeout = 50 * time.Second
	}
	return &Extractor{
		cfg:        cfg,
		runner:     execRunner{logger: logger},
		recognizer: recognizer,
		openDoc:    openPDF,
		logger:     logger,
	}
}

// Extract dispatches on the declared file format.
func (e *Extractor) Extract(ctx context.Context, path string, format constants.FileFormat) (TextExtractionResult, error) {
	start := time.Now()
	e.logger.Debug("extract.start", "path", path, "format", format)

	var res TextExtractionResult
	var err error
	switch format {
	case constants.WORD:
		res, err = e.extractWord(path)
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	default:
		e.logger.Error("extract.unsupported_format", "format", format)
		return TextExtractionResult{}, common.ErrUnsupportedFormat
	}

	res.Duration = time.Since(start)
	if err != nil {
		e.logger.Error("extract.failed", "path", path, "format", format, "error", err)
		return res, err
	}
	e.logger.Info("extract.done",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
