package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/exam-ingest/constants"
)

// TextExtractor turns an uploaded document into raw text, page by page.
type TextExtractor interface {
	Extract(ctx context.Context, path string, format constants.FileFormat) (TextExtractionResult, error)
}

// Recognizer performs OCR on a single base64-encoded JPEG image.
type Recognizer interface {
	Recognize(ctx context.Context, imageBase64 string) (string, error)
}

type TextExtractionResult struct {
	Text      string
	PageTexts []string
	Pages     int
	Method    string // "word-text" | "pdf-text" | "pdf-ocr"
	Duration  time.Duration
	Warnings  []string
}
