package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/exam-ingest/internal/common"
)

// ocrFailedPlaceholder marks a page whose OCR attempt was abandoned.
// The pipeline keeps going; a one-page hole beats losing the paper.
func ocrFailedPlaceholder(page int) string {
	return fmt.Sprintf("[第%d页识别失败]", page)
}

// extractPDFByOCR re-runs every page through the OCR service. Each page
// is rasterized on its own so a single corrupt page can be retried at a
// lower resolution without re-rendering the rest of the document.
func (e *Extractor) extractPDFByOCR(ctx context.Context, path string, numPages int) (TextExtractionResult, error) {
	if e.recognizer == nil {
		return TextExtractionResult{}, fmt.Errorf("%w: ocr requested but no recognizer configured", common.ErrExtractionFailed)
	}

	tmpDir, err := os.MkdirTemp("", "ei-pp-*")
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("%w: %v", common.ErrExtractionFailed, err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("extract.ocr.tmp_cleanup_failed", "dir", tmpDir, "error", err)
		}
	}()

	pageTexts := make([]string, 0, numPages)
	var warnings []string
	for i := 1; i <= numPages; i++ {
		text, err := e.ocrPage(ctx, path, tmpDir, i)
		if err != nil {
			e.logger.Warn("extract.ocr.page_failed", "path", path, "page", i, "error", err)
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, err))
			text = ocrFailedPlaceholder(i)
		}
		pageTexts = append(pageTexts, text)
	}

	return TextExtractionResult{
		Text:      strings.Join(pageTexts, "\n"),
		PageTexts: pageTexts,
		Pages:     numPages,
		Method:    "pdf-ocr",
		Warnings:  warnings,
	}, nil
}

// ocrPage renders one page to JPEG and sends it to the OCR service.
// A render failure gets one retry at reduced resolution and quality
// before the page is written off.
func (e *Extractor) ocrPage(ctx context.Context, path, tmpDir string, page int) (string, error) {
	img, err := e.renderPage(ctx, path, tmpDir, page, e.cfg.RenderDPI, e.cfg.JPEGQuality)
	if err != nil {
		e.logger.Info("extract.ocr.render_retry", "page", page, "dpi", e.cfg.RetryDPI)
		img, err = e.renderPage(ctx, path, tmpDir, page, e.cfg.RetryDPI, e.cfg.RetryQuality)
		if err != nil {
			return "", fmt.Errorf("render page: %w", err)
		}
	}

	payload, err := jpegUnderOCRLimit(img)
	if err != nil {
		return "", fmt.Errorf("prepare page image: %w", err)
	}

	ocrCtx, cancel := context.WithTimeout(ctx, e.cfg.OCRTimeout)
	defer cancel()
	text, err := e.recognizer.Recognize(ocrCtx, base64.StdEncoding.EncodeToString(payload))
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}

// renderPage shells out to pdftoppm for a single page and returns the
// produced JPEG path.
func (e *Extractor) renderPage(ctx context.Context, path, tmpDir string, page, dpi, quality int) (string, error) {
	prefix := filepath.Join(tmpDir, fmt.Sprintf("p%03d", page))
	pageArg := strconv.Itoa(page)
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-f", pageArg, "-l", pageArg,
		"-r", strconv.Itoa(dpi),
		"-jpeg", "-jpegopt", fmt.Sprintf("quality=%d", quality),
		path, prefix,
	)
	if err != nil {
		return "", fmt.Errorf("pdftoppm: %v: %s", err, truncate(string(errb), 512))
	}

	matches, _ := filepath.Glob(prefix + "*.jpg")
	if len(matches) == 0 {
		return "", fmt.Errorf("pdftoppm produced no image for page %d", page)
	}
	return matches[0], nil
}
