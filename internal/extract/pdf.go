package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"

	"github.com/joseph-ayodele/exam-ingest/internal/common"
)

// pdfDoc is the slice of an opened document the escalation logic needs,
// so that logic can be driven in tests without real PDF fixtures.
type pdfDoc interface {
	pages() int
	pageText(page int, timeout time.Duration) (string, error)
}

// extractPDF walks the embedded text layer first. If any page comes
// back too short or visibly garbled, the accumulated text is thrown
// away and the whole document is re-run through OCR instead, so one
// scanned page does not leave a hole in the middle of a paper.
func (e *Extractor) extractPDF(ctx context.Context, path string) (TextExtractionResult, error) {
	doc, err := e.openDoc(path, e.cfg.DocTimeout)
	if err != nil {
		return TextExtractionResult{}, err
	}

	numPages := doc.pages()
	if e.cfg.MaxPages > 0 && numPages > e.cfg.MaxPages {
		numPages = e.cfg.MaxPages
	}

	pageTexts := make([]string, 0, numPages)
	needsOCR := false
	for i := 1; i <= numPages; i++ {
		content, err := doc.pageText(i, e.cfg.PageTimeout)
		if err != nil {
			if errors.Is(err, common.ErrExtractionTimeout) {
				return TextExtractionResult{}, fmt.Errorf("page %d: %w", i, err)
			}
			e.logger.Warn("extract.pdf.page_failed", "path", path, "page", i, "error", err)
			needsOCR = true
			break
		}
		if pageNeedsOCR(content) {
			e.logger.Info("extract.pdf.low_quality_page", "path", path, "page", i, "chars", len(content))
			needsOCR = true
			break
		}
		pageTexts = append(pageTexts, content)
	}

	if needsOCR && !e.cfg.DisableOCR {
		return e.extractPDFByOCR(ctx, path, numPages)
	}

	// With OCR disabled we keep whatever the text layer gave us, even
	// if a page tripped the quality check.
	if needsOCR {
		for i := len(pageTexts) + 1; i <= numPages; i++ {
			content, err := doc.pageText(i, e.cfg.PageTimeout)
			if err != nil {
				pageTexts = append(pageTexts, "")
				continue
			}
			pageTexts = append(pageTexts, content)
		}
	}

	return TextExtractionResult{
		Text:      strings.Join(pageTexts, "\n"),
		PageTexts: pageTexts,
		Pages:     numPages,
		Method:    "pdf-text",
	}, nil
}

type dslipakDoc struct {
	reader *pdf.Reader
}

func (d dslipakDoc) pages() int {
	return d.reader.NumPage()
}

func (d dslipakDoc) pageText(page int, timeout time.Duration) (string, error) {
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", fmt.Errorf("%w: null page object", common.ErrExtractionFailed)
	}
	return readPageText(p, timeout)
}

// openPDF bounds the initial document load; pathological cross-reference
// tables can otherwise hang the reader indefinitely.
func openPDF(path string, timeout time.Duration) (pdfDoc, error) {
	type result struct {
		reader *pdf.Reader
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		r, err := pdf.Open(path)
		ch <- result{r, err}
	}()
	select {
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("%w: open pdf: %v", common.ErrExtractionFailed, res.err)
		}
		return dslipakDoc{reader: res.reader}, nil
	case <-time.After(timeout):
		return nil, fmt.Errorf("%w: loading document", common.ErrExtractionTimeout)
	}
}

// readPageText races GetPlainText against the per-page budget. The
// underlying parser has no context support, so a stuck page is simply
// abandoned to its goroutine.
func readPageText(page pdf.Page, timeout time.Duration) (string, error) {
	type result struct {
		content string
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{"", fmt.Errorf("%w: page parser panic: %v", common.ErrExtractionFailed, r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		ch <- result{content, err}
	}()
	select {
	case r := <-ch:
		return r.content, r.err
	case <-time.After(timeout):
		return "", fmt.Errorf("%w: reading page text", common.ErrExtractionTimeout)
	}
}
