package extract

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"testing"

	"github.com/joseph-ayodele/exam-ingest/constants"
	"github.com/joseph-ayodele/exam-ingest/internal/common"
)

type stubRecognizer struct {
	recognizeFn func(ctx context.Context, imageBase64 string) (string, error)
}

func (s *stubRecognizer) Recognize(ctx context.Context, imageBase64 string) (string, error) {
	return s.recognizeFn(ctx, imageBase64)
}

// stubRunner fakes pdftoppm by writing a small JPEG under the output
// prefix, or failing outright when fail is set.
type stubRunner struct {
	fail  bool
	calls int
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls++
	if s.fail {
		return nil, []byte("Syntax Error: rendering failed"), errors.New("exit status 1")
	}
	prefix := args[len(args)-1]
	f, err := os.Create(prefix + "-01.jpg")
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	if err := jpeg.Encode(f, img, nil); err != nil {
		return nil, nil, err
	}
	return nil, nil, nil
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	e := NewExtractor(common.ExtractConfig{}, nil, nil)
	_, err := e.Extract(context.Background(), "paper.xlsx", constants.FileFormat("XLSX"))
	if !errors.Is(err, common.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractPDFByOCR_PagesInOrder(t *testing.T) {
	var seen int
	recognizer := &stubRecognizer{
		recognizeFn: func(ctx context.Context, imageBase64 string) (string, error) {
			seen++
			return fmt.Sprintf("page %d text", seen), nil
		},
	}
	e := NewExtractor(common.ExtractConfig{}, recognizer, nil)
	e.runner = &stubRunner{}

	res, err := e.extractPDFByOCR(context.Background(), "scan.pdf", 3)
	if err != nil {
		t.Fatalf("extractPDFByOCR: %v", err)
	}
	if res.Method != "pdf-ocr" {
		t.Errorf("method = %q, want pdf-ocr", res.Method)
	}
	if res.Pages != 3 || len(res.PageTexts) != 3 {
		t.Fatalf("pages = %d, pageTexts = %d, want 3/3", res.Pages, len(res.PageTexts))
	}
	for i, want := range []string{"page 1 text", "page 2 text", "page 3 text"} {
		if res.PageTexts[i] != want {
			t.Errorf("pageTexts[%d] = %q, want %q", i, res.PageTexts[i], want)
		}
	}
}

func TestExtractPDFByOCR_FailedPageGetsPlaceholder(t *testing.T) {
	call := 0
	recognizer := &stubRecognizer{
		recognizeFn: func(ctx context.Context, imageBase64 string) (string, error) {
			call++
			if call == 2 {
				return "", errors.New("ocr service unavailable")
			}
			return "recognized", nil
		},
	}
	e := NewExtractor(common.ExtractConfig{}, recognizer, nil)
	e.runner = &stubRunner{}

	res, err := e.extractPDFByOCR(context.Background(), "scan.pdf", 3)
	if err != nil {
		t.Fatalf("extractPDFByOCR: %v", err)
	}
	if res.PageTexts[1] != ocrFailedPlaceholder(2) {
		t.Errorf("pageTexts[1] = %q, want placeholder", res.PageTexts[1])
	}
	if res.PageTexts[0] != "recognized" || res.PageTexts[2] != "recognized" {
		t.Error("sibling pages should survive one page's OCR failure")
	}
	if len(res.Warnings) != 1 {
		t.Errorf("warnings = %d, want 1", len(res.Warnings))
	}
}

func TestExtractPDFByOCR_RenderFailureRetriesThenSkips(t *testing.T) {
	recognizer := &stubRecognizer{
		recognizeFn: func(ctx context.Context, imageBase64 string) (string, error) {
			return "text", nil
		},
	}
	e := NewExtractor(common.ExtractConfig{}, recognizer, nil)
	runner := &stubRunner{fail: true}
	e.runner = runner

	res, err := e.extractPDFByOCR(context.Background(), "scan.pdf", 1)
	if err != nil {
		t.Fatalf("extractPDFByOCR: %v", err)
	}
	// one initial render plus one retry at lower resolution
	if runner.calls != 2 {
		t.Errorf("runner calls = %d, want 2", runner.calls)
	}
	if res.PageTexts[0] != ocrFailedPlaceholder(1) {
		t.Errorf("pageTexts[0] = %q, want placeholder", res.PageTexts[0])
	}
}

func TestExtractPDFByOCR_NoRecognizer(t *testing.T) {
	e := NewExtractor(common.ExtractConfig{}, nil, nil)
	_, err := e.extractPDFByOCR(context.Background(), "scan.pdf", 1)
	if !errors.Is(err, common.ErrExtractionFailed) {
		t.Fatalf("err = %v, want ErrExtractionFailed", err)
	}
}
