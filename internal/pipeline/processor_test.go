package pipeline

import (
	"context"
	"testing"

	"github.com/joseph-ayodele/exam-ingest/constants"
	"github.com/joseph-ayodele/exam-ingest/internal/extract"
)

type stubExtractor struct {
	result extract.TextExtractionResult
	err    error
}

func (s *stubExtractor) Extract(ctx context.Context, path string, format constants.FileFormat) (extract.TextExtractionResult, error) {
	return s.result, s.err
}

func TestParseText_MockPaperPath(t *testing.T) {
	p := NewProcessor(nil, nil)
	text := "二、单项选择\n21. ___ film Ne Zha 2 was a big success.\nA) A B) An C) The D) /\n22. We made it ____.\nA) we B) us C) our D) ourselves\n参考答案\n21. C 22. D"

	questions := p.ParseText(text, constants.ModeMockPaper)
	if len(questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(questions))
	}
	for _, q := range questions {
		if q.Answer != "" {
			t.Errorf("mock-paper answer = %q, want empty (filled later)", q.Answer)
		}
	}
}

func TestParseText_RecitationPath(t *testing.T) {
	p := NewProcessor(nil, nil)
	questions := p.ParseText("bake (v.) 烘焙-baker (n.) 烘焙师", constants.ModeRecitation)
	if len(questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(questions))
	}
	if questions[0].Answer != "v. 烘焙" {
		t.Errorf("answer = %q, want immediate fill on recitation path", questions[0].Answer)
	}
}

func TestProcess_ExtractorResultFlowsThrough(t *testing.T) {
	stub := &stubExtractor{
		result: extract.TextExtractionResult{
			Text:   "21. I am ___ student.\nA) a B) an C) the D) /",
			Pages:  3,
			Method: "pdf-ocr",
		},
	}
	p := NewProcessor(stub, nil)

	res, err := p.Process(context.Background(), "paper.pdf", constants.ModeMockPaper)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Pages != 3 || res.Method != "pdf-ocr" {
		t.Errorf("summary = %+v, want extractor metadata carried", res)
	}
	if len(res.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(res.Questions))
	}
}
