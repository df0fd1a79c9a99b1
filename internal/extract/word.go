package extract

import (
	"fmt"
	"strings"

	"github.com/lu4p/cat"

	"github.com/joseph-ayodele/exam-ingest/internal/common"
)

// extractWord pulls the text layer out of a .docx/.doc file. Word
// documents carry their text directly, so there is no paging and no
// OCR escalation on this path.
func (e *Extractor) extractWord(path string) (TextExtractionResult, error) {
	text, err := cat.File(path)
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("%w: read word document: %v", common.ErrExtractionFailed, err)
	}
	text = strings.TrimSpace(text)
	return TextExtractionResult{
		Text:      text,
		PageTexts: []string{text},
		Pages:     1,
		Method:    "word-text",
	}, nil
}
