package ocr

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The OCR service has returned several response shapes across versions:
// a flat text field, ocrResults with prunedResult.rec_texts, and
// layoutParsingResults with either prunedResult or rendered markdown.
// Each known shape is modeled as its own block type and DecodeText
// walks them in a fixed order, so a new shape means adding a variant
// here rather than another speculative nil-probe at a call site.

type recognizeResponse struct {
	ErrorCode int          `json:"errorCode"`
	ErrorMsg  string       `json:"errorMsg"`
	Result    *resultBlock `json:"result"`
	Text      string       `json:"text"`
}

type resultBlock struct {
	Texts                []string      `json:"texts"`
	OCRResults           []ocrBlock    `json:"ocrResults"`
	LayoutParsingResults []layoutBlock `json:"layoutParsingResults"`
}

type ocrBlock struct {
	Text         string       `json:"text"`
	PrunedResult *prunedBlock `json:"prunedResult"`
}

type layoutBlock struct {
	PrunedResult *prunedBlock   `json:"prunedResult"`
	Markdown     *markdownBlock `json:"markdown"`
}

type markdownBlock struct {
	Text string `json:"text"`
}

type prunedBlock struct {
	RecTexts []string `json:"rec_texts"`
}

// DecodeText normalizes any known response shape to plain recognized
// text with one line per detected text region.
func DecodeText(raw []byte) (string, error) {
	var resp recognizeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	if resp.ErrorCode != 0 || resp.ErrorMsg != "" {
		return "", fmt.Errorf("ocr service error %d: %s", resp.ErrorCode, resp.ErrorMsg)
	}

	if text := flattenResult(&resp); text != "" {
		return text, nil
	}
	return "", fmt.Errorf("ocr response contained no recognized text")
}

func flattenResult(resp *recognizeResponse) string {
	if resp.Text != "" {
		return resp.Text
	}
	r := resp.Result
	if r == nil {
		return ""
	}
	if len(r.Texts) > 0 {
		return strings.Join(r.Texts, "\n")
	}
	for _, b := range r.OCRResults {
		if b.PrunedResult != nil && len(b.PrunedResult.RecTexts) > 0 {
			return strings.Join(b.PrunedResult.RecTexts, "\n")
		}
		if b.Text != "" {
			return b.Text
		}
	}
	for _, b := range r.LayoutParsingResults {
		if b.PrunedResult != nil && len(b.PrunedResult.RecTexts) > 0 {
			return strings.Join(b.PrunedResult.RecTexts, "\n")
		}
		if b.Markdown != nil && b.Markdown.Text != "" {
			return b.Markdown.Text
		}
	}
	return ""
}
