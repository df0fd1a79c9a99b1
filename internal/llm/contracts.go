package llm

import "context"

// QuestionInput is one parsed question sent for answer analysis.
type QuestionInput struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// AnswerFill is the normalized per-question result we want back.
type AnswerFill struct {
	ID       string `json:"id"`
	Answer   string `json:"answer"`
	Analysis string `json:"analysis,omitempty"`
}

type AnalyzeRequest struct {
	Questions []QuestionInput
	// Subject hint shown to the model, e.g. "junior-high English".
	SubjectHint string
}

// AnswerAnalyzer is the interface the ingestion pipeline depends on.
type AnswerAnalyzer interface {
	FillAnswers(ctx context.Context, req AnalyzeRequest) ([]AnswerFill, []byte /*rawJSON*/, error)
}
