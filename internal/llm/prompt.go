package llm

import (
	"encoding/json"
	"strings"
)

// BuildSystemPrompt composes the system message for answer analysis.
func BuildSystemPrompt(req AnalyzeRequest) string {
	subject := strings.TrimSpace(req.SubjectHint)
	if subject == "" {
		subject = "junior-high English"
	}
	parts := []string{
		"You are a " + subject + " teacher. For every question you receive, produce the correct answer.",
		"Return ONLY JSON that matches the JSON Schema provided.",
		"Blanks in a question are shown as runs of underscores; your 'answer' replaces the blanks, in order, separated by spaces.",
		"For multiple-choice questions, answer with the option letter only.",
		"For word_transformation questions, answer with the correctly transformed word.",
		"For sentence_transformation questions, answer with the full rewritten sentence.",
		"Keep 'analysis' to one short sentence in Chinese explaining the grammar point, or omit it.",
		"Never output null. Answer every question; if genuinely unanswerable, use an empty string.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt serializes the questions as a JSON array so numbering
// inside the question text cannot be confused with our ids.
func BuildUserPrompt(questions []QuestionInput) string {
	b, _ := json.Marshal(questions)
	var sb strings.Builder
	sb.WriteString("Questions:\n")
	sb.Write(b)
	return sb.String()
}
