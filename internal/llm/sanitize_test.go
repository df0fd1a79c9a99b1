package llm

import (
	"encoding/json"
	"testing"
)

func TestSanitizeAnswerDoc_CoercesAndDrops(t *testing.T) {
	doc := []byte(`{"answers":[
		{"id":"q1","answer":42},
		{"id":"q2","answer":null},
		{"answer":"orphaned"},
		{"id":" q3 ","answer":" C ","analysis":" 冠词用法 ","extra":"noise"}
	]}`)

	cleaned, notes, err := SanitizeAnswerDoc(doc)
	if err != nil {
		t.Fatalf("SanitizeAnswerDoc: %v", err)
	}
	if len(notes) == 0 {
		t.Error("expected sanitize notes")
	}
	if err := ValidateAnswerDoc(cleaned); err != nil {
		t.Fatalf("sanitized doc still invalid: %v", err)
	}

	var out struct {
		Answers []AnswerFill `json:"answers"`
	}
	if err := json.Unmarshal(cleaned, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Answers) != 3 {
		t.Fatalf("answers = %d, want 3 (orphan dropped)", len(out.Answers))
	}
	if out.Answers[0].Answer != "42" {
		t.Errorf("q1 answer = %q, want coerced \"42\"", out.Answers[0].Answer)
	}
	if out.Answers[1].Answer != "" {
		t.Errorf("q2 answer = %q, want empty", out.Answers[1].Answer)
	}
	if out.Answers[2].ID != "q3" || out.Answers[2].Answer != "C" || out.Answers[2].Analysis != "冠词用法" {
		t.Errorf("q3 = %+v, want trimmed fields", out.Answers[2])
	}
}

func TestSanitizeAnswerDoc_TopLevelArray(t *testing.T) {
	cleaned, _, err := SanitizeAnswerDoc([]byte(`[{"id":"a","answer":"B"}]`))
	if err != nil {
		t.Fatalf("SanitizeAnswerDoc: %v", err)
	}
	if err := ValidateAnswerDoc(cleaned); err != nil {
		t.Fatalf("wrapped doc invalid: %v", err)
	}
}

func TestValidate_RejectsMissingAnswer(t *testing.T) {
	doc := []byte(`{"answers":[{"id":"q1"}]}`)
	if err := ValidateAnswerDoc(doc); err == nil {
		t.Fatal("expected validation failure for missing answer")
	}
}
