package parse

import (
	"testing"

	"github.com/joseph-ayodele/exam-ingest/constants"
)

func TestClassify_WordTransformation(t *testing.T) {
	q := Classify("46. The art students can ______ the tools. (operation)")
	if q.Type != constants.QuestionWordTransformation {
		t.Fatalf("type = %s, want %s", q.Type, constants.QuestionWordTransformation)
	}
	if got := q.TagValue(constants.TagRoot); got != "operation" {
		t.Errorf("root tag = %q, want %q", got, "operation")
	}
}

func TestClassify_SentenceTransformationKeyword(t *testing.T) {
	unit := "57. My puppy weighed ___ (对划线部分提问)\n______ ______ did your puppy weigh?"
	q := Classify(unit)
	if q.Type != constants.QuestionSentenceTransformation {
		t.Fatalf("type = %s, want %s", q.Type, constants.QuestionSentenceTransformation)
	}
}

func TestClassify_SentenceTransformationByShape(t *testing.T) {
	// No instruction keyword, but parenthetical + blank + question mark.
	unit := "12. He goes to school by bike. (every day) ____ he ____ to school every day?"
	q := Classify(unit)
	if q.Type != constants.QuestionSentenceTransformation {
		t.Fatalf("type = %s, want %s", q.Type, constants.QuestionSentenceTransformation)
	}
}

func TestClassify_CollocationBlankNoHint(t *testing.T) {
	q := Classify("31. We look forward ____ hearing from you soon")
	if q.Type != constants.QuestionCollocation {
		t.Fatalf("type = %s, want %s", q.Type, constants.QuestionCollocation)
	}
	if got := q.TagValue(constants.TagCollocation); got != "look forward" {
		t.Errorf("collocation tag = %q, want %q", got, "look forward")
	}
}

func TestClassify_GrammarDefault(t *testing.T) {
	q := Classify("7. Which of the following is correct")
	if q.Type != constants.QuestionGrammar {
		t.Fatalf("type = %s, want %s", q.Type, constants.QuestionGrammar)
	}
	if len(q.Tags) != 0 {
		t.Errorf("tags = %v, want none", q.Tags)
	}
}

func TestClassify_CollocationPhraseTag(t *testing.T) {
	unit := "14. Did he succeed in ____ the final exam last week"
	q := Classify(unit)
	if q.Type != constants.QuestionCollocation {
		t.Fatalf("type = %s, want %s", q.Type, constants.QuestionCollocation)
	}
	if got := q.TagValue(constants.TagCollocation); got != "succeed in" {
		t.Errorf("collocation tag = %q, want %q", got, "succeed in")
	}
}

func TestClassify_GrammarMultipleChoiceNoBlank(t *testing.T) {
	unit := "9. Choose the correct sentence. A. He go home B. He goes home, and he is interested in sports"
	q := Classify(unit)
	if q.Type != constants.QuestionGrammar {
		t.Fatalf("type = %s, want %s", q.Type, constants.QuestionGrammar)
	}
	if got := q.TagValue(constants.TagCollocation); got != "interested in" {
		t.Errorf("collocation tag = %q, want %q", got, "interested in")
	}
}

func TestClassify_AnswerAlwaysEmpty(t *testing.T) {
	for _, unit := range []string{
		"46. The art students can ______ the tools. (operation)",
		"31. Fill in ____ the blank",
		"7. Plain grammar item",
	} {
		if q := Classify(unit); q.Answer != "" {
			t.Errorf("Classify(%q).Answer = %q, want empty", unit, q.Answer)
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	units := []string{
		"46. The art students can ______ the tools. (operation)",
		"57. My puppy weighed ___ (对划线部分提问)",
		"31. We are looking forward ____ hearing from you",
		"7. Which of the following is correct",
	}
	for _, u := range units {
		first := Classify(u)
		second := Classify(first.Content)
		if first.Type != second.Type {
			t.Errorf("Classify(%q) not idempotent: %s then %s", u, first.Type, second.Type)
		}
	}
}

func TestClassify_NonEmptyContent(t *testing.T) {
	q := Classify("46. Anything at all")
	if q.Content == "" {
		t.Fatal("classified question has empty content")
	}
	if q.ID == "" {
		t.Fatal("classified question has empty ephemeral id")
	}
}
