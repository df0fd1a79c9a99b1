package parse

import (
	"testing"

	"github.com/joseph-ayodele/exam-ingest/constants"
)

func TestParseRecitation_HyphenChainFamily(t *testing.T) {
	items := ParseRecitation("bake (v.) 烘焙-baker (n.) 烘焙师-bakery (n.) 烘焙坊")
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(items), items)
	}
	wantAnswers := []string{"v. 烘焙", "n. 烘焙师", "n. 烘焙坊"}
	wantWords := []string{"bake", "baker", "bakery"}
	for i, it := range items {
		if it.Type != constants.QuestionVocabulary {
			t.Errorf("item %d type = %s, want vocabulary", i, it.Type)
		}
		if it.Content != wantWords[i] {
			t.Errorf("item %d content = %q, want %q", i, it.Content, wantWords[i])
		}
		if it.Answer != wantAnswers[i] {
			t.Errorf("item %d answer = %q, want %q", i, it.Answer, wantAnswers[i])
		}
		if got := it.TagValue(constants.TagFamily); got != "bake" {
			t.Errorf("item %d family = %q, want %q", i, got, "bake")
		}
	}
}

func TestParseRecitation_SingleEntryLines(t *testing.T) {
	text := "1. abandon v. 放弃\napple ...... 苹果\nhappy(adj.) 开心"
	items := ParseRecitation(text)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(items), items)
	}
	if items[0].Content != "abandon" || items[0].Answer != "v. 放弃" {
		t.Errorf("item 0 = %q / %q", items[0].Content, items[0].Answer)
	}
	if items[1].Content != "apple" || items[1].Answer != "苹果" {
		t.Errorf("item 1 = %q / %q", items[1].Content, items[1].Answer)
	}
	if items[2].Content != "happy" || items[2].Answer != "adj. 开心" {
		t.Errorf("item 2 = %q / %q", items[2].Content, items[2].Answer)
	}
}

func TestParseRecitation_SkipsHeadingsAndShortLines(t *testing.T) {
	text := "List 3\nUnit 7 School Life\nok\nbake (v.) 烘焙"
	items := ParseRecitation(text)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(items), items)
	}
	if items[0].Content != "bake" {
		t.Errorf("content = %q, want bake", items[0].Content)
	}
}

func TestParseRecitation_ArrowDerivation(t *testing.T) {
	items := ParseRecitation("luck -> lucky 幸运的")
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(items), items)
	}
	it := items[0]
	if it.Type != constants.QuestionWordTransformation {
		t.Errorf("type = %s, want word_transformation", it.Type)
	}
	if it.Content != "lucky" {
		t.Errorf("content = %q, want lucky", it.Content)
	}
	if got := it.TagValue(constants.TagRoot); got != "luck" {
		t.Errorf("root = %q, want luck", got)
	}
	if it.Answer != "幸运的" {
		t.Errorf("answer = %q, want 幸运的", it.Answer)
	}
}

func TestParseRecitation_FamilyCarriesAcrossLines(t *testing.T) {
	text := "accept v. 接受\nacceptable adj. 可接受的\nacceptance n. 接受\nbanana n. 香蕉"
	items := ParseRecitation(text)
	if len(items) != 4 {
		t.Fatalf("got %d items, want 4: %+v", len(items), items)
	}
	for i := 0; i < 3; i++ {
		if got := items[i].TagValue(constants.TagFamily); got != "accept" {
			t.Errorf("item %d family = %q, want accept", i, got)
		}
	}
	if got := items[3].TagValue(constants.TagFamily); got != "banana" {
		t.Errorf("item 3 family = %q, want banana", got)
	}
}

func TestParseRecitation_FamilyDriftsThroughPrefixChain(t *testing.T) {
	// Each word shares a 3-char prefix with the current root, so the family
	// silently absorbs the whole run even as the words diverge in meaning.
	text := "cat n. 猫\ncatch v. 抓住\ncategory n. 类别"
	items := ParseRecitation(text)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(items), items)
	}
	for i, it := range items {
		if got := it.TagValue(constants.TagFamily); got != "cat" {
			t.Errorf("item %d family = %q, want cat (drift preserved)", i, got)
		}
	}
}

func TestIsRelated(t *testing.T) {
	tests := []struct {
		root, cand string
		want       bool
	}{
		{"bake", "baker", true},       // substring
		{"accept", "acceptable", true},
		{"act", "active", true},       // 3-char prefix
		{"go", "go", true},            // short: exact match
		{"go", "got", false},          // short: no partial credit
		{"banana", "cherry", false},
		{"Teach", "teacher", true},    // case-insensitive
	}
	for _, tt := range tests {
		if got := isRelated(tt.root, tt.cand); got != tt.want {
			t.Errorf("isRelated(%q, %q) = %v, want %v", tt.root, tt.cand, got, tt.want)
		}
	}
}

func TestParseRecitation_PackedWideSpaceBlocks(t *testing.T) {
	// Tab-packed independent entries on one line.
	text := "bake (v.) 烘焙\tcherry (n.) 樱桃"
	items := ParseRecitation(text)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	if items[0].Content != "bake" || items[1].Content != "cherry" {
		t.Errorf("contents = %q, %q", items[0].Content, items[1].Content)
	}
	if got := items[1].TagValue(constants.TagFamily); got != "cherry" {
		t.Errorf("second block family = %q, want cherry", got)
	}
}
