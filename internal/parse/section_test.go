package parse

import (
	"strings"
	"testing"
)

func TestIsolate_GrammarSectionBounds(t *testing.T) {
	text := "Part 1 Listening\nlistening items here\n" +
		"Part 2 Grammar and Vocabulary\n21. A question ____.\n22. Another ____.\n" +
		"Part 3 Reading Comprehension\npassage text here"

	got := Isolate(text)
	if !strings.Contains(got, "21. A question") || !strings.Contains(got, "22. Another") {
		t.Fatalf("target section lost: %q", got)
	}
	if strings.Contains(got, "listening items") {
		t.Errorf("content before section start kept: %q", got)
	}
	if strings.Contains(got, "passage text") {
		t.Errorf("content after section end kept: %q", got)
	}
}

func TestIsolate_NoEndHeader(t *testing.T) {
	text := "Grammar and Vocabulary\n21. A question ____.\n22. Another ____."
	got := Isolate(text)
	if !strings.Contains(got, "22. Another") {
		t.Fatalf("section tail lost: %q", got)
	}
}

func TestIsolate_NoStartHeaderPassesThrough(t *testing.T) {
	text := "21. A question ____.\n22. Another ____."
	if got := Isolate(text); got != text {
		t.Fatalf("text without headers changed: %q", got)
	}
}

func TestIsolate_EarliestEndWins(t *testing.T) {
	text := "Grammar and Vocabulary\n21. q ____\nWriting\nessay prompt\nPart 3 Reading\npassage"
	got := Isolate(text)
	if strings.Contains(got, "essay prompt") {
		t.Errorf("cut at later end header, want earliest: %q", got)
	}
}
