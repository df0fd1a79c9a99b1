package parse

import (
	"strings"
	"testing"
)

func TestSegment_TwoUnitsWithOCRMergedLine(t *testing.T) {
	// The second question was merged onto the option line of the first by
	// OCR; the run of four spaces before "22." is the only delimiter.
	text := "21. ___ film Ne Zha 2 was a big success.\n" +
		"A) A B) An C) The D) /    22. —Where did you get it? —We made it ____.\n" +
		"A) we B) us C) our D) ourselves"

	units := Segment(text)
	if len(units) != 2 {
		t.Fatalf("Segment returned %d units, want 2: %q", len(units), units)
	}
	if !strings.HasPrefix(units[0], "21.") {
		t.Errorf("unit 0 = %q, want prefix %q", units[0], "21.")
	}
	if !strings.HasPrefix(units[1], "22.") {
		t.Errorf("unit 1 = %q, want prefix %q", units[1], "22.")
	}
}

func TestSegment_NewlineDelimited(t *testing.T) {
	text := "1. First question ____.\n2. Second question ____.\n3. Third one?"
	units := Segment(text)
	if len(units) != 3 {
		t.Fatalf("got %d units, want 3: %q", len(units), units)
	}
	for i, want := range []string{"1.", "2.", "3."} {
		if !strings.HasPrefix(units[i], want) {
			t.Errorf("unit %d = %q, want prefix %q", i, units[i], want)
		}
	}
}

func TestSegment_BracketedMarkers(t *testing.T) {
	text := "(1) pick the word\n（2）选择正确答案\n[3] another one"
	units := Segment(text)
	if len(units) != 3 {
		t.Fatalf("got %d units, want 3: %q", len(units), units)
	}
}

func TestSegment_NoMarkers(t *testing.T) {
	if units := Segment("no numbering anywhere in this text"); len(units) != 0 {
		t.Fatalf("got %d units, want 0", len(units))
	}
	if units := Segment(""); len(units) != 0 {
		t.Fatalf("empty input: got %d units, want 0", len(units))
	}
}

func TestSegment_InlineDigitsNotMarkers(t *testing.T) {
	// A digit mid-sentence ("Ne Zha 2 was") is not a delimiter.
	text := "21. The film Ne Zha 2 was a big success."
	units := Segment(text)
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1: %q", len(units), units)
	}
}

func TestSegment_PreservesMarkerOrder(t *testing.T) {
	text := "5. five\n3. three\n9. nine"
	units := Segment(text)
	if len(units) != 3 {
		t.Fatalf("got %d units, want 3", len(units))
	}
	// Units are not reordered or deduplicated.
	joined := strings.Join(units, " ")
	for _, marker := range []string{"5.", "3.", "9."} {
		if !strings.Contains(joined, marker) {
			t.Errorf("reassembled text lost marker %q", marker)
		}
	}
	if strings.Index(joined, "5.") > strings.Index(joined, "3.") {
		t.Error("units were reordered")
	}
}

func TestSegment_ReconstructionKeepsEveryMarker(t *testing.T) {
	text := "1. one ____\n2. two ____    3. three\n(4) four"
	markers := reQuestionMarker.FindAllString(text, -1)
	units := Segment(text)
	joined := strings.Join(units, "\n")
	for _, m := range markers {
		m = strings.TrimSpace(m)
		if !strings.Contains(joined, m) {
			t.Errorf("marker %q dropped from segmented output", m)
		}
	}
}
