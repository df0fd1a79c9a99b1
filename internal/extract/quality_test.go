package extract

import (
	"strings"
	"testing"
)

func TestPageNeedsOCR_ShortText(t *testing.T) {
	if !pageNeedsOCR("第一题") {
		t.Error("expected escalation for a page with almost no text")
	}
}

func TestPageNeedsOCR_NormalPage(t *testing.T) {
	text := strings.Repeat("Choose the best answer to complete the sentence. ", 5)
	if pageNeedsOCR(text) {
		t.Error("did not expect escalation for a full page of clean text")
	}
}

func TestPageNeedsOCR_CIDMarkers(t *testing.T) {
	text := strings.Repeat("(cid:102)(cid:105)(cid:108)(cid:108) in the blank ", 4)
	if !pageNeedsOCR(text) {
		t.Error("expected escalation for CID-marker text")
	}
}

func TestPageNeedsOCR_PrivateUseGarbage(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteRune(rune(0xE000 + i))
	}
	if !pageNeedsOCR(b.String()) {
		t.Error("expected escalation for private-use glyph soup")
	}
}

func TestPrintableRatio_Empty(t *testing.T) {
	if got := printableRatio(""); got != 1.0 {
		t.Errorf("printableRatio(\"\") = %f, want 1.0", got)
	}
}

func TestPrintableRatio_Mixed(t *testing.T) {
	clean := "An ordinary English sentence with 中文 mixed in."
	if got := printableRatio(clean); got < 0.95 {
		t.Errorf("printableRatio(clean) = %f, want >= 0.95", got)
	}
	garbled := "abcd"
	if got := printableRatio(garbled); got >= 0.85 {
		t.Errorf("printableRatio(garbled) = %f, want < 0.85", got)
	}
}
