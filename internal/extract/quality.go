package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minPageTextChars is the floor below which a PDF page's text layer is
// considered unusable. Scanned papers usually yield either nothing or a
// handful of stray glyphs per page.
const minPageTextChars = 50

// pageNeedsOCR reports whether a page's extracted text is too thin or
// too garbled to trust, which escalates the whole document to OCR.
func pageNeedsOCR(text string) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minPageTextChars {
		return true
	}
	// CIDFont subsets without a ToUnicode map surface as literal
	// "(cid:NN)" runs or private-use glyphs.
	if strings.Contains(trimmed, "(cid:") {
		return true
	}
	return printableRatio(trimmed) < 0.85
}

// printableRatio returns the share of characters that are ordinary
// printable text. PUA codepoints, the replacement character, and
// non-whitespace control characters all count against it.
func printableRatio(text string) float64 {
	if text == "" {
		return 1.0
	}
	total := 0
	printable := 0
	for _, r := range text {
		total++
		if isGarbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

func isGarbageRune(r rune) bool {
	if r >= 0xE000 && r <= 0xF8FF { // Private Use Area
		return true
	}
	if r == 0xFFFD {
		return true
	}
	if r < 0x0020 && r != '\n' && r != '\r' && r != '\t' {
		return true
	}
	return false
}
