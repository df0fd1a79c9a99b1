package parse

import (
	"regexp"
	"strings"
)

// A question delimiter is a numeric marker, optionally wrapped in
// parens/brackets or followed by punctuation, that appears at the very start
// of the text, right after a newline, or after a run of >=4 whitespace
// characters. The whitespace-run case recovers questions that OCR merged onto
// one line without newlines between them, e.g. "...A) D)    22. —Where...".
var reQuestionMarker = regexp.MustCompile(
	`(^|\n|\s{4,})([(（\[【]\s*\d{1,3}\s*[)）\]】]|\d{1,3}\s*[.．。、，,:：)）])`)

// Segment splits isolated exam text into individual question units, one per
// numeric marker, in original order. Each unit keeps its leading marker.
// Pure function; zero matches yields an empty slice.
func Segment(text string) []string {
	matches := reQuestionMarker.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	// Split points are the start of the marker itself (submatch 2), not of
	// the whitespace that introduced it.
	starts := make([]int, 0, len(matches))
	for _, m := range matches {
		starts = append(starts, m[4])
	}

	units := make([]string, 0, len(starts))
	for i, s := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		unit := strings.TrimSpace(text[s:end])
		if unit == "" {
			continue
		}
		units = append(units, unit)
	}
	return units
}
