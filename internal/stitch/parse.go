package stitch

import (
	"regexp"
	"strings"
)

// reIDMarker tolerates the spacing and fullwidth-colon variants OCR
// tends to introduce into the rendered [[ID:x]] markers.
var reIDMarker = regexp.MustCompile(`\[\[\s*ID\s*[:：]\s*([^\]\s]+)\s*\]\]`)

// reLeadingSeparator strips what remains of the dashed rule when OCR
// picks it up as a run of hyphens or underscores ahead of the answer.
var reLeadingSeparator = regexp.MustCompile(`^[\s\-_—–]+`)

// ParseStitchedOCRResult splits the recognized text of a stitched
// composite back into per-ID spans. The returned slice preserves the
// order the markers appeared in. Text before the first marker is
// discarded; a marker with no following text maps to an empty string.
func ParseStitchedOCRResult(text string) (map[string]string, []string) {
	matches := reIDMarker.FindAllStringSubmatchIndex(text, -1)
	result := make(map[string]string, len(matches))
	ids := make([]string, 0, len(matches))

	for i, m := range matches {
		id := text[m[2]:m[3]]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		span := text[m[1]:end]
		span = reLeadingSeparator.ReplaceAllString(span, "")
		span = strings.TrimSpace(span)

		if _, dup := result[id]; !dup {
			ids = append(ids, id)
		}
		result[id] = span
	}
	return result, ids
}
