package parse

import (
	"regexp"
	"strings"
)

// BlankMarker is the canonical token standing in for redacted answer text.
// Underline runs, ellipsis runs and similar artifacts are normalized to this
// token so downstream blank detection is pattern-stable.
const BlankMarker = "____"

var (
	// lines consisting solely of a (possibly dash-framed) number
	rePageNumberLine = regexp.MustCompile(`^\s*[-—–]*\s*\d{1,4}\s*[-—–]*\s*$`)

	rePageBoilerplate = regexp.MustCompile(`(?i)page\s+\d+\s+of\s+\d+|第\s*\d+\s*页(?:\s*共\s*\d+\s*页)?`)

	// underline and ellipsis runs (>=3 repeats) collapse to one blank marker
	reUnderlineRun = regexp.MustCompile(`[_＿]{3,}`)
	reEllipsisRun  = regexp.MustCompile(`…{3,}|\.{6,}`)

	reBlankLineRun = regexp.MustCompile(`\n{3,}`)
)

// answerKeyPatterns mark the start of an answer-key section. Everything from
// the first match onward would otherwise be misparsed as further questions.
var answerKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)reference\s+answers?`),
	regexp.MustCompile(`(?i)keys?\s+to\s+(?:the\s+)?exercises?`),
	regexp.MustCompile(`(?i)answer\s+keys?`),
	regexp.MustCompile(`参考答案`),
	regexp.MustCompile(`(?m)^\s*答案\s*[:：]?\s*$`),
}

// Clean strips non-content noise from extracted text: page numbers, page
// boilerplate, runs of blank lines. Long underline/ellipsis runs become the
// canonical blank marker. Pure function, no failure modes.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if rePageNumberLine.MatchString(line) {
			continue
		}
		line = rePageBoilerplate.ReplaceAllString(line, "")
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	text = reUnderlineRun.ReplaceAllString(text, BlankMarker)
	text = reEllipsisRun.ReplaceAllString(text, BlankMarker)
	text = reBlankLineRun.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// StripAnswerKey truncates text at the first answer-key header, discarding
// everything from that point on. Applied in mock-paper and error-set modes
// only; recitation material keeps its full text.
func StripAnswerKey(text string) string {
	cut := len(text)
	for _, re := range answerKeyPatterns {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	return strings.TrimSpace(text[:cut])
}
