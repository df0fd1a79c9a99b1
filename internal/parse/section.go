package parse

import "regexp"

// Header patterns bounding the grammar/vocabulary section of a full exam
// paper. Ordered: the first start pattern that matches wins, then the first
// end pattern found forward of it.
var (
	sectionStartPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^.{0,20}grammar\s+and\s+vocabulary.*$`),
		regexp.MustCompile(`(?im)^.{0,20}vocabulary\s+and\s+grammar.*$`),
		regexp.MustCompile(`(?im)^\s*part\s*(?:2|ii|two)\b.*$`),
		regexp.MustCompile(`(?m)^.{0,20}(?:语法|词汇|语法与词汇).{0,20}$`),
	}

	sectionEndPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*part\s*(?:3|iii|three)\b.*$`),
		regexp.MustCompile(`(?im)^.{0,20}reading(?:\s+(?:and\s+writing|comprehension))?\b.*$`),
		regexp.MustCompile(`(?im)^.{0,20}writing\b.*$`),
		regexp.MustCompile(`(?m)^.{0,20}(?:阅读理解|阅读|写作|作文).{0,20}$`),
	}
)

// Isolate narrows a whole exam paper to the grammar/vocabulary subsection.
// If no start header is found the full text passes through unmodified; a
// missing end header means "to end of document". Never fails — downstream
// question filtering is relied upon to exclude non-target content.
func Isolate(text string) string {
	start := -1
	searchFrom := 0
	for _, re := range sectionStartPatterns {
		if loc := re.FindStringIndex(text); loc != nil {
			start = loc[0]
			searchFrom = loc[1]
			break
		}
	}
	if start < 0 {
		return text
	}

	end := len(text)
	for _, re := range sectionEndPatterns {
		if loc := re.FindStringIndex(text[searchFrom:]); loc != nil {
			if searchFrom+loc[0] < end {
				end = searchFrom + loc[0]
			}
		}
	}
	return text[start:end]
}
