package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/exam-ingest/constants"
	"github.com/joseph-ayodele/exam-ingest/internal/entity"
)

var (
	// wide whitespace separating packed entries on one line
	reWideSpace = regexp.MustCompile(`[\t\x{3000}]+| {2,}`)

	// hyphen variants chaining morphologically related forms
	reHyphenSplit = regexp.MustCompile(`\s*[-–]\s*`)

	// strict:  word (pos.) definition
	reChainStrict = regexp.MustCompile(
		`^(?:\d{1,3}[.、．]?\s*)?([A-Za-z][A-Za-z' ]*?)\s*[(（]\s*([a-z]{1,6})\.?\s*[)）]\s*(\S.*)$`)
	// loose:   word definition
	reChainLoose = regexp.MustCompile(`^(?:\d{1,3}[.、．]?\s*)?([A-Za-z][A-Za-z'-]*)\s+(\S.*)$`)

	// single-entry line: optional number, word token, separator (dot leader,
	// ellipsis, arrow, wide space, or inline POS abbreviation), definition
	reSingleEntry = regexp.MustCompile(
		`^(?:\d{1,3}[.、．]?\s*)?([A-Za-z][A-Za-z'()./ -]*?)\s*(?:\.{3,}|…+|->|→| {2,}|\t+|\s+(adj|adv|n|v|vt|vi|prep|conj|pron|num|art|int)\.|\s+)\s*(\S.*)$`)

	// a trailing (pos.) embedded in the captured word portion
	reWordTrailingPOS = regexp.MustCompile(`^(.*?)\s*[(（]\s*([a-z]{1,6})\.?\s*[)）]\s*$`)

	// explicit root->derived notation
	reArrowEntry = regexp.MustCompile(
		`^(?:\d{1,3}[.、．]?\s*)?([A-Za-z][A-Za-z'-]+)\s*(?:->|→)\s*([A-Za-z][A-Za-z'-]+)\s*(.*)$`)

	reLettersOnly = regexp.MustCompile(`[^a-z]+`)
)

// recitationState is the accumulator threaded through the left-to-right line
// reduction: the running family root plus the items produced so far. The root
// is compared only against the single most recently established root, so a
// long run of loosely related words can drift into one ever-growing family;
// that behavior is deliberate (see DESIGN.md).
type recitationState struct {
	familyRoot string
	items      []entity.ParsedQuestion
}

// ParseRecitation parses vocabulary/word-list material line by line into
// word/definition pairs with cross-line word-family grouping. Pure function,
// no failure modes; unparseable lines are skipped.
func ParseRecitation(text string) []entity.ParsedQuestion {
	st := recitationState{}
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		st = reduceLine(st, raw)
	}
	return st.items
}

func reduceLine(st recitationState, raw string) recitationState {
	line := strings.TrimSpace(raw)
	if utf8.RuneCountInString(line) < 3 {
		return st
	}
	// heading lines ("List 3", "Unit 7 ...") carry no entries
	if strings.Contains(line, "List") || strings.Contains(line, "Unit") {
		return st
	}

	// "->" contains a hyphen but is derivation notation, not a packed chain.
	hasArrow := strings.Contains(line, "->") || strings.Contains(line, "→")
	if !hasArrow && (strings.ContainsAny(line, "-–") || reWideSpace.MatchString(line)) {
		return reducePackedLine(st, line)
	}
	return reduceSingleLine(st, line)
}

// reducePackedLine handles a line with several entries packed together:
// wide-whitespace separates independent blocks, hyphens chain morphologically
// related forms within a block. The first element of a hyphen chain is the
// family root for the whole chain.
func reducePackedLine(st recitationState, line string) recitationState {
	for _, block := range reWideSpace.Split(line, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		chain := reHyphenSplit.Split(block, -1)

		first := true
		for _, elem := range chain {
			elem = strings.TrimSpace(elem)
			if elem == "" {
				continue
			}
			word, answer, ok := parseChainElement(elem)
			if !ok {
				continue
			}
			if first {
				st.familyRoot = establishRoot(st.familyRoot, word)
				first = false
			}
			q := entity.NewParsedQuestion(word, constants.QuestionVocabulary)
			q.Answer = answer
			if st.familyRoot != "" {
				q.AddTag(constants.TagFamily + st.familyRoot)
			}
			st.items = append(st.items, q)
		}
	}
	return st
}

func parseChainElement(elem string) (word, answer string, ok bool) {
	if m := reChainStrict.FindStringSubmatch(elem); m != nil {
		return strings.TrimSpace(m[1]), m[2] + ". " + strings.TrimSpace(m[3]), true
	}
	if m := reChainLoose.FindStringSubmatch(elem); m != nil {
		return m[1], strings.TrimSpace(m[2]), true
	}
	return "", "", false
}

// reduceSingleLine handles one entry per line. A trailing (pos.) captured
// inside the word portion is re-appended to the definition. Lines that match
// neither shape get a final chance as explicit root->derived notation.
func reduceSingleLine(st recitationState, line string) recitationState {
	// Arrow notation marks a derivation, not a plain vocabulary pair; it must
	// win over the generic separator shape.
	if strings.Contains(line, "->") || strings.Contains(line, "→") {
		if m := reArrowEntry.FindStringSubmatch(line); m != nil {
			return appendArrowEntry(st, m)
		}
	}

	// The strict word(pos.)definition shape first; it yields cleaner answers
	// than the generic separator split.
	if m := reChainStrict.FindStringSubmatch(line); m != nil {
		word := strings.TrimSpace(m[1])
		st.familyRoot = establishRoot(st.familyRoot, word)
		q := entity.NewParsedQuestion(word, constants.QuestionVocabulary)
		q.Answer = m[2] + ". " + strings.TrimSpace(m[3])
		q.AddTag(constants.TagFamily + st.familyRoot)
		st.items = append(st.items, q)
		return st
	}

	if m := reSingleEntry.FindStringSubmatch(line); m != nil {
		word := strings.TrimSpace(m[1])
		pos := m[2]
		def := strings.TrimSpace(m[3])

		if pm := reWordTrailingPOS.FindStringSubmatch(word); pm != nil {
			word = strings.TrimSpace(pm[1])
			def = pm[2] + ". " + def
		} else if pos != "" {
			def = pos + ". " + def
		}
		if word == "" || def == "" {
			return st
		}

		st.familyRoot = establishRoot(st.familyRoot, word)
		q := entity.NewParsedQuestion(word, constants.QuestionVocabulary)
		q.Answer = def
		q.AddTag(constants.TagFamily + st.familyRoot)
		st.items = append(st.items, q)
		return st
	}

	if m := reArrowEntry.FindStringSubmatch(line); m != nil {
		return appendArrowEntry(st, m)
	}

	return st
}

func appendArrowEntry(st recitationState, m []string) recitationState {
	root, derived, def := m[1], m[2], strings.TrimSpace(m[3])
	st.familyRoot = establishRoot(st.familyRoot, root)
	q := entity.NewParsedQuestion(derived, constants.QuestionWordTransformation)
	q.Answer = def
	q.AddTag(constants.TagRoot + root)
	q.AddTag(constants.TagFamily + st.familyRoot)
	st.items = append(st.items, q)
	return st
}

// establishRoot keeps the running root when the new word is related to it and
// replaces it otherwise.
func establishRoot(current, word string) string {
	if current != "" && isRelated(current, word) {
		return current
	}
	return word
}

// isRelated reports whether two words plausibly belong to one word family.
// Normalized to lowercase letters only; very short words require exact
// equality, otherwise substring containment or a shared >=3-character prefix
// counts. Intentionally lenient, biased toward grouping adjacent vocabulary.
func isRelated(root, candidate string) bool {
	a := reLettersOnly.ReplaceAllString(strings.ToLower(root), "")
	b := reLettersOnly.ReplaceAllString(strings.ToLower(candidate), "")
	if len(a) < 3 || len(b) < 3 {
		return a == b
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return commonPrefixLen(a, b) >= 3
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
