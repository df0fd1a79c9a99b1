package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/exam-ingest/constants"
	"github.com/joseph-ayodele/exam-ingest/internal/entity"
)

// longUnitRuneLen is the length above which a blank+parenthetical unit is
// treated as a rewrite prompt even without an explicit instruction keyword.
// Tunable policy constant, not a law.
const longUnitRuneLen = 80

// rewritePhrases are instruction keywords that mark a sentence-rewrite item.
var rewritePhrases = []string{
	"对划线部分提问", // ask about the underlined part
	"改写句子",    // rewrite the sentence
	"保持句意",    // keep the meaning
	"句意不变",
	"被动语态", // passive voice
	"连词成句", // form a sentence from the given words
	"合并为一句",
	"改为否定句",
	"改为一般疑问句",
	"同义句",
}

// collocationPhrases is a small fixed vocabulary of common fixed phrases
// used for lightweight keyword tagging.
var collocationPhrases = []string{
	"look forward",
	"interested in",
	"fond of",
	"succeed in",
	"keen on",
}

var (
	reBlank = regexp.MustCompile(`[_＿]{2,}|（\s*）|\(\s+\)`)

	// a parenthetical with content, half- or full-width
	reParenthetical = regexp.MustCompile(`[(（][^()（）]+[)）]`)

	// bracketed hint word anchored at end of unit
	reRootAtEnd = regexp.MustCompile(`[(（]\s*([A-Za-z][A-Za-z' -]*?)\s*[)）]\s*$`)
	// fallback: bracketed hint word followed only by trailing non-paren characters
	reRootLoose = regexp.MustCompile(`[(（]\s*([A-Za-z][A-Za-z' -]*?)\s*[)）][^(（]*$`)

	// an "A. ... B. ..."-shaped multiple-choice pattern
	reChoices = regexp.MustCompile(`\bA\s*[.、．)）]\s*\S[\s\S]*?\bB\s*[.、．)）]\s*\S`)

	// unit ends with a bare single-word bracket like "(operation)"
	reBareParenEnd = regexp.MustCompile(`[(（]\s*[A-Za-z][A-Za-z'-]*\s*[)）]\s*$`)
)

// unitFacts are the precomputed properties a classification rule may consult.
type unitFacts struct {
	unit            string
	runeLen         int
	hasBlank        bool
	hasParen        bool
	hasQuestionMark bool
	hasChoices      bool
	endsInBareParen bool
	root            string // bracketed hint word, "" if not extractable
	phrase          string // detected collocational phrase, "" if none
}

func gatherFacts(unit string) unitFacts {
	f := unitFacts{
		unit:            unit,
		runeLen:         utf8.RuneCountInString(unit),
		hasBlank:        reBlank.MatchString(unit),
		hasParen:        reParenthetical.MatchString(unit),
		hasQuestionMark: strings.ContainsAny(unit, "?？"),
		hasChoices:      reChoices.MatchString(unit),
		endsInBareParen: reBareParenEnd.MatchString(unit),
	}
	if m := reRootAtEnd.FindStringSubmatch(unit); m != nil {
		f.root = strings.TrimSpace(m[1])
	} else if m := reRootLoose.FindStringSubmatch(unit); m != nil {
		f.root = strings.TrimSpace(m[1])
	}
	lower := strings.ToLower(unit)
	for _, p := range collocationPhrases {
		if strings.Contains(lower, p) {
			f.phrase = p
			break
		}
	}
	return f
}

// classifyRule maps matched unit facts to a question type plus tags.
type classifyRule struct {
	qtype constants.QuestionType
	match func(f unitFacts) bool
	tags  func(f unitFacts) []string
}

// classifyRules is evaluated in order; the first match wins. The order
// encodes intentional priority: rewrite instructions trump the bracket-hint
// shape, which trumps bare-blank collocation items.
var classifyRules = []classifyRule{
	{
		qtype: constants.QuestionSentenceTransformation,
		match: func(f unitFacts) bool {
			for _, p := range rewritePhrases {
				if strings.Contains(f.unit, p) {
					return true
				}
			}
			// Rewrite prompts lacking an explicit keyword: a parenthetical
			// plus a blank plus either a question mark or unusual length.
			return f.hasParen && f.hasBlank && (f.hasQuestionMark || f.runeLen > longUnitRuneLen)
		},
	},
	{
		qtype: constants.QuestionWordTransformation,
		// A bracketed hint word next to a blank. Long bracketed units with no
		// extractable root stay here by default rather than re-routing to
		// collocation; word transformation is the more common type among them.
		match: func(f unitFacts) bool { return f.hasParen && f.hasBlank },
		tags: func(f unitFacts) []string {
			if f.root == "" {
				return nil
			}
			return []string{constants.TagRoot + f.root}
		},
	},
	{
		qtype: constants.QuestionCollocation,
		match: func(f unitFacts) bool { return f.hasBlank && !f.endsInBareParen },
		tags: func(f unitFacts) []string {
			if f.phrase == "" {
				return nil
			}
			return []string{constants.TagCollocation + f.phrase}
		},
	},
	{
		qtype: constants.QuestionGrammar,
		match: func(f unitFacts) bool { return true },
		tags: func(f unitFacts) []string {
			if f.hasChoices && f.phrase != "" {
				return []string{constants.TagCollocation + f.phrase}
			}
			return nil
		},
	},
}

// Classify assigns a question type and auxiliary tags to one segmented unit.
// Pure function, never fails; unmatched units fall through to grammar.
// The answer is always left empty in this mode — it is filled later by AI
// analysis or manual edit.
func Classify(unit string) entity.ParsedQuestion {
	f := gatherFacts(unit)
	for _, r := range classifyRules {
		if !r.match(f) {
			continue
		}
		q := entity.NewParsedQuestion(unit, r.qtype)
		if r.tags != nil {
			for _, t := range r.tags(f) {
				q.AddTag(t)
			}
		}
		return q
	}
	// unreachable: the last rule always matches
	return entity.NewParsedQuestion(unit, constants.QuestionGrammar)
}

// ClassifyAll classifies every unit in order.
func ClassifyAll(units []string) []entity.ParsedQuestion {
	out := make([]entity.ParsedQuestion, 0, len(units))
	for _, u := range units {
		out = append(out, Classify(u))
	}
	return out
}
