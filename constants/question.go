package constants

// QuestionType is the canonical question category assigned by the classifier.
type QuestionType string

// Stable values (store these exact strings in DB).
const (
	QuestionGrammar                QuestionType = "grammar"
	QuestionWordTransformation     QuestionType = "word_transformation"
	QuestionSentenceTransformation QuestionType = "sentence_transformation"
	QuestionCollocation            QuestionType = "collocation"
	QuestionVocabulary             QuestionType = "vocabulary"
)

// ImportMode selects the parsing path for one uploaded document.
type ImportMode string

const (
	// ModeMockPaper runs clean -> isolate -> segment -> classify and leaves
	// answers empty for later AI or manual fill.
	ModeMockPaper ImportMode = "mock_paper"
	// ModeErrorSet behaves like ModeMockPaper (same cleanup and answer-key
	// truncation); kept separate because the review UI groups them apart.
	ModeErrorSet ImportMode = "error_set"
	// ModeRecitation runs the line-oriented word-list parser and fills
	// answers from the parsed definitions.
	ModeRecitation ImportMode = "recitation"
)

// ParseImportMode validates a caller-supplied mode string.
func ParseImportMode(s string) (ImportMode, bool) {
	switch ImportMode(s) {
	case ModeMockPaper, ModeErrorSet, ModeRecitation:
		return ImportMode(s), true
	default:
		return "", false
	}
}

// IsMockLike reports whether the mode uses the question-paper path
// (as opposed to recitation material).
func (m ImportMode) IsMockLike() bool {
	return m == ModeMockPaper || m == ModeErrorSet
}

// Reserved tag prefixes carrying machine-readable meaning on a question.
const (
	TagRoot        = "Root:"        // morphological root for word_transformation
	TagFamily      = "Family:"      // word-family grouping key for recitation items
	TagSource      = "Source:"      // provenance filename, added by the caller
	TagCollocation = "Collocation:" // detected fixed phrase
)
