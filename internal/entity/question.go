package entity

import (
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/exam-ingest/constants"
)

// ParsedQuestion is the pipeline's terminal unit, consumed by the review UI
// and persisted afterward. ID is an ephemeral client-side identifier, not a
// storage key; it is replaced by a durable one on confirmation.
type ParsedQuestion struct {
	ID      string                 `json:"id"`
	Content string                 `json:"content"`
	Type    constants.QuestionType `json:"type"`
	// Answer is empty in mock-paper mode pending AI or manual fill;
	// recitation mode fills it from the parsed definition.
	Answer string `json:"answer"`
	// Tags is an ordered set of free-form strings. Entries with reserved
	// prefixes (Root:, Family:, Source:, Collocation:) carry machine-readable
	// meaning; see the constants package.
	Tags []string `json:"tags"`
}

// NewParsedQuestion builds a question with a fresh ephemeral id.
func NewParsedQuestion(content string, qt constants.QuestionType) ParsedQuestion {
	return ParsedQuestion{
		ID:      uuid.New().String(),
		Content: content,
		Type:    qt,
	}
}

// AddTag appends a tag, keeping the set ordered and duplicate-free.
func (q *ParsedQuestion) AddTag(tag string) {
	if tag == "" {
		return
	}
	for _, t := range q.Tags {
		if t == tag {
			return
		}
	}
	q.Tags = append(q.Tags, tag)
}

// TagValue returns the value of the first tag with the given reserved prefix,
// or "" if absent.
func (q *ParsedQuestion) TagValue(prefix string) string {
	for _, t := range q.Tags {
		if strings.HasPrefix(t, prefix) {
			return strings.TrimPrefix(t, prefix)
		}
	}
	return ""
}
