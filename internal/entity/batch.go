package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/exam-ingest/constants"
)

// ImportBatch groups the questions produced by one document import.
type ImportBatch struct {
	ID           uuid.UUID             `json:"id"`
	Filename     string                `json:"filename"`
	Mode         constants.ImportMode  `json:"mode"`
	Format       constants.FileFormat  `json:"format"`
	Status       constants.BatchStatus `json:"status"`
	Method       string                `json:"method"` // "word-text" | "pdf-text" | "pdf-ocr"
	Pages        int                   `json:"pages"`
	ErrorMessage string                `json:"error_message,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// StoredQuestion is a persisted question row under an import batch.
// Same field shape as ParsedQuestion with a durable identifier.
type StoredQuestion struct {
	ID        uuid.UUID              `json:"id"`
	BatchID   uuid.UUID              `json:"batch_id"`
	Content   string                 `json:"content"`
	Type      constants.QuestionType `json:"type"`
	Answer    string                 `json:"answer"`
	Tags      []string               `json:"tags"`
	CreatedAt time.Time              `json:"created_at"`
}
