package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/exam-ingest/constants"
	"github.com/joseph-ayodele/exam-ingest/internal/common"
	"github.com/joseph-ayodele/exam-ingest/internal/entity"
)

type QuestionRepository interface {
	// InsertForBatch persists parsed questions under a batch, assigning
	// durable ids. Input order is preserved.
	InsertForBatch(ctx context.Context, batchID uuid.UUID, questions []entity.ParsedQuestion) ([]*entity.StoredQuestion, error)
	ListByBatch(ctx context.Context, batchID uuid.UUID) ([]*entity.StoredQuestion, error)
	UpdateAnswer(ctx context.Context, id uuid.UUID, answer string) error
}

type questionRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewQuestionRepository(db *DB, logger *slog.Logger) QuestionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &questionRepository{db: db, logger: logger}
}

func (r *questionRepository) InsertForBatch(ctx context.Context, batchID uuid.UUID, questions []entity.ParsedQuestion) ([]*entity.StoredQuestion, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt := r.db.rebind(
		`INSERT INTO questions (id, batch_id, position, content, type, answer, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	now := time.Now().UTC()
	out := make([]*entity.StoredQuestion, 0, len(questions))
	for i, q := range questions {
		tags, err := json.Marshal(q.Tags)
		if err != nil {
			return nil, fmt.Errorf("encode tags: %w", err)
		}
		row := &entity.StoredQuestion{
			ID:        uuid.New(),
			BatchID:   batchID,
			Content:   q.Content,
			Type:      q.Type,
			Answer:    q.Answer,
			Tags:      q.Tags,
			CreatedAt: now,
		}
		if _, err := tx.ExecContext(ctx, stmt,
			row.ID.String(), batchID.String(), i, row.Content, string(row.Type), row.Answer, string(tags), now,
		); err != nil {
			r.logger.Error("repo.questions.insert_failed", "batch_id", batchID, "error", err)
			return nil, fmt.Errorf("insert question: %w", err)
		}
		out = append(out, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	r.logger.Info("repo.questions.inserted", "batch_id", batchID, "count", len(out))
	return out, nil
}

func (r *questionRepository) ListByBatch(ctx context.Context, batchID uuid.UUID) ([]*entity.StoredQuestion, error) {
	rows, err := r.db.QueryContext(ctx, r.db.rebind(
		`SELECT id, batch_id, content, type, answer, tags, created_at
		 FROM questions WHERE batch_id = ? ORDER BY position`), batchID.String())
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []*entity.StoredQuestion
	for rows.Next() {
		var q entity.StoredQuestion
		var id, bid, qtype, tags string
		if err := rows.Scan(&id, &bid, &q.Content, &qtype, &q.Answer, &tags, &q.CreatedAt); err != nil {
			return nil, err
		}
		if q.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("scan question id: %w", err)
		}
		if q.BatchID, err = uuid.Parse(bid); err != nil {
			return nil, fmt.Errorf("scan batch id: %w", err)
		}
		q.Type = constants.QuestionType(qtype)
		if err := json.Unmarshal([]byte(tags), &q.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
		out = append(out, &q)
	}
	return out, rows.Err()
}

func (r *questionRepository) UpdateAnswer(ctx context.Context, id uuid.UUID, answer string) error {
	res, err := r.db.ExecContext(ctx, r.db.rebind(
		`UPDATE questions SET answer = ? WHERE id = ?`), answer, id.String())
	if err != nil {
		return fmt.Errorf("update answer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
