package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/exam-ingest/constants"
	"github.com/joseph-ayodele/exam-ingest/internal/common"
	"github.com/joseph-ayodele/exam-ingest/internal/entity"
)

// CreateBatchRequest starts a batch in RUNNING state.
type CreateBatchRequest struct {
	Filename string
	Mode     constants.ImportMode
	Format   constants.FileFormat
}

// FinishBatchRequest records the outcome of a pipeline run.
type FinishBatchRequest struct {
	Status       constants.BatchStatus
	Method       string
	Pages        int
	ErrorMessage string
}

type BatchRepository interface {
	Create(ctx context.Context, req CreateBatchRequest) (*entity.ImportBatch, error)
	Finish(ctx context.Context, id uuid.UUID, req FinishBatchRequest) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.BatchStatus) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ImportBatch, error)
	List(ctx context.Context, limit int) ([]*entity.ImportBatch, error)
}

type batchRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewBatchRepository(db *DB, logger *slog.Logger) BatchRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &batchRepository{db: db, logger: logger}
}

func (r *batchRepository) Create(ctx context.Context, req CreateBatchRequest) (*entity.ImportBatch, error) {
	now := time.Now().UTC()
	b := &entity.ImportBatch{
		ID:        uuid.New(),
		Filename:  req.Filename,
		Mode:      req.Mode,
		Format:    req.Format,
		Status:    constants.BatchStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := r.db.ExecContext(ctx, r.db.rebind(
		`INSERT INTO import_batches (id, filename, mode, format, status, method, pages, error_message, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, '', 0, '', ?, ?)`),
		b.ID.String(), b.Filename, string(b.Mode), string(b.Format), string(b.Status), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("repo.batches.create_failed", "error", err)
		return nil, fmt.Errorf("create batch: %w", err)
	}
	r.logger.Info("repo.batches.created", "batch_id", b.ID, "filename", b.Filename, "mode", b.Mode)
	return b, nil
}

func (r *batchRepository) Finish(ctx context.Context, id uuid.UUID, req FinishBatchRequest) error {
	_, err := r.db.ExecContext(ctx, r.db.rebind(
		`UPDATE import_batches SET status = ?, method = ?, pages = ?, error_message = ?, updated_at = ? WHERE id = ?`),
		string(req.Status), req.Method, req.Pages, req.ErrorMessage, time.Now().UTC(), id.String(),
	)
	if err != nil {
		return fmt.Errorf("finish batch: %w", err)
	}
	return nil
}

func (r *batchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.BatchStatus) error {
	res, err := r.db.ExecContext(ctx, r.db.rebind(
		`UPDATE import_batches SET status = ?, updated_at = ? WHERE id = ?`),
		string(status), time.Now().UTC(), id.String(),
	)
	if err != nil {
		return fmt.Errorf("update batch status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

const batchColumns = `id, filename, mode, format, status, method, pages, error_message, created_at, updated_at`

func (r *batchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ImportBatch, error) {
	row := r.db.QueryRowContext(ctx, r.db.rebind(
		`SELECT `+batchColumns+` FROM import_batches WHERE id = ?`), id.String())
	b, err := scanBatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return b, err
}

func (r *batchRepository) List(ctx context.Context, limit int) ([]*entity.ImportBatch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, r.db.rebind(
		`SELECT `+batchColumns+` FROM import_batches ORDER BY created_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []*entity.ImportBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*entity.ImportBatch, error) {
	var b entity.ImportBatch
	var id, mode, format, status string
	if err := row.Scan(&id, &b.Filename, &mode, &format, &status, &b.Method, &b.Pages, &b.ErrorMessage, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("scan batch id: %w", err)
	}
	b.ID = parsed
	b.Mode = constants.ImportMode(mode)
	b.Format = constants.FileFormat(format)
	b.Status = constants.BatchStatus(status)
	return &b, nil
}
