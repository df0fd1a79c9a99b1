package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/exam-ingest/constants"
	"github.com/joseph-ayodele/exam-ingest/internal/common"
	"github.com/joseph-ayodele/exam-ingest/internal/entity"
	"github.com/joseph-ayodele/exam-ingest/internal/llm"
	"github.com/joseph-ayodele/exam-ingest/internal/pipeline"
	"github.com/joseph-ayodele/exam-ingest/internal/repository"
)

// Service owns the import use case: run the pipeline over a document,
// record the outcome as a batch, and persist the parsed questions.
type Service struct {
	processor *pipeline.Processor
	batches   repository.BatchRepository
	questions repository.QuestionRepository
	analyzer  llm.AnswerAnalyzer // optional; mock-paper answer fill
	logger    *slog.Logger
}

func NewService(
	processor *pipeline.Processor,
	batches repository.BatchRepository,
	questions repository.QuestionRepository,
	analyzer llm.AnswerAnalyzer,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		processor: processor,
		batches:   batches,
		questions: questions,
		analyzer:  analyzer,
		logger:    logger,
	}
}

// ImportResult is the outcome of one document import.
type ImportResult struct {
	Batch     *entity.ImportBatch
	Questions []*entity.StoredQuestion
}

// ImportFile runs the full import for one document. The batch row is
// created first so a failed run still leaves a FAILED record behind.
func (s *Service) ImportFile(ctx context.Context, path string, mode constants.ImportMode) (*ImportResult, error) {
	format := constants.MapExtToFormat(filepath.Ext(path))
	if format != constants.WORD && format != constants.PDF {
		return nil, common.ErrUnsupportedFormat
	}

	batch, err := s.batches.Create(ctx, repository.CreateBatchRequest{
		Filename: filepath.Base(path),
		Mode:     mode,
		Format:   format,
	})
	if err != nil {
		return nil, err
	}

	res, err := s.processor.Process(ctx, path, mode)
	if err != nil {
		_ = s.batches.Finish(ctx, batch.ID, repository.FinishBatchRequest{
			Status:       constants.BatchStatusFailed,
			ErrorMessage: err.Error(),
		})
		return nil, fmt.Errorf("process %s: %w", batch.Filename, err)
	}

	questions := res.Questions
	for i := range questions {
		questions[i].AddTag(constants.TagSource + batch.Filename)
	}
	if mode.IsMockLike() && s.analyzer != nil {
		questions = s.fillAnswers(ctx, questions)
	}

	stored, err := s.questions.InsertForBatch(ctx, batch.ID, questions)
	if err != nil {
		_ = s.batches.Finish(ctx, batch.ID, repository.FinishBatchRequest{
			Status:       constants.BatchStatusFailed,
			ErrorMessage: err.Error(),
		})
		return nil, err
	}

	if err := s.batches.Finish(ctx, batch.ID, repository.FinishBatchRequest{
		Status: constants.BatchStatusParsed,
		Method: res.Method,
		Pages:  res.Pages,
	}); err != nil {
		return nil, err
	}

	batch, err = s.batches.GetByID(ctx, batch.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ingest.imported",
		"batch_id", batch.ID,
		"filename", batch.Filename,
		"mode", mode,
		"questions", len(stored),
		"req_id", common.RequestIDFromContext(ctx),
	)
	return &ImportResult{Batch: batch, Questions: stored}, nil
}

// fillAnswers asks the analyzer for answers and merges them by id. Any
// analyzer failure leaves the questions as parsed; answers are a
// best-effort enrichment, not a gate.
func (s *Service) fillAnswers(ctx context.Context, questions []entity.ParsedQuestion) []entity.ParsedQuestion {
	inputs := make([]llm.QuestionInput, 0, len(questions))
	for _, q := range questions {
		inputs = append(inputs, llm.QuestionInput{ID: q.ID, Content: q.Content, Type: string(q.Type)})
	}

	fills, _, err := s.analyzer.FillAnswers(ctx, llm.AnalyzeRequest{Questions: inputs})
	if err != nil {
		s.logger.Warn("ingest.answer_fill_failed", "error", err)
		return questions
	}

	byID := make(map[string]llm.AnswerFill, len(fills))
	for _, f := range fills {
		byID[f.ID] = f
	}
	for i := range questions {
		if f, ok := byID[questions[i].ID]; ok && strings.TrimSpace(f.Answer) != "" {
			questions[i].Answer = f.Answer
		}
	}
	return questions
}

// ConfirmBatch marks a reviewed batch as accepted.
func (s *Service) ConfirmBatch(ctx context.Context, id uuid.UUID) error {
	return s.batches.UpdateStatus(ctx, id, constants.BatchStatusConfirmed)
}
