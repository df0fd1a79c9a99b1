package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/exam-ingest/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes
// for exporting a batch's questions to the review spreadsheet.
type Service struct {
	batches   repository.BatchRepository
	questions repository.QuestionRepository
	logger    *slog.Logger
}

func NewService(batches repository.BatchRepository, questions repository.QuestionRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{batches: batches, questions: questions, logger: logger}
}

// ExportBatchXLSX returns an XLSX workbook for one import batch.
func (s *Service) ExportBatchXLSX(ctx context.Context, batchID uuid.UUID) ([]byte, error) {
	start := time.Now()

	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	rows, err := s.questions.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Questions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet so the workbook opens on Questions.
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"#", "Content", "Type", "Answer", "Tags", "Source"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for i, q := range rows {
		row := i + 2
		write(1, row, i+1)
		write(2, row, q.Content)
		write(3, row, string(q.Type))
		write(4, row, q.Answer)
		write(5, row, strings.Join(q.Tags, ", "))
		write(6, row, batch.Filename)
	}

	_ = f.SetColWidth(sheet, "A", "A", 5)
	_ = f.SetColWidth(sheet, "B", "B", 60)
	_ = f.SetColWidth(sheet, "C", "C", 22)
	_ = f.SetColWidth(sheet, "D", "D", 30)
	_ = f.SetColWidth(sheet, "E", "F", 26)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("export.xlsx.done",
		"batch_id", batchID,
		"rows", len(rows),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
