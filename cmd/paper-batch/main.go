package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/exam-ingest/constants"
	"github.com/joseph-ayodele/exam-ingest/internal/common"
	"github.com/joseph-ayodele/exam-ingest/internal/export"
	"github.com/joseph-ayodele/exam-ingest/internal/extract"
	"github.com/joseph-ayodele/exam-ingest/internal/ingest"
	"github.com/joseph-ayodele/exam-ingest/internal/llm"
	"github.com/joseph-ayodele/exam-ingest/internal/llm/openai"
	"github.com/joseph-ayodele/exam-ingest/internal/ocr"
	"github.com/joseph-ayodele/exam-ingest/internal/pipeline"
	"github.com/joseph-ayodele/exam-ingest/internal/repository"
)

// printError prints to stderr, falling back to stdout if stderr fails.
func printError(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir     = flag.String("dir", "", "directory of papers to import (required)")
		modeStr = flag.String("mode", "mock_paper", "import mode: mock_paper | error_set | recitation")
		out     = flag.String("out", "", "directory to write per-batch XLSX exports (optional)")
		noLLM   = flag.Bool("no-llm", false, "skip AI answer fill for mock papers")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	mode, ok := constants.ParseImportMode(*modeStr)
	if !ok {
		printError("Error: unknown mode %q\n", *modeStr)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		printError("Error: open database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	if err := db.Migrate(ctx); err != nil {
		printError("Error: migrate: %v\n", err)
		os.Exit(1)
	}

	var recognizer extract.Recognizer
	if !cfg.Extract.DisableOCR && cfg.OCR.BaseURL != "" {
		recognizer = ocr.NewClient(cfg.OCR, logger)
	}
	extractor := extract.NewExtractor(cfg.Extract, recognizer, logger)

	var analyzer llm.AnswerAnalyzer
	if !*noLLM && cfg.LLM.APIKey != "" {
		analyzer = openai.NewClient(openai.Config{
			APIKey:        cfg.LLM.APIKey,
			BaseURL:       cfg.LLM.BaseURL,
			Model:         cfg.LLM.Model,
			Temperature:   cfg.LLM.Temperature,
			Timeout:       cfg.LLM.Timeout,
			LenientSchema: true,
		}, logger)
	}

	batches := repository.NewBatchRepository(db, logger)
	questions := repository.NewQuestionRepository(db, logger)
	svc := ingest.NewService(pipeline.NewProcessor(extractor, logger), batches, questions, analyzer, logger)

	results, stats, err := svc.ImportDirectory(ctx, *dir, mode, true)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	exporter := export.NewService(batches, questions, logger)
	for _, r := range results {
		if r.Err != "" {
			fmt.Printf("FAIL  %s: %s\n", r.Path, r.Err)
			continue
		}
		fmt.Printf("OK    %s: batch %s, %d questions\n", r.Path, r.BatchID, r.Questions)
		if *out != "" {
			if err := writeExport(ctx, exporter, *out, r); err != nil {
				printError("Warning: export %s: %v\n", r.BatchID, err)
			}
		}
	}
	fmt.Printf("done: scanned=%d matched=%d ok=%d failed=%d\n",
		stats.Scanned, stats.Matched, stats.Succeeded, stats.Failed)
	if stats.Failed > 0 {
		os.Exit(1)
	}
}

func writeExport(ctx context.Context, exporter *export.Service, outDir string, r ingest.FileResult) error {
	id, err := uuid.Parse(r.BatchID)
	if err != nil {
		return err
	}
	data, err := exporter.ExportBatchXLSX(ctx, id)
	if err != nil {
		return err
	}
	name := filepath.Join(outDir, fmt.Sprintf("%s.xlsx", r.BatchID))
	return os.WriteFile(name, data, 0o644)
}
