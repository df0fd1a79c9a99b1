package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joseph-ayodele/exam-ingest/internal/common"
	"github.com/joseph-ayodele/exam-ingest/internal/export"
	"github.com/joseph-ayodele/exam-ingest/internal/extract"
	"github.com/joseph-ayodele/exam-ingest/internal/ingest"
	"github.com/joseph-ayodele/exam-ingest/internal/llm"
	"github.com/joseph-ayodele/exam-ingest/internal/llm/openai"
	"github.com/joseph-ayodele/exam-ingest/internal/ocr"
	"github.com/joseph-ayodele/exam-ingest/internal/pipeline"
	"github.com/joseph-ayodele/exam-ingest/internal/repository"
	"github.com/joseph-ayodele/exam-ingest/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	if err := db.Migrate(ctx); err != nil {
		logger.Error("migrate database", "error", err)
		os.Exit(1)
	}
	if err := db.Health(ctx, cfg.Database.HealthTimeout); err != nil {
		logger.Error("database health failed", "error", err)
		os.Exit(1)
	}
	logger.Info("db.health_ok")

	var recognizer *ocr.Client
	if !cfg.Extract.DisableOCR {
		recognizer = ocr.NewClient(cfg.OCR, logger)
	}
	extractor := extract.NewExtractor(cfg.Extract, recognizerOrNil(recognizer), logger)

	var analyzer llm.AnswerAnalyzer
	if cfg.LLM.APIKey != "" {
		analyzer = openai.NewClient(openai.Config{
			APIKey:        cfg.LLM.APIKey,
			BaseURL:       cfg.LLM.BaseURL,
			Model:         cfg.LLM.Model,
			Temperature:   cfg.LLM.Temperature,
			Timeout:       cfg.LLM.Timeout,
			LenientSchema: true,
		}, logger)
	} else {
		logger.Warn("llm.disabled", "reason", "no API key; answers will stay empty")
	}

	batches := repository.NewBatchRepository(db, logger)
	questions := repository.NewQuestionRepository(db, logger)
	svc := ingest.NewService(pipeline.NewProcessor(extractor, logger), batches, questions, analyzer, logger)

	srv := server.New(cfg.Server, server.Deps{
		Ingest:    svc,
		Export:    export.NewService(batches, questions, logger),
		Batches:   batches,
		Questions: questions,
		DB:        db,
		Recognize: serverRecognizer(recognizer),
	}, logger)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}

// Typed-nil guards: a nil *ocr.Client stored in an interface would not
// compare equal to nil at the call sites.
func recognizerOrNil(c *ocr.Client) extract.Recognizer {
	if c == nil {
		return nil
	}
	return c
}

func serverRecognizer(c *ocr.Client) server.Recognizer {
	if c == nil {
		return nil
	}
	return c
}
