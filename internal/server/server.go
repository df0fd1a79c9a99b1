package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/joseph-ayodele/exam-ingest/internal/common"
	"github.com/joseph-ayodele/exam-ingest/internal/export"
	"github.com/joseph-ayodele/exam-ingest/internal/ingest"
	"github.com/joseph-ayodele/exam-ingest/internal/repository"
)

// Server exposes the ingestion pipeline over HTTP.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// Deps wires the handlers to the application services.
type Deps struct {
	Ingest    *ingest.Service
	Export    *export.Service
	Batches   repository.BatchRepository
	Questions repository.QuestionRepository
	DB        *repository.DB
	Recognize Recognizer
}

func New(cfg common.ServerConfig, deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handlers{deps: deps, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", h.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/import", h.importDocument)
		r.Get("/batches", h.listBatches)
		r.Get("/batches/{id}", h.getBatch)
		r.Get("/batches/{id}/questions", h.listQuestions)
		r.Get("/batches/{id}/export", h.exportBatch)
		r.Post("/batches/{id}/confirm", h.confirmBatch)
		r.Post("/answers/stitch", h.stitchAnswers)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      r,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: logger,
	}
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server.listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.httpServer.SetKeepAlivesEnabled(false)
	return s.httpServer.Shutdown(ctx)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			r = r.WithContext(common.WithRequestID(r.Context(), middleware.GetReqID(r.Context())))
			next.ServeHTTP(ww, r)
			logger.Info("server.request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"elapsed_ms", time.Since(start).Milliseconds(),
				"req_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
