package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/exam-ingest/constants"
	"github.com/joseph-ayodele/exam-ingest/internal/common"
	"github.com/joseph-ayodele/exam-ingest/internal/stitch"
)

// Recognizer is the slice of the OCR client the stitch endpoint needs.
type Recognizer interface {
	Recognize(ctx context.Context, imageBase64 string) (string, error)
}

type handlers struct {
	deps   Deps
	logger *slog.Logger
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if h.deps.DB != nil {
		if err := h.deps.DB.PingContext(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, fmt.Errorf("database: %w", err))
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// importDocument accepts a multipart upload (field "file") plus a "mode"
// form value, spools the upload to disk, and runs the import.
func (h *handlers) importDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: parse multipart: %v", common.ErrInvalidInput, err))
		return
	}
	mode, ok := constants.ParseImportMode(r.FormValue("mode"))
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: unknown mode %q", common.ErrInvalidInput, r.FormValue("mode")))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: missing file field", common.ErrInvalidInput))
		return
	}
	defer file.Close()

	ext := constants.NormalizeExt(filepath.Ext(header.Filename))
	if _, allowed := constants.AllowedExtensions[ext]; !allowed {
		writeError(w, http.StatusUnsupportedMediaType, common.ErrUnsupportedFormat)
		return
	}

	// Spool into a per-request dir so the caller's filename, which ends
	// up on the batch record, cannot collide across uploads.
	tmpDir, err := os.MkdirTemp("", "ei-upload-*")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	spooled := filepath.Join(tmpDir, filepath.Base(header.Filename))
	tmp, err := os.Create(spooled)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, http.StatusInternalServerError, fmt.Errorf("spool upload: %w", err))
		return
	}
	if err := tmp.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	res, err := h.deps.Ingest.ImportFile(r.Context(), spooled, mode)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"batch":     res.Batch,
		"questions": res.Questions,
	})
}

func (h *handlers) listBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.deps.Batches.List(r.Context(), 100)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"batches": batches})
}

func (h *handlers) getBatch(w http.ResponseWriter, r *http.Request) {
	id, err := batchID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	batch, err := h.deps.Batches.GetByID(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

func (h *handlers) listQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := batchID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	questions, err := h.deps.Questions.ListByBatch(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (h *handlers) confirmBatch(w http.ResponseWriter, r *http.Request) {
	id, err := batchID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.deps.Ingest.ConfirmBatch(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(constants.BatchStatusConfirmed)})
}

func (h *handlers) exportBatch(w http.ResponseWriter, r *http.Request) {
	id, err := batchID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	out, err := h.deps.Export.ExportBatchXLSX(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="batch-%s.xlsx"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

type stitchRequest struct {
	Images []struct {
		ID      string `json:"id"`
		DataURL string `json:"dataUrl"`
	} `json:"images"`
}

type stitchResponse struct {
	Answers map[string]string `json:"answers"`
	Order   []string          `json:"order"`
}

// stitchAnswers composites handwriting crops into one image, OCRs it in
// a single round-trip, and splits the recognized text back per ID.
func (h *handlers) stitchAnswers(w http.ResponseWriter, r *http.Request) {
	if h.deps.Recognize == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("ocr is disabled"))
		return
	}
	var req stitchRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
		return
	}
	if len(req.Images) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: no images", common.ErrInvalidInput))
		return
	}

	inputs := make([]stitch.InputImage, 0, len(req.Images))
	for _, img := range req.Images {
		inputs = append(inputs, stitch.InputImage{ID: img.ID, DataURL: img.DataURL})
	}
	composite, err := stitch.Stitch(inputs)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
		return
	}

	payload := composite
	if idx := strings.Index(payload, ";base64,"); idx >= 0 {
		payload = payload[idx+len(";base64,"):]
	}

	text, err := h.deps.Recognize.Recognize(r.Context(), payload)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Errorf("ocr: %w", err))
		return
	}
	answers, order := stitch.ParseStitchedOCRResult(text)
	writeJSON(w, http.StatusOK, stitchResponse{Answers: answers, Order: order})
}

func batchID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad batch id", common.ErrInvalidInput)
	}
	return id, nil
}
