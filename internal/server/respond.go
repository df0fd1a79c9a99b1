package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joseph-ayodele/exam-ingest/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeAppError maps the error taxonomy to HTTP statuses.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, common.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, common.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, err)
	case errors.Is(err, common.ErrExtractionTimeout):
		writeError(w, http.StatusGatewayTimeout, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func readJSON(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
