package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/AnshRaj112/mentracare-backend/internal/schema"
	"github.com/AnshRaj112/mentracare-backend/internal/services"
	"github.com/AnshRaj112/mentracare-backend/internal/store"
)

const maxBodyBytes = 1 << 20

// Handler serves the HTTP API on top of the wellness service.
type Handler struct {
	svc *services.WellnessService
	log *logrus.Logger
}

func New(svc *services.WellnessService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []schema.FieldError `json:"errors,omitempty"`
}

type IDResponse struct {
	ID string `json:"id"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps service errors onto status codes: validation problems are
// the client's, storage problems are ours.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  verr.Fields,
		})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Success: false, Message: "Not found"})
	case errors.Is(err, store.ErrStorageUnavailable):
		h.log.WithError(err).WithField("path", r.URL.Path).Error("storage unavailable")
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Success: false, Message: "Storage unavailable"})
	default:
		h.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "Internal server error"})
	}
}

// decodeBody reads and validates the request body as kind. It writes the
// error response itself and returns false when the body is unusable.
func decodeBody[T any](h *Handler, w http.ResponseWriter, r *http.Request, kind schema.Kind) (*T, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Success: false, Message: "Request body too large"})
		return nil, false
	}

	v, err := schema.Validate(kind, raw)
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	out, ok := v.(*T)
	if !ok {
		h.writeError(w, r, errors.New("schema returned unexpected type"))
		return nil, false
	}
	return out, true
}

// parseLimit reads ?limit=, falling back to def when missing or not a positive integer.
func parseLimit(r *http.Request, def int64) int64 {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return def
	}
	if parsed, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsed > 0 {
		return parsed
	}
	return def
}
