package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/voyageur/backend/internal/domain"
	"github.com/voyageur/backend/internal/media"
)

// writeJSON renders v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeMessage renders a {"message": ...} body, used by update and delete.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError renders the API error body {"error": <message>} and logs the
// failure with request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", msg,
	)
	writeJSON(w, status, map[string]string{"error": msg})
}

// renderError maps a service error onto the HTTP taxonomy:
// validation 400, conflict 409, not found 404, everything else 500.
// Internal details never reach the client on a 500; they are logged instead.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusBadRequest, unwrapMessage(err))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, r, http.StatusConflict, unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, notFoundMsg)
	default:
		slog.ErrorContext(r.Context(), "internal error",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// unwrapMessage strips the "layer.Type.Method: " wrapping prefixes so the
// client sees "trip id must be a positive integer" rather than the whole
// wrapped chain. Sentinel texts themselves ("validation error: ") are dropped
// as well.
func unwrapMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrValidation.Error())+2:]
	}
	if i := strings.LastIndex(msg, domain.ErrConflict.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrConflict.Error())+2:]
	}
	return msg
}

// idParam parses the {id} path parameter as a positive integer.
func idParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, errors.New("id must be a positive integer")
	}
	return id, nil
}

// pageParams parses the optional ?page= and ?limit= query parameters.
// Absent or malformed values are ignored; listing then returns everything.
func pageParams(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}

// formFiles reads every file uploaded under the given multipart field fully
// into memory, preserving part order. The request body limit set by the
// max-body-size middleware bounds the total size.
func formFiles(form *multipart.Form, field string) ([]media.File, error) {
	if form == nil {
		return nil, nil
	}
	var files []media.File
	for _, fh := range form.File[field] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, media.File{Name: fh.Filename, Data: data})
	}
	return files, nil
}
