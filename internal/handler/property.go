package handler

import (
	"encoding/json"
	"net/http"

	"github.com/voyageur/backend/internal/domain"
)

// multipartMemory is the in-memory threshold for multipart parsing; larger
// parts spill to temp files. The overall body size is already capped by the
// max-body-size middleware.
const multipartMemory = 10 << 20

// CreateProperty handles POST /api/properties.
// Expects a multipart form with a "propertyData" JSON field and up to four
// "images" files.
func (s *Server) CreateProperty(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, r, http.StatusBadRequest, "request must be multipart/form-data")
		return
	}

	raw := r.FormValue("propertyData")
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, "propertyData is required")
		return
	}

	var p domain.Property
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		writeError(w, r, http.StatusBadRequest, "propertyData is not valid JSON")
		return
	}

	files, err := formFiles(r.MultipartForm, "images")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "could not read uploaded images")
		return
	}

	created, err := s.properties.Create(r.Context(), p, files)
	if err != nil {
		s.renderError(w, r, err, "property not found")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListProperties handles GET /api/properties.
// Supports optional ?page= and ?limit= query parameters; without them the
// whole collection is returned, sorted by id ascending.
func (s *Server) ListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := s.properties.List(r.Context(), pageParams(r))
	if err != nil {
		s.renderError(w, r, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// ListFeaturedProperties handles GET /api/properties/featured.
func (s *Server) ListFeaturedProperties(w http.ResponseWriter, r *http.Request) {
	props, err := s.properties.ListFeatured(r.Context())
	if err != nil {
		s.renderError(w, r, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, props)
}

// GetProperty handles GET /api/properties/{id}.
func (s *Server) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.properties.GetByID(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err, "property not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProperty handles PUT /api/properties/{id}.
// The JSON body is an explicit partial update: only provided fields are merged.
func (s *Server) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var upd domain.PropertyUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, r, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	if err := s.properties.Update(r.Context(), id, upd); err != nil {
		s.renderError(w, r, err, "property not found")
		return
	}
	writeMessage(w, http.StatusOK, "property updated")
}

// DeleteProperty handles DELETE /api/properties/{id}.
func (s *Server) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.properties.Delete(r.Context(), id); err != nil {
		s.renderError(w, r, err, "property not found")
		return
	}
	writeMessage(w, http.StatusOK, "property deleted")
}
