package handler

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/voyageur/backend/internal/domain"
)

// CreateTrip handles POST /api/trips.
// Expects a multipart form with a "tripData" JSON field (which must carry a
// positive integer id) and one to four "images" files. Precondition failures
// are rejected before any upload: missing/malformed tripData 400, duplicate
// id 409, missing images 400.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, r, http.StatusBadRequest, "request must be multipart/form-data")
		return
	}

	raw := r.FormValue("tripData")
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, "tripData is required")
		return
	}

	var t domain.Trip
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		writeError(w, r, http.StatusBadRequest, "tripData is not valid JSON")
		return
	}

	files, err := formFiles(r.MultipartForm, "images")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "could not read uploaded images")
		return
	}

	created, err := s.trips.Create(r.Context(), t, files)
	if err != nil {
		s.renderError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /api/trips.
// Supports optional ?page= and ?limit= query parameters; without them the
// whole collection is returned, sorted by id ascending.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context(), pageParams(r))
	if err != nil {
		s.renderError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /api/trips/{id}.
// The id is the client-supplied integer id, not the store's internal identifier.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	t, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// UpdateTrip handles PUT /api/trips/{id}.
// The JSON body is an explicit partial update: only provided fields are merged.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var upd domain.TripUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, r, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	if err := s.trips.Update(r.Context(), id, upd); err != nil {
		s.renderError(w, r, err, "trip not found")
		return
	}
	writeMessage(w, http.StatusOK, "trip updated")
}

// DeleteTrip handles DELETE /api/trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.renderError(w, r, err, "trip not found")
		return
	}
	writeMessage(w, http.StatusOK, "trip deleted")
}

// ExportTrips handles GET /api/trips/export.
// Streams all trips as CSV, one row per journal entry.
func (s *Server) ExportTrips(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Rows(r.Context())
	if err != nil {
		s.renderError(w, r, err, "trip not found")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"trip_id", "trip_name", "destination", "start_date", "end_date", "total_expenses", "journal_date", "journal_entry"})
	for _, row := range rows {
		_ = cw.Write([]string{
			strconv.Itoa(row.TripID),
			row.TripName,
			row.Destination,
			row.StartDate,
			row.EndDate,
			strconv.FormatFloat(row.TotalExpenses, 'f', 2, 64),
			row.JournalDate,
			row.JournalEntry,
		})
	}
	cw.Flush()
}
