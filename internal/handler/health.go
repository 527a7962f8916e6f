package handler

import "net/http"

// Health handles GET /healthz.
// Returns 200 {"status":"ok"} when the server is up and the store answers a
// ping, 503 otherwise.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
