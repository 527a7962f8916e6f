package handler

import (
	"encoding/json"
	"net/http"
)

// paymentIntentRequest is the body of POST /api/payments/intent.
// Amount is in the smallest currency unit (cents for usd).
type paymentIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreatePaymentIntent handles POST /api/payments/intent.
// Returns the Stripe client secret the frontend needs to complete the payment.
func (s *Server) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	if s.payments == nil {
		writeError(w, r, http.StatusServiceUnavailable, "payments are not configured")
		return
	}

	var req paymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	secret, err := s.payments.CreateIntent(r.Context(), req.Amount, req.Currency)
	if err != nil {
		s.renderError(w, r, err, "payment not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}
