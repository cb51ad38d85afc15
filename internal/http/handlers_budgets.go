package http

import (
	"net/http"

	"midaxas/internal/core"
)

// handleBudgets serves the budget mapping (GET), sets or overwrites a
// category budget (POST) and removes one (DELETE).
func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.settings.Budgets())

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed form data"})
			return
		}
		category := sanitizeInput(r.Form.Get("category"))
		amount, err := core.ParseMoney(r.Form.Get("amount"))
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.settings.SetBudget(category, amount); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"category": category,
			"amount":   amount.String(),
		})

	case http.MethodDelete:
		category := sanitizeInput(r.URL.Query().Get("category"))
		removed, err := s.settings.RemoveBudget(category)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})

	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}
