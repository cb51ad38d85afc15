package http

import (
	"net/http"

	"midaxas/internal/log"
)

// handleTransactions serves the history (GET), records a new
// transaction (POST) and deletes by id set (DELETE).
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.records.History())

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed form data"})
			return
		}
		tx, err := s.records.Add(
			r.Form.Get("type"),
			r.Form.Get("date"),
			r.Form.Get("amount"),
			sanitizeInput(r.Form.Get("category")),
			sanitizeInput(r.Form.Get("note")),
		)
		if err != nil {
			s.logger.Warn("Add transaction rejected", log.FieldOperation, log.OpAdd, log.FieldError, err.Error())
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, tx)

	case http.MethodDelete:
		ids, ok := parseIDs(r.URL.Query().Get("ids"))
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ids must be a comma-separated list of integers"})
			return
		}
		removed, err := s.records.Delete(ids...)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"removed": removed})

	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

// handleUndo removes the most recently created transaction.
func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	undone, err := s.records.UndoLast()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, undone)
}

// handleReset clears the whole record store. The front-end is expected
// to ask the user for confirmation before calling this; the endpoint
// performs no confirmation itself.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	if err := s.records.ResetAll(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
