package http

import (
	"net/http"

	"midaxas/internal/gate"
	"midaxas/internal/log"
)

// handlePIN reports whether a PIN is enforced (GET), sets or changes
// the PIN (POST) and removes it (DELETE). Changing or removing an
// existing PIN requires the current one.
func (s *Server) handlePIN(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]bool{"enabled": s.settings.HasPIN()})

	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed form data"})
			return
		}
		if s.settings.HasPIN() && !gate.Verify(r.Form.Get("current"), s.settings.PINHash()) {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "wrong current pin"})
			return
		}
		if err := s.settings.SetPIN(r.Form.Get("pin")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "pin set"})

	case http.MethodDelete:
		if !s.settings.HasPIN() {
			writeJSON(w, http.StatusOK, map[string]string{"status": "no pin set"})
			return
		}
		if !gate.Verify(r.URL.Query().Get("current"), s.settings.PINHash()) {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "wrong current pin"})
			return
		}
		if err := s.settings.RemovePIN(); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "pin removed"})

	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

// handlePINVerify runs one attempt through the bounded startup gate.
// With no PIN enforced it reports success without consuming budget.
// Exhausting the budget yields 429; the front-end decides what an
// exhausted session means (the server keeps running).
func (s *Server) handlePINVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	if !s.settings.HasPIN() {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "required": false})
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed form data"})
		return
	}

	ok, err := s.gate.Verify(r.Form.Get("pin"), s.settings.PINHash())
	if err != nil {
		s.logger.Warn("PIN attempts exhausted", log.FieldOperation, log.OpVerify)
		writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"ok":        false,
			"remaining": s.gate.Remaining(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "required": true})
}
