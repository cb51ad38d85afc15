package http

import (
	"net/http"

	"midaxas/internal/export"
	"midaxas/internal/log"
)

// handleExport streams the snapshot as a CSV download, or writes it to
// a server-side path when the path query parameter is given. Export
// failures are reported, never silently dropped.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	snapshot := s.records.Snapshot()

	if path := r.URL.Query().Get("path"); path != "" {
		if err := export.ToFile(path, snapshot); err != nil {
			s.logger.Error("CSV export failed", log.FieldOperation, log.OpExport, log.FieldFile, path, log.FieldError, err.Error())
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"file": path, "rows": len(snapshot)})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="export.csv"`)
	if err := export.WriteCSV(w, snapshot); err != nil {
		// Headers are gone by now; all that is left is logging it.
		s.logger.Error("CSV export stream failed", log.FieldOperation, log.OpExport, log.FieldError, err.Error())
	}
}
