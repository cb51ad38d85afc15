package http

import (
	"net/http"

	"midaxas/internal/core"
)

// handleSummary serves the dashboard numbers: overall totals plus the
// qualitative savings rating.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	totals := core.Totals(s.records.Snapshot())
	writeJSON(w, http.StatusOK, struct {
		core.Summary
		Rating string `json:"rating"`
	}{
		Summary: totals,
		Rating:  core.Rate(totals.Net, core.DefaultRatingTable()),
	})
}

// handleBreakdown serves the full-history per-category sums for one
// transaction type (default expense).
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	kind, err := core.ParseKind(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	rows := core.CategoryBreakdown(s.records.Snapshot(), kind)
	if rows == nil {
		rows = []core.CategoryAmount{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleMonthlyReport serves month-restricted totals and the top
// expense categories for that month.
func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	year, month := parseYearMonth(r)
	report := core.MonthlyReport(s.records.Snapshot(), year, month, s.cfg.ReportTopCategories)
	if report.TopExpenses == nil {
		report.TopExpenses = []core.CategoryAmount{}
	}
	writeJSON(w, http.StatusOK, report)
}

// handleBudgetWarnings serves the NEAR/OVER budget evaluation for the
// given month.
func (s *Server) handleBudgetWarnings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	year, month := parseYearMonth(r)
	warnings := core.BudgetWarnings(s.records.Snapshot(), s.settings.Budgets(), year, month, s.cfg.BudgetNearPercent)
	if warnings == nil {
		warnings = []core.BudgetWarning{}
	}
	writeJSON(w, http.StatusOK, warnings)
}
