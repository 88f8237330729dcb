package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"laporan/internal/charts"
	"laporan/internal/export"
	"laporan/internal/log"
	"laporan/internal/report"
)

const (
	msgInvalidMonth = "Parameter bulan tidak valid, gunakan format YYYY-MM"
	msgLoadFailed   = "Gagal memuat data transaksi"
)

// reportPageData is passed to report.html.
type reportPageData struct {
	report.Page
	Title     string
	ExportURL string
	APIURL    string
	ChartURL  string
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/report", http.StatusSeeOther)
}

// buildPage loads the ledger and renders the page for rq.
func (s *Server) buildPage(ctx context.Context, op string, rq ReportQuery) (report.Page, error) {
	txs, hit, err := s.transactions(ctx)
	if err != nil {
		return report.Page{}, err
	}
	page := rq.Apply(txs).Render()
	log.NewStructuredLogger(log.FromContext(ctx)).LogReportRendered(ctx, op,
		page.Selected, string(page.FilterType), page.Search,
		len(page.Rows), len(page.Months), hit)
	return page, nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	rq, err := ParseReportQuery(r.URL.Query())
	if err != nil {
		logger.WarnContext(ctx, "Invalid report query", log.FieldQuery, r.URL.RawQuery, "error", err)
		http.Error(w, msgInvalidMonth, http.StatusBadRequest)
		return
	}

	page, err := s.buildPage(ctx, log.OpRender, rq)
	if err != nil {
		logger.ErrorContext(ctx, "Report load failed", "error", err)
		http.Error(w, msgLoadFailed, http.StatusInternalServerError)
		return
	}

	query := rq.Encode()
	data := reportPageData{
		Page:      page,
		Title:     export.Title(page),
		ExportURL: withQuery("/report.xlsx", query),
		APIURL:    withQuery("/api/report", query),
		ChartURL:  "/report/chart.png",
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "report.html", data); err != nil {
		logger.ErrorContext(ctx, "Template execution failed", "error", err, "template", "report.html")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rq, err := ParseReportQuery(r.URL.Query())
	if err != nil {
		writeJSONError(w, r, http.StatusBadRequest, msgInvalidMonth)
		return
	}
	page, err := s.buildPage(ctx, log.OpRender, rq)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Report load failed", "error", err)
		writeJSONError(w, r, http.StatusInternalServerError, msgLoadFailed)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (s *Server) handleReportXLSX(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	rq, err := ParseReportQuery(r.URL.Query())
	if err != nil {
		http.Error(w, msgInvalidMonth, http.StatusBadRequest)
		return
	}
	page, err := s.buildPage(ctx, log.OpExport, rq)
	if err != nil {
		logger.ErrorContext(ctx, "Report load failed", "error", err)
		http.Error(w, msgLoadFailed, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, page); err != nil {
		logger.ErrorContext(ctx, "Workbook export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	writeBinary(w, contentTypeXLSX, exportFilename(page), buf.Bytes())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	txs, _, err := s.transactions(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Report load failed", "error", err)
		http.Error(w, msgLoadFailed, http.StatusInternalServerError)
		return
	}

	png, err := charts.RenderMonthlyBars(report.MonthlySeries(txs))
	if errors.Is(err, charts.ErrNoData) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "Chart render failed", log.FieldOperation, log.OpChart, "error", err)
		http.Error(w, "chart failed", http.StatusInternalServerError)
		return
	}
	writeBinary(w, contentTypePNG, "", png)
}

// handleHealth performs a basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady checks templates and the ledger backend.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), fetchTimeout)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]any{}

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status, httpStatus = "not_ready", http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.ready != nil {
		if err := s.ready(ctx); err != nil {
			checks["ledger"] = "failed: " + err.Error()
			status, httpStatus = "not_ready", http.StatusServiceUnavailable
		} else {
			checks["ledger"] = "ok"
		}
	} else {
		checks["ledger"] = "ok"
	}

	checks["cache"] = map[string]any{"entries": s.snapshot.Size()}
	checks["suspicious_requests"] = s.metrics.suspiciousRequests.Load()
	checks["rate_limiter"] = map[string]any{
		"active_clients": s.limiter.ActiveClients(),
		"rejected":       s.limiter.Hits(),
	}

	writeJSON(w, r, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}

func exportFilename(p report.Page) string {
	if p.Selected == "" {
		return "laporan.xlsx"
	}
	return "laporan-" + p.Selected + ".xlsx"
}
