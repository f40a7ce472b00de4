package http

import (
	"net/http"
	"strings"

	"upilens/internal/core"
	"upilens/internal/export"
)

// handleSummary serves the aggregated bundle for the requested filter.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	f, err := parseFilter(r)
	if err != nil {
		writeError(w, s.logger, http.StatusBadRequest, err.Error())
		return
	}

	p := s.paramsFor(f)
	sum := s.getSummary(r.Context(), p)
	writeJSON(w, s.logger, http.StatusOK, buildSummaryResponse(p, sum))
}

// handleCategories lists every category present in the ledger.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string][]string{"categories": s.allCategories})
}

// handleChart serves a single rendered chart as PNG. The chart name is the
// last path element: category.png, category-pie.png, weekday.png, hour.png
// or trend.png.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/charts/")
	render, ok := s.chartRenderers()[name]
	if !ok {
		writeError(w, s.logger, http.StatusNotFound, "unknown chart "+name)
		return
	}

	f, err := parseFilter(r)
	if err != nil {
		writeError(w, s.logger, http.StatusBadRequest, err.Error())
		return
	}
	p := s.paramsFor(f)

	key := name + "|" + paramsKey(p)
	image, found := s.chartCache.Get(key)
	if !found {
		sum := s.getSummary(r.Context(), p)
		image, err = render(sum)
		if err != nil {
			s.logger.ErrorContext(r.Context(), "chart render failed", "chart", name, "error", err)
			writeError(w, s.logger, http.StatusInternalServerError, "chart rendering failed")
			return
		}
		s.chartCache.Set(key, image)
	}

	if len(image) == 0 {
		writeError(w, s.logger, http.StatusNotFound, "no data for chart "+name)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image)
}

func (s *Server) chartRenderers() map[string]func(core.Summary) ([]byte, error) {
	return map[string]func(core.Summary) ([]byte, error){
		"category.png":     s.renderer.CategoryBar,
		"category-pie.png": s.renderer.CategoryPie,
		"weekday.png":      s.renderer.WeekdayBar,
		"hour.png":         s.renderer.HourBar,
		"trend.png":        s.renderer.MonthlyTrend,
	}
}

// handleAdvice serves advisory text for the requested filter. The response
// always carries text; backend failures degrade to a fixed fallback inside
// the advisor service.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	f, err := parseFilter(r)
	if err != nil {
		writeError(w, s.logger, http.StatusBadRequest, err.Error())
		return
	}
	p := s.paramsFor(f)

	key := paramsKey(p)
	advice, found := s.adviceCache.Get(key)
	if !found {
		sum := s.getSummary(r.Context(), p)
		advice = s.advisorSvc.Advise(r.Context(), sum)
		s.adviceCache.Set(key, advice)
	}

	writeJSON(w, s.logger, http.StatusOK, map[string]string{"advice": advice})
}

// handleExport builds a PDF report. The kind parameter selects between the
// charts report and the advice report.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	kind, err := export.ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		writeError(w, s.logger, http.StatusBadRequest, err.Error())
		return
	}

	f, err := parseFilter(r)
	if err != nil {
		writeError(w, s.logger, http.StatusBadRequest, err.Error())
		return
	}
	p := s.paramsFor(f)
	sum := s.getSummary(r.Context(), p)

	var pdf []byte
	var filename string
	switch kind {
	case export.KindCharts:
		pdf, err = s.exporter.ChartsReport(r.Context(), sum)
		filename = "spending_charts.pdf"
	case export.KindAdvice:
		advice := s.advisorSvc.Advise(r.Context(), sum)
		pdf, err = s.exporter.AdviceReport(advice)
		filename = "financial_advice.pdf"
	}
	if err != nil {
		s.logger.ErrorContext(r.Context(), "export failed", "kind", string(kind), "error", err)
		writeError(w, s.logger, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
