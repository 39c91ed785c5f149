// Package v1 provides the v1 API routes.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lapsetrack/lapsetrack/application/service"
	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
	"github.com/lapsetrack/lapsetrack/infrastructure/api/middleware"
)

// Query parameters reserved by the wells endpoints. Anything else is passed
// through to the state collector as an extra parameter.
var reservedQueryParams = map[string]bool{
	"well_name": true,
	"url":       true,
}

// WellsRouter handles single-well API endpoints.
type WellsRouter struct {
	records *service.Records
	reports *service.Reports
	logger  *slog.Logger
}

// NewWellsRouter creates a new WellsRouter.
func NewWellsRouter(records *service.Records, reports *service.Reports, logger *slog.Logger) *WellsRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WellsRouter{records: records, reports: reports, logger: logger}
}

// Routes returns the chi router for well endpoints.
func (r *WellsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{api_num}", r.Get)
	router.Delete("/{api_num}", r.Forget)

	return router
}

// Get handles GET /api/v1/wells/{api_num}. Collector-specific parameters,
// such as North Dakota's ndic_num, ride along as query parameters.
func (r *WellsRouter) Get(w http.ResponseWriter, req *http.Request) {
	collectReq := collectRequestFrom(req)

	record, err := r.records.Get(req.Context(), collectReq)
	if err != nil {
		middleware.WriteError(w, r.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, r.reports.SummarizeWellRecord(record))
}

// Forget handles DELETE /api/v1/wells/{api_num}, dropping the stored record
// so the next request re-collects it.
func (r *WellsRouter) Forget(w http.ResponseWriter, req *http.Request) {
	apiNum := chi.URLParam(req, "api_num")

	if err := r.records.Forget(req.Context(), apiNum); err != nil {
		middleware.WriteError(w, r.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func collectRequestFrom(req *http.Request) wellrecord.CollectRequest {
	query := req.URL.Query()
	collectReq := wellrecord.CollectRequest{
		APINum:   chi.URLParam(req, "api_num"),
		WellName: query.Get("well_name"),
		URL:      query.Get("url"),
	}
	for key, values := range query {
		if reservedQueryParams[key] || len(values) == 0 {
			continue
		}
		if collectReq.Extra == nil {
			collectReq.Extra = map[string]string{}
		}
		collectReq.Extra[key] = values[0]
	}
	return collectReq
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
