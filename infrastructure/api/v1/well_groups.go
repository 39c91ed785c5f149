package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lapsetrack/lapsetrack/application/service"
	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
	"github.com/lapsetrack/lapsetrack/infrastructure/api/middleware"
)

// WellGroupRequest asks for gap research across a set of wells.
type WellGroupRequest struct {
	Wells []WellRequest `json:"wells"`
}

// WellRequest identifies one well of a group request.
type WellRequest struct {
	APINum   string            `json:"api_num"`
	WellName string            `json:"well_name,omitempty"`
	URL      string            `json:"url,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// WellGroupsRouter handles gap research across groups of wells.
type WellGroupsRouter struct {
	records *service.Records
	reports *service.Reports
	logger  *slog.Logger
}

// NewWellGroupsRouter creates a new WellGroupsRouter.
func NewWellGroupsRouter(records *service.Records, reports *service.Reports, logger *slog.Logger) *WellGroupsRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WellGroupsRouter{records: records, reports: reports, logger: logger}
}

// Routes returns the chi router for well group endpoints.
func (r *WellGroupsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/research", r.Research)
	router.Get("/research", r.ResearchByQuery)

	return router
}

// Research handles POST /api/v1/well-groups/research. The body lists the
// wells of the group, with any collector-specific extras per well.
func (r *WellGroupsRouter) Research(w http.ResponseWriter, req *http.Request) {
	var body WellGroupRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, middleware.ErrorResponse{Error: "malformed request body"})
		return
	}
	if len(body.Wells) == 0 {
		writeJSON(w, http.StatusBadRequest, middleware.ErrorResponse{Error: "no wells requested"})
		return
	}

	reqs := make([]wellrecord.CollectRequest, len(body.Wells))
	for i, well := range body.Wells {
		reqs[i] = wellrecord.CollectRequest{
			APINum:   well.APINum,
			WellName: well.WellName,
			URL:      well.URL,
			Extra:    well.Extra,
		}
	}
	r.research(w, req, reqs)
}

// ResearchByQuery handles GET /api/v1/well-groups/research?api_nums=a,b,c
// for the common case of plain API numbers with no extras.
func (r *WellGroupsRouter) ResearchByQuery(w http.ResponseWriter, req *http.Request) {
	raw := req.URL.Query().Get("api_nums")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, middleware.ErrorResponse{Error: "api_nums query parameter is required"})
		return
	}

	var reqs []wellrecord.CollectRequest
	for _, apiNum := range strings.Split(raw, ",") {
		apiNum = strings.TrimSpace(apiNum)
		if apiNum == "" {
			continue
		}
		reqs = append(reqs, wellrecord.CollectRequest{APINum: apiNum})
	}
	if len(reqs) == 0 {
		writeJSON(w, http.StatusBadRequest, middleware.ErrorResponse{Error: "no wells requested"})
		return
	}
	r.research(w, req, reqs)
}

func (r *WellGroupsRouter) research(w http.ResponseWriter, req *http.Request, reqs []wellrecord.CollectRequest) {
	group, err := r.records.ResearchGaps(req.Context(), reqs)
	if err != nil {
		middleware.WriteError(w, r.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, r.reports.SummarizeWellGroup(group))
}
