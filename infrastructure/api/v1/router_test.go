package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapsetrack/lapsetrack/application/service"
	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
)

// memoryGateway is an in-memory wellrecord.Gateway for router tests.
type memoryGateway struct {
	records map[string]*wellrecord.WellRecord
}

func (g *memoryGateway) Find(_ context.Context, apiNum string) (*wellrecord.WellRecord, error) {
	record, ok := g.records[apiNum]
	if !ok {
		return nil, wellrecord.ErrNotFound
	}
	return record, nil
}

func (g *memoryGateway) Insert(_ context.Context, record *wellrecord.WellRecord) error {
	g.records[record.APINum()] = record
	return nil
}

func (g *memoryGateway) Update(_ context.Context, record *wellrecord.WellRecord) error {
	g.records[record.APINum()] = record
	return nil
}

func (g *memoryGateway) Delete(_ context.Context, apiNum string) error {
	delete(g.records, apiNum)
	return nil
}

type stubCollector struct {
	mu      sync.Mutex
	lastReq wellrecord.CollectRequest
}

func (c *stubCollector) Collect(_ context.Context, req wellrecord.CollectRequest) (*wellrecord.WellRecord, error) {
	c.mu.Lock()
	c.lastReq = req
	c.mu.Unlock()
	record := wellrecord.NewWellRecord(req.APINum)
	record.SetWellName(req.WellName)
	record.SetRecordAccessDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	first := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC)
	if err := record.SetProductionSpan(first, last); err != nil {
		return nil, err
	}
	gap, err := wellrecord.ParseDateRange("2005-01-01::2005-12-31")
	if err != nil {
		return nil, err
	}
	if err := record.RegisterDateRange(gap, wellrecord.CategoryNoProdIgnoreShutin); err != nil {
		return nil, err
	}
	return record, nil
}

func newTestRouter(t *testing.T) (chi.Router, *stubCollector) {
	t.Helper()
	gateway := &memoryGateway{records: map[string]*wellrecord.WellRecord{}}
	collector := &stubCollector{}
	records := service.NewRecords(gateway, map[string]wellrecord.Collector{"05": collector})
	reports := service.NewReports()

	router := chi.NewRouter()
	router.Mount("/wells", NewWellsRouter(records, reports, nil).Routes())
	router.Mount("/well-groups", NewWellGroupsRouter(records, reports, nil).Routes())
	return router, collector
}

func TestGetWell(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/wells/05-123-45678?well_name=Sandy+4-A", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary service.WellRecordSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "05-123-45678", summary.APINum)
	assert.Equal(t, "Sandy 4-A", summary.WellName)
	assert.Equal(t, "Colorado", summary.StateName)
	assert.Equal(t, "2000-01-01", summary.FirstDate)
	assert.Equal(t, []string{"2005-01-01::2005-12-31"},
		summary.DateRanges[wellrecord.CategoryNoProdIgnoreShutin].DateRanges)
}

func TestGetWell_PassesExtraQueryParams(t *testing.T) {
	router, collector := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/wells/05-123-45678?ndic_num=90210", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "90210", collector.lastReq.Extra["ndic_num"])
}

func TestGetWell_InvalidAPINum(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/wells/bogus", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid api number")
}

func TestGetWell_UnsupportedState(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/wells/42-123-45678", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestForgetWell(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/wells/05-123-45678", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestResearchWellGroup_Post(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"wells": [{"api_num": "05-123-45678"}, {"api_num": "05-123-45679", "well_name": "Sandy 5-B"}]}`
	req := httptest.NewRequest(http.MethodPost, "/well-groups/research", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary service.WellGroupSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.WellCount)
	assert.Equal(t, []string{"05-123-45678", "05-123-45679"}, summary.APINums)

	// Both stub wells share the same gap, so the researched gap is that gap.
	gaps := summary.ResearchedGaps[wellrecord.CategoryNoProdIgnoreShutin]
	assert.Equal(t, []string{"2005-01-01::2005-12-31"}, gaps.DateRanges)
}

func TestResearchWellGroup_Get(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/well-groups/research?api_nums=05-123-45678,05-123-45679", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary service.WellGroupSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.WellCount)
}

func TestResearchWellGroup_BadRequests(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/well-groups/research", strings.NewReader("not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty group", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/well-groups/research", strings.NewReader(`{"wells": []}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing api_nums", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/well-groups/research", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
