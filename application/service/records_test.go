package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
)

// memoryGateway is an in-memory wellrecord.Gateway for service tests.
type memoryGateway struct {
	mu      sync.Mutex
	records map[string]*wellrecord.WellRecord
}

func newMemoryGateway() *memoryGateway {
	return &memoryGateway{records: map[string]*wellrecord.WellRecord{}}
}

func (g *memoryGateway) Find(_ context.Context, apiNum string) (*wellrecord.WellRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	record, ok := g.records[apiNum]
	if !ok {
		return nil, wellrecord.ErrNotFound
	}
	return record, nil
}

func (g *memoryGateway) Insert(_ context.Context, record *wellrecord.WellRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.records[record.APINum()] = record
	return nil
}

func (g *memoryGateway) Update(_ context.Context, record *wellrecord.WellRecord) error {
	return g.Insert(context.Background(), record)
}

func (g *memoryGateway) Delete(_ context.Context, apiNum string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.records, apiNum)
	return nil
}

// stubCollector returns canned records and counts calls.
type stubCollector struct {
	mu    sync.Mutex
	calls int
	err   error
	build func(req wellrecord.CollectRequest) *wellrecord.WellRecord
}

func (c *stubCollector) Collect(_ context.Context, req wellrecord.CollectRequest) (*wellrecord.WellRecord, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.build(req), nil
}

func (c *stubCollector) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func collectedRecord(accessDate time.Time) func(wellrecord.CollectRequest) *wellrecord.WellRecord {
	return func(req wellrecord.CollectRequest) *wellrecord.WellRecord {
		record := wellrecord.NewWellRecord(req.APINum)
		record.SetWellName(req.WellName)
		record.SetRecordAccessDate(accessDate)
		record.RegisterEmptyCategory(wellrecord.CategoryNoProdIgnoreShutin)
		return record
	}
}

func TestRecords_CollectsAndStoresNewWell(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	gateway := newMemoryGateway()
	collector := &stubCollector{build: collectedRecord(now)}

	records := NewRecords(gateway,
		map[string]wellrecord.Collector{"05": collector},
		WithClock(func() time.Time { return now }),
	)

	got, err := records.Get(ctx, wellrecord.CollectRequest{APINum: "05-123-45678", WellName: "Well A"})
	require.NoError(t, err)
	assert.Equal(t, "Well A", got.WellName())
	assert.Equal(t, 1, collector.callCount())

	// The collected record was stored.
	stored, err := gateway.Find(ctx, "05-123-45678")
	require.NoError(t, err)
	assert.Equal(t, "Well A", stored.WellName())
}

func TestRecords_FreshStoredRecordSkipsCollection(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	gateway := newMemoryGateway()
	collector := &stubCollector{build: collectedRecord(now)}

	stored := wellrecord.NewWellRecord("05-123-45678")
	stored.SetRecordAccessDate(now.AddDate(0, 0, -30))
	require.NoError(t, gateway.Insert(ctx, stored))

	records := NewRecords(gateway,
		map[string]wellrecord.Collector{"05": collector},
		WithMaxRecordAge(365*24*time.Hour),
		WithClock(func() time.Time { return now }),
	)

	_, err := records.Get(ctx, wellrecord.CollectRequest{APINum: "05-123-45678"})
	require.NoError(t, err)
	assert.Equal(t, 0, collector.callCount())
}

func TestRecords_StaleStoredRecordIsRecollected(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	gateway := newMemoryGateway()
	collector := &stubCollector{build: collectedRecord(now)}

	stored := wellrecord.NewWellRecord("05-123-45678")
	stored.SetRecordAccessDate(now.AddDate(-2, 0, 0))
	require.NoError(t, gateway.Insert(ctx, stored))

	records := NewRecords(gateway,
		map[string]wellrecord.Collector{"05": collector},
		WithMaxRecordAge(365*24*time.Hour),
		WithClock(func() time.Time { return now }),
	)

	got, err := records.Get(ctx, wellrecord.CollectRequest{APINum: "05-123-45678"})
	require.NoError(t, err)
	assert.Equal(t, 1, collector.callCount())
	assert.True(t, got.RecordAccessDate().Equal(now))
}

func TestRecords_CollectionFailureFallsBackToStaleRecord(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	gateway := newMemoryGateway()
	collector := &stubCollector{err: errors.New("regulator site down")}

	stale := wellrecord.NewWellRecord("05-123-45678")
	stale.SetWellName("Stale But Usable")
	stale.SetRecordAccessDate(now.AddDate(-2, 0, 0))
	require.NoError(t, gateway.Insert(ctx, stale))

	records := NewRecords(gateway,
		map[string]wellrecord.Collector{"05": collector},
		WithMaxRecordAge(365*24*time.Hour),
		WithClock(func() time.Time { return now }),
	)

	got, err := records.Get(ctx, wellrecord.CollectRequest{APINum: "05-123-45678"})
	require.NoError(t, err)
	assert.Equal(t, "Stale But Usable", got.WellName())
}

func TestRecords_CollectionFailureWithoutStoredRecord(t *testing.T) {
	gateway := newMemoryGateway()
	collector := &stubCollector{err: errors.New("regulator site down")}

	records := NewRecords(gateway, map[string]wellrecord.Collector{"05": collector})

	_, err := records.Get(context.Background(), wellrecord.CollectRequest{APINum: "05-123-45678"})
	assert.Error(t, err)
}

func TestRecords_RejectsInvalidAPINum(t *testing.T) {
	records := NewRecords(newMemoryGateway(), nil)

	_, err := records.Get(context.Background(), wellrecord.CollectRequest{APINum: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidAPINum)

	assert.ErrorIs(t, records.Forget(context.Background(), "bogus"), ErrInvalidAPINum)
}

func TestRecords_UnsupportedState(t *testing.T) {
	records := NewRecords(newMemoryGateway(), map[string]wellrecord.Collector{})

	_, err := records.Get(context.Background(), wellrecord.CollectRequest{APINum: "42-123-45678"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedState)
	assert.Contains(t, err.Error(), "Texas")
}

func TestRecords_GetGroupPreservesOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	gateway := newMemoryGateway()
	collector := &stubCollector{build: collectedRecord(now)}

	records := NewRecords(gateway,
		map[string]wellrecord.Collector{"05": collector},
		WithClock(func() time.Time { return now }),
	)

	reqs := make([]wellrecord.CollectRequest, 6)
	for i := range reqs {
		reqs[i] = wellrecord.CollectRequest{APINum: fmt.Sprintf("05-123-1000%d", i)}
	}

	group, err := records.GetGroup(ctx, reqs)
	require.NoError(t, err)
	require.Equal(t, len(reqs), group.Len())
	for i, record := range group.WellRecords() {
		assert.Equal(t, reqs[i].APINum, record.APINum())
	}
}

func TestRecords_ResearchGaps(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	gateway := newMemoryGateway()

	build := func(req wellrecord.CollectRequest) *wellrecord.WellRecord {
		record := wellrecord.NewWellRecord(req.APINum)
		record.SetRecordAccessDate(now)
		first := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		last := time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC)
		if err := record.SetProductionSpan(first, last); err != nil {
			panic(err)
		}
		gap, err := wellrecord.ParseDateRange("2005-01-01::2005-12-31")
		if err != nil {
			panic(err)
		}
		if err := record.RegisterDateRange(gap, wellrecord.CategoryNoProdIgnoreShutin); err != nil {
			panic(err)
		}
		return record
	}
	collector := &stubCollector{build: build}

	records := NewRecords(gateway,
		map[string]wellrecord.Collector{"05": collector},
		WithClock(func() time.Time { return now }),
	)

	group, err := records.ResearchGaps(ctx, []wellrecord.CollectRequest{
		{APINum: "05-123-45678"},
		{APINum: "05-123-45679"},
	})
	require.NoError(t, err)

	gaps, ok := group.GapsFor(wellrecord.CategoryNoProdIgnoreShutin)
	require.True(t, ok)
	require.Equal(t, 1, gaps.Len())
	assert.Equal(t, "2005-01-01::2005-12-31", gaps.Ranges()[0].String())
}

func TestRecords_Forget(t *testing.T) {
	ctx := context.Background()
	gateway := newMemoryGateway()

	record := wellrecord.NewWellRecord("05-123-45678")
	require.NoError(t, gateway.Insert(ctx, record))

	records := NewRecords(gateway, nil)
	require.NoError(t, records.Forget(ctx, "05-123-45678"))

	_, err := gateway.Find(ctx, "05-123-45678")
	assert.ErrorIs(t, err, wellrecord.ErrNotFound)
}
