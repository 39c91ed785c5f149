package lapsetrack

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
)

type stubCollector struct{}

func (stubCollector) Collect(_ context.Context, req wellrecord.CollectRequest) (*wellrecord.WellRecord, error) {
	record := wellrecord.NewWellRecord(req.APINum)
	record.SetRecordAccessDate(time.Now())
	first := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC)
	if err := record.SetProductionSpan(first, last); err != nil {
		return nil, err
	}
	gap, err := wellrecord.ParseDateRange("2003-01-01::2004-06-30")
	if err != nil {
		return nil, err
	}
	if err := record.RegisterDateRange(gap, wellrecord.CategoryNoProdIgnoreShutin); err != nil {
		return nil, err
	}
	return record, nil
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(
		WithSQLite(filepath.Join(t.TempDir(), "test.db")),
		WithCollectors(map[string]wellrecord.Collector{"05": stubCollector{}}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClient_ResearchEndToEnd(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	group, err := client.Records().ResearchGaps(ctx, []wellrecord.CollectRequest{
		{APINum: "05-123-45678"},
		{APINum: "05-123-45679"},
	})
	require.NoError(t, err)

	summary := client.Reports().SummarizeWellGroup(group)
	assert.Equal(t, 2, summary.WellCount)

	gaps := summary.ResearchedGaps[wellrecord.CategoryNoProdIgnoreShutin]
	assert.Equal(t, []string{"2003-01-01::2004-06-30"}, gaps.DateRanges)

	// Collected records were stored; a second lookup hits the store.
	record, err := client.Records().Get(ctx, wellrecord.CollectRequest{APINum: "05-123-45678"})
	require.NoError(t, err)
	assert.False(t, record.RecordAccessDate().IsZero())
}

func TestClient_Ping(t *testing.T) {
	client := newTestClient(t)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestClient_CloseIsIdempotent(t *testing.T) {
	client := newTestClient(t)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
	assert.ErrorIs(t, client.Ping(context.Background()), ErrClientClosed)
}

func TestClient_BadDatabaseURL(t *testing.T) {
	_, err := New(WithDatabaseURL("mysql://nope"))
	assert.Error(t, err)
}
