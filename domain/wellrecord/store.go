package wellrecord

import "context"

// Gateway persists well records keyed by API number. Implementations own
// the storage representation entirely; the domain exchanges only WellRecord
// values and the "YYYY-MM-DD::YYYY-MM-DD" range serialization.
type Gateway interface {
	// Find returns the stored record for the API number, or ErrNotFound.
	Find(ctx context.Context, apiNum string) (*WellRecord, error)
	// Insert stores a new record.
	Insert(ctx context.Context, record *WellRecord) error
	// Update replaces the stored record, inserting it if absent.
	Update(ctx context.Context, record *WellRecord) error
	// Delete removes the stored record for the API number.
	Delete(ctx context.Context, apiNum string) error
}

// CollectRequest identifies the well whose public production records should
// be collected.
type CollectRequest struct {
	// APINum is the unique API number of the well.
	APINum string
	// WellName optionally names the well on the resulting record.
	WellName string
	// URL, when set, overrides the collector's own URL construction.
	URL string
	// Extra carries collector-specific parameters, such as a state
	// regulator's own file number for the well.
	Extra map[string]string
}

// Collector produces a WellRecord from public production records, with the
// standard gap categories pre-registered (explicitly empty when the well has
// no non-qualifying periods).
type Collector interface {
	Collect(ctx context.Context, req CollectRequest) (*WellRecord, error)
}
