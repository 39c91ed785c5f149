package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
)

// WellRecordMapper maps between domain WellRecord and persistence
// WellRecordModel.
type WellRecordMapper struct{}

// ToModel converts a domain WellRecord to a WellRecordModel.
func (m WellRecordMapper) ToModel(record *wellrecord.WellRecord) (WellRecordModel, error) {
	ranges := make(map[string][]string)
	for _, category := range record.RegisteredCategories() {
		group := record.DateRangesByCategory(category)
		encoded := make([]string, 0, group.Len())
		for _, r := range group.Ranges() {
			encoded = append(encoded, r.String())
		}
		ranges[category] = encoded
	}

	doc, err := json.Marshal(ranges)
	if err != nil {
		return WellRecordModel{}, fmt.Errorf("encode date ranges for %s: %w", record.APINum(), err)
	}

	return WellRecordModel{
		APINum:           record.APINum(),
		WellName:         record.WellName(),
		FirstDate:        optionalTime(record.FirstDate()),
		LastDate:         optionalTime(record.LastDate()),
		RecordAccessDate: optionalTime(record.RecordAccessDate()),
		DateRanges:       string(doc),
	}, nil
}

// ToDomain converts a WellRecordModel to a domain WellRecord. Stored range
// documents whose entries are not strings fail with ErrTypeMismatch.
func (m WellRecordMapper) ToDomain(e WellRecordModel) (*wellrecord.WellRecord, error) {
	record := wellrecord.ReconstructWellRecord(
		e.APINum,
		e.WellName,
		timeOrZero(e.FirstDate),
		timeOrZero(e.LastDate),
		timeOrZero(e.RecordAccessDate),
	)

	if e.DateRanges == "" {
		return record, nil
	}

	var doc map[string][]json.RawMessage
	if err := json.Unmarshal([]byte(e.DateRanges), &doc); err != nil {
		return nil, fmt.Errorf("decode date ranges for %s: %w", e.APINum, err)
	}

	for category, entries := range doc {
		record.RegisterEmptyCategory(category)
		for _, raw := range entries {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, fmt.Errorf("date range entry %s in category %s of %s: %w",
					raw, category, e.APINum, wellrecord.ErrTypeMismatch)
			}
			r, err := wellrecord.ParseDateRange(s)
			if err != nil {
				return nil, fmt.Errorf("date range entry in category %s of %s: %w", category, e.APINum, err)
			}
			if err := record.RegisterDateRange(r, category); err != nil {
				return nil, fmt.Errorf("register range for %s: %w", e.APINum, err)
			}
		}
	}

	return record, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
