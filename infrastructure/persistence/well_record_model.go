package persistence

import "time"

// WellRecordModel represents a researched well record in the database. The
// per-category date ranges are stored as a JSON document mapping category
// name to a list of "YYYY-MM-DD::YYYY-MM-DD" strings.
type WellRecordModel struct {
	APINum           string     `gorm:"column:api_num;primaryKey;size:32"`
	WellName         string     `gorm:"column:well_name;size:255"`
	FirstDate        *time.Time `gorm:"column:first_date"`
	LastDate         *time.Time `gorm:"column:last_date"`
	RecordAccessDate *time.Time `gorm:"column:record_access_date;index"`
	DateRanges       string     `gorm:"column:date_ranges;type:text"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (WellRecordModel) TableName() string {
	return "well_records"
}
