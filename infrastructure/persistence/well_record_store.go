// Package persistence provides database storage implementations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
	"github.com/lapsetrack/lapsetrack/internal/database"
)

// WellRecordStore implements wellrecord.Gateway using GORM.
type WellRecordStore struct {
	db     database.Database
	mapper WellRecordMapper
}

// NewWellRecordStore creates a new WellRecordStore.
func NewWellRecordStore(db database.Database) WellRecordStore {
	return WellRecordStore{db: db}
}

// Find returns the stored record for the API number, or
// wellrecord.ErrNotFound.
func (s WellRecordStore) Find(ctx context.Context, apiNum string) (*wellrecord.WellRecord, error) {
	var model WellRecordModel
	result := s.db.Session(ctx).Where("api_num = ?", apiNum).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("well record %s: %w", apiNum, wellrecord.ErrNotFound)
		}
		return nil, fmt.Errorf("find well record %s: %w", apiNum, result.Error)
	}
	return s.mapper.ToDomain(model)
}

// Insert stores a new record.
func (s WellRecordStore) Insert(ctx context.Context, record *wellrecord.WellRecord) error {
	model, err := s.mapper.ToModel(record)
	if err != nil {
		return err
	}
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now

	if result := s.db.Session(ctx).Create(&model); result.Error != nil {
		return fmt.Errorf("insert well record %s: %w", record.APINum(), result.Error)
	}
	return nil
}

// Update replaces the stored record, inserting it if absent.
func (s WellRecordStore) Update(ctx context.Context, record *wellrecord.WellRecord) error {
	model, err := s.mapper.ToModel(record)
	if err != nil {
		return err
	}
	model.UpdatedAt = time.Now()

	if result := s.db.Session(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("update well record %s: %w", record.APINum(), result.Error)
	}
	return nil
}

// Delete removes the stored record for the API number.
func (s WellRecordStore) Delete(ctx context.Context, apiNum string) error {
	result := s.db.Session(ctx).Where("api_num = ?", apiNum).Delete(&WellRecordModel{})
	if result.Error != nil {
		return fmt.Errorf("delete well record %s: %w", apiNum, result.Error)
	}
	return nil
}

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(ctx context.Context, db database.Database) error {
	if err := db.Session(ctx).AutoMigrate(&WellRecordModel{}); err != nil {
		return fmt.Errorf("migrate well records schema: %w", err)
	}
	return nil
}
