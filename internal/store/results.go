package store

import (
	"context"

	"neuroscan_backend/internal/domain"

	"gorm.io/gorm"
)

// ResultStore persists Result records and serves the doctor- and
// patient-scoped listings.
type ResultStore struct {
	db *gorm.DB
}

func NewResultStore(db *gorm.DB) *ResultStore {
	return &ResultStore{db: db}
}

// Save inserts the result inside a transaction and reloads it with both user
// references populated, so callers get the record as it will be served.
func (s *ResultStore) Save(ctx context.Context, r *domain.Result) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(r).Error; err != nil {
			return err // Rollback
		}
		return tx.Preload("Patient").Preload("Doctor").First(r, r.ID).Error
	})
}

// FindAllByDoctor returns every result whose doctor reference equals the
// given user, in insertion order.
func (s *ResultStore) FindAllByDoctor(ctx context.Context, doctor *domain.User) ([]domain.Result, error) {
	var results []domain.Result
	err := s.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("doctor_id = ?", doctor.ID).
		Find(&results).Error
	return results, err
}

// FindAllByPatient returns every result whose patient reference equals the
// given user, in insertion order.
func (s *ResultStore) FindAllByPatient(ctx context.Context, patient *domain.User) ([]domain.Result, error) {
	var results []domain.Result
	err := s.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("patient_id = ?", patient.ID).
		Find(&results).Error
	return results, err
}

// Count reports the number of stored results.
func (s *ResultStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.Result{}).Count(&n).Error
	return n, err
}
