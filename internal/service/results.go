// Package service implements the result workflow: identity resolution,
// transactional persistence and the fire-and-forget patient notification.
package service

import (
	"context"
	"fmt"
	"time"

	"neuroscan_backend/internal/domain"
	"neuroscan_backend/internal/notify"

	"github.com/sirupsen/logrus"
)

// UserDirectory resolves users by their natural keys.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmbg(ctx context.Context, embg string) (*domain.User, error)
}

// ResultRepository persists and lists results.
type ResultRepository interface {
	Save(ctx context.Context, r *domain.Result) error
	FindAllByDoctor(ctx context.Context, doctor *domain.User) ([]domain.Result, error)
	FindAllByPatient(ctx context.Context, patient *domain.User) ([]domain.Result, error)
}

// ResultService orchestrates result creation and role-scoped retrieval.
type ResultService struct {
	users    UserDirectory
	results  ResultRepository
	notifier notify.Notifier
}

func NewResultService(users UserDirectory, results ResultRepository, notifier notify.Notifier) *ResultService {
	return &ResultService{users: users, results: results, notifier: notifier}
}

// CreateResult resolves the doctor by email and the patient by embg, persists
// a new result dated today, and notifies the patient after the write commits.
// Identity resolution failures abort before any durable write, so every
// committed result references two real users. The notification runs detached:
// a delivery failure is logged and never unwinds the committed result.
func (s *ResultService) CreateResult(ctx context.Context, confidence float32, classification, modelUsed, notes, doctorEmail, patientEmbg string) (*domain.Result, error) {
	doctor, err := s.users.FindByEmail(ctx, doctorEmail)
	if err != nil {
		return nil, fmt.Errorf("resolve doctor %q: %w", doctorEmail, err)
	}
	patient, err := s.users.FindByEmbg(ctx, patientEmbg)
	if err != nil {
		return nil, fmt.Errorf("resolve patient %q: %w", patientEmbg, err)
	}

	result := &domain.Result{
		Date:           time.Now(),
		Confidence:     confidence,
		Classification: classification,
		ModelUsed:      modelUsed,
		Notes:          notes,
		PatientID:      patient.ID,
		DoctorID:       doctor.ID,
	}
	if err := s.results.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}

	// Outside the transaction boundary: the record is done once stored,
	// mail is advisory.
	go s.notifyResultReady(result.Patient.Email, result.Patient.FullName())

	return result, nil
}

// notifyResultReady performs the single best-effort delivery attempt.
func (s *ResultService) notifyResultReady(email, fullName string) {
	if err := s.notifier.NotifyResultReady(context.Background(), email, fullName); err != nil {
		logrus.WithFields(logrus.Fields{
			"email": email,
			"error": err.Error(),
		}).Error("Result notification failed")
	}
}

// GetDoctorResults lists every result recorded by the doctor with the given
// email. Returns store.ErrNotFound (wrapped) when the email does not resolve.
func (s *ResultService) GetDoctorResults(ctx context.Context, email string) ([]domain.Result, error) {
	doctor, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("resolve doctor %q: %w", email, err)
	}
	return s.results.FindAllByDoctor(ctx, doctor)
}

// GetPatientResults lists every result recorded for the patient with the
// given email.
func (s *ResultService) GetPatientResults(ctx context.Context, email string) ([]domain.Result, error) {
	patient, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("resolve patient %q: %w", email, err)
	}
	return s.results.FindAllByPatient(ctx, patient)
}
