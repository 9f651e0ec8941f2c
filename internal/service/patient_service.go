package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hospital/internal/cache"
	"hospital/internal/errors"
	"hospital/internal/model"
	"hospital/internal/repository"
)

const patientCacheTTL = 5 * time.Minute

// PatientPage is one page of a filtered patient listing. Pages holds one
// zero-based index per available page so clients can render pagination links.
type PatientPage struct {
	Patients    []model.Patient `json:"patients"`
	Pages       []int           `json:"pages"`
	CurrentPage int             `json:"current_page"`
	TotalPages  int             `json:"total_pages"`
	Keyword     string          `json:"keyword"`
}

// PatientService exposes patient domain operations.
type PatientService interface {
	ListPatients(ctx context.Context) ([]model.Patient, error)
	SearchPatients(ctx context.Context, keyword string, page, size int) (*PatientPage, error)
	GetPatient(ctx context.Context, id uint) (*model.Patient, error)
	SavePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error)
	DeletePatient(ctx context.Context, id uint) error
}

type patientService struct {
	repo  repository.PatientRepository
	cache *cache.Client
}

// NewPatientService builds a PatientService with repository and cache.
func NewPatientService(repo repository.PatientRepository, cache *cache.Client) PatientService {
	return &patientService{repo: repo, cache: cache}
}

func (s *patientService) cacheKey(id uint) string {
	return fmt.Sprintf("patient:%d", id)
}

func (s *patientService) ListPatients(ctx context.Context) ([]model.Patient, error) {
	return s.repo.List(ctx)
}

// SearchPatients returns the requested page of patients whose last name
// contains keyword (case-sensitive), in insertion order.
func (s *patientService) SearchPatients(ctx context.Context, keyword string, page, size int) (*PatientPage, error) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 1
	}

	patients, total, err := s.repo.FindByLastNameContaining(ctx, keyword, page, size)
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	pages := make([]int, totalPages)
	for i := range pages {
		pages[i] = i
	}

	return &PatientPage{
		Patients:    patients,
		Pages:       pages,
		CurrentPage: page,
		TotalPages:  totalPages,
		Keyword:     keyword,
	}, nil
}

// GetPatient retrieves a patient by id with caching.
func (s *patientService) GetPatient(ctx context.Context, id uint) (*model.Patient, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Patient
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPatientNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(patient); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, patientCacheTTL)
	}
	return patient, nil
}

// SavePatient creates the patient when it carries no id, otherwise updates
// the existing record. Updating an id that does not exist is rejected as
// not found rather than inserted verbatim.
func (s *patientService) SavePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	if patient.ID == 0 {
		if err := s.repo.Create(ctx, patient); err != nil {
			return nil, fmt.Errorf("create patient: %w", err)
		}
		return patient, nil
	}

	rows, err := s.repo.Update(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrPatientNotFound
	}
	_ = s.cache.Delete(ctx, s.cacheKey(patient.ID))
	return patient, nil
}

// DeletePatient removes a patient by id. Deleting an unknown id is a no-op.
func (s *patientService) DeletePatient(ctx context.Context, id uint) error {
	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
