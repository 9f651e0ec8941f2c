package repository

import (
	"context"

	"gorm.io/gorm"

	"hospital/internal/model"
)

// PatientRepository defines patient persistence operations.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Update(ctx context.Context, patient *model.Patient) (int64, error)
	FindByID(ctx context.Context, id uint) (*model.Patient, error)
	List(ctx context.Context) ([]model.Patient, error)
	FindByLastNameContaining(ctx context.Context, keyword string, page, size int) ([]model.Patient, int64, error)
	DeleteByID(ctx context.Context, id uint) (int64, error)
}

type patientRepository struct {
	db *gorm.DB
}

// NewPatientRepository builds a GORM-backed repository.
func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

// Update writes all fields of an existing patient and returns the number of
// rows touched, so callers can tell an update of an unknown id apart from a
// successful one.
func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Patient{}).
		Where("id = ?", patient.ID).
		Select("last_name", "first_name", "birth_date", "score", "sick").
		Updates(patient)
	return res.RowsAffected, res.Error
}

func (r *patientRepository) FindByID(ctx context.Context, id uint) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]model.Patient, error) {
	var patients []model.Patient
	if err := r.db.WithContext(ctx).Order("id").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// FindByLastNameContaining returns one page of patients whose last name
// contains keyword, plus the total match count. The match is case-sensitive,
// hence LIKE BINARY. Pages are zero-based and ordered by insertion id.
func (r *patientRepository) FindByLastNameContaining(ctx context.Context, keyword string, page, size int) ([]model.Patient, int64, error) {
	pattern := "%" + keyword + "%"

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Patient{}).
		Where("last_name LIKE BINARY ?", pattern).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []model.Patient
	if err := r.db.WithContext(ctx).
		Where("last_name LIKE BINARY ?", pattern).
		Order("id").Offset(page * size).Limit(size).
		Find(&patients).Error; err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

// DeleteByID removes a patient and reports the number of rows deleted.
// Deleting an id that does not exist is not an error.
func (r *patientRepository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Patient{}, id)
	return res.RowsAffected, res.Error
}
