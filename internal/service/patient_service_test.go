package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"hospital/internal/errors"
	"hospital/internal/model"
)

// MockPatientRepository is a mock implementation of PatientRepository.
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) Update(ctx context.Context, patient *model.Patient) (int64, error) {
	args := m.Called(ctx, patient)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id uint) (*model.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *MockPatientRepository) List(ctx context.Context) ([]model.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByLastNameContaining(ctx context.Context, keyword string, page, size int) ([]model.Patient, int64, error) {
	args := m.Called(ctx, keyword, page, size)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Patient), args.Get(1).(int64), args.Error(2)
}

func (m *MockPatientRepository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func patientsNamed(names ...string) []model.Patient {
	out := make([]model.Patient, len(names))
	for i, n := range names {
		out[i] = model.Patient{ID: uint(i + 1), LastName: n, FirstName: "x", Score: 100}
	}
	return out
}

func TestPatientService_SearchPatients(t *testing.T) {
	tests := []struct {
		name          string
		keyword       string
		page          int
		size          int
		repoPatients  []model.Patient
		repoTotal     int64
		expectedPages []int
		expectedCount int
	}{
		{
			name:          "ten matches at size four give three pages",
			keyword:       "ali",
			page:          0,
			size:          4,
			repoPatients:  patientsNamed("Salim", "Alioui", "Khalil", "Benali"),
			repoTotal:     10,
			expectedPages: []int{0, 1, 2},
			expectedCount: 4,
		},
		{
			name:          "last page holds the remainder",
			keyword:       "ali",
			page:          2,
			size:          4,
			repoPatients:  patientsNamed("Ali", "Jalili"),
			repoTotal:     10,
			expectedPages: []int{0, 1, 2},
			expectedCount: 2,
		},
		{
			name:          "no matches",
			keyword:       "zzz",
			page:          0,
			size:          4,
			repoPatients:  []model.Patient{},
			repoTotal:     0,
			expectedPages: []int{},
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPatientRepository)
			mockRepo.On("FindByLastNameContaining", mock.Anything, tt.keyword, tt.page, tt.size).
				Return(tt.repoPatients, tt.repoTotal, nil)

			svc := NewPatientService(mockRepo, nil)
			result, err := svc.SearchPatients(context.Background(), tt.keyword, tt.page, tt.size)

			assert.NoError(t, err)
			assert.Len(t, result.Patients, tt.expectedCount)
			assert.Equal(t, tt.expectedPages, result.Pages)
			assert.Equal(t, len(tt.expectedPages), result.TotalPages)
			assert.Equal(t, tt.page, result.CurrentPage)
			assert.Equal(t, tt.keyword, result.Keyword)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPatientService_SearchPatients_ClampsBadParams(t *testing.T) {
	mockRepo := new(MockPatientRepository)
	mockRepo.On("FindByLastNameContaining", mock.Anything, "", 0, 1).
		Return([]model.Patient{}, int64(0), nil)

	svc := NewPatientService(mockRepo, nil)
	result, err := svc.SearchPatients(context.Background(), "", -3, 0)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.CurrentPage)
	mockRepo.AssertExpectations(t)
}

func TestPatientService_SavePatient(t *testing.T) {
	t.Run("zero id creates", func(t *testing.T) {
		mockRepo := new(MockPatientRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Patient")).Return(nil)

		svc := NewPatientService(mockRepo, nil)
		saved, err := svc.SavePatient(context.Background(), &model.Patient{LastName: "Alami", FirstName: "Nora", Score: 150})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("existing id updates", func(t *testing.T) {
		mockRepo := new(MockPatientRepository)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Patient")).Return(int64(1), nil)

		svc := NewPatientService(mockRepo, nil)
		_, err := svc.SavePatient(context.Background(), &model.Patient{ID: 7, LastName: "Alami", FirstName: "Nora", Score: 150})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown id is rejected", func(t *testing.T) {
		mockRepo := new(MockPatientRepository)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Patient")).Return(int64(0), nil)

		svc := NewPatientService(mockRepo, nil)
		saved, err := svc.SavePatient(context.Background(), &model.Patient{ID: 999, LastName: "Alami", FirstName: "Nora", Score: 150})

		assert.ErrorIs(t, err, errors.ErrPatientNotFound)
		assert.Nil(t, saved)
	})
}

func TestPatientService_DeletePatient_UnknownIDIsNoOp(t *testing.T) {
	mockRepo := new(MockPatientRepository)
	mockRepo.On("DeleteByID", mock.Anything, uint(42)).Return(int64(0), nil)

	svc := NewPatientService(mockRepo, nil)
	assert.NoError(t, svc.DeletePatient(context.Background(), 42))
	mockRepo.AssertExpectations(t)
}

func TestPatientService_GetPatient(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockPatientRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.Patient{ID: 3, LastName: "Hassan"}, nil)

		svc := NewPatientService(mockRepo, nil)
		patient, err := svc.GetPatient(context.Background(), 3)

		assert.NoError(t, err)
		assert.Equal(t, "Hassan", patient.LastName)
	})

	t.Run("missing", func(t *testing.T) {
		mockRepo := new(MockPatientRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewPatientService(mockRepo, nil)
		patient, err := svc.GetPatient(context.Background(), 3)

		assert.ErrorIs(t, err, errors.ErrPatientNotFound)
		assert.Nil(t, patient)
	})
}
