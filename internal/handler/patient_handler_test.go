package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hospital/internal/errors"
	"hospital/internal/model"
	"hospital/internal/service"
)

// MockPatientService is a mock implementation of service.PatientService.
type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) ListPatients(ctx context.Context) ([]model.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Patient), args.Error(1)
}

func (m *MockPatientService) SearchPatients(ctx context.Context, keyword string, page, size int) (*service.PatientPage, error) {
	args := m.Called(ctx, keyword, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PatientPage), args.Error(1)
}

func (m *MockPatientService) GetPatient(ctx context.Context, id uint) (*model.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *MockPatientService) SavePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	args := m.Called(ctx, patient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *MockPatientService) DeletePatient(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type testValidator struct {
	validate *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validate.Struct(i)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPatientHandler_Index(t *testing.T) {
	mockSvc := new(MockPatientService)
	mockSvc.On("SearchPatients", mock.Anything, "ali", 1, 4).Return(&service.PatientPage{
		Patients:    []model.Patient{{ID: 5, LastName: "Alioui"}},
		Pages:       []int{0, 1, 2},
		CurrentPage: 1,
		TotalPages:  3,
		Keyword:     "ali",
	}, nil)

	h := NewPatientHandler(mockSvc)
	c, rec := newTestContext(http.MethodGet, "/user/index?page=1&size=4&keyword=ali", "")

	assert.NoError(t, h.Index(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"keyword":"ali"`)
	assert.Contains(t, rec.Body.String(), `"pages":[0,1,2]`)
	mockSvc.AssertExpectations(t)
}

func TestPatientHandler_Index_Defaults(t *testing.T) {
	mockSvc := new(MockPatientService)
	mockSvc.On("SearchPatients", mock.Anything, "", 0, 4).Return(&service.PatientPage{
		Patients: []model.Patient{},
		Pages:    []int{},
		Keyword:  "",
	}, nil)

	h := NewPatientHandler(mockSvc)
	c, rec := newTestContext(http.MethodGet, "/user/index", "")

	assert.NoError(t, h.Index(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestPatientHandler_Save(t *testing.T) {
	t.Run("short last name fails validation and persists nothing", func(t *testing.T) {
		mockSvc := new(MockPatientService)
		h := NewPatientHandler(mockSvc)
		c, _ := newTestContext(http.MethodPost, "/admin/save",
			`{"last_name":"Al","first_name":"Nora","score":150}`)

		err := h.Save(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		mockSvc.AssertNotCalled(t, "SavePatient", mock.Anything, mock.Anything)
	})

	t.Run("score below minimum fails validation", func(t *testing.T) {
		mockSvc := new(MockPatientService)
		h := NewPatientHandler(mockSvc)
		c, _ := newTestContext(http.MethodPost, "/admin/save",
			`{"last_name":"Alami","first_name":"Nora","score":99}`)

		err := h.Save(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		mockSvc.AssertNotCalled(t, "SavePatient", mock.Anything, mock.Anything)
	})

	t.Run("bad birth date fails validation", func(t *testing.T) {
		mockSvc := new(MockPatientService)
		h := NewPatientHandler(mockSvc)
		c, _ := newTestContext(http.MethodPost, "/admin/save",
			`{"last_name":"Alami","first_name":"Nora","score":150,"birth_date":"12/03/1989"}`)

		err := h.Save(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		mockSvc.AssertNotCalled(t, "SavePatient", mock.Anything, mock.Anything)
	})

	t.Run("valid payload redirects back to the listing", func(t *testing.T) {
		mockSvc := new(MockPatientService)
		mockSvc.On("SavePatient", mock.Anything, mock.MatchedBy(func(p *model.Patient) bool {
			return p.LastName == "Alami" && p.Score == 150
		})).Return(&model.Patient{ID: 1, LastName: "Alami"}, nil)

		h := NewPatientHandler(mockSvc)
		c, rec := newTestContext(http.MethodPost, "/admin/save?page=2&keyword=al",
			`{"last_name":"Alami","first_name":"Nora","score":150,"birth_date":"1989-03-12"}`)

		assert.NoError(t, h.Save(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/user/index?page=2&keyword=al", rec.Header().Get(echo.HeaderLocation))
		mockSvc.AssertExpectations(t)
	})

	t.Run("update of unknown id is not found", func(t *testing.T) {
		mockSvc := new(MockPatientService)
		mockSvc.On("SavePatient", mock.Anything, mock.Anything).Return(nil, errors.ErrPatientNotFound)

		h := NewPatientHandler(mockSvc)
		c, _ := newTestContext(http.MethodPost, "/admin/save",
			`{"id":999,"last_name":"Alami","first_name":"Nora","score":150}`)

		err := h.Save(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})
}

func TestPatientHandler_Edit(t *testing.T) {
	t.Run("loads the patient with listing state", func(t *testing.T) {
		mockSvc := new(MockPatientService)
		mockSvc.On("GetPatient", mock.Anything, uint(7)).Return(&model.Patient{ID: 7, LastName: "Hassan"}, nil)

		h := NewPatientHandler(mockSvc)
		c, rec := newTestContext(http.MethodGet, "/admin/editPatient?id=7&keyword=Has&page=1", "")

		assert.NoError(t, h.Edit(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"keyword":"Has"`)
		assert.Contains(t, rec.Body.String(), `"Hassan"`)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		mockSvc := new(MockPatientService)
		mockSvc.On("GetPatient", mock.Anything, uint(7)).Return(nil, errors.ErrPatientNotFound)

		h := NewPatientHandler(mockSvc)
		c, _ := newTestContext(http.MethodGet, "/admin/editPatient?id=7", "")

		err := h.Edit(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})

	t.Run("missing id is a bad request", func(t *testing.T) {
		h := NewPatientHandler(new(MockPatientService))
		c, _ := newTestContext(http.MethodGet, "/admin/editPatient", "")

		err := h.Edit(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestPatientHandler_Delete(t *testing.T) {
	mockSvc := new(MockPatientService)
	mockSvc.On("DeletePatient", mock.Anything, uint(5)).Return(nil)

	h := NewPatientHandler(mockSvc)
	c, rec := newTestContext(http.MethodGet, "/admin/deletePatient?id=5&keyword=ali&page=2", "")

	assert.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/user/index?page=2&keyword=ali", rec.Header().Get(echo.HeaderLocation))
	mockSvc.AssertExpectations(t)
}

func TestPatientHandler_ListAll(t *testing.T) {
	mockSvc := new(MockPatientService)
	mockSvc.On("ListPatients", mock.Anything).Return([]model.Patient{
		{ID: 1, LastName: "Hassan"},
		{ID: 2, LastName: "Alioui"},
	}, nil)

	h := NewPatientHandler(mockSvc)
	c, rec := newTestContext(http.MethodGet, "/patients", "")

	assert.NoError(t, h.ListAll(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Alioui"`)
}

func TestPatientHandler_Home(t *testing.T) {
	h := NewPatientHandler(new(MockPatientService))
	c, rec := newTestContext(http.MethodGet, "/", "")

	assert.NoError(t, h.Home(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/user/index", rec.Header().Get(echo.HeaderLocation))
}
