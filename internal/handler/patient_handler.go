package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"hospital/internal/errors"
	"hospital/internal/model"
	"hospital/internal/service"
)

const (
	defaultPageSize = 4
	birthDateLayout = "2006-01-02"
)

// PatientHandler bundles patient HTTP handlers.
type PatientHandler struct {
	svc service.PatientService
}

// NewPatientHandler creates a handler layer.
func NewPatientHandler(svc service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

// SavePatientRequest is the payload for creating or updating a patient.
// A zero id means create; a non-zero id updates the existing record.
type SavePatientRequest struct {
	ID        uint   `json:"id" form:"id"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,min=4,max=50"`
	FirstName string `json:"first_name" form:"first_name" validate:"required"`
	BirthDate string `json:"birth_date" form:"birth_date"`
	Score     int    `json:"score" form:"score" validate:"gte=100"`
	Sick      bool   `json:"sick" form:"sick"`
}

// EditPatientResponse carries a patient plus the listing state to return to.
type EditPatientResponse struct {
	Patient *model.Patient `json:"patient"`
	Keyword string         `json:"keyword"`
	Page    int            `json:"page"`
}

// Index godoc
// @Summary Paginated, name-filtered patient listing
// @Tags patients
// @Produce json
// @Param page query int false "Zero-based page" default(0)
// @Param size query int false "Page size" default(4)
// @Param keyword query string false "Last-name substring filter"
// @Success 200 {object} service.PatientPage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/index [get]
func (h *PatientHandler) Index(c echo.Context) error {
	page := intQueryParam(c, "page", 0)
	size := intQueryParam(c, "size", defaultPageSize)
	keyword := c.QueryParam("keyword")

	result, err := h.svc.SearchPatients(c.Request().Context(), keyword, page, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// ListAll godoc
// @Summary List all patients
// @Tags patients
// @Produce json
// @Success 200 {array} model.Patient
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /patients [get]
func (h *PatientHandler) ListAll(c echo.Context) error {
	patients, err := h.svc.ListPatients(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, patients)
}

// Form godoc
// @Summary Blank patient creation payload
// @Tags patients
// @Produce json
// @Success 200 {object} model.Patient
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/formPatients [get]
func (h *PatientHandler) Form(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Patient{})
}

// Save godoc
// @Summary Create or update a patient
// @Tags patients
// @Accept json
// @Produce json
// @Param patient body SavePatientRequest true "Patient payload"
// @Param page query int false "Listing page to return to"
// @Param keyword query string false "Listing filter to return to"
// @Success 302
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/save [post]
func (h *PatientHandler) Save(c echo.Context) error {
	var req SavePatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": validationMessages(err),
		})
	}

	patient := &model.Patient{
		ID:        req.ID,
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Score:     req.Score,
		Sick:      req.Sick,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]interface{}{
				"error":  "validation failed",
				"fields": map[string]string{"birth_date": "must be a date in YYYY-MM-DD format"},
			})
		}
		patient.BirthDate = birthDate
	}

	if _, err := h.svc.SavePatient(c.Request().Context(), patient); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.Redirect(http.StatusFound, indexURL(c.QueryParam("keyword"), intQueryParam(c, "page", 0)))
}

// Edit godoc
// @Summary Load a patient for editing
// @Tags patients
// @Produce json
// @Param id query int true "Patient id"
// @Param keyword query string false "Listing filter to return to"
// @Param page query int false "Listing page to return to"
// @Success 200 {object} EditPatientResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/editPatient [get]
func (h *PatientHandler) Edit(c echo.Context) error {
	id, err := strconv.Atoi(c.QueryParam("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	patient, err := h.svc.GetPatient(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, EditPatientResponse{
		Patient: patient,
		Keyword: c.QueryParam("keyword"),
		Page:    intQueryParam(c, "page", 0),
	})
}

// Delete godoc
// @Summary Delete a patient and return to the listing
// @Tags patients
// @Param id query int true "Patient id"
// @Param keyword query string false "Listing filter to return to"
// @Param page query int false "Listing page to return to"
// @Success 302
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/deletePatient [get]
func (h *PatientHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.QueryParam("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.DeletePatient(c.Request().Context(), uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, indexURL(c.QueryParam("keyword"), intQueryParam(c, "page", 0)))
}

// Home godoc
// @Summary Redirect to the patient listing
// @Success 302
// @Router / [get]
func (h *PatientHandler) Home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/user/index")
}

func indexURL(keyword string, page int) string {
	return fmt.Sprintf("/user/index?page=%d&keyword=%s", page, url.QueryEscape(keyword))
}

func intQueryParam(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

// validationMessages flattens validator errors into field -> message.
func validationMessages(err error) map[string]string {
	fields := map[string]string{}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["_"] = err.Error()
		return fields
	}
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = "is required"
		case "min":
			fields[fe.Field()] = "must be at least " + fe.Param() + " characters"
		case "max":
			fields[fe.Field()] = "must be at most " + fe.Param() + " characters"
		case "gte":
			fields[fe.Field()] = "must be at least " + fe.Param()
		default:
			fields[fe.Field()] = "is invalid"
		}
	}
	return fields
}
