package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hospital/internal/service"
)

// SeedHandler exposes demo-data seeding to administrators.
type SeedHandler struct {
	seedService service.SeedService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(seedService service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// SeedDemo godoc
// @Summary Seed demo roles, users and patients
// @Tags seed
// @Produce json
// @Success 200 {object} service.SeedSummary
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /admin/seed [post]
func (h *SeedHandler) SeedDemo(c echo.Context) error {
	summary, err := h.seedService.SeedDemo(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, summary)
}
