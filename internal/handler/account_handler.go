package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hospital/internal/errors"
	"hospital/internal/service"
)

// AccountHandler handles user and role management endpoints.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateUserRequest represents a user creation request.
type CreateUserRequest struct {
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required,min=4"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
}

// CreateRoleRequest represents a role creation request.
type CreateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// GrantRoleRequest represents a role assignment request.
type GrantRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// CreateUser godoc
// @Summary Create a user
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} model.AppUser
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/users [post]
func (h *AccountHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.accountService.AddNewUser(c.Request().Context(), req.Username, req.Password, req.Email, req.ConfirmPassword)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, user)
}

// CreateRole godoc
// @Summary Create a role
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateRoleRequest true "Role data"
// @Success 201 {object} model.AppRole
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/roles [post]
func (h *AccountHandler) CreateRole(c echo.Context) error {
	var req CreateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, err := h.accountService.AddNewRole(c.Request().Context(), req.Role)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, role)
}

// GrantRole godoc
// @Summary Grant a role to a user
// @Tags accounts
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body GrantRoleRequest true "Role to grant"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{username}/roles [post]
func (h *AccountHandler) GrantRole(c echo.Context) error {
	var req GrantRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accountService.AddRoleToUser(c.Request().Context(), c.Param("username"), req.Role); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "role granted"})
}

// RevokeRole godoc
// @Summary Revoke a role from a user
// @Tags accounts
// @Produce json
// @Param username path string true "Username"
// @Param role path string true "Role to revoke"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{username}/roles/{role} [delete]
func (h *AccountHandler) RevokeRole(c echo.Context) error {
	if err := h.accountService.RemoveRoleFromUser(c.Request().Context(), c.Param("username"), c.Param("role")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "role revoked"})
}
