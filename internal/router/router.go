package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hospital/internal/auth"
	"hospital/internal/handler"
	"hospital/internal/model"
)

// Register wires routes and middleware. Role checks are explicit per-route
// guards composed after JWT validation.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	patientHandler *handler.PatientHandler,
	accountHandler *handler.AccountHandler,
	authHandler *handler.AuthHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// JWT validation delegates to our service so handlers and guards see
	// typed claims instead of raw map claims.
	authRequired := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ContextKey: auth.ContextKey,
	})

	// Public routes
	e.GET("/", patientHandler.Home)
	authGroup := e.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)

	// Any authenticated user
	e.GET("/patients", patientHandler.ListAll, authRequired)

	// Browsing requires the USER role
	userGroup := e.Group("/user", authRequired, auth.RequireRole(model.RoleUser))
	userGroup.GET("/index", patientHandler.Index)

	// Mutations and account management require the ADMIN role
	adminGroup := e.Group("/admin", authRequired, auth.RequireRole(model.RoleAdmin))
	adminGroup.GET("/deletePatient", patientHandler.Delete)
	adminGroup.GET("/formPatients", patientHandler.Form)
	adminGroup.POST("/save", patientHandler.Save)
	adminGroup.GET("/editPatient", patientHandler.Edit)

	adminGroup.POST("/users", accountHandler.CreateUser)
	adminGroup.POST("/roles", accountHandler.CreateRole)
	adminGroup.POST("/users/:username/roles", accountHandler.GrantRole)
	adminGroup.DELETE("/users/:username/roles/:role", accountHandler.RevokeRole)
	adminGroup.POST("/seed", seedHandler.SeedDemo)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
