package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "hospital/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"hospital/internal/auth"
	"hospital/internal/cache"
	"hospital/internal/config"
	"hospital/internal/db"
	"hospital/internal/handler"
	"hospital/internal/model"
	"hospital/internal/repository"
	"hospital/internal/router"
	"hospital/internal/service"
)

// @title Hospital Patient Management API
// @version 1.0
// @description Patient CRUD with pagination and search, plus role-based user management.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			"app_user_roles",
			&model.AppUser{},
			&model.AppRole{},
			&model.Patient{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.AppRole{},
		&model.AppUser{},
		&model.Patient{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	patientRepo := repository.NewPatientRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	patientService := service.NewPatientService(patientRepo, cacheClient)
	accountService := service.NewAccountService(userRepo, roleRepo)
	authService := service.NewAuthService(accountService, jwtService, tokenStore)
	seedService := service.NewSeedService(accountService, patientService)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientService)
	accountHandler := handler.NewAccountHandler(accountService)
	authHandler := handler.NewAuthHandler(authService)
	seedHandler := handler.NewSeedHandler(seedService)

	// Register routes
	router.Register(
		e,
		jwtService,
		patientHandler,
		accountHandler,
		authHandler,
		seedHandler,
	)

	// Seed demo data before accepting requests
	if cfg.SeedDemo {
		summary, err := seedService.SeedDemo(context.Background())
		if err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
		log.Printf("Seeded demo data: %d roles, %d users, %d patients",
			summary.Roles, summary.Users, summary.Patients)
	}

	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
