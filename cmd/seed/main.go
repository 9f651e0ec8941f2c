package main

import (
	"context"
	"log"

	"hospital/internal/cache"
	"hospital/internal/config"
	"hospital/internal/db"
	"hospital/internal/model"
	"hospital/internal/repository"
	"hospital/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.AppRole{},
		&model.AppUser{},
		&model.Patient{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	patientRepo := repository.NewPatientRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)

	patientService := service.NewPatientService(patientRepo, cacheClient)
	accountService := service.NewAccountService(userRepo, roleRepo)
	seedService := service.NewSeedService(accountService, patientService)

	summary, err := seedService.SeedDemo(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Roles created: %d", summary.Roles)
	log.Printf("  - Users created: %d", summary.Users)
	log.Printf("  - Patients created: %d", summary.Patients)
}
