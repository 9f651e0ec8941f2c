package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "hospital/internal/errors"
	"hospital/internal/model"
)

// SeedSummary reports what a demo seed run created.
type SeedSummary struct {
	Roles    int `json:"roles"`
	Users    int `json:"users"`
	Patients int `json:"patients"`
}

// SeedService populates demo roles, users and patients. Runs are
// idempotent: existing records are left alone.
type SeedService interface {
	SeedDemo(ctx context.Context) (*SeedSummary, error)
}

type seedService struct {
	accounts AccountService
	patients PatientService
}

// NewSeedService creates a new seed service.
func NewSeedService(accounts AccountService, patients PatientService) SeedService {
	return &seedService{accounts: accounts, patients: patients}
}

type demoUser struct {
	username string
	email    string
	roles    []string
}

var demoUsers = []demoUser{
	{username: "user1", email: "user1@hospital.local", roles: []string{model.RoleUser}},
	{username: "user2", email: "user2@hospital.local", roles: []string{model.RoleUser}},
	{username: "admin", email: "admin@hospital.local", roles: []string{model.RoleUser, model.RoleAdmin}},
}

const demoPassword = "1234"

func demoPatients() []model.Patient {
	birth := func(y, m, d int) time.Time {
		return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	}
	return []model.Patient{
		{LastName: "Hassan", FirstName: "Mohamed", BirthDate: birth(1989, 3, 12), Score: 120, Sick: false},
		{LastName: "Yasmina", FirstName: "Imane", BirthDate: birth(1995, 7, 1), Score: 230, Sick: true},
		{LastName: "Hanane", FirstName: "Sara", BirthDate: birth(2001, 11, 23), Score: 180, Sick: false},
		{LastName: "Alaoui", FirstName: "Karim", BirthDate: birth(1978, 1, 5), Score: 340, Sick: true},
	}
}

// SeedDemo creates the USER/ADMIN roles, the demo users with their role
// assignments, and a few demo patients when the patient table is empty.
func (s *seedService) SeedDemo(ctx context.Context) (*SeedSummary, error) {
	summary := &SeedSummary{}

	for _, role := range []string{model.RoleUser, model.RoleAdmin} {
		if _, err := s.accounts.AddNewRole(ctx, role); err != nil {
			if errors.Is(err, apperrors.ErrRoleAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("seed role %s: %w", role, err)
		}
		summary.Roles++
	}

	for _, du := range demoUsers {
		if _, err := s.accounts.AddNewUser(ctx, du.username, demoPassword, du.email, demoPassword); err != nil {
			if errors.Is(err, apperrors.ErrUserAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("seed user %s: %w", du.username, err)
		}
		summary.Users++
		for _, role := range du.roles {
			if err := s.accounts.AddRoleToUser(ctx, du.username, role); err != nil {
				return nil, fmt.Errorf("grant %s to %s: %w", role, du.username, err)
			}
		}
	}

	existing, err := s.patients.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	if len(existing) == 0 {
		for _, p := range demoPatients() {
			patient := p
			if _, err := s.patients.SavePatient(ctx, &patient); err != nil {
				return nil, fmt.Errorf("seed patient %s: %w", patient.LastName, err)
			}
			summary.Patients++
		}
	}

	return summary, nil
}
