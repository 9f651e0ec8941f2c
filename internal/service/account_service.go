package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hospital/internal/errors"
	"hospital/internal/model"
	"hospital/internal/repository"
)

const bcryptCost = 10

// AccountService handles user and role management.
type AccountService interface {
	AddNewUser(ctx context.Context, username, password, email, confirmPassword string) (*model.AppUser, error)
	AddNewRole(ctx context.Context, role string) (*model.AppRole, error)
	AddRoleToUser(ctx context.Context, username, role string) error
	RemoveRoleFromUser(ctx context.Context, username, role string) error
	LoadUserByUsername(ctx context.Context, username string) (*model.AppUser, error)
}

type accountService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewAccountService creates a new account service.
func NewAccountService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) AccountService {
	return &accountService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// AddNewUser creates a user with a hashed password and a random external id.
func (s *accountService) AddNewUser(ctx context.Context, username, password, email, confirmPassword string) (*model.AppUser, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, errors.ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	if password != confirmPassword {
		return nil, errors.ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.AppUser{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Email:        email,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// AddNewRole creates a role, failing when the name is already taken.
func (s *accountService) AddNewRole(ctx context.Context, role string) (*model.AppRole, error) {
	existing, err := s.roleRepo.FindByName(ctx, role)
	if err == nil && existing != nil {
		return nil, errors.ErrRoleAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check role existence: %w", err)
	}

	appRole := &model.AppRole{Name: role}
	if err := s.roleRepo.Create(ctx, appRole); err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	return appRole, nil
}

// AddRoleToUser grants role to the user. Both must already exist. Granting
// a role the user already holds is a no-op. The read-append sequence runs
// in one transaction.
func (s *accountService) AddRoleToUser(ctx context.Context, username, role string) error {
	appRole, err := s.findRole(ctx, role)
	if err != nil {
		return err
	}
	return s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		user, err := repo.FindByUsername(ctx, username)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrUserNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}
		if user.HasRole(role) {
			return nil
		}
		if err := repo.AppendRole(ctx, user, appRole); err != nil {
			return fmt.Errorf("append role: %w", err)
		}
		return nil
	})
}

// RemoveRoleFromUser revokes role from the user. Both must already exist.
// Revoking a role the user does not hold is a no-op.
func (s *accountService) RemoveRoleFromUser(ctx context.Context, username, role string) error {
	appRole, err := s.findRole(ctx, role)
	if err != nil {
		return err
	}
	return s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		user, err := repo.FindByUsername(ctx, username)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrUserNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}
		if !user.HasRole(role) {
			return nil
		}
		if err := repo.RemoveRole(ctx, user, appRole); err != nil {
			return fmt.Errorf("remove role: %w", err)
		}
		return nil
	})
}

// LoadUserByUsername returns the user with roles preloaded. Used by the
// authentication layer.
func (s *accountService) LoadUserByUsername(ctx context.Context, username string) (*model.AppUser, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *accountService) findRole(ctx context.Context, role string) (*model.AppRole, error) {
	appRole, err := s.roleRepo.FindByName(ctx, role)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("load role: %w", err)
	}
	return appRole, nil
}
