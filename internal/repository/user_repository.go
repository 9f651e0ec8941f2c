package repository

import (
	"context"

	"gorm.io/gorm"

	"hospital/internal/model"
)

// UserRepository defines user persistence operations. Role membership is
// stored through the app_user_roles join table.
type UserRepository interface {
	Create(ctx context.Context, user *model.AppUser) error
	FindByUsername(ctx context.Context, username string) (*model.AppUser, error)
	List(ctx context.Context) ([]model.AppUser, error)
	AppendRole(ctx context.Context, user *model.AppUser, role *model.AppRole) error
	RemoveRole(ctx context.Context, user *model.AppUser, role *model.AppRole) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.AppUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByUsername loads a user with roles preloaded.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.AppUser, error) {
	var user model.AppUser
	if err := r.db.WithContext(ctx).Preload("Roles").
		Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.AppUser, error) {
	var users []model.AppUser
	if err := r.db.WithContext(ctx).Preload("Roles").Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// AppendRole adds role to the user's role set. Appending a role the user
// already holds leaves the join table unchanged.
func (r *userRepository) AppendRole(ctx context.Context, user *model.AppUser, role *model.AppRole) error {
	return r.db.WithContext(ctx).Model(user).Association("Roles").Append(role)
}

// RemoveRole drops role from the user's role set if present.
func (r *userRepository) RemoveRole(ctx context.Context, user *model.AppUser, role *model.AppRole) error {
	return r.db.WithContext(ctx).Model(user).Association("Roles").Delete(role)
}

// WithTransaction executes fn against a repository bound to a single
// database transaction.
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx})
	})
}
