package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppUser represents an authenticated user of the application.
type AppUser struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	Username     string    `json:"username" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Email        string    `json:"email" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Roles []AppRole `json:"roles,omitempty" gorm:"many2many:app_user_roles"`
}

// BeforeCreate assigns the external user id before the record is inserted.
func (u *AppUser) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.New().String()
	}
	return nil
}

// HasRole reports whether the user holds the named role.
func (u *AppUser) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r.Name == role {
			return true
		}
	}
	return false
}

// RoleNames returns the names of all roles held by the user.
func (u *AppUser) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
