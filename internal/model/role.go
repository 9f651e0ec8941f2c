package model

// AppRole is a named permission grant. Users hold zero or more roles.
type AppRole struct {
	Name string `json:"name" gorm:"primaryKey;size:50"`

	Users []AppUser `json:"-" gorm:"many2many:app_user_roles"`
}

// Well-known role names used by the route guards.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
