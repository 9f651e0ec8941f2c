package model

import "time"

// Patient represents a hospital patient record.
type Patient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	LastName  string    `json:"last_name" gorm:"size:50;not null;index"`
	FirstName string    `json:"first_name" gorm:"size:255;not null"`
	BirthDate time.Time `json:"birth_date" gorm:"type:date"`
	Score     int       `json:"score" gorm:"not null"`
	Sick      bool      `json:"sick" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
