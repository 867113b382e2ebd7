package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthUser is an authentication identity. Domain data lives on Owner,
// which references this row by its opaque ID.
type AuthUser struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `gorm:"size:50" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AuthUser) TableName() string { return "auth_users" }
