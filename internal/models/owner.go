package models

import "time"

// Owner role constants.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Owner is a person who may administer shops, linked 1:1 to an auth
// identity. Rows are provisioned lazily on first login and never deleted.
type Owner struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthUserID string    `gorm:"size:36;not null;uniqueIndex" json:"-"`
	Email      string    `gorm:"size:255;not null" json:"email"`
	Name       string    `gorm:"size:50;not null" json:"name"`
	Role       string    `gorm:"size:20;not null;default:'owner'" json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Owner) TableName() string { return "owners" }
