package models

import "time"

// ShopRegistrationRequest tracks a community-submitted new shop awaiting
// moderation. The shop row is created PENDING alongside this request;
// approval flips both, rejection deletes the shop.
type ShopRegistrationRequest struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   int64     `gorm:"not null;index" json:"owner_id"`
	ShopID    int64     `gorm:"not null;index" json:"shop_id"`
	Status    string    `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Owner     Owner     `gorm:"foreignKey:OwnerID" json:"-"`
	Shop      Shop      `gorm:"foreignKey:ShopID" json:"-"`
}

func (ShopRegistrationRequest) TableName() string { return "shop_registration_requests" }
