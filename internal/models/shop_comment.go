package models

import "time"

// ShopComment is a user-submitted stock/status report attached to a shop.
// Append-only: no edit or delete path exists outside shop deletion.
type ShopComment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopID    int64     `gorm:"not null;index" json:"shop_id"`
	OwnerID   int64     `gorm:"not null;index" json:"owner_id"`
	Body      string    `gorm:"size:500;not null" json:"body"`
	ImageURL  *string   `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Owner     Owner     `gorm:"foreignKey:OwnerID" json:"-"`
	Shop      Shop      `gorm:"foreignKey:ShopID" json:"-"`
}

func (ShopComment) TableName() string { return "shop_comments" }
