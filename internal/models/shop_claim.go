package models

import "time"

// Review status constants shared by claims and registration requests.
const (
	ReviewStatusPending  = "PENDING"
	ReviewStatusApproved = "APPROVED"
	ReviewStatusRejected = "REJECTED"
)

// ShopClaim is a request by an owner to be linked to an existing shop.
// At most one claim per (owner, shop) pair.
type ShopClaim struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   int64     `gorm:"not null;uniqueIndex:idx_shop_claims_owner_shop" json:"owner_id"`
	ShopID    int64     `gorm:"not null;uniqueIndex:idx_shop_claims_owner_shop;index" json:"shop_id"`
	Status    string    `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Owner     Owner     `gorm:"foreignKey:OwnerID" json:"-"`
	Shop      Shop      `gorm:"foreignKey:ShopID" json:"-"`
}

func (ShopClaim) TableName() string { return "shop_claims" }
