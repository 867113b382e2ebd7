package models

import "time"

// ShopOwner links an owner to a shop they administer. The composite
// unique index is the only concurrency guard against double-approval:
// the second approval of the same (owner, shop) pair fails on insert.
type ShopOwner struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   int64     `gorm:"not null;uniqueIndex:idx_shop_owners_owner_shop" json:"owner_id"`
	ShopID    int64     `gorm:"not null;uniqueIndex:idx_shop_owners_owner_shop;index" json:"shop_id"`
	CreatedAt time.Time `json:"created_at"`
	Owner     Owner     `gorm:"foreignKey:OwnerID" json:"-"`
	Shop      Shop      `gorm:"foreignKey:ShopID" json:"-"`
}

func (ShopOwner) TableName() string { return "shop_owners" }
