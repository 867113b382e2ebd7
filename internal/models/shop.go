package models

import (
	"time"
)

// Shop type constants.
const (
	ShopTypeGacha = "GACHA"
	ShopTypeKuji  = "KUJI"
	ShopTypeBoth  = "BOTH"
)

// Shop lifecycle status constants.
const (
	ShopStatusPending  = "PENDING"
	ShopStatusApproved = "APPROVED"
)

// Update-source constants record who last touched a shop's public info.
const (
	UpdateSourceOperator  = "operator"  // added directly by an admin
	UpdateSourceClaimed   = "claimed"   // managed by a verified owner
	UpdateSourceCommunity = "community" // community-submitted listing
)

// Shop is a gacha/kuji retail location shown on the map.
// Only APPROVED shops appear in public listings and the nearby-duplicate
// check; PENDING shops are visible to admins only.
type Shop struct {
	ID                     int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                   string     `gorm:"size:100;not null" json:"name"`
	Type                   string     `gorm:"size:10;not null" json:"type"`
	Lat                    float64    `gorm:"not null" json:"lat"`
	Lng                    float64    `gorm:"not null" json:"lng"`
	Address                *string    `gorm:"size:255" json:"address,omitempty"`
	BusinessHours          string     `gorm:"size:100;default:'09:00 - 21:00'" json:"business_hours"`
	ClosedDays             *string    `gorm:"size:100" json:"closed_days,omitempty"`
	PromotionalText        *string    `gorm:"size:100" json:"promotional_text,omitempty"`
	RepresentativeImageURL *string    `gorm:"size:500" json:"representative_image_url,omitempty"`
	StockStatus            *string    `gorm:"size:100" json:"stock_status,omitempty"`
	IsOpen                 bool       `gorm:"default:true" json:"is_open"`
	Status                 string     `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	UpdateSource           string     `gorm:"size:20;not null" json:"update_source"`
	LastUpdatedAt          *time.Time `json:"last_updated_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func (Shop) TableName() string { return "shops" }
