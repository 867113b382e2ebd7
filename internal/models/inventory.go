package models

import (
	"time"

	"gorm.io/datatypes"
)

// GachaMachine is a capsule-toy machine inside a shop. Inventory rows are
// replaced wholesale on every update rather than diffed.
type GachaMachine struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopID    int64     `gorm:"not null;index" json:"shop_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Series    string    `gorm:"size:100" json:"series"`
	Stock     int       `gorm:"default:0" json:"stock"`
	ImageURL  *string   `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (GachaMachine) TableName() string { return "gacha_machines" }

// KujiStatus is a lottery-ticket series inside a shop. GradeStatus holds
// per-grade remaining counts as a JSON array ([{"grade":"A상","count":2}]).
type KujiStatus struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopID      int64          `gorm:"not null;index" json:"shop_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Status      string         `gorm:"size:100;not null;default:'신규'" json:"status"`
	Stock       *int           `json:"stock,omitempty"`
	GradeStatus datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"grade_status"`
	ImageURL    *string        `gorm:"size:500" json:"image_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (KujiStatus) TableName() string { return "kuji_statuses" }
