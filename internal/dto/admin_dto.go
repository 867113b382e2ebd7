package dto

import (
	"time"

	"github.com/gachamap/gachamap-backend/internal/models"
)

type PendingRegistration struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner_id"`
	OwnerName  string    `json:"owner_name"`
	OwnerEmail string    `json:"owner_email"`
	ShopID     int64     `json:"shop_id"`
	ShopName   string    `json:"shop_name"`
	Address    *string   `json:"address,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type PendingClaim struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner_id"`
	OwnerName  string    `json:"owner_name"`
	OwnerEmail string    `json:"owner_email"`
	ShopID     int64     `json:"shop_id"`
	ShopName   string    `json:"shop_name"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type AdminPendingData struct {
	Shops         []models.Shop         `json:"shops"`
	Claims        []PendingClaim        `json:"claims"`
	Registrations []PendingRegistration `json:"registrations"`
}
