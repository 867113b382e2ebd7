package dto

import (
	"encoding/json"
	"time"

	"github.com/gachamap/gachamap-backend/internal/models"
)

type RegisterShopRequest struct {
	ShopName               string   `json:"shop_name"`
	ShopType               string   `json:"shop_type"`
	Address                string   `json:"address"`
	DetailAddress          string   `json:"detail_address"`
	BusinessHours          string   `json:"business_hours"`
	ClosedDays             string   `json:"closed_days"`
	RepresentativeImageURL string   `json:"representative_image_url"`
	Lat                    *float64 `json:"lat"`
	Lng                    *float64 `json:"lng"`
}

type RegisterShopResult struct {
	ShopID  int64 `json:"shop_id"`
	Pending bool  `json:"pending"`
}

// UpdateShopPromoRequest carries a partial update; nil fields are left
// untouched and an explicit empty image URL clears the image.
type UpdateShopPromoRequest struct {
	PromotionalText        *string `json:"promotional_text"`
	RepresentativeImageURL *string `json:"representative_image_url"`
	BusinessHours          *string `json:"business_hours"`
	ClosedDays             *string `json:"closed_days"`
}

type GachaMachineInput struct {
	Name     string `json:"name"`
	Series   string `json:"series"`
	Stock    int    `json:"stock"`
	ImageURL string `json:"image_url"`
}

type KujiGrade struct {
	Grade string `json:"grade"`
	Count int    `json:"count"`
}

type KujiStatusInput struct {
	Name        string      `json:"name"`
	Status      string      `json:"status"`
	Stock       *int        `json:"stock"`
	GradeStatus []KujiGrade `json:"grade_status"`
	ImageURL    string      `json:"image_url"`
}

type ReplaceGachaMachinesRequest struct {
	Machines []GachaMachineInput `json:"machines"`
}

type ReplaceKujiStatusesRequest struct {
	Statuses []KujiStatusInput `json:"statuses"`
}

type CreateCommentRequest struct {
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

type ShopListItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type GachaMachineResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Series   string  `json:"series"`
	Stock    int     `json:"stock"`
	ImageURL *string `json:"image_url,omitempty"`
}

type KujiStatusResponse struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Status      string      `json:"status"`
	Stock       *int        `json:"stock,omitempty"`
	GradeStatus []KujiGrade `json:"grade_status"`
	ImageURL    *string     `json:"image_url,omitempty"`
}

type ShopResponse struct {
	ID                     int64                  `json:"id"`
	Name                   string                 `json:"name"`
	Type                   string                 `json:"type"`
	Lat                    float64                `json:"lat"`
	Lng                    float64                `json:"lng"`
	Address                *string                `json:"address,omitempty"`
	BusinessHours          string                 `json:"business_hours"`
	ClosedDays             *string                `json:"closed_days,omitempty"`
	PromotionalText        *string                `json:"promotional_text,omitempty"`
	RepresentativeImageURL *string                `json:"representative_image_url,omitempty"`
	StockStatus            *string                `json:"stock_status,omitempty"`
	IsOpen                 bool                   `json:"is_open"`
	UpdateSource           string                 `json:"update_source"`
	LastUpdatedAt          *time.Time             `json:"last_updated_at,omitempty"`
	GachaMachines          []GachaMachineResponse `json:"gacha_machines"`
	KujiStatuses           []KujiStatusResponse   `json:"kuji_statuses"`
}

// NewShopResponse projects a shop and its inventory children into the
// public listing shape.
func NewShopResponse(shop models.Shop, machines []models.GachaMachine, kuji []models.KujiStatus) ShopResponse {
	resp := ShopResponse{
		ID:                     shop.ID,
		Name:                   shop.Name,
		Type:                   shop.Type,
		Lat:                    shop.Lat,
		Lng:                    shop.Lng,
		Address:                shop.Address,
		BusinessHours:          shop.BusinessHours,
		ClosedDays:             shop.ClosedDays,
		PromotionalText:        shop.PromotionalText,
		RepresentativeImageURL: shop.RepresentativeImageURL,
		StockStatus:            shop.StockStatus,
		IsOpen:                 shop.IsOpen,
		UpdateSource:           shop.UpdateSource,
		LastUpdatedAt:          shop.LastUpdatedAt,
		GachaMachines:          make([]GachaMachineResponse, len(machines)),
		KujiStatuses:           make([]KujiStatusResponse, len(kuji)),
	}
	for i, m := range machines {
		resp.GachaMachines[i] = GachaMachineResponse{
			ID:       m.ID,
			Name:     m.Name,
			Series:   m.Series,
			Stock:    m.Stock,
			ImageURL: m.ImageURL,
		}
	}
	for i, k := range kuji {
		kr := KujiStatusResponse{
			ID:       k.ID,
			Name:     k.Name,
			Status:   k.Status,
			Stock:    k.Stock,
			ImageURL: k.ImageURL,
		}
		if len(k.GradeStatus) > 0 {
			_ = json.Unmarshal(k.GradeStatus, &kr.GradeStatus)
		}
		if kr.GradeStatus == nil {
			kr.GradeStatus = []KujiGrade{}
		}
		resp.KujiStatuses[i] = kr
	}
	return resp
}

type NearbyShop struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Address   *string `json:"address,omitempty"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	DistanceM float64 `json:"distance_m"`
}

type UpdateNameRequest struct {
	Name string `json:"name"`
}
