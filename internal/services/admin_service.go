package services

import (
	"context"
	"fmt"

	"github.com/gachamap/gachamap-backend/internal/dto"
	"github.com/gachamap/gachamap-backend/internal/models"
	"github.com/gachamap/gachamap-backend/internal/policy"
	"gorm.io/gorm"
)

// AdminService aggregates pending moderation items for the admin review
// queue. All lists are newest-first for reviewer convenience.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetPendingRegistrations joins PENDING registration requests with owner
// and shop display data.
func (s *AdminService) GetPendingRegistrations(ctx context.Context) ([]dto.PendingRegistration, error) {
	var requests []models.ShopRegistrationRequest
	if err := s.db.WithContext(ctx).
		Preload("Owner").
		Preload("Shop").
		Where("status = ?", models.ReviewStatusPending).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending registrations: %w", err)
	}

	out := make([]dto.PendingRegistration, len(requests))
	for i, req := range requests {
		out[i] = dto.PendingRegistration{
			ID:         req.ID,
			OwnerID:    req.OwnerID,
			OwnerName:  req.Owner.Name,
			OwnerEmail: req.Owner.Email,
			ShopID:     req.ShopID,
			ShopName:   req.Shop.Name,
			Address:    req.Shop.Address,
			Status:     req.Status,
			CreatedAt:  req.CreatedAt,
		}
	}
	return out, nil
}

// GetPendingClaims joins PENDING claims with owner and shop display data.
func (s *AdminService) GetPendingClaims(ctx context.Context) ([]dto.PendingClaim, error) {
	var claims []models.ShopClaim
	if err := s.db.WithContext(ctx).
		Preload("Owner").
		Preload("Shop").
		Where("status = ?", models.ReviewStatusPending).
		Order("created_at DESC").
		Find(&claims).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending claims: %w", err)
	}

	out := make([]dto.PendingClaim, len(claims))
	for i, claim := range claims {
		out[i] = dto.PendingClaim{
			ID:         claim.ID,
			OwnerID:    claim.OwnerID,
			OwnerName:  claim.Owner.Name,
			OwnerEmail: claim.Owner.Email,
			ShopID:     claim.ShopID,
			ShopName:   claim.Shop.Name,
			Status:     claim.Status,
			CreatedAt:  claim.CreatedAt,
		}
	}
	return out, nil
}

// GetPendingShops lists shops still awaiting moderation.
func (s *AdminService) GetPendingShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.ShopStatusPending).
		Order("created_at DESC").
		Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending shops: %w", err)
	}
	return shops, nil
}

// GetAdminPendingData bundles everything the review dashboard needs.
// Fails closed: non-admin actors get ErrUnauthorized and no data.
func (s *AdminService) GetAdminPendingData(ctx context.Context, actor *models.Owner) (*dto.AdminPendingData, error) {
	if !policy.CanActOn(actor.Role, policy.ActionViewPending) {
		return nil, ErrUnauthorized
	}

	shops, err := s.GetPendingShops(ctx)
	if err != nil {
		return nil, err
	}
	claims, err := s.GetPendingClaims(ctx)
	if err != nil {
		return nil, err
	}
	registrations, err := s.GetPendingRegistrations(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminPendingData{
		Shops:         shops,
		Claims:        claims,
		Registrations: registrations,
	}, nil
}
