package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gachamap/gachamap-backend/internal/dto"
	"github.com/gachamap/gachamap-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrOwnerNotFound = errors.New("owner not found")
	ErrNameRequired  = errors.New("name is required")
	ErrNameTooLong   = errors.New("name must be 50 characters or less")
)

// DefaultOwnerName is used when the auth provider supplies no display name.
const DefaultOwnerName = "사장님"

// OwnerService resolves auth identities to Owner rows and answers
// which shops an owner administers.
type OwnerService struct {
	db *gorm.DB
}

func NewOwnerService(db *gorm.DB) *OwnerService {
	return &OwnerService{db: db}
}

// ResolveOwner looks up the Owner for an auth identity.
func (s *OwnerService) ResolveOwner(ctx context.Context, authUserID string) (*models.Owner, error) {
	var owner models.Owner
	if err := s.db.WithContext(ctx).Where("auth_user_id = ?", authUserID).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}
	return &owner, nil
}

// ProvisionOwner creates an Owner row for the identity if none exists.
// Safe to call on every login: the unique index on auth_user_id makes the
// racing second insert fail with a duplicate-key error, which is treated
// as a benign no-op.
func (s *OwnerService) ProvisionOwner(ctx context.Context, authUserID, email, suggestedName string) error {
	if _, err := s.ResolveOwner(ctx, authUserID); err == nil {
		return nil
	} else if !errors.Is(err, ErrOwnerNotFound) {
		return err
	}

	name := strings.TrimSpace(suggestedName)
	if name == "" {
		name = DefaultOwnerName
	}
	if email == "" {
		email = "unknown@example.com"
	}

	owner := models.Owner{
		AuthUserID: authUserID,
		Email:      email,
		Name:       name,
		Role:       models.RoleOwner,
	}
	if err := s.db.WithContext(ctx).Create(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the first-login race; the row exists now.
			return nil
		}
		return fmt.Errorf("failed to provision owner: %w", err)
	}
	return nil
}

// ResolveOrProvision resolves the Owner, provisioning one first if needed.
func (s *OwnerService) ResolveOrProvision(ctx context.Context, authUserID, email, suggestedName string) (*models.Owner, error) {
	owner, err := s.ResolveOwner(ctx, authUserID)
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, ErrOwnerNotFound) {
		return nil, err
	}
	if err := s.ProvisionOwner(ctx, authUserID, email, suggestedName); err != nil {
		return nil, err
	}
	return s.ResolveOwner(ctx, authUserID)
}

// ListOwnedShopIDs returns the ids of all shops linked to the owner.
func (s *OwnerService) ListOwnedShopIDs(ctx context.Context, ownerID int64) ([]int64, error) {
	var links []models.ShopOwner
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to list owned shops: %w", err)
	}
	ids := make([]int64, len(links))
	for i, l := range links {
		ids[i] = l.ShopID
	}
	return ids, nil
}

// ListOwnedShopsForDisplay returns an {id, name} projection of the
// owner's shops for selection lists.
func (s *OwnerService) ListOwnedShopsForDisplay(ctx context.Context, ownerID int64) ([]dto.ShopListItem, error) {
	ids, err := s.ListOwnedShopIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []dto.ShopListItem{}, nil
	}

	var shops []models.Shop
	if err := s.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("failed to load owned shops: %w", err)
	}

	items := make([]dto.ShopListItem, len(shops))
	for i, shop := range shops {
		items[i] = dto.ShopListItem{ID: shop.ID, Name: shop.Name}
	}
	return items, nil
}

// UpdateDisplayName changes the owner's display name.
func (s *OwnerService) UpdateDisplayName(ctx context.Context, ownerID int64, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameRequired
	}
	if len([]rune(trimmed)) > 50 {
		return ErrNameTooLong
	}

	result := s.db.WithContext(ctx).Model(&models.Owner{}).
		Where("id = ?", ownerID).
		Update("name", trimmed)
	if result.Error != nil {
		return fmt.Errorf("failed to update name: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOwnerNotFound
	}
	return nil
}
