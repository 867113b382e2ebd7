package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gachamap/gachamap-backend/internal/cache"
	"github.com/gachamap/gachamap-backend/internal/dto"
	"github.com/gachamap/gachamap-backend/internal/geo"
	"github.com/gachamap/gachamap-backend/internal/geocode"
	"github.com/gachamap/gachamap-backend/internal/models"
	"github.com/gachamap/gachamap-backend/internal/policy"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized       = errors.New("permission denied")
	ErrShopNotFound       = errors.New("shop not found")
	ErrRequestNotFound    = errors.New("no pending registration request for this shop")
	ErrClaimNotFound      = errors.New("no pending claim with this id")
	ErrDuplicateClaim     = errors.New("claim already submitted for this shop")
	ErrDuplicateOwnership = errors.New("already managing this shop")
	ErrInvalidShopInput   = errors.New("shop name and type are required")
	ErrPromoTooLong       = errors.New("promotional text must be 100 characters or less")
	ErrCommentRequired    = errors.New("comment body is required")
)

// DefaultNearbyRadiusM is the duplicate-detection radius: small enough to
// mean "almost certainly the same physical location".
const DefaultNearbyRadiusM = 50.0

var validShopTypes = map[string]bool{
	models.ShopTypeGacha: true,
	models.ShopTypeKuji:  true,
	models.ShopTypeBoth:  true,
}

// ShopService implements the shop lifecycle: registration, moderation,
// claims, deletion and inventory updates. Multi-step writes use explicit
// compensating actions rather than transactions; see the comments on
// each operation for the failure semantics.
type ShopService struct {
	db          *gorm.DB
	geocoder    geocode.Geocoder
	shopCache   *cache.ShopCache
	owners      *OwnerService
	autoApprove bool
}

func NewShopService(db *gorm.DB, geocoder geocode.Geocoder, shopCache *cache.ShopCache, owners *OwnerService, autoApprove bool) *ShopService {
	return &ShopService{
		db:          db,
		geocoder:    geocoder,
		shopCache:   shopCache,
		owners:      owners,
		autoApprove: autoApprove,
	}
}

// resolveCoordinates uses caller-supplied coordinates when present and
// falls back to geocoding the address otherwise.
func (s *ShopService) resolveCoordinates(ctx context.Context, req *dto.RegisterShopRequest, fullAddress string) (float64, float64) {
	if req.Lat != nil && req.Lng != nil {
		return *req.Lat, *req.Lng
	}
	res := s.geocoder.Resolve(ctx, fullAddress)
	if !res.OK {
		slog.Warn("geocode fell back to default point", "address", fullAddress)
	}
	return res.Lat, res.Lng
}

func joinAddress(address, detail string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{strings.TrimSpace(address), strings.TrimSpace(detail)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func (s *ShopService) buildShop(req *dto.RegisterShopRequest, fullAddress string, lat, lng float64, status, updateSource string) models.Shop {
	shop := models.Shop{
		Name:         strings.TrimSpace(req.ShopName),
		Type:         req.ShopType,
		Lat:          lat,
		Lng:          lng,
		IsOpen:       true,
		Status:       status,
		UpdateSource: updateSource,
	}
	if fullAddress != "" {
		shop.Address = &fullAddress
	}
	if req.BusinessHours != "" {
		shop.BusinessHours = req.BusinessHours
	} else {
		shop.BusinessHours = "09:00 - 21:00"
	}
	if req.ClosedDays != "" {
		shop.ClosedDays = &req.ClosedDays
	}
	if req.RepresentativeImageURL != "" {
		shop.RepresentativeImageURL = &req.RepresentativeImageURL
	}
	return shop
}

func (s *ShopService) validateRegisterInput(req *dto.RegisterShopRequest) error {
	if strings.TrimSpace(req.ShopName) == "" || !validShopTypes[req.ShopType] {
		return ErrInvalidShopInput
	}
	return nil
}

// createShopWithLink inserts an APPROVED shop plus its ownership link.
// If the link insert fails the shop row is deleted again (compensating
// delete) so no unowned operator listing survives a partial failure.
func (s *ShopService) createShopWithLink(ctx context.Context, owner *models.Owner, shop models.Shop) (int64, error) {
	if err := s.db.WithContext(ctx).Create(&shop).Error; err != nil {
		return 0, fmt.Errorf("failed to create shop: %w", err)
	}

	link := models.ShopOwner{OwnerID: owner.ID, ShopID: shop.ID}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		if delErr := s.db.WithContext(ctx).Delete(&models.Shop{}, shop.ID).Error; delErr != nil {
			slog.Error("compensating shop delete failed", "shop_id", shop.ID, "error", delErr)
		}
		return 0, fmt.Errorf("failed to link shop to owner: %w", err)
	}
	return shop.ID, nil
}

// RegisterShop registers a new shop for an authenticated actor.
// Admin actors get an immediately APPROVED operator listing with a
// synchronous ownership link. Non-admin actors get either an APPROVED
// community listing or, in the moderated configuration, a PENDING shop
// plus a registration request for the admin review queue.
func (s *ShopService) RegisterShop(ctx context.Context, actor *models.Owner, req *dto.RegisterShopRequest) (*dto.RegisterShopResult, error) {
	if err := s.validateRegisterInput(req); err != nil {
		return nil, err
	}

	fullAddress := joinAddress(req.Address, req.DetailAddress)
	lat, lng := s.resolveCoordinates(ctx, req, fullAddress)

	if actor.Role == models.RoleAdmin {
		shop := s.buildShop(req, fullAddress, lat, lng, models.ShopStatusApproved, models.UpdateSourceOperator)
		shopID, err := s.createShopWithLink(ctx, actor, shop)
		if err != nil {
			return nil, err
		}
		s.shopCache.Invalidate(ctx)
		return &dto.RegisterShopResult{ShopID: shopID, Pending: false}, nil
	}

	if s.autoApprove {
		shop := s.buildShop(req, fullAddress, lat, lng, models.ShopStatusApproved, models.UpdateSourceCommunity)
		if err := s.db.WithContext(ctx).Create(&shop).Error; err != nil {
			return nil, fmt.Errorf("failed to create shop: %w", err)
		}
		s.shopCache.Invalidate(ctx)
		return &dto.RegisterShopResult{ShopID: shop.ID, Pending: false}, nil
	}

	shop := s.buildShop(req, fullAddress, lat, lng, models.ShopStatusPending, models.UpdateSourceCommunity)
	if err := s.db.WithContext(ctx).Create(&shop).Error; err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}

	request := models.ShopRegistrationRequest{
		OwnerID: actor.ID,
		ShopID:  shop.ID,
		Status:  models.ReviewStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&request).Error; err != nil {
		if delErr := s.db.WithContext(ctx).Delete(&models.Shop{}, shop.ID).Error; delErr != nil {
			slog.Error("compensating shop delete failed", "shop_id", shop.ID, "error", delErr)
		}
		return nil, fmt.Errorf("failed to create registration request: %w", err)
	}

	return &dto.RegisterShopResult{ShopID: shop.ID, Pending: true}, nil
}

// AddShopAsAdmin is the admin shortcut: always APPROVED, operator-sourced,
// with a synchronous ownership link and the same compensating delete on
// link failure.
func (s *ShopService) AddShopAsAdmin(ctx context.Context, actor *models.Owner, req *dto.RegisterShopRequest) (*dto.RegisterShopResult, error) {
	if !policy.CanActOn(actor.Role, policy.ActionAddShopDirect) {
		return nil, ErrUnauthorized
	}
	if err := s.validateRegisterInput(req); err != nil {
		return nil, err
	}

	fullAddress := joinAddress(req.Address, req.DetailAddress)
	lat, lng := s.resolveCoordinates(ctx, req, fullAddress)

	shop := s.buildShop(req, fullAddress, lat, lng, models.ShopStatusApproved, models.UpdateSourceOperator)
	shopID, err := s.createShopWithLink(ctx, actor, shop)
	if err != nil {
		return nil, err
	}
	s.shopCache.Invalidate(ctx)
	return &dto.RegisterShopResult{ShopID: shopID, Pending: false}, nil
}

// ApproveShopRegistration flips a PENDING community registration to
// APPROVED and links the submitting owner. If the link insert fails the
// status flip is rolled back and the request row left untouched, so the
// operation is safe to retry.
func (s *ShopService) ApproveShopRegistration(ctx context.Context, actor *models.Owner, shopID int64) error {
	if !policy.CanActOn(actor.Role, policy.ActionApproveRegistration) {
		return ErrUnauthorized
	}

	var request models.ShopRegistrationRequest
	err := s.db.WithContext(ctx).
		Where("shop_id = ? AND status = ?", shopID, models.ReviewStatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to load registration request: %w", err)
	}

	var shop models.Shop
	if err := s.db.WithContext(ctx).First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShopNotFound
		}
		return fmt.Errorf("failed to load shop: %w", err)
	}
	if !policy.CanShopTransition(shop.Status, models.ShopStatusApproved) {
		return ErrRequestNotFound
	}

	if err := s.db.WithContext(ctx).Model(&models.Shop{}).
		Where("id = ?", shopID).
		Updates(map[string]interface{}{
			"status":        models.ShopStatusApproved,
			"update_source": models.UpdateSourceClaimed,
			"updated_at":    time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("failed to approve shop: %w", err)
	}

	link := models.ShopOwner{OwnerID: request.OwnerID, ShopID: shopID}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		if rbErr := s.db.WithContext(ctx).Model(&models.Shop{}).
			Where("id = ?", shopID).
			Update("status", models.ShopStatusPending).Error; rbErr != nil {
			slog.Error("status rollback failed after link error", "shop_id", shopID, "error", rbErr)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateOwnership
		}
		return fmt.Errorf("failed to link shop to owner: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.ShopRegistrationRequest{}).
		Where("id = ? AND status = ?", request.ID, models.ReviewStatusPending).
		Updates(map[string]interface{}{
			"status":     models.ReviewStatusApproved,
			"updated_at": time.Now(),
		}).Error; err != nil {
		slog.Error("request status update failed after approval", "shop_id", shopID, "error", err)
	}

	s.shopCache.Invalidate(ctx)
	return nil
}

// RejectShopRegistration rejects a community registration and removes the
// shop with its inventory rows. Unconditional and idempotent: absence of
// the request or shop is treated as already handled.
func (s *ShopService) RejectShopRegistration(ctx context.Context, actor *models.Owner, shopID int64) error {
	if !policy.CanActOn(actor.Role, policy.ActionRejectRegistration) {
		return ErrUnauthorized
	}

	if err := s.db.WithContext(ctx).Model(&models.ShopRegistrationRequest{}).
		Where("shop_id = ? AND status = ?", shopID, models.ReviewStatusPending).
		Updates(map[string]interface{}{
			"status":     models.ReviewStatusRejected,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("failed to reject registration request: %w", err)
	}

	if err := s.db.WithContext(ctx).Where("shop_id = ?", shopID).Delete(&models.GachaMachine{}).Error; err != nil {
		return fmt.Errorf("failed to delete gacha machines: %w", err)
	}
	if err := s.db.WithContext(ctx).Where("shop_id = ?", shopID).Delete(&models.KujiStatus{}).Error; err != nil {
		return fmt.Errorf("failed to delete kuji statuses: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&models.Shop{}, shopID).Error; err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}

	s.shopCache.Invalidate(ctx)
	return nil
}

// ClaimShop submits a PENDING claim on an existing shop. A repeated claim
// by the same owner hits the (owner_id, shop_id) unique index and is
// surfaced as ErrDuplicateClaim so the caller can show a specific message.
func (s *ShopService) ClaimShop(ctx context.Context, actor *models.Owner, shopID int64) error {
	var shop models.Shop
	if err := s.db.WithContext(ctx).First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShopNotFound
		}
		return fmt.Errorf("failed to load shop: %w", err)
	}

	claim := models.ShopClaim{
		OwnerID: actor.ID,
		ShopID:  shopID,
		Status:  models.ReviewStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateClaim
		}
		return fmt.Errorf("failed to create claim: %w", err)
	}
	return nil
}

// ApproveShopClaim links the claiming owner to the shop. The link insert
// happens before any status mutation: a duplicate-link failure returns
// ErrDuplicateOwnership and leaves the claim PENDING, so a concurrent
// double-approval cannot mark the losing claim APPROVED. Other link
// failures also leave the claim untouched and are safe to retry.
func (s *ShopService) ApproveShopClaim(ctx context.Context, actor *models.Owner, claimID int64) error {
	if !policy.CanActOn(actor.Role, policy.ActionApproveClaim) {
		return ErrUnauthorized
	}

	var claim models.ShopClaim
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", claimID, models.ReviewStatusPending).
		First(&claim).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClaimNotFound
		}
		return fmt.Errorf("failed to load claim: %w", err)
	}
	if !policy.CanReviewTransition(claim.Status, models.ReviewStatusApproved) {
		return ErrClaimNotFound
	}

	link := models.ShopOwner{OwnerID: claim.OwnerID, ShopID: claim.ShopID}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateOwnership
		}
		return fmt.Errorf("failed to link shop to owner: %w", err)
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&models.ShopClaim{}).
		Where("id = ?", claimID).
		Updates(map[string]interface{}{
			"status":     models.ReviewStatusApproved,
			"updated_at": now,
		}).Error; err != nil {
		slog.Error("claim status update failed after link insert", "claim_id", claimID, "error", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.Shop{}).
		Where("id = ?", claim.ShopID).
		Updates(map[string]interface{}{
			"update_source":   models.UpdateSourceClaimed,
			"last_updated_at": now,
			"updated_at":      now,
		}).Error; err != nil {
		slog.Error("shop relabel failed after claim approval", "shop_id", claim.ShopID, "error", err)
	}

	s.shopCache.Invalidate(ctx)
	return nil
}

// RejectShopClaim marks a claim REJECTED. The update is restricted to
// PENDING rows so terminal claims are never re-flipped; rejecting an
// already-handled claim still reports success.
func (s *ShopService) RejectShopClaim(ctx context.Context, actor *models.Owner, claimID int64) error {
	if !policy.CanActOn(actor.Role, policy.ActionRejectClaim) {
		return ErrUnauthorized
	}

	if err := s.db.WithContext(ctx).Model(&models.ShopClaim{}).
		Where("id = ? AND status = ?", claimID, models.ReviewStatusPending).
		Updates(map[string]interface{}{
			"status":     models.ReviewStatusRejected,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("failed to reject claim: %w", err)
	}
	return nil
}

// requireShopAccess checks that the actor administers the shop. Admins
// pass unconditionally.
func (s *ShopService) requireShopAccess(ctx context.Context, actor *models.Owner, shopID int64) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	ids, err := s.owners.ListOwnedShopIDs(ctx, actor.ID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == shopID {
			return nil
		}
	}
	return ErrUnauthorized
}

// DeleteShop removes a shop and every dependent row. Children are deleted
// in FK-safe order; the first failing table aborts the operation with no
// rollback of tables already cleared (accepted limitation — the operation
// can be re-run).
func (s *ShopService) DeleteShop(ctx context.Context, actor *models.Owner, shopID int64) error {
	ids, err := s.owners.ListOwnedShopIDs(ctx, actor.ID)
	if err != nil {
		return err
	}
	owned := false
	for _, id := range ids {
		if id == shopID {
			owned = true
			break
		}
	}
	if !owned {
		return ErrUnauthorized
	}

	children := []struct {
		name  string
		model interface{}
	}{
		{"shop_comments", &models.ShopComment{}},
		{"gacha_machines", &models.GachaMachine{}},
		{"kuji_statuses", &models.KujiStatus{}},
		{"shop_claims", &models.ShopClaim{}},
		{"shop_registration_requests", &models.ShopRegistrationRequest{}},
		{"shop_owners", &models.ShopOwner{}},
	}
	for _, child := range children {
		if err := s.db.WithContext(ctx).Where("shop_id = ?", shopID).Delete(child.model).Error; err != nil {
			return fmt.Errorf("failed to delete %s: %w", child.name, err)
		}
	}

	if err := s.db.WithContext(ctx).Delete(&models.Shop{}, shopID).Error; err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}

	s.shopCache.Invalidate(ctx)
	return nil
}

// UpdateShopPromo partially updates a shop's public info. Nil fields are
// left untouched; a nil image pointer inside a set request clears it.
func (s *ShopService) UpdateShopPromo(ctx context.Context, actor *models.Owner, shopID int64, req *dto.UpdateShopPromoRequest) error {
	if err := s.requireShopAccess(ctx, actor, shopID); err != nil {
		return err
	}

	now := time.Now()
	patch := map[string]interface{}{
		"last_updated_at": now,
		"updated_at":      now,
	}
	if req.PromotionalText != nil {
		if len([]rune(*req.PromotionalText)) > 100 {
			return ErrPromoTooLong
		}
		patch["promotional_text"] = *req.PromotionalText
	}
	if req.RepresentativeImageURL != nil {
		if *req.RepresentativeImageURL == "" {
			patch["representative_image_url"] = nil
		} else {
			patch["representative_image_url"] = *req.RepresentativeImageURL
		}
	}
	if req.BusinessHours != nil {
		patch["business_hours"] = *req.BusinessHours
	}
	if req.ClosedDays != nil {
		patch["closed_days"] = *req.ClosedDays
	}

	result := s.db.WithContext(ctx).Model(&models.Shop{}).Where("id = ?", shopID).Updates(patch)
	if result.Error != nil {
		return fmt.Errorf("failed to update shop: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrShopNotFound
	}

	s.shopCache.Invalidate(ctx)
	return nil
}

// touchShop refreshes the inventory-update timestamp.
func (s *ShopService) touchShop(ctx context.Context, shopID int64) {
	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&models.Shop{}).
		Where("id = ?", shopID).
		Updates(map[string]interface{}{"last_updated_at": now, "updated_at": now}).Error; err != nil {
		slog.Error("shop timestamp refresh failed", "shop_id", shopID, "error", err)
	}
}

// ReplaceGachaMachines replaces a shop's capsule-machine rows wholesale.
func (s *ShopService) ReplaceGachaMachines(ctx context.Context, actor *models.Owner, shopID int64, machines []dto.GachaMachineInput) error {
	if err := s.requireShopAccess(ctx, actor, shopID); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Where("shop_id = ?", shopID).Delete(&models.GachaMachine{}).Error; err != nil {
		return fmt.Errorf("failed to clear gacha machines: %w", err)
	}

	if len(machines) > 0 {
		rows := make([]models.GachaMachine, len(machines))
		for i, m := range machines {
			rows[i] = models.GachaMachine{
				ShopID: shopID,
				Name:   m.Name,
				Series: m.Series,
				Stock:  m.Stock,
			}
			if m.ImageURL != "" {
				rows[i].ImageURL = &m.ImageURL
			}
		}
		if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert gacha machines: %w", err)
		}
	}

	s.touchShop(ctx, shopID)
	s.shopCache.Invalidate(ctx)
	return nil
}

// ReplaceKujiStatuses replaces a shop's lottery-ticket rows wholesale.
func (s *ShopService) ReplaceKujiStatuses(ctx context.Context, actor *models.Owner, shopID int64, statuses []dto.KujiStatusInput) error {
	if err := s.requireShopAccess(ctx, actor, shopID); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Where("shop_id = ?", shopID).Delete(&models.KujiStatus{}).Error; err != nil {
		return fmt.Errorf("failed to clear kuji statuses: %w", err)
	}

	if len(statuses) > 0 {
		rows := make([]models.KujiStatus, len(statuses))
		for i, k := range statuses {
			row := models.KujiStatus{
				ShopID: shopID,
				Name:   k.Name,
				Status: k.Status,
				Stock:  k.Stock,
			}
			if row.Status == "" {
				row.Status = "신규"
			}
			if k.ImageURL != "" {
				row.ImageURL = &k.ImageURL
			}
			if len(k.GradeStatus) > 0 {
				if b, err := json.Marshal(k.GradeStatus); err == nil {
					row.GradeStatus = b
				}
			}
			rows[i] = row
		}
		if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert kuji statuses: %w", err)
		}
	}

	s.touchShop(ctx, shopID)
	s.shopCache.Invalidate(ctx)
	return nil
}

// AddComment appends a stock/status report to a shop.
func (s *ShopService) AddComment(ctx context.Context, actor *models.Owner, shopID int64, body, imageURL string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return ErrCommentRequired
	}

	var shop models.Shop
	if err := s.db.WithContext(ctx).First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShopNotFound
		}
		return fmt.Errorf("failed to load shop: %w", err)
	}

	comment := models.ShopComment{
		ShopID:  shopID,
		OwnerID: actor.ID,
		Body:    body,
	}
	if imageURL != "" {
		comment.ImageURL = &imageURL
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListMyComments returns the actor's own status reports, newest first.
func (s *ShopService) ListMyComments(ctx context.Context, ownerID int64) ([]models.ShopComment, error) {
	var comments []models.ShopComment
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// ListApprovedShops returns the public map listing with inventory
// children, served cache-aside from Redis when available.
func (s *ShopService) ListApprovedShops(ctx context.Context) ([]dto.ShopResponse, error) {
	if data, ok := s.shopCache.GetShops(ctx); ok {
		var cached []dto.ShopResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		s.shopCache.Invalidate(ctx)
	}

	var shops []models.Shop
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.ShopStatusApproved).
		Order("id").
		Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}

	ids := make([]int64, len(shops))
	for i, shop := range shops {
		ids[i] = shop.ID
	}

	var machines []models.GachaMachine
	var kuji []models.KujiStatus
	if len(ids) > 0 {
		if err := s.db.WithContext(ctx).Where("shop_id IN ?", ids).Find(&machines).Error; err != nil {
			return nil, fmt.Errorf("failed to list gacha machines: %w", err)
		}
		if err := s.db.WithContext(ctx).Where("shop_id IN ?", ids).Find(&kuji).Error; err != nil {
			return nil, fmt.Errorf("failed to list kuji statuses: %w", err)
		}
	}

	machinesByShop := make(map[int64][]models.GachaMachine)
	for _, m := range machines {
		machinesByShop[m.ShopID] = append(machinesByShop[m.ShopID], m)
	}
	kujiByShop := make(map[int64][]models.KujiStatus)
	for _, k := range kuji {
		kujiByShop[k.ShopID] = append(kujiByShop[k.ShopID], k)
	}

	out := make([]dto.ShopResponse, len(shops))
	for i, shop := range shops {
		out[i] = dto.NewShopResponse(shop, machinesByShop[shop.ID], kujiByShop[shop.ID])
	}

	if data, err := json.Marshal(out); err == nil {
		s.shopCache.SetShops(ctx, data)
	}
	return out, nil
}

// GetShop returns one shop with its inventory children, any status.
func (s *ShopService) GetShop(ctx context.Context, shopID int64) (*dto.ShopResponse, error) {
	var shop models.Shop
	if err := s.db.WithContext(ctx).First(&shop, shopID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, fmt.Errorf("failed to load shop: %w", err)
	}

	var machines []models.GachaMachine
	if err := s.db.WithContext(ctx).Where("shop_id = ?", shopID).Find(&machines).Error; err != nil {
		return nil, fmt.Errorf("failed to load gacha machines: %w", err)
	}
	var kuji []models.KujiStatus
	if err := s.db.WithContext(ctx).Where("shop_id = ?", shopID).Find(&kuji).Error; err != nil {
		return nil, fmt.Errorf("failed to load kuji statuses: %w", err)
	}

	resp := dto.NewShopResponse(shop, machines, kuji)
	return &resp, nil
}

// GetNearbyShops returns APPROVED shops within radiusM meters of the
// point, used to steer a registrant toward claiming an existing listing
// instead of duplicating it. PENDING shops are excluded.
func (s *ShopService) GetNearbyShops(ctx context.Context, lat, lng, radiusM float64) ([]dto.NearbyShop, error) {
	if radiusM <= 0 {
		radiusM = DefaultNearbyRadiusM
	}

	var shops []models.Shop
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.ShopStatusApproved).
		Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}

	nearby := make([]dto.NearbyShop, 0)
	for _, shop := range shops {
		d := geo.Distance(lat, lng, shop.Lat, shop.Lng)
		if d <= radiusM {
			nearby = append(nearby, dto.NearbyShop{
				ID:        shop.ID,
				Name:      shop.Name,
				Type:      shop.Type,
				Address:   shop.Address,
				Lat:       shop.Lat,
				Lng:       shop.Lng,
				DistanceM: d,
			})
		}
	}
	return nearby, nil
}
