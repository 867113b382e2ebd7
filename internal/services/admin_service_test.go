package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gachamap/gachamap-backend/internal/models"
)

func TestGetAdminPendingDataFailsClosed(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	owner := seedOwner(t, db, models.RoleOwner)

	if _, err := svc.GetAdminPendingData(context.Background(), owner); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("GetAdminPendingData by owner = %v, want ErrUnauthorized", err)
	}
}

func TestGetAdminPendingDataBundlesQueues(t *testing.T) {
	db := newTestDB(t)
	shopSvc := newTestShopService(db, false)
	svc := NewAdminService(db)
	admin := seedOwner(t, db, models.RoleAdmin)
	owner := seedOwner(t, db, models.RoleOwner)

	result, err := shopSvc.RegisterShop(context.Background(), owner, registerRequest("대기 매장"))
	if err != nil {
		t.Fatalf("RegisterShop: %v", err)
	}

	claimed := seedShop(t, db, models.ShopStatusApproved)
	if err := shopSvc.ClaimShop(context.Background(), owner, claimed.ID); err != nil {
		t.Fatalf("ClaimShop: %v", err)
	}

	data, err := svc.GetAdminPendingData(context.Background(), admin)
	if err != nil {
		t.Fatalf("GetAdminPendingData: %v", err)
	}

	if len(data.Shops) != 1 || data.Shops[0].ID != result.ShopID {
		t.Errorf("pending shops = %+v, want the registered shop", data.Shops)
	}
	if len(data.Registrations) != 1 {
		t.Fatalf("pending registrations = %d, want 1", len(data.Registrations))
	}
	if data.Registrations[0].OwnerEmail != owner.Email || data.Registrations[0].ShopName != "대기 매장" {
		t.Errorf("registration projection = %+v", data.Registrations[0])
	}
	if len(data.Claims) != 1 {
		t.Fatalf("pending claims = %d, want 1", len(data.Claims))
	}
	if data.Claims[0].ShopID != claimed.ID || data.Claims[0].OwnerName != owner.Name {
		t.Errorf("claim projection = %+v", data.Claims[0])
	}
}

func TestPendingListsExcludeHandledItems(t *testing.T) {
	db := newTestDB(t)
	shopSvc := newTestShopService(db, false)
	svc := NewAdminService(db)
	admin := seedOwner(t, db, models.RoleAdmin)
	owner := seedOwner(t, db, models.RoleOwner)

	result, err := shopSvc.RegisterShop(context.Background(), owner, registerRequest("처리 완료"))
	if err != nil {
		t.Fatalf("RegisterShop: %v", err)
	}
	if err := shopSvc.ApproveShopRegistration(context.Background(), admin, result.ShopID); err != nil {
		t.Fatalf("ApproveShopRegistration: %v", err)
	}

	data, err := svc.GetAdminPendingData(context.Background(), admin)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Registrations) != 0 {
		t.Errorf("pending registrations = %d after approval, want 0", len(data.Registrations))
	}
	if len(data.Shops) != 0 {
		t.Errorf("pending shops = %d after approval, want 0", len(data.Shops))
	}
}

func TestGetPendingClaimsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	owner := seedOwner(t, db, models.RoleOwner)
	other := seedOwner(t, db, models.RoleOwner)
	shop := seedShop(t, db, models.ShopStatusApproved)

	older := models.ShopClaim{OwnerID: owner.ID, ShopID: shop.ID, Status: models.ReviewStatusPending}
	if err := db.Create(&older).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Model(&older).Update("created_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatal(err)
	}
	newer := models.ShopClaim{OwnerID: other.ID, ShopID: shop.ID, Status: models.ReviewStatusPending}
	if err := db.Create(&newer).Error; err != nil {
		t.Fatal(err)
	}

	claims, err := svc.GetPendingClaims(context.Background())
	if err != nil {
		t.Fatalf("GetPendingClaims: %v", err)
	}
	if len(claims) != 2 {
		t.Fatalf("claims = %d, want 2", len(claims))
	}
	if claims[0].ID != newer.ID {
		t.Errorf("first claim = %d, want newest %d", claims[0].ID, newer.ID)
	}
}
