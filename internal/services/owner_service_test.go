package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gachamap/gachamap-backend/internal/models"
)

func TestProvisionOwnerIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnerService(db)
	ctx := context.Background()

	authID := "11111111-1111-1111-1111-111111111111"
	if err := svc.ProvisionOwner(ctx, authID, "a@example.com", "가챠덕후"); err != nil {
		t.Fatalf("first provision: %v", err)
	}
	if err := svc.ProvisionOwner(ctx, authID, "a@example.com", "다른이름"); err != nil {
		t.Fatalf("second provision: %v", err)
	}

	var owners []models.Owner
	if err := db.Where("auth_user_id = ?", authID).Find(&owners).Error; err != nil {
		t.Fatal(err)
	}
	if len(owners) != 1 {
		t.Fatalf("owners = %d, want exactly 1", len(owners))
	}
	// The first write wins; re-provisioning never mutates.
	if owners[0].Name != "가챠덕후" {
		t.Errorf("name = %q, want 가챠덕후", owners[0].Name)
	}
	if owners[0].Role != models.RoleOwner {
		t.Errorf("role = %q, want owner", owners[0].Role)
	}
}

func TestProvisionOwnerDefaultsBlankName(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnerService(db)

	authID := "22222222-2222-2222-2222-222222222222"
	if err := svc.ProvisionOwner(context.Background(), authID, "b@example.com", "  "); err != nil {
		t.Fatal(err)
	}

	owner, err := svc.ResolveOwner(context.Background(), authID)
	if err != nil {
		t.Fatal(err)
	}
	if owner.Name != DefaultOwnerName {
		t.Errorf("name = %q, want %q", owner.Name, DefaultOwnerName)
	}
}

func TestResolveOwnerMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnerService(db)

	if _, err := svc.ResolveOwner(context.Background(), "33333333-3333-3333-3333-333333333333"); !errors.Is(err, ErrOwnerNotFound) {
		t.Fatalf("ResolveOwner = %v, want ErrOwnerNotFound", err)
	}
}

func TestResolveOrProvisionCreatesThenReturns(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnerService(db)

	authID := "44444444-4444-4444-4444-444444444444"
	owner, err := svc.ResolveOrProvision(context.Background(), authID, "c@example.com", "")
	if err != nil {
		t.Fatalf("ResolveOrProvision: %v", err)
	}
	if owner.AuthUserID != authID {
		t.Errorf("auth_user_id = %q, want %q", owner.AuthUserID, authID)
	}

	again, err := svc.ResolveOrProvision(context.Background(), authID, "c@example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != owner.ID {
		t.Errorf("second resolve returned different row: %d vs %d", again.ID, owner.ID)
	}
}

func TestListOwnedShopsForDisplay(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnerService(db)
	owner := seedOwner(t, db, models.RoleOwner)

	items, err := svc.ListOwnedShopsForDisplay(context.Background(), owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("items = %d for shopless owner, want 0", len(items))
	}

	shop := seedShop(t, db, models.ShopStatusApproved)
	if err := db.Create(&models.ShopOwner{OwnerID: owner.ID, ShopID: shop.ID}).Error; err != nil {
		t.Fatal(err)
	}

	items, err = svc.ListOwnedShopsForDisplay(context.Background(), owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != shop.ID || items[0].Name != shop.Name {
		t.Errorf("items = %+v, want [{%d %s}]", items, shop.ID, shop.Name)
	}
}

func TestUpdateDisplayNameValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewOwnerService(db)
	owner := seedOwner(t, db, models.RoleOwner)

	if err := svc.UpdateDisplayName(context.Background(), owner.ID, "  "); !errors.Is(err, ErrNameRequired) {
		t.Errorf("blank name = %v, want ErrNameRequired", err)
	}
	if err := svc.UpdateDisplayName(context.Background(), owner.ID, strings.Repeat("가", 51)); !errors.Is(err, ErrNameTooLong) {
		t.Errorf("51-rune name = %v, want ErrNameTooLong", err)
	}
	if err := svc.UpdateDisplayName(context.Background(), owner.ID, "  새이름  "); err != nil {
		t.Fatalf("UpdateDisplayName: %v", err)
	}

	updated, err := svc.ResolveOwner(context.Background(), owner.AuthUserID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "새이름" {
		t.Errorf("name = %q, want trimmed 새이름", updated.Name)
	}

	if err := svc.UpdateDisplayName(context.Background(), owner.ID+99, "x"); !errors.Is(err, ErrOwnerNotFound) {
		t.Errorf("missing owner = %v, want ErrOwnerNotFound", err)
	}
}
