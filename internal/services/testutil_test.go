package services

import (
	"fmt"
	"testing"

	"github.com/gachamap/gachamap-backend/internal/geocode"
	"github.com/gachamap/gachamap-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// In-memory sqlite gives every connection its own database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.AuthUser{},
		&models.RefreshToken{},
		&models.Owner{},
		&models.Shop{},
		&models.ShopOwner{},
		&models.ShopClaim{},
		&models.ShopRegistrationRequest{},
		&models.GachaMachine{},
		&models.KujiStatus{},
		&models.ShopComment{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func newTestShopService(db *gorm.DB, autoApprove bool) *ShopService {
	geocoder := geocode.Static{Result: geocode.Result{Lat: 37.5665, Lng: 126.978, OK: true}}
	return NewShopService(db, geocoder, nil, NewOwnerService(db), autoApprove)
}

var ownerSeq int

func seedOwner(t *testing.T, db *gorm.DB, role string) *models.Owner {
	t.Helper()
	ownerSeq++
	owner := models.Owner{
		AuthUserID: fmt.Sprintf("00000000-0000-0000-0000-%012d", ownerSeq),
		Email:      fmt.Sprintf("owner%d@example.com", ownerSeq),
		Name:       fmt.Sprintf("owner%d", ownerSeq),
		Role:       role,
	}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}
	return &owner
}

func seedShop(t *testing.T, db *gorm.DB, status string) *models.Shop {
	t.Helper()
	shop := models.Shop{
		Name:          "테스트 매장",
		Type:          models.ShopTypeBoth,
		Lat:           37.5665,
		Lng:           126.978,
		BusinessHours: "09:00 - 21:00",
		IsOpen:        true,
		Status:        status,
		UpdateSource:  models.UpdateSourceCommunity,
	}
	if err := db.Create(&shop).Error; err != nil {
		t.Fatalf("failed to seed shop: %v", err)
	}
	return &shop
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return n
}
