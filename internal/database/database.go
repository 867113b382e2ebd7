package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gachamap/gachamap-backend/internal/config"
	"github.com/gachamap/gachamap-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	// TranslateError surfaces unique-constraint violations as
	// gorm.ErrDuplicatedKey; the claim and ownership paths depend on it.
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all persisted collections.
func Migrate() error {
	return DB.AutoMigrate(
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
		&models.SystemLog{},
	)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
