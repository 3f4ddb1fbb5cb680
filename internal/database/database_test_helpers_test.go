package database

import (
	"fmt"
	"testing"

	"vesselos/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		t.Fatalf("set busy timeout: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Vessel{},
		&domain.MaintenanceRequest{},
		&domain.Message{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	DB = db

	t.Cleanup(func() {
		DB = nil
	})

	return db
}

func createTestUser(t *testing.T, email string) domain.User {
	t.Helper()

	user := domain.User{Email: email, Password: "hashed-password", Role: "user"}
	if err := DB.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func createTestVessel(t *testing.T, name string) domain.Vessel {
	t.Helper()

	vessel := domain.Vessel{Name: name, IMONumber: "IMO" + name, Status: domain.VesselStatusActive}
	if err := DB.Create(&vessel).Error; err != nil {
		t.Fatalf("create test vessel: %v", err)
	}
	return vessel
}
