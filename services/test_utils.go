package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MarcAntoine-Arnaud/catalog-api/models"
)

// setupTestDB creates an in-memory SQLite database with all catalog tables
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(&models.DataResource{}, &models.ServiceOffering{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// testProvider returns a participant identity for tests
func testProvider(id string) *models.Participant {
	return &models.Participant{
		ParticipantID: id,
		Email:         id + "@example.com",
		Role:          models.RoleProvider,
	}
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}
