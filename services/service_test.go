package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/teamuphq/teamup/config"
	"github.com/teamuphq/teamup/db"
	"github.com/teamuphq/teamup/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database scoped to the calling test
// and runs the migrations the services under test need.
func setupTestDB(t *testing.T) *db.GormDB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&models.User{},
		&models.Blacklist{},
		&models.ConnectionRequest{},
		&models.Connection{},
		&models.Message{},
		&models.Notification{},
		&models.BoardPost{},
		&models.PostLike{},
		&models.Team{},
	)
	if err != nil {
		t.Fatalf("could not migrate test database: %v", err)
	}
	return &db.GormDB{DB: gormDB}
}

func createTestUser(t *testing.T, gormDB *db.GormDB, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, HashedPassword: "x"}
	if err := gormDB.DB.Create(user).Error; err != nil {
		t.Fatalf("could not create test user %s: %v", email, err)
	}
	return user
}

func testConfig() *config.Config {
	return &config.Config{Env: "test", JWTSecret: "test-secret"}
}
