package repository

import (
	"fmt"
	"testing"

	"savora/internal/database"
	"savora/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled second connection would see an empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed-password",
		FullName: "Test User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:          userID,
		Title:           title,
		Ingredients:     models.StringList{"flour", "water"},
		Categories:      models.StringList{"baking"},
		Instructions:    models.StringList{"mix", "bake"},
		Description:     "A test recipe",
		Servings:        "4",
		PreparationTime: "15m",
		CookingTime:     "45m",
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
