// Package testutil provides shared helpers for tests.
package testutil

import (
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an isolated in-memory SQLite database with the full schema
// applied. Each call gets its own database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// NewTestRedis starts a miniredis instance and returns a client bound to it.
func NewTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

// SeedPost inserts a post with sensible defaults, applying any overrides.
func SeedPost(t *testing.T, db *gorm.DB, overrides ...func(*models.Post)) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:    "Test Post",
		Content:  "<p>Test content</p>",
		Category: models.CategoryTechnology,
		ImageURL: "https://ik.example.com/blogs/test.webp",
	}
	for _, o := range overrides {
		o(post)
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}

// SeedComment inserts a comment with sensible defaults, applying any overrides.
func SeedComment(t *testing.T, db *gorm.DB, postID uint, overrides ...func(*models.Comment)) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		PostID:  postID,
		Name:    "Reader",
		Content: "Nice!",
	}
	for _, o := range overrides {
		o(comment)
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}
	return comment
}
