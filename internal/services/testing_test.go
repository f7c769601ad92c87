package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/threadup-app/backend/internal/database"
	"github.com/threadup-app/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedPost(t *testing.T, db *gorm.DB, title, authorUID, authorEmail string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Description: "seed description",
		AuthorName:  "Seed Author",
		AuthorEmail: authorEmail,
		AuthorUID:   authorUID,
		Visible:     true,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedComment(t *testing.T, db *gorm.DB, post *models.Post, content string, at time.Time) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		PostID:      post.ID,
		AuthorName:  "Commenter",
		AuthorImage: "https://img.example/c.png",
		Content:     content,
		CreatedAt:   at,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func seedUser(t *testing.T, db *gorm.DB, uid, email string) *models.User {
	t.Helper()
	user := &models.User{
		UID:   uid,
		Email: email,
		Name:  "Seed User",
		Role:  "user",
		Badge: "bronze",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
