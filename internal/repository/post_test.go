package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, slug string) *models.Group {
	group := &models.Group{Title: slug, Slug: slug}
	require.NoError(t, db.Create(group).Error)
	return group
}

func TestPostRepositoryFeedOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "writer")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	older := &models.Post{Text: "older", UserID: author.ID, PubDate: base}
	newer := &models.Post{Text: "newer", UserID: author.ID, PubDate: base.Add(time.Hour)}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)

	// Two posts sharing a publication date break the tie on ID, newest first.
	twinA := &models.Post{Text: "twin-a", UserID: author.ID, PubDate: base.Add(2 * time.Hour)}
	twinB := &models.Post{Text: "twin-b", UserID: author.ID, PubDate: base.Add(2 * time.Hour)}
	require.NoError(t, db.Create(twinA).Error)
	require.NoError(t, db.Create(twinB).Error)

	posts, err := repo.ListAll(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 4)
	assert.Equal(t, "twin-b", posts[0].Text)
	assert.Equal(t, "twin-a", posts[1].Text)
	assert.Equal(t, "newer", posts[2].Text)
	assert.Equal(t, "older", posts[3].Text)
}

func TestPostRepositoryGroupFeedIsolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "writer")
	cats := createTestGroup(t, db, "cats")
	dogs := createTestGroup(t, db, "dogs")

	require.NoError(t, db.Create(&models.Post{Text: "meow", UserID: author.ID, GroupID: &cats.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Text: "woof", UserID: author.ID, GroupID: &dogs.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Text: "ungrouped", UserID: author.ID}).Error)

	posts, err := repo.ListByGroup(ctx, cats.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "meow", posts[0].Text)

	count, err := repo.CountByGroup(ctx, cats.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The global feed still carries everything.
	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestPostRepositoryAuthorFeed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, db.Create(&models.Post{Text: "by alice", UserID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Text: "by bob", UserID: bob.ID}).Error)

	posts, err := repo.ListByAuthor(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "by alice", posts[0].Text)
	assert.Equal(t, "alice", posts[0].User.Username)
}

func TestPostRepositoryFollowedFeed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	followRepo := NewFollowRepository(db)
	ctx := context.Background()

	reader := createTestUser(t, db, "reader")
	followed := createTestUser(t, db, "followed")
	stranger := createTestUser(t, db, "stranger")

	require.NoError(t, db.Create(&models.Post{Text: "from followed", UserID: followed.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Text: "from stranger", UserID: stranger.ID}).Error)

	// No follows yet, the feed is empty.
	posts, err := repo.ListFollowed(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)

	_, err = followRepo.Create(ctx, reader.ID, followed.ID)
	require.NoError(t, err)

	posts, err = repo.ListFollowed(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "from followed", posts[0].Text)

	count, err := repo.CountFollowed(ctx, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Unfollowing empties the feed again.
	require.NoError(t, followRepo.Delete(ctx, reader.ID, followed.ID))
	posts, err = repo.ListFollowed(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepositoryCommentsCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	commenter := createTestUser(t, db, "commenter")
	post := &models.Post{Text: "discuss", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)

	fetched, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.CommentsCount)

	require.NoError(t, commentRepo.Create(ctx, &models.Comment{Text: "first", UserID: commenter.ID, PostID: post.ID}))
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{Text: "second", UserID: author.ID, PostID: post.ID}))

	fetched, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.CommentsCount)
}

func TestPostRepositoryGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	assert.Error(t, err)
}
