package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. Every feed
// query is an explicit, parameterized function returning posts in
// reverse-chronological pub date order.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error)
	CountAll(ctx context.Context) (int64, error)
	ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error)
	CountByGroup(ctx context.Context, groupID uint) (int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	ListFollowed(ctx context.Context, followerID uint, limit, offset int) ([]*models.Post, error)
	CountFollowed(ctx context.Context, followerID uint) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return r.list(r.feedQuery(ctx), limit, offset)
}

func (r *postRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(r.db.WithContext(ctx).Model(&models.Post{}))
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint, limit, offset int) ([]*models.Post, error) {
	return r.list(r.feedQuery(ctx).Where("group_id = ?", groupID), limit, offset)
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID uint) (int64, error) {
	return r.count(r.db.WithContext(ctx).Model(&models.Post{}).Where("group_id = ?", groupID))
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return r.list(r.feedQuery(ctx).Where("user_id = ?", authorID), limit, offset)
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return r.count(r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", authorID))
}

// ListFollowed returns posts whose author is followed by followerID.
func (r *postRepository) ListFollowed(ctx context.Context, followerID uint, limit, offset int) ([]*models.Post, error) {
	q := r.feedQuery(ctx).
		Joins("JOIN follows ON follows.author_id = posts.user_id").
		Where("follows.user_id = ?", followerID)
	return r.list(q, limit, offset)
}

func (r *postRepository) CountFollowed(ctx context.Context, followerID uint) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN follows ON follows.author_id = posts.user_id").
		Where("follows.user_id = ?", followerID)
	return r.count(q)
}

// feedQuery is the shared base for every feed: author and group preloaded,
// newest first. The id tie-breaker keeps ordering deterministic when posts
// share a pub date.
func (r *postRepository) feedQuery(ctx context.Context) *gorm.DB {
	return r.applyPostDetails(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Group").
		Order("posts.pub_date DESC, posts.id DESC")
}

// applyPostDetails adds a subquery computing the comment count in the same query.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count")
}

func (r *postRepository) list(q *gorm.DB, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := q.Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) count(q *gorm.DB) (int64, error) {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
