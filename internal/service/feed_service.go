// Package service contains the application's business rules, sitting between
// the HTTP handlers and the repositories.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/pagination"
	"inkwell/internal/repository"
)

// FeedPage is one window of a feed: the posts plus the page descriptor.
type FeedPage struct {
	Posts []*models.Post  `json:"posts"`
	Page  pagination.Page `json:"page"`
}

// ProfileFeed is an author feed page together with the author metadata the
// profile view needs.
type ProfileFeed struct {
	FeedPage
	Author    *models.User `json:"author"`
	PostCount int64        `json:"post_count"`
	// Following reports whether the authenticated viewer follows the author.
	// Nil for anonymous viewers.
	Following *bool `json:"following"`
}

// GroupFeed is a group feed page together with the group metadata.
type GroupFeed struct {
	FeedPage
	Group *models.Group `json:"group"`
}

// FeedService builds paginated, reverse-chronological post feeds.
type FeedService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	groupRepo  repository.GroupRepository
	followRepo repository.FollowRepository
	pageSize   int
}

// NewFeedService creates a FeedService with the configured fixed page size.
func NewFeedService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	followRepo repository.FollowRepository,
	pageSize int,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		groupRepo:  groupRepo,
		followRepo: followRepo,
		pageSize:   pageSize,
	}
}

// GlobalFeed returns the requested page of all posts.
func (s *FeedService) GlobalFeed(ctx context.Context, page int) (*FeedPage, error) {
	total, err := s.postRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	p := pagination.Paginate(total, page, s.pageSize)
	posts, err := s.postRepo.ListAll(ctx, p.Limit(), p.Offset())
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: posts, Page: p}, nil
}

// GroupFeed returns the requested page of posts filed under the group
// resolved by slug. An unknown slug yields NotFound.
func (s *FeedService) GroupFeed(ctx context.Context, slug string, page int) (*GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	p := pagination.Paginate(total, page, s.pageSize)
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, p.Limit(), p.Offset())
	if err != nil {
		return nil, err
	}
	return &GroupFeed{FeedPage: FeedPage{Posts: posts, Page: p}, Group: group}, nil
}

// AuthorFeed returns the requested page of the author's posts plus profile
// metadata. viewerID is zero for anonymous viewers, in which case Following
// is nil.
func (s *FeedService) AuthorFeed(ctx context.Context, username string, page int, viewerID uint) (*ProfileFeed, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	p := pagination.Paginate(total, page, s.pageSize)
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, p.Limit(), p.Offset())
	if err != nil {
		return nil, err
	}

	feed := &ProfileFeed{
		FeedPage:  FeedPage{Posts: posts, Page: p},
		Author:    author,
		PostCount: total,
	}
	if viewerID != 0 {
		following, err := s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
		feed.Following = &following
	}
	return feed, nil
}

// FollowedFeed returns the requested page of posts authored by users the
// follower follows.
func (s *FeedService) FollowedFeed(ctx context.Context, followerID uint, page int) (*FeedPage, error) {
	total, err := s.postRepo.CountFollowed(ctx, followerID)
	if err != nil {
		return nil, err
	}
	p := pagination.Paginate(total, page, s.pageSize)
	posts, err := s.postRepo.ListFollowed(ctx, followerID, p.Limit(), p.Offset())
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: posts, Page: p}, nil
}
