package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// FollowService manages follow edges between users.
//
// Follow and Unfollow are idempotent and treat self-follows as no-ops, so
// repeated form submissions and races never surface errors to the user.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// resolveAuthor looks up the target user by username.
func (s *FollowService) resolveAuthor(ctx context.Context, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return author, nil
}

// Follow makes userID follow the named author. Following yourself or someone
// you already follow succeeds silently without creating an edge.
func (s *FollowService) Follow(ctx context.Context, userID uint, username string) error {
	author, err := s.resolveAuthor(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == userID {
		observability.FollowMutations.WithLabelValues("follow", "noop").Inc()
		return nil
	}

	created, err := s.followRepo.Create(ctx, userID, author.ID)
	if err != nil {
		return err
	}
	if created {
		observability.FollowMutations.WithLabelValues("follow", "created").Inc()
	} else {
		observability.FollowMutations.WithLabelValues("follow", "noop").Inc()
	}
	return nil
}

// Unfollow removes userID's follow edge to the named author, succeeding
// silently when no edge exists.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, username string) error {
	author, err := s.resolveAuthor(ctx, username)
	if err != nil {
		return err
	}
	if author.ID == userID {
		observability.FollowMutations.WithLabelValues("unfollow", "noop").Inc()
		return nil
	}

	if err := s.followRepo.Delete(ctx, userID, author.ID); err != nil {
		return err
	}
	observability.FollowMutations.WithLabelValues("unfollow", "deleted").Inc()
	return nil
}

// IsFollowing reports whether userID follows the named author.
func (s *FollowService) IsFollowing(ctx context.Context, userID uint, username string) (bool, error) {
	author, err := s.resolveAuthor(ctx, username)
	if err != nil {
		return false, err
	}
	return s.followRepo.Exists(ctx, userID, author.ID)
}
