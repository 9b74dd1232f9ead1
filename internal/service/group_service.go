package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// CreateGroupInput carries the fields accepted when creating a group.
type CreateGroupInput struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// GroupService implements group creation and listing.
type GroupService struct {
	groupRepo repository.GroupRepository
}

func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// Create validates and persists a new group. Slugs are lowercased before
// validation so lookups are case-stable.
func (s *GroupService) Create(ctx context.Context, input CreateGroupInput) (*models.Group, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, models.NewFieldValidationError(map[string]string{"title": "title is required"})
	}

	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if err := validation.ValidateGroupSlug(slug); err != nil {
		return nil, models.NewFieldValidationError(map[string]string{"slug": err.Error()})
	}

	existing, err := s.groupRepo.GetBySlug(ctx, slug)
	if err == nil && existing != nil {
		return nil, models.NewFieldValidationError(map[string]string{"slug": "slug is already taken"})
	}

	group := &models.Group{
		Title:       title,
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// List returns all groups ordered by title, for the post form's group picker.
func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}
