package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// ErrNotAuthor is returned when a user attempts to modify a post they do not
// own. Handlers translate it into a redirect to the post detail page rather
// than an error response.
var ErrNotAuthor = errors.New("user is not the post author")

// CreatePostInput carries the fields accepted when creating a post.
type CreatePostInput struct {
	Text      string `json:"text"`
	GroupSlug string `json:"group,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// EditPostInput carries the fields accepted when editing a post.
type EditPostInput struct {
	Text      string `json:"text"`
	GroupSlug string `json:"group,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// PostDetail is a single post with its comment thread and the author's total
// post count.
type PostDetail struct {
	Post            *models.Post     `json:"post"`
	Comments        []models.Comment `json:"comments"`
	AuthorPostCount int64            `json:"author_post_count"`
}

// PostService implements post creation, editing, and detail assembly.
type PostService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
	}
}

// resolveGroup maps an optional group slug to a group ID. An empty slug means
// the post is not filed under any group.
func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uint, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return nil, models.NewFieldValidationError(map[string]string{"group": "unknown group"})
		}
		return nil, err
	}
	return &group.ID, nil
}

// Create validates the input and persists a new post owned by authorID.
func (s *PostService) Create(ctx context.Context, authorID uint, input CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, models.NewFieldValidationError(map[string]string{"text": "text is required"})
	}

	groupID, err := s.resolveGroup(ctx, input.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     text,
		UserID:   authorID,
		GroupID:  groupID,
		ImageURL: input.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()

	// Reload with author and group preloaded for the response.
	return s.postRepo.GetByID(ctx, post.ID)
}

// Edit updates a post's text, group, and image. Only the author may edit;
// anyone else gets ErrNotAuthor. The publication date never changes.
func (s *PostService) Edit(ctx context.Context, postID, userID uint, input EditPostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrNotAuthor
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, models.NewFieldValidationError(map[string]string{"text": "text is required"})
	}

	groupID, err := s.resolveGroup(ctx, input.GroupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = text
	post.GroupID = groupID
	post.ImageURL = input.ImageURL
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// Get returns a single post for edit-form prefill. Callers enforce ownership.
func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// Detail returns a post with its comments and the author's post count.
func (s *PostService) Detail(ctx context.Context, postID uint) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	authorCount, err := s.postRepo.CountByAuthor(ctx, post.UserID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{
		Post:            post,
		Comments:        comments,
		AuthorPostCount: authorCount,
	}, nil
}
