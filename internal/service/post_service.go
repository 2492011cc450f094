package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// PostService owns the post lifecycle: creation, publish state and deletion
// with comment cascade.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	IsPublished bool   `json:"is_published"`
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

const maxTitleLen = 300

// CreatePost validates the input and persists a new post. Posts default to
// unpublished unless the input explicitly says otherwise.
// ValidateCreatePostInput checks the textual fields and image presence.
// hasImage stands in for in.ImageURL so callers can validate before the
// cover has been uploaded anywhere.
func ValidateCreatePostInput(in CreatePostInput, hasImage bool) error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Content) == "" {
		missing = append(missing, "content")
	}
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}
	if !hasImage {
		missing = append(missing, "image")
	}
	if len(missing) > 0 {
		return models.NewMissingFieldsError(missing...)
	}

	if len(in.Title) > maxTitleLen {
		return models.NewValidationError(fmt.Sprintf("Title too long (max %d characters)", maxTitleLen))
	}
	if !models.ValidCategory(in.Category) {
		return models.NewValidationError(
			"Invalid category: must be one of " + strings.Join(models.Categories, ", "))
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := ValidateCreatePostInput(in, strings.TrimSpace(in.ImageURL) != ""); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       in.Title,
		Subtitle:    in.Subtitle,
		Content:     in.Content,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		IsPublished: in.IsPublished,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// ListPublished returns published posts, newest first.
func (s *PostService) ListPublished(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.ListPublished(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListAll returns every post regardless of publish state, newest first.
func (s *PostService) ListAll(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// GetPost returns a post by id. No publish-state filter is applied: a direct
// link reaches drafts too, which the admin editor relies on for preview.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog", id)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// TogglePublish flips the publish flag. Each call is a single flip; two calls
// restore the original state.
func (s *PostService) TogglePublish(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	post.IsPublished = !post.IsPublished
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// DeletePost removes a post together with all of its comments as one unit of
// work. A failed cascade rolls back and is reported; the post is never left
// deleted with orphaned comments, nor half-deleted.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if _, err := s.GetPost(ctx, id); err != nil {
		return err
	}

	removed, err := s.postRepo.DeleteWithComments(ctx, id)
	if err != nil {
		middleware.CascadeFailures.Inc()
		middleware.Logger.ErrorContext(ctx, "blog cascade delete failed",
			slog.Any("post_id", id), slog.String("error", err.Error()))
		return models.NewCascadeError(err)
	}

	middleware.Logger.InfoContext(ctx, "blog deleted",
		slog.Any("post_id", id), slog.Int64("comments_removed", removed))
	return nil
}
