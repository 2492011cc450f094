package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// CommentService owns the comment lifecycle: public submission, moderation
// and the approved public feed.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// AddCommentInput carries a public comment submission.
type AddCommentInput struct {
	PostID  uint
	Name    string
	Content string
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

const maxCommentLen = 10000

// AddComment creates an unapproved comment on an existing post. Anyone may
// submit; nothing becomes publicly visible until moderation approves it.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return nil, models.NewMissingFieldsError(missing...)
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError(fmt.Sprintf("Comment too long (max %d characters)", maxCommentLen))
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog", in.PostID)
		}
		return nil, models.NewInternalError(err)
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		Name:    in.Name,
		Content: in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// ListApproved returns the public comment feed for a post, newest first.
func (s *CommentService) ListApproved(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog", postID)
		}
		return nil, models.NewInternalError(err)
	}

	comments, err := s.commentRepo.ListApprovedByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// ListForAdmin returns every comment for moderation, optionally filtered by
// approval state, each carrying its resolved parent title.
func (s *CommentService) ListForAdmin(ctx context.Context, approved *bool) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListAll(ctx, approved)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// ApproveComment marks a comment approved. Approval is one-way: there is no
// unapprove path, moderation that wants a comment gone deletes it.
func (s *CommentService) ApproveComment(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}

	if comment.IsApproved {
		return comment, nil
	}

	comment.IsApproved = true
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// DeleteComment removes a single comment.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	if _, err := s.commentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", id)
		}
		return models.NewInternalError(err)
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
