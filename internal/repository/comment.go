package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListApprovedByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	ListAll(ctx context.Context, approved *bool) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListApprovedByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := cache.Aside(ctx, cache.CommentFeedKey(postID), &comments, cache.CommentFeedTTL, func() error {
		return r.db.WithContext(ctx).
			Where("post_id = ? AND is_approved = ?", postID, true).
			Order("created_at DESC").
			Find(&comments).Error
	})
	return comments, err
}

// ListAll returns every comment for moderation, newest first, optionally
// filtered by approval state. The parent title is resolved in the same query;
// comments whose parent has been deleted outside the cascade path carry the
// placeholder title instead of failing the listing.
func (r *commentRepository) ListAll(ctx context.Context, approved *bool) ([]*models.Comment, error) {
	var comments []*models.Comment
	q := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("comments.*, COALESCE(posts.title, ?) AS post_title", models.DeletedPostTitle).
		Joins("LEFT JOIN posts ON posts.id = comments.post_id").
		Order("comments.created_at DESC")
	if approved != nil {
		q = q.Where("comments.is_approved = ?", *approved)
	}
	err := q.Find(&comments).Error
	return comments, err
}

// Update saves the comment and drops its post's cached comment feed, since
// an approval flip changes what the public feed serves.
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.CommentFeedKey(comment.PostID))
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.CommentFeedKey(comment.PostID))
	return nil
}

func (r *commentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error
	return count, err
}
