package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// postRepoStub is a function-field stub for repository.PostRepository.
type postRepoStub struct {
	createFn             func(context.Context, *models.Post) error
	getByIDFn            func(context.Context, uint) (*models.Post, error)
	listPublishedFn      func(context.Context) ([]*models.Post, error)
	listAllFn            func(context.Context) ([]*models.Post, error)
	listRecentFn         func(context.Context, int) ([]*models.Post, error)
	updateFn             func(context.Context, *models.Post) error
	deleteWithCommentsFn func(context.Context, uint) (int64, error)
	countFn              func(context.Context) (int64, error)
	countDraftsFn        func(context.Context) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListPublished(ctx context.Context) ([]*models.Post, error) {
	return s.listPublishedFn(ctx)
}
func (s *postRepoStub) ListAll(ctx context.Context) ([]*models.Post, error) {
	return s.listAllFn(ctx)
}
func (s *postRepoStub) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	return s.listRecentFn(ctx, limit)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) DeleteWithComments(ctx context.Context, id uint) (int64, error) {
	return s.deleteWithCommentsFn(ctx, id)
}
func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *postRepoStub) CountDrafts(ctx context.Context) (int64, error) {
	return s.countDraftsFn(ctx)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:             func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:            func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listPublishedFn:      func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		listAllFn:            func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		listRecentFn:         func(_ context.Context, _ int) ([]*models.Post, error) { return nil, nil },
		updateFn:             func(_ context.Context, _ *models.Post) error { return nil },
		deleteWithCommentsFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countFn:              func(_ context.Context) (int64, error) { return 0, nil },
		countDraftsFn:        func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// commentRepoStub is a function-field stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn             func(context.Context, *models.Comment) error
	getByIDFn            func(context.Context, uint) (*models.Comment, error)
	listApprovedByPostFn func(context.Context, uint) ([]*models.Comment, error)
	listAllFn            func(context.Context, *bool) ([]*models.Comment, error)
	updateFn             func(context.Context, *models.Comment) error
	deleteFn             func(context.Context, uint) error
	countFn              func(context.Context) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListApprovedByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listApprovedByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListAll(ctx context.Context, approved *bool) ([]*models.Comment, error) {
	return s.listAllFn(ctx, approved)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:             func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:            func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listApprovedByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		listAllFn:            func(_ context.Context, _ *bool) ([]*models.Comment, error) { return nil, nil },
		updateFn:             func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:             func(_ context.Context, _ uint) error { return nil },
		countFn:              func(_ context.Context) (int64, error) { return 0, nil },
	}
}

func notFoundPostRepo() *postRepoStub {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
		return nil, gorm.ErrRecordNotFound
	}
	return repo
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, code, appErr.Code)
}
