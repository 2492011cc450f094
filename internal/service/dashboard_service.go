package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// DashboardService derives summary views from the post and comment stores.
// It holds no state of its own and never writes.
type DashboardService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// DashboardSummary is the admin landing-page payload.
type DashboardSummary struct {
	Blogs       int64          `json:"blogs"`
	Comments    int64          `json:"comments"`
	Drafts      int64          `json:"drafts"`
	RecentBlogs []*models.Post `json:"recent_blogs"`
}

const recentBlogsLimit = 5

// NewDashboardService creates a new DashboardService.
func NewDashboardService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *DashboardService {
	return &DashboardService{postRepo: postRepo, commentRepo: commentRepo}
}

// Summarize composes current counts and the five most recent posts. The reads
// are uncached: the dashboard is low-volume and must reflect store state.
func (s *DashboardService) Summarize(ctx context.Context) (*DashboardSummary, error) {
	blogs, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	comments, err := s.commentRepo.Count(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	drafts, err := s.postRepo.CountDrafts(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	recent, err := s.postRepo.ListRecent(ctx, recentBlogsLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &DashboardSummary{
		Blogs:       blogs,
		Comments:    comments,
		Drafts:      drafts,
		RecentBlogs: recent,
	}, nil
}
