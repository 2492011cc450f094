package repository

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListApprovedByPost(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	post := testutil.SeedPost(t, db)

	approved := testutil.SeedComment(t, db, post.ID, func(c *models.Comment) {
		c.IsApproved = true
		c.CreatedAt = time.Now().Add(-2 * time.Hour)
	})
	newerApproved := testutil.SeedComment(t, db, post.ID, func(c *models.Comment) {
		c.IsApproved = true
		c.CreatedAt = time.Now().Add(-1 * time.Hour)
	})
	testutil.SeedComment(t, db, post.ID) // pending, must not appear

	comments, err := repo.ListApprovedByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, newerApproved.ID, comments[0].ID, "newest first")
	assert.Equal(t, approved.ID, comments[1].ID)
}

func TestCommentRepository_ApprovedFeedCacheInvalidation(t *testing.T) {
	db := testutil.NewTestDB(t)
	cache.SetClient(testutil.NewTestRedis(t))
	t.Cleanup(func() { cache.SetClient(nil) })

	repo := NewCommentRepository(db)
	ctx := context.Background()

	post := testutil.SeedPost(t, db)
	testutil.SeedComment(t, db, post.ID, func(c *models.Comment) { c.IsApproved = true })
	pending := testutil.SeedComment(t, db, post.ID)

	feed, err := repo.ListApprovedByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	// Approving through the repository drops the cached feed.
	pending.IsApproved = true
	require.NoError(t, repo.Update(ctx, pending))

	feed, err = repo.ListApprovedByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, feed, 2)

	// Deleting does too.
	require.NoError(t, repo.Delete(ctx, pending.ID))

	feed, err = repo.ListApprovedByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestCommentRepository_ListAllResolvesPostTitle(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	post := testutil.SeedPost(t, db, func(p *models.Post) { p.Title = "A Real Title" })
	testutil.SeedComment(t, db, post.ID)

	// A comment whose parent vanished outside the cascade path.
	testutil.SeedComment(t, db, post.ID+1000)

	comments, err := repo.ListAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	titles := map[uint]string{}
	for _, c := range comments {
		titles[c.PostID] = c.PostTitle
	}
	assert.Equal(t, "A Real Title", titles[post.ID])
	assert.Equal(t, models.DeletedPostTitle, titles[post.ID+1000])
}

func TestCommentRepository_ListAllApprovalFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	post := testutil.SeedPost(t, db)
	testutil.SeedComment(t, db, post.ID, func(c *models.Comment) { c.IsApproved = true })
	testutil.SeedComment(t, db, post.ID)
	testutil.SeedComment(t, db, post.ID)

	approved := true
	got, err := repo.ListAll(ctx, &approved)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	pending := false
	got, err = repo.ListAll(ctx, &pending)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.ListAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestCommentRepository_UpdateApproval(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	post := testutil.SeedPost(t, db)
	comment := testutil.SeedComment(t, db, post.ID)
	require.False(t, comment.IsApproved)

	comment.IsApproved = true
	require.NoError(t, repo.Update(ctx, comment))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)
}

func TestCommentRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	post := testutil.SeedPost(t, db)
	comment := testutil.SeedComment(t, db, post.ID)

	require.NoError(t, repo.Delete(ctx, comment.ID))

	_, err := repo.GetByID(ctx, comment.ID)
	assert.Error(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
