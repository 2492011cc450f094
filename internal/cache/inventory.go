package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix     = "post:%d"
	PublishedFeedKey  = "posts:published"
	CommentFeedPrefix = "post:%d:comments"
)

const (
	PostTTL          = 30 * time.Minute
	PublishedFeedTTL = 5 * time.Minute
	CommentFeedTTL   = 2 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func CommentFeedKey(postID uint) string {
	return fmt.Sprintf(CommentFeedPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost drops the cached post and its comment feed.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, CommentFeedKey(postID))
}

// InvalidatePublishedFeed drops the cached public blog listing. Called on
// every post write so visibility changes are never served stale.
func InvalidatePublishedFeed(ctx context.Context) {
	Invalidate(ctx, PublishedFeedKey)
}
