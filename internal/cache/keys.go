package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	PostKeyPrefix       = "post:%d"
	GlobalFeedKeyPrefix = "feed:global:%d:%d"
)

const (
	UserTTL       = 5 * time.Minute
	PostTTL       = 10 * time.Minute
	GlobalFeedTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// GlobalFeedKey keys one page of the global feed.
func GlobalFeedKey(limit, offset int) string {
	return fmt.Sprintf(GlobalFeedKeyPrefix, limit, offset)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateGlobalFeed drops every cached global feed page. Interaction
// mutations change like counts and comment lists, so cached pages go stale
// on any of them.
func InvalidateGlobalFeed(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "feed:global:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
