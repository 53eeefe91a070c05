package service

import (
	"context"
	"time"

	"savora/internal/cache"
	"savora/internal/models"
	"savora/internal/observability"
	"savora/internal/repository"
)

// FeedService assembles the read-only feed views. Every feed returns fully
// populated posts: author, like sets and ordered comments with their authors.
type FeedService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{postRepo: postRepo, userRepo: userRepo}
}

// GlobalFeed returns every post, newest first, through a short-TTL cache.
// Interaction mutations invalidate the cached pages at the repository layer.
func (s *FeedService) GlobalFeed(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	defer observability.ObserveFeed("global", time.Now())

	var posts []*models.Post
	err := cache.Aside(ctx, cache.GlobalFeedKey(limit, offset), &posts, cache.GlobalFeedTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.postRepo.List(ctx, limit, offset)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FollowingFeed returns posts authored by users the viewer follows, newest
// first. A viewer following nobody gets an empty feed, not an error.
func (s *FeedService) FollowingFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	defer observability.ObserveFeed("following", time.Now())

	if _, err := s.userRepo.GetByID(ctx, viewerID); err != nil {
		return nil, err
	}

	authorIDs, err := s.userRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	return s.postRepo.ListByAuthors(ctx, authorIDs, limit, offset)
}

// UserFeed returns the named author's posts, newest first.
func (s *FeedService) UserFeed(ctx context.Context, username string, limit, offset int) ([]*models.Post, error) {
	defer observability.ObserveFeed("user", time.Now())

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	return s.postRepo.ListByAuthor(ctx, user.ID, limit, offset)
}

// LikedFeed returns exactly the posts the user has liked. Set-membership
// order only; liked feeds carry no recency ordering.
func (s *FeedService) LikedFeed(ctx context.Context, userID uint) ([]*models.Post, error) {
	defer observability.ObserveFeed("liked", time.Now())

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	likedIDs, err := s.postRepo.LikedPostIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.postRepo.ListByIDs(ctx, likedIDs)
}
