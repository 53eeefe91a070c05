// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"savora/internal/media"
	"savora/internal/middleware"
	"savora/internal/models"
	"savora/internal/notifications"
	"savora/internal/observability"
	"savora/internal/repository"
)

// PostService owns every mutation of posts and their interaction state.
type PostService struct {
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	media            media.Store
	notifier         *notifications.Notifier
}

// CreatePostInput carries the client payload for a new recipe post.
type CreatePostInput struct {
	UserID          uint
	Title           string
	Image           string // base64 data URI, optional
	Ingredients     []string
	Categories      []string
	Description     string
	Servings        string
	Instructions    []string
	PreparationTime string
	CookingTime     string
	VideoLink       string
}

// NewPostService creates a new PostService. notifier may be nil; real-time
// fan-out is then skipped.
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	mediaStore media.Store,
	notifier *notifications.Notifier,
) *PostService {
	return &PostService{
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		media:            mediaStore,
		notifier:         notifier,
	}
}

// validateCreatePost checks required fields in a fixed order and reports the
// first missing one. Callers rely on getting exactly one field name back.
func validateCreatePost(in CreatePostInput) error {
	checks := []struct {
		name    string
		missing bool
	}{
		{"title", strings.TrimSpace(in.Title) == ""},
		{"ingredients", len(in.Ingredients) == 0},
		{"categories", len(in.Categories) == 0},
		{"description", strings.TrimSpace(in.Description) == ""},
		{"servings", strings.TrimSpace(in.Servings) == ""},
		{"instructions", len(in.Instructions) == 0},
		{"preparation_time", strings.TrimSpace(in.PreparationTime) == ""},
		{"cooking_time", strings.TrimSpace(in.CookingTime) == ""},
	}
	for _, c := range checks {
		if c.missing {
			return models.NewValidationError(c.name + " is required")
		}
	}
	return nil
}

// CreatePost validates the payload, uploads the image (if any) and persists
// the post. The image goes to the media store BEFORE the row is written, so
// an upload failure leaves no half-created post behind.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validateCreatePost(in); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	var imageURL *string
	if in.Image != "" {
		data, contentType, err := media.DecodeDataURI(in.Image)
		if err != nil {
			return nil, models.NewValidationError("image payload is malformed")
		}
		url, err := s.media.Upload(ctx, data, contentType)
		if err != nil {
			return nil, models.NewDependencyError(err)
		}
		imageURL = &url
	}

	var videoLink *string
	if in.VideoLink != "" {
		videoLink = &in.VideoLink
	}

	post := &models.Post{
		UserID:          in.UserID,
		Title:           in.Title,
		Image:           imageURL,
		Ingredients:     in.Ingredients,
		Categories:      in.Categories,
		Description:     in.Description,
		Servings:        in.Servings,
		Instructions:    in.Instructions,
		PreparationTime: in.PreparationTime,
		CookingTime:     in.CookingTime,
		VideoLink:       videoLink,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post. Only the owner may delete; the stored image is
// released best-effort after the row is gone.
func (s *PostService) DeletePost(ctx context.Context, postID, actingUserID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != actingUserID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if post.Image != nil && s.media != nil {
		if err := s.media.Delete(ctx, *post.Image); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to release post image",
				slog.Uint64("post_id", uint64(postID)),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// ToggleLike flips the acting user's membership in the post's like set and
// returns the resulting liker IDs. Liking notifies the post owner (the owner
// liking their own post included); unliking stays silent.
func (s *PostService) ToggleLike(ctx context.Context, postID, actingUserID uint) ([]uint, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, actingUserID); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, actingUserID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, actingUserID, postID); err != nil {
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("unlike").Inc()
	} else {
		if err := s.postRepo.Like(ctx, actingUserID, postID); err != nil {
			return nil, err
		}
		observability.LikeToggles.WithLabelValues("like").Inc()
		s.notifyLike(ctx, actingUserID, post.UserID)
	}

	return s.postRepo.LikerIDs(ctx, postID)
}

// notifyLike records the like notification and fans it out over pub/sub.
// Both are best-effort: the like itself has already landed.
func (s *PostService) notifyLike(ctx context.Context, fromID, toID uint) {
	n := &models.Notification{
		FromID: fromID,
		ToID:   toID,
		Type:   models.NotificationTypeLike,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to persist like notification",
			slog.Uint64("from", uint64(fromID)),
			slog.Uint64("to", uint64(toID)),
			slog.String("error", err.Error()),
		)
		return
	}
	observability.NotificationsCreated.WithLabelValues(string(models.NotificationTypeLike)).Inc()

	if s.notifier == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	if err := s.notifier.PublishUser(ctx, toID, string(payload)); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish like notification",
			slog.Uint64("to", uint64(toID)),
			slog.String("error", err.Error()),
		)
	}
}

// CommentOnPost appends a comment and returns the freshly populated post.
func (s *PostService) CommentOnPost(ctx context.Context, postID, actingUserID uint, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("text is required")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, actingUserID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: actingUserID,
		Text:   text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.CommentsCreated.Inc()

	return s.postRepo.GetByID(ctx, postID)
}
