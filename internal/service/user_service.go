package service

import (
	"context"

	"savora/internal/media"
	"savora/internal/models"
	"savora/internal/observability"
	"savora/internal/repository"
)

// UserService owns the follow graph and profile reads/updates.
type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	media    media.Store
}

// UpdateProfileInput carries the editable profile fields. Nil pointers leave
// the current value untouched; image fields take base64 data URIs.
type UpdateProfileInput struct {
	FullName     *string
	Bio          *string
	Link         *string
	ProfileImage *string
	CoverImage   *string
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, mediaStore media.Store) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo, media: mediaStore}
}

// ToggleFollow flips whether actingUserID follows targetID. Returns true when
// the flip ended in a follow, false on unfollow.
func (s *UserService) ToggleFollow(ctx context.Context, actingUserID, targetID uint) (bool, error) {
	if actingUserID == targetID {
		return false, models.NewValidationError("You cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}

	following, err := s.userRepo.IsFollowing(ctx, actingUserID, targetID)
	if err != nil {
		return false, err
	}

	if following {
		if err := s.userRepo.Unfollow(ctx, actingUserID, targetID); err != nil {
			return false, err
		}
		observability.FollowToggles.WithLabelValues("unfollow").Inc()
		return false, nil
	}

	if err := s.userRepo.Follow(ctx, actingUserID, targetID); err != nil {
		return false, err
	}
	observability.FollowToggles.WithLabelValues("follow").Inc()
	return true, nil
}

// GetProfile returns the public profile for a username, with the follower,
// following and liked-post ID sets attached.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	return s.attachGraph(ctx, user)
}

// GetByID returns the profile for a user ID with the graph attached.
func (s *UserService) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachGraph(ctx, user)
}

func (s *UserService) attachGraph(ctx context.Context, user *models.User) (*models.User, error) {
	followers, err := s.userRepo.FollowerIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.userRepo.FollowingIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	liked, err := s.postRepo.LikedPostIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	user.Followers = followers
	user.Following = following
	user.LikedPosts = liked
	return user, nil
}

// UpdateProfile applies the given changes to the acting user's profile.
// Images are uploaded to the media store first; a failed upload aborts the
// update without touching the row.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Link != nil {
		user.Link = *in.Link
	}

	if in.ProfileImage != nil && *in.ProfileImage != "" {
		url, err := s.uploadImage(ctx, *in.ProfileImage)
		if err != nil {
			return nil, err
		}
		user.ProfileImage = &url
	}
	if in.CoverImage != nil && *in.CoverImage != "" {
		url, err := s.uploadImage(ctx, *in.CoverImage)
		if err != nil {
			return nil, err
		}
		user.CoverImage = &url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.attachGraph(ctx, user)
}

func (s *UserService) uploadImage(ctx context.Context, dataURI string) (string, error) {
	data, contentType, err := media.DecodeDataURI(dataURI)
	if err != nil {
		return "", models.NewValidationError("image payload is malformed")
	}
	url, err := s.media.Upload(ctx, data, contentType)
	if err != nil {
		return "", models.NewDependencyError(err)
	}
	return url, nil
}
