package service

import (
	"context"
	"errors"
	"testing"

	"savora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollowRejectsSelfFollow(t *testing.T) {
	svc := NewUserService(noopUserRepo(), noopPostRepo(), noopMediaStore())

	_, err := svc.ToggleFollow(context.Background(), 5, 5)
	assertValidationError(t, err)
	assert.Contains(t, err.Error(), "yourself")
}

func TestToggleFollowFlipsEdge(t *testing.T) {
	following := false
	users := noopUserRepo()
	users.isFollowingFn = func(_ context.Context, followerID, followeeID uint) (bool, error) {
		assert.Equal(t, uint(5), followerID)
		assert.Equal(t, uint(9), followeeID)
		return following, nil
	}
	users.followFn = func(_ context.Context, _, _ uint) error { following = true; return nil }
	users.unfollowFn = func(_ context.Context, _, _ uint) error { following = false; return nil }

	svc := NewUserService(users, noopPostRepo(), noopMediaStore())

	nowFollowing, err := svc.ToggleFollow(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.True(t, nowFollowing)

	nowFollowing, err = svc.ToggleFollow(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.False(t, nowFollowing)
}

func TestToggleFollowUnknownTarget(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewUserService(users, noopPostRepo(), noopMediaStore())

	_, err := svc.ToggleFollow(context.Background(), 5, 9)
	assertNotFoundError(t, err)
}

func TestGetProfileAttachesGraph(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 7, Username: username}, nil
	}
	users.followerIDsFn = func(_ context.Context, _ uint) ([]uint, error) { return []uint{1, 2}, nil }
	users.followingIDsFn = func(_ context.Context, _ uint) ([]uint, error) { return []uint{3}, nil }

	posts := noopPostRepo()
	posts.likedPostIDsFn = func(_ context.Context, _ uint) ([]uint, error) { return []uint{4, 8}, nil }

	svc := NewUserService(users, posts, noopMediaStore())

	user, err := svc.GetProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, user.Followers)
	assert.Equal(t, []uint{3}, user.Following)
	assert.Equal(t, []uint{4, 8}, user.LikedPosts)
}

func TestGetProfileUnknownUsername(t *testing.T) {
	svc := NewUserService(noopUserRepo(), noopPostRepo(), noopMediaStore())

	_, err := svc.GetProfile(context.Background(), "ghost")
	assertNotFoundError(t, err)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	stored := &models.User{ID: 5, Username: "alice", FullName: "Alice", Bio: "old bio", Link: "https://old.example.com"}
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
		u := *stored
		return &u, nil
	}
	var updated *models.User
	users.updateFn = func(_ context.Context, u *models.User) error {
		updated = u
		return nil
	}

	svc := NewUserService(users, noopPostRepo(), noopMediaStore())

	bio := "new bio"
	_, err := svc.UpdateProfile(context.Background(), 5, UpdateProfileInput{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "Alice", updated.FullName)
	assert.Equal(t, "https://old.example.com", updated.Link)
}

func TestUpdateProfileUploadsImages(t *testing.T) {
	uploads := 0
	store := noopMediaStore()
	store.uploadFn = func(_ context.Context, _ []byte, contentType string) (string, error) {
		uploads++
		assert.Equal(t, "image/png", contentType)
		return "https://media.example.com/recipes/img.png", nil
	}

	users := noopUserRepo()
	var updated *models.User
	users.updateFn = func(_ context.Context, u *models.User) error {
		updated = u
		return nil
	}

	svc := NewUserService(users, noopPostRepo(), store)

	img := "data:image/png;base64,aGVsbG8="
	_, err := svc.UpdateProfile(context.Background(), 5, UpdateProfileInput{
		ProfileImage: &img,
		CoverImage:   &img,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, uploads)
	require.NotNil(t, updated.ProfileImage)
	require.NotNil(t, updated.CoverImage)
}

func TestUpdateProfileUploadFailureAborts(t *testing.T) {
	store := noopMediaStore()
	store.uploadFn = func(_ context.Context, _ []byte, _ string) (string, error) {
		return "", errors.New("bucket unavailable")
	}

	users := noopUserRepo()
	users.updateFn = func(_ context.Context, _ *models.User) error {
		t.Fatal("profile must not be saved when the upload fails")
		return nil
	}

	svc := NewUserService(users, noopPostRepo(), store)

	img := "data:image/png;base64,aGVsbG8="
	_, err := svc.UpdateProfile(context.Background(), 5, UpdateProfileInput{ProfileImage: &img})
	assertAppErrorCode(t, err, models.CodeDependency)
}

func TestUpdateProfileRejectsMalformedImage(t *testing.T) {
	svc := NewUserService(noopUserRepo(), noopPostRepo(), noopMediaStore())

	img := "data:image/png;base64,???"
	_, err := svc.UpdateProfile(context.Background(), 5, UpdateProfileInput{ProfileImage: &img})
	assertValidationError(t, err)
}
