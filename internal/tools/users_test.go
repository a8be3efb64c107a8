package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(id, realName, email string) slack.User {
	return slack.User{
		ID:       id,
		RealName: realName,
		Profile:  slack.UserProfile{Email: email},
	}
}

func TestListUsers(t *testing.T) {
	t.Run("projects id, name and email", func(t *testing.T) {
		h := newTestHandler(&fakeSlack{users: []slack.User{
			user("U1", "Ada Lovelace", "ada@example.com"),
			user("U2", "Alan Turing", ""),
		}})

		_, result, err := h.listUsers(context.Background(), nil, &ListUsersParams{})

		require.NoError(t, err)
		assert.True(t, result.OK)
		require.Len(t, result.Users, 2)
		assert.Equal(t, "U1", result.Users[0].ID)
		assert.Equal(t, "Ada Lovelace", result.Users[0].Name)
		assert.Equal(t, "ada@example.com", result.Users[0].Email)
		assert.Empty(t, result.Users[1].Email)
	})

	t.Run("platform error", func(t *testing.T) {
		h := newTestHandler(&fakeSlack{usersErr: errors.New("invalid_auth")})

		_, result, err := h.listUsers(context.Background(), nil, &ListUsersParams{})

		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Equal(t, "invalid_auth", result.Error)
	})
}

func TestFindUserByEmail(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		found := user("U1", "Ada Lovelace", "ada@example.com")
		h := newTestHandler(&fakeSlack{userByEmail: &found})

		_, result, err := h.findUserByEmail(context.Background(), nil, &FindUserByEmailParams{
			Email: "ada@example.com",
		})

		require.NoError(t, err)
		assert.True(t, result.OK)
		require.NotNil(t, result.User)
		assert.Equal(t, "U1", result.User.ID)
	})

	t.Run("platform error", func(t *testing.T) {
		h := newTestHandler(&fakeSlack{userByEmailErr: errors.New("users_not_found")})

		_, result, err := h.findUserByEmail(context.Background(), nil, &FindUserByEmailParams{
			Email: "nobody@example.com",
		})

		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Equal(t, "users_not_found", result.Error)
	})
}

func TestGetUserProfile(t *testing.T) {
	t.Run("resolves identity then fetches profile", func(t *testing.T) {
		h := newTestHandler(&fakeSlack{
			authResp: &slack.AuthTestResponse{UserID: "U1"},
			profile:  &slack.UserProfile{RealName: "Ada Lovelace", Email: "ada@example.com"},
		})

		_, result, err := h.getUserProfile(context.Background(), nil, &GetUserProfileParams{})

		require.NoError(t, err)
		assert.True(t, result.OK)
		assert.Equal(t, "U1", result.SlackUserID)
		require.NotNil(t, result.Profile)
		assert.Equal(t, "Ada Lovelace", result.Profile.RealName)
	})

	t.Run("auth check failure", func(t *testing.T) {
		h := newTestHandler(&fakeSlack{authErr: errors.New("invalid_auth")})

		_, result, err := h.getUserProfile(context.Background(), nil, &GetUserProfileParams{})

		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Equal(t, "invalid_auth", result.Error)
	})

	t.Run("profile fetch failure", func(t *testing.T) {
		h := newTestHandler(&fakeSlack{
			authResp:   &slack.AuthTestResponse{UserID: "U1"},
			profileErr: errors.New("user_not_found"),
		})

		_, result, err := h.getUserProfile(context.Background(), nil, &GetUserProfileParams{})

		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Equal(t, "user_not_found", result.Error)
	})
}
