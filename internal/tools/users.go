package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/slack-go/slack"

	"github.com/developer-mesh/slack-mcp/pkg/auth"
	"github.com/developer-mesh/slack-mcp/pkg/models"
)

// ListUsersParams are the arguments for slack_list_users
type ListUsersParams struct {
	UserID string `json:"user_id,omitempty"`
}

// ListUsersResult is the envelope for slack_list_users
type ListUsersResult struct {
	OK    bool                 `json:"ok"`
	Users []models.UserSummary `json:"users,omitempty"`
	Error string               `json:"error,omitempty"`
}

func (h *Handler) listUsers(ctx context.Context, req *mcp.CallToolRequest, params *ListUsersParams) (*mcp.CallToolResult, *ListUsersResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindBot, params.UserID)
	if err != nil {
		h.observe("slack_list_users", statusNoCredential, start)
		return nil, nil, err
	}

	users, err := client.GetUsersContext(ctx)
	if err != nil {
		h.observe("slack_list_users", statusPlatformError, start)
		return nil, &ListUsersResult{Error: err.Error()}, nil
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, models.UserSummary{
			ID:    u.ID,
			Name:  u.RealName,
			Email: u.Profile.Email,
		})
	}

	h.observe("slack_list_users", statusOK, start)
	return nil, &ListUsersResult{OK: true, Users: summaries}, nil
}

// FindUserByEmailParams are the arguments for slack_find_user_by_email
type FindUserByEmailParams struct {
	Email  string `json:"email"`
	UserID string `json:"user_id,omitempty"`
}

// FindUserByEmailResult is the envelope for slack_find_user_by_email
type FindUserByEmailResult struct {
	OK    bool        `json:"ok"`
	User  *slack.User `json:"user,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) findUserByEmail(ctx context.Context, req *mcp.CallToolRequest, params *FindUserByEmailParams) (*mcp.CallToolResult, *FindUserByEmailResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindUser, params.UserID)
	if err != nil {
		h.observe("slack_find_user_by_email", statusNoCredential, start)
		return nil, nil, err
	}

	user, err := client.GetUserByEmailContext(ctx, params.Email)
	if err != nil {
		h.observe("slack_find_user_by_email", statusPlatformError, start)
		return nil, &FindUserByEmailResult{Error: err.Error()}, nil
	}

	h.observe("slack_find_user_by_email", statusOK, start)
	return nil, &FindUserByEmailResult{OK: true, User: user}, nil
}

// GetUserProfileParams are the arguments for slack_get_user_profile
type GetUserProfileParams struct {
	UserID string `json:"user_id,omitempty"`
}

// GetUserProfileResult is the envelope for slack_get_user_profile
type GetUserProfileResult struct {
	OK          bool               `json:"ok"`
	SlackUserID string             `json:"user_id,omitempty"`
	Profile     *slack.UserProfile `json:"profile,omitempty"`
	Error       string             `json:"error,omitempty"`
}

// getUserProfile is the only two-call capability: an auth check resolves
// the authenticated user's identity, then the profile is fetched by it.
func (h *Handler) getUserProfile(ctx context.Context, req *mcp.CallToolRequest, params *GetUserProfileParams) (*mcp.CallToolResult, *GetUserProfileResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindUser, params.UserID)
	if err != nil {
		h.observe("slack_get_user_profile", statusNoCredential, start)
		return nil, nil, err
	}

	authResp, err := client.AuthTestContext(ctx)
	if err != nil {
		h.observe("slack_get_user_profile", statusPlatformError, start)
		return nil, &GetUserProfileResult{Error: err.Error()}, nil
	}

	profile, err := client.GetUserProfileContext(ctx, &slack.GetUserProfileParameters{
		UserID: authResp.UserID,
	})
	if err != nil {
		h.observe("slack_get_user_profile", statusPlatformError, start)
		return nil, &GetUserProfileResult{Error: err.Error()}, nil
	}

	h.observe("slack_get_user_profile", statusOK, start)
	return nil, &GetUserProfileResult{OK: true, SlackUserID: authResp.UserID, Profile: profile}, nil
}
