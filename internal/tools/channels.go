package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/slack-go/slack"

	"github.com/developer-mesh/slack-mcp/pkg/auth"
	"github.com/developer-mesh/slack-mcp/pkg/models"
)

const defaultConversationsLimit = 100

// ListChannelsParams are the arguments for slack_list_channels
type ListChannelsParams struct {
	UserID string `json:"user_id,omitempty"`
}

// ListChannelsResult is the envelope for slack_list_channels
type ListChannelsResult struct {
	OK       bool                    `json:"ok"`
	Channels []models.ChannelSummary `json:"channels,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

func (h *Handler) listChannels(ctx context.Context, req *mcp.CallToolRequest, params *ListChannelsParams) (*mcp.CallToolResult, *ListChannelsResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindBot, params.UserID)
	if err != nil {
		h.observe("slack_list_channels", statusNoCredential, start)
		return nil, nil, err
	}

	channels, _, err := client.GetConversationsContext(ctx, &slack.GetConversationsParameters{})
	if err != nil {
		h.observe("slack_list_channels", statusPlatformError, start)
		return nil, &ListChannelsResult{Error: err.Error()}, nil
	}

	summaries := make([]models.ChannelSummary, 0, len(channels))
	for _, ch := range channels {
		summaries = append(summaries, models.ChannelSummary{ID: ch.ID, Name: ch.Name})
	}

	h.observe("slack_list_channels", statusOK, start)
	return nil, &ListChannelsResult{OK: true, Channels: summaries}, nil
}

// CreateChannelParams are the arguments for slack_create_channel
type CreateChannelParams struct {
	Name         string `json:"name"`
	IsPrivate    bool   `json:"is_private,omitempty"`
	InviteUserID string `json:"invite_user_id,omitempty"`
	UserID       string `json:"user_id,omitempty"`
}

// CreateChannelResult is the envelope for slack_create_channel
type CreateChannelResult struct {
	OK      bool                   `json:"ok"`
	Channel *models.CreatedChannel `json:"channel,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

func (h *Handler) createChannel(ctx context.Context, req *mcp.CallToolRequest, params *CreateChannelParams) (*mcp.CallToolResult, *CreateChannelResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindBot, params.UserID)
	if err != nil {
		h.observe("slack_create_channel", statusNoCredential, start)
		return nil, nil, err
	}

	channel, err := client.CreateConversationContext(ctx, slack.CreateConversationParams{
		ChannelName: params.Name,
		IsPrivate:   params.IsPrivate,
	})
	if err != nil {
		h.observe("slack_create_channel", statusPlatformError, start)
		return nil, &CreateChannelResult{Error: err.Error()}, nil
	}

	result := &CreateChannelResult{
		OK: true,
		Channel: &models.CreatedChannel{
			ID:        channel.ID,
			Name:      channel.Name,
			IsPrivate: channel.IsPrivate,
			Created:   int64(channel.Created),
		},
	}

	// The channel exists at this point; a failed invite does not undo that,
	// so it is logged rather than failing the envelope.
	if params.InviteUserID != "" {
		if _, err := client.InviteUsersToConversationContext(ctx, channel.ID, params.InviteUserID); err != nil {
			h.logger.Warn("could not invite user to created channel", map[string]interface{}{
				"channel_id":     channel.ID,
				"invite_user_id": params.InviteUserID,
				"error":          err.Error(),
			})
		}
	}

	h.observe("slack_create_channel", statusOK, start)
	return nil, result, nil
}

// OpenDMParams are the arguments for slack_open_dm
type OpenDMParams struct {
	SlackUserID string `json:"slack_user_id"`
	UserID      string `json:"user_id,omitempty"`
}

// OpenDMResult is the envelope for slack_open_dm
type OpenDMResult struct {
	OK        bool   `json:"ok"`
	ChannelID string `json:"channel_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *Handler) openDM(ctx context.Context, req *mcp.CallToolRequest, params *OpenDMParams) (*mcp.CallToolResult, *OpenDMResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindUser, params.UserID)
	if err != nil {
		h.observe("slack_open_dm", statusNoCredential, start)
		return nil, nil, err
	}

	channel, _, _, err := client.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{params.SlackUserID},
	})
	if err != nil {
		h.observe("slack_open_dm", statusPlatformError, start)
		return nil, &OpenDMResult{Error: err.Error()}, nil
	}

	h.observe("slack_open_dm", statusOK, start)
	return nil, &OpenDMResult{OK: true, ChannelID: channel.ID}, nil
}

// ListUserConversationsParams are the arguments for slack_list_user_conversations
type ListUserConversationsParams struct {
	Limit  int    `json:"limit,omitempty"`
	UserID string `json:"user_id,omitempty"`
}

// ListUserConversationsResult is the envelope for slack_list_user_conversations
type ListUserConversationsResult struct {
	OK            bool                         `json:"ok"`
	Conversations []models.ConversationSummary `json:"conversations,omitempty"`
	Error         string                       `json:"error,omitempty"`
}

func (h *Handler) listUserConversations(ctx context.Context, req *mcp.CallToolRequest, params *ListUserConversationsParams) (*mcp.CallToolResult, *ListUserConversationsResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindUser, params.UserID)
	if err != nil {
		h.observe("slack_list_user_conversations", statusNoCredential, start)
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultConversationsLimit
	}

	channels, _, err := client.GetConversationsForUserContext(ctx, &slack.GetConversationsForUserParameters{
		Limit: limit,
	})
	if err != nil {
		h.observe("slack_list_user_conversations", statusPlatformError, start)
		return nil, &ListUserConversationsResult{Error: err.Error()}, nil
	}

	conversations := make([]models.ConversationSummary, 0, len(channels))
	for _, ch := range channels {
		name := ch.Name
		if name == "" {
			name = "DM"
		}
		conversations = append(conversations, models.ConversationSummary{
			ID:        ch.ID,
			Name:      name,
			IsChannel: ch.IsChannel,
			IsGroup:   ch.IsGroup,
			IsIM:      ch.IsIM,
			IsPrivate: ch.IsPrivate,
		})
	}

	h.observe("slack_list_user_conversations", statusOK, start)
	return nil, &ListUserConversationsResult{OK: true, Conversations: conversations}, nil
}
