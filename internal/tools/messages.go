package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/slack-go/slack"

	"github.com/developer-mesh/slack-mcp/pkg/auth"
)

// SendMessageParams are the arguments for slack_send_message
type SendMessageParams struct {
	ChannelID string `json:"channel_id"`
	Text      string `json:"text"`
	UserID    string `json:"user_id,omitempty"`
}

// SendMessageResult is the envelope for slack_send_message
type SendMessageResult struct {
	OK        bool   `json:"ok"`
	MessageTS string `json:"message_ts,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *Handler) sendMessage(ctx context.Context, req *mcp.CallToolRequest, params *SendMessageParams) (*mcp.CallToolResult, *SendMessageResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindBot, params.UserID)
	if err != nil {
		h.observe("slack_send_message", statusNoCredential, start)
		return nil, nil, err
	}

	_, ts, err := client.PostMessageContext(ctx, params.ChannelID, slack.MsgOptionText(params.Text, false))
	if err != nil {
		h.observe("slack_send_message", statusPlatformError, start)
		return nil, &SendMessageResult{Error: err.Error()}, nil
	}

	h.observe("slack_send_message", statusOK, start)
	return nil, &SendMessageResult{OK: true, MessageTS: ts}, nil
}

// StandupParams are the arguments for slack_standup
type StandupParams struct {
	UserName    string `json:"user_name"`
	ChannelID   string `json:"channel_id"`
	StandupText string `json:"standup_text"`
	UserID      string `json:"user_id,omitempty"`
}

// StandupResult is the envelope for slack_standup
type StandupResult struct {
	OK        bool   `json:"ok"`
	MessageTS string `json:"message_ts,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *Handler) standup(ctx context.Context, req *mcp.CallToolRequest, params *StandupParams) (*mcp.CallToolResult, *StandupResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindBot, params.UserID)
	if err != nil {
		h.observe("slack_standup", statusNoCredential, start)
		return nil, nil, err
	}

	message := fmt.Sprintf("👋 Hi %s, starting your daily standup!\n%s", params.UserName, params.StandupText)
	_, ts, err := client.PostMessageContext(ctx, params.ChannelID, slack.MsgOptionText(message, false))
	if err != nil {
		h.observe("slack_standup", statusPlatformError, start)
		return nil, &StandupResult{Error: err.Error()}, nil
	}

	h.observe("slack_standup", statusOK, start)
	return nil, &StandupResult{OK: true, MessageTS: ts, Message: message}, nil
}

// ScheduleMessageParams are the arguments for slack_schedule_message
type ScheduleMessageParams struct {
	ChannelID string `json:"channel_id"`
	Text      string `json:"text"`
	PostAt    string `json:"post_at"`
	UserID    string `json:"user_id,omitempty"`
}

// ScheduleMessageResult is the envelope for slack_schedule_message
type ScheduleMessageResult struct {
	OK                 bool   `json:"ok"`
	ScheduledMessageID string `json:"scheduled_message_id,omitempty"`
	Error              string `json:"error,omitempty"`
}

func (h *Handler) scheduleMessage(ctx context.Context, req *mcp.CallToolRequest, params *ScheduleMessageParams) (*mcp.CallToolResult, *ScheduleMessageResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindBot, params.UserID)
	if err != nil {
		h.observe("slack_schedule_message", statusNoCredential, start)
		return nil, nil, err
	}

	scheduledID, err := client.ScheduleMessageContext(ctx, params.ChannelID, params.PostAt, params.Text)
	if err != nil {
		h.observe("slack_schedule_message", statusPlatformError, start)
		return nil, &ScheduleMessageResult{Error: err.Error()}, nil
	}

	h.observe("slack_schedule_message", statusOK, start)
	return nil, &ScheduleMessageResult{OK: true, ScheduledMessageID: scheduledID}, nil
}

// AddReactionParams are the arguments for slack_add_reaction
type AddReactionParams struct {
	ChannelID string `json:"channel_id"`
	Timestamp string `json:"timestamp"`
	Emoji     string `json:"emoji"`
	UserID    string `json:"user_id,omitempty"`
}

// AddReactionResult is the envelope for slack_add_reaction
type AddReactionResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) addReaction(ctx context.Context, req *mcp.CallToolRequest, params *AddReactionParams) (*mcp.CallToolResult, *AddReactionResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindBot, params.UserID)
	if err != nil {
		h.observe("slack_add_reaction", statusNoCredential, start)
		return nil, nil, err
	}

	ref := slack.NewRefToMessage(params.ChannelID, params.Timestamp)
	if err := client.AddReactionContext(ctx, params.Emoji, ref); err != nil {
		h.observe("slack_add_reaction", statusPlatformError, start)
		return nil, &AddReactionResult{Error: err.Error()}, nil
	}

	h.observe("slack_add_reaction", statusOK, start)
	return nil, &AddReactionResult{OK: true}, nil
}
