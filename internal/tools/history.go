package tools

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/slack-go/slack"

	"github.com/developer-mesh/slack-mcp/pkg/auth"
	"github.com/developer-mesh/slack-mcp/pkg/models"
)

const (
	defaultHistoryLimit = 10
	defaultSearchLimit  = 50
)

// FetchHistoryParams are the arguments for slack_fetch_conversation_history
type FetchHistoryParams struct {
	ChannelID string `json:"channel_id"`
	Limit     int    `json:"limit,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

// FetchHistoryResult is the envelope for slack_fetch_conversation_history
type FetchHistoryResult struct {
	OK       bool                    `json:"ok"`
	Messages []models.MessageSummary `json:"messages,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

func (h *Handler) fetchConversationHistory(ctx context.Context, req *mcp.CallToolRequest, params *FetchHistoryParams) (*mcp.CallToolResult, *FetchHistoryResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindUser, params.UserID)
	if err != nil {
		h.observe("slack_fetch_conversation_history", statusNoCredential, start)
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	resp, err := client.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: params.ChannelID,
		Limit:     limit,
	})
	if err != nil {
		h.observe("slack_fetch_conversation_history", statusPlatformError, start)
		return nil, &FetchHistoryResult{Error: err.Error()}, nil
	}

	h.observe("slack_fetch_conversation_history", statusOK, start)
	return nil, &FetchHistoryResult{OK: true, Messages: summarizeMessages(resp.Messages)}, nil
}

// SearchMessagesParams are the arguments for slack_search_messages
type SearchMessagesParams struct {
	ChannelID string `json:"channel_id"`
	Keyword   string `json:"keyword"`
	Limit     int    `json:"limit,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

// SearchMessagesResult is the envelope for slack_search_messages
type SearchMessagesResult struct {
	OK      bool                    `json:"ok"`
	Matches []models.MessageSummary `json:"matches,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

func (h *Handler) searchMessages(ctx context.Context, req *mcp.CallToolRequest, params *SearchMessagesParams) (*mcp.CallToolResult, *SearchMessagesResult, error) {
	start := time.Now()

	client, err := h.clientFor(ctx, auth.TokenKindUser, params.UserID)
	if err != nil {
		h.observe("slack_search_messages", statusNoCredential, start)
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	resp, err := client.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: params.ChannelID,
		Limit:     limit,
	})
	if err != nil {
		h.observe("slack_search_messages", statusPlatformError, start)
		return nil, &SearchMessagesResult{Error: err.Error()}, nil
	}

	h.observe("slack_search_messages", statusOK, start)
	return nil, &SearchMessagesResult{
		OK:      true,
		Matches: filterMessages(resp.Messages, params.Keyword),
	}, nil
}

// filterMessages keeps messages whose text contains the keyword under
// case-insensitive comparison, preserving original order.
func filterMessages(messages []slack.Message, keyword string) []models.MessageSummary {
	needle := strings.ToLower(keyword)
	matches := make([]models.MessageSummary, 0, len(messages))
	for _, msg := range messages {
		if strings.Contains(strings.ToLower(msg.Text), needle) {
			matches = append(matches, summarizeMessage(msg))
		}
	}
	return matches
}

func summarizeMessages(messages []slack.Message) []models.MessageSummary {
	out := make([]models.MessageSummary, 0, len(messages))
	for _, msg := range messages {
		out = append(out, summarizeMessage(msg))
	}
	return out
}

func summarizeMessage(msg slack.Message) models.MessageSummary {
	return models.MessageSummary{
		Type:      msg.Type,
		User:      msg.User,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
	}
}
