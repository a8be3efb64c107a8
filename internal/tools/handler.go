// Package tools registers the Slack capabilities as MCP tools and
// implements their handlers. Every handler follows the same template:
// resolve a credential of the kind the capability requires, build a Slack
// client from it, make one platform call, and reshape the response into a
// uniform ok/error envelope. Platform failures stay in the envelope;
// credential failures are the only errors raised to the MCP layer.
package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/developer-mesh/slack-mcp/pkg/auth"
	"github.com/developer-mesh/slack-mcp/pkg/clients/slackapi"
	"github.com/developer-mesh/slack-mcp/pkg/observability"
)

const (
	statusOK            = "ok"
	statusPlatformError = "platform_error"
	statusNoCredential  = "no_credential"
)

// Handler holds the dependencies shared by all tool handlers. It is
// immutable after construction and safe for concurrent invocations; each
// call builds its own Slack client from its own resolved token.
type Handler struct {
	resolver *auth.Resolver
	slack    slackapi.Factory
	logger   observability.Logger
	metrics  observability.MetricsClient
}

// NewHandler creates a tool handler set
func NewHandler(resolver *auth.Resolver, factory slackapi.Factory, logger observability.Logger, metrics observability.MetricsClient) *Handler {
	if logger == nil {
		logger = observability.NewNoopLogger()
	}
	if metrics == nil {
		metrics = observability.NewNoopMetricsClient()
	}
	return &Handler{
		resolver: resolver,
		slack:    factory,
		logger:   logger,
		metrics:  metrics,
	}
}

// Register adds every Slack tool to the MCP server
func (h *Handler) Register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_send_message",
		Description: "Send a message to a Slack channel.",
	}, h.sendMessage)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_standup",
		Description: "Post a standup update to a Slack channel.",
	}, h.standup)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_fetch_conversation_history",
		Description: "Fetch the latest messages from a channel as the authenticated user.",
	}, h.fetchConversationHistory)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_list_users",
		Description: "List all users in the workspace.",
	}, h.listUsers)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_find_user_by_email",
		Description: "Find a user by email.",
	}, h.findUserByEmail)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_list_channels",
		Description: "List all channels in the workspace.",
	}, h.listChannels)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_schedule_message",
		Description: "Schedule a message to be sent later (post_at is a Unix timestamp).",
	}, h.scheduleMessage)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_create_channel",
		Description: "Create a new Slack channel.",
	}, h.createChannel)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_open_dm",
		Description: "Open a direct message channel with a user as the authenticated user.",
	}, h.openDM)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_add_reaction",
		Description: "Add a reaction (emoji) to a message.",
	}, h.addReaction)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_search_messages",
		Description: "Search messages by keyword as the authenticated user.",
	}, h.searchMessages)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_get_user_profile",
		Description: "Get the authenticated user's own Slack profile.",
	}, h.getUserProfile)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_list_user_conversations",
		Description: "List all conversations the authenticated user is part of (channels, DMs, etc).",
	}, h.listUserConversations)
}

// clientFor resolves a credential of the requested kind and builds a Slack
// client from it. A resolution failure is the caller's error to raise.
func (h *Handler) clientFor(ctx context.Context, kind auth.TokenKind, userID string) (slackapi.API, error) {
	token, err := h.resolver.Resolve(ctx, kind, userID)
	if err != nil {
		return nil, err
	}
	return h.slack(token), nil
}

// observe records per-tool invocation metrics
func (h *Handler) observe(tool, status string, start time.Time) {
	h.metrics.RecordCounter("tool_invocations_total", 1, map[string]string{
		"tool":   tool,
		"status": status,
	})
	h.metrics.RecordHistogram("tool_duration_seconds", time.Since(start).Seconds(), map[string]string{
		"tool": tool,
	})
}
