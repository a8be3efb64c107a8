// Package slackapi narrows the Slack SDK client to the calls the tool
// handlers make, so handlers can be tested against a fake implementation.
package slackapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/slack-go/slack"
)

// DefaultRequestTimeout bounds a single Slack Web API call.
const DefaultRequestTimeout = 30 * time.Second

const apiURL = "https://slack.com/api/"

// API is the subset of the Slack Web API used by the tool handlers. All
// methods are served by the SDK client except ScheduleMessageContext,
// which this package implements itself.
type API interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	ScheduleMessageContext(ctx context.Context, channelID, postAt, text string) (string, error)
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	GetUsersContext(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error)
	GetUserByEmailContext(ctx context.Context, email string) (*slack.User, error)
	GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
	CreateConversationContext(ctx context.Context, params slack.CreateConversationParams) (*slack.Channel, error)
	InviteUsersToConversationContext(ctx context.Context, channelID string, users ...string) (*slack.Channel, error)
	OpenConversationContext(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error)
	AddReactionContext(ctx context.Context, name string, item slack.ItemRef) error
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
	GetUserProfileContext(ctx context.Context, params *slack.GetUserProfileParameters) (*slack.UserProfile, error)
	GetConversationsForUserContext(ctx context.Context, params *slack.GetConversationsForUserParameters) ([]slack.Channel, string, error)
}

// Factory builds an API client bound to a resolved access token. A fresh
// client is built per tool call; the token is never retained elsewhere.
type Factory func(token string) API

// NewFactory returns the production factory. All clients share one HTTP
// client with a bounded request timeout.
func NewFactory(requestTimeout time.Duration) Factory {
	return NewFactoryWithAPIURL(requestTimeout, apiURL)
}

// NewFactoryWithAPIURL points clients at an alternate Slack API base URL.
// The base URL must end with a trailing slash.
func NewFactoryWithAPIURL(requestTimeout time.Duration, baseURL string) Factory {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	httpClient := &http.Client{Timeout: requestTimeout}
	return func(token string) API {
		return &client{
			Client:  slack.New(token, slack.OptionHTTPClient(httpClient), slack.OptionAPIURL(baseURL)),
			token:   token,
			baseURL: baseURL,
			http:    httpClient,
		}
	}
}

// client serves most of the API through the embedded SDK client and
// implements the calls whose SDK helpers drop response fields the
// handlers need.
type client struct {
	*slack.Client
	token   string
	baseURL string
	http    *http.Client
}

type scheduleMessageResponse struct {
	slack.SlackResponse
	ScheduledMessageID string `json:"scheduled_message_id"`
}

// ScheduleMessageContext posts to chat.scheduleMessage and returns the
// scheduled_message_id from the response. The SDK helper of the same name
// returns the message timestamp instead, which a scheduled send does not
// carry, and discards the id.
func (c *client) ScheduleMessageContext(ctx context.Context, channelID, postAt, text string) (string, error) {
	form := url.Values{
		"channel": {channelID},
		"post_at": {postAt},
		"text":    {text},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"chat.scheduleMessage", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body scheduleMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding chat.scheduleMessage response: %w", err)
	}
	if !body.Ok {
		return "", errors.New(body.Error)
	}
	return body.ScheduledMessageID, nil
}
