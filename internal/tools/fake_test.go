package tools

import (
	"context"
	"errors"

	"github.com/slack-go/slack"

	"github.com/developer-mesh/slack-mcp/pkg/auth"
	"github.com/developer-mesh/slack-mcp/pkg/clients/slackapi"
)

// fakeSlack implements slackapi.API with canned responses per method.
type fakeSlack struct {
	postMessageTS  string
	postMessageErr error

	scheduleID         string
	scheduleErr        error
	lastSchedulePostAt string
	lastScheduleText   string

	historyResp *slack.GetConversationHistoryResponse
	historyErr  error

	users    []slack.User
	usersErr error

	userByEmail    *slack.User
	userByEmailErr error

	conversations    []slack.Channel
	conversationsErr error

	createdChannel *slack.Channel
	createErr      error
	invitedUsers   []string
	inviteErr      error

	openedChannel *slack.Channel
	openErr       error

	reactionErr   error
	addedReaction string
	reactionItem  slack.ItemRef

	authResp *slack.AuthTestResponse
	authErr  error

	profile    *slack.UserProfile
	profileErr error

	userConversations    []slack.Channel
	userConversationsErr error
	lastUserConvLimit    int
	lastHistoryLimit     int
}

func (f *fakeSlack) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	if f.postMessageErr != nil {
		return "", "", f.postMessageErr
	}
	return channelID, f.postMessageTS, nil
}

func (f *fakeSlack) ScheduleMessageContext(ctx context.Context, channelID, postAt, text string) (string, error) {
	f.lastSchedulePostAt = postAt
	f.lastScheduleText = text
	if f.scheduleErr != nil {
		return "", f.scheduleErr
	}
	return f.scheduleID, nil
}

func (f *fakeSlack) GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error) {
	f.lastHistoryLimit = params.Limit
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.historyResp, nil
}

func (f *fakeSlack) GetUsersContext(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return f.users, nil
}

func (f *fakeSlack) GetUserByEmailContext(ctx context.Context, email string) (*slack.User, error) {
	if f.userByEmailErr != nil {
		return nil, f.userByEmailErr
	}
	return f.userByEmail, nil
}

func (f *fakeSlack) GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error) {
	if f.conversationsErr != nil {
		return nil, "", f.conversationsErr
	}
	return f.conversations, "", nil
}

func (f *fakeSlack) CreateConversationContext(ctx context.Context, params slack.CreateConversationParams) (*slack.Channel, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createdChannel, nil
}

func (f *fakeSlack) InviteUsersToConversationContext(ctx context.Context, channelID string, users ...string) (*slack.Channel, error) {
	f.invitedUsers = append(f.invitedUsers, users...)
	if f.inviteErr != nil {
		return nil, f.inviteErr
	}
	return f.createdChannel, nil
}

func (f *fakeSlack) OpenConversationContext(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error) {
	if f.openErr != nil {
		return nil, false, false, f.openErr
	}
	return f.openedChannel, false, false, nil
}

func (f *fakeSlack) AddReactionContext(ctx context.Context, name string, item slack.ItemRef) error {
	f.addedReaction = name
	f.reactionItem = item
	return f.reactionErr
}

func (f *fakeSlack) AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.authResp, nil
}

func (f *fakeSlack) GetUserProfileContext(ctx context.Context, params *slack.GetUserProfileParameters) (*slack.UserProfile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeSlack) GetConversationsForUserContext(ctx context.Context, params *slack.GetConversationsForUserParameters) ([]slack.Channel, string, error) {
	f.lastUserConvLimit = params.Limit
	if f.userConversationsErr != nil {
		return nil, "", f.userConversationsErr
	}
	return f.userConversations, "", nil
}

var errPlatform = errors.New("channel_not_found")

// newTestHandler wires a handler whose resolver always succeeds through
// fallback tokens and whose factory returns the given fake.
func newTestHandler(fake *fakeSlack) *Handler {
	resolver := auth.NewResolver(nil, auth.FallbackTokens{
		Bot:  "xoxb-test",
		User: "xoxp-test",
	}, nil, nil)
	factory := slackapi.Factory(func(token string) slackapi.API { return fake })
	return NewHandler(resolver, factory, nil, nil)
}

// newBareHandler wires a handler with no credential sources at all.
func newBareHandler(fake *fakeSlack) *Handler {
	resolver := auth.NewResolver(nil, auth.FallbackTokens{}, nil, nil)
	factory := slackapi.Factory(func(token string) slackapi.API { return fake })
	return NewHandler(resolver, factory, nil, nil)
}

func message(text, ts string) slack.Message {
	msg := slack.Message{}
	msg.Text = text
	msg.Timestamp = ts
	return msg
}
