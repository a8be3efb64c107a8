// Package auth implements per-call Slack credential resolution. A token is
// taken from the first usable source in a fixed trust order: the external
// token service (per-person credential store), then inbound request
// headers, then the static fallback configured at process start.
package auth

import (
	"context"
	"strings"

	"github.com/developer-mesh/slack-mcp/pkg/models"
	"github.com/developer-mesh/slack-mcp/pkg/observability"
)

// TokenKind selects between the two Slack credential classes.
type TokenKind string

const (
	// TokenKindBot is the service-wide bot credential
	TokenKindBot TokenKind = "bot"
	// TokenKindUser is a per-person user credential
	TokenKindUser TokenKind = "user"
)

const (
	// ProviderSlack is the provider name sent to the token service
	ProviderSlack = "slack"

	// BotTokenHeader and UserTokenHeader carry per-request tokens
	BotTokenHeader  = "X-Slack-Bot-Token"
	UserTokenHeader = "X-Slack-User-Token"

	// userTokenPrefix marks user-scoped (xoxp-) Slack tokens
	userTokenPrefix = "xoxp-"
)

// Resolution sources, used as metric labels.
const (
	SourceService  = "service"
	SourceHeader   = "header"
	SourceFallback = "fallback"
	SourceNone     = "none"
)

// TokenFetcher queries the external token service for a stored credential.
type TokenFetcher interface {
	Fetch(ctx context.Context, userID, provider string) (*models.TokenRecord, error)
}

// FallbackTokens holds the statically configured tokens, set once at
// process start. Empty values mean no fallback for that kind.
type FallbackTokens struct {
	Bot  string
	User string
}

// Resolver produces a usable Slack access token for a requested kind, or a
// CredentialError when every source is exhausted. A Resolver is immutable
// after construction and safe for concurrent use.
type Resolver struct {
	fetcher  TokenFetcher
	fallback FallbackTokens
	logger   observability.Logger
	metrics  observability.MetricsClient
}

// NewResolver creates a Resolver. fetcher may be nil when no token service
// is configured; service lookups are then skipped.
func NewResolver(fetcher TokenFetcher, fallback FallbackTokens, logger observability.Logger, metrics observability.MetricsClient) *Resolver {
	if logger == nil {
		logger = observability.NewNoopLogger()
	}
	if metrics == nil {
		metrics = observability.NewNoopMetricsClient()
	}
	return &Resolver{
		fetcher:  fetcher,
		fallback: fallback,
		logger:   logger,
		metrics:  metrics,
	}
}

// Resolve returns a token of the requested kind. userID is optional; when
// empty the service lookup is skipped. A failed service lookup is logged
// and resolution continues, so only exhaustion of every source fails.
func (r *Resolver) Resolve(ctx context.Context, kind TokenKind, userID string) (string, error) {
	if token := r.fromService(ctx, kind, userID); token != "" {
		r.recordResolution(kind, SourceService)
		return token, nil
	}

	if token := r.fromHeaders(ctx, kind); token != "" {
		r.recordResolution(kind, SourceHeader)
		return token, nil
	}

	if token := r.fromFallback(kind); token != "" {
		r.recordResolution(kind, SourceFallback)
		return token, nil
	}

	r.recordResolution(kind, SourceNone)
	return "", &CredentialError{Kind: kind}
}

func (r *Resolver) fromService(ctx context.Context, kind TokenKind, userID string) string {
	if userID == "" || r.fetcher == nil {
		return ""
	}

	record, err := r.fetcher.Fetch(ctx, userID, ProviderSlack)
	if err != nil {
		r.logger.Warn("could not fetch token from service", map[string]interface{}{
			"user_id": userID,
			"kind":    string(kind),
			"error":   err.Error(),
		})
		return ""
	}

	var token string
	if kind == TokenKindBot {
		token = record.BotAccessToken()
	} else {
		token = record.UserAccessToken()
	}
	if token == "" {
		return ""
	}

	// A user-scoped token must not serve a bot-level operation. Discard it
	// and let resolution continue to the next source.
	if kind == TokenKindBot && strings.HasPrefix(token, userTokenPrefix) {
		r.logger.Warn("token service returned a user token but a bot token is needed, using fallback", map[string]interface{}{
			"user_id":    userID,
			"token_hint": models.TokenHint(token),
		})
		return ""
	}

	if kind == TokenKindUser && strings.HasPrefix(token, userTokenPrefix) {
		r.logger.Debug("using user token from service for user-level operation", map[string]interface{}{
			"user_id": userID,
		})
	}

	return token
}

func (r *Resolver) fromHeaders(ctx context.Context, kind TokenKind) string {
	headers, ok := RequestHeaders(ctx)
	if !ok {
		return ""
	}

	name := UserTokenHeader
	if kind == TokenKindBot {
		name = BotTokenHeader
	}
	return HeaderValue(headers, name)
}

func (r *Resolver) fromFallback(kind TokenKind) string {
	if kind == TokenKindBot {
		return r.fallback.Bot
	}
	return r.fallback.User
}

func (r *Resolver) recordResolution(kind TokenKind, source string) {
	r.metrics.RecordCounter("credential_resolutions_total", 1, map[string]string{
		"kind":   string(kind),
		"source": source,
	})
}
