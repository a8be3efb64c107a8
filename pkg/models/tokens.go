// Package models contains the data types shared between the credential
// resolver, the token service client, and the tool handlers.
package models

// TokenRecord is the normalized result of a token service query. The
// service may return the bot token at the top level or nested inside the
// raw OAuth payload; BotAccessToken encodes the lookup order.
type TokenRecord struct {
	AccessToken string        `json:"access_token"`
	BotToken    string        `json:"bot_token"`
	Raw         *RawTokenData `json:"raw,omitempty"`
}

// RawTokenData mirrors the raw OAuth exchange payload stored by the token
// service alongside the normalized fields.
type RawTokenData struct {
	BotToken   string      `json:"bot_token"`
	AuthedUser *AuthedUser `json:"authed_user,omitempty"`
}

// AuthedUser is the authed_user sub-structure of a raw OAuth payload.
type AuthedUser struct {
	AccessToken string `json:"access_token"`
}

// BotAccessToken returns the best token for bot-level operations:
// bot_token, then raw.bot_token, then raw.authed_user.access_token, and
// finally the generic access_token. Empty when the record carries no token.
func (r *TokenRecord) BotAccessToken() string {
	if r == nil {
		return ""
	}
	if r.BotToken != "" {
		return r.BotToken
	}
	if r.Raw != nil {
		if r.Raw.BotToken != "" {
			return r.Raw.BotToken
		}
		if r.Raw.AuthedUser != nil && r.Raw.AuthedUser.AccessToken != "" {
			return r.Raw.AuthedUser.AccessToken
		}
	}
	return r.AccessToken
}

// UserAccessToken returns the token for user-level operations.
func (r *TokenRecord) UserAccessToken() string {
	if r == nil {
		return ""
	}
	return r.AccessToken
}

// TokenHint returns a loggable identifier for a token without exposing it.
func TokenHint(token string) string {
	if len(token) < 4 {
		return ""
	}
	return "..." + token[len(token)-4:]
}
