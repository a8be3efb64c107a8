package auth

import "fmt"

// ServiceError indicates the token service was unreachable, returned a
// non-success status, or produced an unparseable body. It is recovered
// during resolution and only surfaces when it is the terminal cause of
// credential exhaustion.
type ServiceError struct {
	Op     string
	Status int
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("token service %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("token service %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// CredentialError indicates no source yielded a usable token for the
// requested kind. The message enumerates the remaining configuration
// options so the caller can self-correct.
type CredentialError struct {
	Kind TokenKind
}

func (e *CredentialError) Error() string {
	if e.Kind == TokenKindBot {
		return "Slack bot token not provided. Options:\n" +
			"1) Provide user_id so the token service can be queried for a bot token\n" +
			"2) Send X-Slack-Bot-Token header\n" +
			"3) Set SLACK_BOT_TOKEN env var"
	}
	return "Slack user token not provided. Options:\n" +
		"1) Provide user_id parameter\n" +
		"2) Send X-Slack-User-Token header\n" +
		"3) Set SLACK_USER_TOKEN env var"
}
