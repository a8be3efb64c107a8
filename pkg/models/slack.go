package models

// UserSummary is the trimmed user view returned by the list-users tool.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChannelSummary is the trimmed channel view returned by the list-channels tool.
type ChannelSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreatedChannel describes a channel created by the create-channel tool.
type CreatedChannel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPrivate bool   `json:"is_private"`
	Created   int64  `json:"created"`
}

// ConversationSummary is the trimmed conversation view returned by the
// list-user-conversations tool. Unnamed conversations (DMs) report "DM".
type ConversationSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsChannel bool   `json:"is_channel"`
	IsGroup   bool   `json:"is_group"`
	IsIM      bool   `json:"is_im"`
	IsPrivate bool   `json:"is_private"`
}

// MessageSummary is the message view returned by the history and search tools.
type MessageSummary struct {
	Type      string `json:"type,omitempty"`
	User      string `json:"user,omitempty"`
	Text      string `json:"text"`
	Timestamp string `json:"ts"`
}
