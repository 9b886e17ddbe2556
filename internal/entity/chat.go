package entity

// Chat scopes determine which connected players receive a message.
const (
	ScopeGlobal = "global"
	ScopeLobby  = "lobby"
	ScopeRoom   = "room"
)

const (
	// ChatHistoryLimit bounds each channel's retained history.
	ChatHistoryLimit = 80
	// ChatMessageLimit caps the visible length of a single message.
	ChatMessageLimit = 280
)

// ChatMessage is one accepted, sanitized chat line.
type ChatMessage struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// ChatChannel holds the bounded history for one scope. The global and lobby
// channels are process-wide singletons; room channels live and die with
// their room or match.
type ChatChannel struct {
	ID          string
	Scope       string
	DisplayName string
	History     []ChatMessage
}

func NewChatChannel(id, scope, displayName string) *ChatChannel {
	return &ChatChannel{
		ID:          id,
		Scope:       scope,
		DisplayName: displayName,
		History:     make([]ChatMessage, 0, ChatHistoryLimit),
	}
}

// Append - adds a message, evicting the oldest entries beyond the limit.
func (that *ChatChannel) Append(msg ChatMessage) {
	that.History = append(that.History, msg)
	if len(that.History) > ChatHistoryLimit {
		that.History = that.History[len(that.History)-ChatHistoryLimit:]
	}
}

// RecentHistory - copy of the retained history, oldest first.
func (that *ChatChannel) RecentHistory() []ChatMessage {
	history := make([]ChatMessage, len(that.History))
	copy(history, that.History)

	return history
}
