package realtime

// Wire event kinds carried over the websocket connection. Group chat and the
// assistant exchange share one physical connection but stay separate topics:
// assistant traffic never reaches the durable message log.
const (
	EventChatMessage    = "chat_message"
	EventAssistantReply = "assistant_reply"
	EventUserMessage    = "user_message"
)

// ChatMessageEvent mirrors a durably stored chat message to connected members
type ChatMessageEvent struct {
	Type      string `json:"type"`
	GroupID   string `json:"groupid"`
	MessageID string `json:"messageid"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
}

// AssistantReplyEvent carries one asynchronous assistant reply
type AssistantReplyEvent struct {
	Type    string `json:"type"`
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// UserMessageEvent is the inbound assistant prompt: free text plus the
// conversation currently visible to the user
type UserMessageEvent struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Context []ContextEntry `json:"context"`
}

// ContextEntry is one visible conversation line handed to the assistant
type ContextEntry struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}
