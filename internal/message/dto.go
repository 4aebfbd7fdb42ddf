package message

import "github.com/grindhub/grindhub/pkg/response"

// SendMessageRequest represents the request to append a chat message
type SendMessageRequest struct {
	GroupID        string `json:"groupid"`
	UserID         string `json:"userid"`
	MessageContent string `json:"messagecontent"`
}

// ListMessagesRequest represents the request for a group's chat history
type ListMessagesRequest struct {
	GroupID string `json:"groupid"`
}

// SendMessageResponse is the wire shape for an appended message
type SendMessageResponse struct {
	response.Envelope
	NewMessage *Message `json:"newMessage"`
}

// ListMessagesResponse is the wire shape for a group's chat history
type ListMessagesResponse struct {
	response.Envelope
	Messages []*Message `json:"messages"`
}
