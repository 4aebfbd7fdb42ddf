package group

import "github.com/grindhub/grindhub/pkg/response"

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	GroupName        string `json:"groupname"`
	GroupDescription string `json:"groupdescription"`
}

// JoinGroupRequest represents the request to join a group via invitation code
type JoinGroupRequest struct {
	InvitationCode string `json:"invitationcode"`
	UserID         string `json:"userid"`
}

// ListGroupsRequest represents the request to list a user's groups
type ListGroupsRequest struct {
	UserID string `json:"userid"`
}

// SummaryRequest represents the request for a group's info panel
type SummaryRequest struct {
	GroupID string `json:"groupid"`
}

// CreateGroupResponse is the wire shape for a created group
type CreateGroupResponse struct {
	response.Envelope
	Group *Group `json:"group"`
}

// JoinGroupResponse is the wire shape for a successful join
type JoinGroupResponse struct {
	response.Envelope
	Membership *Membership `json:"membership"`
}

// ListGroupsResponse is the wire shape for a user's group list
type ListGroupsResponse struct {
	response.Envelope
	Groups []*Listing `json:"groups"`
}

// SummaryResponse is the wire shape for a group's info panel
type SummaryResponse struct {
	response.Envelope
	GroupName        string    `json:"groupname"`
	GroupDescription string    `json:"groupdescription"`
	InvitationCode   string    `json:"invitationcode"`
	Members          []*Member `json:"members"`
}
