package group

// Group represents a collaboration space joinable through an invitation code
type Group struct {
	ID             string `json:"groupid"`
	Name           string `json:"groupname"`
	Description    string `json:"groupdescription"`
	InvitationCode string `json:"invitationcode"`
}

// Membership records that a user belongs to a group
type Membership struct {
	ID      string `json:"memberid"`
	UserID  string `json:"userid"`
	GroupID string `json:"groupid"`
}

// Member is a membership row joined with the user's display name,
// used when rendering a group's info panel
type Member struct {
	UserID   string `json:"userid"`
	Username string `json:"username"`
}

// Listing is the compact shape returned when listing a user's groups
type Listing struct {
	GroupID   string `json:"groupid"`
	GroupName string `json:"groupname"`
}
