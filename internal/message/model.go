package message

import "time"

// Message is one immutable entry in a group's chat log.
//
// Ordering within a group is (SentDate, SentSeconds, ID) ascending; the id
// tie-break keeps the order total when two messages land on the same second.
type Message struct {
	ID          string    `json:"messageid"`
	GroupID     string    `json:"groupid"`
	UserID      string    `json:"userid"`
	Content     string    `json:"messagecontent"`
	SentDate    time.Time `json:"datesent"`
	SentSeconds int       `json:"timesent"`

	// Populated from JOIN
	Username string `json:"username,omitempty"`
}
