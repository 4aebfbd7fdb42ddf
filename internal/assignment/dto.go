package assignment

import (
	"time"

	"github.com/grindhub/grindhub/pkg/response"
)

// AddAssignmentRequest represents the request to add an assignment
type AddAssignmentRequest struct {
	UserID         string    `json:"userid"`
	Name           string    `json:"assignmentname"`
	Module         string    `json:"assignmentmodule"`
	DueDate        time.Time `json:"assignmentduedate"`
	TimeDueSeconds int       `json:"assignmenttimeduedate"`
	TimeNeeded     int       `json:"timeneeded"`
}

// ListAssignmentsRequest represents the request for a user's assignments
type ListAssignmentsRequest struct {
	UserID string `json:"userid"`
}

// AddAssignmentResponse is the wire shape for a created assignment
type AddAssignmentResponse struct {
	response.Envelope
	Assignment *Assignment `json:"assignment"`
}

// ListAssignmentsResponse is the wire shape for a user's assignments
type ListAssignmentsResponse struct {
	response.Envelope
	Assignments []*Assignment `json:"assignments"`
}
