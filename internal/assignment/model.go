package assignment

import "time"

// Assignment represents a tracked piece of work for a user
type Assignment struct {
	ID             string    `json:"assignmentid"`
	Name           string    `json:"assignmentname"`
	Module         string    `json:"assignmentmodule"`
	Percentage     int       `json:"assignmentpercentage"`
	DueDate        time.Time `json:"assignmentduedate"`
	TimeDueSeconds int       `json:"assignmenttimeduedate"`
	TimeNeeded     int       `json:"timeneeded"`
	UserID         string    `json:"userid"`
}
