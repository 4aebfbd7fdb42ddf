package class

import "time"

// Class represents a scheduled lecture, tutorial, or lab for a user
type Class struct {
	ID           string    `json:"classid"`
	UserID       string    `json:"userid"`
	ModuleName   string    `json:"modulename"`
	Type         string    `json:"classtype"`
	Location     string    `json:"classlocation"`
	StartDate    time.Time `json:"startdate"`
	StartSeconds int       `json:"starttime"`
	EndDate      time.Time `json:"enddate"`
	EndSeconds   int       `json:"endtime"`
}
