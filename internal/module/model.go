package module

// Module represents a course module a user is enrolled in
type Module struct {
	ID         string `json:"moduleid"`
	Name       string `json:"modulename"`
	Title      string `json:"moduletitle"`
	Credits    int    `json:"credits"`
	Instructor string `json:"instructor"`
	UserID     string `json:"userid"`
}
