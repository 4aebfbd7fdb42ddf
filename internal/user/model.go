package user

// User represents an account in the system. The password hash never leaves
// the server.
type User struct {
	ID       string `json:"userid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"-"`

	// Notification preference flags
	Notification        bool `json:"notification"`
	TaskNotification    bool `json:"tasknotification"`
	ClassNotification   bool `json:"classnotification"`
	GroupNotification   bool `json:"groupnotification"`
	PrivateNotification bool `json:"privatenotification"`
}
