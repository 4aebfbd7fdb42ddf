package notification

// Preferences holds a user's notification toggles
type Preferences struct {
	UserID              string `json:"userid"`
	Notification        bool   `json:"notification"`
	TaskNotification    bool   `json:"tasknotification"`
	ClassNotification   bool   `json:"classnotification"`
	GroupNotification   bool   `json:"groupnotification"`
	PrivateNotification bool   `json:"privatenotification"`
}

// fieldColumns whitelists the client-facing preference names against their
// database columns, so a request can never steer the update elsewhere
var fieldColumns = map[string]string{
	"notifications":   "notification",
	"taskDeadline":    "tasknotification",
	"lectureClass":    "classnotification",
	"groupMessages":   "groupnotification",
	"privateMessages": "privatenotification",
}
