package notify

// Level grades the urgency of a notification.
type Level string

const (
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Notification is one outbound message, fanned out to every enabled channel.
type Notification struct {
	Level      Level          `json:"level"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Timestamp  string         `json:"timestamp"`
	DeviceName string         `json:"device_name,omitempty"`
	Recipients []string       `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
}
