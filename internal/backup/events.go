package backup

// EventType defines the type of scheduler notification
type EventType string

const (
	EventStarted  EventType = "backup_started"
	EventFinished EventType = "backup_finished"
	EventFailed   EventType = "backup_failed"
)

// Event is a scheduler notification. Exactly one Finished or Failed
// event follows every Started event.
type Event struct {
	Type EventType `json:"type"`

	// Path is the new backup file, set on Finished
	Path string `json:"path,omitempty"`

	// Pruned lists backup files removed after a successful copy
	Pruned []string `json:"pruned,omitempty"`

	// Message carries the error text on Failed
	Message string `json:"message,omitempty"`
}
