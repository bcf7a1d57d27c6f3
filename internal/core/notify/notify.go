// Package notify defines the status notifications the demo host shows as
// toasts.
package notify

import "time"

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
}
