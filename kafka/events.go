package kafka

import "time"

// Topic and event type constants
const (
	TopicRotationCompleted = "boycott.rotation.completed"

	EventTypeRotationCompleted = "rotation.completed"
)

// RotationCompletedEvent announces that a weekly rotation finished: which
// week was rotated and which products now hold boycotted status.
type RotationCompletedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	WeekID    string    `json:"week_id"`
	WinnerIDs []string  `json:"winner_ids"`
	Timestamp time.Time `json:"timestamp"`
}
