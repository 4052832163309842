package loadevents

import "time"

// Event names accepted from the load events topic.
const (
	EventLoadPosted = "load_posted"
	EventTruckFreed = "truck_freed"
)

// Event is a single load event published by the surrounding platform.
type Event struct {
	LoadID     int64     `json:"load_id"`
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
}
