package kafka

import (
	"strings"
	"time"

	"freight-broker-service/internal/service/loadevents"
)

// EventDTO is a data transfer object for loadevents.Event
type EventDTO struct {
	LoadID     int64     `json:"load_id"`
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToDomain converts EventDTO to loadevents.Event
func ToDomain(dto EventDTO) loadevents.Event {
	return loadevents.Event{
		LoadID:     dto.LoadID,
		Event:      strings.ToLower(strings.TrimSpace(dto.Event)),
		OccurredAt: dto.OccurredAt,
	}
}
