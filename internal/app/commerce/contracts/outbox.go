package contracts

import "time"

// OutboxEvent is a resource event enriched for persistence in the transactional outbox.
type OutboxEvent struct {
	EventID          string
	EventType        string
	AggregateKind    string
	AggregateID      string
	AggregateVersion int64
	PayloadJSON      string
	CreatedAtUTC     time.Time
}
