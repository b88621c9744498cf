package m_outbox

import (
	"time"

	"cloud.google.com/go/spanner"
)

// StatusPending marks rows not yet picked up by a relay.
const StatusPending = "pending"

// BuildInsertMap constructs a map with fields for outbox insertion.
func BuildInsertMap(eventID, eventType, aggregateKind, aggregateID string, aggregateVersion int64, payload string, createdAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColEventID:          eventID,
		ColEventType:        eventType,
		ColAggregateKind:    aggregateKind,
		ColAggregateID:      aggregateID,
		ColAggregateVersion: aggregateVersion,
		ColPayload:          payload,
		ColStatus:           StatusPending,
		ColCreatedAt:        createdAt,
		ColProcessedAt:      nil,
	}
}

// InsertMutation constructs a mutation for the outbox table.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for c, v := range values {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}
