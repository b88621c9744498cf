package m_outbox

const (
	TableName = "outbox_events"

	ColEventID          = "event_id"
	ColEventType        = "event_type"
	ColAggregateKind    = "aggregate_kind"
	ColAggregateID      = "aggregate_id"
	ColAggregateVersion = "aggregate_version"
	ColPayload          = "payload"
	ColStatus           = "status"
	ColCreatedAt        = "created_at"
	ColProcessedAt      = "processed_at"
)
