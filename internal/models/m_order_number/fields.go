package m_order_number

import (
	"time"

	"cloud.google.com/go/spanner"
)

const (
	TableName = "order_numbers"

	ColOrderNumber = "order_number"
	ColOrderID     = "order_id"
	ColCreatedAt   = "created_at"
)

// InsertMutation reserves an order number; a duplicate fails the whole commit with AlreadyExists.
func InsertMutation(orderNumber, orderID string, createdAt time.Time) *spanner.Mutation {
	return spanner.Insert(TableName,
		[]string{ColOrderNumber, ColOrderID, ColCreatedAt},
		[]interface{}{orderNumber, orderID, createdAt},
	)
}
