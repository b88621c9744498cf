package m_resource

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Key addresses one resource row.
func Key(kind, id string) spanner.Key {
	return spanner.Key{kind, id}
}

// InsertMutation builds a spanner.Insert mutation for a resource using a map of values.
// expected keys are the column names declared in fields.go
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation. The key columns come first, then values.
func UpdateMutation(kind, id string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColKind, ColResourceID}
	vals := []interface{}{kind, id}
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Update(TableName, cols, vals)
}

// BuildInsertMap prepares the canonical fields for insertion.
// productKey is nil for carts, orders and products without a key.
func BuildInsertMap(kind, id string, version int64, productKey *string, body string, createdAt, updatedAt time.Time) map[string]interface{} {
	m := map[string]interface{}{
		ColKind:       kind,
		ColResourceID: id,
		ColVersion:    version,
		ColBody:       body,
		ColCreatedAt:  createdAt,
		ColUpdatedAt:  updatedAt,
	}
	if productKey != nil {
		m[ColProductKey] = *productKey
	} else {
		m[ColProductKey] = nil
	}
	return m
}

// BuildUpdateMap prepares the fields rewritten by every successful mutation.
func BuildUpdateMap(version int64, body string, updatedAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColVersion:   version,
		ColBody:      body,
		ColUpdatedAt: updatedAt,
	}
}
