package m_customer

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation fails with AlreadyExists when the email is taken.
func InsertMutation(emailKey, customerID, email, firstName, lastName string, passwordHash []byte, createdAt time.Time) *spanner.Mutation {
	return spanner.Insert(TableName,
		[]string{ColEmailKey, ColCustomerID, ColEmail, ColFirstName, ColLastName, ColPasswordHash, ColCreatedAt},
		[]interface{}{emailKey, customerID, email, firstName, lastName, passwordHash, createdAt},
	)
}
