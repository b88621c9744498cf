package m_customer

const (
	TableName = "customers"

	// ColEmailKey is the lower-cased email; it is the primary key.
	ColEmailKey     = "email_key"
	ColCustomerID   = "customer_id"
	ColEmail        = "email"
	ColFirstName    = "first_name"
	ColLastName     = "last_name"
	ColPasswordHash = "password_hash"
	ColCreatedAt    = "created_at"
)

var ReadColumns = []string{ColCustomerID, ColEmail, ColFirstName, ColLastName, ColPasswordHash}
