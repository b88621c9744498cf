package m_resource

const (
	TableName = "resources"

	// Primary key is (kind, resource_id).
	ColKind       = "kind"
	ColResourceID = "resource_id"

	ColVersion    = "version"
	ColProductKey = "product_key"
	ColBody       = "body"
	ColCreatedAt  = "created_at"
	ColUpdatedAt  = "updated_at"
)

// ReadColumns is the column list used to load a resource.
var ReadColumns = []string{ColVersion, ColBody}
