package repo

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/models/m_resource"
)

// ResourceRepo builds Spanner mutations for versioned resources.
// It returns *spanner.Mutation objects but never applies them.
type ResourceRepo struct{}

func NewResourceRepo() *ResourceRepo {
	return &ResourceRepo{}
}

// buildInsertValues constructs the values map used for insertion.
// It's unexported so tests in the same package can inspect the map.
func buildInsertValues(r *domain.Resource) (map[string]interface{}, error) {
	body, err := EncodeBody(r)
	if err != nil {
		return nil, err
	}
	var key *string
	if r.Product != nil && r.Product.Key != "" {
		k := r.Product.Key
		key = &k
	}
	return m_resource.BuildInsertMap(string(r.Kind), r.ID, r.Version, key, body,
		r.CreatedAt.UTC(), r.LastModifiedAt.UTC()), nil
}

func (r *ResourceRepo) InsertMut(res *domain.Resource) (*spanner.Mutation, error) {
	values, err := buildInsertValues(res)
	if err != nil {
		return nil, err
	}
	return m_resource.InsertMutation(values), nil
}

// UpdateMut rewrites the body and version. The caller must have checked the stored version
// inside the same transaction.
func (r *ResourceRepo) UpdateMut(res *domain.Resource) (*spanner.Mutation, error) {
	body, err := EncodeBody(res)
	if err != nil {
		return nil, err
	}
	return m_resource.UpdateMutation(string(res.Kind), res.ID,
		m_resource.BuildUpdateMap(res.Version, body, res.LastModifiedAt.UTC())), nil
}

// EncodeBody serializes the full resource as stored in the body column.
func EncodeBody(r *domain.Resource) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode %s %s: %w", r.Kind, r.ID, err)
	}
	return string(b), nil
}

// DecodeRow rebuilds a resource from its version and body columns.
// The version column is authoritative.
func DecodeRow(row *spanner.Row) (*domain.Resource, error) {
	var (
		version int64
		body    string
	)
	if err := row.Columns(&version, &body); err != nil {
		return nil, err
	}
	return DecodeBody(version, body)
}

func DecodeBody(version int64, body string) (*domain.Resource, error) {
	var r domain.Resource
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, fmt.Errorf("decode resource body: %w", err)
	}
	r.Version = version
	return &r, nil
}
