package committer

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestPlan_IgnoresNil(t *testing.T) {
	p := NewPlan()
	assert.True(t, p.IsEmpty())

	p.Add(nil, spanner.Insert("t", []string{"a"}, []interface{}{1}), nil)
	p.Add(spanner.Delete("t", spanner.Key{1}))

	assert.False(t, p.IsEmpty())
	assert.Equal(t, 2, p.Len())
	assert.Len(t, p.Mutations(), 2)
}

func TestAdapter_NilClient(t *testing.T) {
	a := NewAdapter(nil)

	assert.NoError(t, a.Apply(context.Background(), NewPlan()), "empty plans never touch the client")

	err := a.Apply(context.Background(), NewPlan().Add(spanner.Delete("t", spanner.Key{1})))
	assert.Error(t, err)
}
