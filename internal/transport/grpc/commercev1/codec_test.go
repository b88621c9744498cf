package commercev1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
)

func TestCodec_ProtoMessages(t *testing.T) {
	c := jsonCodec{}
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	data, err := c.Marshal(timestamppb.New(at))
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-03-04T05:06:07Z"`, string(data))

	var got timestamppb.Timestamp
	require.NoError(t, c.Unmarshal(data, &got))
	assert.True(t, at.Equal(got.AsTime()))
}

func TestCodec_PlainMessages(t *testing.T) {
	c := jsonCodec{}

	data, err := c.Marshal(&CreateOrderRequest{CartID: "c1", CartVersion: 2, OrderNumber: "ORD-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cartId":"c1","cartVersion":2,"orderNumber":"ORD-1"}`, string(data))

	var req MutateResourceRequest
	require.NoError(t, c.Unmarshal([]byte(`{"kind":"cart","id":"c1","version":3,"actions":[]}`), &req))
	assert.Equal(t, int64(3), req.Version)
	assert.Equal(t, string(domain.KindCart), req.Kind)
	assert.Equal(t, CodecName, c.Name())
}
