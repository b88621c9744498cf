package ordernum

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-sequencer/internal/pkg/clock"
)

func TestUUIDNumberer_UniqueUnderConcurrency(t *testing.T) {
	n := NewUUIDNumberer(DefaultPrefix)

	const workers, perWorker = 8, 250
	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				num, err := n.Next(context.Background())
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				seen[num] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	for num := range seen {
		assert.True(t, strings.HasPrefix(num, "ORD-"))
		assert.Len(t, num, len("ORD-")+32)
		break
	}
}

func TestUUIDNumberer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewUUIDNumberer("X-").Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCounterNumberer_Increments(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	c := NewCounterNumberer("ORD-", clk)

	first, err := c.Next(context.Background())
	require.NoError(t, err)
	second, err := c.Next(context.Background())
	require.NoError(t, err)

	base := clk.Now().UnixMilli()
	assert.Equal(t, "ORD-"+strconv.FormatInt(base, 10)+"-1", first)
	assert.Equal(t, "ORD-"+strconv.FormatInt(base, 10)+"-2", second)
}

