package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkorzen/draftpipe/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("spaces out requests to the same domain", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewDomainLimiter(50) // 20ms between requests

		start := time.Now()
		for i := 0; i < 3; i++ {
			require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		}
		// First token is free; two more at 20ms apiece.
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("does not throttle across domains", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewDomainLimiter(1) // 1s between requests per domain

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))
		require.NoError(t, limiter.Wait(context.Background(), "b.example.com"))
		require.NoError(t, limiter.Wait(context.Background(), "c.example.com"))
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("respects context cancellation while waiting", func(t *testing.T) {
		t.Parallel()

		limiter := pipeline.NewDomainLimiter(0.1)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := limiter.Wait(ctx, "example.com")
		assert.Error(t, err)
	})
}
