package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerClosedPassesThrough(t *testing.T) {
	cb := NewCircuitBreaker("test")

	result, err := cb.Execute(context.Background(), func() (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestCircuitBreakerPropagatesErrors(t *testing.T) {
	cb := NewCircuitBreaker("test")
	boom := errors.New("publish failed")

	_, err := cb.Execute(context.Background(), func() (interface{}, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	// a single failure does not trip the breaker
	_, err = cb.Execute(context.Background(), func() (interface{}, error) {
		return "ok", nil
	})
	assert.NoError(t, err)
}

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	cb := NewCircuitBreaker("test")
	down := errors.New("down")

	for i := 0; i < 10; i++ {
		_, err := cb.Execute(context.Background(), func() (interface{}, error) {
			return nil, down
		})
		assert.ErrorIs(t, err, down)
	}

	// breaker is open now; calls are rejected without invoking the request
	called := false
	_, err := cb.Execute(context.Background(), func() (interface{}, error) {
		called = true
		return "ok", nil
	})
	require.Error(t, err)
	assert.EqualError(t, err, "circuit breaker is open")
	assert.False(t, called)
}

func TestCircuitBreakerCounts(t *testing.T) {
	cb := NewCircuitBreaker("test")

	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(context.Background(), func() (interface{}, error) {
			return nil, errors.New("down")
		})
	}
	_, _ = cb.Execute(context.Background(), func() (interface{}, error) {
		return "ok", nil
	})

	assert.Equal(t, uint32(4), cb.counts.Requests)
	assert.Equal(t, uint32(3), cb.counts.TotalFailures)
	assert.Equal(t, uint32(1), cb.counts.TotalSuccesses)
}
