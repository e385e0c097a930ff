// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func failing(ctx context.Context) error { return NewTransientError("backend down", nil) }
func passing(ctx context.Context) error { return nil }

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	var transitions []string

	cfg := DefaultCircuitBreakerConfig("analysis")
	cfg.Now = clock.Now
	cfg.OnStateChange = func(name string, from, to CircuitBreakerState) {
		transitions = append(transitions, from.String()+"->"+to.String())
	}
	cb := NewCircuitBreaker(cfg)

	for i := 0; i < cfg.FailureThreshold; i++ {
		assert.Error(t, cb.Execute(context.Background(), failing))
	}
	require.Equal(t, StateOpen, cb.GetState())

	calls := 0
	err := cb.Execute(context.Background(), func(ctx context.Context) error { calls++; return nil })
	assert.True(t, IsCircuitBreakerError(err))
	assert.Zero(t, calls, "open breaker must not call through")

	clock.Advance(cfg.Timeout)
	require.NoError(t, cb.Execute(context.Background(), passing))
	assert.Equal(t, StateClosed, cb.GetState())

	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:             "analysis",
		FailureThreshold: 1,
		Timeout:          time.Second,
		Now:              clock.Now,
	})

	assert.Error(t, cb.Execute(context.Background(), failing))
	assert.Equal(t, StateOpen, cb.GetState())

	clock.Advance(time.Second)
	assert.Error(t, cb.Execute(context.Background(), failing))
	assert.Equal(t, StateOpen, cb.GetState())
	assert.Equal(t, 2, cb.GetStats().FailureCount)
}

func TestCircuitBreaker_PermanentErrorsDoNotTrip(t *testing.T) {
	cb := NewCircuitBreaker(DefaultCircuitBreakerConfig("analysis"))
	for i := 0; i < 10; i++ {
		_ = cb.Execute(context.Background(), func(ctx context.Context) error {
			return NewPermanentError("forbidden", nil)
		})
	}
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "x", FailureThreshold: 1, Timeout: time.Hour})
	_ = cb.Execute(context.Background(), failing)
	require.Equal(t, StateOpen, cb.GetState())

	cb.Reset()
	stats := cb.GetStats()
	assert.Equal(t, "CLOSED", stats.State)
	assert.Zero(t, stats.FailureCount)
}

func TestRetryWithCircuitBreaker_StopsWhenOpen(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "x", FailureThreshold: 2, Timeout: time.Hour})

	calls := 0
	err := RetryWithCircuitBreaker(context.Background(), fastRetry(5), cb, func(ctx context.Context) error {
		calls++
		return NewTransientError("down", nil)
	})

	assert.True(t, IsCircuitBreakerError(err))
	assert.Equal(t, 2, calls)
}
