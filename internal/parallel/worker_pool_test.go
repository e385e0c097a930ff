// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upper(ctx context.Context, job Job[string]) (string, error) {
	// Reverse the finishing order so ordering is really exercised
	time.Sleep(time.Duration(5-job.Index%5) * time.Millisecond)
	return strings.ToUpper(job.Payload), nil
}

func TestProcessOrdered_PreservesOrder(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e", "f", "g"}

	var calls int32
	got, stats, err := ProcessOrdered(context.Background(), "test", 3, in, upper, nil, func(completed, total int) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 7, total)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G"}, got)
	assert.Equal(t, 7, stats.TotalJobs)
	assert.Equal(t, 3, stats.WorkerCount)
	assert.Zero(t, stats.Failed)
	assert.EqualValues(t, 7, atomic.LoadInt32(&calls))
}

func TestProcessOrdered_Empty(t *testing.T) {
	got, stats, err := ProcessOrdered(context.Background(), "test", 2, []string{}, upper, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, stats.TotalJobs)
}

func TestProcessOrdered_ReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	fn := func(ctx context.Context, job Job[int]) (int, error) {
		if job.Payload == 2 {
			return 0, boom
		}
		return job.Payload * 10, nil
	}

	got, stats, err := ProcessOrdered(context.Background(), "test", 2, []int{1, 2, 3}, fn, nil, nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []int{10, 0, 30}, got)
	assert.Equal(t, 1, stats.Failed)
}

func TestProcessOrdered_RecoversPanics(t *testing.T) {
	fn := func(ctx context.Context, job Job[int]) (int, error) {
		panic("bad document")
	}

	_, stats, err := ProcessOrdered(context.Background(), "test", 1, []int{1}, fn, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
	assert.Equal(t, 1, stats.Failed)
}

func TestNewWorkerPool_ClampsWorkers(t *testing.T) {
	low := NewWorkerPool(context.Background(), "t", 0, upper, nil)
	assert.Equal(t, 1, low.workers)

	high := NewWorkerPool(context.Background(), "t", 1000, upper, nil)
	assert.Equal(t, MaxWorkers, high.workers)
}

func TestProcessOrdered_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ProcessOrdered(ctx, "test", 2, []string{"a", "b"}, upper, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
