// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package parallel runs independent per-document work on a bounded pool of
// goroutines and hands results back in submission order.
package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"getgsa/internal/observability"
)

// MaxWorkers caps the pool regardless of configuration
const MaxWorkers = 16

// Job is one unit of work. Index is its position in the submitted batch.
type Job[T any] struct {
	Index   int
	Payload T
}

// Result carries a job's output back to the collector
type Result[R any] struct {
	Index    int
	Value    R
	Error    error
	Duration time.Duration
}

// ProcessFunc handles one job
type ProcessFunc[T, R any] func(ctx context.Context, job Job[T]) (R, error)

// WorkerPool manages parallel processing of a fixed batch
type WorkerPool[T, R any] struct {
	workers  int
	jobs     chan Job[T]
	results  chan Result[R]
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	process  ProcessFunc[T, R]
	observer *observability.StandardObserver
	name     string
}

// NewWorkerPool creates a pool of workers (clamped to 1..MaxWorkers) that
// run process for every submitted job.
func NewWorkerPool[T, R any](ctx context.Context, name string, workers int, process ProcessFunc[T, R], observer *observability.StandardObserver) *WorkerPool[T, R] {
	if workers < 1 {
		workers = 1
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	if observer == nil {
		observer = observability.NewStandardObserver(nil)
	}
	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool[T, R]{
		workers:  workers,
		jobs:     make(chan Job[T], workers*2),
		results:  make(chan Result[R], workers*2),
		ctx:      ctx,
		cancel:   cancel,
		process:  process,
		observer: observer,
		name:     name,
	}
}

// Start launches the worker goroutines
func (wp *WorkerPool[T, R]) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Submit queues a job. It returns false once the pool has been cancelled.
func (wp *WorkerPool[T, R]) Submit(job Job[T]) bool {
	select {
	case wp.jobs <- job:
		return true
	case <-wp.ctx.Done():
		return false
	}
}

// CloseJobs signals that no more jobs will be submitted
func (wp *WorkerPool[T, R]) CloseJobs() {
	close(wp.jobs)
}

// Wait blocks until every worker has exited, then closes Results
func (wp *WorkerPool[T, R]) Wait() {
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Results returns the results channel
func (wp *WorkerPool[T, R]) Results() <-chan Result[R] {
	return wp.results
}

func (wp *WorkerPool[T, R]) worker() {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job)

		select {
		case wp.results <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool[T, R]) processJob(job Job[T]) (result Result[R]) {
	start := time.Now()
	done := wp.observer.StartTiming(wp.ctx, wp.name, "process_job", fmt.Sprintf("job-%d", job.Index))

	defer func() {
		if r := recover(); r != nil {
			result = Result[R]{Index: job.Index, Error: fmt.Errorf("job %d panicked: %v", job.Index, r)}
		}
		result.Duration = time.Since(start)
		done(result.Error == nil, nil)
	}()

	if err := wp.ctx.Err(); err != nil {
		return Result[R]{Index: job.Index, Error: err}
	}
	value, err := wp.process(wp.ctx, job)
	return Result[R]{Index: job.Index, Value: value, Error: err}
}

// ProcessingStats summarises one batch
type ProcessingStats struct {
	TotalJobs     int           `json:"total_jobs"`
	Failed        int           `json:"failed"`
	WorkerCount   int           `json:"worker_count"`
	TotalDuration time.Duration `json:"total_duration_ms"`
}

// ProgressCallback is called as each job completes
type ProgressCallback func(completed, total int)

// ProcessOrdered runs process over payloads and returns the results in
// input order. The first job error is returned after all jobs finish.
func ProcessOrdered[T, R any](ctx context.Context, name string, workers int, payloads []T, process ProcessFunc[T, R], observer *observability.StandardObserver, progress ProgressCallback) ([]R, *ProcessingStats, error) {
	start := time.Now()
	pool := NewWorkerPool(ctx, name, workers, process, observer)
	stats := &ProcessingStats{TotalJobs: len(payloads), WorkerCount: pool.workers}

	pool.Start()
	go func() {
		defer pool.CloseJobs()
		for i, p := range payloads {
			if !pool.Submit(Job[T]{Index: i, Payload: p}) {
				return
			}
		}
	}()
	go pool.Wait()

	out := make([]R, len(payloads))
	var firstErr error
	completed := 0
	for res := range pool.Results() {
		completed++
		if progress != nil {
			progress(completed, len(payloads))
		}
		if res.Error != nil {
			stats.Failed++
			if firstErr == nil {
				firstErr = fmt.Errorf("%s job %d: %w", name, res.Index, res.Error)
			}
			continue
		}
		out[res.Index] = res.Value
	}

	stats.TotalDuration = time.Since(start)
	if err := ctx.Err(); err != nil && firstErr == nil {
		firstErr = err
	}
	return out, stats, firstErr
}
