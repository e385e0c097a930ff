// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"context"
	"errors"
	"sync"
	"time"

	"getgsa/internal/model"
	"getgsa/internal/redactors"
)

var (
	// ErrNotFound is returned when no submission matches a request id
	ErrNotFound = errors.New("submission not found")
	// ErrEmptyBatch is returned when a batch carries no documents
	ErrEmptyBatch = errors.New("batch contains no documents")
)

// Submission is one ingested batch. Parsed keeps the raw extraction for
// the compliance engine; everything shown to analysis or written out comes
// from RedactedDocs.
type Submission struct {
	RequestID    string                 `json:"request_id"`
	CreatedAt    time.Time              `json:"created_at"`
	DocSummaries []model.DocSummary     `json:"doc_summaries"`
	RedactedDocs redactors.RedactedDocs `json:"redacted_docs"`
	Parsed       model.ParsedData       `json:"-"`
}

// Store keeps submissions between ingest and analysis
type Store interface {
	Put(ctx context.Context, s *Submission) error
	Get(ctx context.Context, requestID string) (*Submission, error)
	Latest(ctx context.Context) (*Submission, error)
	Delete(ctx context.Context, requestID string) error
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]*Submission
	latest string
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]*Submission)}
}

func (m *MemoryStore) Put(ctx context.Context, s *Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[s.RequestID] = s
	m.latest = s.RequestID
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, requestID string) (*Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byID[requestID]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Latest returns the most recently stored submission
func (m *MemoryStore) Latest(ctx context.Context) (*Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byID[m.latest]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) Delete(ctx context.Context, requestID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[requestID]; !ok {
		return ErrNotFound
	}
	delete(m.byID, requestID)
	if m.latest == requestID {
		m.latest = ""
		var newest *Submission
		for _, s := range m.byID {
			if newest == nil || s.CreatedAt.After(newest.CreatedAt) {
				newest = s
			}
		}
		if newest != nil {
			m.latest = newest.RequestID
		}
	}
	return nil
}
