// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Observable is implemented by pipeline components that report timings
type Observable interface {
	// GetComponentName returns the component identifier
	GetComponentName() string
}

// StandardObserver times component operations and logs their outcome
type StandardObserver struct {
	logger *Logger
}

// NewStandardObserver creates an observer logging through logger. A nil
// logger discards everything.
func NewStandardObserver(logger *Logger) *StandardObserver {
	if logger == nil {
		logger = NewNop()
	}
	return &StandardObserver{logger: logger}
}

// Logger returns the observer's logger
func (o *StandardObserver) Logger() *Logger {
	return o.logger
}

// StartTiming returns a function to complete timing. Successful operations
// log at debug, failures at warn.
func (o *StandardObserver) StartTiming(ctx context.Context, component, operation, target string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		data := StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			Target:     target,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		}
		o.LogOperation(ctx, data)
	}
}

// LogOperation logs operation data
func (o *StandardObserver) LogOperation(ctx context.Context, data StandardObservabilityData) {
	fields := []zap.Field{
		zap.String("component", data.Component),
		zap.String("operation", data.Operation),
		zap.Int64("duration_ms", data.DurationMs),
		zap.Bool("success", data.Success),
	}
	if data.Target != "" {
		fields = append(fields, zap.String("target", data.Target))
	}
	if data.Error != "" {
		fields = append(fields, zap.String("error", data.Error))
	}
	if len(data.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", data.Metadata))
	}

	if data.Success {
		o.logger.Debug(ctx, "operation completed", fields...)
		return
	}
	o.logger.Warn(ctx, "operation failed", fields...)
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	Target     string                 `json:"target,omitempty"`
	DurationMs int64                  `json:"duration_ms,omitempty"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}
