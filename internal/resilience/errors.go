// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// ErrorType tells the analysis guard how to react to a backend failure
type ErrorType int

const (
	ErrorTypeUnknown         ErrorType = iota
	ErrorTypeTransient                 // Network blips, resets
	ErrorTypePermanent                 // Bad credentials, forbidden
	ErrorTypeTimeout                   // Deadline hit while waiting for the backend
	ErrorTypeRateLimit                 // Backend asked us to slow down
	ErrorTypeUnavailable               // Backend down or circuit open
	ErrorTypeInvalidResponse           // Backend answered with something unparseable
	ErrorTypeCanceled                  // Caller gave up
)

func (et ErrorType) String() string {
	switch et {
	case ErrorTypeUnknown:
		return "unknown"
	case ErrorTypeTransient:
		return "transient"
	case ErrorTypePermanent:
		return "permanent"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypeRateLimit:
		return "rate_limit"
	case ErrorTypeUnavailable:
		return "unavailable"
	case ErrorTypeInvalidResponse:
		return "invalid_response"
	case ErrorTypeCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(et))
	}
}

// ClassifiedError wraps an error with type information
type ClassifiedError struct {
	Original  error
	Type      ErrorType
	Message   string
	Retryable bool
}

func (e *ClassifiedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Original == nil {
		return e.Type.String()
	}
	return e.Original.Error()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Original
}

// IsRetryable returns whether this error should be retried
func (e *ClassifiedError) IsRetryable() bool {
	return e.Retryable
}

func classified(err error, t ErrorType, retryable bool) *ClassifiedError {
	return &ClassifiedError{
		Original:  err,
		Type:      t,
		Message:   fmt.Sprintf("%s: %v", t, err),
		Retryable: retryable,
	}
}

// ClassifyError categorizes an error for appropriate handling
func ClassifyError(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce
	}

	var cbErr *CircuitBreakerError
	if errors.As(err, &cbErr) {
		return classified(err, ErrorTypeUnavailable, false)
	}

	switch {
	case errors.Is(err, context.Canceled):
		return classified(err, ErrorTypeCanceled, false)
	case errors.Is(err, context.DeadlineExceeded):
		return classified(err, ErrorTypeTimeout, true)
	}

	if isNetworkError(err) {
		return classified(err, ErrorTypeTransient, true)
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "timeout"):
		return classified(err, ErrorTypeTimeout, true)
	case strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "throttl"):
		return classified(err, ErrorTypeRateLimit, true)
	case strings.Contains(errStr, "service unavailable") || strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "bad gateway"):
		return classified(err, ErrorTypeUnavailable, true)
	case strings.Contains(errStr, "unauthorized") || strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "invalid api key"):
		return classified(err, ErrorTypePermanent, false)
	case strings.Contains(errStr, "unexpected end of json") || strings.Contains(errStr, "invalid character") ||
		strings.Contains(errStr, "malformed"):
		return classified(err, ErrorTypeInvalidResponse, false)
	}

	return classified(err, ErrorTypeUnknown, false)
}

// isNetworkError checks if an error is network-related
func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}

// NewTransientError creates a new transient error
func NewTransientError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{
		Original:  cause,
		Type:      ErrorTypeTransient,
		Message:   message,
		Retryable: true,
	}
}

// NewPermanentError creates a new permanent error
func NewPermanentError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{
		Original:  cause,
		Type:      ErrorTypePermanent,
		Message:   message,
		Retryable: false,
	}
}
