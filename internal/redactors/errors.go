// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package redactors

import "fmt"

// RedactionErrorType defines the type of redaction error
type RedactionErrorType int

const (
	// ErrorConfiguration indicates invalid hasher settings
	ErrorConfiguration RedactionErrorType = iota

	// ErrorSecurity indicates a missing or cleared salt
	ErrorSecurity
)

// String returns the string representation of the error type
func (ret RedactionErrorType) String() string {
	switch ret {
	case ErrorConfiguration:
		return "configuration"
	case ErrorSecurity:
		return "security"
	default:
		return "unknown"
	}
}

// RedactionError is returned when a redactor cannot be built
type RedactionError struct {
	Type    RedactionErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (re *RedactionError) Error() string {
	if re.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", re.Type, re.Message, re.Cause)
	}
	return fmt.Sprintf("[%s] %s", re.Type, re.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (re *RedactionError) Unwrap() error {
	return re.Cause
}

// NewRedactionError creates a new RedactionError
func NewRedactionError(errorType RedactionErrorType, message string, cause error) *RedactionError {
	return &RedactionError{Type: errorType, Message: message, Cause: cause}
}
