// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package security holds the redaction salt and the comparisons done
// against derived hashes.
package security

import (
	"crypto/subtle"
	"io"
)

// SecureString wraps a secret (the redaction salt) with best-effort memory
// scrubbing on Clear.
//
// Go's garbage collector may copy memory at any time, so Clear narrows the
// window of exposure without guaranteeing every copy is gone. Prefer WriteTo
// over String when feeding the secret into a hash.
type SecureString struct {
	data []byte
}

// NewSecureString copies s into a mutable byte slice
func NewSecureString(s string) *SecureString {
	data := make([]byte, len(s))
	copy(data, s)
	return &SecureString{data: data}
}

// String returns the value. Each call creates an immutable copy that Clear
// cannot reach.
func (ss *SecureString) String() string {
	return string(ss.data)
}

// WriteTo writes the secret bytes to w without an intermediate string
func (ss *SecureString) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(ss.data)
	return int64(n), err
}

// Len returns the secret length in bytes
func (ss *SecureString) Len() int {
	return len(ss.data)
}

// Clear overwrites the secret with zeros and releases it. Clear is
// idempotent.
func (ss *SecureString) Clear() {
	if ss.data != nil {
		for i := range ss.data {
			ss.data[i] = 0
		}
		ss.data = nil
	}
}

// EqualHash compares two hash strings in constant time
func EqualHash(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
