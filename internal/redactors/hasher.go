// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package redactors

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"getgsa/internal/security"
)

// HashMode selects how PII hashes are derived
type HashMode int

const (
	// HashUnified salts and normalises every value and truncates to the
	// configured length on both the text and the record path.
	HashUnified HashMode = iota
	// HashLegacy keeps the historical split: the text path is salted,
	// normalised and 16 characters; the record path hashes the raw value
	// unsalted and keeps 10 characters. Record hashes made this way cannot
	// be verified.
	HashLegacy
)

const (
	// DefaultSalt matches the salt used by earlier deployments so stored
	// text-path hashes stay reproducible.
	DefaultSalt = "getgsa_secure_salt_2024"
	// DefaultHashLength is the number of hex characters kept
	DefaultHashLength = 16

	legacyTextLength   = 16
	legacyRecordLength = 10
)

// String returns the string representation of the hash mode
func (m HashMode) String() string {
	switch m {
	case HashUnified:
		return "unified"
	case HashLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// ParseHashMode converts a string to HashMode
func ParseHashMode(s string) HashMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legacy":
		return HashLegacy
	default:
		return HashUnified // Default fallback
	}
}

// piiKind picks the normalisation applied before hashing
type piiKind int

const (
	kindEmail piiKind = iota
	kindPhone
)

// Hasher derives truncated SHA-256 hashes of PII values
type Hasher struct {
	salt   *security.SecureString
	mode   HashMode
	length int
}

// NewHasher builds a hasher. length applies to unified mode and must be
// between 8 and 64 hex characters.
func NewHasher(salt string, mode HashMode, length int) (*Hasher, error) {
	if salt == "" {
		return nil, NewRedactionError(ErrorSecurity, "redaction salt must not be empty", nil)
	}
	if mode == HashUnified && (length < 8 || length > sha256.Size*2) {
		return nil, NewRedactionError(ErrorConfiguration, "hash length must be between 8 and 64", nil)
	}
	return &Hasher{
		salt:   security.NewSecureString(salt),
		mode:   mode,
		length: length,
	}, nil
}

// NewDefaultHasher returns a unified hasher with the default salt and length
func NewDefaultHasher() *Hasher {
	h, _ := NewHasher(DefaultSalt, HashUnified, DefaultHashLength)
	return h
}

// Mode returns the hash mode
func (h *Hasher) Mode() HashMode {
	return h.mode
}

// Close scrubs the salt. The hasher must not be used afterwards.
func (h *Hasher) Close() {
	h.salt.Clear()
}

// textHash is used for values found in raw text and for verification
func (h *Hasher) textHash(kind piiKind, value string) string {
	length := h.length
	if h.mode == HashLegacy {
		length = legacyTextLength
	}
	return h.salted(normalize(kind, value), length)
}

// recordHash is used for values taken from structured record fields
func (h *Hasher) recordHash(kind piiKind, value string) string {
	if h.mode == HashLegacy {
		sum := sha256.Sum256([]byte(value))
		return hex.EncodeToString(sum[:])[:legacyRecordLength]
	}
	return h.textHash(kind, value)
}

func (h *Hasher) salted(normalized string, length int) string {
	d := sha256.New()
	_, _ = h.salt.WriteTo(d)
	d.Write([]byte(normalized))
	return hex.EncodeToString(d.Sum(nil))[:length]
}

// normalize lower-cases and trims; phones are first reduced to digits
func normalize(kind piiKind, value string) string {
	if kind == kindPhone {
		value = digitsOnly(value)
	}
	return strings.ToLower(strings.TrimSpace(value))
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// VerifyEmail reports whether candidate hashes to hash
func (h *Hasher) VerifyEmail(candidate, hash string) bool {
	return security.EqualHash(h.textHash(kindEmail, candidate), strings.ToLower(hash))
}

// VerifyPhone reports whether candidate, in any formatting, hashes to hash
func (h *Hasher) VerifyPhone(candidate, hash string) bool {
	return security.EqualHash(h.textHash(kindPhone, candidate), strings.ToLower(hash))
}
