// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package redactors replaces email addresses and phone numbers with
// deterministic hash tokens before anything is stored.
package redactors

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"getgsa/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// EmailToken formats the placeholder stored in place of an email
func EmailToken(hash string) string {
	return fmt.Sprintf("[EMAIL_HASH_%s]", hash)
}

// PhoneToken formats the placeholder stored in place of a phone number
func PhoneToken(hash string) string {
	return fmt.Sprintf("[PHONE_HASH_%s]", hash)
}

// ContainsEmail reports whether s still holds anything email-shaped
func ContainsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Redactor produces redacted copies of records and text. It never mutates
// its input and is safe for concurrent use.
type Redactor struct {
	hasher *Hasher
}

// NewRedactor returns a redactor using h
func NewRedactor(h *Hasher) *Redactor {
	if h == nil {
		h = NewDefaultHasher()
	}
	return &Redactor{hasher: h}
}

// Hasher returns the underlying hasher
func (r *Redactor) Hasher() *Hasher {
	return r.hasher
}

// RedactProfile returns a copy of p with the POC email and phone tokenised.
// Emails and phone numbers found in the descriptive fields are replaced the
// same way RedactText does; their records follow the contact fields' in the
// table. UEI and DUNS are identifiers and are left alone.
func (r *Redactor) RedactProfile(p model.CompanyProfile) (model.CompanyProfile, HashTable) {
	out := p.Clone()
	table := NewHashTable()
	out.POCEmail = r.redactField(out.POCEmail, kindEmail, &table)
	out.POCPhone = r.redactField(out.POCPhone, kindPhone, &table)
	for _, field := range []**string{&out.CompanyName, &out.POCName, &out.Address} {
		*field = r.redactFreeText(*field, &table)
	}
	return out, table
}

// RedactPastPerformance returns a copy of pp with the contact email and
// phone tokenised, plus any email or phone left in the other text fields.
// The contract value is a dollar amount and is not scanned.
func (r *Redactor) RedactPastPerformance(pp model.PastPerformance) (model.PastPerformance, HashTable) {
	out := pp.Clone()
	table := NewHashTable()
	out.ContactEmail = r.redactField(out.ContactEmail, kindEmail, &table)
	out.ContactPhone = r.redactField(out.ContactPhone, kindPhone, &table)
	for _, field := range []**string{&out.Customer, &out.ContractDescription, &out.Period, &out.ContactName} {
		*field = r.redactFreeText(*field, &table)
	}
	return out, table
}

func (r *Redactor) redactFreeText(value *string, table *HashTable) *string {
	if !model.Present(value) {
		return value
	}
	redacted, found := r.RedactText(*value)
	if found.Len() == 0 {
		return value
	}
	*table = table.Merge(found)
	return &redacted
}

func (r *Redactor) redactField(value *string, kind piiKind, table *HashTable) *string {
	if !model.Present(value) {
		return value
	}

	hash := r.hasher.recordHash(kind, *value)
	var token string
	if kind == kindEmail {
		token = EmailToken(hash)
		table.Emails = append(table.Emails, HashRecord{Hash: hash, Token: token})
	} else {
		token = PhoneToken(hash)
		table.Phones = append(table.Phones, HashRecord{Hash: hash, Token: token})
	}
	return &token
}

// span is a matched PII occurrence in raw text
type span struct {
	start, end int
	kind       piiKind
}

// RedactText replaces every email and phone number in free text. Emails
// are found first; phone matches overlapping an email are ignored. Hash
// records list emails then phones, each in text order.
func (r *Redactor) RedactText(text string) (string, HashTable) {
	table := NewHashTable()

	var spans []span
	for _, loc := range emailPattern.FindAllStringIndex(text, -1) {
		spans = append(spans, span{loc[0], loc[1], kindEmail})
	}
	emails := len(spans)
	for _, loc := range phonePattern.FindAllStringIndex(text, -1) {
		if !overlaps(spans[:emails], loc[0], loc[1]) {
			spans = append(spans, span{loc[0], loc[1], kindPhone})
		}
	}
	if len(spans) == 0 {
		return text, table
	}

	tokens := make(map[int]string, len(spans))
	for _, s := range spans {
		hash := r.hasher.textHash(s.kind, text[s.start:s.end])
		record := HashRecord{Hash: hash}
		if s.kind == kindEmail {
			record.Token = EmailToken(hash)
			table.Emails = append(table.Emails, record)
		} else {
			record.Token = PhoneToken(hash)
			table.Phones = append(table.Phones, record)
		}
		tokens[s.start] = record.Token
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(text[last:s.start])
		b.WriteString(tokens[s.start])
		last = s.end
	}
	b.WriteString(text[last:])
	return b.String(), table
}

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && s.start < end {
			return true
		}
	}
	return false
}

// VerifyEmail reports whether candidate produced hash
func (r *Redactor) VerifyEmail(candidate, hash string) bool {
	return r.hasher.VerifyEmail(candidate, hash)
}

// VerifyPhone reports whether candidate produced hash
func (r *Redactor) VerifyPhone(candidate, hash string) bool {
	return r.hasher.VerifyPhone(candidate, hash)
}
