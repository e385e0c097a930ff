// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package redactors

import (
	"encoding/json"

	"getgsa/internal/model"
)

// HashRecord links a redaction token to the hash it embeds. The original
// value is never kept.
type HashRecord struct {
	Hash  string `json:"hash" yaml:"hash"`
	Token string `json:"token" yaml:"token"`
}

// HashTable is the side table produced by a redaction. It holds one record
// per replaced occurrence, so a value seen twice is listed twice.
type HashTable struct {
	Emails []HashRecord `json:"emails" yaml:"emails"`
	Phones []HashRecord `json:"phones" yaml:"phones"`
}

// NewHashTable returns a table with empty, non-nil lists so it always
// serialises as arrays.
func NewHashTable() HashTable {
	return HashTable{Emails: []HashRecord{}, Phones: []HashRecord{}}
}

// Len returns the total number of records
func (t HashTable) Len() int {
	return len(t.Emails) + len(t.Phones)
}

// Merge appends other's records after t's, returning the combined table
func (t HashTable) Merge(other HashTable) HashTable {
	out := NewHashTable()
	out.Emails = append(append(out.Emails, t.Emails...), other.Emails...)
	out.Phones = append(append(out.Phones, t.Phones...), other.Phones...)
	return out
}

// ToJSON serialises the table
func (t HashTable) ToJSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// Redacted pairs a redacted record with the hashes of what was removed
type Redacted[T any] struct {
	RedactedRecord T         `json:"redacted_record" yaml:"redacted_record"`
	PIIHashes      HashTable `json:"pii_hashes" yaml:"pii_hashes"`
}

// RedactedDocs is what a submission keeps at rest: profile and past
// performance in redacted form with their hash tables, pricing as parsed.
type RedactedDocs struct {
	Company         *Redacted[model.CompanyProfile]   `json:"company" yaml:"company"`
	PastPerformance []Redacted[model.PastPerformance] `json:"past_performance" yaml:"past_performance"`
	Pricing         *model.PricingSheet               `json:"pricing" yaml:"pricing"`
}

// View returns the redacted records as parsed data, for consumers that
// must never see raw PII.
func (d RedactedDocs) View() model.ParsedData {
	view := model.ParsedData{
		PastPerformance: make([]model.PastPerformance, 0, len(d.PastPerformance)),
		Pricing:         d.Pricing,
	}
	if d.Company != nil {
		company := d.Company.RedactedRecord.Clone()
		view.Company = &company
	}
	for _, pp := range d.PastPerformance {
		view.PastPerformance = append(view.PastPerformance, pp.RedactedRecord.Clone())
	}
	return view
}

// Hashes merges every hash table in the submission
func (d RedactedDocs) Hashes() HashTable {
	out := NewHashTable()
	if d.Company != nil {
		out = out.Merge(d.Company.PIIHashes)
	}
	for _, pp := range d.PastPerformance {
		out = out.Merge(pp.PIIHashes)
	}
	return out
}
