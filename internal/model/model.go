// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package model

// DocType identifies which extractor a document is routed to
type DocType string

const (
	DocProfile         DocType = "profile"
	DocPastPerformance DocType = "past_performance"
	DocPricing         DocType = "pricing"
	DocUnknown         DocType = "unknown"
)

// String returns the wire name of the document type
func (d DocType) String() string {
	return string(d)
}

// ParseDocType accepts only the three caller-assertable document types.
// "unknown" is a classification outcome, not a valid hint.
func ParseDocType(s string) (DocType, bool) {
	switch DocType(s) {
	case DocProfile, DocPastPerformance, DocPricing:
		return DocType(s), true
	default:
		return DocUnknown, false
	}
}

// CompanyProfile holds vendor identity data extracted from a profile document.
// Nil pointers mean the field was not found in the source text.
type CompanyProfile struct {
	CompanyName   *string  `json:"company_name" yaml:"company_name"`
	UEI           *string  `json:"uei" yaml:"uei"`
	DUNS          *string  `json:"duns" yaml:"duns"`
	NAICS         []string `json:"naics" yaml:"naics"`
	POCName       *string  `json:"poc_name" yaml:"poc_name"`
	POCEmail      *string  `json:"poc_email" yaml:"poc_email"`
	POCPhone      *string  `json:"poc_phone" yaml:"poc_phone"`
	Address       *string  `json:"address" yaml:"address"`
	SAMRegistered *bool    `json:"sam_registered" yaml:"sam_registered"`
}

// Clone returns a deep copy so callers can derive new records without
// touching the original.
func (p CompanyProfile) Clone() CompanyProfile {
	out := CompanyProfile{
		CompanyName:   cloneString(p.CompanyName),
		UEI:           cloneString(p.UEI),
		DUNS:          cloneString(p.DUNS),
		POCName:       cloneString(p.POCName),
		POCEmail:      cloneString(p.POCEmail),
		POCPhone:      cloneString(p.POCPhone),
		Address:       cloneString(p.Address),
		SAMRegistered: cloneBool(p.SAMRegistered),
	}
	if p.NAICS != nil {
		out.NAICS = make([]string, len(p.NAICS))
		copy(out.NAICS, p.NAICS)
	}
	return out
}

// PastPerformance is a single contract reference
type PastPerformance struct {
	Customer            *string `json:"customer" yaml:"customer"`
	ContractDescription *string `json:"contract_description" yaml:"contract_description"`
	ContractValue       *string `json:"contract_value" yaml:"contract_value"`
	Period              *string `json:"period" yaml:"period"`
	ContactName         *string `json:"contact_name" yaml:"contact_name"`
	ContactEmail        *string `json:"contact_email" yaml:"contact_email"`
	ContactPhone        *string `json:"contact_phone,omitempty" yaml:"contact_phone,omitempty"`
}

// Clone returns a deep copy of the record
func (pp PastPerformance) Clone() PastPerformance {
	return PastPerformance{
		Customer:            cloneString(pp.Customer),
		ContractDescription: cloneString(pp.ContractDescription),
		ContractValue:       cloneString(pp.ContractValue),
		Period:              cloneString(pp.Period),
		ContactName:         cloneString(pp.ContactName),
		ContactEmail:        cloneString(pp.ContactEmail),
		ContactPhone:        cloneString(pp.ContactPhone),
	}
}

// LaborCategory is one priced row of a pricing sheet
type LaborCategory struct {
	Category *string  `json:"category" yaml:"category"`
	Rate     *float64 `json:"rate" yaml:"rate"`
	Unit     *string  `json:"unit" yaml:"unit"`
}

// PricingSheet holds labor categories in source order
type PricingSheet struct {
	LaborCategories []LaborCategory `json:"labor_categories" yaml:"labor_categories"`
}

// ParsedData is everything extracted from one submission batch. The last
// profile and pricing sheet in a batch win; past performance accumulates.
type ParsedData struct {
	Company         *CompanyProfile   `json:"company" yaml:"company"`
	PastPerformance []PastPerformance `json:"past_performance" yaml:"past_performance"`
	Pricing         *PricingSheet     `json:"pricing" yaml:"pricing"`
}

// DocSummary reports how one submitted document was handled
type DocSummary struct {
	Name     string  `json:"name" yaml:"name"`
	Type     DocType `json:"type" yaml:"type"`
	Redacted bool    `json:"redacted" yaml:"redacted"`
}

// String returns a pointer to s
func String(s string) *string {
	return &s
}

// Bool returns a pointer to b
func Bool(b bool) *bool {
	return &b
}

// Float returns a pointer to f
func Float(f float64) *float64 {
	return &f
}

// Value dereferences p, returning "" for nil
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Present reports whether p holds a non-empty value
func Present(p *string) bool {
	return p != nil && *p != ""
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
