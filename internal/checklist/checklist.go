// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package checklist builds the simplified pass/fail summary shown next to
// the full compliance issue list.
package checklist

import (
	"strings"

	"getgsa/internal/model"
)

// ValidationIssues are the coarse field checks behind the checklist
type ValidationIssues struct {
	MissingUEI         bool `json:"missing_uei" yaml:"missing_uei"`
	InvalidPOCEmail    bool `json:"invalid_poc_email" yaml:"invalid_poc_email"`
	MissingNAICS       bool `json:"missing_naics" yaml:"missing_naics"`
	MissingCompanyName bool `json:"missing_company_name" yaml:"missing_company_name"`
	MissingSAMStatus   bool `json:"missing_sam_status" yaml:"missing_sam_status"`
}

// Checklist is the simplified qualification summary
type Checklist struct {
	RequiredFieldsComplete bool `json:"required_fields_complete" yaml:"required_fields_complete"`
	ValidContactInfo       bool `json:"valid_contact_info" yaml:"valid_contact_info"`
	SAMRegistered          bool `json:"sam_registered" yaml:"sam_registered"`
	HasPastPerformance     bool `json:"has_past_performance" yaml:"has_past_performance"`
}

// ValidateCompany runs the coarse field checks. A nil profile fails all of
// them.
func ValidateCompany(p *model.CompanyProfile) ValidationIssues {
	if p == nil {
		p = &model.CompanyProfile{}
	}
	return ValidationIssues{
		MissingUEI:         !model.Present(p.UEI),
		InvalidPOCEmail:    !model.Present(p.POCEmail) || !strings.Contains(*p.POCEmail, "@"),
		MissingNAICS:       !hasCode(p.NAICS),
		MissingCompanyName: !model.Present(p.CompanyName),
		MissingSAMStatus:   p.SAMRegistered == nil,
	}
}

func hasCode(codes []string) bool {
	for _, c := range codes {
		if c != "" {
			return true
		}
	}
	return false
}

// ValidPastPerformance reports whether a record names both its customer
// and what was delivered.
func ValidPastPerformance(pp model.PastPerformance) bool {
	return model.Present(pp.Customer) && model.Present(pp.ContractDescription)
}

// Build aggregates the field checks into a Checklist
func Build(company *model.CompanyProfile, pastPerformance []model.PastPerformance, issues ValidationIssues) Checklist {
	return Checklist{
		RequiredFieldsComplete: !(issues.MissingCompanyName || issues.MissingUEI ||
			issues.MissingNAICS || issues.MissingSAMStatus),
		ValidContactInfo:   !issues.InvalidPOCEmail,
		SAMRegistered:      company != nil && company.SAMRegistered != nil && *company.SAMRegistered,
		HasPastPerformance: hasPastPerformance(pastPerformance),
	}
}

// hasPastPerformance is true when any record names a customer or a
// contract description
func hasPastPerformance(records []model.PastPerformance) bool {
	for _, pp := range records {
		if pp.Customer != nil || pp.ContractDescription != nil {
			return true
		}
	}
	return false
}
