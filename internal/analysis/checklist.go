// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package analysis turns compliance issues into a policy checklist that
// cites the rule behind every problem, and drafts the reviewer brief and
// vendor email.
package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"getgsa/internal/model"
)

// UnknownRule is cited when no rule could be retrieved for a problem
const UnknownRule = "UNKNOWN"

// Problem is one checklist entry
type Problem struct {
	Issue    string `json:"issue" yaml:"issue"`
	Evidence string `json:"evidence" yaml:"evidence"`
	RuleID   string `json:"rule_id" yaml:"rule_id"`
}

// Citation quotes the rule text a problem was judged against
type Citation struct {
	RuleID string `json:"rule_id" yaml:"rule_id"`
	Chunk  string `json:"chunk" yaml:"chunk"`
}

// PolicyChecklist is the rule-cited verdict for a submission
type PolicyChecklist struct {
	RequiredOK bool       `json:"required_ok" yaml:"required_ok"`
	Problems   []Problem  `json:"problems" yaml:"problems"`
	Citations  []Citation `json:"citations" yaml:"citations"`
}

// fallbackMinValue is fixed; the fallback does not read engine settings
const fallbackMinValue = 25000

var digitsAndCommas = regexp.MustCompile(`[\d,]+`)

// Fallback builds the minimal rule-based checklist used when the analyzer
// cannot answer. It only looks at identity, contract value and pricing
// presence and always cites R1 and R3.
func Fallback(parsed model.ParsedData) *PolicyChecklist {
	out := &PolicyChecklist{
		RequiredOK: true,
		Problems:   []Problem{},
		Citations: []Citation{
			{RuleID: "R1", Chunk: "Identity & Registry requirements"},
			{RuleID: "R3", Chunk: "Past Performance requirements"},
		},
	}
	fail := func(issue, evidence, rule string) {
		out.Problems = append(out.Problems, Problem{Issue: issue, Evidence: evidence, RuleID: rule})
		out.RequiredOK = false
	}

	company := parsed.Company
	if company == nil {
		company = &model.CompanyProfile{}
	}

	if !model.Present(company.UEI) || len(*company.UEI) != 12 {
		fail("missing_uei", "UEI field is empty, missing, or not 12 characters", "R1")
	}
	if !model.Present(company.DUNS) {
		fail("missing_duns", "DUNS field is empty or missing", "R1")
	}
	if company.SAMRegistered == nil || !*company.SAMRegistered {
		fail("sam_not_active",
			fmt.Sprintf("SAM.gov status is '%s', should be 'registered'", samStatus(company.SAMRegistered)), "R1")
	}

	valid := 0
	for _, pp := range parsed.PastPerformance {
		if leadingAmount(pp.ContractValue) >= fallbackMinValue {
			valid++
		}
	}
	if valid == 0 {
		fail("past_performance_min_value_not_met",
			fmt.Sprintf("No past performance contracts ≥ $25,000 found. Total contracts: %d", len(parsed.PastPerformance)), "R3")
	}

	if parsed.Pricing == nil || len(parsed.Pricing.LaborCategories) == 0 {
		fail("pricing_incomplete", "No labor categories found in pricing data", "R4")
	}

	return out
}

func samStatus(registered *bool) string {
	switch {
	case registered == nil:
		return "unknown"
	case *registered:
		return "registered"
	default:
		return "not registered"
	}
}

// leadingAmount reads the first digit/comma run of a contract value.
// Unparseable values count as zero.
func leadingAmount(raw *string) int64 {
	value := "0"
	if raw != nil {
		value = *raw
	}
	match := digitsAndCommas.FindString(value)
	n, err := strconv.ParseInt(strings.ReplaceAll(match, ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
