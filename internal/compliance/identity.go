// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compliance

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"getgsa/internal/model"
)

const ueiLength = 12

var dunsPattern = regexp.MustCompile(`^\d{9}$`)

// checkIdentity applies R1
func checkIdentity(issues *issueList, p *model.CompanyProfile) {
	if !model.Present(p.UEI) {
		issues.add("missing_uei", "UEI is required for SAM.gov registration",
			"uei not found in profile", SeverityBlocking, CategoryIdentity)
	} else if n := utf8.RuneCountInString(*p.UEI); n != ueiLength {
		issues.add("invalid_uei", "UEI must be exactly 12 characters",
			fmt.Sprintf("UEI '%s' has %d characters, expected %d", *p.UEI, n, ueiLength),
			SeverityBlocking, CategoryIdentity)
	}

	if !model.Present(p.DUNS) {
		issues.add("missing_duns", "DUNS number is required",
			"duns not found in profile", SeverityBlocking, CategoryIdentity)
	} else if !dunsPattern.MatchString(*p.DUNS) {
		issues.add("invalid_duns", "DUNS must be exactly 9 digits",
			fmt.Sprintf("DUNS '%s' is not a 9-digit number", *p.DUNS),
			SeverityBlocking, CategoryIdentity)
	}

	switch {
	case p.SAMRegistered == nil:
		issues.add("missing_sam_status", "SAM.gov registration status could not be determined",
			"sam_registered is unknown", SeverityCritical, CategoryIdentity)
	case !*p.SAMRegistered:
		issues.add("sam_not_active", "Active SAM.gov registration is required",
			"SAM.gov status is not 'registered'", SeverityBlocking, CategoryIdentity)
	}

	if !model.Present(p.POCEmail) {
		issues.add("missing_poc_email", "Primary contact email is required",
			"poc_email not found in profile", SeverityCritical, CategoryIdentity)
	}
	if !model.Present(p.POCPhone) {
		issues.add("missing_poc_phone", "Primary contact phone is required",
			"poc_phone not found in profile", SeverityCritical, CategoryIdentity)
	}

	if !model.Present(p.CompanyName) {
		issues.add("missing_company_name", "Company name is required",
			"company_name not found in profile", SeverityBlocking, CategoryIdentity)
	}
}
