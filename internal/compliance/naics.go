// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compliance

import (
	"fmt"
	"regexp"
)

var naicsPattern = regexp.MustCompile(`^\d{6}$`)

// checkNAICS applies R2: at least one code, each exactly six digits
func checkNAICS(issues *issueList, codes []string) {
	if len(codes) == 0 {
		issues.add("missing_naics", "At least one NAICS code is required",
			"no NAICS codes found in profile", SeverityCritical, CategoryMapping)
		return
	}

	for _, code := range codes {
		if !naicsPattern.MatchString(code) {
			issues.add("invalid_naics_code", "NAICS codes must be 6 digits",
				fmt.Sprintf("NAICS code '%s' is not a 6-digit code", code),
				SeverityCritical, CategoryMapping)
		}
	}
}
