// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"regexp"
	"strings"

	"getgsa/internal/model"
)

var (
	contactPairPattern  = regexp.MustCompile(`Contact:\s*([^,]+),\s*([^\s,]+)`)
	contactEmailPattern = regexp.MustCompile(`Contact:\s*([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
)

// ExtractPastPerformance reads one contract reference from the text. A
// document always yields exactly one record, even if every field is nil.
func ExtractPastPerformance(text string) []model.PastPerformance {
	text = Squeeze(text)

	record := model.PastPerformance{
		Customer:            between(text, "Customer:", "Contract:", "Value:", "Period:"),
		ContractDescription: between(text, "Contract:", "Value:", "Period:", "Contact:"),
		ContractValue:       between(text, "Value:", "Period:", "Contact:"),
		Period:              between(text, "Period:", "Contact:"),
	}
	record.ContactName, record.ContactEmail = contact(text)

	return []model.PastPerformance{record}
}

// contact accepts "Contact: Name, email" or a bare "Contact: email".
// The second item of a pair is only taken as an email when it has an @.
func contact(text string) (name, email *string) {
	if m := contactPairPattern.FindStringSubmatch(text); m != nil {
		n := strings.TrimSpace(m[1])
		name = &n
		if candidate := strings.TrimSpace(m[2]); strings.Contains(candidate, "@") {
			email = &candidate
		}
		return name, email
	}

	if m := contactEmailPattern.FindStringSubmatch(text); m != nil {
		e := m[1]
		email = &e
	}
	return name, email
}
