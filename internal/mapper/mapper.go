// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package mapper translates NAICS industry codes into GSA Special Item
// Numbers.
package mapper

import (
	"sort"
	"strings"
)

var naicsToSIN = map[string]string{
	"541511": "54151S",
	"541512": "54151S",
	"541611": "541611",
	"518210": "518210C",
}

// MapNaicsToSin returns the set of SINs for the given NAICS codes. Codes
// are trimmed; codes without a mapping contribute nothing.
func MapNaicsToSin(codes []string) map[string]struct{} {
	sins := make(map[string]struct{})
	for _, code := range codes {
		if sin, ok := naicsToSIN[strings.TrimSpace(code)]; ok {
			sins[sin] = struct{}{}
		}
	}
	return sins
}

// RecommendedSINs is MapNaicsToSin as a sorted slice
func RecommendedSINs(codes []string) []string {
	set := MapNaicsToSin(codes)
	out := make([]string, 0, len(set))
	for sin := range set {
		out = append(out, sin)
	}
	sort.Strings(out)
	return out
}
