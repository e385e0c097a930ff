// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"getgsa/internal/model"
)

// maxUnitLength bounds what is accepted as a billing unit. Longer values
// are almost always a mis-split row.
const maxUnitLength = 32

var (
	pricingHeader   = regexp.MustCompile(`(?i)labor category, rate, unit`)
	pricingRowSplit = regexp.MustCompile(`(?:\r?\n)+|\s{2,}`)
	ratePattern     = regexp.MustCompile(`^\d+(\.\d+)?$`)
	amountPrefix    = regexp.MustCompile(`^\$?\d{1,3}(?:,\d{3})*$`)
	thousandsGroup  = regexp.MustCompile(`^\d{3}(?:\.\d+)?$`)
)

// ExtractPricing parses "category, rate, unit" rows. Rows are separated by
// newlines or by runs of two or more spaces; short rows are padded with nil
// so incomplete entries still reach validation.
func ExtractPricing(text string) model.PricingSheet {
	cleaned := strings.TrimSpace(pricingHeader.ReplaceAllString(text, ""))

	sheet := model.PricingSheet{LaborCategories: []model.LaborCategory{}}
	if cleaned == "" {
		return sheet
	}

	for _, row := range pricingRowSplit.Split(cleaned, -1) {
		parts := rowParts(row)
		if len(parts) == 0 {
			continue
		}
		for len(parts) < 3 {
			parts = append(parts, "")
		}

		labor := model.LaborCategory{
			Category: optional(parts[0]),
			Rate:     parseRate(parts[1]),
		}
		if unit := parts[2]; unit != "" && utf8.RuneCountInString(unit) < maxUnitLength {
			labor.Unit = &unit
		}
		sheet.LaborCategories = append(sheet.LaborCategories, labor)
	}
	return sheet
}

// rowParts splits a row on commas. A comma that is a thousands separator,
// as in "$1,450.50", stays inside the amount.
func rowParts(row string) []string {
	var fields []string
	for _, field := range strings.Split(row, ",") {
		if n := len(fields); n > 0 && thousandsGroup.MatchString(field) && amountPrefix.MatchString(strings.TrimSpace(fields[n-1])) {
			fields[n-1] += "," + field
			continue
		}
		fields = append(fields, field)
	}

	var parts []string
	for _, part := range fields {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// parseRate accepts plain decimals with optional "$" and thousands separators
func parseRate(raw string) *float64 {
	if raw == "" {
		return nil
	}
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(raw)
	if !ratePattern.MatchString(cleaned) {
		return nil
	}
	rate, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &rate
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
