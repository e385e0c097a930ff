// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compliance

import (
	"fmt"

	"getgsa/internal/model"
)

// checkPricing applies R4
func checkPricing(issues *issueList, pricing *model.PricingSheet) {
	if pricing == nil || len(pricing.LaborCategories) == 0 {
		issues.add("missing_pricing", "A pricing sheet with labor categories is required",
			"no labor categories submitted", SeverityBlocking, CategoryPricing)
		return
	}

	for i, lc := range pricing.LaborCategories {
		n := i + 1
		if !model.Present(lc.Category) {
			issues.add("pricing_missing_category", "Each pricing row must name a labor category",
				fmt.Sprintf("pricing row %d has no labor category", n),
				SeverityCritical, CategoryPricing)
		}
		if lc.Rate == nil {
			issues.add("pricing_missing_rate", "Each labor category must have a numeric rate",
				fmt.Sprintf("pricing row %d (%s) has no rate", n, label(lc.Category)),
				SeverityCritical, CategoryPricing)
		}
		if !model.Present(lc.Unit) {
			issues.add("pricing_missing_unit", "Each labor category must state its billing unit",
				fmt.Sprintf("pricing row %d (%s) has no unit", n, label(lc.Category)),
				SeverityCritical, CategoryPricing)
		}
	}
}

func label(category *string) string {
	if !model.Present(category) {
		return "unnamed"
	}
	return *category
}
