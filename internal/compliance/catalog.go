// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compliance

// Rule is one citable GSA qualification rule
type Rule struct {
	ID       string `json:"rule_id" yaml:"rule_id"`
	Title    string `json:"title" yaml:"title"`
	Category string `json:"category" yaml:"category"`
	Text     string `json:"text" yaml:"text"`
}

// Catalog is an ordered rule set
type Catalog []Rule

// DefaultCatalog returns the five GSA rules. The slice is freshly
// allocated so callers may filter it.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			ID:       "R1",
			Title:    "Identity & Registry",
			Category: CategoryIdentity,
			Text:     "Identity & Registry: Required UEI (12 chars), DUNS (9 digits), and active SAM.gov registration. Primary contact must have valid email and phone.",
		},
		{
			ID:       "R2",
			Title:    "NAICS & SIN Mapping",
			Category: CategoryMapping,
			Text:     "NAICS & SIN Mapping: 541511 maps to 54151S, 541512 maps to 54151S, 541611 maps to 541611, 518210 maps to 518210C",
		},
		{
			ID:       "R3",
			Title:    "Past Performance",
			Category: CategoryPerformance,
			Text:     "Past Performance: At least 1 past performance contract ≥ $25,000 within last 36 months. Must include customer name, contract value, period, and contact email.",
		},
		{
			ID:       "R4",
			Title:    "Pricing & Catalog",
			Category: CategoryPricing,
			Text:     "Pricing & Catalog: Provide labor categories and rates in structured sheet. If missing rate basis or units, flag pricing_incomplete.",
		},
		{
			ID:       "R5",
			Title:    "Submission Hygiene",
			Category: CategorySecurity,
			Text:     "Submission Hygiene: All personally identifiable information must be stored in redacted form. Only derived fields and hashes are stored by default.",
		},
	}
}

// ForCategory returns the first rule in the given category
func (c Catalog) ForCategory(category string) (Rule, bool) {
	for _, r := range c {
		if r.Category == category {
			return r, true
		}
	}
	return Rule{}, false
}

// ByID returns the rule with the given id
func (c Catalog) ByID(id string) (Rule, bool) {
	for _, r := range c {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// Without returns a copy of the catalog minus the listed rule ids
func (c Catalog) Without(ids ...string) Catalog {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := make(Catalog, 0, len(c))
	for _, r := range c {
		if _, skip := drop[r.ID]; !skip {
			out = append(out, r)
		}
	}
	return out
}
