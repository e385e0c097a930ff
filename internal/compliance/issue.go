// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compliance

// Severity ranks how strongly an issue blocks qualification. Severity is
// informational; every produced issue is returned regardless of level.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityCritical Severity = "critical"
	SeverityMinor    Severity = "minor"
)

// Rule categories, one per GSA rule
const (
	CategoryIdentity    = "identity"    // R1
	CategoryMapping     = "mapping"     // R2
	CategoryPerformance = "performance" // R3
	CategoryPricing     = "pricing"     // R4
	CategorySecurity    = "security"    // R5
)

// Issue is a single compliance finding. IssueID is a stable machine key;
// Evidence quotes the offending value so a reviewer can audit it.
type Issue struct {
	IssueID      string   `json:"issue_id" yaml:"issue_id"`
	Description  string   `json:"description" yaml:"description"`
	Evidence     string   `json:"evidence" yaml:"evidence"`
	Severity     Severity `json:"severity" yaml:"severity"`
	RuleCategory string   `json:"rule_category" yaml:"rule_category"`
}

// HasBlocking reports whether any issue is blocking
func HasBlocking(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityBlocking {
			return true
		}
	}
	return false
}

// CountBySeverity tallies issues per severity level
func CountBySeverity(issues []Issue) map[Severity]int {
	counts := make(map[Severity]int)
	for _, issue := range issues {
		counts[issue.Severity]++
	}
	return counts
}

// issueList accumulates findings in check order
type issueList []Issue

func (l *issueList) add(id, description, evidence string, severity Severity, category string) {
	*l = append(*l, Issue{
		IssueID:      id,
		Description:  description,
		Evidence:     evidence,
		Severity:     severity,
		RuleCategory: category,
	})
}
