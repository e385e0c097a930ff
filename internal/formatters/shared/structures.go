// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"time"

	"getgsa/internal/analysis"
	"getgsa/internal/checklist"
	"getgsa/internal/compliance"
	"getgsa/internal/formatters"
	"getgsa/internal/model"
	"getgsa/internal/redactors"
	"getgsa/internal/suppressions"
)

// JSONReport is the document emitted by the JSON and YAML formatters
type JSONReport struct {
	RequestID       string                         `json:"request_id" yaml:"request_id"`
	GeneratedAt     time.Time                      `json:"generated_at" yaml:"generated_at"`
	DocSummaries    []model.DocSummary             `json:"doc_summaries" yaml:"doc_summaries"`
	Parsed          redactors.RedactedDocs         `json:"parsed" yaml:"parsed"`
	Issues          []JSONIssue                    `json:"issues" yaml:"issues"`
	Suppressed      []suppressions.SuppressedIssue `json:"suppressed,omitempty" yaml:"suppressed,omitempty"`
	Summary         map[compliance.Severity]int    `json:"summary" yaml:"summary"`
	RecommendedSINs []string                       `json:"recommended_sins" yaml:"recommended_sins"`
	Checklist       checklist.Checklist            `json:"checklist" yaml:"checklist"`
	PolicyChecklist analysis.PolicyChecklist       `json:"policy_checklist" yaml:"policy_checklist"`
	Citations       []analysis.Citation            `json:"citations" yaml:"citations"`
	Brief           string                         `json:"brief,omitempty" yaml:"brief,omitempty"`
	ClientEmail     string                         `json:"client_email,omitempty" yaml:"client_email,omitempty"`
	PoweredBy       string                         `json:"powered_by" yaml:"powered_by"`
}

// JSONIssue is a compliance issue plus the hash a waiver would use
type JSONIssue struct {
	compliance.Issue `yaml:",inline"`
	Hash             string `json:"hash,omitempty" yaml:"hash,omitempty"`
}

// ConvertReport builds the serialisable form of a report. Verbose adds
// waiver hashes and the generated texts.
func ConvertReport(report *formatters.Report, options formatters.FormatterOptions) JSONReport {
	issues := make([]JSONIssue, 0, len(report.Issues))
	for _, issue := range report.Issues {
		ji := JSONIssue{Issue: issue}
		if options.Verbose {
			ji.Hash = suppressions.IssueHash(issue)
		}
		issues = append(issues, ji)
	}

	docs := report.Documents
	if docs == nil {
		docs = []model.DocSummary{}
	}
	sins := report.RecommendedSINs
	if sins == nil {
		sins = []string{}
	}
	citations := report.Policy.Checklist.Citations
	if citations == nil {
		citations = []analysis.Citation{}
	}

	out := JSONReport{
		RequestID:       report.RequestID,
		GeneratedAt:     report.GeneratedAt,
		DocSummaries:    docs,
		Parsed:          report.Parsed,
		Issues:          issues,
		Suppressed:      report.Suppressed,
		Summary:         compliance.CountBySeverity(report.Issues),
		RecommendedSINs: sins,
		Checklist:       report.Checklist,
		PolicyChecklist: report.Policy.Checklist,
		Citations:       citations,
		PoweredBy:       report.Policy.PoweredBy,
	}
	if options.Verbose {
		out.Brief = report.Policy.Brief
		out.ClientEmail = report.Policy.ClientEmail
	}
	return out
}
