// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"getgsa/internal/analysis"
	"getgsa/internal/compliance"
	"getgsa/internal/formatters"
	"getgsa/internal/suppressions"

	"github.com/fatih/color"
)

// Formatter implements human-readable report output
type Formatter struct{}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable report with colored severities"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

type palette struct {
	header, ok, bad, warn, info, dim *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		header: color.New(color.FgWhite, color.Bold),
		ok:     color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
		warn:   color.New(color.FgYellow),
		info:   color.New(color.FgCyan),
		dim:    color.New(color.FgHiBlack),
	}
	if noColor {
		for _, c := range []*color.Color{p.header, p.ok, p.bad, p.warn, p.info, p.dim} {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s compliance.Severity) *color.Color {
	switch s {
	case compliance.SeverityBlocking:
		return p.bad
	case compliance.SeverityCritical:
		return p.warn
	default:
		return p.info
	}
}

func (p palette) verdict(pass bool) string {
	if pass {
		return p.ok.Sprint("PASS")
	}
	return p.bad.Sprint("FAIL")
}

func (f *Formatter) Format(report *formatters.Report, options formatters.FormatterOptions) (string, error) {
	p := newPalette(options.NoColor)
	var b strings.Builder

	b.WriteString(p.header.Sprintf("Submission %s\n", report.RequestID))
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}

	f.appendDocuments(&b, p, report)
	f.appendIssues(&b, p, report, options)
	f.appendSuppressed(&b, p, report.Suppressed)

	b.WriteString(p.header.Sprint("\nRecommended SINs\n"))
	if len(report.RecommendedSINs) == 0 {
		b.WriteString("  none\n")
	} else {
		fmt.Fprintf(&b, "  %s\n", strings.Join(report.RecommendedSINs, ", "))
	}

	b.WriteString(p.header.Sprint("\nChecklist\n"))
	fmt.Fprintf(&b, "  %-26s %s\n", "Required fields complete", p.verdict(report.Checklist.RequiredFieldsComplete))
	fmt.Fprintf(&b, "  %-26s %s\n", "Valid contact info", p.verdict(report.Checklist.ValidContactInfo))
	fmt.Fprintf(&b, "  %-26s %s\n", "SAM registered", p.verdict(report.Checklist.SAMRegistered))
	fmt.Fprintf(&b, "  %-26s %s\n", "Has past performance", p.verdict(report.Checklist.HasPastPerformance))

	f.appendPolicy(&b, p, report.Policy, options)

	return b.String(), nil
}

func (f *Formatter) appendDocuments(b *strings.Builder, p palette, report *formatters.Report) {
	b.WriteString(p.header.Sprint("\nDocuments\n"))
	if len(report.Documents) == 0 {
		b.WriteString("  none\n")
		return
	}
	for _, doc := range report.Documents {
		redacted := ""
		if doc.Redacted {
			redacted = p.dim.Sprint(" (redacted)")
		}
		fmt.Fprintf(b, "  %-30s %s%s\n", doc.Name, doc.Type, redacted)
	}
	if n := report.Parsed.Hashes().Len(); n > 0 {
		fmt.Fprintf(b, "  %d PII values replaced with hash tokens\n", n)
	}
}

func (f *Formatter) appendIssues(b *strings.Builder, p palette, report *formatters.Report, options formatters.FormatterOptions) {
	b.WriteString(p.header.Sprint("\nCompliance issues\n"))
	if len(report.Issues) == 0 {
		b.WriteString(p.ok.Sprint("  No compliance issues found.\n"))
		return
	}

	counts := compliance.CountBySeverity(report.Issues)
	fmt.Fprintf(b, "  %d blocking, %d critical, %d minor\n",
		counts[compliance.SeverityBlocking], counts[compliance.SeverityCritical], counts[compliance.SeverityMinor])

	fmt.Fprintf(b, "  %-9s %-12s %-34s %s\n", "SEVERITY", "CATEGORY", "ISSUE", "EVIDENCE")
	for _, issue := range report.Issues {
		sev := p.severity(issue.Severity).Sprintf("%-9s", strings.ToUpper(string(issue.Severity)))
		fmt.Fprintf(b, "  %s %-12s %-34s %s\n", sev, issue.RuleCategory, issue.IssueID, issue.Evidence)
		if options.Verbose {
			fmt.Fprintf(b, "  %s\n", p.dim.Sprintf("%-9s hash %s", "", suppressions.IssueHash(issue)))
		}
	}
}

func (f *Formatter) appendSuppressed(b *strings.Builder, p palette, suppressed []suppressions.SuppressedIssue) {
	if len(suppressed) == 0 {
		return
	}
	b.WriteString(p.header.Sprint("\nWaived issues\n"))
	for _, s := range suppressed {
		b.WriteString(p.dim.Sprintf("  %-12s %-34s %s (%s)\n", s.WaiverID, s.IssueID, s.Reason, s.Severity))
	}
}

func (f *Formatter) appendPolicy(b *strings.Builder, p palette, result analysis.Result, options formatters.FormatterOptions) {
	b.WriteString(p.header.Sprint("\nPolicy checklist"))
	fmt.Fprintf(b, " %s\n", p.dim.Sprintf("(%s)", result.PoweredBy))
	fmt.Fprintf(b, "  %-26s %s\n", "Required OK", p.verdict(result.Checklist.RequiredOK))
	for _, problem := range result.Checklist.Problems {
		fmt.Fprintf(b, "  [%s] %s: %s\n", problem.RuleID, analysis.IssueTitle(problem.Issue), problem.Evidence)
	}
	if len(result.Checklist.Citations) > 0 {
		b.WriteString("  Citations:\n")
		for _, c := range result.Checklist.Citations {
			fmt.Fprintf(b, "    %s  %s\n", c.RuleID, c.Chunk)
		}
	}

	if !options.Verbose {
		return
	}
	if result.Brief != "" {
		b.WriteString(p.header.Sprint("\nNegotiation brief\n"))
		b.WriteString(indent(result.Brief))
	}
	if result.ClientEmail != "" {
		b.WriteString(p.header.Sprint("\nClient email\n"))
		b.WriteString(indent(result.ClientEmail))
	}
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
