// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"getgsa/internal/model"
)

// Generator drafts the free-text outputs of an analysis
type Generator interface {
	Brief(ctx context.Context, parsed model.ParsedData, checklist *PolicyChecklist) (string, error)
	ClientEmail(ctx context.Context, parsed model.ParsedData, checklist *PolicyChecklist) (string, error)
}

var titler = cases.Title(language.English)

// IssueTitle renders an issue key for people: "missing_uei" -> "Missing Uei"
func IssueTitle(issue string) string {
	return titler.String(strings.ReplaceAll(issue, "_", " "))
}

var templateFuncs = template.FuncMap{"title": IssueTitle}

var briefTemplate = template.Must(template.New("brief").Funcs(templateFuncs).Parse(
	`Negotiation brief for {{.Company}}
NAICS codes: {{if .NAICS}}{{.NAICS}}{{else}}Not provided{{end}}
Past performance: {{.Contracts}} contracts submitted
Pricing provided: {{if .Pricing}}Yes - labor categories included{{else}}No - missing or incomplete{{end}}

{{if .Problems}}Risks and leverage points:
{{range .Problems}}- {{title .Issue}}: {{.Evidence}} (Rule {{.RuleID}})
{{end}}{{else}}No major compliance issues identified.
{{end}}`))

var emailTemplate = template.Must(template.New("email").Funcs(templateFuncs).Parse(
	`Subject: Submission Status - {{.Company}}

Dear {{.Company}} Team,

Thank you for your submission.
{{if .Problems}}
Status: REQUIRES ATTENTION. Please address the following items and resubmit:
{{range .Problems}}-  {{title .Issue}}: {{.Evidence}}
{{end}}{{else}}
Status: APPROVED. All GSA requirements are met and your submission is complete.
{{end}}
Best regards,
GSA Evaluation Team
`))

type templateData struct {
	Company   string
	NAICS     string
	Contracts int
	Pricing   bool
	Problems  []Problem
}

func newTemplateData(parsed model.ParsedData, checklist *PolicyChecklist, defaultName string) templateData {
	data := templateData{
		Company:   defaultName,
		Contracts: len(parsed.PastPerformance),
		Pricing:   parsed.Pricing != nil && len(parsed.Pricing.LaborCategories) > 0,
	}
	if parsed.Company != nil {
		if model.Present(parsed.Company.CompanyName) {
			data.Company = *parsed.Company.CompanyName
		}
		data.NAICS = strings.Join(parsed.Company.NAICS, ", ")
	}
	if checklist != nil {
		data.Problems = checklist.Problems
	}
	return data
}

// TemplateGenerator fills fixed text templates from the checklist. It is
// deterministic and never fails on valid input.
type TemplateGenerator struct{}

// Brief implements Generator
func (TemplateGenerator) Brief(ctx context.Context, parsed model.ParsedData, checklist *PolicyChecklist) (string, error) {
	return render(briefTemplate, newTemplateData(parsed, checklist, "Unknown Vendor"))
}

// ClientEmail implements Generator
func (TemplateGenerator) ClientEmail(ctx context.Context, parsed model.ParsedData, checklist *PolicyChecklist) (string, error) {
	return render(emailTemplate, newTemplateData(parsed, checklist, "Vendor"))
}

func render(t *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", t.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// ManualReviewBrief is returned when brief generation fails
func ManualReviewBrief(parsed model.ParsedData, checklist *PolicyChecklist) string {
	data := newTemplateData(parsed, checklist, "Unknown Vendor")
	return fmt.Sprintf("Manual Review Required: Company %s has %d compliance issues that need review. "+
		"Please analyze vendor data manually and prepare negotiation strategy based on GSA requirements R1-R5.",
		data.Company, len(data.Problems))
}

// ManualReviewEmail is returned when email generation fails
func ManualReviewEmail(parsed model.ParsedData) string {
	data := newTemplateData(parsed, nil, "Vendor")
	return fmt.Sprintf(`Subject: Submission Status - %[1]s

Dear %[1]s Team,

Thank you for your submission. We are unable to provide detailed feedback at this time.

Please contact our procurement office directly for manual review of your submission.

Best regards,
GSA Evaluation Team`, data.Company)
}
