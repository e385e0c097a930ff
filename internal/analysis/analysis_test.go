// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"getgsa/internal/compliance"
	"getgsa/internal/metrics"
	"getgsa/internal/model"
	"getgsa/internal/observability"
	"getgsa/internal/resilience"
)

func sampleIssues() []compliance.Issue {
	return []compliance.Issue{
		{IssueID: "invalid_uei", Evidence: "UEI 'ABC123' has 6 characters, expected 12", Severity: compliance.SeverityBlocking, RuleCategory: compliance.CategoryIdentity},
		{IssueID: "missing_poc_phone", Evidence: "no phone", Severity: compliance.SeverityCritical, RuleCategory: compliance.CategoryIdentity},
		{IssueID: "pricing_missing_unit", Evidence: "row 1", Severity: compliance.SeverityCritical, RuleCategory: compliance.CategoryPricing},
	}
}

func TestRuleAnalyzer_CitesEachRuleOnce(t *testing.T) {
	a := NewRuleAnalyzer(nil)

	got, err := a.Analyze(context.Background(), model.ParsedData{}, sampleIssues())
	require.NoError(t, err)

	assert.False(t, got.RequiredOK)
	require.Len(t, got.Problems, 3)
	assert.Equal(t, Problem{Issue: "invalid_uei", Evidence: "UEI 'ABC123' has 6 characters, expected 12", RuleID: "R1"}, got.Problems[0])
	assert.Equal(t, "R4", got.Problems[2].RuleID)

	require.Len(t, got.Citations, 2)
	assert.Equal(t, "R1", got.Citations[0].RuleID)
	assert.Contains(t, got.Citations[0].Chunk, "Required UEI (12 chars)")
	assert.Equal(t, "R4", got.Citations[1].RuleID)
}

func TestRuleAnalyzer_AbstainsWithoutRule(t *testing.T) {
	a := NewRuleAnalyzer(NewCatalogRetriever("R1"))

	got, err := a.Analyze(context.Background(), model.ParsedData{}, sampleIssues())
	require.NoError(t, err)

	assert.Equal(t, UnknownRule, got.Problems[0].RuleID)
	assert.Equal(t, UnknownRule, got.Problems[1].RuleID)
	for _, c := range got.Citations {
		assert.NotEqual(t, "R1", c.RuleID, "removed rule must never be cited")
	}
	require.Len(t, got.Citations, 1)
}

func TestRuleAnalyzer_NoIssues(t *testing.T) {
	got, err := NewRuleAnalyzer(nil).Analyze(context.Background(), model.ParsedData{}, nil)
	require.NoError(t, err)
	assert.True(t, got.RequiredOK)
	assert.Empty(t, got.Problems)
	assert.NotNil(t, got.Citations)
}

func TestRuleAnalyzer_MinorIssuesKeepRequiredOK(t *testing.T) {
	issues := []compliance.Issue{{IssueID: "pp_missing_contact", Severity: compliance.SeverityMinor, RuleCategory: compliance.CategoryPerformance}}
	got, err := NewRuleAnalyzer(nil).Analyze(context.Background(), model.ParsedData{}, issues)
	require.NoError(t, err)
	assert.True(t, got.RequiredOK)
}

func TestCatalogRetriever(t *testing.T) {
	r := NewCatalogRetriever()
	ctx := context.Background()

	tests := []struct {
		query  string
		wantID string
		found  bool
	}{
		{"identity", "R1", true},
		{"Pricing", "R4", true},
		{"r5", "R5", true},
		{"problem with past performance records", "R3", true},
		{"", "", false},
		{"weather", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rule, ok, err := r.Retrieve(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.wantID, rule.ID)
		})
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err := r.Retrieve(cancelled, "identity")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFallback_EmptySubmission(t *testing.T) {
	got := Fallback(model.ParsedData{})

	assert.False(t, got.RequiredOK)
	assert.Equal(t, []Citation{
		{RuleID: "R1", Chunk: "Identity & Registry requirements"},
		{RuleID: "R3", Chunk: "Past Performance requirements"},
	}, got.Citations)

	var ids []string
	for _, p := range got.Problems {
		ids = append(ids, p.Issue)
	}
	assert.Equal(t, []string{"missing_uei", "missing_duns", "sam_not_active", "past_performance_min_value_not_met", "pricing_incomplete"}, ids)
	assert.Equal(t, "SAM.gov status is 'unknown', should be 'registered'", got.Problems[2].Evidence)
	assert.Equal(t, "No past performance contracts ≥ $25,000 found. Total contracts: 0", got.Problems[3].Evidence)
	assert.Equal(t, "R4", got.Problems[4].RuleID)
}

func TestFallback_CompleteSubmission(t *testing.T) {
	parsed := model.ParsedData{
		Company: &model.CompanyProfile{
			UEI:           model.String("ABCDEF123456"),
			DUNS:          model.String("123456789"),
			SAMRegistered: model.Bool(true),
		},
		PastPerformance: []model.PastPerformance{
			{ContractValue: model.String("$12,000")},
			{ContractValue: model.String("$1,200,000")},
		},
		Pricing: &model.PricingSheet{LaborCategories: []model.LaborCategory{{Category: model.String("Developer")}}},
	}

	got := Fallback(parsed)
	assert.True(t, got.RequiredOK)
	assert.Empty(t, got.Problems)
}

func TestLeadingAmount(t *testing.T) {
	assert.EqualValues(t, 250000, leadingAmount(model.String("$250,000 over 2 years")))
	assert.EqualValues(t, 0, leadingAmount(model.String("TBD")))
	assert.EqualValues(t, 0, leadingAmount(model.String(", 5")))
	assert.EqualValues(t, 0, leadingAmount(nil))
}

func TestTemplateGenerator(t *testing.T) {
	parsed := model.ParsedData{
		Company: &model.CompanyProfile{CompanyName: model.String("Acme Federal LLC"), NAICS: []string{"541511", "541611"}},
	}
	checklist := &PolicyChecklist{Problems: []Problem{{Issue: "missing_uei", Evidence: "UEI missing", RuleID: "R1"}}}

	brief, err := TemplateGenerator{}.Brief(context.Background(), parsed, checklist)
	require.NoError(t, err)
	assert.Contains(t, brief, "Acme Federal LLC")
	assert.Contains(t, brief, "541511, 541611")
	assert.Contains(t, brief, "- Missing Uei: UEI missing (Rule R1)")
	assert.Contains(t, brief, "No - missing or incomplete")

	email, err := TemplateGenerator{}.ClientEmail(context.Background(), parsed, checklist)
	require.NoError(t, err)
	assert.Contains(t, email, "Subject: Submission Status - Acme Federal LLC")
	assert.Contains(t, email, "REQUIRES ATTENTION")

	approved, err := TemplateGenerator{}.ClientEmail(context.Background(), model.ParsedData{}, &PolicyChecklist{})
	require.NoError(t, err)
	assert.Contains(t, approved, "Dear Vendor Team")
	assert.Contains(t, approved, "APPROVED")
}

type failingAnalyzer struct{ calls int }

func (f *failingAnalyzer) Analyze(ctx context.Context, parsed model.ParsedData, issues []compliance.Issue) (*PolicyChecklist, error) {
	f.calls++
	return nil, resilience.NewTransientError("analysis backend unavailable", nil)
}

type failingGenerator struct{}

func (failingGenerator) Brief(context.Context, model.ParsedData, *PolicyChecklist) (string, error) {
	return "", errors.New("401 unauthorized")
}

func (failingGenerator) ClientEmail(context.Context, model.ParsedData, *PolicyChecklist) (string, error) {
	return "", errors.New("401 unauthorized")
}

func fastRetry() resilience.RetryConfig {
	return resilience.RetryConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, Multiplier: 1}
}

func TestGuarded_FallsBackWhenAnalyzerFails(t *testing.T) {
	tl := observability.NewTestLogger()
	m := metrics.New()
	analyzer := &failingAnalyzer{}

	g := NewGuarded(analyzer, nil,
		WithRetry(fastRetry()),
		WithObserver(observability.NewStandardObserver(tl.Logger)),
		WithMetrics(m))

	result := g.Run(context.Background(), model.ParsedData{}, sampleIssues())

	assert.True(t, result.Fallback)
	assert.Equal(t, poweredByFallback, result.PoweredBy)
	assert.Equal(t, *Fallback(model.ParsedData{}), result.Checklist)
	assert.Equal(t, 3, analyzer.calls, "initial attempt plus two retries")
	assert.NotEmpty(t, result.Brief)

	tl.AssertLogged(t, zapcore.WarnLevel, "using fallback checklist")
}

func TestGuarded_OpenBreakerSkipsAnalyzer(t *testing.T) {
	analyzer := &failingAnalyzer{}
	cb := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{Name: "analysis", FailureThreshold: 1, Timeout: time.Hour})
	g := NewGuarded(analyzer, nil, WithRetry(fastRetry()), WithBreaker(cb))

	first, err := g.Analyze(context.Background(), model.ParsedData{}, nil)
	require.NoError(t, err)
	assert.False(t, first.RequiredOK)
	assert.Equal(t, 1, analyzer.calls)

	_, _ = g.Analyze(context.Background(), model.ParsedData{}, nil)
	assert.Equal(t, 1, analyzer.calls, "open breaker must short-circuit")
}

func TestGuarded_GeneratorFailureUsesManualReview(t *testing.T) {
	parsed := model.ParsedData{Company: &model.CompanyProfile{CompanyName: model.String("Acme Federal LLC")}}
	g := NewGuarded(nil, failingGenerator{}, WithRetry(fastRetry()))

	result := g.Run(context.Background(), parsed, sampleIssues())

	assert.False(t, result.Fallback)
	assert.Equal(t, poweredByRules, result.PoweredBy)
	assert.Contains(t, result.Brief, "Manual Review Required: Company Acme Federal LLC has 3 compliance issues")
	assert.Contains(t, result.ClientEmail, "Dear Acme Federal LLC Team")
}

func TestIssueTitle(t *testing.T) {
	assert.Equal(t, "Missing Uei", IssueTitle("missing_uei"))
	assert.Equal(t, "Past Performance Min Value Not Met", IssueTitle("past_performance_min_value_not_met"))
}
