// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"getgsa/internal/compliance"
	"getgsa/internal/metrics"
	"getgsa/internal/model"
	"getgsa/internal/observability"
	"getgsa/internal/resilience"
)

// Result is the output of a guarded analysis
type Result struct {
	Checklist   PolicyChecklist `json:"checklist" yaml:"checklist"`
	Brief       string          `json:"brief" yaml:"brief"`
	ClientEmail string          `json:"client_email" yaml:"client_email"`
	PoweredBy   string          `json:"powered_by" yaml:"powered_by"`
	Fallback    bool            `json:"fallback" yaml:"fallback"`
}

const (
	poweredByRules    = "rule analyzer"
	poweredByFallback = "fallback checklist"
)

// Guarded runs an Analyzer and Generator behind retry and a circuit
// breaker. Analysis never fails outright: when the analyzer gives up the
// Fallback checklist is used, and when generation fails the manual review
// texts are used.
type Guarded struct {
	Analyzer  Analyzer
	Generator Generator
	Retry     resilience.RetryConfig
	Breaker   *resilience.CircuitBreaker

	observer *observability.StandardObserver
	metrics  *metrics.Metrics
}

// GuardOption configures a Guarded
type GuardOption func(*Guarded)

// WithRetry overrides the retry policy
func WithRetry(cfg resilience.RetryConfig) GuardOption {
	return func(g *Guarded) { g.Retry = cfg }
}

// WithBreaker overrides the circuit breaker
func WithBreaker(cb *resilience.CircuitBreaker) GuardOption {
	return func(g *Guarded) { g.Breaker = cb }
}

// WithObserver sets the observer used for timing logs
func WithObserver(o *observability.StandardObserver) GuardOption {
	return func(g *Guarded) { g.observer = o }
}

// WithMetrics sets the fallback counter sink
func WithMetrics(m *metrics.Metrics) GuardOption {
	return func(g *Guarded) { g.metrics = m }
}

// NewGuarded wraps analyzer and generator. Nil arguments select the
// RuleAnalyzer over the default catalog and the TemplateGenerator.
func NewGuarded(analyzer Analyzer, generator Generator, opts ...GuardOption) *Guarded {
	if analyzer == nil {
		analyzer = NewRuleAnalyzer(nil)
	}
	if generator == nil {
		generator = TemplateGenerator{}
	}
	g := &Guarded{
		Analyzer:  analyzer,
		Generator: generator,
		Retry:     resilience.DefaultRetryConfig(),
		Breaker:   resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("analysis")),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.observer == nil {
		g.observer = observability.NewStandardObserver(nil)
	}
	return g
}

// Analyze implements Analyzer. It never returns an error.
func (g *Guarded) Analyze(ctx context.Context, parsed model.ParsedData, issues []compliance.Issue) (*PolicyChecklist, error) {
	checklist, _ := g.checklist(ctx, parsed, issues)
	return checklist, nil
}

// Run produces the checklist, the brief and the client email.
func (g *Guarded) Run(ctx context.Context, parsed model.ParsedData, issues []compliance.Issue) Result {
	checklist, fellBack := g.checklist(ctx, parsed, issues)

	result := Result{
		Checklist: *checklist,
		PoweredBy: poweredByRules,
		Fallback:  fellBack,
	}
	if fellBack {
		result.PoweredBy = poweredByFallback
	}

	brief, err := g.generate(ctx, "brief", func(ctx context.Context) (string, error) {
		return g.Generator.Brief(ctx, parsed, checklist)
	})
	if err != nil {
		brief = ManualReviewBrief(parsed, checklist)
	}
	result.Brief = brief

	email, err := g.generate(ctx, "client_email", func(ctx context.Context) (string, error) {
		return g.Generator.ClientEmail(ctx, parsed, checklist)
	})
	if err != nil {
		email = ManualReviewEmail(parsed)
	}
	result.ClientEmail = email

	return result
}

func (g *Guarded) checklist(ctx context.Context, parsed model.ParsedData, issues []compliance.Issue) (*PolicyChecklist, bool) {
	done := g.observer.StartTiming(ctx, "analysis", "policy_checklist", "")

	checklist, err := resilience.RetryWithResult(ctx, g.Retry, func(ctx context.Context) (*PolicyChecklist, error) {
		var out *PolicyChecklist
		err := g.Breaker.Execute(ctx, func(ctx context.Context) error {
			var err error
			out, err = g.Analyzer.Analyze(ctx, parsed, issues)
			return err
		})
		return out, err
	})
	if err == nil && checklist != nil {
		done(true, map[string]interface{}{"problems": len(checklist.Problems)})
		return checklist, false
	}

	classified := resilience.ClassifyError(err)
	errType := "empty_result"
	if classified != nil {
		errType = classified.Type.String()
	}
	done(false, map[string]interface{}{"error_type": errType})
	g.observer.Logger().Warn(ctx, "analyzer unavailable, using fallback checklist",
		zap.String("error_type", errType),
		zap.String("breaker_state", g.Breaker.GetState().String()))
	g.metrics.RecordFallback()

	return Fallback(parsed), true
}

func (g *Guarded) generate(ctx context.Context, what string, fn resilience.RetryableFunc[string]) (string, error) {
	start := time.Now()
	text, err := resilience.RetryWithResult(ctx, g.Retry, func(ctx context.Context) (string, error) {
		var out string
		err := g.Breaker.Execute(ctx, func(ctx context.Context) error {
			var err error
			out, err = fn(ctx)
			return err
		})
		return out, err
	})
	if err != nil {
		g.observer.Logger().Warn(ctx, "text generation failed, using manual review text",
			zap.String("output", what),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
	}
	return text, err
}
