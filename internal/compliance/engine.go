// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package compliance validates extracted vendor records against the GSA
// qualification rules R1-R4 and exposes the rule catalog used for citations.
package compliance

import (
	"time"

	"getgsa/internal/model"
)

const (
	// DefaultMinContractValue is the smallest contract value in dollars that
	// counts towards past performance.
	DefaultMinContractValue = 25000

	// DefaultRecencyWindow approximates 36 months
	DefaultRecencyWindow = 1080 * 24 * time.Hour
)

// Engine runs the rule checks. The zero value is not usable; build one with
// NewEngine. An Engine is safe for concurrent use once built.
type Engine struct {
	// Now is the evaluation time for the recency check
	Now func() time.Time
	// Periods turns a free-form period string into a contract end date
	Periods PeriodParser
	// MinContractValue is the qualifying threshold in dollars
	MinContractValue float64
	// RecencyWindow is how long ago a qualifying contract may have ended
	RecencyWindow time.Duration
}

// Option configures an Engine
type Option func(*Engine)

// WithClock fixes the evaluation time source
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.Now = now }
}

// WithPeriodParser replaces the end-date heuristic
func WithPeriodParser(p PeriodParser) Option {
	return func(e *Engine) { e.Periods = p }
}

// WithMinContractValue overrides the qualifying threshold
func WithMinContractValue(v float64) Option {
	return func(e *Engine) { e.MinContractValue = v }
}

// WithRecencyWindow overrides how recent a qualifying contract must be
func WithRecencyWindow(d time.Duration) Option {
	return func(e *Engine) { e.RecencyWindow = d }
}

// NewEngine returns an engine with the standard thresholds, the wall clock
// and LastDatePeriodParser, adjusted by opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		Now:              time.Now,
		Periods:          LastDatePeriodParser{},
		MinContractValue: DefaultMinContractValue,
		RecencyWindow:    DefaultRecencyWindow,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// ValidateAll runs the default engine
func ValidateAll(company *model.CompanyProfile, pastPerformance []model.PastPerformance, pricing *model.PricingSheet) []Issue {
	return defaultEngine.ValidateAll(company, pastPerformance, pricing)
}

// ValidateAll checks R1 through R4 and returns every finding in check order.
// A nil company is checked as an empty profile; a nil pricing sheet counts
// as missing. Inputs are never modified.
func (e *Engine) ValidateAll(company *model.CompanyProfile, pastPerformance []model.PastPerformance, pricing *model.PricingSheet) []Issue {
	if company == nil {
		company = &model.CompanyProfile{}
	}

	var issues issueList
	checkIdentity(&issues, company)
	checkNAICS(&issues, company.NAICS)
	e.checkPastPerformance(&issues, pastPerformance)
	checkPricing(&issues, pricing)
	return issues
}
