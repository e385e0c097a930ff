// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ingest turns a batch of vendor documents into a stored, redacted
// submission and analyses stored submissions into reports.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"getgsa/internal/analysis"
	"getgsa/internal/checklist"
	"getgsa/internal/classifier"
	"getgsa/internal/compliance"
	"getgsa/internal/extract"
	"getgsa/internal/formatters"
	"getgsa/internal/mapper"
	"getgsa/internal/metrics"
	"getgsa/internal/model"
	"getgsa/internal/observability"
	"getgsa/internal/parallel"
	"getgsa/internal/redactors"
	"getgsa/internal/suppressions"
)

// Pipeline wires classification, extraction, redaction, compliance and
// analysis around a Store.
type Pipeline struct {
	store    Store
	engine   *compliance.Engine
	redactor *redactors.Redactor
	waivers  *suppressions.Manager
	analysis *analysis.Guarded
	metrics  *metrics.Metrics
	observer *observability.StandardObserver
	workers  int
	newID    func() string
	now      func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithEngine sets the compliance engine
func WithEngine(e *compliance.Engine) Option {
	return func(p *Pipeline) { p.engine = e }
}

// WithRedactor sets the PII redactor
func WithRedactor(r *redactors.Redactor) Option {
	return func(p *Pipeline) { p.redactor = r }
}

// WithWaivers enables waiver filtering of compliance issues
func WithWaivers(m *suppressions.Manager) Option {
	return func(p *Pipeline) { p.waivers = m }
}

// WithAnalysis sets the guarded policy analysis
func WithAnalysis(g *analysis.Guarded) Option {
	return func(p *Pipeline) { p.analysis = g }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

func WithObserver(o *observability.StandardObserver) Option {
	return func(p *Pipeline) { p.observer = o }
}

// WithWorkers bounds how many documents are extracted concurrently
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// WithIDGenerator replaces the UUID request id source
func WithIDGenerator(fn func() string) Option {
	return func(p *Pipeline) { p.newID = fn }
}

// WithClock sets the clock used for submission and report timestamps
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline creates a pipeline over store. Unset options use the default
// engine, a default-salt redactor, the rule analyzer and no waivers.
func NewPipeline(store Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:   store,
		workers: 4,
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.engine == nil {
		p.engine = compliance.NewEngine()
	}
	if p.redactor == nil {
		p.redactor = redactors.NewRedactor(nil)
	}
	if p.observer == nil {
		p.observer = observability.NewStandardObserver(nil)
	}
	if p.analysis == nil {
		p.analysis = analysis.NewGuarded(nil, nil,
			analysis.WithObserver(p.observer), analysis.WithMetrics(p.metrics))
	}
	return p
}

// extracted is the per-document outcome of classification and extraction
type extracted struct {
	docType         model.DocType
	company         *model.CompanyProfile
	pastPerformance []model.PastPerformance
	pricing         *model.PricingSheet
}

func extractDocument(_ context.Context, job parallel.Job[Document]) (extracted, error) {
	doc := job.Payload
	out := extracted{docType: classifier.Classify(doc.Text, doc.TypeHint)}
	switch out.docType {
	case model.DocProfile:
		company := extract.ExtractProfile(doc.Text)
		out.company = &company
	case model.DocPastPerformance:
		out.pastPerformance = extract.ExtractPastPerformance(doc.Text)
	case model.DocPricing:
		sheet := extract.ExtractPricing(doc.Text)
		out.pricing = &sheet
	}
	return out, nil
}

// Ingest classifies and extracts every document, redacts the result and
// stores it under a new request id.
func (p *Pipeline) Ingest(ctx context.Context, batch Batch) (*Submission, error) {
	if len(batch.Documents) == 0 {
		return nil, ErrEmptyBatch
	}

	requestID := p.newID()
	ctx = observability.WithRequestID(ctx, requestID)
	start := p.now()
	done := p.observer.StartTiming(ctx, "ingest", "ingest_batch", "")

	results, _, err := parallel.ProcessOrdered(ctx, "extract", p.workers, batch.Documents, extractDocument, p.observer, nil)
	if err != nil {
		done(false, map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("extract documents: %w", err)
	}

	sub := &Submission{
		RequestID:    requestID,
		CreatedAt:    start,
		DocSummaries: make([]model.DocSummary, 0, len(results)),
		Parsed:       model.ParsedData{PastPerformance: []model.PastPerformance{}},
	}
	for i, res := range results {
		sub.DocSummaries = append(sub.DocSummaries, model.DocSummary{
			Name:     batch.Documents[i].Name,
			Type:     res.docType,
			Redacted: true,
		})
		p.metrics.RecordDocument(res.docType.String())

		if res.company != nil {
			sub.Parsed.Company = res.company
		}
		if res.pricing != nil {
			sub.Parsed.Pricing = res.pricing
		}
		sub.Parsed.PastPerformance = append(sub.Parsed.PastPerformance, res.pastPerformance...)
	}

	sub.RedactedDocs = p.redact(sub.Parsed)
	hashes := sub.RedactedDocs.Hashes()
	p.metrics.RecordRedactions(len(hashes.Emails), len(hashes.Phones))

	if err := p.store.Put(ctx, sub); err != nil {
		done(false, map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("store submission: %w", err)
	}

	p.metrics.ObserveIngest(p.now().Sub(start).Seconds())
	done(true, map[string]interface{}{
		"documents":        len(batch.Documents),
		"past_performance": len(sub.Parsed.PastPerformance),
		"redactions":       hashes.Len(),
	})
	p.observer.Logger().Info(ctx, "submission ingested",
		zap.Int("documents", len(batch.Documents)),
		zap.Bool("has_profile", sub.Parsed.Company != nil),
		zap.Bool("has_pricing", sub.Parsed.Pricing != nil))

	return sub, nil
}

func (p *Pipeline) redact(parsed model.ParsedData) redactors.RedactedDocs {
	docs := redactors.RedactedDocs{
		PastPerformance: make([]redactors.Redacted[model.PastPerformance], 0, len(parsed.PastPerformance)),
		Pricing:         parsed.Pricing,
	}
	if parsed.Company != nil {
		record, table := p.redactor.RedactProfile(*parsed.Company)
		docs.Company = &redactors.Redacted[model.CompanyProfile]{RedactedRecord: record, PIIHashes: table}
	}
	for _, pp := range parsed.PastPerformance {
		record, table := p.redactor.RedactPastPerformance(pp)
		docs.PastPerformance = append(docs.PastPerformance,
			redactors.Redacted[model.PastPerformance]{RedactedRecord: record, PIIHashes: table})
	}
	return docs
}

// Analyze runs compliance and policy analysis over a stored submission. An
// empty requestID selects the latest submission.
func (p *Pipeline) Analyze(ctx context.Context, requestID string) (*formatters.Report, error) {
	var (
		sub *Submission
		err error
	)
	if requestID == "" {
		sub, err = p.store.Latest(ctx)
	} else {
		sub, err = p.store.Get(ctx, requestID)
	}
	if err != nil {
		return nil, err
	}

	ctx = observability.WithRequestID(ctx, sub.RequestID)
	done := p.observer.StartTiming(ctx, "ingest", "analyze", "")

	parsed := sub.Parsed
	issues := p.engine.ValidateAll(parsed.Company, parsed.PastPerformance, parsed.Pricing)
	for i := range issues {
		issues[i].Evidence, _ = p.redactor.RedactText(issues[i].Evidence)
	}

	active, suppressed := issues, []suppressions.SuppressedIssue(nil)
	if p.waivers != nil {
		active, suppressed = p.waivers.Apply(issues)
		if len(suppressed) > 0 {
			if err := p.waivers.Touch(suppressed); err != nil {
				p.observer.Logger().Warn(ctx, "could not update waiver file", zap.Error(err))
			}
		}
	}
	for _, issue := range active {
		p.metrics.RecordIssue(string(issue.Severity), issue.RuleCategory)
	}
	p.metrics.RecordSuppressed(len(suppressed))

	var naics []string
	if parsed.Company != nil {
		naics = parsed.Company.NAICS
	}

	report := &formatters.Report{
		RequestID:       sub.RequestID,
		GeneratedAt:     p.now(),
		Documents:       sub.DocSummaries,
		Parsed:          sub.RedactedDocs,
		Issues:          active,
		Suppressed:      suppressed,
		RecommendedSINs: mapper.RecommendedSINs(naics),
		Checklist: checklist.Build(parsed.Company, parsed.PastPerformance,
			checklist.ValidateCompany(parsed.Company)),
		Policy: p.analysis.Run(ctx, sub.RedactedDocs.View(), active),
	}

	done(true, map[string]interface{}{
		"issues":     len(active),
		"suppressed": len(suppressed),
		"fallback":   report.Policy.Fallback,
	})
	return report, nil
}
