// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package metrics counts pipeline activity in a private Prometheus registry.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "getgsa"

// Metrics holds the pipeline counters.
//
//   - getgsa_documents_total{type} - documents classified, by document type
//   - getgsa_issues_total{severity,category} - compliance issues raised
//   - getgsa_redactions_total{kind} - PII values replaced by hash tokens
//   - getgsa_suppressed_issues_total - issues hidden by a waiver
//   - getgsa_analysis_fallbacks_total - policy analyses served by the fallback checklist
//   - getgsa_ingest_duration_seconds - wall time of one batch ingestion
type Metrics struct {
	registry *prometheus.Registry

	DocumentsTotal  *prometheus.CounterVec
	IssuesTotal     *prometheus.CounterVec
	RedactionsTotal *prometheus.CounterVec
	SuppressedTotal prometheus.Counter
	FallbacksTotal  prometheus.Counter
	IngestDuration  prometheus.Histogram
}

// New creates metrics registered on a fresh registry, so several pipelines
// in one process (and tests) never collide.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		DocumentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_total",
				Help:      "Total number of documents classified",
			},
			[]string{"type"},
		),
		IssuesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "issues_total",
				Help:      "Total number of compliance issues raised",
			},
			[]string{"severity", "category"},
		),
		RedactionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "redactions_total",
				Help:      "Total number of PII values replaced with hash tokens",
			},
			[]string{"kind"}, // "email" or "phone"
		),
		SuppressedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suppressed_issues_total",
				Help:      "Total number of issues suppressed by a waiver",
			},
		),
		FallbacksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analysis_fallbacks_total",
				Help:      "Total number of policy analyses answered by the fallback checklist",
			},
		),
		IngestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ingest_duration_seconds",
				Help:      "Duration of batch ingestion in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
		),
	}
}

// Registry exposes the private registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordDocument counts one classified document. Safe on a nil receiver.
func (m *Metrics) RecordDocument(docType string) {
	if m == nil {
		return
	}
	m.DocumentsTotal.WithLabelValues(docType).Inc()
}

// RecordIssue counts one compliance issue.
func (m *Metrics) RecordIssue(severity, category string) {
	if m == nil {
		return
	}
	m.IssuesTotal.WithLabelValues(severity, category).Inc()
}

// RecordRedactions adds the number of redacted emails and phones.
func (m *Metrics) RecordRedactions(emails, phones int) {
	if m == nil {
		return
	}
	if emails > 0 {
		m.RedactionsTotal.WithLabelValues("email").Add(float64(emails))
	}
	if phones > 0 {
		m.RedactionsTotal.WithLabelValues("phone").Add(float64(phones))
	}
}

// RecordSuppressed counts issues hidden by waivers.
func (m *Metrics) RecordSuppressed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SuppressedTotal.Add(float64(n))
}

// RecordFallback counts one fallback analysis.
func (m *Metrics) RecordFallback() {
	if m == nil {
		return
	}
	m.FallbacksTotal.Inc()
}

// ObserveIngest records the duration of one ingestion in seconds.
func (m *Metrics) ObserveIngest(seconds float64) {
	if m == nil {
		return
	}
	m.IngestDuration.Observe(seconds)
}

// WriteToTextfile writes every metric in the node-exporter textfile format.
func (m *Metrics) WriteToTextfile(filename string) error {
	if m == nil {
		return fmt.Errorf("metrics not initialised")
	}
	if err := prometheus.WriteToTextfile(filename, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", filename, err)
	}
	return nil
}
