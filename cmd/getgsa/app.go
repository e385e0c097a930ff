// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"getgsa/internal/analysis"
	"getgsa/internal/compliance"
	"getgsa/internal/config"
	"getgsa/internal/formatters"
	_ "getgsa/internal/formatters/json"
	_ "getgsa/internal/formatters/text"
	_ "getgsa/internal/formatters/yaml"
	"getgsa/internal/ingest"
	"getgsa/internal/metrics"
	"getgsa/internal/observability"
	"getgsa/internal/redactors"
	"getgsa/internal/resilience"
	"getgsa/internal/suppressions"
)

// app holds the resolved configuration and shared components for a run
type app struct {
	cfg      *config.Config
	logger   *observability.Logger
	observer *observability.StandardObserver
	metrics  *metrics.Metrics
}

// newApp loads configuration, applies the profile and flag overrides and
// builds the logger.
func newApp() (*app, error) {
	cfg, err := config.LoadConfigOrDefault(configFile)
	if err != nil {
		if configFile != "" {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\nUsing default configuration\n", err)
	}

	if profileName != "" {
		if err := cfg.ApplyProfile(profileName); err != nil {
			return nil, err
		}
	}
	if formatFlag != "" {
		cfg.Defaults.Format = formatFlag
	}
	if noColorFlag || !isTerminal(os.Stdout) {
		cfg.Defaults.NoColor = true
	}
	if verboseFlag {
		cfg.Defaults.Verbose = true
	}
	if debugFlag {
		cfg.Defaults.Debug = true
		cfg.Logging.Level = "debug"
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if metricsFile != "" {
		cfg.Metrics.File = metricsFile
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(observability.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		observer: observability.NewStandardObserver(logger),
		metrics:  metrics.New(),
	}, nil
}

func (a *app) hasher() (*redactors.Hasher, error) {
	return redactors.NewHasher(a.cfg.Redaction.Salt,
		redactors.ParseHashMode(a.cfg.Redaction.HashMode), a.cfg.Redaction.HashLength)
}

func (a *app) engine() *compliance.Engine {
	return compliance.NewEngine(
		compliance.WithMinContractValue(a.cfg.Compliance.MinContractValue),
		compliance.WithRecencyWindow(time.Duration(a.cfg.Compliance.RecencyDays)*24*time.Hour),
	)
}

func (a *app) guarded() *analysis.Guarded {
	retry := resilience.DefaultRetryConfig()
	retry.MaxRetries = a.cfg.Analysis.MaxRetries
	retry.OnRetry = func(attempt int, err error) {
		a.logger.Debug(context.Background(), "retrying analysis",
			zap.Int("attempt", attempt),
			zap.String("error_type", resilience.ClassifyError(err).Type.String()))
	}

	breaker := resilience.DefaultCircuitBreakerConfig("analysis")
	breaker.FailureThreshold = a.cfg.Analysis.FailureThreshold

	return analysis.NewGuarded(nil, nil,
		analysis.WithRetry(retry),
		analysis.WithBreaker(resilience.NewCircuitBreaker(breaker)),
		analysis.WithObserver(a.observer),
		analysis.WithMetrics(a.metrics))
}

func (a *app) waivers(path string, disabled bool) *suppressions.Manager {
	if path == "" {
		path = a.cfg.Suppressions.File
	}
	m := suppressions.NewManager(path)
	if err := m.LoadError(); err != nil {
		a.logger.Warn(context.Background(), "waiver file ignored", zap.Error(err))
	}
	m.SetEnabled(!disabled)
	return m
}

// pipeline builds the ingestion pipeline over a fresh in-memory store
func (a *app) pipeline(waivers *suppressions.Manager) (*ingest.Pipeline, error) {
	hasher, err := a.hasher()
	if err != nil {
		return nil, err
	}
	return ingest.NewPipeline(ingest.NewMemoryStore(),
		ingest.WithEngine(a.engine()),
		ingest.WithRedactor(redactors.NewRedactor(hasher)),
		ingest.WithWaivers(waivers),
		ingest.WithAnalysis(a.guarded()),
		ingest.WithMetrics(a.metrics),
		ingest.WithObserver(a.observer),
		ingest.WithWorkers(a.cfg.Ingest.Workers),
	), nil
}

func (a *app) formatterOptions() formatters.FormatterOptions {
	return formatters.FormatterOptions{
		Verbose: a.cfg.Defaults.Verbose,
		NoColor: a.cfg.Defaults.NoColor,
	}
}

// finish flushes metrics and the logger
func (a *app) finish() {
	if a.cfg.Metrics.File != "" {
		if err := a.metrics.WriteToTextfile(a.cfg.Metrics.File); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write metrics: %v\n", err)
		}
	}
	_ = a.logger.Sync()
}

// isTerminal checks if the given file is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
