// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"getgsa/internal/analysis"
	"getgsa/internal/checklist"
	"getgsa/internal/compliance"
	"getgsa/internal/model"
	"getgsa/internal/redactors"
	"getgsa/internal/suppressions"
)

// Report is everything an analysis run produced for one submission. Parsed
// holds redacted records only.
type Report struct {
	RequestID       string
	GeneratedAt     time.Time
	Documents       []model.DocSummary
	Parsed          redactors.RedactedDocs
	Issues          []compliance.Issue
	Suppressed      []suppressions.SuppressedIssue
	RecommendedSINs []string
	Checklist       checklist.Checklist
	Policy          analysis.Result
}

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Verbose bool // Include issue hashes, brief and client email
	NoColor bool // Disable colored output
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the report
	Format(report *Report, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders report with the named formatter
func Export(format string, report *Report, options FormatterOptions) (string, error) {
	if report == nil {
		return "", fmt.Errorf("no report to format")
	}
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return formatter.Format(report, options)
}
