// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue sums every series of the named family.
func counterValue(t *testing.T, m *Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.RecordDocument("profile")
	m.RecordDocument("pricing")
	m.RecordIssue("blocking", "identity")
	m.RecordRedactions(2, 1)
	m.RecordRedactions(0, 0)
	m.RecordSuppressed(3)
	m.RecordFallback()
	m.ObserveIngest(0.25)

	assert.Equal(t, 2.0, counterValue(t, m, "getgsa_documents_total"))
	assert.Equal(t, 1.0, counterValue(t, m, "getgsa_issues_total"))
	assert.Equal(t, 3.0, counterValue(t, m, "getgsa_redactions_total"))
	assert.Equal(t, 3.0, counterValue(t, m, "getgsa_suppressed_issues_total"))
	assert.Equal(t, 1.0, counterValue(t, m, "getgsa_analysis_fallbacks_total"))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordDocument("profile")

	assert.Equal(t, 1.0, counterValue(t, a, "getgsa_documents_total"))
	assert.Equal(t, 0.0, counterValue(t, b, "getgsa_documents_total"))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordDocument("profile")
		m.RecordIssue("minor", "performance")
		m.RecordRedactions(1, 1)
		m.RecordSuppressed(1)
		m.RecordFallback()
		m.ObserveIngest(1)
	})
	assert.Error(t, m.WriteToTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestMetrics_WriteToTextfile(t *testing.T) {
	m := New()
	m.RecordDocument("past_performance")

	path := filepath.Join(t.TempDir(), "getgsa.prom")
	require.NoError(t, m.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `getgsa_documents_total{type="past_performance"} 1`))
}
