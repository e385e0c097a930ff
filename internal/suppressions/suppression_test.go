// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package suppressions

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"getgsa/internal/compliance"
)

func newTestIssue(id, evidence, category string) compliance.Issue {
	return compliance.Issue{
		IssueID:      id,
		Description:  "test issue",
		Evidence:     evidence,
		Severity:     compliance.SeverityCritical,
		RuleCategory: category,
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(filepath.Join(t.TempDir(), "waivers.yaml"))
}

func TestNewManager_NoFile(t *testing.T) {
	m := NewManager("/nonexistent/path.yaml")
	if m == nil {
		t.Fatal("expected non-nil manager")
	}
	if !m.IsEnabled() {
		t.Error("waiver manager should be enabled by default")
	}
	if rules := m.List(); rules == nil || len(rules) != 0 {
		t.Errorf("expected empty non-nil list, got %v", rules)
	}
}

func TestAddAndIsSuppressed(t *testing.T) {
	m := newTestManager(t)
	issue := newTestIssue("pp_missing_contact", "Record 1 has no contact email", compliance.CategoryPerformance)

	w, err := m.Add(issue, "contact supplied by phone", "reviewer", nil)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if w.ID != "SUP-00000001" {
		t.Errorf("expected first id SUP-00000001, got %s", w.ID)
	}

	suppressed, rule := m.IsSuppressed(issue)
	if !suppressed || rule == nil {
		t.Fatal("issue should be suppressed")
	}
	if rule.Reason != "contact supplied by phone" {
		t.Errorf("unexpected reason %q", rule.Reason)
	}

	other := newTestIssue("pp_missing_contact", "Record 2 has no contact email", compliance.CategoryPerformance)
	if ok, _ := m.IsSuppressed(other); ok {
		t.Error("waiver must not cover different evidence")
	}
}

func TestAdd_Duplicate(t *testing.T) {
	m := newTestManager(t)
	issue := newTestIssue("missing_duns", "DUNS missing", compliance.CategoryIdentity)

	if _, err := m.Add(issue, "r", "me", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := m.Add(issue, "r", "me", nil); err == nil {
		t.Error("expected duplicate waiver error")
	}
}

func TestApply(t *testing.T) {
	m := newTestManager(t)
	waived := newTestIssue("missing_poc_phone", "no phone", compliance.CategoryIdentity)
	kept := newTestIssue("missing_naics", "no codes", compliance.CategoryMapping)

	if _, err := m.Add(waived, "phone on file", "reviewer", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	active, suppressed := m.Apply([]compliance.Issue{waived, kept})
	if len(active) != 1 || active[0].IssueID != "missing_naics" {
		t.Errorf("unexpected active issues: %+v", active)
	}
	if len(suppressed) != 1 || suppressed[0].WaiverID != "SUP-00000001" || suppressed[0].Reason != "phone on file" {
		t.Errorf("unexpected suppressed issues: %+v", suppressed)
	}

	if err := m.Touch(suppressed); err != nil {
		t.Fatalf("Touch failed: %v", err)
	}
	if m.List()[0].LastSeenAt == nil {
		t.Error("expected last_seen_at to be set")
	}
}

func TestRemove(t *testing.T) {
	m := newTestManager(t)
	issue := newTestIssue("invalid_duns", "DUNS '12' is not a 9-digit number", compliance.CategoryIdentity)

	if _, err := m.Add(issue, "typo fixed offline", "tester", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := m.Remove(m.List()[0].ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if ok, _ := m.IsSuppressed(issue); ok {
		t.Error("issue should no longer be suppressed after removal")
	}
	if err := m.Remove("SUP-99999999"); err == nil {
		t.Error("expected error removing unknown waiver")
	}
}

func TestDisabledWaiver(t *testing.T) {
	m := newTestManager(t)
	issue := newTestIssue("missing_pricing", "no sheet", compliance.CategoryPricing)

	w, err := m.Add(issue, "r", "me", nil)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := m.SetWaiverEnabled(w.ID, false); err != nil {
		t.Fatalf("SetWaiverEnabled failed: %v", err)
	}
	if ok, _ := m.IsSuppressed(issue); ok {
		t.Error("disabled waiver must not suppress")
	}
}

func TestCleanupExpired(t *testing.T) {
	m := newTestManager(t)
	issue := newTestIssue("missing_poc_email", "no email", compliance.CategoryIdentity)

	past := time.Now().Add(-time.Hour)
	if _, err := m.Add(issue, "expired", "tester", &past); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if m.Expired(issue) == nil {
		t.Error("expected lapsed waiver to be reported")
	}
	if ok, _ := m.IsSuppressed(issue); ok {
		t.Error("expired waiver should not suppress")
	}

	removed, err := m.CleanupExpired()
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 expired waiver removed, got %d", removed)
	}
}

func TestDefaultExpiry(t *testing.T) {
	m := newTestManager(t)
	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	m.Now = func() time.Time { return fixed }

	w, err := m.Add(newTestIssue("missing_uei", "UEI missing", compliance.CategoryIdentity), "r", "me", nil)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if w.ExpiresAt == nil || !w.ExpiresAt.Equal(fixed.Add(DefaultExpiry)) {
		t.Errorf("unexpected expiry %v", w.ExpiresAt)
	}
}

func TestSetEnabled(t *testing.T) {
	m := newTestManager(t)
	issue := newTestIssue("missing_uei", "UEI missing", compliance.CategoryIdentity)
	if _, err := m.Add(issue, "r", "me", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	m.SetEnabled(false)
	if ok, _ := m.IsSuppressed(issue); ok {
		t.Error("disabled manager must not suppress")
	}
}

func TestIssueHash_Stable(t *testing.T) {
	a := newTestIssue("invalid_uei", "UEI 'ABC' has 3 characters, expected 12", compliance.CategoryIdentity)
	b := a
	b.Description = "different description"
	b.Severity = compliance.SeverityBlocking

	if IssueHash(a) != IssueHash(b) {
		t.Error("hash must ignore description and severity")
	}
	c := a
	c.RuleCategory = compliance.CategoryMapping
	if IssueHash(a) == IssueHash(c) {
		t.Error("hash must depend on rule category")
	}
}

func TestSave_NoPath(t *testing.T) {
	m := NewManager("")
	if _, err := m.Add(newTestIssue("x", "y", "z"), "r", "me", nil); err == nil {
		t.Error("expected error when no waiver file is configured")
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "waivers.yaml")

	m1 := NewManager(path)
	issue := newTestIssue("no_qualifying_contracts", "0 of 2 contracts qualify", compliance.CategoryPerformance)
	if _, err := m1.Add(issue, "award pending", "tester", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("waiver file should have been created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	m2 := NewManager(path)
	if ok, _ := m2.IsSuppressed(issue); !ok {
		t.Error("waiver should persist across manager instances")
	}
	if _, err := m2.Add(newTestIssue("other", "e", "c"), "r", "me", nil); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got := m2.List()[1].ID; got != "SUP-00000002" {
		t.Errorf("expected sequential id SUP-00000002, got %s", got)
	}
}

func TestUnparseableFileIsNotOverwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waivers.yaml")
	original := []byte("version: \"1.0\"\nwaivers: [\n  - id: w-1\n")
	if err := os.WriteFile(path, original, 0600); err != nil {
		t.Fatalf("failed to write waiver file: %v", err)
	}

	m := NewManager(path)
	if m.LoadError() == nil {
		t.Fatal("expected a load error for malformed YAML")
	}
	if len(m.List()) != 0 {
		t.Errorf("expected no waivers from a malformed file, got %v", m.List())
	}

	issue := newTestIssue("missing_uei", "UEI missing", compliance.CategoryIdentity)
	if _, err := m.Add(issue, "r", "me", nil); err == nil {
		t.Error("expected Add to refuse writing over the malformed file")
	}
	if err := m.Touch([]SuppressedIssue{{Issue: issue, WaiverID: "w-1"}}); err == nil {
		t.Error("expected Touch to refuse writing over the malformed file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read waiver file: %v", err)
	}
	if string(data) != string(original) {
		t.Errorf("waiver file was modified:\n%s", data)
	}
}

func TestMissingFileHasNoLoadError(t *testing.T) {
	m := newTestManager(t)
	if err := m.LoadError(); err != nil {
		t.Errorf("unexpected load error: %v", err)
	}
}
