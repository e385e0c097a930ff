// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package suppressions stores reviewer waivers for compliance issues in a
// YAML file. A waived issue is reported separately instead of counting
// against the vendor.
package suppressions

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"getgsa/internal/compliance"
)

// DefaultExpiry is applied when a waiver is added without an expiry
const DefaultExpiry = 90 * 24 * time.Hour

const fileVersion = "1.0"

// Waiver suppresses one compliance issue
type Waiver struct {
	ID         string            `yaml:"id"`
	Hash       string            `yaml:"hash"`
	IssueID    string            `yaml:"issue_id"`
	Reason     string            `yaml:"reason"`
	Enabled    bool              `yaml:"enabled"`
	CreatedBy  string            `yaml:"created_by,omitempty"`
	CreatedAt  time.Time         `yaml:"created_at"`
	LastSeenAt *time.Time        `yaml:"last_seen_at,omitempty"`
	ExpiresAt  *time.Time        `yaml:"expires_at,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// expired reports whether the waiver has passed its expiry at now
func (w Waiver) expired(now time.Time) bool {
	return w.ExpiresAt != nil && now.After(*w.ExpiresAt)
}

// WaiverFile is the on-disk layout
type WaiverFile struct {
	Version string   `yaml:"version"`
	Waivers []Waiver `yaml:"waivers"`
}

// SuppressedIssue pairs a waived issue with the waiver that hid it
type SuppressedIssue struct {
	compliance.Issue `yaml:",inline"`
	WaiverID         string `json:"waiver_id" yaml:"waiver_id"`
	Reason           string `json:"reason" yaml:"reason"`
}

// Manager handles issue waivers
type Manager struct {
	path    string
	file    *WaiverFile
	enabled bool
	loadErr error

	// Now is the clock used for expiry checks
	Now func() time.Time
}

// NewManager loads waivers from path. A missing file yields an empty
// waiver set and is created on the first write. A file that cannot be read
// or parsed also yields an empty set, but LoadError reports why and writes
// are refused so the existing waivers are not overwritten.
func NewManager(path string) *Manager {
	m := &Manager{
		path:    path,
		enabled: true,
		Now:     time.Now,
	}
	m.load()
	return m
}

func emptyFile() *WaiverFile {
	return &WaiverFile{Version: fileVersion, Waivers: []Waiver{}}
}

func (m *Manager) load() {
	m.file = emptyFile()
	if m.path == "" {
		return
	}

	data, err := os.ReadFile(filepath.Clean(m.path))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.loadErr = fmt.Errorf("failed to read waiver file %s: %w", m.path, err)
		}
		return
	}

	var file WaiverFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		m.loadErr = fmt.Errorf("failed to parse waiver file %s: %w", m.path, err)
		return
	}
	if file.Waivers == nil {
		file.Waivers = []Waiver{}
	}
	m.file = &file
}

// IssueHash identifies an issue independent of the run that produced it.
// The evidence is hashed first so the composite never holds raw values.
func IssueHash(issue compliance.Issue) string {
	components := []string{
		issue.IssueID,
		issue.RuleCategory,
		shortHash(strings.TrimSpace(issue.Evidence)),
	}
	sum := sha256.Sum256([]byte(strings.Join(components, "|")))
	return fmt.Sprintf("%x", sum)
}

func shortHash(data string) string {
	if data == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", sum)[:16]
}

// IsSuppressed reports whether an enabled, unexpired waiver covers issue
func (m *Manager) IsSuppressed(issue compliance.Issue) (bool, *Waiver) {
	if !m.enabled {
		return false, nil
	}

	hash := IssueHash(issue)
	now := m.Now()
	for i := range m.file.Waivers {
		w := m.file.Waivers[i]
		if w.Hash != hash || !w.Enabled || w.expired(now) {
			continue
		}
		return true, &w
	}
	return false, nil
}

// Apply splits issues into active and suppressed, preserving order
func (m *Manager) Apply(issues []compliance.Issue) ([]compliance.Issue, []SuppressedIssue) {
	active := make([]compliance.Issue, 0, len(issues))
	var suppressed []SuppressedIssue

	for _, issue := range issues {
		if ok, w := m.IsSuppressed(issue); ok {
			suppressed = append(suppressed, SuppressedIssue{Issue: issue, WaiverID: w.ID, Reason: w.Reason})
			continue
		}
		active = append(active, issue)
	}
	return active, suppressed
}

// Add creates a waiver for issue. A nil expiry defaults to DefaultExpiry
// from now.
func (m *Manager) Add(issue compliance.Issue, reason, createdBy string, expiresAt *time.Time) (*Waiver, error) {
	metadata := map[string]string{
		"rule_category": issue.RuleCategory,
		"severity":      string(issue.Severity),
		"evidence_hash": shortHash(issue.Evidence),
	}
	return m.AddHash(IssueHash(issue), issue.IssueID, reason, createdBy, expiresAt, metadata)
}

// AddHash creates a waiver from a hash printed in an earlier report
func (m *Manager) AddHash(hash, issueID, reason, createdBy string, expiresAt *time.Time, metadata map[string]string) (*Waiver, error) {
	if hash == "" {
		return nil, fmt.Errorf("waiver hash is required")
	}
	for _, w := range m.file.Waivers {
		if w.Hash == hash {
			return nil, fmt.Errorf("waiver %s already covers this issue", w.ID)
		}
	}

	now := m.Now()
	if expiresAt == nil {
		expiry := now.Add(DefaultExpiry)
		expiresAt = &expiry
	}

	w := Waiver{
		ID:        m.nextID(),
		Hash:      hash,
		IssueID:   issueID,
		Reason:    reason,
		Enabled:   true,
		CreatedBy: createdBy,
		CreatedAt: now,
		ExpiresAt: expiresAt,
		Metadata:  metadata,
	}
	m.file.Waivers = append(m.file.Waivers, w)
	if err := m.save(); err != nil {
		return nil, err
	}
	return &w, nil
}

func (m *Manager) nextID() string {
	maxID := 0
	for _, w := range m.file.Waivers {
		var num int
		if _, err := fmt.Sscanf(w.ID, "SUP-%08d", &num); err == nil && num > maxID {
			maxID = num
		}
	}
	return fmt.Sprintf("SUP-%08d", maxID+1)
}

// Remove deletes a waiver by ID
func (m *Manager) Remove(id string) error {
	for i, w := range m.file.Waivers {
		if w.ID == id {
			m.file.Waivers = append(m.file.Waivers[:i], m.file.Waivers[i+1:]...)
			return m.save()
		}
	}
	return fmt.Errorf("waiver with ID %s not found", id)
}

// SetWaiverEnabled toggles a waiver by ID
func (m *Manager) SetWaiverEnabled(id string, enabled bool) error {
	for i := range m.file.Waivers {
		if m.file.Waivers[i].ID == id {
			m.file.Waivers[i].Enabled = enabled
			return m.save()
		}
	}
	return fmt.Errorf("waiver with ID %s not found", id)
}

// List returns all waivers
func (m *Manager) List() []Waiver {
	return m.file.Waivers
}

// Touch records that the waived issues were seen in a run
func (m *Manager) Touch(suppressed []SuppressedIssue) error {
	if len(suppressed) == 0 {
		return nil
	}
	now := m.Now()
	ids := make(map[string]struct{}, len(suppressed))
	for _, s := range suppressed {
		ids[s.WaiverID] = struct{}{}
	}
	for i := range m.file.Waivers {
		if _, ok := ids[m.file.Waivers[i].ID]; ok {
			m.file.Waivers[i].LastSeenAt = &now
		}
	}
	return m.save()
}

// CleanupExpired removes expired waivers and returns how many were dropped
func (m *Manager) CleanupExpired() (int, error) {
	now := m.Now()
	active := make([]Waiver, 0, len(m.file.Waivers))
	for _, w := range m.file.Waivers {
		if !w.expired(now) {
			active = append(active, w)
		}
	}

	removed := len(m.file.Waivers) - len(active)
	m.file.Waivers = active
	if removed == 0 {
		return 0, nil
	}
	return removed, m.save()
}

// Expired returns the enabled waiver for issue that has lapsed, if any
func (m *Manager) Expired(issue compliance.Issue) *Waiver {
	hash := IssueHash(issue)
	now := m.Now()
	for i := range m.file.Waivers {
		w := m.file.Waivers[i]
		if w.Hash == hash && w.Enabled && w.expired(now) {
			return &w
		}
	}
	return nil
}

// SetEnabled enables or disables waiver matching altogether
func (m *Manager) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// IsEnabled returns whether waiver matching is on
func (m *Manager) IsEnabled() bool {
	return m.enabled
}

// Path returns the waiver file path
func (m *Manager) Path() string {
	return m.path
}

// LoadError returns the error that kept the waiver file from loading, or
// nil when it loaded or did not exist
func (m *Manager) LoadError() error {
	return m.loadErr
}

func (m *Manager) save() error {
	if m.path == "" {
		return fmt.Errorf("no waiver file configured")
	}
	if m.loadErr != nil {
		return fmt.Errorf("refusing to overwrite waiver file: %w", m.loadErr)
	}

	data, err := yaml.Marshal(m.file)
	if err != nil {
		return fmt.Errorf("failed to marshal waivers: %w", err)
	}

	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Waiver files may reference vendor issues; keep them private
	if err := os.WriteFile(m.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write waiver file: %w", err)
	}
	return nil
}
