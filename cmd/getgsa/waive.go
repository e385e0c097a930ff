// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"getgsa/internal/suppressions"
)

var (
	waiveFile      string
	waiveHash      string
	waiveIssueID   string
	waiveReason    string
	waiveCreatedBy string
	waiveExpires   string
)

func init() {
	rootCmd.AddCommand(waiveCmd)
	waiveCmd.AddCommand(waiveAddCmd, waiveListCmd, waiveRemoveCmd, waiveCleanupCmd, waiveEnableCmd, waiveDisableCmd)

	waiveCmd.PersistentFlags().StringVar(&waiveFile, "file", "", "Waiver file (default from configuration)")

	waiveAddCmd.Flags().StringVar(&waiveHash, "hash", "", "Issue hash from a verbose report (required)")
	waiveAddCmd.Flags().StringVar(&waiveIssueID, "issue-id", "", "Issue id the hash belongs to, for display")
	waiveAddCmd.Flags().StringVar(&waiveReason, "reason", "", "Why the issue is waived (required)")
	waiveAddCmd.Flags().StringVar(&waiveCreatedBy, "created-by", "", "Reviewer creating the waiver (default: $USER)")
	waiveAddCmd.Flags().StringVar(&waiveExpires, "expires", "", "Expiry as a date (2006-01-02) or a number of days like 30d (default 90d)")
	_ = waiveAddCmd.MarkFlagRequired("hash")
	_ = waiveAddCmd.MarkFlagRequired("reason")
}

var waiveCmd = &cobra.Command{
	Use:   "waive",
	Short: "Manage compliance issue waivers",
	Long: `Waive manages the waiver file. A waived issue is reported separately
and no longer counts as active until the waiver expires or is disabled.

Examples:
  # Print issue hashes, then waive one
  getgsa ingest profile.txt --verbose
  getgsa waive add --hash 5e0c... --issue-id missing_duns --reason "DUNS retired by GSA"

  # Review and prune waivers
  getgsa waive list
  getgsa waive cleanup`,
}

var waiveAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a waiver for an issue hash",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := waiverManager()
		if err != nil {
			return err
		}

		expiresAt, err := parseExpiry(waiveExpires, m.Now())
		if err != nil {
			return err
		}
		createdBy := waiveCreatedBy
		if createdBy == "" {
			createdBy = os.Getenv("USER")
		}

		w, err := m.AddHash(waiveHash, waiveIssueID, waiveReason, createdBy, expiresAt, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added waiver %s (expires %s)\n", w.ID, w.ExpiresAt.Format("2006-01-02"))
		return nil
	},
}

var waiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List waivers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := waiverManager()
		if err != nil {
			return err
		}

		waivers := m.List()
		if len(waivers) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No waivers found.")
			return nil
		}
		sort.Slice(waivers, func(i, j int) bool { return waivers[i].ID < waivers[j].ID })

		now := m.Now()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tISSUE\tHASH\tSTATUS\tEXPIRES\tREASON")
		for _, waiver := range waivers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				waiver.ID, waiver.IssueID, shortHash(waiver.Hash), waiverStatus(waiver, now),
				formatExpiry(waiver.ExpiresAt), waiver.Reason)
		}
		return w.Flush()
	},
}

var waiveRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a waiver",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := waiverManager()
		if err != nil {
			return err
		}
		if err := m.Remove(args[0]); err != nil {
			return fmt.Errorf("error removing waiver: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed waiver %s\n", args[0])
		return nil
	},
}

var waiveCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove expired waivers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := waiverManager()
		if err != nil {
			return err
		}
		removed, err := m.CleanupExpired()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleaned up %d expired waivers\n", removed)
		return nil
	},
}

var waiveEnableCmd = &cobra.Command{
	Use:   "enable <id>",
	Short: "Re-enable a disabled waiver",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setWaiverEnabled(cmd, args[0], true)
	},
}

var waiveDisableCmd = &cobra.Command{
	Use:   "disable <id>",
	Short: "Disable a waiver without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setWaiverEnabled(cmd, args[0], false)
	},
}

func setWaiverEnabled(cmd *cobra.Command, id string, enabled bool) error {
	m, err := waiverManager()
	if err != nil {
		return err
	}
	if err := m.SetWaiverEnabled(id, enabled); err != nil {
		return err
	}
	state := "Disabled"
	if enabled {
		state = "Enabled"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s waiver %s\n", state, id)
	return nil
}

func waiverManager() (*suppressions.Manager, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	return a.waivers(waiveFile, false), nil
}

// parseExpiry accepts "", "<n>d" or a 2006-01-02 date. Empty means the
// manager's default expiry.
func parseExpiry(s string, now time.Time) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid expiry %q: days must be a positive number", s)
		}
		t := now.Add(time.Duration(n) * 24 * time.Hour)
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid expiry %q: use 2006-01-02 or <n>d", s)
	}
	if !t.After(now) {
		return nil, fmt.Errorf("expiry %s is in the past", s)
	}
	return &t, nil
}

func waiverStatus(w suppressions.Waiver, now time.Time) string {
	switch {
	case !w.Enabled:
		return "disabled"
	case w.ExpiresAt != nil && now.After(*w.ExpiresAt):
		return "expired"
	default:
		return "active"
	}
}

func formatExpiry(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Format("2006-01-02")
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
