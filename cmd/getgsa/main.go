// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package main implements the getgsa CLI for vendor document intake and
// GSA schedule compliance review.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"getgsa/internal/version"
)

var (
	configFile  string
	profileName string
	formatFlag  string
	noColorFlag bool
	verboseFlag bool
	debugFlag   bool
	metricsFile string
	logLevel    string
)

// errBlocking signals a completed review with blocking issues
var errBlocking = errors.New("submission has blocking compliance issues")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errBlocking) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "getgsa",
	Short: "Vendor qualification intake for GSA schedules",
	Long: `getgsa reads vendor documents (company profile, past performance,
pricing), extracts structured fields, redacts contact PII and checks the
submission against the GSA schedule rules.

Examples:
  # Review a submission from files
  getgsa ingest profile.txt past_performance.pdf pricing.xlsx

  # Review a JSON batch from stdin as JSON output
  cat batch.json | getgsa ingest --batch - --format json

  # Check which document type a file would be routed to
  getgsa classify notes.txt`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Path to configuration file (default: search .getgsa.yaml)")
	flags.StringVar(&profileName, "profile", "", "Configuration profile to apply")
	flags.StringVar(&formatFlag, "format", "", "Output format: text, json, yaml")
	flags.BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	flags.BoolVar(&verboseFlag, "verbose", false, "Include issue hashes, brief and client email")
	flags.BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	flags.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.SetVersionTemplate("{{.Version}}\n")
}
