// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"getgsa/internal/compliance"
	"getgsa/internal/formatters"
	"getgsa/internal/ingest"
	"getgsa/internal/loader"
)

var (
	ingestBatch          string
	ingestHints          []string
	ingestOutput         string
	ingestWaiverFile     string
	ingestNoWaivers      bool
	ingestFailOnBlocking bool
)

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestBatch, "batch", "", "JSON batch file to ingest instead of files ('-' for stdin)")
	ingestCmd.Flags().StringSliceVar(&ingestHints, "hint", nil, "Document type hint as name=type (profile, past_performance, pricing)")
	ingestCmd.Flags().StringVarP(&ingestOutput, "output", "o", "", "Write the report to this file instead of stdout")
	ingestCmd.Flags().StringVar(&ingestWaiverFile, "waivers", "", "Waiver file (default from configuration)")
	ingestCmd.Flags().BoolVar(&ingestNoWaivers, "no-waivers", false, "Report waived issues as active")
	ingestCmd.Flags().BoolVar(&ingestFailOnBlocking, "fail-on-blocking", false, "Exit non-zero when blocking issues remain")
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest vendor documents and print the compliance report",
	Long: `Ingest classifies each document, extracts its fields, redacts contact
PII, checks the submission against the GSA rules and prints the report.

Supported files: .txt, .text, .md, .csv, .pdf, .xlsx

Examples:
  # Files, with a type hint for an ambiguous spreadsheet
  getgsa ingest profile.txt rates.xlsx --hint rates.xlsx=pricing

  # A JSON batch: {"documents":[{"name":"...","type_hint":"...","text":"..."}]}
  getgsa ingest --batch batch.json --format yaml -o report.yaml`,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.finish()

	ctx := cmd.Context()
	batch, err := readBatch(cmd, a, args)
	if err != nil {
		return err
	}

	pipeline, err := a.pipeline(a.waivers(ingestWaiverFile, ingestNoWaivers))
	if err != nil {
		return err
	}

	sub, err := pipeline.Ingest(ctx, batch)
	if err != nil {
		return err
	}
	report, err := pipeline.Analyze(ctx, sub.RequestID)
	if err != nil {
		return err
	}

	out, err := formatters.Export(a.cfg.Defaults.Format, report, a.formatterOptions())
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), ingestOutput, out); err != nil {
		return err
	}

	if ingestFailOnBlocking && compliance.HasBlocking(report.Issues) {
		return errBlocking
	}
	return nil
}

func readBatch(cmd *cobra.Command, a *app, args []string) (ingest.Batch, error) {
	if ingestBatch != "" {
		if len(args) > 0 {
			return ingest.Batch{}, fmt.Errorf("--batch cannot be combined with file arguments")
		}
		var r io.Reader = cmd.InOrStdin()
		if ingestBatch != "-" {
			f, err := os.Open(filepath.Clean(ingestBatch))
			if err != nil {
				return ingest.Batch{}, err
			}
			defer f.Close()
			r = f
		}
		return ingest.DecodeBatch(r)
	}

	if len(args) == 0 {
		return ingest.Batch{}, fmt.Errorf("no documents given: pass files or --batch")
	}
	hints, err := loader.ParseHints(ingestHints)
	if err != nil {
		return ingest.Batch{}, err
	}
	return loader.New(a.observer).LoadAll(cmd.Context(), args, hints)
}

// writeOutput prints to w, or to path when one is given
func writeOutput(w io.Writer, path, content string) error {
	if path == "" {
		_, err := fmt.Fprintln(w, content)
		return err
	}
	cleanPath := filepath.Clean(path)
	if err := os.WriteFile(cleanPath, []byte(content+"\n"), 0600); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	return nil
}
