// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"getgsa/internal/classifier"
	"getgsa/internal/loader"
	"getgsa/internal/model"
)

var classifyHints []string

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringSliceVar(&classifyHints, "hint", nil, "Document type hint as name=type")
}

var classifyCmd = &cobra.Command{
	Use:   "classify <files...>",
	Short: "Show the document type each file would be routed to",
	Long: `Classify prints the detected document type of each file and the keyword
score behind it. A hint overrides the scores.

Examples:
  getgsa classify profile.txt notes.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.finish()

	hints, err := loader.ParseHints(classifyHints)
	if err != nil {
		return err
	}
	batch, err := loader.New(a.observer).LoadAll(cmd.Context(), args, hints)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tTYPE\tPROFILE\tPAST_PERFORMANCE\tPRICING")
	for _, doc := range batch.Documents {
		scores := classifier.Scores(doc.Text)
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", doc.Name, classifier.Classify(doc.Text, doc.TypeHint),
			scores[model.DocProfile], scores[model.DocPastPerformance], scores[model.DocPricing])
	}
	return w.Flush()
}
