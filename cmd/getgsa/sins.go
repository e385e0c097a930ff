// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"getgsa/internal/mapper"
)

func init() {
	rootCmd.AddCommand(sinsCmd)
}

var sinsCmd = &cobra.Command{
	Use:   "sins <naics-codes...>",
	Short: "Recommend Special Item Numbers for NAICS codes",
	Long: `Sins maps NAICS codes to GSA Special Item Numbers. Codes may be given
as separate arguments or comma separated. Unknown codes are ignored.

Examples:
  getgsa sins 541511 541512
  getgsa sins 541611,518210`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var codes []string
		for _, arg := range args {
			for _, code := range strings.Split(arg, ",") {
				if code = strings.TrimSpace(code); code != "" {
					codes = append(codes, code)
				}
			}
		}

		sins := mapper.RecommendedSINs(codes)
		if len(sins) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No SINs match the given NAICS codes.")
			return nil
		}
		for _, sin := range sins {
			fmt.Fprintln(cmd.OutOrStdout(), sin)
		}
		return nil
	},
}
