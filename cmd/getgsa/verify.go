// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNoMatch = errors.New("value does not match hash")

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.AddCommand(verifyEmailCmd)
	verifyCmd.AddCommand(verifyPhoneCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a candidate value against a redaction hash",
	Long: `Verify recomputes the hash of a candidate email or phone number with the
configured salt and hash mode and compares it to a hash from a report.

Examples:
  getgsa verify email jane@acme.co 3f2a9c1d0b7e6a54
  getgsa verify phone "(415) 555-0100" 9be1c04f7a2d3e18`,
}

var verifyEmailCmd = &cobra.Command{
	Use:   "email <candidate> <hash>",
	Short: "Verify an email address",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(cmd, args, "email")
	},
}

var verifyPhoneCmd = &cobra.Command{
	Use:   "phone <candidate> <hash>",
	Short: "Verify a phone number",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(cmd, args, "phone")
	},
}

func runVerify(cmd *cobra.Command, args []string, kind string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.finish()

	hasher, err := a.hasher()
	if err != nil {
		return err
	}
	defer hasher.Close()

	var ok bool
	switch kind {
	case "email":
		ok = hasher.VerifyEmail(args[0], args[1])
	default:
		ok = hasher.VerifyPhone(args[0], args[1])
	}
	if !ok {
		return errNoMatch
	}
	fmt.Fprintln(cmd.OutOrStdout(), "match")
	return nil
}
