// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import "strings"

// Squeeze collapses every whitespace run (spaces, tabs, newlines) into a
// single space and trims the ends. All extractors work on squeezed text so
// that line wrapping in the source never splits a label from its value.
func Squeeze(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
