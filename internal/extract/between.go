// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"regexp"
	"strings"
	"sync"
)

// patternCache holds compiled label patterns. Label sets are fixed at the
// call sites so the cache stays small.
var patternCache sync.Map

func compiled(expr string) *regexp.Regexp {
	if re, ok := patternCache.Load(expr); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(expr)
	actual, _ := patternCache.LoadOrStore(expr, re)
	return actual.(*regexp.Regexp)
}

// Between returns the text following startLabel up to the first end label
// that produces a non-empty value. End labels are tried in order because the
// field order of source documents varies. When no end label yields a value
// the capture runs to the end of the text. Matching is case-insensitive.
//
// The boolean is false when nothing (or only whitespace) follows the label.
func Between(text, startLabel string, endLabels []string) (string, bool) {
	start := regexp.QuoteMeta(startLabel)

	for _, end := range endLabels {
		re := compiled(`(?i)` + start + `\s*(.*?)\s*` + regexp.QuoteMeta(end))
		if m := re.FindStringSubmatch(text); m != nil {
			if value := strings.TrimSpace(m[1]); value != "" {
				return value, true
			}
		}
	}

	re := compiled(`(?i)` + start + `\s*(.*?)$`)
	if m := re.FindStringSubmatch(text); m != nil {
		if value := strings.TrimSpace(m[1]); value != "" {
			return value, true
		}
	}
	return "", false
}

// between is the pointer-returning form used when filling records
func between(text, startLabel string, endLabels ...string) *string {
	if value, ok := Between(text, startLabel, endLabels); ok {
		return &value
	}
	return nil
}
