// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package classifier assigns a document type to free text by counting
// indicator keywords for each type.
package classifier

import (
	"strings"

	"getgsa/internal/model"
)

// category pairs a document type with its indicator keywords. Keywords are
// lower-case and matched as substrings; each counts at most once.
type category struct {
	docType  model.DocType
	keywords []string
}

// categories are listed in tie-break priority order
var categories = []category{
	{
		docType:  model.DocProfile,
		keywords: []string{"uei:", "duns:", "naics:", "sam.gov", "company", "llc", "inc", "corp"},
	},
	{
		docType:  model.DocPastPerformance,
		keywords: []string{"customer:", "contract:", "value:", "period:", "contact:"},
	},
	{
		docType:  model.DocPricing,
		keywords: []string{"labor category", "rate", "hour", "developer", "manager", "$", "per hour"},
	},
}

// Scores returns the number of distinct indicator keywords found per type
func Scores(text string) map[model.DocType]int {
	lower := strings.ToLower(text)

	scores := make(map[model.DocType]int, len(categories))
	for _, c := range categories {
		n := 0
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				n++
			}
		}
		scores[c.docType] = n
	}
	return scores
}

// Classify returns the document type for text. A recognised hint wins
// outright. Otherwise the highest keyword score wins, ties going to the
// earlier of profile, past_performance, pricing; no indicators at all
// yields DocUnknown.
func Classify(text, hint string) model.DocType {
	if docType, ok := model.ParseDocType(hint); ok {
		return docType
	}

	scores := Scores(text)
	best, bestScore := model.DocUnknown, 0
	for _, c := range categories {
		if s := scores[c.docType]; s > bestScore {
			best, bestScore = c.docType, s
		}
	}
	return best
}
