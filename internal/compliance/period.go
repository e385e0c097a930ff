// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compliance

import (
	"regexp"
	"time"
)

// PeriodParser derives a contract end date from a period of performance
// string such as "01/2022 - 12/2024".
type PeriodParser interface {
	EndDate(period string) (time.Time, bool)
}

// PeriodParserFunc adapts a function to PeriodParser
type PeriodParserFunc func(period string) (time.Time, bool)

// EndDate calls f(period)
func (f PeriodParserFunc) EndDate(period string) (time.Time, bool) {
	return f(period)
}

var dateToken = regexp.MustCompile(`(?i)\b(?:\d{1,2}/\d{4}|(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4})\b`)

var periodLayouts = []string{
	"01/2006",
	"1/2006",
	"Jan 2006",
	"January 2006",
	"Jan. 2006",
}

// LastDatePeriodParser treats the last month-and-year token in the period
// as the end of the contract, so "Mar 2021 - June 2024" ends in June 2024.
// The end date is the last day of that month, in UTC.
type LastDatePeriodParser struct{}

// EndDate implements PeriodParser
func (LastDatePeriodParser) EndDate(period string) (time.Time, bool) {
	tokens := dateToken.FindAllString(period, -1)
	if len(tokens) == 0 {
		return time.Time{}, false
	}
	last := tokens[len(tokens)-1]

	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, last); err == nil {
			return lastDayOfMonth(t), true
		}
	}
	return time.Time{}, false
}

func lastDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}
