// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package compliance

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"getgsa/internal/model"
)

var (
	digitRun      = regexp.MustCompile(`\d+`)
	currencyStrip = strings.NewReplacer("$", "", ",", "")
	dollars       = message.NewPrinter(language.AmericanEnglish)
)

// ContractValue reads a dollar amount such as "$250,000" as a whole
// number. Anything without digits is 0.
func ContractValue(raw string) float64 {
	run := digitRun.FindString(currencyStrip.Replace(raw))
	if run == "" {
		return 0
	}
	v, err := strconv.ParseFloat(run, 64)
	if err != nil {
		return 0
	}
	return v
}

// checkPastPerformance applies R3
func (e *Engine) checkPastPerformance(issues *issueList, records []model.PastPerformance) {
	if len(records) == 0 {
		issues.add("missing_past_performance", "At least one past performance record is required",
			"no past performance records submitted", SeverityBlocking, CategoryPerformance)
		return
	}

	qualifying := 0
	for i, pp := range records {
		n := i + 1
		if !model.Present(pp.Customer) {
			issues.add("pp_missing_customer", "Past performance must name the customer",
				fmt.Sprintf("past performance record %d has no customer", n),
				SeverityCritical, CategoryPerformance)
		}
		if !model.Present(pp.Period) {
			issues.add("pp_missing_period", "Past performance must state the period of performance",
				fmt.Sprintf("past performance record %d has no period", n),
				SeverityCritical, CategoryPerformance)
		}
		if !model.Present(pp.ContactEmail) || !model.Present(pp.ContactName) {
			issues.add("pp_missing_contact", "Past performance should include a customer contact name and email",
				fmt.Sprintf("past performance record %d is missing contact name or email", n),
				SeverityMinor, CategoryPerformance)
		}

		if e.qualifies(pp) {
			qualifying++
		}
	}

	if qualifying == 0 {
		issues.add("no_qualifying_contracts",
			dollars.Sprintf("At least one contract of $%.0f or more within the last 36 months is required", e.MinContractValue),
			dollars.Sprintf("0 of %d contracts are at least $%.0f and ended within the last %d days",
				len(records), e.MinContractValue, int(e.RecencyWindow.Hours()/24)),
			SeverityBlocking, CategoryPerformance)
	}
}

// qualifies reports whether a record meets both the value threshold and
// the recency window. An unparseable period is never recent.
func (e *Engine) qualifies(pp model.PastPerformance) bool {
	if ContractValue(model.Value(pp.ContractValue)) < e.MinContractValue {
		return false
	}
	end, ok := e.Periods.EndDate(model.Value(pp.Period))
	if !ok {
		return false
	}
	return !end.Before(e.recencyCutoff())
}

// recencyCutoff is the earliest end date that still counts as recent.
// Contracts ending in the future are ongoing and count.
func (e *Engine) recencyCutoff() time.Time {
	return e.Now().Add(-e.RecencyWindow)
}
