// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"getgsa/internal/model"
)

const phoneOrToken = `\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}|[^,\s]+`

var (
	legalSuffixAnchored = regexp.MustCompile(`^([A-Z][A-Za-z\s&,-]+(?:LLC|Inc|Corp|Corporation|Co\.?|Company))`)
	legalSuffixAnywhere = regexp.MustCompile(`([A-Z][A-Za-z\s]+(?:LLC|Inc|Corp|Corporation))`)

	// A phone written with a space after the area code, "(415) 555-0100",
	// is kept whole instead of being cut at the space.
	pocPattern        = regexp.MustCompile(`POC:\s*([^,]+),\s*(` + phoneOrToken + `),\s*(` + phoneOrToken + `)`)
	phoneShapedPrefix = regexp.MustCompile(`^\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	anyEmailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	anyPhonePattern   = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// profileLabels terminate the free-form company name
var profileLabels = map[string]struct{}{
	"UEI:":     {},
	"DUNS:":    {},
	"NAICS:":   {},
	"POC:":     {},
	"ADDRESS:": {},
	"SAM.GOV:": {},
}

// nameStrategy proposes a company name from squeezed profile text
type nameStrategy func(text string) (string, bool)

// nameStrategies are tried in order; the first success wins
var nameStrategies = []nameStrategy{
	nameBeforeUEI,
	nameByLegalSuffix,
	nameBeforeFirstLabel,
}

// ExtractProfile pulls company identity fields out of label:value text.
// Missing labels leave the corresponding field nil.
func ExtractProfile(text string) model.CompanyProfile {
	text = Squeeze(text)

	profile := model.CompanyProfile{
		CompanyName: companyName(text),
		UEI:         between(text, "UEI:", "DUNS:", "NAICS:", "POC:"),
		DUNS:        between(text, "DUNS:", "NAICS:", "POC:", "Address:"),
		Address:     between(text, "Address:", "SAM.gov:"),
	}

	if raw := between(text, "NAICS:", "POC:", "Address:", "SAM.gov:"); raw != nil {
		profile.NAICS = splitCodes(*raw)
	}

	if status := between(text, "SAM.gov:"); status != nil {
		profile.SAMRegistered = model.Bool(strings.ToLower(*status) == "registered")
	}

	profile.POCName, profile.POCEmail, profile.POCPhone = pointOfContact(text)
	return profile
}

func companyName(text string) *string {
	for _, strategy := range nameStrategies {
		if name, ok := strategy(text); ok {
			return &name
		}
	}
	return nil
}

func nameBeforeUEI(text string) (string, bool) {
	idx := strings.Index(text, "UEI:")
	if idx <= 0 {
		return "", false
	}
	name := strings.TrimSpace(text[:idx])
	if utf8.RuneCountInString(name) <= 2 {
		return "", false
	}
	return name, true
}

func nameByLegalSuffix(text string) (string, bool) {
	for _, re := range []*regexp.Regexp{legalSuffixAnchored, legalSuffixAnywhere} {
		if m := re.FindStringSubmatch(text); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" {
				return name, true
			}
		}
	}
	return "", false
}

func nameBeforeFirstLabel(text string) (string, bool) {
	var words []string
	for _, word := range strings.Fields(text) {
		if _, isLabel := profileLabels[strings.ToUpper(word)]; isLabel {
			break
		}
		words = append(words, word)
	}
	if len(words) == 0 {
		return "", false
	}
	return strings.Join(words, " "), true
}

func splitCodes(raw string) []string {
	var codes []string
	for _, code := range strings.Split(raw, ",") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// pointOfContact reads the "POC: name, x, y" triple. The email and phone
// may appear in either order; whichever is still missing afterwards is
// looked up anywhere in the text.
func pointOfContact(text string) (name, email, phone *string) {
	if m := pocPattern.FindStringSubmatch(text); m != nil {
		first := strings.TrimSpace(m[1])
		second := strings.TrimSpace(m[2])
		third := strings.TrimSpace(m[3])
		name = &first

		switch {
		case strings.Contains(second, "@"):
			email, phone = &second, &third
		case strings.Contains(third, "@"):
			email, phone = &third, &second
		case phoneShapedPrefix.MatchString(second):
			phone, email = &second, &third
		default:
			email, phone = &second, &third
		}
	}

	if email == nil {
		if found := anyEmailPattern.FindString(text); found != "" {
			email = &found
		}
	}
	if phone == nil {
		if found := anyPhonePattern.FindString(text); found != "" {
			phone = &found
		}
	}
	return name, email, phone
}
