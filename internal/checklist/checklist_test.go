// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"getgsa/internal/extract"
	"getgsa/internal/model"
)

func TestValidateCompany_FromExtractedText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, issues ValidationIssues)
	}{
		{
			name: "missing uei",
			text: `TestCorp
    DUNS: 123456789
    NAICS: 541511
    POC: John Test, john@example.com, 123-4567
    Address: 1 Road
    SAM.gov: registered`,
			check: func(t *testing.T, issues ValidationIssues) {
				assert.True(t, issues.MissingUEI)
				assert.False(t, issues.InvalidPOCEmail)
			},
		},
		{
			name: "invalid email",
			text: `TestCorp
    UEI: 123ABC
    DUNS: 123456789
    NAICS: 541511
    POC: John Test, _email, 123-4567
    Address: 1 Road
    SAM.gov: registered`,
			check: func(t *testing.T, issues ValidationIssues) {
				assert.True(t, issues.InvalidPOCEmail)
				assert.False(t, issues.MissingUEI)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			company := extract.ExtractProfile(tt.text)
			tt.check(t, ValidateCompany(&company))
		})
	}
}

func TestValidateCompany_Nil(t *testing.T) {
	assert.Equal(t, ValidationIssues{
		MissingUEI:         true,
		InvalidPOCEmail:    true,
		MissingNAICS:       true,
		MissingCompanyName: true,
		MissingSAMStatus:   true,
	}, ValidateCompany(nil))
}

func TestValidateCompany_EmptyNAICSEntries(t *testing.T) {
	issues := ValidateCompany(&model.CompanyProfile{NAICS: []string{""}})
	assert.True(t, issues.MissingNAICS)
}

func TestBuild(t *testing.T) {
	company := &model.CompanyProfile{
		CompanyName:   model.String("Acme"),
		UEI:           model.String("ABC123DEF456"),
		NAICS:         []string{"541511"},
		POCEmail:      model.String("jane@acme.co"),
		SAMRegistered: model.Bool(true),
	}
	pp := []model.PastPerformance{{ContractDescription: model.String("Migration")}}

	got := Build(company, pp, ValidateCompany(company))

	assert.Equal(t, Checklist{
		RequiredFieldsComplete: true,
		ValidContactInfo:       true,
		SAMRegistered:          true,
		HasPastPerformance:     true,
	}, got)
}

func TestBuild_Failing(t *testing.T) {
	company := &model.CompanyProfile{SAMRegistered: model.Bool(false)}

	got := Build(company, []model.PastPerformance{{}}, ValidateCompany(company))

	assert.Equal(t, Checklist{}, got)
}

func TestBuild_NilCompany(t *testing.T) {
	got := Build(nil, nil, ValidationIssues{})
	assert.True(t, got.RequiredFieldsComplete)
	assert.False(t, got.SAMRegistered)
	assert.False(t, got.HasPastPerformance)
}

func TestValidPastPerformance(t *testing.T) {
	assert.True(t, ValidPastPerformance(model.PastPerformance{
		Customer:            model.String("Agency"),
		ContractDescription: model.String("Dev"),
	}))
	assert.False(t, ValidPastPerformance(model.PastPerformance{Customer: model.String("Agency")}))
}
