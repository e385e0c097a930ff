// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"getgsa/internal/model"
)

const acmeProfile = `Acme Robotics LLC
UEI: ABC123DEF456
DUNS: 123456789
NAICS: 541511, 541512
POC: Jane Smith, jane@acme.co, (415) 555-0100
Address: 100 Main St, San Francisco, CA
SAM.gov: registered
`

func TestSqueeze(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
		{"mixed runs", "  UEI:\tABC \n\n DUNS:  1 ", "UEI: ABC DUNS: 1"},
		{"already squeezed", "a b c", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Squeeze(tt.in))
		})
	}
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		start  string
		ends   []string
		want   string
		wantOK bool
	}{
		{"first end label", "UEI: ABC123 DUNS: 1", "UEI:", []string{"DUNS:", "NAICS:"}, "ABC123", true},
		{"second end label", "UEI: ABC123 NAICS: 1", "UEI:", []string{"DUNS:", "NAICS:"}, "ABC123", true},
		{"end labels tried in order", "UEI: X DUNS: Y NAICS: Z", "UEI:", []string{"NAICS:", "DUNS:"}, "X DUNS: Y", true},
		{"falls back to end of text", "SAM.gov: registered", "SAM.gov:", nil, "registered", true},
		{"case insensitive", "uei: abc duns: 1", "UEI:", []string{"DUNS:"}, "abc", true},
		{"label absent", "DUNS: 1", "UEI:", []string{"DUNS:"}, "", false},
		{"nothing after label", "Company UEI:", "UEI:", []string{"DUNS:"}, "", false},
		{"regex metacharacters quoted", "SAMXgov: no SAM.gov: active", "SAM.gov:", nil, "active", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Between(tt.text, tt.start, tt.ends)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractProfile(t *testing.T) {
	p := ExtractProfile(acmeProfile)

	assert.Equal(t, "Acme Robotics LLC", model.Value(p.CompanyName))
	assert.Equal(t, "ABC123DEF456", model.Value(p.UEI))
	assert.Equal(t, "123456789", model.Value(p.DUNS))
	assert.Equal(t, []string{"541511", "541512"}, p.NAICS)
	assert.Equal(t, "Jane Smith", model.Value(p.POCName))
	assert.Equal(t, "jane@acme.co", model.Value(p.POCEmail))
	assert.Equal(t, "(415) 555-0100", model.Value(p.POCPhone))
	assert.Equal(t, "100 Main St, San Francisco, CA", model.Value(p.Address))
	require.NotNil(t, p.SAMRegistered)
	assert.True(t, *p.SAMRegistered)
}

func TestExtractProfile_MissingUEI(t *testing.T) {
	p := ExtractProfile(`TestCorp
    DUNS: 123456789
    NAICS: 541511
    POC: John Test, john@example.com, 123-4567
    Address: 1 Road
    SAM.gov: registered`)

	assert.Nil(t, p.UEI)
	assert.Equal(t, "TestCorp", model.Value(p.CompanyName))
	assert.Equal(t, "john@example.com", model.Value(p.POCEmail))
	assert.Equal(t, "123-4567", model.Value(p.POCPhone))
}

func TestExtractProfile_NonEmailPOC(t *testing.T) {
	p := ExtractProfile(`TestCorp
    UEI: 123ABC
    DUNS: 123456789
    NAICS: 541511
    POC: John Test, _email, 123-4567
    Address: 1 Road
    SAM.gov: registered`)

	assert.Equal(t, "_email", model.Value(p.POCEmail))
	assert.Equal(t, "123-4567", model.Value(p.POCPhone))
	assert.Equal(t, "123ABC", model.Value(p.UEI))
}

func TestExtractProfile_POCOrdering(t *testing.T) {
	tests := []struct {
		name      string
		poc       string
		wantEmail string
		wantPhone string
	}{
		{"email then phone", "POC: Jane, jane@acme.co, 415-555-0100", "jane@acme.co", "415-555-0100"},
		{"phone then email", "POC: Jane, 415-555-0100, jane@acme.co", "jane@acme.co", "415-555-0100"},
		{"phone shaped second item", "POC: Jane, 415.555.0100, none", "none", "415.555.0100"},
		{"neither shaped", "POC: Jane, foo, bar", "foo", "bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ExtractProfile("Acme Inc UEI: ABC123DEF456 " + tt.poc)
			assert.Equal(t, "Jane", model.Value(p.POCName))
			assert.Equal(t, tt.wantEmail, model.Value(p.POCEmail))
			assert.Equal(t, tt.wantPhone, model.Value(p.POCPhone))
		})
	}
}

func TestExtractProfile_ContactFallback(t *testing.T) {
	p := ExtractProfile("Acme Inc UEI: ABC123DEF456 reach us at sales@acme.co or 415-555-0100")

	assert.Nil(t, p.POCName)
	assert.Equal(t, "sales@acme.co", model.Value(p.POCEmail))
	assert.Equal(t, "415-555-0100", model.Value(p.POCPhone))
}

func TestExtractProfile_CompanyNameStrategies(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *string
	}{
		{"text before UEI", "Blue Sky Analytics UEI: ABC123DEF456", model.String("Blue Sky Analytics")},
		{"short prefix skipped", "AB UEI: ABC123DEF456", model.String("AB")},
		{"legal suffix", "DUNS: 1 Northwind Corp is here", model.String("Northwind Corp")},
		{"words before label", "acme widgets DUNS: 123456789", model.String("acme widgets")},
		{"empty text", "", nil},
		{"label first", "DUNS: 123456789", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractProfile(tt.text).CompanyName)
		})
	}
}

func TestExtractProfile_SAMStatus(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *bool
	}{
		{"registered", "Acme Inc SAM.gov: Registered", model.Bool(true)},
		{"other status", "Acme Inc SAM.gov: expired", model.Bool(false)},
		{"absent", "Acme Inc UEI: ABC123DEF456", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractProfile(tt.text).SAMRegistered)
		})
	}
}

func TestExtractPastPerformance(t *testing.T) {
	records := ExtractPastPerformance(`Customer: City of Springfield
Contract: Cloud migration services
Value: $250,000
Period: 01/2023 - 12/2024
Contact: John Doe, john.doe@springfield.gov`)

	require.Len(t, records, 1)
	pp := records[0]
	assert.Equal(t, "City of Springfield", model.Value(pp.Customer))
	assert.Equal(t, "Cloud migration services", model.Value(pp.ContractDescription))
	assert.Equal(t, "$250,000", model.Value(pp.ContractValue))
	assert.Equal(t, "01/2023 - 12/2024", model.Value(pp.Period))
	assert.Equal(t, "John Doe", model.Value(pp.ContactName))
	assert.Equal(t, "john.doe@springfield.gov", model.Value(pp.ContactEmail))
	assert.Nil(t, pp.ContactPhone)
}

func TestExtractPastPerformance_Contact(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantName  *string
		wantEmail *string
	}{
		{"name without email", "Customer: X Contact: John Doe, unknown", model.String("John Doe"), nil},
		{"bare email", "Customer: X Contact: ops@agency.gov", nil, model.String("ops@agency.gov")},
		{"no contact", "Customer: X", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pp := ExtractPastPerformance(tt.text)[0]
			assert.Equal(t, tt.wantName, pp.ContactName)
			assert.Equal(t, tt.wantEmail, pp.ContactEmail)
		})
	}
}

func TestExtractPastPerformance_AlwaysOneRecord(t *testing.T) {
	records := ExtractPastPerformance("nothing useful here")
	require.Len(t, records, 1)
	assert.Equal(t, model.PastPerformance{}, records[0])
}

func TestExtractPricing(t *testing.T) {
	sheet := ExtractPricing(`Labor Category, Rate, Unit
Senior Developer, 185, Hour
Project Manager, $1,450.50, Day
Analyst, TBD`)

	require.Len(t, sheet.LaborCategories, 3)

	dev := sheet.LaborCategories[0]
	assert.Equal(t, "Senior Developer", model.Value(dev.Category))
	require.NotNil(t, dev.Rate)
	assert.InDelta(t, 185.0, *dev.Rate, 0.0001)
	assert.Equal(t, "Hour", model.Value(dev.Unit))

	pm := sheet.LaborCategories[1]
	assert.Equal(t, "Project Manager", model.Value(pm.Category))
	require.NotNil(t, pm.Rate)
	assert.InDelta(t, 1450.50, *pm.Rate, 0.0001)
	assert.Equal(t, "Day", model.Value(pm.Unit))

	analyst := sheet.LaborCategories[2]
	assert.Equal(t, "Analyst", model.Value(analyst.Category))
	assert.Nil(t, analyst.Rate)
	assert.Nil(t, analyst.Unit)
}

func TestExtractPricing_Rows(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantRows  int
		checkUnit *string
	}{
		{"header only", "labor category, rate, unit", 0, nil},
		{"empty", "", 0, nil},
		{"double space separated", "Dev, 100, Hour  QA, 90, Hour", 2, model.String("Hour")},
		{"blank lines skipped", "Dev, 100, Hour\n\n   \nQA, 90, Hour", 2, model.String("Hour")},
		{"long unit dropped", "Dev, 100, " + "per hour of billable engineering work", 1, nil},
		{"dollar rate", "Dev, $100, Hour", 1, model.String("Hour")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := ExtractPricing(tt.text)
			require.Len(t, sheet.LaborCategories, tt.wantRows)
			if tt.wantRows > 0 {
				assert.Equal(t, tt.checkUnit, sheet.LaborCategories[0].Unit)
				assert.NotNil(t, sheet.LaborCategories[0].Rate)
			}
		})
	}
}

func TestExtractPricing_ThousandsSeparators(t *testing.T) {
	tests := []struct {
		row      string
		category string
		rate     *float64
		unit     string
	}{
		{"Project Manager, $1,450.50, Day", "Project Manager", model.Float(1450.50), "Day"},
		{"Program Lead, $1,250,000, Year", "Program Lead", model.Float(1250000), "Year"},
		{"Architect,2,100,Day", "Architect", model.Float(2100), "Day"},
		{"Tier 2, 185, Hour", "Tier 2", model.Float(185), "Hour"},
		{"Analyst, 95, 100 hours", "Analyst", model.Float(95), "100 hours"},
	}

	for _, tt := range tests {
		t.Run(tt.row, func(t *testing.T) {
			sheet := ExtractPricing(tt.row)
			require.Len(t, sheet.LaborCategories, 1)

			row := sheet.LaborCategories[0]
			assert.Equal(t, tt.category, model.Value(row.Category))
			require.NotNil(t, row.Rate)
			assert.InDelta(t, *tt.rate, *row.Rate, 0.0001)
			assert.Equal(t, tt.unit, model.Value(row.Unit))
		})
	}
}
