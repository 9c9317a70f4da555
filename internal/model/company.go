package model

import (
	"strconv"
)

// Field names used by the company directory. The remote service keys
// company records by these exact strings.
const (
	FieldCompanyName        = "Company Name"
	FieldAnnualRevenue      = "Annual Revenue"
	FieldAnnualRevenueLog   = "Annual Revenue in Log"
	FieldMarketValuation    = "Market Valuation"
	FieldMarketValuationLog = "Market Valuation in Log"
	FieldProfitMargins      = "Profit Margins"
	FieldMarketShare        = "Market Share"
	FieldIndustryRanking    = "Industry Ranking"
	FieldDistance           = "Distance"
	FieldCity               = "City"
	FieldStockSymbol        = "Stock Symbol"
	FieldEmployeeCount      = "Employee Count"
)

// Fixed university features attached to every prediction input.
const (
	UniversityStudentSize = 12000
	UniversityRanking     = 50
)

// Company is a directory record. Values arrive as strings or numbers
// depending on the upstream loader, so accessors normalize on read.
// Company Name is the unique identifier within a selection set.
type Company map[string]any

// Name returns the company's unique display name.
func (c Company) Name() string {
	return c.Str(FieldCompanyName)
}

// City returns the company's city, or "" when absent.
func (c Company) City() string {
	return c.Str(FieldCity)
}

// Str returns the named field as a string, formatting numeric values
// without an exponent.
func (c Company) Str(field string) string {
	switch v := c[field].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case nil:
		return ""
	default:
		return ""
	}
}

// Float returns the named field as a float64. The second return value is
// false when the field is missing or unparseable.
func (c Company) Float(field string) (float64, bool) {
	switch v := c[field].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// PredictionInput builds the feature mapping the predict endpoint expects
// for one company: the log-scaled financials plus the fixed university
// features.
func (c Company) PredictionInput() map[string]any {
	return map[string]any{
		FieldCompanyName:        c.Name(),
		FieldAnnualRevenueLog:   c[FieldAnnualRevenueLog],
		FieldMarketValuationLog: c[FieldMarketValuationLog],
		FieldProfitMargins:      c[FieldProfitMargins],
		FieldMarketShare:        c[FieldMarketShare],
		FieldIndustryRanking:    c[FieldIndustryRanking],
		FieldDistance:           c[FieldDistance],
		"University Student Size": UniversityStudentSize,
		"University Ranking":      UniversityRanking,
	}
}

// RankedPrediction is one row of a prediction response, ordered by the
// server (descending probability).
type RankedPrediction struct {
	Company     string  `json:"company"`
	Probability float64 `json:"probability"`
}
