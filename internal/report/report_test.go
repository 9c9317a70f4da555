package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmdsi/sponsor-cli/internal/model"
)

func TestNeedsPageBreak(t *testing.T) {
	tests := []struct {
		name   string
		startY float64
		items  int
		want   bool
	}{
		{"fits high on page", 100, 5, false},
		{"exactly at limit", 190, 5, false},
		{"just past limit", 191, 5, true},
		{"long list low on page", 220, 5, true},
		{"empty list near bottom", 231, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, needsPageBreak(tt.startY, tt.items))
		})
	}
}

func TestOverviewRows(t *testing.T) {
	company := model.Company{
		model.FieldCompanyName:     "Rockwell Automation",
		model.FieldAnnualRevenue:   9_000_000_000.0,
		model.FieldMarketValuation: 35_000_000_000.0,
		model.FieldProfitMargins:   0.12,
		model.FieldMarketShare:     8.4,
		model.FieldIndustryRanking: 3,
		model.FieldDistance:        4.2,
	}

	rows := overviewRows(company)
	require.Len(t, rows, 6)
	assert.Equal(t, [2]string{"Revenue", "$9.0B"}, rows[0])
	assert.Equal(t, [2]string{"Market Valuation", "$35.0B"}, rows[1])
	assert.Equal(t, [2]string{"Profit Margins", "12.0%"}, rows[2])
	assert.Equal(t, [2]string{"Market Share", "8.4%"}, rows[3])
	assert.Equal(t, [2]string{"Industry Ranking", "#3"}, rows[4])
	assert.Equal(t, [2]string{"Distance from UWM", "4.2 miles"}, rows[5])
}

func TestOverviewRowsMissingFields(t *testing.T) {
	rows := overviewRows(model.Company{model.FieldCompanyName: "Mystery Corp"})
	require.Len(t, rows, 6)
	for _, row := range rows {
		assert.Equal(t, "N/A", row[1], "row %q", row[0])
	}
}

func TestGenerateWritesFile(t *testing.T) {
	dir := t.TempDir()
	gen := NewGenerator(dir)
	gen.Now = func() time.Time {
		return time.Date(2025, time.March, 14, 15, 9, 0, 0, time.UTC)
	}

	company := model.Company{
		model.FieldCompanyName:     "Rockwell Automation",
		model.FieldAnnualRevenue:   9_000_000_000.0,
		model.FieldMarketValuation: 35_000_000_000.0,
		model.FieldProfitMargins:   0.12,
		model.FieldMarketShare:     8.4,
		model.FieldIndustryRanking: 3,
		model.FieldDistance:        4.2,
	}

	path, err := gen.Generate(company, model.User{Name: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Rockwell_Automation_Prospect_Summary.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateNoCompanyIsNoop(t *testing.T) {
	gen := NewGenerator(t.TempDir())

	path, err := gen.Generate(nil, model.User{Name: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = gen.Generate(model.Company{}, model.User{})
	require.NoError(t, err)
	assert.Empty(t, path)
}
