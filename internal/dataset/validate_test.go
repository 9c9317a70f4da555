package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func fullHeader() string {
	return strings.Join(RequiredColumns, ",")
}

func TestValidateHeader_AllPresent(t *testing.T) {
	t.Parallel()

	result := ValidateHeader(RequiredColumns)
	assert.True(t, result.OK())
	assert.Empty(t, result.Missing)
}

func TestValidateHeader_ExtrasAllowed(t *testing.T) {
	t.Parallel()

	header := append([]string{"Row ID", "Notes"}, RequiredColumns...)
	result := ValidateHeader(header)
	assert.True(t, result.OK())
}

func TestValidateHeader_OrderIndependent(t *testing.T) {
	t.Parallel()

	shuffled := make([]string, len(RequiredColumns))
	copy(shuffled, RequiredColumns)
	shuffled[0], shuffled[len(shuffled)-1] = shuffled[len(shuffled)-1], shuffled[0]

	result := ValidateHeader(shuffled)
	assert.True(t, result.OK())
}

func TestValidateHeader_OneMissing(t *testing.T) {
	t.Parallel()

	var header []string
	for _, col := range RequiredColumns {
		if col != "SIC code" {
			header = append(header, col)
		}
	}

	result := ValidateHeader(header)
	assert.False(t, result.OK())
	assert.Equal(t, []string{"SIC code"}, result.Missing)
}

func TestValidateHeader_MissingOrderIsRequiredOrder(t *testing.T) {
	t.Parallel()

	result := ValidateHeader([]string{"Company Name", "Distance"})
	require.False(t, result.OK())
	// Missing names come back in RequiredColumns order.
	assert.Equal(t, "School Name", result.Missing[0])
	assert.Equal(t, "SIC code", result.Missing[len(result.Missing)-1])
	assert.Len(t, result.Missing, len(RequiredColumns)-2)
}

func TestValidateHeader_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	header := make([]string, len(RequiredColumns))
	for i, col := range RequiredColumns {
		header[i] = " " + col + " "
	}
	assert.True(t, ValidateHeader(header).OK())
}

func TestValidateCSV_CountsRows(t *testing.T) {
	t.Parallel()

	csvData := fullHeader() + "\n" +
		strings.Join(SampleRows[0], ",") + "\n" +
		strings.Join(SampleRows[1], ",") + "\n"

	result, err := ValidateCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, 2, result.NumRows)
}

func TestValidateCSV_Empty(t *testing.T) {
	t.Parallel()

	_, err := ValidateCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateCSV_MissingColumn(t *testing.T) {
	t.Parallel()

	result, err := ValidateCSV(strings.NewReader("Company Name,Sponsored\nAcme,1\n"))
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Contains(t, result.Missing, "School Name")
	assert.NotContains(t, result.Missing, "Company Name")
}

func createTestXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			cell := row.AddCell()
			cell.SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "train.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestValidateXLSX_MatchesCSV(t *testing.T) {
	t.Parallel()

	path := createTestXLSX(t, [][]string{RequiredColumns, SampleRows[0], SampleRows[1]})

	result, err := ValidateXLSX(path)
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, 2, result.NumRows)

	csvData := fullHeader() + "\n" +
		strings.Join(SampleRows[0], ",") + "\n" +
		strings.Join(SampleRows[1], ",") + "\n"
	csvResult, err := ValidateCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, csvResult.Missing, result.Missing)
	assert.Equal(t, csvResult.NumRows, result.NumRows)
}

func TestValidateXLSX_MissingColumn(t *testing.T) {
	t.Parallel()

	path := createTestXLSX(t, [][]string{{"Company Name", "Sponsored"}, {"Acme", "1"}})

	result, err := ValidateXLSX(path)
	require.NoError(t, err)
	assert.False(t, result.OK())
	assert.Contains(t, result.Missing, "School Name")
}

func TestValidateFile_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte(fullHeader()+"\nrow\n"), 0o644))

	result, err := ValidateFile(path)
	require.NoError(t, err)
	assert.True(t, result.OK())
}

func TestValidateFile_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	_, err := ValidateFile("data.parquet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestSampleRows_MatchRequiredColumns(t *testing.T) {
	t.Parallel()

	for _, row := range SampleRows {
		assert.Len(t, row, len(RequiredColumns))
	}
}
