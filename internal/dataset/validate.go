// Package dataset validates training datasets before upload: the header
// row must contain every required column, order-independent, with extra
// columns allowed. Validation runs fully locally; nothing is sent to the
// service until it passes.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// RequiredColumns is the fixed column set the training pipeline expects.
var RequiredColumns = []string{
	"School Name",
	"Kind of business associated",
	"Company Name",
	"Sponsored",
	"Annual Revenue",
	"Profit Margins",
	"Market Valuation",
	"Market Share",
	"Industry Ranking",
	"Distance",
	"University Student Size",
	"University Ranking",
	"Annual Revenue in Log",
	"Market Valuation in Log",
	"SIC code",
}

// Result reports the outcome of a header validation.
type Result struct {
	Header  []string
	Missing []string
	NumRows int
}

// OK reports whether every required column was present.
func (r Result) OK() bool {
	return len(r.Missing) == 0
}

// ValidateHeader checks a header row against RequiredColumns and returns
// the missing column names in required order.
func ValidateHeader(header []string) Result {
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}

	return Result{Header: header, Missing: missing}
}

// ValidateCSV reads a CSV stream, validates its header row, and counts
// the data rows for the upload preview.
func ValidateCSV(r io.Reader) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return Result{}, eris.New("dataset: file is empty")
	}
	if err != nil {
		return Result{}, eris.Wrap(err, "dataset: read header row")
	}

	result := ValidateHeader(header)

	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, eris.Wrap(err, "dataset: read row")
		}
		result.NumRows++
	}

	return result, nil
}

// ValidateXLSX opens a spreadsheet, validates the first row of the first
// sheet, and counts the remaining rows.
func ValidateXLSX(path string) (Result, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return Result{}, eris.Wrap(err, "dataset: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return Result{}, eris.New("dataset: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return Result{}, eris.New("dataset: file is empty")
	}

	header := make([]string, 0, len(sheet.Rows[0].Cells))
	for _, cell := range sheet.Rows[0].Cells {
		header = append(header, cell.String())
	}

	result := ValidateHeader(header)
	result.NumRows = len(sheet.Rows) - 1
	return result, nil
}

// ValidateFile dispatches on the file extension: .csv or .xlsx.
func ValidateFile(path string) (Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return Result{}, eris.Wrapf(err, "dataset: open %s", path)
		}
		defer f.Close()
		return ValidateCSV(f)
	case ".xlsx":
		return ValidateXLSX(path)
	default:
		return Result{}, eris.Errorf("dataset: unsupported file type %q", filepath.Ext(path))
	}
}
