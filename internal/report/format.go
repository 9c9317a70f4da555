// Package report builds the downloadable prospect summary PDF for a
// company record. The PDF context has no charting library, so the pie
// chart is drawn wedge by wedge with explicit angle math.
package report

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// FormatMagnitude renders a dollar amount with a magnitude suffix:
// billions, millions, thousands, or the raw value below 1e3. Zero and
// NaN render as "N/A".
func FormatMagnitude(v float64) string {
	switch {
	case math.IsNaN(v) || v == 0:
		return "N/A"
	case v >= 1e9:
		return fmt.Sprintf("$%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return "$" + strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// FormatPercent renders a ratio as a percentage with one decimal.
// Values below 1 are fractions and scaled by 100; values of 1 or more
// are treated as already-percent. Zero and NaN render as "N/A".
func FormatPercent(v float64) string {
	if math.IsNaN(v) || v == 0 {
		return "N/A"
	}
	if v < 1 {
		v *= 100
	}
	return fmt.Sprintf("%.1f%%", v)
}

// FormatProbability renders a [0,1] prediction probability with two
// decimals, e.g. 0.8734 -> "87.34%".
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Filename derives the download filename from a company name: every
// non-alphanumeric character becomes an underscore.
func Filename(companyName string) string {
	return nonAlphanumeric.ReplaceAllString(companyName, "_") + "_Prospect_Summary.pdf"
}
