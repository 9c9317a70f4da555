package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWedgesAccumulate(t *testing.T) {
	wedges := Wedges(SharedValueSegments)
	require.Len(t, wedges, 4)

	wantEnds := []float64{126, 226.8, 306, 360}
	for i, w := range wedges {
		assert.InDelta(t, wantEnds[i], w.End, 1e-9, "wedge %d end", i)
		if i == 0 {
			assert.Zero(t, w.Start)
		} else {
			assert.Equal(t, wedges[i-1].End, w.Start, "wedge %d must start where the previous ends", i)
		}
		assert.InDelta(t, (w.Start+w.End)/2, w.Bisector, 1e-9)
	}

	// Percentages sum to 100, so the pie closes exactly.
	assert.InDelta(t, 360, wedges[3].End, 1e-9)
}

func TestLabelPosition(t *testing.T) {
	// 0 degrees is straight up from the center.
	x, y := LabelPosition(100, 100, 0, 40)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 60, y, 1e-9)

	// 90 degrees clockwise points right.
	x, y = LabelPosition(100, 100, 90, 40)
	assert.InDelta(t, 140, x, 1e-9)
	assert.InDelta(t, 100, y, 1e-9)

	// 180 points straight down.
	x, y = LabelPosition(100, 100, 180, 40)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 140, y, 1e-9)
}
