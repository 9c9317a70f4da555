package report

import "math"

// Segment is one pie wedge: a label, its share of the whole in percent,
// and an RGB fill color.
type Segment struct {
	Label   string
	Percent float64
	Color   [3]int
}

// SharedValueSegments is the fixed shared-values breakdown shown in
// every prospect summary.
var SharedValueSegments = []Segment{
	{Label: "Advancing Manufacturing", Percent: 35, Color: [3]int{255, 215, 0}},
	{Label: "Ethical AI", Percent: 28, Color: [3]int{74, 144, 226}},
	{Label: "Social Impact", Percent: 22, Color: [3]int{255, 107, 107}},
	{Label: "Collaboration", Percent: 15, Color: [3]int{46, 91, 186}},
}

// Wedge is one segment resolved to angles. Angles are degrees measured
// clockwise from 12 o'clock; End of the last wedge is 360 when the
// percentages sum to 100.
type Wedge struct {
	Segment
	Start    float64
	End      float64
	Bisector float64
}

// Wedges converts segments to angle sweeps with a running accumulator;
// segment order matters.
func Wedges(segments []Segment) []Wedge {
	wedges := make([]Wedge, len(segments))
	current := 0.0
	for i, seg := range segments {
		sweep := seg.Percent / 100 * 360
		wedges[i] = Wedge{
			Segment:  seg,
			Start:    current,
			End:      current + sweep,
			Bisector: current + sweep/2,
		}
		current += sweep
	}
	return wedges
}

// LabelPosition places a wedge label on the bisector at the given radius
// from the center. The angle is clockwise from 12 o'clock, so it is
// shifted by -90 degrees before the standard trig conversion.
func LabelPosition(centerX, centerY, bisectorDeg, radius float64) (x, y float64) {
	rad := (bisectorDeg - 90) * math.Pi / 180
	return centerX + math.Cos(rad)*radius, centerY + math.Sin(rad)*radius
}
