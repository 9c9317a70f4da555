package model

import (
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
)

// ConfusionMatrix holds the four outcome counts for a binary classifier.
// Counts are non-negative.
type ConfusionMatrix struct {
	TruePositive  int `json:"truePositive"`
	FalsePositive int `json:"falsePositive"`
	FalseNegative int `json:"falseNegative"`
	TrueNegative  int `json:"trueNegative"`
}

// ROCPoint is one point on a ROC curve.
type ROCPoint struct {
	FPR float64 `json:"fpr"`
	TPR float64 `json:"tpr"`
}

// ROCCurve is an ordered point series: ascending false-positive rate,
// first point (0,0), last point (1,1).
type ROCCurve []ROCPoint

// UnmarshalJSON accepts both wire shapes the service has used: a list of
// {fpr,tpr} objects, or parallel arrays {"fpr":[...],"tpr":[...]}.
func (rc *ROCCurve) UnmarshalJSON(data []byte) error {
	var points []ROCPoint
	if err := json.Unmarshal(data, &points); err == nil {
		*rc = points
		return nil
	}

	var arrays struct {
		FPR []float64 `json:"fpr"`
		TPR []float64 `json:"tpr"`
	}
	if err := json.Unmarshal(data, &arrays); err != nil {
		return eris.Wrap(err, "model: decode roc curve")
	}
	if len(arrays.FPR) != len(arrays.TPR) {
		return eris.Errorf("model: roc curve fpr/tpr length mismatch (%d vs %d)", len(arrays.FPR), len(arrays.TPR))
	}

	points = make([]ROCPoint, len(arrays.FPR))
	for i := range arrays.FPR {
		points[i] = ROCPoint{FPR: arrays.FPR[i], TPR: arrays.TPR[i]}
	}
	*rc = points
	return nil
}

// Metrics is one variant's performance bundle.
type Metrics struct {
	Accuracy        float64         `json:"accuracy"`
	Precision       float64         `json:"precision"`
	Recall          float64         `json:"recall"`
	F1Score         float64         `json:"f1_score"`
	AUC             float64         `json:"auc"`
	ConfusionMatrix ConfusionMatrix `json:"confusion_matrix"`
	ROCCurve        ROCCurve        `json:"roc_curve"`
}

// Snapshot is a point-in-time performance record for one model variant,
// with provenance of the deployed model that produced it.
type Snapshot struct {
	Metrics   Metrics `json:"metrics"`
	ModelID   string  `json:"model_id"`
	BlobName  string  `json:"model_blob_name"`
	CreatedAt string  `json:"created_at"`
	DatasetID string  `json:"dataset_id"`
	Filename  string  `json:"filename"`
	DoneBy    string  `json:"done_by"`
}

// CreatedTime parses the snapshot timestamp; zero time when absent or
// unparseable.
func (s Snapshot) CreatedTime() time.Time {
	return ParseTimestamp(s.CreatedAt)
}

// timestampLayouts covers the formats the service emits; the Flask
// backend omits the timezone designator.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an API timestamp string, returning the zero time
// on failure.
func ParseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
