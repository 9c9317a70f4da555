// Package model defines the domain types shared across the sponsorship
// prediction toolkit: companies, model variants, performance snapshots,
// dataset and model records, and predictions.
package model

import "strings"

// Variant identifies one of the model families the service can train,
// deploy, and report on.
type Variant string

const (
	VariantLogistic     Variant = "logistic"
	VariantRandomForest Variant = "random_forest"
	VariantXGBoost      Variant = "xgboost"
)

// Variants lists all model families in dashboard tab order.
var Variants = []Variant{VariantLogistic, VariantRandomForest, VariantXGBoost}

// ParseVariant normalizes a variant name from any of the forms the API
// emits ("Logistic", "randomforest", "random_forest", "XGBoost").
// The second return value is false when the name matches no known family.
func ParseVariant(s string) (Variant, bool) {
	key := strings.ToLower(s)
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	switch key {
	case "logistic", "logisticregression":
		return VariantLogistic, true
	case "randomforest":
		return VariantRandomForest, true
	case "xgboost":
		return VariantXGBoost, true
	}
	return "", false
}

// APIName returns the casing the remote service uses for model_type
// parameters and request bodies.
func (v Variant) APIName() string {
	switch v {
	case VariantRandomForest:
		return "RandomForest"
	case VariantXGBoost:
		return "XGBoost"
	default:
		return "Logistic"
	}
}

// Slug returns the variant's segment in the train endpoint path
// (train-model-<slug>).
func (v Variant) Slug() string {
	return strings.ReplaceAll(string(v), "_", "-")
}

// Display returns the human-readable tab label.
func (v Variant) Display() string {
	switch v {
	case VariantRandomForest:
		return "Random Forest"
	case VariantXGBoost:
		return "XGBoost"
	default:
		return "Logistic Regression"
	}
}
