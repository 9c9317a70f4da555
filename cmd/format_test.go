package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nmdsi/sponsor-cli/internal/model"
)

func TestFormatCompanies(t *testing.T) {
	var buf bytes.Buffer
	formatCompanies(&buf, []model.Company{
		{
			model.FieldCompanyName:     "Rockwell",
			model.FieldCity:            "Milwaukee",
			model.FieldAnnualRevenue:   9000000000.0,
			model.FieldIndustryRanking: 3,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Rockwell")
	assert.Contains(t, out, "Milwaukee")
	assert.Contains(t, out, "9000000000")
}

func TestFormatPredictions(t *testing.T) {
	var buf bytes.Buffer
	formatPredictions(&buf, model.VariantXGBoost, []model.RankedPrediction{
		{Company: "Rockwell", Probability: 0.8734},
	})

	out := buf.String()
	assert.Contains(t, out, "XGBoost")
	assert.Contains(t, out, "87.34%")
}

func TestFormatModels_MarksCurrent(t *testing.T) {
	var buf bytes.Buffer
	formatModels(&buf, []model.ModelRecord{
		{ModelID: "m1", BlobName: "a.pkl", Status: "Archived"},
		{ModelID: "m2", BlobName: "b.pkl", Status: model.ModelStatusCurrent},
	})

	assert.Contains(t, buf.String(), "* Current")
}

func TestFormatActivity(t *testing.T) {
	var buf bytes.Buffer
	formatActivity(&buf, []model.Activity{
		{
			Action:    model.ActionTrain,
			Variant:   model.VariantLogistic,
			Subject:   "ds-1",
			DoneBy:    "ada@example.edu",
			CreatedAt: time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC),
		},
	})

	out := buf.String()
	assert.Contains(t, out, "2025-06-01 09:30")
	assert.Contains(t, out, "train")
	assert.Contains(t, out, "ds-1")
}
