// Package dashboard assembles the startup view: the company universe
// and the per-variant performance snapshots, fetched concurrently, with
// chart specs derived for whichever model tab is active.
package dashboard

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nmdsi/sponsor-cli/internal/charts"
	"github.com/nmdsi/sponsor-cli/internal/model"
	"github.com/nmdsi/sponsor-cli/pkg/predictapi"
)

// Data is one loaded dashboard snapshot.
type Data struct {
	Companies   []model.Company
	Performance map[model.Variant]model.Snapshot
}

// Loader fetches dashboard data from the prediction service.
type Loader struct {
	client predictapi.Client
}

// NewLoader wires a Loader to the API client.
func NewLoader(client predictapi.Client) *Loader {
	return &Loader{client: client}
}

// Load fetches companies and model performance concurrently. Either
// fetch failing degrades that half to its empty value instead of
// failing the load; the dashboard renders with what it has.
func (l *Loader) Load(ctx context.Context) *Data {
	data := &Data{Performance: map[model.Variant]model.Snapshot{}}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		companies, err := l.client.Companies(ctx)
		if err != nil {
			zap.L().Warn("company list unavailable", zap.Error(err))
			return nil
		}
		data.Companies = companies
		return nil
	})
	g.Go(func() error {
		performance, err := l.client.CurrentPerformance(ctx)
		if err != nil {
			zap.L().Warn("model performance unavailable", zap.Error(err))
			return nil
		}
		data.Performance = performance
		return nil
	})
	g.Wait() //nolint:errcheck // both goroutines degrade instead of erroring

	return data
}

// Charts derives the chart set for one variant tab. A variant with no
// snapshot gets the placeholder charts.
func (d *Data) Charts(variant model.Variant) charts.Set {
	return charts.ForSnapshot(d.Performance[variant])
}

// AllCharts derives chart sets for every known variant, keyed by
// variant.
func (d *Data) AllCharts() map[model.Variant]charts.Set {
	sets := make(map[model.Variant]charts.Set, len(model.Variants))
	for _, v := range model.Variants {
		sets[v] = d.Charts(v)
	}
	return sets
}

// ModelInfo is the deployed-model provenance card shown beside the
// charts on a variant tab.
type ModelInfo struct {
	ModelID   string `json:"model_id"`
	CreatedAt string `json:"created_at"`
	DatasetID string `json:"dataset_id"`
	Filename  string `json:"filename"`
	DoneBy    string `json:"done_by"`
}

// Panel is one variant tab's full payload: provenance plus charts.
type Panel struct {
	Model  ModelInfo  `json:"model"`
	Charts charts.Set `json:"charts"`
}

// Panel builds the tab payload for one variant.
func (d *Data) Panel(variant model.Variant) Panel {
	snap := d.Performance[variant]
	return Panel{
		Model: ModelInfo{
			ModelID:   snap.ModelID,
			CreatedAt: snap.CreatedAt,
			DatasetID: snap.DatasetID,
			Filename:  snap.Filename,
			DoneBy:    snap.DoneBy,
		},
		Charts: d.Charts(variant),
	}
}

// AllPanels builds the tab payload for every known variant.
func (d *Data) AllPanels() map[model.Variant]Panel {
	panels := make(map[model.Variant]Panel, len(model.Variants))
	for _, v := range model.Variants {
		panels[v] = d.Panel(v)
	}
	return panels
}
