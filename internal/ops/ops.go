// Package ops drives model operations: choosing a dataset to train on,
// choosing a model to deploy, dispatching the long-running calls, and
// assembling the recent-activity tables.
package ops

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nmdsi/sponsor-cli/internal/model"
	"github.com/nmdsi/sponsor-cli/internal/store"
	"github.com/nmdsi/sponsor-cli/pkg/predictapi"
)

var (
	// ErrBusy means the same action is already in flight.
	ErrBusy = eris.New("ops: operation already in progress")
	// ErrNoDataset means Train was called without a dataset selection.
	ErrNoDataset = eris.New("ops: no dataset selected")
	// ErrNoModel means Deploy was called without a model selection.
	ErrNoModel = eris.New("ops: no model selected")
)

// recentTableSize is how many rows the recent-activity tables show.
const recentTableSize = 4

// Controller dispatches train and deploy calls. Each action has its own
// busy flag; a second call to a busy action fails fast with ErrBusy
// instead of queueing.
type Controller struct {
	client predictapi.Client
	store  store.Store

	mu   sync.Mutex
	busy map[string]bool
}

// NewController wires a Controller to the API client and the local
// activity log. The store may be nil; logging is then skipped.
func NewController(client predictapi.Client, st store.Store) *Controller {
	return &Controller{client: client, store: st, busy: make(map[string]bool)}
}

func (c *Controller) acquire(action string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy[action] {
		return false
	}
	c.busy[action] = true
	return true
}

func (c *Controller) release(action string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy[action] = false
}

// Busy reports whether the named action is in flight.
func (c *Controller) Busy(action string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy[action]
}

func (c *Controller) logActivity(ctx context.Context, activity model.Activity) {
	if c.store == nil {
		return
	}
	if _, err := c.store.LogActivity(ctx, activity); err != nil {
		zap.L().Warn("activity log write failed", zap.String("action", activity.Action), zap.Error(err))
	}
}

// Train starts training the variant on the selected dataset.
func (c *Controller) Train(ctx context.Context, variant model.Variant, datasetID, doneBy string) (*predictapi.OpResult, error) {
	if datasetID == "" {
		return nil, ErrNoDataset
	}
	if !c.acquire(model.ActionTrain) {
		return nil, ErrBusy
	}
	defer c.release(model.ActionTrain)

	result, err := c.client.TrainModel(ctx, variant, datasetID, doneBy)
	if err != nil {
		return nil, eris.Wrapf(err, "ops: train %s", variant)
	}

	c.logActivity(ctx, model.Activity{
		Action:  model.ActionTrain,
		Variant: variant,
		Subject: datasetID,
		DoneBy:  doneBy,
	})
	return result, nil
}

// Deploy promotes the selected model to Current for its variant.
func (c *Controller) Deploy(ctx context.Context, variant model.Variant, modelID, doneBy string) (*predictapi.OpResult, error) {
	if modelID == "" {
		return nil, ErrNoModel
	}
	if !c.acquire(model.ActionDeploy) {
		return nil, ErrBusy
	}
	defer c.release(model.ActionDeploy)

	result, err := c.client.DeployModel(ctx, variant, modelID, doneBy)
	if err != nil {
		return nil, eris.Wrapf(err, "ops: deploy %s", variant)
	}

	c.logActivity(ctx, model.Activity{
		Action:  model.ActionDeploy,
		Variant: variant,
		Subject: modelID,
		DoneBy:  doneBy,
	})
	return result, nil
}

// DatasetPicker builds the training-data picker, highlighting the
// newest upload.
func DatasetPicker(datasets []model.DatasetRecord) *Picker {
	items := make([]Item, len(datasets))
	newestID := ""
	var newest int64
	for i, d := range datasets {
		items[i] = Item{ID: d.DatasetID, Label: d.Filename}
		if t := d.UploadedTime(); !t.IsZero() && (newestID == "" || t.Unix() > newest) {
			newestID = d.DatasetID
			newest = t.Unix()
		}
	}
	return NewPicker(items, newestID)
}

// ModelPicker builds the deploy picker, highlighting the model whose
// status is Current.
func ModelPicker(models []model.ModelRecord) *Picker {
	items := make([]Item, len(models))
	currentID := ""
	for i, m := range models {
		items[i] = Item{ID: m.ModelID, Label: m.BlobName}
		if m.IsCurrent() {
			currentID = m.ModelID
		}
	}
	return NewPicker(items, currentID)
}

// RecentModels returns the trailing rows of the loaded model list, as
// shown by both recent-activity tables.
func RecentModels(models []model.ModelRecord) []model.ModelRecord {
	if len(models) <= recentTableSize {
		return models
	}
	return models[len(models)-recentTableSize:]
}
