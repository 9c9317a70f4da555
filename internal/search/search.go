// Package search drives the company autocomplete: it fetches matches
// from the prediction service, keeps target-city companies on top, and
// maintains the ordered selection set used by prediction runs.
//
// Every fetch carries a sequence token; a response that resolves after a
// newer fetch has been issued is discarded, so slow responses can never
// clobber the results of a later keystroke.
package search

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/nmdsi/sponsor-cli/internal/model"
	"github.com/nmdsi/sponsor-cli/pkg/predictapi"
)

// Controller owns the result list and the selection set. Methods are
// safe for concurrent use.
type Controller struct {
	client     predictapi.Client
	targetCity string

	mu        sync.Mutex
	seq       uint64
	query     string
	results   []model.Company
	selection []model.Company
}

// NewController wires a Controller to the API client. targetCity rows
// sort ahead of everything else in results.
func NewController(client predictapi.Client, targetCity string) *Controller {
	return &Controller{client: client, targetCity: targetCity}
}

// Prioritize returns companies reordered so rows matching city come
// first. Ordering within each group is preserved.
func Prioritize(companies []model.Company, city string) []model.Company {
	ordered := make([]model.Company, 0, len(companies))
	var rest []model.Company
	for _, c := range companies {
		if c.City() == city {
			ordered = append(ordered, c)
		} else {
			rest = append(rest, c)
		}
	}
	return append(ordered, rest...)
}

// begin issues a new sequence token, invalidating all earlier fetches.
func (c *Controller) begin(query string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.query = query
	return c.seq
}

// commit installs results if token is still the latest. It reports
// whether the results were applied.
func (c *Controller) commit(token uint64, companies []model.Company) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		return false
	}
	c.results = Prioritize(companies, c.targetCity)
	return true
}

// Search fetches matches for query and installs them as the current
// results. An empty query loads the default list: companies in the
// target city. A stale response (a newer Search was issued meanwhile)
// is discarded and reported via the second return value.
func (c *Controller) Search(ctx context.Context, query string) ([]model.Company, bool, error) {
	token := c.begin(query)

	var (
		companies []model.Company
		err       error
	)
	if query == "" {
		companies, err = c.client.FilterCompanies(ctx, model.FieldCity, c.targetCity)
	} else {
		companies, err = c.client.SearchCompanies(ctx, query)
	}
	if err != nil {
		return nil, false, eris.Wrapf(err, "search: query %q", query)
	}

	if !c.commit(token, companies) {
		return nil, false, nil
	}
	return c.Results(), true, nil
}

// Results returns a copy of the current result list.
func (c *Controller) Results() []model.Company {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Company, len(c.results))
	copy(out, c.results)
	return out
}

// Query returns the query of the most recent Search call.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Select appends a company to the selection set. Companies are unique
// by name; selecting a duplicate or a nameless company is a no-op and
// returns false.
func (c *Controller) Select(company model.Company) bool {
	name := company.Name()
	if name == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sel := range c.selection {
		if sel.Name() == name {
			return false
		}
	}
	c.selection = append(c.selection, company)
	return true
}

// Deselect removes the named company from the selection set, reporting
// whether it was present.
func (c *Controller) Deselect(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, sel := range c.selection {
		if sel.Name() == name {
			c.selection = append(c.selection[:i], c.selection[i+1:]...)
			return true
		}
	}
	return false
}

// Selected reports whether the named company is in the selection set.
func (c *Controller) Selected(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sel := range c.selection {
		if sel.Name() == name {
			return true
		}
	}
	return false
}

// Selection returns a copy of the selection set in insertion order.
func (c *Controller) Selection() []model.Company {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Company, len(c.selection))
	copy(out, c.selection)
	return out
}

// ClearSelection empties the selection set.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = nil
}
