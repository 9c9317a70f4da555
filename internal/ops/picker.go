package ops

import "strings"

// Item is one row of a picker list.
type Item struct {
	ID    string
	Label string
}

// Picker is a searchable single-select list with keyboard semantics:
// typing filters, arrows move the highlight, Enter commits, Esc closes
// without changing the committed selection.
type Picker struct {
	all      []Item
	filter   string
	cursor   int
	open     bool
	selected *Item
}

// NewPicker builds a picker over items with the highlight starting on
// preferredID when present.
func NewPicker(items []Item, preferredID string) *Picker {
	p := &Picker{all: items}
	for i, item := range items {
		if item.ID == preferredID {
			p.cursor = i
			break
		}
	}
	return p
}

// Open shows the list; the filter and highlight carry over.
func (p *Picker) Open() { p.open = true }

// IsOpen reports whether the list is showing.
func (p *Picker) IsOpen() bool { return p.open }

// SetFilter replaces the filter text and resets the highlight to the
// first visible row.
func (p *Picker) SetFilter(filter string) {
	p.filter = filter
	p.cursor = 0
}

// Filter returns the current filter text.
func (p *Picker) Filter() string { return p.filter }

// Visible returns the rows whose label contains the filter,
// case-insensitively, in their original order.
func (p *Picker) Visible() []Item {
	if p.filter == "" {
		return p.all
	}
	needle := strings.ToLower(p.filter)
	var visible []Item
	for _, item := range p.all {
		if strings.Contains(strings.ToLower(item.Label), needle) {
			visible = append(visible, item)
		}
	}
	return visible
}

// MoveUp moves the highlight up one row, stopping at the top.
func (p *Picker) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// MoveDown moves the highlight down one row, stopping at the bottom.
func (p *Picker) MoveDown() {
	if p.cursor < len(p.Visible())-1 {
		p.cursor++
	}
}

// Highlighted returns the row under the highlight, or false when the
// visible list is empty.
func (p *Picker) Highlighted() (Item, bool) {
	visible := p.Visible()
	if len(visible) == 0 {
		return Item{}, false
	}
	if p.cursor >= len(visible) {
		return visible[len(visible)-1], true
	}
	return visible[p.cursor], true
}

// Commit selects the highlighted row and closes the list. Committing an
// empty list just closes.
func (p *Picker) Commit() (Item, bool) {
	p.open = false
	item, ok := p.Highlighted()
	if ok {
		p.selected = &item
	}
	return item, ok
}

// Escape closes the list; the committed selection is untouched.
func (p *Picker) Escape() { p.open = false }

// Selection returns the committed row, or false when nothing has been
// committed yet.
func (p *Picker) Selection() (Item, bool) {
	if p.selected == nil {
		return Item{}, false
	}
	return *p.selected, true
}
