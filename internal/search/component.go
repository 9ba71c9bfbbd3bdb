// Package search implements the debounced, paginated city picker.
package search

import (
	"context"
	"sync"
	"time"

	"weather-forecasting/internal/models"
)

// Searcher is satisfied by the weather service; it never fails.
type Searcher interface {
	SearchCities(ctx context.Context, query string, offset int) models.CityPage
}

// Options is what the component publishes after each load.
type Options struct {
	Query   string          `json:"query"`
	Options []models.Option `json:"options"`
	HasMore bool            `json:"has_more"`
}

// Component owns one search box. Callbacks run with the component lock held
// and must not call back into it.
type Component struct {
	searcher  Searcher
	debouncer *Debouncer
	onOptions func(Options)
	onSelect  func(models.Location)

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	query      string
	seq        uint64
	options    []models.Option
	nextOffset int
	hasMore    bool
	loading    bool
	selected   *models.Location
	closed     bool
}

func NewComponent(searcher Searcher, debounce time.Duration, onOptions func(Options), onSelect func(models.Location)) *Component {
	ctx, cancel := context.WithCancel(context.Background())

	if onOptions == nil {
		onOptions = func(Options) {}
	}
	if onSelect == nil {
		onSelect = func(models.Location) {}
	}

	return &Component{
		searcher:  searcher,
		debouncer: NewDebouncer(debounce),
		onOptions: onOptions,
		onSelect:  onSelect,
		ctx:       ctx,
		cancel:    cancel,
		options:   []models.Option{},
	}
}

// Input records a keystroke; the first page loads after the debounce period.
func (c *Component) Input(query string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	c.query = query
	c.loading = false
	// pages of the previous query must not be continued under the new one
	c.options = []models.Option{}
	c.nextOffset = 0
	c.hasMore = false
	c.mu.Unlock()

	c.debouncer.Trigger(func() {
		c.load(seq, query, 0)
	})
}

// LoadMore fetches the next page of the current query immediately. It is a
// no-op when there is nothing more or a page is already loading.
func (c *Component) LoadMore() {
	c.mu.Lock()
	if c.closed || !c.hasMore || c.loading {
		c.mu.Unlock()
		return
	}
	seq, query, offset := c.seq, c.query, c.nextOffset
	c.mu.Unlock()

	c.load(seq, query, offset)
}

func (c *Component) load(seq uint64, query string, offset int) {
	c.mu.Lock()
	if seq != c.seq || c.closed {
		c.mu.Unlock()
		return
	}
	c.loading = true
	c.mu.Unlock()

	page := c.searcher.SearchCities(c.ctx, query, offset)

	c.mu.Lock()
	defer c.mu.Unlock()

	// superseded by newer input while in flight
	if seq != c.seq || c.closed {
		return
	}
	c.loading = false

	if offset == 0 {
		c.options = page.Options()
	} else {
		c.options = append(c.options, page.Options()...)
	}
	c.nextOffset = page.NextOffset
	c.hasMore = page.HasMore

	c.onOptions(Options{
		Query:   query,
		Options: append([]models.Option(nil), c.options...),
		HasMore: c.hasMore,
	})
}

// Select emits the chosen option upward. An empty option is ignored.
func (c *Component) Select(option models.Option) error {
	if option.Value == "" {
		return nil
	}

	loc, err := models.ParseOption(option)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.selected = &loc
	c.onSelect(loc)

	return nil
}

func (c *Component) Selected() (models.Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selected == nil {
		return models.Location{}, false
	}
	return *c.selected, true
}

func (c *Component) Close() {
	c.debouncer.Cancel()
	c.cancel()

	c.mu.Lock()
	c.closed = true
	c.seq++
	c.mu.Unlock()
}
