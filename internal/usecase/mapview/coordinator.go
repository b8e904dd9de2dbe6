package mapview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"newsbridge/internal/domain/entity"
)

// DebounceInterval is how long the coordinator waits after the last viewport
// movement before fetching. Filter changes bypass it.
const DebounceInterval = 500 * time.Millisecond

// State is the coordinator's lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateFetching
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDebouncing:
		return "debouncing"
	case StateFetching:
		return "fetching"
	default:
		return "unknown"
	}
}

// Fetcher loads the articles visible inside a viewport.
type Fetcher interface {
	FetchViewport(ctx context.Context, v entity.Viewport) ([]entity.SummarizedArticle, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, v entity.Viewport) ([]entity.SummarizedArticle, error)

func (f FetcherFunc) FetchViewport(ctx context.Context, v entity.Viewport) ([]entity.SummarizedArticle, error) {
	return f(ctx, v)
}

// Update is the result of one completed fetch cycle: the full replacement
// marker set, its renderable source, and the recomputed stats.
type Update struct {
	Articles []entity.SummarizedArticle
	Source   Source
	Stats    Stats
}

// Options configures a Coordinator.
type Options struct {
	Fetcher   Fetcher
	Clusterer Clusterer
	Debounce  time.Duration
	OnUpdate  func(Update)
	Logger    *slog.Logger
}

// Coordinator serializes viewport movements, filter changes, and fetch
// completions for one map session. Viewport movements are debounced so a
// continuous pan issues a single fetch for the final position; category and
// search changes clear the markers and fetch immediately. Every fetch gets a
// sequence number and a response that arrives after a newer fetch started is
// discarded, so markers never regress to an older viewport.
type Coordinator struct {
	fetcher   Fetcher
	clusterer Clusterer
	debounce  time.Duration
	onUpdate  func(Update)
	logger    *slog.Logger

	mu       sync.Mutex
	state    State
	viewport entity.Viewport
	hasView  bool
	seq      uint64
	timer    *time.Timer
	cancel   context.CancelFunc
	closed   bool

	articles []entity.SummarizedArticle
	stats    Stats
}

// NewCoordinator builds a Coordinator. Fetcher is required; the clusterer
// defaults to the library source builder and the debounce to DebounceInterval.
func NewCoordinator(opts Options) *Coordinator {
	if opts.Fetcher == nil {
		panic("mapview: Fetcher is required")
	}
	c := &Coordinator{
		fetcher:   opts.Fetcher,
		clusterer: opts.Clusterer,
		debounce:  opts.Debounce,
		onUpdate:  opts.OnUpdate,
		logger:    opts.Logger,
	}
	if c.clusterer == nil {
		c.clusterer = NewLibraryClusterer()
	}
	if c.debounce <= 0 {
		c.debounce = DebounceInterval
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// ViewportChanged records a pan or zoom. The fetch is deferred until the
// viewport has been stable for the debounce interval; each new movement
// resets the clock, so only the final viewport of a continuous gesture is
// fetched.
func (c *Coordinator) ViewportChanged(v entity.Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.viewport = v
	c.hasView = true
	c.state = StateDebouncing
	recordEvent("viewport")

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.debounceFired)
}

func (c *Coordinator) debounceFired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != StateDebouncing {
		return
	}
	c.startFetchLocked()
}

// CategoryChanged switches the active category filter. Stale markers from
// the previous filter are cleared at once and the fetch skips the debounce.
func (c *Coordinator) CategoryChanged(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.viewport.Category = category
	recordEvent("category")
	c.clearAndFetchLocked()
}

// SearchChanged applies a settled search query. Like a category switch it
// clears the markers and fetches immediately; input keystroke debouncing
// happens upstream of the coordinator.
func (c *Coordinator) SearchChanged(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.viewport.Search = query
	recordEvent("search")
	c.clearAndFetchLocked()
}

// Refresh refetches the current viewport without waiting for the debounce.
func (c *Coordinator) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.hasView {
		return
	}
	c.startFetchLocked()
}

func (c *Coordinator) clearAndFetchLocked() {
	c.articles = nil
	c.publishLocked(nil)
	if !c.hasView {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.startFetchLocked()
}

// startFetchLocked launches a fetch for the current viewport. The caller
// must hold c.mu.
func (c *Coordinator) startFetchLocked() {
	if c.cancel != nil {
		c.cancel()
	}

	c.seq++
	seq := c.seq
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.state = StateFetching
	v := c.viewport

	go c.runFetch(ctx, seq, v)
}

func (c *Coordinator) runFetch(ctx context.Context, seq uint64, v entity.Viewport) {
	start := time.Now()
	articles, err := c.fetcher.FetchViewport(ctx, v)
	if err != nil {
		if ctx.Err() != nil {
			// Superseded by a newer fetch, its result will arrive instead.
			return
		}
		c.logger.Warn("map fetch failed, clearing markers",
			slog.Float64("zoom", v.Zoom),
			slog.String("category", v.Category),
			slog.String("error", err.Error()))
		recordFetch("error", time.Since(start))
		articles = nil
	} else {
		recordFetch("ok", time.Since(start))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.seq {
		recordStale()
		return
	}
	c.state = StateIdle
	c.cancel = nil
	c.articles = articles
	c.publishLocked(articles)
}

// publishLocked recomputes the source and stats for a marker set and hands
// them to the update callback. The caller must hold c.mu.
func (c *Coordinator) publishLocked(articles []entity.SummarizedArticle) {
	c.stats = ComputeStats(articles, c.viewport.Zoom)
	if c.onUpdate == nil {
		return
	}
	c.onUpdate(Update{
		Articles: articles,
		Source:   c.clusterer.BuildSource(articles),
		Stats:    c.stats,
	})
}

// State reports the current phase.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Articles returns the currently rendered marker set.
func (c *Coordinator) Articles() []entity.SummarizedArticle {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.SummarizedArticle, len(c.articles))
	copy(out, c.articles)
	return out
}

// Stats returns the stats computed for the current marker set.
func (c *Coordinator) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Close stops the debounce timer and cancels any in-flight fetch. The
// coordinator ignores events after Close.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
