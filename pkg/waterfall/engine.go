package waterfall

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/geom"
	"github.com/matzehuels/masonry/pkg/observability"
)

// Invalidation reasons reported to observability hooks.
const (
	ReasonConfig = "config"
	ReasonWidth  = "width"
	ReasonData   = "data"
)

// Engine computes and caches waterfall geometry for a data source.
//
// An Engine is driven from a single goroutine: SetConfig, SetBounds,
// Invalidate and Prepare must not race each other. The query methods only
// read the current snapshot, which is swapped atomically, so they may be
// called from other goroutines and always see one complete pass.
type Engine struct {
	source   DataSource
	delegate Delegate
	metrics  SectionMetrics
	config   Config
	bounds   geom.Size
	logger   *log.Logger

	snap      atomic.Pointer[Snapshot]
	stale     atomic.Bool
	preparing atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the engine-wide configuration. The default is
// [DefaultConfig].
func WithConfig(c Config) Option { return func(e *Engine) { e.config = c } }

// WithSectionMetrics installs per-section overrides.
func WithSectionMetrics(m SectionMetrics) Option { return func(e *Engine) { e.metrics = m } }

// WithBounds sets the initial bounds of the host surface.
func WithBounds(s geom.Size) Option { return func(e *Engine) { e.bounds = s } }

// WithLogger sets the logger used for pass summaries. The default discards.
func WithLogger(l *log.Logger) Option { return func(e *Engine) { e.logger = l } }

// New creates an engine for source and delegate. The engine starts stale
// with an empty snapshot; call Prepare before querying.
func New(source DataSource, delegate Delegate, opts ...Option) *Engine {
	e := &Engine{
		source:   source,
		delegate: delegate,
		metrics:  NoSectionMetrics{},
		config:   DefaultConfig(),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.snap.Store(emptySnapshot(e.bounds.Width))
	e.stale.Store(true)
	return e
}

// Config returns the current engine-wide configuration.
func (e *Engine) Config() Config { return e.config }

// Bounds returns the current host bounds.
func (e *Engine) Bounds() geom.Size { return e.bounds }

// SetConfig applies c and marks the layout stale if any value changed.
func (e *Engine) SetConfig(c Config) bool {
	if !e.config.Apply(c) {
		return false
	}
	e.Invalidate(ReasonConfig)
	return true
}

// SetBounds records new host bounds and marks the layout stale when the
// width changed. Height-only changes keep the cached geometry.
func (e *Engine) SetBounds(s geom.Size) bool {
	old := e.bounds
	e.bounds = s
	if !e.ShouldInvalidate(old.Width, s.Width) {
		return false
	}
	e.Invalidate(ReasonWidth)
	return true
}

// ShouldInvalidate reports whether a bounds change from oldWidth to
// newWidth requires a new layout pass. Column widths depend only on the
// width, so only a width change does.
func (e *Engine) ShouldInvalidate(oldWidth, newWidth float64) bool {
	return oldWidth != newWidth
}

// Invalidate marks the cached geometry stale. It never recomputes.
func (e *Engine) Invalidate(reason string) {
	e.stale.Store(true)
	observability.Layout().OnInvalidate(reason)
}

// Stale reports whether the cached geometry is out of date.
func (e *Engine) Stale() bool { return e.stale.Load() }

// PrepareIfNeeded runs Prepare only when the layout is stale.
func (e *Engine) PrepareIfNeeded() error {
	if !e.Stale() {
		return nil
	}
	return e.Prepare()
}

// Prepare recomputes the geometry of every section and replaces the cached
// snapshot. On error the previous snapshot is kept and the engine stays
// stale. Calling Prepare from inside a data source callback fails with
// ErrCodeReentrantPrepare.
func (e *Engine) Prepare() error {
	if !e.preparing.CompareAndSwap(false, true) {
		return errors.New(errors.ErrCodeReentrantPrepare, "layout pass already in progress")
	}
	defer e.preparing.Store(false)

	if e.source == nil || e.delegate == nil {
		return errors.New(errors.ErrCodeMissingDelegate, "engine requires a data source and a delegate")
	}

	start := time.Now()
	sections := max(0, e.source.NumberOfSections())
	hooks := observability.Layout()
	hooks.OnPrepareStart(sections)

	snap, err := e.build(sections)
	if err != nil {
		hooks.OnPrepareComplete(sections, 0, time.Since(start), err)
		e.logger.Error("layout pass aborted", "err", err)
		return err
	}

	e.snap.Store(snap)
	e.stale.Store(false)
	hooks.OnPrepareComplete(sections, snap.ItemCount(), time.Since(start), nil)
	e.logger.Debug("layout pass complete",
		"sections", sections,
		"items", snap.ItemCount(),
		"width", snap.Width(),
		"height", snap.ContentHeight(),
	)
	return nil
}

func (e *Engine) build(sections int) (*Snapshot, error) {
	snap := emptySnapshot(e.bounds.Width)
	if sections == 0 {
		return snap, nil
	}

	b := sectionBuilder{width: e.bounds.Width, source: e.source, delegate: e.delegate}
	snap.items = make([][]Attributes, 0, sections)
	snap.columns = make([]int, 0, sections)
	snap.rects = make([]geom.Rect, 0, sections)

	var top float64
	for section := 0; section < sections; section++ {
		d, err := b.describe(section, e.config, e.metrics)
		if err != nil {
			return nil, err
		}
		out, err := b.build(d, top)
		if err != nil {
			return nil, err
		}
		snap.items = append(snap.items, out.items)
		snap.columns = append(snap.columns, d.Columns)
		snap.rects = append(snap.rects, out.rect)
		if out.header != nil {
			snap.headers[section] = *out.header
		}
		if out.footer != nil {
			snap.footers[section] = *out.footer
		}
		top = out.bottom
	}
	snap.contentHeight = top
	return snap, nil
}

// Snapshot returns the current snapshot. It is never nil.
func (e *Engine) Snapshot() *Snapshot { return e.snap.Load() }

// ContentSize returns the scrollable size: the bounds width and the total
// content height. It is zero when there are no sections.
func (e *Engine) ContentSize() geom.Size {
	snap := e.Snapshot()
	if snap.NumberOfSections() == 0 {
		return geom.Size{}
	}
	return geom.Size{Width: e.bounds.Width, Height: snap.ContentHeight()}
}

// AttributesForItem returns the cell at path, or ok == false when path is
// not in the current snapshot.
func (e *Engine) AttributesForItem(path IndexPath) (Attributes, bool) {
	return e.Snapshot().Item(path)
}

// AttributesForSupplementary returns the header or footer of path's section.
func (e *Engine) AttributesForSupplementary(kind Kind, path IndexPath) (Attributes, bool) {
	return e.Snapshot().Supplementary(kind, path.Section)
}

// AttributesInRect returns the cells of every section whose bounding
// rectangle intersects r. Headers and footers are fetched separately through
// AttributesForSupplementary.
func (e *Engine) AttributesInRect(r geom.Rect) []Attributes {
	return e.Snapshot().InRect(r)
}

// SupplementaryInRect returns the headers and footers whose frames intersect r.
func (e *Engine) SupplementaryInRect(r geom.Rect) []Attributes {
	return e.Snapshot().SupplementaryInRect(r)
}
