// Package widgets provides the concrete browserhome widgets: weather,
// crypto prices and quick links. Each widget implements app.Widget. Build
// lays down an empty skeleton, Load runs the widget's collector off the
// update loop, and Update renders the result into the skeleton.
package widgets

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/browserhome/pkg/app"
	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

// ErrNoSource is reported when a widget has no collector to run.
var ErrNoSource = errors.New("widget has no data source")

// Fetcher runs one collection cycle for the named collector.
// *collectors.Registry implements it.
type Fetcher interface {
	RunOnce(ctx context.Context, name string) (interface{}, error)
}

// Option configures a widget.
type Option func(*base)

// WithInterval asks for a reload this long after every settled load.
func WithInterval(d time.Duration) Option {
	return func(b *base) { b.interval = d }
}

// WithLogger sets the logger for degraded-rendering messages.
func WithLogger(l *slog.Logger) Option {
	return func(b *base) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithTitle overrides the display title.
func WithTitle(title string) Option {
	return func(b *base) {
		if title != "" {
			b.title = title
		}
	}
}

// base carries what every widget shares: identity, lifecycle state and the
// collector it loads from.
type base struct {
	id       string
	title    string
	fetcher  Fetcher
	interval time.Duration
	logger   *slog.Logger

	doc   dom.Document
	state app.WidgetState
}

func newBase(id, title string, f Fetcher, opts []Option) base {
	b := base{id: id, title: title, fetcher: f, logger: slog.Default()}
	for _, opt := range opts {
		opt(&b)
	}
	b.logger = b.logger.With("widget", id)
	return b
}

// ID returns the widget identifier, which is also its collector name.
func (b *base) ID() string { return b.id }

// Title returns the display title.
func (b *base) Title() string { return b.title }

// State returns the lifecycle state.
func (b *base) State() app.WidgetState { return b.state }

// RefreshInterval implements app.Refresher.
func (b *base) RefreshInterval() time.Duration { return b.interval }

// Load starts one collection cycle.
func (b *base) Load(ctx context.Context) tea.Cmd {
	b.state = app.StateLoading
	f, id := b.fetcher, b.id
	return app.DataFetchCmd(id, func() (interface{}, error) {
		if f == nil {
			return nil, ErrNoSource
		}
		return f.RunOnce(ctx, id)
	})
}

// mounted records the document and moves to StructureMounted.
func (b *base) mounted(doc dom.Document) {
	b.doc = doc
	b.state = app.StateStructureMounted
}

// settle records the outcome of a load.
func (b *base) settle(ok bool) {
	if ok {
		b.state = app.StatePopulated
	} else {
		b.state = app.StateFailed
	}
}

// ownUpdate extracts a DataUpdateEvent addressed to this widget.
func (b *base) ownUpdate(msg tea.Msg) (app.DataUpdateEvent, bool) {
	ev, ok := msg.(app.DataUpdateEvent)
	if !ok || ev.Source != b.id || b.doc == nil {
		return app.DataUpdateEvent{}, false
	}
	return ev, true
}

// element creates a tag with the given attributes in key, value order.
func element(doc dom.Document, tag string, attrs ...string) dom.Node {
	n := doc.CreateElement(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		doc.SetAttribute(n, attrs[i], attrs[i+1])
	}
	return n
}

// clearChildren detaches every element child of parent that carries class.
func clearChildren(doc dom.Document, parent dom.Node, class string) {
	for _, c := range dom.Children(parent) {
		if dom.HasClass(c, class) {
			doc.RemoveChild(parent, c)
		}
	}
}
