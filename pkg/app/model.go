package app

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/browserhome/pkg/clock"
	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
	"gitlab.com/tinyland/lab/browserhome/pkg/typing"
)

// Header element ids.
const (
	TitleID           = "title"
	ClockID           = "clock"
	CursorID          = "blinkingCursor"
	TypingContainerID = "typingContainer"
)

// Config holds the tunable parameters for the orchestrator.
type Config struct {
	// PageTitle is the document <title>.
	PageTitle string

	// Greeting is typed into the title slot once per program run.
	Greeting string

	// TypingDelay is the pause between revealed characters.
	TypingDelay time.Duration

	// GreetingSettle is the pause after the last character before the
	// header is marked settled.
	GreetingSettle time.Duration

	// ExitWhenSettled quits the program once the greeting is typed and
	// every widget has finished its first load.
	ExitWhenSettled bool

	// Logger receives widget failures. Nil uses slog.Default().
	Logger *slog.Logger

	// Publish, if set, receives a snapshot after every change to the page.
	// It is called from the update loop and must not block.
	Publish func(Snapshot)

	// OpenURL, if set, makes link rows in the terminal view clickable.
	// It runs off the update loop.
	OpenURL func(url string) error
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PageTitle:      "Home",
		Greeting:       "Welcome home.",
		TypingDelay:    typing.DefaultDelay,
		GreetingSettle: typing.DefaultSettle,
	}
}

// WidgetStatus is the externally visible state of one widget.
type WidgetStatus struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// Snapshot is an immutable copy of the page handed to Config.Publish.
type Snapshot struct {
	HTML      string         `json:"-"`
	Widgets   []WidgetStatus `json:"widgets"`
	Greeted   bool           `json:"greeted"`
	Generated time.Time      `json:"generated"`
}

// AppModel is the root bubbletea model.
type AppModel struct {
	cfg    Config
	ctx    context.Context
	logger *slog.Logger
	doc    dom.Document

	// Widget registry
	widgets     map[string]Widget
	widgetOrder []string
	roots       map[string]dom.Node
	faults      map[string]error

	// refreshGen is the generation of each widget's pending periodic
	// refresh. RefreshEvents carrying an older generation are stale.
	refreshGen map[string]uint64

	// Header
	titleSlot dom.Node
	clockSlot dom.Node
	typingBox dom.Node
	animator  *typing.Animator
	typed     bool
	greeted   bool

	// Navigation state
	focusedWidget  string
	expandedWidget string

	// Terminal
	width       int
	height      int
	helpVisible bool
	quitting    bool
	spinner     spinner.Model
	spinning    bool
	zones       *zone.Manager
}

// NewAppModel builds the page for the given widgets: header, clock and one
// mounted skeleton per widget. Nothing is fetched until Init runs.
func NewAppModel(cfg Config, widgets ...Widget) AppModel {
	return NewAppModelWithContext(context.Background(), cfg, widgets...)
}

// NewAppModelWithContext is NewAppModel with a context that bounds every
// fetch the model starts.
func NewAppModelWithContext(ctx context.Context, cfg Config, widgets ...Widget) AppModel {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PageTitle == "" {
		cfg.PageTitle = DefaultConfig().PageTitle
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := AppModel{
		cfg:     cfg,
		ctx:     ctx,
		logger:  logger,
		doc:     dom.NewTree(cfg.PageTitle),
		widgets: make(map[string]Widget, len(widgets)),
		roots:   make(map[string]dom.Node, len(widgets)),
		faults:  make(map[string]error),
		spinner: sp,

		refreshGen: make(map[string]uint64, len(widgets)),
	}
	if cfg.OpenURL != nil {
		m.zones = zone.New()
	}

	m.buildHeader()
	clock.Update(m.doc, m.clockSlot, time.Now())
	m.animator = typing.New(TitleID, m.doc, m.titleSlot, cfg.Greeting, cfg.TypingDelay)

	for _, w := range widgets {
		if w == nil {
			continue
		}
		id := w.ID()
		if _, dup := m.widgets[id]; dup {
			m.logger.Warn("duplicate widget ignored", "widget", id)
			continue
		}
		m.widgets[id] = w
		m.widgetOrder = append(m.widgetOrder, id)
		m.mount(w)
	}
	if ids := m.focusable(); len(ids) > 0 {
		m.focusedWidget = ids[0]
	}
	return m
}

// buildHeader inserts the banner (typing container and clock) as the first
// element of the body.
func (m *AppModel) buildHeader() {
	doc := m.doc

	header := doc.CreateElement("header")
	doc.SetAttribute(header, "class", "header")
	doc.SetAttribute(header, "role", "banner")

	title := doc.CreateElement("span")
	doc.SetAttribute(title, "id", TitleID)
	doc.SetAttribute(title, "aria-label", "Welcome message")

	cursor := doc.CreateElement("span")
	doc.SetAttribute(cursor, "id", CursorID)
	doc.SetAttribute(cursor, "aria-hidden", "true")

	box := doc.CreateElement("div")
	doc.SetAttribute(box, "id", TypingContainerID)
	doc.SetAttribute(box, "aria-live", "polite")
	doc.AppendChild(box, title)
	doc.AppendChild(box, cursor)

	clk := doc.CreateElement("time")
	doc.SetAttribute(clk, "id", ClockID)
	doc.SetAttribute(clk, "role", "timer")
	doc.SetAttribute(clk, "aria-live", "polite")
	doc.SetAttribute(clk, "aria-atomic", "true")

	doc.AppendChild(header, box)
	doc.AppendChild(header, clk)
	doc.InsertBefore(doc.Body(), header, doc.Body().FirstChild)

	m.titleSlot = title
	m.clockSlot = clk
	m.typingBox = box
}

// mount builds w's skeleton and attaches it to the main container.
func (m *AppModel) mount(w Widget) {
	id := w.ID()
	m.guard(id, "build", func() (tea.Cmd, error) {
		root, err := w.Build(m.doc)
		if err != nil {
			return nil, err
		}
		if root != nil {
			m.doc.AppendChild(m.doc.Main(), root)
			m.roots[id] = root
		}
		return nil, nil
	})
}

// Init starts the clock, the welcome animation and every widget's first
// load. The loads run concurrently; none waits for another.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(clock.Interval), m.animator.Start()}
	cmds = append(cmds, m.loadAll()...)
	if m.anyLoading() {
		cmds = append(cmds, m.spinner.Tick)
	}
	m.publish()
	return tea.Batch(cmds...)
}

// loadAll starts a load for every widget that mounted successfully.
func (m *AppModel) loadAll() []tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.widgetOrder {
		if cmd := m.load(id); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (m *AppModel) load(id string) tea.Cmd {
	w, ok := m.widgets[id]
	if !ok {
		return nil
	}
	if _, mounted := m.roots[id]; !mounted {
		return nil
	}
	// One fetch per widget at a time. The result in flight settles the
	// widget and schedules its next periodic load.
	if m.WidgetState(id) == StateLoading {
		return nil
	}
	delete(m.faults, id)
	return m.guard(id, "load", func() (tea.Cmd, error) {
		return w.Load(m.ctx), nil
	})
}

// Update is the single writer of the document.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case LinkOpenedEvent:
		if msg.Err != nil {
			m.logger.Warn("open link", "url", msg.URL, "error", msg.Err)
		} else {
			m.logger.Debug("opened link", "url", msg.URL)
		}
		return m, nil

	case TickEvent:
		clock.Update(m.doc, m.clockSlot, msg.Time)
		cmds = append(cmds, TickCmd(clock.Interval))

	case typing.CharEvent, typing.DoneEvent:
		if done, ok := msg.(typing.DoneEvent); ok && done.ID == m.animator.ID() {
			if !m.typed {
				m.typed = true
				cmds = append(cmds, greetingSettleCmd(m.cfg.GreetingSettle))
			}
			break
		}
		cmds = append(cmds, m.animator.Update(msg))

	case GreetingSettledEvent:
		m.greeted = true
		m.doc.SetAttribute(m.typingBox, "class", "typed")

	case RefreshEvent:
		if msg.Gen != 0 && msg.Gen != m.refreshGen[msg.Source] {
			m.logger.Debug("stale refresh dropped", "widget", msg.Source, "gen", msg.Gen)
			break
		}
		cmds = append(cmds, m.load(msg.Source))

	case DataUpdateEvent:
		if _, ok := m.widgets[msg.Source]; !ok {
			m.logger.Debug("update for unknown widget", "source", msg.Source)
			return m, nil
		}
		cmds = append(cmds, m.route(msg.Source, msg))
		cmds = append(cmds, m.scheduleRefresh(msg.Source))

	case spinner.TickMsg:
		if !m.anyLoading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		// Widget-private messages (e.g. their own timers) go to everyone;
		// widgets ignore what they do not own.
		for _, id := range m.widgetOrder {
			cmds = append(cmds, m.route(id, msg))
		}
	}

	if m.anyLoading() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}

	m.publish()

	if m.cfg.ExitWhenSettled && m.Settled() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tea.Batch(cmds...)
}

// route delivers msg to a single widget inside its failure boundary.
func (m *AppModel) route(id string, msg tea.Msg) tea.Cmd {
	w := m.widgets[id]
	if _, mounted := m.roots[id]; !mounted {
		return nil
	}
	return m.guard(id, "update", func() (tea.Cmd, error) {
		return w.Update(msg)
	})
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.CycleFocusForward()
	case "shift+tab":
		m.CycleFocusBackward()
	case "enter":
		m.ToggleExpand()
	case "esc":
		m.expandedWidget = ""
	case "?":
		m.helpVisible = !m.helpVisible
	case "r":
		cmds := m.loadAll()
		if !m.spinning && m.anyLoading() {
			m.spinning = true
			cmds = append(cmds, m.spinner.Tick)
		}
		m.publish()
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// scheduleRefresh starts the next periodic load for a settled widget. It
// bumps the widget's generation first, so any refresh still pending from an
// earlier load is dropped when it fires.
func (m *AppModel) scheduleRefresh(id string) tea.Cmd {
	if !m.WidgetState(id).Settled() {
		return nil
	}
	r, ok := m.widgets[id].(Refresher)
	if !ok || r.RefreshInterval() <= 0 {
		return nil
	}
	m.refreshGen[id]++
	return RefreshCmd(id, m.refreshGen[id], r.RefreshInterval())
}

func greetingSettleCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return GreetingSettledEvent{} })
}

// WidgetState returns the effective state of widget id. A widget whose
// boundary caught an error is failed regardless of what it reports.
func (m AppModel) WidgetState(id string) WidgetState {
	w, ok := m.widgets[id]
	if !ok {
		return StateUninitialized
	}
	if _, failed := m.faults[id]; failed {
		return StateFailed
	}
	return w.State()
}

// Statuses returns the state of every widget in display order.
func (m AppModel) Statuses() []WidgetStatus {
	out := make([]WidgetStatus, 0, len(m.widgetOrder))
	for _, id := range m.widgetOrder {
		st := WidgetStatus{ID: id, Title: m.widgets[id].Title(), State: m.WidgetState(id).String()}
		if err := m.faults[id]; err != nil {
			st.Error = err.Error()
		}
		out = append(out, st)
	}
	return out
}

// Settled reports whether the greeting is fully typed and every widget has
// finished loading at least once.
func (m AppModel) Settled() bool {
	if !m.animator.Done() && !m.typed {
		return false
	}
	for _, id := range m.widgetOrder {
		if !m.WidgetState(id).Settled() {
			return false
		}
	}
	return true
}

func (m AppModel) anyLoading() bool {
	for _, id := range m.widgetOrder {
		if m.WidgetState(id) == StateLoading {
			return true
		}
	}
	return false
}

// HTML renders the current document.
func (m AppModel) HTML() string {
	var buf bytes.Buffer
	if err := m.doc.Render(&buf); err != nil {
		m.logger.Error("render document", "error", err)
	}
	return buf.String()
}

// Snapshot returns a copy of the page and widget states.
func (m AppModel) Snapshot() Snapshot {
	return Snapshot{
		HTML:      m.HTML(),
		Widgets:   m.Statuses(),
		Greeted:   m.greeted,
		Generated: time.Now(),
	}
}

func (m AppModel) publish() {
	if m.cfg.Publish != nil {
		m.cfg.Publish(m.Snapshot())
	}
}

// Document returns the page. Callers outside the update loop must not
// mutate it while the program runs.
func (m AppModel) Document() dom.Document { return m.doc }

// Width returns the current terminal width.
func (m AppModel) Width() int { return m.width }

// Height returns the current terminal height.
func (m AppModel) Height() int { return m.height }

// FocusedWidgetID returns the ID of the currently focused widget.
func (m AppModel) FocusedWidgetID() string { return m.focusedWidget }

// ExpandedWidgetID returns the ID of the expanded widget, or "" if none.
func (m AppModel) ExpandedWidgetID() string { return m.expandedWidget }

// HelpVisible returns whether the help overlay is shown.
func (m AppModel) HelpVisible() bool { return m.helpVisible }

// Quitting returns whether the app is shutting down.
func (m AppModel) Quitting() bool { return m.quitting }

// Greeted returns whether the welcome animation has settled.
func (m AppModel) Greeted() bool { return m.greeted }
