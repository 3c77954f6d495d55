package widgets

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/links"
	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

// Links element ids and classes.
const (
	LinksContainerID = "quickLinksContainer"
	LinkBlockClass   = "linkBlock"
	maxURLDisplay    = 28
)

// Section is one labeled group of links.
type Section struct {
	Key  string // matches Link.Section
	Name string // heading text
}

// Sections is the fixed, ordered set of link sections.
var Sections = []Section{
	{"general", "general"},
	{"email", "email"},
	{"code", "code"},
	{"school", "school"},
	{"work", "work"},
	{"banks", "banks"},
	{"streaming", "streaming"},
	{"fantasy", "fantasy"},
	{"games", "games"},
	{"project", "projects"},
	{"helpful", "helpful"},
	{"doc", "documentations"},
	{"studio", "studio software"},
}

// SectionClass returns the class of the section element for key.
func SectionClass(key string) string {
	return key + "Links"
}

// LinksWidget groups quick links into the fixed sections.
type LinksWidget struct {
	base
	sections map[string]dom.Node
}

// NewLinksWidget creates a links widget loading from the "links" collector
// through f.
func NewLinksWidget(f Fetcher, opts ...Option) *LinksWidget {
	return &LinksWidget{base: newBase(links.Name, "Links", f, opts)}
}

// Build creates the container with one empty, headed group per section.
func (w *LinksWidget) Build(doc dom.Document) (dom.Node, error) {
	root := element(doc, "div",
		"id", LinksContainerID, "class", "widget quickLinksContainer",
		"role", "navigation", "aria-label", "Quick links")

	w.sections = make(map[string]dom.Node, len(Sections))
	for _, s := range Sections {
		group := element(doc, "div",
			"class", SectionClass(s.Key), "role", "group", "aria-label", s.Name+" links")
		h := doc.CreateElement("h2")
		doc.SetText(h, s.Name)
		doc.AppendChild(group, h)
		doc.AppendChild(root, group)
		w.sections[s.Key] = group
	}

	w.mounted(doc)
	return root, nil
}

// Update places each link in its section. A failed load renders nothing:
// the sections stay as they are and no error is shown.
func (w *LinksWidget) Update(msg tea.Msg) (tea.Cmd, error) {
	ev, ok := w.ownUpdate(msg)
	if !ok {
		return nil, nil
	}

	list, ok := ev.Data.([]links.Link)
	switch {
	case ev.Err != nil:
		w.logger.Debug("links unavailable", "error", ev.Err)
		w.settle(false)
		return nil, nil
	case !ok:
		w.logger.Debug("links unavailable", "type", ev.Data)
		w.settle(false)
		return nil, nil
	}

	for _, group := range w.sections {
		clearChildren(w.doc, group, LinkBlockClass)
	}
	for _, l := range list {
		group, known := w.sections[l.Section]
		if !known {
			w.logger.Debug("dropping link in unknown section", "name", l.Name, "section", l.Section)
			continue
		}
		w.doc.AppendChild(group, linkBlock(w.doc, l))
	}
	w.settle(true)
	return nil, nil
}

// linkBlock builds
//
//	<a class="linkBlock" href=URL target=_blank rel="noopener noreferrer">
//	  <img class="linkIcon"> <span class="linkName">name<span class="linkUrl">short</span></span>
//	</a>
//
// The rel attribute keeps the opened page from reaching back to this one.
func linkBlock(doc dom.Document, l links.Link) dom.Node {
	a := element(doc, "a",
		"class", LinkBlockClass, "href", l.URL,
		"target", "_blank", "rel", "noopener noreferrer",
		"aria-label", "Open "+l.Name)

	img := element(doc, "img", "src", l.Icon, "alt", l.Name, "class", "linkIcon", "loading", "lazy")

	name := element(doc, "span", "class", "linkName")
	doc.SetText(name, l.Name)
	u := element(doc, "span", "class", "linkUrl")
	doc.SetText(u, TruncateURL(l.URL))
	doc.AppendChild(name, u)

	doc.AppendChild(a, img)
	doc.AppendChild(a, name)
	return a
}

// TruncateURL shortens display URLs longer than 28 characters to their
// first 28 followed by "...".
func TruncateURL(u string) string {
	r := []rune(u)
	if len(r) <= maxURLDisplay {
		return u
	}
	return string(r[:maxURLDisplay]) + "..."
}
