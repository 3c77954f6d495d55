package tui

import (
	"strings"

	"golang.org/x/net/html"

	"gitlab.com/tinyland/lab/browserhome/pkg/components"
	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

// Palette used for widget content.
const (
	colorPositive = "#4CAF50"
	colorNegative = "#F44336"
	colorAccent   = "#A78BFA"
	colorError    = "#EF4444"
)

// rowClasses mark elements whose whole subtree is drawn on one line.
var rowClasses = []string{"listBlock", "linkBlock"}

// skipped elements never produce terminal output.
var skipped = map[string]bool{
	"img": true, "script": true, "style": true, "head": true,
}

// inline elements continue the current line instead of starting one.
var inline = map[string]bool{
	"span": true, "a": true, "time": true, "b": true, "i": true, "em": true, "strong": true,
}

type styleFn func(string) string

func plain(s string) string { return s }

func colored(hex string) styleFn {
	pre := components.Color(hex)
	return func(s string) string { return pre + s + components.Reset() }
}

// NodeLines flattens a widget subtree into terminal lines. Block elements
// start new lines, list and link blocks collapse to one line each, slots
// with a title attribute are labeled with it, and icons are dropped.
func NodeLines(n dom.Node) []string {
	return nodeLines(n, nil)
}

// nodeLines is NodeLines with an optional mark applied to every row that
// carries an href.
func nodeLines(n dom.Node, mark func(href, line string) string) []string {
	if n == nil {
		return nil
	}
	r := &lineRenderer{mark: mark}
	r.walk(n, plain)
	r.flush()
	return r.lines
}

// LinkTargets returns the href of every clickable row under n in document
// order. These are the rows Render marks when the page has a zone manager.
func LinkTargets(n dom.Node) []string {
	if n == nil {
		return nil
	}
	var out []string
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		if c.Type == html.ElementNode && isRow(c) {
			if href, ok := attrValue(c, "href"); ok && href != "" {
				out = append(out, href)
			}
			return
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			visit(k)
		}
	}
	visit(n)
	return out
}

// LinkZoneID names the mouse zone of the row linking to href.
func LinkZoneID(href string) string {
	return "link:" + href
}

type lineRenderer struct {
	lines []string
	cur   []string
	mark  func(href, line string) string
}

func (r *lineRenderer) flush() {
	if len(r.cur) == 0 {
		return
	}
	r.lines = append(r.lines, strings.Join(r.cur, " "))
	r.cur = nil
}

func (r *lineRenderer) walk(n *html.Node, style styleFn) {
	switch n.Type {
	case html.TextNode:
		if t := collapse(n.Data); t != "" {
			r.cur = append(r.cur, style(t))
		}
		return
	case html.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.walk(c, style)
		}
		return
	}

	if skipped[n.Data] {
		return
	}
	style = classStyle(n, style)

	switch {
	case isRow(n):
		r.flush()
		if t := inlineText(n); t != "" {
			line := style(t)
			if href, ok := attrValue(n, "href"); ok && href != "" && r.mark != nil {
				line = r.mark(href, line)
			}
			r.lines = append(r.lines, line)
		}
		return

	case isHeading(n):
		r.flush()
		if t := inlineText(n); t != "" {
			r.lines = append(r.lines, components.Bold(colored(colorAccent)(t)))
		}
		return

	case hasAttr(n, "title") && !inline[n.Data]:
		r.flush()
		if t := inlineText(n); t != "" {
			title, _ := attrValue(n, "title")
			r.lines = append(r.lines, components.Dim(title+":")+" "+style(t))
		}
		return

	case isEmptyGroup(n):
		return
	}

	if inline[n.Data] {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.walk(c, style)
		}
		return
	}

	r.flush()
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c, style)
	}
	r.flush()
}

// classStyle picks a color from the element's class list, falling back
// to the inherited style.
func classStyle(n *html.Node, inherited styleFn) styleFn {
	switch {
	case dom.HasClass(n, "positive"):
		return colored(colorPositive)
	case dom.HasClass(n, "negative"):
		return colored(colorNegative)
	case dom.HasClass(n, "neutral"):
		return components.Dim
	case dom.HasClass(n, "error"):
		return colored(colorError)
	}
	return inherited
}

func isRow(n *html.Node) bool {
	for _, c := range rowClasses {
		if dom.HasClass(n, c) {
			return true
		}
	}
	return false
}

func isHeading(n *html.Node) bool {
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// isEmptyGroup reports a role=group element that holds nothing but its
// heading, such as a link section with no links.
func isEmptyGroup(n *html.Node) bool {
	if role, _ := attrValue(n, "role"); role != "group" {
		return false
	}
	for _, c := range dom.Children(n) {
		if !isHeading(c) {
			return false
		}
	}
	return true
}

// inlineText joins every text node under n with single spaces, skipping
// icons.
func inlineText(n *html.Node) string {
	var parts []string
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		if c.Type == html.ElementNode && skipped[c.Data] {
			return
		}
		if c.Type == html.TextNode {
			if t := collapse(c.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			visit(k)
		}
	}
	visit(n)
	return strings.Join(parts, " ")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attrValue(n, key)
	return ok
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
