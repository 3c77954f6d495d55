// Package dom is the render target for browserhome widgets. It exposes an
// in-memory HTML document through a small set of primitives (element
// creation, attributes, text, append/remove) so widget code never depends
// on how the page is eventually displayed.
package dom

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node is an element handle issued by a Document.
type Node = *html.Node

// Document is the set of operations widgets may perform on the page.
// Implementations are not safe for concurrent use; the app event loop is
// the only writer.
type Document interface {
	// CreateElement returns a new detached element.
	CreateElement(tag string) Node

	// SetAttribute sets or replaces an attribute on n.
	SetAttribute(n Node, key, val string)

	// Attribute returns the value of an attribute on n.
	Attribute(n Node, key string) (string, bool)

	// SetText replaces all content of n with a single text node.
	SetText(n Node, text string)

	// AppendText appends text after any existing content of n.
	AppendText(n Node, text string)

	// AppendChild attaches child as the last child of parent, detaching it
	// from any previous parent first.
	AppendChild(parent, child Node)

	// InsertBefore attaches child to parent just before ref. A nil ref, or
	// one that is not a child of parent, appends instead.
	InsertBefore(parent, child, ref Node)

	// RemoveChild detaches child from parent. It is a no-op if child is not
	// a direct child of parent.
	RemoveChild(parent, child Node)

	// ElementByID returns the first attached element whose id matches.
	ElementByID(id string) (Node, bool)

	// ElementsByClass returns the descendants of root (root excluded)
	// carrying the class token, in document order.
	ElementsByClass(root Node, class string) []Node

	// Body returns the <body> element.
	Body() Node

	// Main returns the main.container mount point for widgets.
	Main() Node

	// Render writes the document as HTML.
	Render(w io.Writer) error
}

// Tree is the in-memory Document backed by golang.org/x/net/html nodes.
type Tree struct {
	root *html.Node
	body *html.Node
	main *html.Node
}

// NewTree builds an empty page: doctype, <head> with the given title and
// a <body> holding an empty main.container.
func NewTree(title string) *Tree {
	t := &Tree{root: &html.Node{Type: html.DocumentNode}}
	t.root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := t.CreateElement("html")
	t.SetAttribute(htmlEl, "lang", "en")
	t.root.AppendChild(htmlEl)

	head := t.CreateElement("head")
	meta := t.CreateElement("meta")
	t.SetAttribute(meta, "charset", "utf-8")
	head.AppendChild(meta)
	titleEl := t.CreateElement("title")
	t.SetText(titleEl, title)
	head.AppendChild(titleEl)
	htmlEl.AppendChild(head)

	t.body = t.CreateElement("body")
	htmlEl.AppendChild(t.body)

	t.main = t.CreateElement("main")
	t.SetAttribute(t.main, "class", "container")
	t.body.AppendChild(t.main)
	return t
}

// CreateElement returns a new detached element.
func (t *Tree) CreateElement(tag string) Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// SetAttribute sets or replaces an attribute on n.
func (t *Tree) SetAttribute(n Node, key, val string) {
	if n == nil {
		return
	}
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Attribute returns the value of an attribute on n.
func (t *Tree) Attribute(n Node, key string) (string, bool) {
	return attr(n, key)
}

// SetText replaces all content of n with a single text node.
func (t *Tree) SetText(n Node, text string) {
	if n == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// AppendText appends text after any existing content of n. Consecutive
// appends extend the trailing text node instead of adding new ones.
func (t *Tree) AppendText(n Node, text string) {
	if n == nil || text == "" {
		return
	}
	if last := n.LastChild; last != nil && last.Type == html.TextNode {
		last.Data += text
		return
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// AppendChild attaches child as the last child of parent.
func (t *Tree) AppendChild(parent, child Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	parent.AppendChild(child)
}

// InsertBefore attaches child to parent just before ref.
func (t *Tree) InsertBefore(parent, child, ref Node) {
	if parent == nil || child == nil || child == ref {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	if ref == nil || ref.Parent != parent {
		parent.AppendChild(child)
		return
	}
	parent.InsertBefore(child, ref)
}

// RemoveChild detaches child from parent.
func (t *Tree) RemoveChild(parent, child Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}
	parent.RemoveChild(child)
}

// ElementByID returns the first attached element whose id matches.
func (t *Tree) ElementByID(id string) (Node, bool) {
	if id == "" {
		return nil, false
	}
	var found *html.Node
	walk(t.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if v, ok := attr(n, "id"); ok && v == id {
				found = n
				return false
			}
		}
		return true
	})
	return found, found != nil
}

// ElementsByClass returns the descendants of root carrying the class token.
func (t *Tree) ElementsByClass(root Node, class string) []Node {
	if root == nil || class == "" {
		return nil
	}
	sel := goquery.NewDocumentFromNode(root).Find("." + class)
	if sel.Length() == 0 {
		return nil
	}
	out := make([]Node, len(sel.Nodes))
	copy(out, sel.Nodes)
	return out
}

// Body returns the <body> element.
func (t *Tree) Body() Node { return t.body }

// Main returns the main.container element.
func (t *Tree) Main() Node { return t.main }

// Render writes the document as HTML5.
func (t *Tree) Render(w io.Writer) error {
	return html.Render(w, t.root)
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// HasClass reports whether n carries the class token.
func HasClass(n Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, f := range strings.Fields(v) {
		if f == class {
			return true
		}
	}
	return false
}

// Children returns the element children of n in order.
func Children(n Node) []Node {
	if n == nil {
		return nil
	}
	var out []Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
