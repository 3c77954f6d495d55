package widgets

import (
	"errors"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/browserhome/pkg/app"
	"gitlab.com/tinyland/lab/browserhome/pkg/collectors/links"
	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

func sectionNode(t *testing.T, tree *dom.Tree, key string) dom.Node {
	t.Helper()
	c, ok := tree.ElementByID(LinksContainerID)
	if !ok {
		t.Fatal("links container missing")
	}
	found := tree.ElementsByClass(c, SectionClass(key))
	if len(found) != 1 {
		t.Fatalf("found %d %q sections, want 1", len(found), key)
	}
	return found[0]
}

func TestLinksWidget_BuildSections(t *testing.T) {
	w := NewLinksWidget(nil)
	tree, root := mountWidget(t, w)

	groups := dom.Children(root)
	if len(groups) != len(Sections) {
		t.Fatalf("got %d sections, want %d", len(groups), len(Sections))
	}
	for i, s := range Sections {
		if !dom.HasClass(groups[i], SectionClass(s.Key)) {
			t.Errorf("section %d is not %q", i, s.Key)
		}
		if got := dom.TextContent(groups[i]); got != s.Name {
			t.Errorf("section %d heading = %q, want %q", i, got, s.Name)
		}
	}
	if got := dom.TextContent(sectionNode(t, tree, "doc")); got != "documentations" {
		t.Errorf("doc heading = %q", got)
	}
}

func TestLinksWidget_Render(t *testing.T) {
	w := NewLinksWidget(nil)
	tree, _ := mountWidget(t, w)

	deliver(t, w, []links.Link{
		{Name: "Mail", URL: "https://mail.example.com", Icon: "mail.png", Section: "email"},
		{Name: "Docs", URL: "https://docs.example.com/reference/manual", Icon: "docs.png", Section: "doc"},
		{Name: "Mystery", URL: "https://example.com", Icon: "x.png", Section: "unknown"},
		{Name: "Repo", URL: "https://code.example.com", Icon: "git.png", Section: "code"},
	}, nil)

	if w.State() != app.StatePopulated {
		t.Errorf("State() = %v, want populated", w.State())
	}

	root, _ := tree.ElementByID(LinksContainerID)
	if n := len(tree.ElementsByClass(root, LinkBlockClass)); n != 3 {
		t.Errorf("got %d link blocks, want 3 (unknown section dropped)", n)
	}

	docBlocks := tree.ElementsByClass(sectionNode(t, tree, "doc"), LinkBlockClass)
	if len(docBlocks) != 1 {
		t.Fatalf("got %d doc links, want 1", len(docBlocks))
	}
	a := docBlocks[0]
	if href, _ := tree.Attribute(a, "href"); href != "https://docs.example.com/reference/manual" {
		t.Errorf("href = %q, want the full URL", href)
	}
	if rel, _ := tree.Attribute(a, "rel"); rel != "noopener noreferrer" {
		t.Errorf("rel = %q", rel)
	}
	if target, _ := tree.Attribute(a, "target"); target != "_blank" {
		t.Errorf("target = %q", target)
	}
	shown := dom.TextContent(tree.ElementsByClass(a, "linkUrl")[0])
	if shown != "https://docs.example.com/ref..." {
		t.Errorf("display url = %q", shown)
	}
	if got := dom.TextContent(a); got != "Docs"+shown {
		t.Errorf("link text = %q", got)
	}
}

func TestLinksWidget_RerenderClearsBlocks(t *testing.T) {
	w := NewLinksWidget(nil)
	tree, root := mountWidget(t, w)
	list := []links.Link{
		{Name: "Mail", URL: "https://mail.example.com", Section: "email"},
		{Name: "Bank", URL: "https://bank.example.com", Section: "banks"},
	}

	deliver(t, w, list, nil)
	deliver(t, w, list[:1], nil)

	if n := len(tree.ElementsByClass(root, LinkBlockClass)); n != 1 {
		t.Errorf("got %d link blocks, want 1", n)
	}
	if n := len(tree.ElementsByClass(sectionNode(t, tree, "banks"), LinkBlockClass)); n != 0 {
		t.Errorf("stale bank link survived the refresh")
	}
}

func TestLinksWidget_FailureRendersNothing(t *testing.T) {
	w := NewLinksWidget(nil)
	tree, root := mountWidget(t, w)
	deliver(t, w, []links.Link{{Name: "Mail", URL: "https://mail.example.com", Section: "email"}}, nil)

	before := renderHTML(t, tree)
	deliver(t, w, nil, errors.New("read links: no such file"))
	after := renderHTML(t, tree)

	if before != after {
		t.Error("failed load changed the document")
	}
	if n := len(tree.ElementsByClass(root, "error")); n != 0 {
		t.Errorf("failed load rendered %d error nodes", n)
	}
	if w.State() != app.StateFailed {
		t.Errorf("State() = %v, want failed", w.State())
	}

	deliver(t, w, map[string]string{"not": "links"}, nil)
	if w.State() != app.StateFailed {
		t.Errorf("State() after bad data = %v, want failed", w.State())
	}
}

func renderHTML(t *testing.T, tree *dom.Tree) string {
	t.Helper()
	var b strings.Builder
	if err := tree.Render(&b); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

func TestTruncateURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"https://example.com", "https://example.com"},
		{"https://abcdefghijklmnopqrst", "https://abcdefghijklmnopqrst"},
		{"https://abcdefghijklmnopqrstu", "https://abcdefghijklmnopqrst..."},
	}
	for _, tt := range tests {
		if got := TruncateURL(tt.in); got != tt.want {
			t.Errorf("TruncateURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
