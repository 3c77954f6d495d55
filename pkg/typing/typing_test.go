package typing

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

func newTarget() (*dom.Tree, dom.Node) {
	tree := dom.NewTree("test")
	n := tree.CreateElement("span")
	tree.AppendChild(tree.Body(), n)
	return tree, n
}

// drive runs the animator to completion, recording the text after every
// reveal and the wall-clock gap between reveals.
func drive(t *testing.T, a *Animator, target dom.Node) (snapshots []string, gaps []time.Duration) {
	t.Helper()
	cmd := a.Start()
	snapshots = append(snapshots, dom.TextContent(target))
	last := time.Now()
	for i := 0; cmd != nil; i++ {
		if i > 1000 {
			t.Fatal("animation did not terminate")
		}
		msg := cmd()
		if _, ok := msg.(DoneEvent); ok {
			return snapshots, gaps
		}
		now := time.Now()
		gaps = append(gaps, now.Sub(last))
		last = now
		cmd = a.Update(msg)
		snapshots = append(snapshots, dom.TextContent(target))
	}
	t.Fatal("animation ended without DoneEvent")
	return nil, nil
}

func TestAnimateRevealsInOrder(t *testing.T) {
	tree, target := newTarget()
	const delay = 5 * time.Millisecond
	a := New("title", tree, target, "Hey!", delay)

	snaps, gaps := drive(t, a, target)

	want := []string{"H", "He", "Hey", "Hey!", "Hey!"}
	if len(snaps) != len(want) {
		t.Fatalf("got %d snapshots %q, want %d", len(snaps), snaps, len(want))
	}
	for i := range want {
		if snaps[i] != want[i] {
			t.Errorf("snapshot[%d] = %q, want %q", i, snaps[i], want[i])
		}
	}
	for i, g := range gaps {
		if g < delay {
			t.Errorf("gap[%d] = %v, want >= %v", i, g, delay)
		}
	}
	if !a.Done() {
		t.Error("Done() = false after DoneEvent")
	}
	if a.Revealed() != 4 {
		t.Errorf("Revealed() = %d, want 4", a.Revealed())
	}
}

func TestAnimateEmptyCompletesImmediately(t *testing.T) {
	tree, target := newTarget()
	a := New("title", tree, target, "", time.Hour)

	start := time.Now()
	cmd := a.Start()
	if cmd == nil {
		t.Fatal("Start() returned nil")
	}
	if _, ok := cmd().(DoneEvent); !ok {
		t.Fatal("empty text should complete with DoneEvent")
	}
	if time.Since(start) > time.Second {
		t.Error("empty text waited for the delay")
	}
	if got := dom.TextContent(target); got != "" {
		t.Errorf("target text = %q, want empty", got)
	}
}

func TestAnimateAppendsToExistingContent(t *testing.T) {
	tree, target := newTarget()
	tree.SetText(target, "> ")
	a := New("title", tree, target, "hi", time.Millisecond)

	drive(t, a, target)

	if got := dom.TextContent(target); got != "> hi" {
		t.Errorf("target text = %q, want %q", got, "> hi")
	}
}

func TestAnimateNilTargetCompletes(t *testing.T) {
	tree := dom.NewTree("test")
	a := New("title", tree, nil, "hello", time.Millisecond)
	cmd := a.Start()
	if _, ok := cmd().(DoneEvent); !ok {
		t.Fatal("nil target should complete with DoneEvent")
	}
}

func TestUpdateIgnoresForeignEvents(t *testing.T) {
	tree, target := newTarget()
	a := New("title", tree, target, "abc", time.Millisecond)
	a.Start()

	if cmd := a.Update(CharEvent{ID: "other"}); cmd != nil {
		t.Error("foreign CharEvent should be ignored")
	}
	if cmd := a.Update(tea.KeyMsg{}); cmd != nil {
		t.Error("unrelated message should be ignored")
	}
	if got := dom.TextContent(target); got != "a" {
		t.Errorf("target text = %q, want %q", got, "a")
	}
}

func TestSecondAnimatorInterleaves(t *testing.T) {
	tree, target := newTarget()
	a := New("a", tree, target, "ab", time.Millisecond)
	b := New("b", tree, target, "xy", time.Millisecond)

	a.Start()
	b.Start()
	a.Update(CharEvent{ID: "a"})
	b.Update(CharEvent{ID: "b"})

	if got := dom.TextContent(target); got != "axby" {
		t.Errorf("target text = %q, want interleaved %q", got, "axby")
	}
}
