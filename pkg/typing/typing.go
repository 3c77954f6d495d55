// Package typing reveals a string into a document slot one character at a
// time, driven by bubbletea ticks so it shares the app's event loop.
//
// The animator appends to whatever the slot already holds and never clears
// it, so a cursor element next to the slot keeps its position. Running two
// animators against the same slot interleaves their output; callers start
// one per slot.
package typing

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/browserhome/pkg/dom"
)

// Default timings for the welcome message.
const (
	DefaultDelay  = 75 * time.Millisecond
	DefaultSettle = 2 * time.Second
)

// CharEvent asks the animator identified by ID to reveal its next character.
type CharEvent struct {
	ID string
}

// DoneEvent reports that the animator identified by ID has revealed its
// whole text.
type DoneEvent struct {
	ID string
}

// Animator types text into a target slot.
type Animator struct {
	id     string
	doc    dom.Document
	target dom.Node
	text   []rune
	delay  time.Duration

	pos  int
	done bool
}

// New creates an animator. delay is the pause between characters.
func New(id string, doc dom.Document, target dom.Node, text string, delay time.Duration) *Animator {
	if delay < 0 {
		delay = 0
	}
	return &Animator{
		id:     id,
		doc:    doc,
		target: target,
		text:   []rune(text),
		delay:  delay,
	}
}

// ID returns the animator identifier carried by its events.
func (a *Animator) ID() string { return a.id }

// Done reports whether every character has been revealed.
func (a *Animator) Done() bool { return a.done }

// Revealed returns how many characters have been written so far.
func (a *Animator) Revealed() int { return a.pos }

// Start reveals the first character immediately and returns the command
// that schedules the next one. Empty text (or a missing target) completes
// at once without writing anything.
func (a *Animator) Start() tea.Cmd {
	if len(a.text) == 0 || a.target == nil || a.doc == nil {
		a.done = true
		return a.doneCmd()
	}
	return a.step()
}

// Update advances the animation on a CharEvent addressed to this animator.
// Other messages are ignored.
func (a *Animator) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(CharEvent)
	if !ok || ev.ID != a.id || a.done {
		return nil
	}
	if a.pos >= len(a.text) {
		a.done = true
		return a.doneCmd()
	}
	return a.step()
}

// step writes the character at pos and schedules the following event one
// delay later. After the final character the scheduled event completes the
// animation.
func (a *Animator) step() tea.Cmd {
	a.doc.AppendText(a.target, string(a.text[a.pos]))
	a.pos++
	id := a.id
	return tea.Tick(a.delay, func(time.Time) tea.Msg {
		return CharEvent{ID: id}
	})
}

func (a *Animator) doneCmd() tea.Cmd {
	id := a.id
	return func() tea.Msg { return DoneEvent{ID: id} }
}
