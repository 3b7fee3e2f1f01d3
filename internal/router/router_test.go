package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/yetria/yetria/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title    string
	initRan  bool
	disposed int
}

func (s *stubScreen) Dispose() { s.disposed++ }

// plainScreen does not implement screen.Disposer.
type plainScreen struct{}

func (p *plainScreen) Init() tea.Cmd                           { return nil }
func (p *plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (p *plainScreen) View(int, int) string                    { return "plain" }
func (p *plainScreen) Title() string                           { return "plain" }

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

func TestPopDisposes(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	r.Update(PopScreenMsg{})

	if s2.disposed != 1 {
		t.Errorf("expected popped screen disposed once, got %d", s2.disposed)
	}
	if s1.disposed != 0 {
		t.Errorf("remaining screen should not be disposed")
	}

	r.Pop()
	if s1.disposed != 0 {
		t.Errorf("pop at bottom must not dispose, got %d", s1.disposed)
	}
}

func TestReplaceDisposesReplaced(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	r.Replace(&stubScreen{title: "second"})

	if s1.disposed != 1 {
		t.Errorf("expected replaced screen disposed once, got %d", s1.disposed)
	}
}

func TestResetDisposesAll(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	s2 := &stubScreen{title: "second"}
	r := New(s1)
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Update(ResetScreenMsg{Screen: s3})

	if r.Depth() != 1 || r.Active().Title() != "third" {
		t.Fatalf("expected only 'third' on the stack, got depth %d", r.Depth())
	}
	if s1.disposed != 1 || s2.disposed != 1 {
		t.Errorf("expected both old screens disposed, got %d and %d", s1.disposed, s2.disposed)
	}
	if !s3.initRan {
		t.Error("expected Init() to run on reset screen")
	}
}

func TestNonDisposerIsSkipped(t *testing.T) {
	p := &plainScreen{}
	r := New(&stubScreen{title: "first"})
	r.Push(p)
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
}

func TestCommandHelpers(t *testing.T) {
	s := &stubScreen{title: "x"}
	if msg, ok := Push(s)().(PushScreenMsg); !ok || msg.Screen != s {
		t.Error("Push should produce PushScreenMsg")
	}
	if _, ok := Pop()().(PopScreenMsg); !ok {
		t.Error("Pop should produce PopScreenMsg")
	}
	if msg, ok := Replace(s)().(ReplaceScreenMsg); !ok || msg.Screen != s {
		t.Error("Replace should produce ReplaceScreenMsg")
	}
	if msg, ok := Reset(s)().(ResetScreenMsg); !ok || msg.Screen != s {
		t.Error("Reset should produce ResetScreenMsg")
	}
}

func TestUnwindReplacesSeveralLevels(t *testing.T) {
	home := &stubScreen{title: "home"}
	journey := &stubScreen{title: "journey"}
	flow := &stubScreen{title: "flow"}
	r := New(home)
	r.Push(journey)
	r.Push(flow)

	results := &stubScreen{title: "results"}
	r.Update(Unwind(2, results)())

	if r.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "results" {
		t.Errorf("expected active 'results', got %q", r.Active().Title())
	}
	if journey.disposed != 1 || flow.disposed != 1 || home.disposed != 0 {
		t.Errorf("unexpected disposals: home=%d journey=%d flow=%d", home.disposed, journey.disposed, flow.disposed)
	}
}

func TestUnwindIsCappedAtStackDepth(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Update(ReplaceScreenMsg{Screen: &stubScreen{title: "only"}, Levels: 5})

	if r.Depth() != 1 || r.Active().Title() != "only" {
		t.Errorf("expected only 'only' on the stack, got depth %d", r.Depth())
	}
	if home.disposed != 1 {
		t.Errorf("expected home disposed, got %d", home.disposed)
	}
}
