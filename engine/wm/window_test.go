package wm

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/hubastard/railhud/engine/ui"
)

func TestNewWindowScalesHeightWithText(t *testing.T) {
	m := NewManager(ManagerOptions{Theme: &ui.Theme{Font: fixedFont{w: 8, h: 20}}})
	w := NewWindow(m, nil, Options{Caption: "Test", Width: 200, Height: 100})
	if got := w.Location(); got.W != 200 || got.H != 104 {
		t.Fatalf("location = %v, want 200x104", got)
	}
	if w.Name() != "Test" {
		t.Fatalf("name = %q, want caption", w.Name())
	}
}

func TestMoveToKeepsWindowOnScreen(t *testing.T) {
	tests := []struct {
		name   string
		screen ui.Point
		x, y   int
		want   ui.Point
	}{
		{"inside", ui.Pt(800, 600), 100, 50, ui.Pt(100, 50)},
		{"negative", ui.Pt(800, 600), -30, -1, ui.Pt(0, 0)},
		{"past edge", ui.Pt(800, 600), 700, 590, ui.Pt(600, 450)},
		{"screen too small", ui.Pt(150, 100), 40, 40, ui.Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(nil, nil)
			w := NewWindow(m, nil, Options{Caption: "w", Width: 200, Height: 150})
			m.Initialize(tt.screen)
			w.MoveTo(tt.x, tt.y)
			if got := w.Location().Min(); got != tt.want {
				t.Fatalf("MoveTo(%d, %d) -> %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestOnScreenAfterEveryResize(t *testing.T) {
	m := newTestManager(nil, nil)
	w := NewWindow(m, nil, Options{Caption: "w", Width: 200, Height: 150})
	m.Initialize(ui.Pt(800, 600))
	w.MoveTo(550, 400)

	sizes := []ui.Point{{X: 300, Y: 200}, {X: 500, Y: 500}, {X: 100, Y: 80}, {X: 800, Y: 600}, {X: 250, Y: 250}}
	for _, s := range sizes {
		w.SizeTo(s.X, s.Y)
		loc := w.Location()
		if loc.X < 0 || loc.Y < 0 || loc.Right() > 800 || loc.Bottom() > 600 {
			t.Fatalf("after SizeTo(%v) window at %v is off screen", s, loc)
		}
	}
}

func TestSizeNeverBelowMinimum(t *testing.T) {
	tests := []struct {
		name string
		min  ui.Point
		size ui.Point
		want ui.Rect
	}{
		{"negative", ui.Point{}, ui.Pt(-50, 0), ui.Rect{X: 600, Y: 450, W: 8, H: 29}},
		{"caller minimum", ui.Pt(120, 60), ui.Pt(100, 40), ui.Rect{X: 600, Y: 450, W: 120, H: 60}},
		{"minimum below decoration", ui.Pt(2, 2), ui.Pt(1, 1), ui.Rect{X: 600, Y: 450, W: 8, H: 29}},
		{"large enough", ui.Point{}, ui.Pt(50, 40), ui.Rect{X: 600, Y: 450, W: 50, H: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(nil, nil)
			w := NewWindow(m, nil, Options{Caption: "w", Width: 200, Height: 150, MinSize: tt.min})
			m.Initialize(ui.Pt(800, 600))
			w.MoveTo(700, 500)
			w.SizeTo(tt.size.X, tt.size.Y)
			if got := w.Location(); got != tt.want {
				t.Fatalf("SizeTo(%v) -> %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestSizeToRebuildsLayout(t *testing.T) {
	m := newTestManager(nil, nil)
	p := newTestPopup(m, Options{Caption: "p", Width: 200, Height: 150})
	m.Initialize(ui.Pt(800, 600))
	before := p.Root()
	p.SizeTo(300, 150)
	if p.Root() == before {
		t.Fatalf("layout was not rebuilt")
	}
	if got := p.label.Position.W; got != 300-8 {
		t.Fatalf("label width = %d, want %d", got, 300-8)
	}
	root := p.Root()
	p.SizeTo(300, 150)
	if p.Root() != root {
		t.Fatalf("same size should not rebuild")
	}
}

func TestBaseLayoutFrame(t *testing.T) {
	m := newTestManager(nil, nil)
	p := newTestPopup(m, Options{Caption: "p", Width: 200, Height: 150})
	m.Initialize(ui.Pt(800, 600))
	if got := p.label.Position; got.X != DecorationOffset.X || got.Y != DecorationOffset.Y {
		t.Fatalf("content starts at %v, want %v", got.Min(), DecorationOffset)
	}
}

func TestSizeToAnchored(t *testing.T) {
	m := newTestManager(nil, nil)
	w := NewWindow(m, nil, Options{Caption: "w", Width: 200, Height: 100})
	m.Initialize(ui.Pt(800, 600))
	w.MoveTo(300, 250)

	w.SizeToAnchored(200, 60, AnchorCenter)
	if got := w.Location(); got.Y != 270 || got.X != 300 || got.H != 60 {
		t.Fatalf("centre anchored resize -> %v", got)
	}
	w.SizeToAnchored(200, 100, AnchorBottomCenter)
	if got := w.Location(); got.Bottom() != 330 {
		t.Fatalf("bottom anchored resize -> %v, bottom %d", got, got.Bottom())
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	positions := []ui.Point{{X: 0, Y: 0}, {X: 100, Y: 100}, {X: 233, Y: 17}, {X: 600, Y: 450}, {X: 599, Y: 1}}
	for _, pos := range positions {
		m := newTestManager(nil, nil)
		w := NewWindow(m, nil, Options{Caption: "w", Width: 200, Height: 150})
		m.Initialize(ui.Pt(800, 600))
		w.MoveTo(pos.X, pos.Y)
		w.SetVisible(true)

		var buf bytes.Buffer
		if err := w.Save(&buf); err != nil {
			t.Fatalf("Save: %v", err)
		}
		w.MoveTo(10, 10)
		w.SetVisible(false)
		if err := w.Restore(&buf); err != nil {
			t.Fatalf("Restore: %v", err)
		}
		if got := w.Location().Min(); got != pos || !w.Visible() {
			t.Fatalf("round trip of %v -> %v visible=%v", pos, got, w.Visible())
		}
	}
}

func TestRestoreClampsFractions(t *testing.T) {
	m := newTestManager(nil, nil)
	w := NewWindow(m, nil, Options{Caption: "w", Width: 200, Height: 150})
	m.Initialize(ui.Pt(800, 600))

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, struct {
		V    bool
		X, Y float32
	}{false, 7.5, -3})
	if err := w.Restore(&buf); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := w.Location().Min(); got != ui.Pt(600, 0) {
		t.Fatalf("location = %v, want {600 0}", got)
	}
}

func TestRestoreTruncated(t *testing.T) {
	m := newTestManager(nil, nil)
	w := NewWindow(m, nil, Options{Caption: "w", Width: 200, Height: 150})
	m.Initialize(ui.Pt(800, 600))
	if err := w.Restore(bytes.NewReader([]byte{1, 0})); err == nil {
		t.Fatalf("expected an error for a short record")
	}
}

func TestRestoreSkipsUnchangedLocation(t *testing.T) {
	store := newMemStore()
	m := newTestManager(nil, store)
	w := NewWindow(m, nil, Options{Caption: "w", Width: 200, Height: 150})
	m.Initialize(ui.Pt(800, 600))
	w.MoveTo(60, 90)

	var buf bytes.Buffer
	if err := w.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	sets := store.sets
	if err := w.Restore(&buf); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if store.sets != sets {
		t.Fatalf("unchanged restore persisted the position again")
	}
}

func TestPositionStorePercent(t *testing.T) {
	store := newMemStore()
	store.pos["w"] = [2]int{50, 100}
	m := newTestManager(nil, store)
	w := NewWindow(m, nil, Options{Caption: "w", Width: 200, Height: 150})
	m.Initialize(ui.Pt(800, 600))
	if got := w.Location().Min(); got != ui.Pt(300, 450) {
		t.Fatalf("location = %v, want {300 450}", got)
	}

	w.MoveTo(0, 225)
	if got := store.pos["w"]; got != [2]int{0, 50} {
		t.Fatalf("stored %v, want [0 50]", got)
	}
}

func TestShowPreparesImmediately(t *testing.T) {
	m := newTestManager(newFakeClock(), nil)
	p := newTestPopup(m, Options{Caption: "p", Width: 200, Height: 150})
	m.Initialize(ui.Pt(800, 600))
	p.SetVisible(true)
	if len(p.frames) != 1 || !p.frames[0] {
		t.Fatalf("frames = %v, want [true]", p.frames)
	}
	p.SetVisible(true)
	if len(p.frames) != 1 {
		t.Fatalf("showing a visible window prepared again")
	}
}

func TestChromeNineSlice(t *testing.T) {
	m := NewManager(ManagerOptions{Chrome: fakeTexture{64, 64}})
	w := NewWindow(m, nil, Options{Caption: "w", Width: 200, Height: 150})
	m.Initialize(ui.Pt(800, 600))
	w.MoveTo(10, 20)

	pieces := w.chromePieces()
	if len(pieces) != 9 {
		t.Fatalf("pieces = %d, want 9", len(pieces))
	}
	if pieces[0].dst != (ui.Rect{W: 32, H: 32}) || pieces[0].src != (ui.Rect{W: 16, H: 16}) {
		t.Fatalf("top-left = %+v", pieces[0])
	}
	if pieces[8].dst != (ui.Rect{X: 168, Y: 118, W: 32, H: 32}) {
		t.Fatalf("bottom-right = %+v", pieces[8])
	}
	w.SizeTo(300, 150)
	if w.chrome != nil {
		t.Fatalf("resize kept stale chrome")
	}
}
