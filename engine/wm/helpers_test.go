package wm

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/core"
	"github.com/hubastard/railhud/engine/ui"
)

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock               { return &fakeClock{t: time.Unix(1000, 0)} }
func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type memStore struct {
	pos  map[string][2]int
	sets int
}

func newMemStore() *memStore { return &memStore{pos: map[string][2]int{}} }

func (s *memStore) WindowPosition(name string) (int, int, bool) {
	p, ok := s.pos[name]
	return p[0], p[1], ok
}

func (s *memStore) SetWindowPosition(name string, x, y int) {
	s.pos[name] = [2]int{x, y}
	s.sets++
}

func newTestManager(clock *fakeClock, store PositionStore) *Manager {
	opts := ManagerOptions{Store: store}
	if clock != nil {
		opts.Clock = clock.now
	}
	return NewManager(opts)
}

// testPopup is a captioned window with one clickable label.
type testPopup struct {
	*Window
	label   *ui.Label
	clicks  int
	frames  []bool
	payload string
}

func newTestPopup(m *Manager, opts Options) *testPopup {
	p := &testPopup{}
	p.Window = NewWindow(m, p, opts)
	return p
}

func (p *testPopup) Layout(parent *ui.Layout) *ui.Layout {
	vbox := p.Window.Layout(parent)
	p.label = ui.NewLabel(0, 0, vbox.RemainingWidth(), 16, "hit", ui.AlignLeft)
	p.label.OnClick(func(ui.Control, ui.Point) { p.clicks++ })
	vbox.Add(p.label)
	return vbox
}

func (p *testPopup) PrepareFrame(_ time.Duration, full bool) { p.frames = append(p.frames, full) }

func (p *testPopup) SavePayload(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(p.payload))); err != nil {
		return err
	}
	_, err := io.WriteString(w, p.payload)
	return err
}

func (p *testPopup) RestorePayload(r io.Reader) error {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	p.payload = string(buf)
	return nil
}

// scrollPopup holds a tall vertical scrollbox.
type scrollPopup struct {
	*Window
	box *ui.Scrollbox
}

func (p *scrollPopup) Layout(parent *ui.Layout) *ui.Layout {
	vbox := p.Window.Layout(parent)
	p.box = vbox.AddLayoutScrollboxVertical(vbox.RemainingWidth())
	p.box.Client.AddSpace(10, 1000)
	return vbox
}

func pressAt(x, y int) core.InputState {
	return core.InputState{MouseX: x, MouseY: y, LeftDown: true, LeftPressed: true}
}

func holdAt(x, y int) core.InputState {
	return core.InputState{MouseX: x, MouseY: y, LeftDown: true}
}

func dragTo(x, y int) core.InputState {
	return core.InputState{MouseX: x, MouseY: y, LeftDown: true, MouseDeltaX: 1}
}

func releaseAt(x, y int) core.InputState {
	return core.InputState{MouseX: x, MouseY: y, LeftReleased: true}
}

func names(ws []*Window) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Name()
	}
	return out
}

// recorder is a Surface that logs what was drawn.
type recorder struct {
	ops []string
}

func (r *recorder) FillRect(rc ui.Rect, _ colors.Color) { r.ops = append(r.ops, fmt.Sprintf("fill %v", rc)) }
func (r *recorder) DrawImage(_ core.Texture, dst, src ui.Rect, _ colors.Color) {
	r.ops = append(r.ops, fmt.Sprintf("image %v %v", dst, src))
}
func (r *recorder) DrawText(_ ui.Font, rc ui.Rect, s string, _ ui.Align, _ colors.Color) {
	r.ops = append(r.ops, fmt.Sprintf("text %q", s))
}
func (r *recorder) PushClip(ui.Rect) { r.ops = append(r.ops, "push") }
func (r *recorder) PopClip()         { r.ops = append(r.ops, "pop") }

type glassRecorder struct {
	recorder
}

func (g *glassRecorder) BeginGlass(r ui.Rect) { g.ops = append(g.ops, fmt.Sprintf("glass %v", r)) }
func (g *glassRecorder) EndGlass()            { g.ops = append(g.ops, "end glass") }

type fixedFont struct{ w, h int }

func (f fixedFont) Height() int                { return f.h }
func (f fixedFont) MeasureString(s string) int { return len(s) * f.w }

type fakeTexture struct{ w, h int }

func (t fakeTexture) Size() (int, int) { return t.w, t.h }
