package popups

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/core"
	"github.com/hubastard/railhud/engine/ui"
	"github.com/hubastard/railhud/engine/wm"
)

var testScreen = ui.Point{X: 1000, Y: 800}

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock               { return &fakeClock{t: time.Unix(5000, 0)} }
func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixedFont struct{ w, h int }

func (f fixedFont) Height() int                { return f.h }
func (f fixedFont) MeasureString(s string) int { return len(s) * f.w }

type fakeTexture struct{ w, h int }

func (t fakeTexture) Size() (int, int) { return t.w, t.h }

// fakeFactory records texture uploads.
type fakeFactory struct {
	descs []core.TextureDesc
	fail  string
}

func (f *fakeFactory) CreateTexture(d core.TextureDesc) (core.Texture, error) {
	if f.fail != "" && len(f.descs) == 1 {
		return nil, errors.New(f.fail)
	}
	f.descs = append(f.descs, d)
	return fakeTexture{d.Width, d.Height}, nil
}

type testEnv struct {
	clock *fakeClock
	m     *wm.Manager
	logs  *bytes.Buffer
}

func newTestEnv() *testEnv {
	env := &testEnv{clock: newFakeClock(), logs: &bytes.Buffer{}}
	env.m = wm.NewManager(wm.ManagerOptions{
		Theme:  &ui.Theme{Font: fixedFont{w: 8, h: 16}},
		Logger: slog.New(slog.NewTextHandler(env.logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Clock:  env.clock.now,
	})
	return env
}

func (env *testEnv) start() { env.m.Initialize(testScreen) }

// click presses and releases over the centre of c inside w.
func (env *testEnv) click(w *wm.Window, c ui.Control) {
	p := w.Location().Min().Add(c.Node().Position.Min()).Add(ui.Pt(2, 2))
	env.m.HandleUserInput(core.InputState{MouseX: p.X, MouseY: p.Y, LeftDown: true, LeftPressed: true})
	env.m.HandleUserInput(core.InputState{MouseX: p.X, MouseY: p.Y, LeftReleased: true})
}

// frame advances the clock past the full update interval and prepares.
func (env *testEnv) frame(d time.Duration) {
	env.clock.advance(d)
	env.m.PrepareFrame(d)
}

type fakeActivity struct {
	event      *ActivityEvent
	complete   bool
	successful bool
	paused     bool
	quit       bool
}

func (a *fakeActivity) TriggeredEvent() *ActivityEvent { return a.event }
func (a *fakeActivity) ClearTriggeredEvent()           { a.event = nil }
func (a *fakeActivity) Complete() bool                 { return a.complete }
func (a *fakeActivity) Successful() bool               { return a.successful }
func (a *fakeActivity) Paused() bool                   { return a.paused }
func (a *fakeActivity) SetPaused(p bool)               { a.paused = p }
func (a *fakeActivity) Quit()                          { a.quit = true }

type sent struct {
	to   []string
	body string
}

type fakeMessenger struct {
	last   string
	online map[string]bool
	sent   []sent
	err    error
}

func (f *fakeMessenger) LastSender() string        { return f.last }
func (f *fakeMessenger) IsOnline(name string) bool { return f.online[name] }
func (f *fakeMessenger) Send(to []string, body string) error {
	f.sent = append(f.sent, sent{to: to, body: body})
	return f.err
}

// recorder is a Surface that logs what was drawn.
type recorder struct {
	ops []string
}

func (r *recorder) FillRect(rc ui.Rect, _ colors.Color) { r.ops = append(r.ops, fmt.Sprintf("fill %v", rc)) }
func (r *recorder) DrawImage(_ core.Texture, dst, src ui.Rect, _ colors.Color) {
	r.ops = append(r.ops, fmt.Sprintf("image %v %v", dst, src))
}
func (r *recorder) DrawText(_ ui.Font, _ ui.Rect, s string, _ ui.Align, _ colors.Color) {
	r.ops = append(r.ops, fmt.Sprintf("text %q", s))
}
func (r *recorder) PushClip(ui.Rect) {}
func (r *recorder) PopClip()         {}

func keys(ks ...core.Key) core.InputState { return core.InputState{KeysPressed: ks} }
