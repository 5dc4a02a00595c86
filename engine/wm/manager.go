package wm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/hubastard/railhud/engine/core"
	"github.com/hubastard/railhud/engine/ui"
)

var ErrUnknownWindow = errors.New("wm: unknown window")

const (
	// FullUpdateInterval throttles expensive popup refreshes.
	FullUpdateInterval = 250 * time.Millisecond
	// RepeatInterval is the cadence of HandleUserInput while a button is held.
	RepeatInterval = 100 * time.Millisecond
)

// GlassSurface is implemented by surfaces that can composite a translucent
// backdrop behind each window.
type GlassSurface interface {
	ui.Surface
	BeginGlass(r ui.Rect)
	EndGlass()
}

type ManagerOptions struct {
	Theme *ui.Theme
	// Chrome is the nine-slice window background; a flat fill without it.
	Chrome core.Texture
	Store  PositionStore
	Glass  bool
	Logger *slog.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Manager owns every window, their stacking order and pointer routing.
type Manager struct {
	theme         *ui.Theme
	chromeTexture core.Texture
	store         PositionStore
	glass         bool
	log           *slog.Logger
	clock         func() time.Time

	windows []*Window
	zorder  []*Window
	screen  ui.Point

	mouseDown   ui.Point
	active      *Window
	lastRepeat  time.Time
	lastPrepare time.Time
}

func NewManager(opts ManagerOptions) *Manager {
	m := &Manager{
		theme:         opts.Theme,
		chromeTexture: opts.Chrome,
		store:         opts.Store,
		glass:         opts.Glass,
		log:           opts.Logger,
		clock:         opts.Clock,
	}
	if m.theme == nil {
		m.theme = &ui.Theme{}
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	return m
}

func (m *Manager) Theme() *ui.Theme            { return m.theme }
func (m *Manager) TextHeight() int             { return m.theme.TextHeight() }
func (m *Manager) ScreenSize() ui.Point        { return m.screen }
func (m *Manager) MouseDownPosition() ui.Point { return m.mouseDown }
func (m *Manager) ActiveWindow() *Window       { return m.active }
func (m *Manager) Windows() []*Window          { return m.windows }
func (m *Manager) Logger() *slog.Logger        { return m.log }
func (m *Manager) Now() time.Time              { return m.clock() }

// ZOrder lists windows back to front.
func (m *Manager) ZOrder() []*Window { return m.zorder }

// Add registers w above every window added before it.
func (m *Manager) Add(w *Window) {
	m.windows = append(m.windows, w)
	m.zorder = append(m.zorder, w)
}

// Initialize sizes the screen and lays out every window.
func (m *Manager) Initialize(screen ui.Point) {
	m.ScreenChanged(screen)
	m.updateTopMost()
	for _, w := range m.windows {
		w.Initialize()
	}
}

func (m *Manager) Find(name string) (*Window, error) {
	for _, w := range m.windows {
		if w.opts.Name == name {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWindow, name)
}

// Toggle flips the visibility of the named window.
func (m *Manager) Toggle(name string) error {
	w, err := m.Find(name)
	if err != nil {
		return err
	}
	w.ToggleVisible()
	return nil
}

func (m *Manager) VisibleWindows() []*Window {
	var out []*Window
	for _, w := range m.zorder {
		if w.visible {
			out = append(out, w)
		}
	}
	return out
}

func (m *Manager) HasVisibleWindows() bool {
	for _, w := range m.zorder {
		if w.visible {
			return true
		}
	}
	return false
}

// BringWindowToTop raises w to the top of its stacking group.
func (m *Manager) BringWindowToTop(w *Window) {
	order := make([]*Window, 0, len(m.zorder))
	for _, z := range m.zorder {
		if z != w {
			order = append(order, z)
		}
	}
	m.zorder = append(order, w)
	m.updateTopMost()
	m.logZOrder()
}

// updateTopMost moves top-most windows above the rest, keeping the relative
// order within each group.
func (m *Manager) updateTopMost() {
	order := make([]*Window, 0, len(m.zorder))
	for _, w := range m.zorder {
		if !w.TopMost() {
			order = append(order, w)
		}
	}
	for _, w := range m.zorder {
		if w.TopMost() {
			order = append(order, w)
		}
	}
	m.zorder = order
}

func (m *Manager) logZOrder() {
	if !m.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	var visible, all []string
	for _, w := range m.zorder {
		name := w.opts.Name
		if w.visible {
			visible = append(visible, name)
		}
		if !w.Interactive() {
			name += "[NI]"
		}
		if w.visible {
			name += "[V]"
		}
		all = append(all, name)
	}
	m.log.Debug("window z-order", "visible", strings.Join(visible, ", "), "all", strings.Join(all, ", "))
}

// windowAt is the top visible interactive window containing p.
func (m *Manager) windowAt(p ui.Point) *Window {
	for i := len(m.zorder) - 1; i >= 0; i-- {
		w := m.zorder[i]
		if w.visible && w.Interactive() && w.location.Contains(p) {
			return w
		}
	}
	return nil
}

// release ends the gesture held by w.
func (m *Manager) release(w *Window) {
	if m.active == w {
		m.active = nil
	}
}

// HandleUserInput routes one input tick. A press picks the window under the
// pointer, which then receives every event until the button is released.
// It reports whether a window took the input.
func (m *Manager) HandleUserInput(in core.InputState) bool {
	now := m.clock()
	pointer := ui.Point{X: in.MouseX, Y: in.MouseY}
	if in.LeftPressed {
		m.mouseDown = pointer
		m.lastRepeat = now
		m.active = m.windowAt(pointer)
		if m.active != nil && m.active != m.zorder[len(m.zorder)-1] {
			m.BringWindowToTop(m.active)
		}
	}

	handled := m.active != nil
	if in.WheelChanged() {
		if w := m.windowAt(pointer); w != nil {
			e := w.event(in)
			e.DownPosition = e.Position
			e.DownScreenPosition = pointer
			w.userInput(e)
			handled = true
		}
	}

	w := m.active
	if w == nil {
		return handled
	}
	if in.LeftPressed {
		w.mouseDown(in)
	}
	if in.LeftReleased {
		w.mouseUp(in)
	}
	if in.MouseMoved() {
		w.mouseMove(in)
	}
	if now.Sub(m.lastRepeat) >= RepeatInterval {
		m.lastRepeat = now
		repeat := in
		repeat.WheelDelta = 0
		w.userInput(w.event(repeat))
	}
	if in.LeftReleased {
		m.active = nil
	}
	return handled
}

// ScreenChanged keeps each window at the same relative place on a resized
// screen.
func (m *Manager) ScreenChanged(screen ui.Point) {
	old := m.screen
	m.screen = screen
	for _, w := range m.windows {
		loc := w.location
		if old.X-loc.W > 0 && old.Y-loc.H > 0 {
			w.MoveTo((screen.X-loc.W)*loc.X/(old.X-loc.W), (screen.Y-loc.H)*loc.Y/(old.Y-loc.H))
		} else {
			w.MoveTo(loc.X, loc.Y)
		}
		if sc, ok := w.impl.(ScreenChanger); ok {
			sc.ScreenChanged(screen)
		}
	}
}

// PrepareFrame refreshes visible windows, flagging a full update at most
// every FullUpdateInterval.
func (m *Manager) PrepareFrame(elapsed time.Duration) {
	now := m.clock()
	updateFull := false
	if m.lastPrepare.IsZero() || now.Sub(m.lastPrepare) >= FullUpdateInterval {
		updateFull = true
		m.lastPrepare = now
	}
	for _, w := range m.VisibleWindows() {
		w.prepareFrame(elapsed, updateFull)
	}
}

// Draw paints visible windows back to front.
func (m *Manager) Draw(s ui.Surface) {
	glass, useGlass := s.(GlassSurface)
	useGlass = useGlass && m.glass
	for _, w := range m.VisibleWindows() {
		if useGlass {
			glass.BeginGlass(w.location)
		}
		w.Draw(s)
		if useGlass {
			glass.EndGlass()
		}
	}
}

// TabAction runs the cycle action of the top visible window that has one.
func (m *Manager) TabAction() bool {
	for i := len(m.zorder) - 1; i >= 0; i-- {
		w := m.zorder[i]
		if !w.visible {
			continue
		}
		if t, ok := w.impl.(TabActioner); ok {
			t.TabAction()
			return true
		}
	}
	return false
}

// Save writes every window in registration order.
func (m *Manager) Save(out io.Writer) error {
	for _, w := range m.windows {
		if err := w.Save(out); err != nil {
			return err
		}
	}
	return nil
}

// Restore reads what Save wrote.
func (m *Manager) Restore(in io.Reader) error {
	for _, w := range m.windows {
		if err := w.Restore(in); err != nil {
			return err
		}
	}
	return nil
}
