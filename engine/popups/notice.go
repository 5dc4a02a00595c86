package popups

import (
	"time"

	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/core"
	"github.com/hubastard/railhud/engine/ui"
	"github.com/hubastard/railhud/engine/wm"
)

const (
	// NoticeHold is how long a notice stays fully opaque.
	NoticeHold = 2 * time.Second
	// NoticeFade is how long it then takes to disappear.
	NoticeFade = 500 * time.Millisecond
)

// fade is the opacity of something shown at start: opaque for hold, then
// fading out linearly over fade.
func fade(now, start time.Time, hold, fade time.Duration) float32 {
	age := now.Sub(start)
	if age <= hold {
		return 1
	}
	return max(0, 1-float32(age-hold)/float32(fade))
}

// centered places w in the middle of the screen.
func centered(w *wm.Window) {
	screen := w.Owner().ScreenSize()
	loc := w.Location()
	w.MoveTo((screen.X-loc.W)/2, (screen.Y-loc.H)/2)
}

// NoticeWindow flashes a short line of text in the middle of the screen.
type NoticeWindow struct {
	*wm.Window
	texture core.Texture

	text  string
	shown time.Time
	alpha float32
	image *ui.Image
	label *ui.Label
}

func NewNoticeWindow(m *wm.Manager, background core.Texture) *NoticeWindow {
	w := &NoticeWindow{texture: background, alpha: 1}
	th := m.TextHeight()
	w.Window = wm.NewWindow(m, w, wm.Options{
		Name:           "Notice",
		Width:          th * 10,
		Height:         th * 3,
		TopMost:        true,
		NonInteractive: true,
		Frameless:      true,
	})
	return w
}

func (w *NoticeWindow) Text() string { return w.text }

// Notify shows text, sized to fit, restarting the fade.
func (w *NoticeWindow) Notify(text string) {
	w.text = text
	w.shown = w.Owner().Now()
	w.alpha = 1
	th := w.Owner().TextHeight()
	width := th * 10
	if f := w.Owner().Theme().TextFont(); f != nil {
		width = max(width, f.MeasureString(text)+2*th)
	}
	w.SizeTo(width, w.Location().H)
	centered(w.Window)
	if w.label != nil {
		w.label.Text = text
	}
	w.SetVisible(true)
}

func (w *NoticeWindow) Layout(parent *ui.Layout) *ui.Layout {
	th := parent.TextHeight()
	w.image = ui.NewImage(0, 0, parent.RemainingWidth(), parent.RemainingHeight())
	w.image.Texture = w.texture
	parent.Add(w.image)
	pad := max(0, (parent.Position.H-th)/2)
	inner := parent.AddLayoutOffset(0, pad, 0, pad)
	w.label = ui.NewLabel(0, 0, inner.RemainingWidth(), th, w.text, ui.AlignCenter)
	inner.Add(w.label)
	w.tint()
	return inner
}

func (w *NoticeWindow) tint() {
	if w.image == nil {
		return
	}
	w.image.Tint = colors.White.Fade(w.alpha)
	if w.texture == nil {
		w.image.Tint = colors.Black.WithAlpha(0.5).Fade(w.alpha)
	}
	w.label.Color = colors.White.Fade(w.alpha)
}

func (w *NoticeWindow) PrepareFrame(time.Duration, bool) {
	w.alpha = fade(w.Owner().Now(), w.shown, NoticeHold, NoticeFade)
	w.tint()
	if w.alpha <= 0 {
		w.SetVisible(false)
	}
}

func (w *NoticeWindow) ScreenChanged(ui.Point) { centered(w.Window) }

const (
	PauseHold = time.Second
	PauseFade = 500 * time.Millisecond
)

// PauseWindow flashes a play or pause glyph when the simulation is resumed
// or paused.
type PauseWindow struct {
	*wm.Window
	texture core.Texture

	paused bool
	shown  time.Time
	alpha  float32
	image  *ui.Image
}

// NewPauseWindow takes the two-glyph texture laid out as Textures.Pause.
func NewPauseWindow(m *wm.Manager, glyphs core.Texture) *PauseWindow {
	w := &PauseWindow{texture: glyphs, alpha: 1}
	size := m.TextHeight() * 4
	w.Window = wm.NewWindow(m, w, wm.Options{
		Name:           "Pause",
		Width:          size,
		Height:         size + wm.BaseFontSize - m.TextHeight(),
		TopMost:        true,
		NonInteractive: true,
		Frameless:      true,
	})
	return w
}

func (w *PauseWindow) Paused() bool { return w.paused }

// SetPaused shows the glyph for the new state.
func (w *PauseWindow) SetPaused(paused bool) {
	w.paused = paused
	w.shown = w.Owner().Now()
	w.alpha = 1
	w.update()
	centered(w.Window)
	w.SetVisible(true)
}

func (w *PauseWindow) Layout(parent *ui.Layout) *ui.Layout {
	w.image = ui.NewImage(0, 0, parent.RemainingWidth(), parent.RemainingHeight())
	w.image.Texture = w.texture
	parent.Add(w.image)
	w.update()
	return parent
}

func (w *PauseWindow) update() {
	if w.image == nil {
		return
	}
	w.image.Source = PlaySource
	if w.paused {
		w.image.Source = PauseSource
	}
	w.image.Tint = colors.White.Fade(w.alpha)
}

func (w *PauseWindow) PrepareFrame(time.Duration, bool) {
	w.alpha = fade(w.Owner().Now(), w.shown, PauseHold, PauseFade)
	w.update()
	if w.alpha <= 0 {
		w.SetVisible(false)
	}
}

func (w *PauseWindow) ScreenChanged(ui.Point) { centered(w.Window) }
