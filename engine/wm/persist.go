package wm

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Persister is implemented by popups that save state after the window's
// own record.
type Persister interface {
	SavePayload(w io.Writer) error
	RestorePayload(r io.Reader) error
}

// PositionStore remembers window positions between runs, as percentages of
// the free screen space on each axis.
type PositionStore interface {
	WindowPosition(name string) (x, y int, ok bool)
	SetWindowPosition(name string, x, y int)
}

func fraction(v, free int) float32 {
	if free <= 0 {
		return 0
	}
	return float32(v) / float32(free)
}

func clampFraction(f float32) float32 {
	if math.IsNaN(float64(f)) || f < 0 {
		return 0
	}
	return min(f, 1)
}

func unfraction(f float32, free int) int {
	return int(math.Round(float64(clampFraction(f)) * float64(max(0, free))))
}

// Save writes the visibility and the position as fractions of the free
// screen space, followed by any popup payload.
func (w *Window) Save(out io.Writer) error {
	screen := w.owner.screen
	rec := struct {
		Visible bool
		X, Y    float32
	}{
		Visible: w.visible,
		X:       fraction(w.location.X, screen.X-w.location.W),
		Y:       fraction(w.location.Y, screen.Y-w.location.H),
	}
	if err := binary.Write(out, binary.LittleEndian, rec); err != nil {
		return fmt.Errorf("save window %q: %w", w.opts.Name, err)
	}
	if p, ok := w.impl.(Persister); ok {
		if err := p.SavePayload(out); err != nil {
			return fmt.Errorf("save window %q payload: %w", w.opts.Name, err)
		}
	}
	return nil
}

// Restore reads what Save wrote. Out of range fractions are clamped so the
// window always lands on screen.
func (w *Window) Restore(in io.Reader) error {
	var rec struct {
		Visible bool
		X, Y    float32
	}
	if err := binary.Read(in, binary.LittleEndian, &rec); err != nil {
		return fmt.Errorf("restore window %q: %w", w.opts.Name, err)
	}
	screen := w.owner.screen
	x := unfraction(rec.X, screen.X-w.location.W)
	y := unfraction(rec.Y, screen.Y-w.location.H)
	if x != w.location.X || y != w.location.Y {
		w.location.X, w.location.Y = x, y
		w.locationChanged()
	}
	w.setVisible(rec.Visible)
	if p, ok := w.impl.(Persister); ok {
		if err := p.RestorePayload(in); err != nil {
			return fmt.Errorf("restore window %q payload: %w", w.opts.Name, err)
		}
	}
	return nil
}
