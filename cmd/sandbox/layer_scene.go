package main

import (
	"log/slog"
	"math"
	"slices"

	"github.com/hubastard/railhud/engine/assets"
	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/core"
	"github.com/hubastard/railhud/engine/gfx/renderer2d"
	"github.com/hubastard/railhud/engine/profiler"
	"github.com/hubastard/railhud/engine/scene"
	"github.com/hubastard/railhud/engine/ui"
	"github.com/hubastard/railhud/engine/wm"
)

const (
	trackRadius = 240
	trainSpeed  = 60 // world units per second
	carLength   = 48
	carWidth    = 20
	sheetCell   = 32
)

// SceneLayer draws the layout and the train under the popup windows.
type SceneLayer struct {
	cam  *scene.Camera2D
	ctrl *scene.Controller2D
	r2d  *renderer2d.Renderer2D
	sim  *trainSim
	hud  *HUDLayer
	log  *slog.Logger

	loco, wagon renderer2d.SubTexture2D
}

func (l *SceneLayer) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewCamera2D(w, h)
	l.ctrl = scene.NewController2D(l.cam)

	tex, err := assets.LoadTexture(e.Renderer, "train.png")
	if err != nil {
		l.log.Debug("using built-in train sprites", "err", err)
		tex, err = e.Renderer.CreateTexture(core.TextureDesc{
			Width:     2 * sheetCell,
			Height:    sheetCell,
			Format:    core.TextureRGBA8,
			Pixels:    trainSheet(),
			MinFilter: "linear",
			MagFilter: "nearest",
			WrapU:     "clamp",
			WrapV:     "clamp",
		})
		if err != nil {
			panic(err)
		}
	}
	l.loco = renderer2d.FromGrid(tex, 0, 0, sheetCell, sheetCell)
	l.wagon = renderer2d.FromGrid(tex, 1, 0, sheetCell, sheetCell)
}

func (l *SceneLayer) OnDetach(e *core.Engine) {}

func (l *SceneLayer) OnUpdate(e *core.Engine, dt float64) {
	in := e.Input.Snapshot()
	typing := l.hud.compose.Composing()
	if typing {
		in.KeysDown = nil
	}
	l.ctrl.Update(in, float32(dt), !overWindow(l.hud.m, ui.Pt(in.MouseX, in.MouseY)))
	l.sim.Advance(dt)

	if l.sim.Quitting() || (!typing && slices.Contains(in.KeysPressed, core.KeyEscape)) {
		e.Window.RequestClose()
	}
}

func (l *SceneLayer) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("SceneLayer.OnRender")
	defer end()

	l.r2d.BeginScene(l.cam.VP())
	{
		const sleepers = 96
		for i := range sleepers {
			a := 2 * math.Pi * float64(i) / sleepers
			x, y := polar(a, trackRadius)
			l.r2d.DrawQuad(x, y, 4, 26, colors.Brown, float32(a))
		}
		for _, r := range [...]float32{trackRadius - 8, trackRadius + 8} {
			for i := range sleepers {
				a := 2 * math.Pi * (float64(i) + 0.5) / sleepers
				x, y := polar(a, float64(r))
				l.r2d.DrawQuad(x, y, 2*math.Pi*r/sleepers+1, 2, colors.LightGray, float32(a+math.Pi/2))
			}
		}

		head := l.sim.Elapsed() * trainSpeed / trackRadius
		for car := range 4 {
			a := head - float64(car)*(carLength+4)/trackRadius
			x, y := polar(a, trackRadius)
			sprite := l.wagon
			if car == 0 {
				sprite = l.loco
			}
			l.r2d.DrawSubTexQuad(x, y, carLength, carWidth, sprite, colors.White, float32(a+math.Pi/2))
		}
	}
	l.r2d.EndScene()
}

func (l *SceneLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventResize); ok {
		l.cam.SetViewportPixels(v.W, v.H)
	}
	return false
}

func polar(a, r float64) (float32, float32) {
	return float32(r * math.Cos(a)), float32(r * math.Sin(a))
}

// overWindow reports whether p is over a visible window that takes input.
func overWindow(m *wm.Manager, p ui.Point) bool {
	for _, w := range m.VisibleWindows() {
		if w.Interactive() && w.Location().Contains(p) {
			return true
		}
	}
	return false
}

// trainSheet paints a locomotive and a wagon side by side, each car facing
// +X within its cell.
func trainSheet() []byte {
	const w = 2 * sheetCell
	pix := make([]byte, w*sheetCell*4)
	paint := func(cell int, body, roof [3]byte) {
		for y := 4; y < sheetCell-4; y++ {
			for x := 1; x < sheetCell-1; x++ {
				c := body
				if y > 10 && y < sheetCell-10 {
					c = roof
				}
				i := (y*w + cell*sheetCell + x) * 4
				pix[i], pix[i+1], pix[i+2], pix[i+3] = c[0], c[1], c[2], 255
			}
		}
	}
	paint(0, [3]byte{170, 30, 30}, [3]byte{60, 60, 60})
	paint(1, [3]byte{30, 90, 160}, [3]byte{200, 200, 200})
	return pix
}
