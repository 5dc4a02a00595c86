package main

import (
	"fmt"
	"time"

	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/core"
	"github.com/hubastard/railhud/engine/gfx/renderer2d"
	"github.com/hubastard/railhud/engine/profiler"
	"github.com/hubastard/railhud/engine/text"
	"github.com/hubastard/railhud/engine/ui"
	"github.com/hubastard/railhud/engine/wm"
)

// frameStats is filled by the layers as they render.
type frameStats struct {
	Tick    int
	FrameMs float32
	Scene   renderer2d.Statistics
	HUD     renderer2d.Statistics
}

type statsLine struct {
	heading bool
	text    func() string
}

// StatsWindow shows frame, renderer and memory figures.
type StatsWindow struct {
	*wm.Window
	eng   *core.Engine
	stats *frameStats
	fonts *text.Registry

	lines  []statsLine
	labels []*ui.LabelMono
	mem    profiler.Memory
}

func NewStatsWindow(m *wm.Manager, e *core.Engine, stats *frameStats, fonts *text.Registry) *StatsWindow {
	w := &StatsWindow{eng: e, stats: stats, fonts: fonts}
	w.lines = []statsLine{
		{heading: true, text: func() string { return fmt.Sprintf("Frame %d", w.stats.Tick) }},
		{text: func() string {
			return fmt.Sprintf("  %6.2f ms (%.0f FPS)", w.stats.FrameMs, 1000/max(w.stats.FrameMs, 0.001))
		}},
		{heading: true, text: func() string { return "2D renderer   scene   hud" }},
		{text: func() string { return fmt.Sprintf("  Draw calls %7d %5d", w.stats.Scene.DrawCalls, w.stats.HUD.DrawCalls) }},
		{text: func() string { return fmt.Sprintf("  Quads      %7d %5d", w.stats.Scene.QuadCount, w.stats.HUD.QuadCount) }},
		{text: func() string {
			return fmt.Sprintf("  Vertices   %7d %5d", w.stats.Scene.TotalVertexCount(), w.stats.HUD.TotalVertexCount())
		}},
		{text: func() string { return fmt.Sprintf("  Textures   %7d %5d", w.stats.Scene.TextureCount, w.stats.HUD.TextureCount) }},
		{heading: true, text: func() string { return "Memory" }},
		{text: func() string { return fmt.Sprintf("  Usage  %.3f MB", float64(w.mem.Alloc)/(1<<20)) }},
		{text: func() string { return fmt.Sprintf("  Allocs %d", w.mem.Mallocs) }},
		{text: func() string { return fmt.Sprintf("  GC     %d", w.mem.NumGC) }},
		{text: func() string { return fmt.Sprintf("  Goroutines %d", profiler.NumGoroutine()) }},
		{text: func() string { return fmt.Sprintf("  Fonts      %d", w.fonts.Len()) }},
		{heading: true, text: func() string { return fmt.Sprintf("CPU x%d", profiler.NumCPU()) }},
		{heading: true, text: func() string { return "GPU" }},
		{text: func() string { return "  " + w.eng.Renderer.GPUVendor() }},
		{text: func() string { return "  " + w.eng.Renderer.GPURenderer() }},
		{text: func() string { return "  " + w.eng.Renderer.GPUVersion() }},
	}
	th := m.TextHeight()
	w.Window = wm.NewWindow(m, w, wm.Options{
		Caption: "Statistics",
		Width:   wm.DecorationSize.X + th*22,
		Height:  wm.DecorationSize.Y + th*len(w.lines),
	})
	return w
}

func (w *StatsWindow) Layout(parent *ui.Layout) *ui.Layout {
	vbox := parent.AddLayoutVertical()
	th := vbox.TextHeight()
	w.labels = w.labels[:0]
	for _, line := range w.lines {
		l := ui.NewLabelMono(0, 0, vbox.RemainingWidth(), th, "", ui.AlignLeft)
		if line.heading {
			l.Color = colors.Yellow
		}
		vbox.Add(l)
		w.labels = append(w.labels, l)
	}
	w.refresh()
	return vbox
}

func (w *StatsWindow) PrepareFrame(_ time.Duration, updateFull bool) {
	if updateFull {
		w.refresh()
	}
}

func (w *StatsWindow) refresh() {
	w.mem = profiler.ReadMemory()
	for i, l := range w.labels {
		l.Text = w.lines[i].text()
	}
}
