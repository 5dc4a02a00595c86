package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/hubastard/railhud/engine/catalog"
	"github.com/hubastard/railhud/engine/core"
	"github.com/hubastard/railhud/engine/gfx/renderer2d"
	"github.com/hubastard/railhud/engine/popups"
	"github.com/hubastard/railhud/engine/profiler"
	"github.com/hubastard/railhud/engine/scene"
	"github.com/hubastard/railhud/engine/settings"
	"github.com/hubastard/railhud/engine/text"
	"github.com/hubastard/railhud/engine/ui"
	"github.com/hubastard/railhud/engine/wm"
)

// messageDuration is how long chat and status lines stay in the log.
const messageDuration = 10 * time.Second

// HUDLayer owns the popup windows drawn over the scene.
type HUDLayer struct {
	r2d      *renderer2d.Renderer2D
	fonts    *text.Registry
	settings *settings.Settings
	cat      *catalog.Catalog
	sim      *trainSim
	stats    *frameStats
	log      *slog.Logger

	canvas   *ui.Canvas
	m        *wm.Manager
	messages *popups.MessagesWindow
	activity *popups.ActivityWindow
	compose  *popups.ComposeMessageWindow
	notice   *popups.NoticeWindow
	pause    *popups.PauseWindow
	stat     *StatsWindow

	width, height int
}

// newManager builds the window manager before the layers attach so the
// scene layer can route the wheel around windows.
func (l *HUDLayer) newManager(e *core.Engine) error {
	s := l.settings
	font, err := l.fonts.Get(s.Font.Family, float32(s.Font.Size), s.Font.Outline)
	if err != nil {
		return err
	}
	bold, err := l.fonts.Get(text.FamilyGoBold, float32(s.Font.Size), s.Font.Outline)
	if err != nil {
		return err
	}
	mono, err := l.fonts.Get(s.MonoFont.Family, float32(s.MonoFont.Size), s.MonoFont.Outline)
	if err != nil {
		return err
	}
	tex, err := popups.SharedTextures(e.Renderer)
	if err != nil {
		return err
	}

	l.canvas = ui.NewCanvas(l.r2d)
	l.m = wm.NewManager(wm.ManagerOptions{
		Theme: &ui.Theme{
			Font:      font,
			Bold:      bold,
			Mono:      mono,
			Scrollbar: tex.Scrollbar,
			Shadow:    tex.Shadow,
		},
		Chrome: tex.Chrome,
		Store:  s,
		Glass:  s.WindowGlass,
		Logger: l.log,
	})

	l.messages = popups.NewMessagesWindow(l.m, l.cat, nil)
	l.activity = popups.NewActivityWindow(l.m, l.cat, l.sim)
	l.compose = popups.NewComposeMessageWindow(l.m, l.cat, &crewMessenger{
		log:    l.log.With("component", "messenger"),
		online: map[string]bool{"dispatcher": true, "signalman": true, "yard": true},
		last:   "dispatcher",
		echo:   func(key, text string) { l.messages.AddMessage(key, text, messageDuration) },
	})
	l.notice = popups.NewNoticeWindow(l.m, tex.Notice)
	l.pause = popups.NewPauseWindow(l.m, tex.Pause)
	l.stat = NewStatsWindow(l.m, e, l.stats, l.fonts)
	return nil
}

func (l *HUDLayer) OnAttach(e *core.Engine) {
	l.width, l.height = e.Window.FramebufferSize()
	l.m.Initialize(ui.Pt(l.width, l.height))
	if err := l.restore(); err != nil {
		l.log.Warn("window state not restored", "file", l.settings.SaveFile, "err", err)
	}
	l.messages.AddMessage("welcome", l.cat.GetString("Press F5 for statistics, Enter to message other crews, P to pause."), messageDuration)
}

func (l *HUDLayer) OnDetach(e *core.Engine) {}

func (l *HUDLayer) OnUpdate(e *core.Engine, dt float64) {
	defer profiler.Start("HUDLayer.OnUpdate")()

	in := e.Input.Snapshot()
	if l.compose.Composing() {
		if slices.Contains(in.KeysPressed, core.KeyEscape) {
			l.compose.Cancel()
		} else {
			l.compose.HandleKeys(in)
		}
	} else {
		l.hotkeys(in)
	}
	l.m.HandleUserInput(in)
	l.activity.Poll()
	if paused := l.sim.Paused(); paused != l.pause.Paused() {
		l.pause.SetPaused(paused)
	}
	l.m.PrepareFrame(time.Duration(dt * float64(time.Second)))
}

func (l *HUDLayer) hotkeys(in core.InputState) {
	for _, k := range in.KeysPressed {
		switch k {
		case core.KeyF2:
			if err := l.save(); err != nil {
				l.log.Error("window state not saved", "file", l.settings.SaveFile, "err", err)
				continue
			}
			l.notice.Notify(l.cat.GetString("Window layout saved"))
		case core.KeyF5:
			l.stat.ToggleVisible()
		case core.KeyF6:
			l.messages.ToggleVisible()
		case core.KeyF9:
			l.openProfile()
		case core.KeyF10:
			l.activity.Reopen()
		case core.KeyTab:
			l.m.TabAction()
		case core.KeyEnter:
			l.compose.Begin()
		case core.KeyP:
			paused := !l.sim.Paused()
			l.sim.SetPaused(paused)
			l.messages.AddMessage("pause", l.cat.GetString(pausedText(paused)), messageDuration)
		}
	}
}

// openProfile hands the recorded scopes to speedscope. Builds without the
// profile tag record nothing and report that instead.
func (l *HUDLayer) openProfile() {
	if !profiler.Enabled {
		l.notice.Notify(l.cat.GetString("Profiling needs a build with -tags profile"))
		return
	}
	path, err := profiler.OpenGraph()
	if path == "" {
		l.log.Error("profile not written", "err", err)
		return
	}
	if err != nil {
		l.log.Warn("speedscope not started", "file", path, "err", err)
	}
	l.notice.Notify(l.cat.GetString("Profile written"))
	l.log.Info("profile written", "file", path)
}

func pausedText(paused bool) string {
	if paused {
		return "Simulation paused"
	}
	return "Simulation resumed"
}

func (l *HUDLayer) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("HUDLayer.OnRender")
	l.stats.Scene = l.r2d.Stats()
	l.r2d.BeginScene(scene.Screen(l.width, l.height))
	l.m.Draw(l.canvas)
	l.r2d.EndScene()
	end()
	l.stats.HUD = l.r2d.Stats()
}

func (l *HUDLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	if v, ok := ev.(core.EventResize); ok && v.W > 0 && v.H > 0 {
		l.width, l.height = v.W, v.H
		l.m.ScreenChanged(ui.Pt(v.W, v.H))
	}
	return false
}

func (l *HUDLayer) save() error {
	f, err := os.Create(l.settings.SaveFile)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := l.m.Save(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (l *HUDLayer) restore() error {
	f, err := os.Open(l.settings.SaveFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	if err := l.m.Restore(bufio.NewReader(f)); err != nil {
		return fmt.Errorf("restore %s: %w", f.Name(), err)
	}
	return nil
}
