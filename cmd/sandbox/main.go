package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hubastard/railhud/engine/assets"
	"github.com/hubastard/railhud/engine/catalog"
	"github.com/hubastard/railhud/engine/colors"
	"github.com/hubastard/railhud/engine/core"
	glbackend "github.com/hubastard/railhud/engine/gfx/gl"
	"github.com/hubastard/railhud/engine/gfx/renderer2d"
	"github.com/hubastard/railhud/engine/platform"
	"github.com/hubastard/railhud/engine/profiler"
	"github.com/hubastard/railhud/engine/settings"
	"github.com/hubastard/railhud/engine/text"
)

type App struct {
	settings *settings.Settings
	cat      *catalog.Catalog
	log      *slog.Logger

	lastFrame time.Time
	stats     frameStats
	r2d       *renderer2d.Renderer2D
	fonts     *text.Registry
	sim       *trainSim
	hud       *HUDLayer
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(profiler.DefaultCapacity)

	vs, err := assets.LoadShader("renderer2d.vert")
	if err != nil {
		panic(err)
	}
	fs, err := assets.LoadShader("renderer2d.frag")
	if err != nil {
		panic(err)
	}

	a.r2d, err = renderer2d.New(e.Renderer, vs, fs, 10000)
	if err != nil {
		panic(err)
	}
	a.fonts = text.NewRegistry(e.Renderer, "")
	a.sim = newTrainSim(demoScript, a.settings.ActivityContinue)

	a.hud = &HUDLayer{
		r2d:      a.r2d,
		fonts:    a.fonts,
		settings: a.settings,
		cat:      a.cat,
		sim:      a.sim,
		stats:    &a.stats,
		log:      a.log,
	}
	if err := a.hud.newManager(e); err != nil {
		panic(err)
	}

	e.Layers.Push(e, &SceneLayer{r2d: a.r2d, sim: a.sim, hud: a.hud, log: a.log})
	e.Layers.Push(e, a.hud)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.stats.Tick++

	now := time.Now()
	if !a.lastFrame.IsZero() {
		a.stats.FrameMs = float32(now.Sub(a.lastFrame).Seconds() * 1000.0)
	}
	a.lastFrame = now
}
func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnEvent(e *core.Engine, ev core.Event)  {}

func (a *App) OnShutdown(e *core.Engine) {
	if err := a.hud.save(); err != nil {
		a.log.Error("window state not saved", "err", err)
	}
	if err := a.settings.Save(); err != nil {
		a.log.Error("settings not saved", "path", a.settings.Path(), "err", err)
	}
	a.fonts.Close()
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	path, err := settings.DefaultPath()
	if err != nil {
		log.Fatal(err)
	}
	s, err := settings.Load(path)
	if err != nil {
		log.Fatal(err)
	}

	var cat *catalog.Catalog
	if s.Catalog != "" {
		if cat, err = catalog.Load(s.Catalog); err != nil {
			logger.Warn("catalog not loaded, using built-in strings", "err", err)
		}
	}

	cfg := core.Config{
		Title:      "RailHUD",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: colors.DarkGray,
	}
	app := &App{settings: s, cat: cat, log: logger}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(app, cfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
