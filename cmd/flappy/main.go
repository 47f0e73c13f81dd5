package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Carmen-Shannon/oxy-flap/assets"
	"github.com/Carmen-Shannon/oxy-flap/config"
	"github.com/Carmen-Shannon/oxy-flap/engine"
	"github.com/Carmen-Shannon/oxy-flap/engine/loader"
	"github.com/Carmen-Shannon/oxy-flap/engine/logger"
	"github.com/Carmen-Shannon/oxy-flap/engine/physics"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flap/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-flap/engine/scene"
	"github.com/Carmen-Shannon/oxy-flap/engine/window"
	"go.uber.org/zap"
)

// GLFW and the WebGPU surface must stay on the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			log.Fatal("unrecoverable error", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("flappy exited with an error", zap.Error(err))
	}
	_ = log.Sync()
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	// ── Assets ──────────────────────────────────────────────────────────
	ld := loader.NewLoader(
		loader.WithFS(assets.FS()),
		loader.WithLogger(log),
	)
	models := []struct {
		name, obj, mtl string
	}{
		{physics.PlayerMesh, assets.BirdOBJ, assets.BirdMTL},
		{physics.TerrainMesh, assets.TerrainOBJ, assets.TerrainMTL},
		{physics.ObstacleMesh, assets.TubesOBJ, assets.TubesMTL},
	}
	for _, m := range models {
		if _, err := ld.LoadMesh(m.name, m.obj, m.mtl); err != nil {
			return fmt.Errorf("failed to load %s: %w", m.name, err)
		}
	}
	tex, err := ld.LoadTexture(assets.TextureAtlas)
	if err != nil {
		return fmt.Errorf("failed to load texture: %w", err)
	}

	// ── Scene ───────────────────────────────────────────────────────────
	sc := scene.NewScene(
		scene.WithName("Flappy Bird"),
		scene.WithLogger(log),
	)
	for _, m := range models {
		if err := sc.AddMesh(ld.Mesh(m.name)); err != nil {
			return err
		}
	}
	if err := physics.Populate(sc); err != nil {
		return err
	}
	sim := physics.NewSimulator(sc,
		physics.WithTickRate(cfg.Physics.TickRate),
		physics.WithLogger(log),
	)

	// ── Window + Renderer ───────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithLogger(log),
	)
	r := renderer.NewRenderer(win,
		renderer.WithVSync(cfg.Render.VSync),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Render.MSAASamples)),
		renderer.WithShadowMapResolution(uint32(cfg.Render.ShadowMapResolution)),
		renderer.WithForceSoftwareRenderer(cfg.Render.ForceFallbackAdapter),
		renderer.WithMaterial(material.NewMaterial(
			material.WithName("atlas"),
			material.WithTexture(tex),
			material.WithMaxAnisotropy(16),
		)),
		renderer.WithLogger(log),
	)

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(sc),
		engine.WithRenderer(r),
		engine.WithSimulator(sim),
		engine.WithMaxFPS(cfg.Render.FrameLimit()),
		engine.WithProfiling(cfg.Profiling),
		engine.WithLogger(log),
	)

	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Println("║  Flappy Bird                                         ║")
	fmt.Println("╠══════════════════════════════════════════════════════╣")
	fmt.Println("║  Jump: Space / Up / Left click      Quit: Escape     ║")
	fmt.Println("╚══════════════════════════════════════════════════════╝")

	return eng.Run(ctx)
}
