package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/adventure/display"
	"github.com/milk9111/adventure/engine"
	"github.com/milk9111/adventure/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	debug bool

	engine   *engine.Engine
	renderer *display.Renderer
	input    *display.Input
	watcher  *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(cfg engine.Config, debug bool) (*Game, error) {
	renderer := display.NewRenderer(cfg.Assets, baseWidth, baseHeight)
	input := display.NewInput()

	eng := engine.New(cfg, renderer, input)
	if err := eng.InitializeWorld(); err != nil {
		return nil, err
	}

	g := &Game{
		debug:    debug,
		engine:   eng,
		renderer: renderer,
		input:    input,
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.reloadChangedPrefabs()

	g.input.Update()
	return g.engine.ProcessFrame()
}

func (g *Game) setPaused(p bool) {
	if g.paused == p {
		return
	}
	g.paused = p
	if !p {
		g.engine.Resync()
	}
}

func (g *Game) reloadChangedPrefabs() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("prefabs: watch: %v", err)
	default:
	}
	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	if err := g.engine.ReloadPrefabs(); err != nil {
		log.Printf("prefabs: reload %v: %v", changed, err)
		return
	}
	log.Printf("prefabs: reloaded %v", changed)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Begin(screen)
	if err := g.engine.RenderFrame(); err != nil {
		log.Printf("render: %v", err)
	}

	if g.debug {
		p := g.engine.Player()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Objects: %d    Player: (%d,%d) %s",
			g.renderer.Frames(), ebiten.ActualFPS(), g.engine.Registry().Len(), p.X, p.Y, p.Sheet.ActiveAnimation()))
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
