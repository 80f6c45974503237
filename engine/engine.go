package engine

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/milk9111/adventure/assets"
	"github.com/milk9111/adventure/common"
	"github.com/milk9111/adventure/ecs"
	"github.com/milk9111/adventure/ecs/entity"
	"github.com/milk9111/adventure/ecs/system"
	"github.com/milk9111/adventure/levels"
	"github.com/milk9111/adventure/prefabs"
	"github.com/milk9111/adventure/render"
)

var (
	ErrAlreadyRunning = errors.New("engine: world already initialized")
	ErrNotRunning     = errors.New("engine: world not initialized")
)

type State uint8

const (
	StateUninitialized State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "uninitialized"
}

// Input is the control surface sampled once per tick.
type Input interface {
	IsUpPressed() bool
	IsDownPressed() bool
	IsLeftPressed() bool
	IsRightPressed() bool
	// OnClick subscribes to pointer clicks in screen coordinates.
	OnClick(func(screenX, screenY int))
}

// Config holds everything the engine reads while building the world.
type Config struct {
	// Assets is the root the level, tileset and image paths are relative to.
	Assets    fs.FS
	LevelPath string
	Prefabs   *prefabs.Loader
	Clock     common.Clock
	// Seed makes random spawns reproducible. Zero picks a random seed.
	Seed   uint64
	Logger *log.Logger
}

// Engine owns the world state and runs the update and render phases of
// each tick on the caller's goroutine.
type Engine struct {
	cfg      Config
	renderer render.Renderer
	input    Input
	clock    common.Clock
	logger   *log.Logger

	state    State
	cache    *assets.Cache
	level    *levels.Level
	registry *ecs.Registry
	spawner  *system.Spawner

	player    *ecs.Actor
	companion *ecs.Actor

	playerSpec    *prefabs.ActorSpec
	companionSpec *prefabs.ActorSpec
	bombSpec      *prefabs.BombSpec

	lastUpdate time.Time
	events     ecs.EventQueue
	lastEvents []ecs.Event
}

// New creates an uninitialized engine and subscribes it to input clicks.
func New(cfg Config, r render.Renderer, in Input) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = common.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Prefabs == nil {
		cfg.Prefabs = prefabs.NewLoader("")
	}
	e := &Engine{
		cfg:      cfg,
		renderer: r,
		input:    in,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		registry: ecs.NewRegistry(),
	}
	if in != nil {
		in.OnClick(e.HandleClick)
	}
	return e
}

func (e *Engine) State() State { return e.state }

func (e *Engine) Level() *levels.Level { return e.level }

func (e *Engine) Registry() *ecs.Registry { return e.registry }

func (e *Engine) Player() *ecs.Actor { return e.player }

func (e *Engine) Companion() *ecs.Actor { return e.companion }

// InitializeWorld loads the level and prefabs, creates the player and the
// companion and sets the renderer's world bounds. It succeeds at most once.
func (e *Engine) InitializeWorld() error {
	if e.state == StateRunning {
		return ErrAlreadyRunning
	}
	if e.renderer == nil {
		return fmt.Errorf("engine: initialize: no renderer")
	}

	cache := assets.NewCache(e.cfg.Assets, e.renderer)
	level, err := cache.LoadLevel(e.cfg.LevelPath)
	if err != nil {
		return fmt.Errorf("engine: initialize: %w", err)
	}
	for _, id := range level.DuplicateTileIDs() {
		e.logger.Printf("engine: tile id %d defined by more than one tileset, first definition used", id)
	}

	playerSpec, companionSpec, bombSpec, err := e.loadPrefabs()
	if err != nil {
		return fmt.Errorf("engine: initialize: %w", err)
	}

	now := e.clock.Now()
	player, err := entity.NewPlayer(playerSpec, cache, now)
	if err != nil {
		return fmt.Errorf("engine: initialize: %w", err)
	}
	companion, err := entity.NewCompanion(companionSpec, cache, now)
	if err != nil {
		return fmt.Errorf("engine: initialize: %w", err)
	}
	// Registers the bomb image so clicks never load textures mid-game.
	if _, err := entity.BuildSheet(bombSpec.Sheet, cache); err != nil {
		return fmt.Errorf("engine: initialize: bomb: %w", err)
	}

	e.cache = cache
	e.level = level
	e.playerSpec, e.companionSpec, e.bombSpec = playerSpec, companionSpec, bombSpec
	e.player = player
	e.companion = companion
	e.registry.Add(player)
	e.registry.Add(companion)

	seed := e.cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	e.spawner = system.NewSpawner(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), now)
	e.lastUpdate = now

	e.renderer.SetWorldBounds(level.PixelBounds())
	e.state = StateRunning
	return nil
}

func (e *Engine) loadPrefabs() (*prefabs.ActorSpec, *prefabs.ActorSpec, *prefabs.BombSpec, error) {
	playerSpec, err := e.cfg.Prefabs.LoadActorSpec(prefabs.PlayerFile)
	if err != nil {
		return nil, nil, nil, err
	}
	companionSpec, err := e.cfg.Prefabs.LoadActorSpec(prefabs.CompanionFile)
	if err != nil {
		return nil, nil, nil, err
	}
	bombSpec, err := e.cfg.Prefabs.LoadBombSpec(prefabs.BombFile)
	if err != nil {
		return nil, nil, nil, err
	}
	return playerSpec, companionSpec, bombSpec, nil
}

// ProcessFrame runs one update tick.
func (e *Engine) ProcessFrame() error {
	if e.state != StateRunning {
		return ErrNotRunning
	}

	now := e.clock.Now()
	elapsed := max(now.Sub(e.lastUpdate), 0)
	e.lastUpdate = now

	in := system.Intent{}
	if e.input != nil {
		in = system.Intent{
			Up:    e.input.IsUpPressed(),
			Down:  e.input.IsDownPressed(),
			Left:  e.input.IsLeftPressed(),
			Right: e.input.IsRightPressed(),
		}
	}

	bounds := e.level.PixelBounds()
	for _, actor := range []*ecs.Actor{e.player, e.companion} {
		system.Move(actor, in, bounds, elapsed)
		e.events.Diagnostic(actor.ID(), system.Animate(actor, in, now))
	}

	system.RemoveExpired(e.registry, now, &e.events)
	system.CheckCollisions(e.registry, e.player, e.bombSpec.ExplodeAnimation, now, &e.events)

	if e.spawner.Due(now) {
		p := e.spawner.Position(e.level)
		if err := e.addBomb(p.X, p.Y, now); err != nil {
			e.events.Diagnostic(0, err)
		}
	}

	e.lastEvents = e.events.Drain()
	for _, evt := range e.lastEvents {
		if evt.Kind == ecs.EventDiagnostic {
			e.logger.Printf("engine: object %s: %v", evt.Object, evt.Err)
		}
	}
	return nil
}

// Events returns the events of the last completed tick, including bombs
// added by clicks since the tick before it.
func (e *Engine) Events() []ecs.Event {
	return e.lastEvents
}

// Resync resumes after a pause. Time since the last tick is not replayed:
// the frame and spawn timers restart at now, and temporary lifetimes and
// animations are shifted forward by the gap.
func (e *Engine) Resync() {
	if e.state != StateRunning {
		return
	}
	now := e.clock.Now()
	gap := now.Sub(e.lastUpdate)
	if gap > 0 {
		for r := range e.registry.Renderables() {
			r.Sheet.Shift(gap)
		}
		for t := range e.registry.Temporaries() {
			t.CreatedAt = t.CreatedAt.Add(gap)
		}
	}
	e.lastUpdate = now
	e.spawner.Reset(now)
}

// HandleClick adds a bomb at the world position under a screen point.
func (e *Engine) HandleClick(screenX, screenY int) {
	if e.state != StateRunning {
		e.logger.Printf("engine: click at (%d,%d) ignored: %v", screenX, screenY, ErrNotRunning)
		return
	}
	p := e.renderer.TranslateFromScreenToWorldCoordinates(screenX, screenY)
	if err := e.addBomb(p.X, p.Y, e.clock.Now()); err != nil {
		e.logger.Printf("engine: click at (%d,%d): %v", screenX, screenY, err)
	}
}

func (e *Engine) addBomb(x, y int, now time.Time) error {
	bomb, err := entity.NewBomb(e.bombSpec, e.cache, x, y, now)
	if err != nil {
		return err
	}
	id := e.registry.Add(bomb)
	e.events.Push(ecs.Event{Kind: ecs.EventSpawned, Object: id})
	return nil
}

// ReloadPrefabs re-reads every prefab. Every sheet is built before any is
// installed, so on failure the previous specs and sheets stay in use.
// Actors keep their positions.
func (e *Engine) ReloadPrefabs() error {
	if e.state != StateRunning {
		return ErrNotRunning
	}
	playerSpec, companionSpec, bombSpec, err := e.loadPrefabs()
	if err != nil {
		return fmt.Errorf("engine: reload prefabs: %w", err)
	}
	now := e.clock.Now()
	if _, err := entity.BuildSheet(bombSpec.Sheet, e.cache); err != nil {
		return fmt.Errorf("engine: reload prefabs: bomb: %w", err)
	}
	playerSwap, err := entity.PrepareSheet(e.player, playerSpec, e.cache, now)
	if err != nil {
		return fmt.Errorf("engine: reload prefabs: %w", err)
	}
	companionSwap, err := entity.PrepareSheet(e.companion, companionSpec, e.cache, now)
	if err != nil {
		return fmt.Errorf("engine: reload prefabs: %w", err)
	}

	playerSwap.Apply()
	companionSwap.Apply()
	e.playerSpec, e.companionSpec, e.bombSpec = playerSpec, companionSpec, bombSpec
	return nil
}

// RenderFrame draws the terrain and every object, camera centered on the
// player.
func (e *Engine) RenderFrame() error {
	if e.state != StateRunning {
		return ErrNotRunning
	}
	r := e.renderer
	r.SetDrawColor(0, 0, 0, 255)
	r.ClearScreen()
	r.CameraLookAt(e.player.X, e.player.Y)

	e.renderTerrain()
	e.renderObjects(e.clock.Now())

	r.PresentFrame()
	return nil
}

func (e *Engine) renderTerrain() {
	lvl := e.level
	for layer := range lvl.Layers {
		for i := 0; i < lvl.Width; i++ {
			for j := 0; j < lvl.Height; j++ {
				tile, ok := lvl.TileAt(layer, i, j)
				if !ok {
					continue
				}
				src := common.Rect{Width: tile.ImageWidth, Height: tile.ImageHeight}
				dst := common.Rect{
					X:      i * tile.ImageWidth,
					Y:      j * tile.ImageHeight,
					Width:  tile.ImageWidth,
					Height: tile.ImageHeight,
				}
				e.renderer.RenderTexture(tile.Texture, src, dst, common.FlipNone)
			}
		}
	}
}

type drawItem struct {
	layer int
	id    ecs.ID
	r     *ecs.Renderable
}

func (e *Engine) renderObjects(now time.Time) {
	items := make([]drawItem, 0, e.registry.Len())
	for r := range e.registry.Renderables() {
		obj, ok := e.registry.Get(r.ID())
		if !ok {
			continue
		}
		items = append(items, drawItem{layer: drawLayer(obj.Kind()), id: r.ID(), r: r})
	}
	slices.SortFunc(items, func(a, b drawItem) int {
		if c := cmp.Compare(a.layer, b.layer); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	for _, it := range items {
		it.r.Sheet.Render(e.renderer, it.r.X, it.r.Y, now)
	}
}

func drawLayer(k ecs.Kind) int {
	switch k {
	case ecs.KindPlayer:
		return 1
	case ecs.KindCompanion:
		return 2
	default:
		return 0
	}
}
