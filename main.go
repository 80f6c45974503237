package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/adventure/engine"
	"github.com/milk9111/adventure/prefabs"
)

func main() {
	assetsDir := flag.String("assets", "assets", "directory holding levels, tilesets and images")
	levelPath := flag.String("level", "terrain.tmj", "level file, relative to the assets directory")
	prefabsDir := flag.String("prefabs", "prefabs", "directory with prefab overrides (embedded defaults are used otherwise)")
	seed := flag.Uint64("seed", 0, "random spawn seed (0 picks one)")
	watch := flag.Bool("watch", false, "reload prefabs when their files change")
	debug := flag.Bool("debug", false, "enable debug overlay")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("adventure")

	cfg := engine.Config{
		Assets:    os.DirFS(*assetsDir),
		LevelPath: *levelPath,
		Prefabs:   prefabs.NewLoader(*prefabsDir),
		Seed:      *seed,
		Logger:    log.Default(),
	}

	game, err := NewGame(cfg, *debug)
	if err != nil {
		log.Fatal(err)
	}

	if *watch {
		w, err := prefabs.NewWatcher(*prefabsDir)
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			defer w.Close()
			game.watcher = w
		}
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
