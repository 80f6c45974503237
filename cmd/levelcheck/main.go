package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"log"
	"os"

	"github.com/milk9111/adventure/assets"
	"github.com/milk9111/adventure/common"
	"github.com/milk9111/adventure/levels"
)

// imageChecker stands in for a renderer: it decodes image headers
// instead of uploading textures.
type imageChecker struct {
	fsys fs.FS
	n    int
}

func (c *imageChecker) LoadTexture(p string) (common.TextureHandle, error) {
	data, err := fs.ReadFile(c.fsys, p)
	if err != nil {
		return 0, err
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return 0, fmt.Errorf("decode %s: %w", p, err)
	}
	c.n++
	return common.TextureHandle(c.n), nil
}

func main() {
	assetsDir := flag.String("assets", "assets", "directory holding levels, tilesets and images")
	levelPath := flag.String("level", "terrain.tmj", "level file, relative to the assets directory")
	flag.Parse()

	fsys := os.DirFS(*assetsDir)
	cache := assets.NewCache(fsys, &imageChecker{fsys: fsys})
	lvl, err := cache.LoadLevel(*levelPath)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %dx%d tiles of %dx%d px, %d layers, %d tileset references, %d images\n",
		*levelPath, lvl.Width, lvl.Height, lvl.TileWidth, lvl.TileHeight,
		len(lvl.Layers), len(lvl.TileSets), cache.TextureCount())
	for _, id := range lvl.DuplicateTileIDs() {
		fmt.Printf("warning: tile id %d defined more than once, first definition used\n", id)
	}
	if n := unresolvedCells(lvl); n > 0 {
		fmt.Printf("warning: %d cells reference tiles no tileset defines and will not be drawn\n", n)
	}
}

func unresolvedCells(lvl *levels.Level) int {
	n := 0
	for layer, l := range lvl.Layers {
		for i, idx := range l.Data {
			if idx <= 0 {
				continue
			}
			if _, ok := lvl.TileAt(layer, i%l.Width, i/l.Width); !ok {
				n++
			}
		}
	}
	return n
}
