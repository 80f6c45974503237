package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/milk9111/adventure/common"
	"github.com/milk9111/adventure/levels"
	"github.com/milk9111/adventure/render"
	"golang.org/x/sync/singleflight"
)

var (
	ErrAssetLoad   = errors.New("assets: asset load failed")
	ErrTextureLoad = errors.New("assets: texture load failed")
)

// Cache loads level and tileset descriptions from an asset root and
// registers their images with a texture loader. Every tileset source and
// every image path is loaded at most once per cache.
type Cache struct {
	fsys   fs.FS
	loader render.TextureLoader

	mu       sync.Mutex
	tileSets map[string]*levels.TileSet
	textures map[string]common.TextureHandle
	group    singleflight.Group
}

// NewCache creates a cache reading files from fsys.
func NewCache(fsys fs.FS, loader render.TextureLoader) *Cache {
	return &Cache{
		fsys:     fsys,
		loader:   loader,
		tileSets: make(map[string]*levels.TileSet),
		textures: make(map[string]common.TextureHandle),
	}
}

// LoadLevel reads a level, validates it and resolves all of its tileset
// references.
func (c *Cache) LoadLevel(p string) (*levels.Level, error) {
	if c == nil {
		return nil, fmt.Errorf("assets: cache is nil")
	}
	data, err := fs.ReadFile(c.fsys, cleanAssetPath(p))
	if err != nil {
		return nil, fmt.Errorf("assets: read level %s: %w: %w", p, ErrAssetLoad, err)
	}
	lvl, err := levels.DecodeLevel(data)
	if err != nil {
		return nil, fmt.Errorf("assets: decode level %s: %w: %w", p, ErrAssetLoad, err)
	}
	for i := range lvl.TileSets {
		ref := &lvl.TileSets[i]
		ts, err := c.ResolveTileSet(ref.Source)
		if err != nil {
			return nil, err
		}
		ref.Set = ts
	}
	lvl.BuildTileIndex()
	return lvl, nil
}

// ResolveTileSet returns the tileset for a source key, parsing it and
// registering its tile images on first use only.
func (c *Cache) ResolveTileSet(source string) (*levels.TileSet, error) {
	key := cleanAssetPath(source)

	c.mu.Lock()
	ts, ok := c.tileSets[key]
	c.mu.Unlock()
	if ok {
		return ts, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check in case another load finished while we waited.
		c.mu.Lock()
		ts, ok := c.tileSets[key]
		c.mu.Unlock()
		if ok {
			return ts, nil
		}

		ts, err := c.loadTileSet(key)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.tileSets[key] = ts
		c.mu.Unlock()
		return ts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*levels.TileSet), nil
}

func (c *Cache) loadTileSet(key string) (*levels.TileSet, error) {
	data, err := fs.ReadFile(c.fsys, key)
	if err != nil {
		return nil, fmt.Errorf("assets: read tileset %s: %w: %w", key, ErrAssetLoad, err)
	}
	ts, err := levels.DecodeTileSet(data)
	if err != nil {
		return nil, fmt.Errorf("assets: decode tileset %s: %w: %w", key, ErrAssetLoad, err)
	}
	for i := range ts.Tiles {
		tile := &ts.Tiles[i]
		h, err := c.Texture(tile.Image)
		if err != nil {
			return nil, err
		}
		tile.Texture = h
	}
	return ts, nil
}

// Texture registers an image with the texture loader once and returns its
// handle on every later call for the same path.
func (c *Cache) Texture(imagePath string) (common.TextureHandle, error) {
	if c == nil || c.loader == nil {
		return 0, fmt.Errorf("assets: texture %s: %w: no loader", imagePath, ErrTextureLoad)
	}
	key := cleanAssetPath(imagePath)

	c.mu.Lock()
	defer c.mu.Unlock()
	if h, ok := c.textures[key]; ok {
		return h, nil
	}
	h, err := c.loader.LoadTexture(key)
	if err != nil {
		return 0, fmt.Errorf("assets: texture %s: %w: %w", key, ErrTextureLoad, err)
	}
	c.textures[key] = h
	return h, nil
}

// TextureCount reports how many distinct images have been registered.
func (c *Cache) TextureCount() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.textures)
}

func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(path.Join(".", p))
}
