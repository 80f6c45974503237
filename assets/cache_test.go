package assets

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/milk9111/adventure/common"
)

type fakeLoader struct {
	mu    sync.Mutex
	calls map[string]int
	next  common.TextureHandle
	fail  map[string]bool
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{calls: make(map[string]int), fail: make(map[string]bool)}
}

func (f *fakeLoader) LoadTexture(p string) (common.TextureHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[p]++
	if f.fail[p] {
		return 0, fmt.Errorf("unreadable %s", p)
	}
	f.next++
	return f.next, nil
}

func (f *fakeLoader) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

const tileSetJSON = `{"tiles":[
	{"id":0,"image":"tiles/grass.png","imagewidth":16,"imageheight":16},
	{"id":1,"image":"tiles/dirt.png","imagewidth":16,"imageheight":16}]}`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"terrain.tmj": {Data: []byte(`{"width":2,"height":2,"tilewidth":16,"tileheight":16,
			"layers":[{"data":[1,2,2,1]},{"data":[0,0,7,0]}],
			"tilesets":[{"source":"ground.tsj"},{"source":"./ground.tsj"}]}`)},
		"ground.tsj":  {Data: []byte(tileSetJSON)},
		"broken.tmj":  {Data: []byte(`{"width":2,"height":2,"tilewidth":16,"tileheight":16,"layers":[{"data":[1]}]}`)},
		"missing.tmj": {Data: []byte(`{"width":1,"height":1,"tilewidth":16,"tileheight":16,"layers":[{"data":[1]}],"tilesets":[{"source":"nope.tsj"}]}`)},
	}
}

func TestLoadLevelResolvesTiles(t *testing.T) {
	loader := newFakeLoader()
	c := NewCache(testFS(), loader)

	lvl, err := c.LoadLevel("terrain.tmj")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}
	if lvl.TileSets[0].Set == nil || lvl.TileSets[0].Set != lvl.TileSets[1].Set {
		t.Fatalf("expected both references to share one tileset")
	}
	if got := loader.total(); got != 2 {
		t.Fatalf("expected 2 texture registrations, got %d", got)
	}

	for layer := range lvl.Layers {
		for y := 0; y < lvl.Height; y++ {
			for x := 0; x < lvl.Width; x++ {
				idx := lvl.Layers[layer].Data[y*lvl.Width+x]
				tile, ok := lvl.TileAt(layer, x, y)
				switch {
				case idx == 0 || idx == 7:
					if ok {
						t.Fatalf("cell %d,%d,%d should be skipped", layer, x, y)
					}
				case !ok || !tile.Texture.Valid():
					t.Fatalf("cell %d,%d,%d should resolve to a textured tile", layer, x, y)
				}
			}
		}
	}
}

func TestResolveTileSetLoadOnce(t *testing.T) {
	loader := newFakeLoader()
	c := NewCache(testFS(), loader)

	first, err := c.ResolveTileSet("ground.tsj")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := c.ResolveTileSet("ground.tsj")
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical tileset instance")
	}
	for p, n := range loader.calls {
		if n != 1 {
			t.Fatalf("texture %s registered %d times", p, n)
		}
	}
	if c.TextureCount() != 2 {
		t.Fatalf("expected 2 cached textures, got %d", c.TextureCount())
	}
}

func TestResolveTileSetConcurrent(t *testing.T) {
	loader := newFakeLoader()
	c := NewCache(testFS(), loader)

	const workers = 8
	results := make([]any, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ts, err := c.ResolveTileSet("ground.tsj")
			if err != nil {
				results[i] = err
				return
			}
			results[i] = ts
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("worker %d got %v, want %v", i, results[i], results[0])
		}
	}
	if got := loader.total(); got != 2 {
		t.Fatalf("expected 2 texture registrations, got %d", got)
	}
}

func TestLoadLevelErrors(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		failImg string
		want    error
	}{
		{"missing_file", "nowhere.tmj", "", ErrAssetLoad},
		{"bad_layer", "broken.tmj", "", ErrAssetLoad},
		{"missing_tileset", "missing.tmj", "", ErrAssetLoad},
		{"bad_texture", "terrain.tmj", "tiles/dirt.png", ErrTextureLoad},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loader := newFakeLoader()
			if tc.failImg != "" {
				loader.fail[tc.failImg] = true
			}
			c := NewCache(testFS(), loader)
			if _, err := c.LoadLevel(tc.path); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTextureMemoized(t *testing.T) {
	loader := newFakeLoader()
	c := NewCache(testFS(), loader)

	h1, err := c.Texture("player.png")
	if err != nil {
		t.Fatalf("texture: %v", err)
	}
	h2, err := c.Texture("./player.png")
	if err != nil {
		t.Fatalf("texture: %v", err)
	}
	if h1 != h2 || loader.calls["player.png"] != 1 {
		t.Fatalf("expected one registration, got handles %d/%d calls %d", h1, h2, loader.calls["player.png"])
	}
}
