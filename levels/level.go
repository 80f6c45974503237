package levels

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/milk9111/adventure/common"
)

var (
	ErrInvalidDimensions = errors.New("levels: invalid level dimensions")
	ErrLayerSize         = errors.New("levels: layer size does not match level")
)

// Level is a tile map in the Tiled JSON layout. Field names are matched
// case-insensitively on decode.
type Level struct {
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	TileWidth  int                `json:"tilewidth"`
	TileHeight int                `json:"tileheight"`
	Layers     []Layer            `json:"layers"`
	TileSets   []TileSetReference `json:"tilesets"`

	tiles map[int]*Tile
	dups  []int
}

// Layer is a flat row-major grid of 1-based tile indices. 0 is empty.
type Layer struct {
	Width int   `json:"width"`
	Data  []int `json:"data"`
}

// TileSetReference names a tileset file. Set is filled in by the asset
// cache; references with the same Source share one TileSet.
type TileSetReference struct {
	Source string   `json:"source"`
	Set    *TileSet `json:"-"`
}

// DecodeLevel parses and validates a level description.
func DecodeLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Validate checks the grid invariants of a decoded level.
func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 || l.TileWidth <= 0 || l.TileHeight <= 0 {
		return fmt.Errorf("%w: %dx%d tiles of %dx%d px", ErrInvalidDimensions, l.Width, l.Height, l.TileWidth, l.TileHeight)
	}
	cells := l.Width * l.Height
	for i := range l.Layers {
		layer := &l.Layers[i]
		if len(layer.Data) != cells {
			return fmt.Errorf("%w: layer %d has %d cells, want %d", ErrLayerSize, i, len(layer.Data), cells)
		}
		if layer.Width == 0 {
			layer.Width = l.Width
		}
		if layer.Width != l.Width {
			return fmt.Errorf("%w: layer %d width %d, want %d", ErrLayerSize, i, layer.Width, l.Width)
		}
	}
	return nil
}

// PixelBounds returns the world rectangle covered by the level.
func (l *Level) PixelBounds() common.Rect {
	if l == nil {
		return common.Rect{}
	}
	return common.Rect{Width: l.Width * l.TileWidth, Height: l.Height * l.TileHeight}
}

// BuildTileIndex maps tile ids to definitions across all resolved tilesets
// in reference order. The first definition of an id wins; the ids that
// were defined more than once are returned.
func (l *Level) BuildTileIndex() []int {
	if l == nil {
		return nil
	}
	l.tiles = make(map[int]*Tile)
	seen := make(map[*TileSet]bool, len(l.TileSets))
	var dups []int
	for _, ref := range l.TileSets {
		if ref.Set == nil || seen[ref.Set] {
			continue
		}
		seen[ref.Set] = true
		for i := range ref.Set.Tiles {
			t := &ref.Set.Tiles[i]
			if _, ok := l.tiles[t.ID]; ok {
				dups = append(dups, t.ID)
				continue
			}
			l.tiles[t.ID] = t
		}
	}
	l.dups = dups
	return dups
}

// DuplicateTileIDs lists ids defined by more than one referenced tileset
// when the index was last built.
func (l *Level) DuplicateTileIDs() []int {
	if l == nil {
		return nil
	}
	return l.dups
}

// GetTile returns the tile with the given id, if any resolved tileset
// defines it.
func (l *Level) GetTile(id int) (*Tile, bool) {
	if l == nil || l.tiles == nil {
		return nil, false
	}
	t, ok := l.tiles[id]
	return t, ok
}

// TileAt returns the tile drawn at cell (x, y) of a layer. Empty cells and
// indices no tileset defines report false.
func (l *Level) TileAt(layer, x, y int) (*Tile, bool) {
	if l == nil || layer < 0 || layer >= len(l.Layers) || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return nil, false
	}
	cLayer := l.Layers[layer]
	idx := cLayer.Data[y*cLayer.Width+x]
	if idx <= 0 {
		return nil, false
	}
	return l.GetTile(idx - 1)
}
