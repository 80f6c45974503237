package levels

import (
	"encoding/json"
	"fmt"

	"github.com/milk9111/adventure/common"
)

// TileSet is a catalog of single-image tiles.
type TileSet struct {
	Tiles []Tile `json:"tiles"`
}

// Tile is one image of a tileset. ID is unique within its tileset only.
type Tile struct {
	ID          int    `json:"id"`
	Image       string `json:"image"`
	ImageWidth  int    `json:"imagewidth"`
	ImageHeight int    `json:"imageheight"`

	// Texture is assigned once by the asset cache.
	Texture common.TextureHandle `json:"-"`
}

// DecodeTileSet parses a tileset description.
func DecodeTileSet(data []byte) (*TileSet, error) {
	var ts TileSet
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("levels: unmarshal tileset: %w", err)
	}
	for _, t := range ts.Tiles {
		if t.Image == "" {
			return nil, fmt.Errorf("levels: tile %d has no image", t.ID)
		}
	}
	return &ts, nil
}
