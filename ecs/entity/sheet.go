package entity

import (
	"fmt"

	"github.com/milk9111/adventure/common"
	"github.com/milk9111/adventure/prefabs"
	"github.com/milk9111/adventure/sprite"
)

// TextureSource registers sprite sheet images.
type TextureSource interface {
	Texture(imagePath string) (common.TextureHandle, error)
}

// BuildSheet creates a sprite sheet and its animation catalog from a spec.
func BuildSheet(spec prefabs.SheetSpec, textures TextureSource) (*sprite.SpriteSheet, error) {
	if textures == nil {
		return nil, fmt.Errorf("build sheet %s: no texture source", spec.Image)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("build sheet: %w", err)
	}
	h, err := textures.Texture(spec.Image)
	if err != nil {
		return nil, fmt.Errorf("build sheet %s: %w", spec.Image, err)
	}
	sheet := sprite.NewSpriteSheet(h, spec.Rows, spec.Columns, spec.FrameWidth, spec.FrameHeight,
		common.Point{X: spec.Offset.X, Y: spec.Offset.Y})
	for name, anim := range spec.Animations {
		sheet.Animations[name] = anim.Animation()
	}
	return sheet, nil
}
