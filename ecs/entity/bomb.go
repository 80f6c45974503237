package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/adventure/ecs"
	"github.com/milk9111/adventure/prefabs"
)

// NewBomb creates a temporary bomb at a world position. The bomb shows its
// first frame until something activates its explode animation.
func NewBomb(spec *prefabs.BombSpec, textures TextureSource, x, y int, now time.Time) (*ecs.Temporary, error) {
	if spec == nil {
		return nil, fmt.Errorf("bomb: spec is nil")
	}
	sheet, err := BuildSheet(spec.Sheet, textures)
	if err != nil {
		return nil, fmt.Errorf("bomb: %w", err)
	}
	return ecs.NewTemporary(sheet, x, y, spec.TTL(), now), nil
}
