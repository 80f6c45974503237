package system

import (
	"time"

	"github.com/milk9111/adventure/common"
	"github.com/milk9111/adventure/ecs"
)

// Sprite anchor margins kept between an actor and the world edges.
const (
	MarginLeft   = 10
	MarginRight  = 10
	MarginTop    = 24
	MarginBottom = 6
)

// Intent is the directional control signal of one tick. Opposite
// directions cancel, perpendicular ones combine.
type Intent struct {
	Up, Down, Left, Right bool
}

// Move displaces the actor by elapsed*speed pixels along every active
// direction and clamps it to bounds minus the sprite margins.
func Move(a *ecs.Actor, in Intent, bounds common.Rect, elapsed time.Duration) {
	if a == nil {
		return
	}
	pixels := elapsed.Seconds() * a.Speed

	x := a.X + step(in.Right, pixels)
	x -= step(in.Left, pixels)
	y := a.Y - step(in.Up, pixels)
	y += step(in.Down, pixels)

	// Low bound first: on a world narrower than the margins the high
	// bound wins.
	x = min(max(x, bounds.X+MarginLeft), bounds.X+bounds.Width-MarginRight)
	y = min(max(y, bounds.Y+MarginTop), bounds.Y+bounds.Height-MarginBottom)
	a.X, a.Y = x, y
}

func step(active bool, pixels float64) int {
	if !active {
		return 0
	}
	return int(pixels)
}
