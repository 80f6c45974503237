package system

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/adventure/common"
	"github.com/milk9111/adventure/ecs"
)

// CollisionThreshold is the half size in pixels of the proximity box used
// for player versus temporary object checks.
const CollisionThreshold = 48

// Colliding reports whether b lies strictly inside the proximity box
// around a.
func Colliding(a, b common.Point) bool {
	d := toVector(a).Sub(toVector(b))
	return math.Abs(d.X) < CollisionThreshold && math.Abs(d.Y) < CollisionThreshold
}

func toVector(p common.Point) cp.Vector {
	return cp.Vector{X: float64(p.X), Y: float64(p.Y)}
}

// CheckCollisions tests every temporary object against the player and
// starts the explode animation on the ones it touches. An explosion that is
// already playing is not restarted. It returns the ids that started
// exploding.
func CheckCollisions(reg *ecs.Registry, player *ecs.Actor, explode string, now time.Time, events *ecs.EventQueue) []ID {
	if reg == nil || player == nil {
		return nil
	}
	var exploded []ID
	pos := player.Position()
	for t := range reg.Temporaries() {
		if !Colliding(pos, t.Position()) {
			continue
		}
		if t.Sheet.ActiveAnimation() == explode {
			continue
		}
		if err := t.Sheet.ActivateAnimation(explode, now); err != nil {
			events.Diagnostic(t.ID(), err)
			continue
		}
		exploded = append(exploded, t.ID())
		events.Push(ecs.Event{Kind: ecs.EventExploded, Object: t.ID()})
	}
	return exploded
}
