package system

import (
	"fmt"
	"time"

	"github.com/milk9111/adventure/ecs"
)

const (
	AnimWalkUp    = "WalkUp"
	AnimWalkDown  = "WalkDown"
	AnimWalkLeft  = "WalkLeft"
	AnimWalkRight = "WalkRight"
	AnimIdleUp    = "IdleUp"
	AnimIdleDown  = "IdleDown"
	AnimIdleLeft  = "IdleLeft"
	AnimIdleRight = "IdleRight"
	AnimStay      = "Stay"
)

var idleAnimations = map[string]string{
	AnimWalkUp:    AnimIdleUp,
	AnimWalkDown:  AnimIdleDown,
	AnimWalkLeft:  AnimIdleLeft,
	AnimWalkRight: AnimIdleRight,
}

// IdleAnimation returns the resting animation that follows last. Names
// without a walking counterpart are already idle and map to themselves.
func IdleAnimation(last string) string {
	if idle, ok := idleAnimations[last]; ok {
		return idle
	}
	return last
}

// SelectAnimation picks the animation for an intent with priority
// Up > Down > Left > Right, idling on the previous direction otherwise.
func SelectAnimation(in Intent, last string) string {
	switch {
	case in.Up:
		return AnimWalkUp
	case in.Down:
		return AnimWalkDown
	case in.Left:
		return AnimWalkLeft
	case in.Right:
		return AnimWalkRight
	default:
		return IdleAnimation(last)
	}
}

// Animate activates the animation selected for the intent. An animation
// that is already playing is left running. Unknown names keep the current
// animation and are returned as an error for the diagnostics channel.
func Animate(a *ecs.Actor, in Intent, now time.Time) error {
	if a == nil || a.Sheet == nil {
		return nil
	}
	name := SelectAnimation(in, a.LastAnimation)
	if name == a.LastAnimation && a.Sheet.ActiveAnimation() != "" {
		return nil
	}
	a.LastAnimation = name
	if _, err := a.Sheet.ActivateIfChanged(name, now); err != nil {
		return fmt.Errorf("%s %s: %w", a.Kind(), a.ID(), err)
	}
	return nil
}
