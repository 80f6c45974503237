package entity

import (
	"fmt"
	"time"

	"github.com/milk9111/adventure/ecs"
	"github.com/milk9111/adventure/prefabs"
	"github.com/milk9111/adventure/sprite"
)

func NewPlayer(spec *prefabs.ActorSpec, textures TextureSource, now time.Time) (*ecs.Actor, error) {
	return newActor(ecs.KindPlayer, spec, textures, now)
}

func NewCompanion(spec *prefabs.ActorSpec, textures TextureSource, now time.Time) (*ecs.Actor, error) {
	return newActor(ecs.KindCompanion, spec, textures, now)
}

func newActor(kind ecs.Kind, spec *prefabs.ActorSpec, textures TextureSource, now time.Time) (*ecs.Actor, error) {
	if spec == nil {
		return nil, fmt.Errorf("%s: spec is nil", kind)
	}
	sheet, err := BuildSheet(spec.Sheet, textures)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	if err := sheet.ActivateAnimation(spec.InitialAnimation, now); err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	actor := ecs.NewActor(kind, sheet, spec.Start.X, spec.Start.Y, spec.Speed)
	actor.LastAnimation = spec.InitialAnimation
	return actor, nil
}

// SheetSwap is a sprite sheet built for an actor from a new spec but not
// yet installed on it.
type SheetSwap struct {
	actor     *ecs.Actor
	sheet     *sprite.SpriteSheet
	speed     float64
	animation string
}

// PrepareSheet builds the actor's sheet from a new spec without touching
// the actor. The active animation carries over when the new catalog still
// has it, otherwise the spec's initial animation is used.
func PrepareSheet(actor *ecs.Actor, spec *prefabs.ActorSpec, textures TextureSource, now time.Time) (*SheetSwap, error) {
	if actor == nil || spec == nil {
		return nil, fmt.Errorf("prepare sheet: nil actor or spec")
	}
	sheet, err := BuildSheet(spec.Sheet, textures)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", actor.Kind(), err)
	}
	name := actor.Sheet.ActiveAnimation()
	if _, ok := sheet.Animations[name]; !ok {
		name = spec.InitialAnimation
	}
	if err := sheet.ActivateAnimation(name, now); err != nil {
		return nil, fmt.Errorf("%s: %w", actor.Kind(), err)
	}
	return &SheetSwap{actor: actor, sheet: sheet, speed: spec.Speed, animation: name}, nil
}

// Apply installs the prepared sheet. The actor keeps its position.
func (s *SheetSwap) Apply() {
	s.actor.Sheet = s.sheet
	s.actor.Speed = s.speed
	s.actor.LastAnimation = s.animation
}

// ReplaceSheet prepares and applies a new sheet in one step.
func ReplaceSheet(actor *ecs.Actor, spec *prefabs.ActorSpec, textures TextureSource, now time.Time) error {
	swap, err := PrepareSheet(actor, spec, textures, now)
	if err != nil {
		return err
	}
	swap.Apply()
	return nil
}
