package ecs

import (
	"time"

	"github.com/milk9111/adventure/common"
	"github.com/milk9111/adventure/sprite"
)

// Kind tags the variant of a game object.
type Kind uint8

const (
	KindRenderable Kind = iota
	KindTemporary
	KindPlayer
	KindCompanion
)

func (k Kind) String() string {
	switch k {
	case KindRenderable:
		return "renderable"
	case KindTemporary:
		return "temporary"
	case KindPlayer:
		return "player"
	case KindCompanion:
		return "companion"
	default:
		return "unknown"
	}
}

// Object is the uniform handle stored by a Registry. Capabilities are
// queried with the As* methods instead of type switches.
type Object interface {
	ID() ID
	Kind() Kind
	AsRenderable() (*Renderable, bool)
	AsTemporary() (*Temporary, bool)
	AsActor() (*Actor, bool)

	assign(id ID)
}

// Renderable is an object drawn from a sprite sheet at a world position.
type Renderable struct {
	id    ID
	Sheet *sprite.SpriteSheet
	X, Y  int
}

func NewRenderable(sheet *sprite.SpriteSheet, x, y int) *Renderable {
	return &Renderable{Sheet: sheet, X: x, Y: y}
}

func (r *Renderable) ID() ID                            { return r.id }
func (r *Renderable) Kind() Kind                        { return KindRenderable }
func (r *Renderable) AsRenderable() (*Renderable, bool) { return r, true }
func (r *Renderable) AsTemporary() (*Temporary, bool)   { return nil, false }
func (r *Renderable) AsActor() (*Actor, bool)           { return nil, false }
func (r *Renderable) assign(id ID)                      { r.id = id }

// Position returns the world position of the sprite anchor.
func (r *Renderable) Position() common.Point {
	return common.Point{X: r.X, Y: r.Y}
}

// Temporary is a renderable with a bounded lifetime.
type Temporary struct {
	Renderable
	TTL       time.Duration
	CreatedAt time.Time
}

func NewTemporary(sheet *sprite.SpriteSheet, x, y int, ttl time.Duration, now time.Time) *Temporary {
	return &Temporary{
		Renderable: Renderable{Sheet: sheet, X: x, Y: y},
		TTL:        ttl,
		CreatedAt:  now,
	}
}

func (t *Temporary) Kind() Kind                      { return KindTemporary }
func (t *Temporary) AsTemporary() (*Temporary, bool) { return t, true }

// Expired reports whether the lifetime has run out at now.
func (t *Temporary) Expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.TTL
}

// Actor is a player-controlled renderable: the player or its companion.
type Actor struct {
	Renderable
	kind Kind
	// Speed is the movement speed in pixels per second.
	Speed float64
	// LastAnimation is the animation name chosen on the previous update.
	LastAnimation string
}

func NewActor(kind Kind, sheet *sprite.SpriteSheet, x, y int, speed float64) *Actor {
	return &Actor{
		Renderable: Renderable{Sheet: sheet, X: x, Y: y},
		kind:       kind,
		Speed:      speed,
	}
}

func (a *Actor) Kind() Kind              { return a.kind }
func (a *Actor) AsActor() (*Actor, bool) { return a, true }
