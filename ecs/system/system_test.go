package system

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/milk9111/adventure/common"
	"github.com/milk9111/adventure/ecs"
	"github.com/milk9111/adventure/levels"
	"github.com/milk9111/adventure/sprite"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func actorSheet() *sprite.SpriteSheet {
	sheet := sprite.NewSpriteSheet(1, 10, 6, 48, 48, common.Point{X: 24, Y: 42})
	row := func(r int) sprite.Animation {
		return sprite.Animation{
			Start:    sprite.Frame{Row: r, Col: 0},
			End:      sprite.Frame{Row: r, Col: 5},
			Duration: time.Second,
			Loop:     true,
		}
	}
	for i, name := range []string{
		AnimIdleDown, AnimIdleRight, AnimIdleUp, AnimWalkDown,
		AnimWalkRight, AnimWalkUp, AnimIdleLeft, AnimWalkLeft, AnimStay,
	} {
		sheet.Animations[name] = row(i)
	}
	return sheet
}

func newPlayer(x, y int) *ecs.Actor {
	a := ecs.NewActor(ecs.KindPlayer, actorSheet(), x, y, 192)
	_ = a.Sheet.ActivateAnimation(AnimStay, t0)
	a.LastAnimation = AnimStay
	return a
}

func bombSheet() *sprite.SpriteSheet {
	sheet := sprite.NewSpriteSheet(2, 1, 13, 32, 64, common.Point{X: 16, Y: 48})
	sheet.Animations["Explode"] = sprite.Animation{
		End:      sprite.Frame{Row: 0, Col: 12},
		Duration: 2 * time.Second,
	}
	return sheet
}

func TestMove(t *testing.T) {
	bounds := common.Rect{Width: 640, Height: 480}
	cases := []struct {
		name    string
		x, y    int
		in      Intent
		elapsed time.Duration
		wantX   int
		wantY   int
	}{
		{"idle", 100, 100, Intent{}, time.Second, 100, 100},
		{"right", 100, 100, Intent{Right: true}, 500 * time.Millisecond, 196, 100},
		{"up", 100, 100, Intent{Up: true}, 250 * time.Millisecond, 100, 52},
		{"opposite cancel", 100, 100, Intent{Left: true, Right: true}, time.Second, 100, 100},
		{"diagonal", 100, 100, Intent{Down: true, Right: true}, 250 * time.Millisecond, 148, 148},
		{"truncates per term", 100, 100, Intent{Left: true}, 10 * time.Millisecond, 99, 100},
		{"clamp left", 20, 100, Intent{Left: true}, time.Second, 10, 100},
		{"clamp top", 100, 30, Intent{Up: true}, time.Second, 100, 24},
		{"clamp right", 600, 100, Intent{Right: true}, time.Second, 630, 100},
		{"clamp bottom", 100, 470, Intent{Down: true}, time.Second, 100, 474},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := newPlayer(c.x, c.y)
			Move(a, c.in, bounds, c.elapsed)
			if a.X != c.wantX || a.Y != c.wantY {
				t.Fatalf("expected (%d,%d), got (%d,%d)", c.wantX, c.wantY, a.X, a.Y)
			}
		})
	}
}

func TestMoveAlwaysInsideBounds(t *testing.T) {
	bounds := common.Rect{Width: 320, Height: 240}
	rng := rand.New(rand.NewPCG(1, 2))
	a := newPlayer(100, 100)
	for i := 0; i < 1000; i++ {
		in := Intent{Up: rng.IntN(2) == 0, Down: rng.IntN(2) == 0, Left: rng.IntN(2) == 0, Right: rng.IntN(2) == 0}
		Move(a, in, bounds, time.Duration(rng.IntN(3000))*time.Millisecond)
		if a.X < 10 || a.X > 310 || a.Y < 24 || a.Y > 234 {
			t.Fatalf("step %d: position (%d,%d) outside bounds", i, a.X, a.Y)
		}
	}
}

func TestMoveNarrowWorldHighBoundWins(t *testing.T) {
	a := newPlayer(5, 5)
	Move(a, Intent{}, common.Rect{Width: 12, Height: 20}, 0)
	if a.X != 2 || a.Y != 14 {
		t.Fatalf("expected high bound to be applied last, got (%d,%d)", a.X, a.Y)
	}
}

func TestSelectAnimation(t *testing.T) {
	cases := []struct {
		name string
		in   Intent
		last string
		want string
	}{
		{"up wins", Intent{Up: true, Down: true, Left: true, Right: true}, AnimStay, AnimWalkUp},
		{"down over left", Intent{Down: true, Left: true}, AnimStay, AnimWalkDown},
		{"left over right", Intent{Left: true, Right: true}, AnimStay, AnimWalkLeft},
		{"right", Intent{Right: true}, AnimStay, AnimWalkRight},
		{"idle after left", Intent{}, AnimWalkLeft, AnimIdleLeft},
		{"idle after up", Intent{}, AnimWalkUp, AnimIdleUp},
		{"idle stays idle", Intent{}, AnimIdleDown, AnimIdleDown},
		{"initial stay", Intent{}, AnimStay, AnimStay},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SelectAnimation(c.in, c.last); got != c.want {
				t.Fatalf("expected %s, got %s", c.want, got)
			}
		})
	}
}

func TestAnimateKeepsRunningAnimation(t *testing.T) {
	a := newPlayer(100, 100)
	if err := Animate(a, Intent{Right: true}, t0); err != nil {
		t.Fatalf("animate: %v", err)
	}
	if a.Sheet.ActiveAnimation() != AnimWalkRight {
		t.Fatalf("expected WalkRight, got %s", a.Sheet.ActiveAnimation())
	}

	// Same intent on the next frames must not restart the animation.
	later := t0.Add(600 * time.Millisecond)
	if err := Animate(a, Intent{Right: true}, later); err != nil {
		t.Fatalf("animate: %v", err)
	}
	if got := a.Sheet.FrameIndex(later); got != 3 {
		t.Fatalf("expected frame 3 after 600ms, got %d", got)
	}

	if err := Animate(a, Intent{}, later); err != nil {
		t.Fatalf("animate: %v", err)
	}
	if a.Sheet.ActiveAnimation() != AnimIdleRight || a.Sheet.FrameIndex(later) != 0 {
		t.Fatalf("expected IdleRight restarted, got %s", a.Sheet.ActiveAnimation())
	}
}

func TestAnimateUnknownAnimation(t *testing.T) {
	a := newPlayer(100, 100)
	delete(a.Sheet.Animations, AnimWalkDown)

	err := Animate(a, Intent{Down: true}, t0)
	if !errors.Is(err, sprite.ErrUnknownAnimation) {
		t.Fatalf("expected unknown animation, got %v", err)
	}
	if a.Sheet.ActiveAnimation() != AnimStay {
		t.Fatalf("expected Stay to keep playing, got %s", a.Sheet.ActiveAnimation())
	}
	// Reported once per change, not every frame.
	if err := Animate(a, Intent{Down: true}, t0); err != nil {
		t.Fatalf("expected no repeat diagnostic, got %v", err)
	}
}

func TestColliding(t *testing.T) {
	cases := []struct {
		name string
		a, b common.Point
		want bool
	}{
		{"near", common.Point{X: 100, Y: 100}, common.Point{X: 120, Y: 110}, true},
		{"far", common.Point{X: 100, Y: 100}, common.Point{X: 200, Y: 200}, false},
		{"edge x", common.Point{X: 100, Y: 100}, common.Point{X: 148, Y: 100}, false},
		{"inside x", common.Point{X: 100, Y: 100}, common.Point{X: 52 + 1, Y: 100}, true},
		{"edge y", common.Point{X: 100, Y: 100}, common.Point{X: 100, Y: 52}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Colliding(c.a, c.b); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestCheckCollisions(t *testing.T) {
	reg := ecs.NewRegistry()
	player := newPlayer(100, 100)
	reg.Add(player)
	near := ecs.NewTemporary(bombSheet(), 120, 110, 10*time.Second, t0)
	far := ecs.NewTemporary(bombSheet(), 200, 200, 10*time.Second, t0)
	nearID := reg.Add(near)
	reg.Add(far)

	var events ecs.EventQueue
	got := CheckCollisions(reg, player, "Explode", t0, &events)
	if !slices.Equal(got, []ID{nearID}) {
		t.Fatalf("expected %v exploded, got %v", nearID, got)
	}
	if near.Sheet.ActiveAnimation() != "Explode" || far.Sheet.ActiveAnimation() != "" {
		t.Fatalf("unexpected animations near=%q far=%q", near.Sheet.ActiveAnimation(), far.Sheet.ActiveAnimation())
	}

	// Still touching a second later: the explosion keeps playing.
	later := t0.Add(time.Second)
	if got := CheckCollisions(reg, player, "Explode", later, &events); len(got) != 0 {
		t.Fatalf("expected no restart, got %v", got)
	}
	if idx := near.Sheet.FrameIndex(later); idx != 6 {
		t.Fatalf("expected frame 6 one second in, got %d", idx)
	}
	if idx := near.Sheet.FrameIndex(t0.Add(time.Minute)); idx != 12 {
		t.Fatalf("expected hold on frame 12, got %d", idx)
	}

	evts := events.Drain()
	if len(evts) != 1 || evts[0].Kind != ecs.EventExploded || evts[0].Object != nearID {
		t.Fatalf("unexpected events %+v", evts)
	}
}

func TestRemoveExpired(t *testing.T) {
	reg := ecs.NewRegistry()
	bomb := ecs.NewTemporary(bombSheet(), 0, 0, 10*time.Second, t0)
	id := reg.Add(bomb)
	reg.Add(newPlayer(100, 100))

	var events ecs.EventQueue
	if got := RemoveExpired(reg, t0.Add(9900*time.Millisecond), &events); len(got) != 0 {
		t.Fatalf("expected nothing expired, got %v", got)
	}
	if _, ok := reg.Get(id); !ok {
		t.Fatalf("bomb should still be present at 9.9s")
	}
	if got := RemoveExpired(reg, t0.Add(10100*time.Millisecond), &events); !slices.Equal(got, []ID{id}) {
		t.Fatalf("expected %v expired, got %v", id, got)
	}
	if _, ok := reg.Get(id); ok || reg.Len() != 1 {
		t.Fatalf("bomb should be gone at 10.1s")
	}
	if evts := events.Drain(); len(evts) != 1 || evts[0].Kind != ecs.EventExpired {
		t.Fatalf("unexpected events %+v", evts)
	}
}

func TestSpawner(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewPCG(7, 7)), t0)
	for i := 0; i < 20; i++ {
		if d := s.Threshold(); d != time.Second {
			t.Fatalf("expected 1s threshold, got %v", d)
		}
	}
	if s.Due(t0.Add(time.Second)) {
		t.Fatalf("threshold must be exceeded, not reached")
	}
	if !s.Due(t0.Add(1001 * time.Millisecond)) {
		t.Fatalf("expected spawn after 1.001s")
	}
	if s.Due(t0.Add(1500 * time.Millisecond)) {
		t.Fatalf("timer should restart after a spawn")
	}
}

func TestSpawnerPosition(t *testing.T) {
	level := &levels.Level{Width: 5, Height: 4, TileWidth: 32, TileHeight: 16}
	s := NewSpawner(rand.New(rand.NewPCG(3, 4)), t0)
	for i := 0; i < 100; i++ {
		p := s.Position(level)
		if p.X%32 != 0 || p.Y%16 != 0 || p.X < 0 || p.X >= 160 || p.Y < 0 || p.Y >= 64 {
			t.Fatalf("position %+v not tile aligned inside level", p)
		}
	}
}
