package sprite

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/adventure/common"
	"github.com/milk9111/adventure/render"
)

var ErrUnknownAnimation = errors.New("sprite: unknown animation")

// SpriteSheet slices one texture into a grid of equally sized frames and
// tracks which named animation is playing.
type SpriteSheet struct {
	Texture     common.TextureHandle
	Rows        int
	Columns     int
	FrameWidth  int
	FrameHeight int
	// Offset is the anchor inside a frame that lands on the owner's
	// world position.
	Offset     common.Point
	Animations map[string]Animation

	active      string
	activatedAt time.Time
}

// NewSpriteSheet creates a sheet with an empty animation catalog.
func NewSpriteSheet(texture common.TextureHandle, rows, columns, frameWidth, frameHeight int, offset common.Point) *SpriteSheet {
	return &SpriteSheet{
		Texture:     texture,
		Rows:        rows,
		Columns:     columns,
		FrameWidth:  frameWidth,
		FrameHeight: frameHeight,
		Offset:      offset,
		Animations:  make(map[string]Animation),
	}
}

// ActiveAnimation returns the playing animation name, or "" before the
// first activation.
func (s *SpriteSheet) ActiveAnimation() string {
	if s == nil {
		return ""
	}
	return s.active
}

// ActivateAnimation starts the named animation from its first frame.
// Unknown names leave the sheet untouched and report ErrUnknownAnimation.
func (s *SpriteSheet) ActivateAnimation(name string, now time.Time) error {
	if s == nil {
		return fmt.Errorf("%w: %q on nil sheet", ErrUnknownAnimation, name)
	}
	if _, ok := s.Animations[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	s.active = name
	s.activatedAt = now
	return nil
}

// ActivateIfChanged activates name unless it is already playing, so a
// steady state does not restart its animation every frame.
func (s *SpriteSheet) ActivateIfChanged(name string, now time.Time) (bool, error) {
	if s != nil && s.active != "" && s.active == name {
		return false, nil
	}
	if err := s.ActivateAnimation(name, now); err != nil {
		return false, err
	}
	return true, nil
}

// Shift moves the activation time of the active animation forward by d,
// so time spent paused does not advance it.
func (s *SpriteSheet) Shift(d time.Duration) {
	if s == nil || s.active == "" {
		return
	}
	s.activatedAt = s.activatedAt.Add(d)
}

// Elapsed returns the time since the active animation was activated.
func (s *SpriteSheet) Elapsed(now time.Time) time.Duration {
	if s == nil || s.active == "" {
		return 0
	}
	return now.Sub(s.activatedAt)
}

// FrameIndex returns the index of the shown frame within the active
// animation.
func (s *SpriteSheet) FrameIndex(now time.Time) int {
	anim, ok := s.activeAnimation()
	if !ok {
		return 0
	}
	return anim.FrameIndex(s.Columns, s.Elapsed(now))
}

// CurrentFrame returns the grid cell to draw. Without an active animation
// the first cell of the sheet is shown.
func (s *SpriteSheet) CurrentFrame(now time.Time) (Frame, common.Flip) {
	anim, ok := s.activeAnimation()
	if !ok {
		return Frame{}, common.FlipNone
	}
	flip := common.FlipNone
	if anim.Flip {
		flip = common.FlipHorizontal
	}
	return anim.FrameAt(s.Columns, anim.FrameIndex(s.Columns, s.Elapsed(now))), flip
}

// Render draws the current frame with its anchor at world position (x, y).
func (s *SpriteSheet) Render(d render.TextureDrawer, x, y int, now time.Time) {
	if s == nil || d == nil || s.Columns <= 0 {
		return
	}
	frame, flip := s.CurrentFrame(now)
	src := common.Rect{
		X:      frame.Col * s.FrameWidth,
		Y:      frame.Row * s.FrameHeight,
		Width:  s.FrameWidth,
		Height: s.FrameHeight,
	}
	dst := common.Rect{
		X:      x - s.Offset.X,
		Y:      y - s.Offset.Y,
		Width:  s.FrameWidth,
		Height: s.FrameHeight,
	}
	d.RenderTexture(s.Texture, src, dst, flip)
}

func (s *SpriteSheet) activeAnimation() (Animation, bool) {
	if s == nil || s.active == "" || s.Columns <= 0 {
		return Animation{}, false
	}
	anim, ok := s.Animations[s.active]
	return anim, ok
}
