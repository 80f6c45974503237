package sprite

import (
	"fmt"
	"time"
)

// Frame addresses one cell of a sprite sheet grid.
type Frame struct {
	Row int
	Col int
}

// Animation plays every frame from Start to End, scanning columns within a
// row and rows top to bottom, over Duration.
type Animation struct {
	Start    Frame
	End      Frame
	Duration time.Duration
	Loop     bool
	// Flip mirrors the sprite horizontally when drawn.
	Flip bool
}

// FrameCount returns the inclusive number of frames between Start and End
// on a sheet with the given column count.
func (a Animation) FrameCount(columns int) int {
	n := (a.End.Row-a.Start.Row)*columns + (a.End.Col - a.Start.Col) + 1
	if n < 1 {
		return 1
	}
	return n
}

// FrameIndex selects the frame shown after elapsed time. Looping
// animations wrap around; others hold their last frame.
func (a Animation) FrameIndex(columns int, elapsed time.Duration) int {
	count := a.FrameCount(columns)
	if a.Duration <= 0 || elapsed <= 0 {
		return 0
	}
	perFrame := float64(a.Duration) / float64(count)
	idx := int(float64(elapsed) / perFrame)
	if a.Loop {
		return idx % count
	}
	return min(idx, count-1)
}

// FrameAt returns the grid cell of the i-th frame of the animation.
func (a Animation) FrameAt(columns, i int) Frame {
	linear := a.Start.Row*columns + a.Start.Col + i
	return Frame{Row: linear / columns, Col: linear % columns}
}

// Validate checks that the animation fits a rows x columns grid.
func (a Animation) Validate(rows, columns int) error {
	inside := func(f Frame) bool {
		return f.Row >= 0 && f.Row < rows && f.Col >= 0 && f.Col < columns
	}
	if !inside(a.Start) || !inside(a.End) {
		return fmt.Errorf("sprite: frames %v..%v outside %dx%d grid", a.Start, a.End, rows, columns)
	}
	if a.End.Row*columns+a.End.Col < a.Start.Row*columns+a.Start.Col {
		return fmt.Errorf("sprite: end frame %v before start frame %v", a.End, a.Start)
	}
	if a.Duration <= 0 {
		return fmt.Errorf("sprite: non-positive duration %s", a.Duration)
	}
	return nil
}
