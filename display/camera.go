package display

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/adventure/common"
)

// Camera maps world coordinates to a view of the logical screen centered
// on a world point and kept inside the world bounds.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64
	// world bounds in pixels (0 means unbounded)
	worldW float64
	worldH float64
}

// NewCamera creates a camera with the given logical screen size and zoom.
func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{
		PosX:    float64(screenW) / 2.0,
		PosY:    float64(screenH) / 2.0,
		screenW: screenW,
		screenH: screenH,
		zoom:    zoom,
	}
}

func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

// SetWorldBounds sets the world pixel rectangle the view is clamped to.
func (c *Camera) SetWorldBounds(r common.Rect) {
	c.worldW = float64(r.X + r.Width)
	c.worldH = float64(r.Y + r.Height)
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	viewW := float64(c.screenW) / c.zoom
	viewH := float64(c.screenH) / c.zoom
	return c.PosX - viewW/2.0, c.PosY - viewH/2.0
}

// SnapTo centers the view on a world point. The position is rounded to
// the zoom grid and clamped to the world bounds. A world smaller than the
// view is centered.
func (c *Camera) SnapTo(x, y float64) {
	c.PosX = math.Round(x*c.zoom) / c.zoom
	c.PosY = math.Round(y*c.zoom) / c.zoom

	halfW := float64(c.screenW) / c.zoom / 2.0
	halfH := float64(c.screenH) / c.zoom / 2.0
	c.PosX = clampAxis(c.PosX, halfW, c.worldW)
	c.PosY = clampAxis(c.PosY, halfH, c.worldH)
}

func clampAxis(pos, half, world float64) float64 {
	if world <= 0 {
		return pos
	}
	if world-half < half {
		return world / 2.0
	}
	return cp.Clamp(pos, half, world-half)
}

// WorldToScreen converts a world point to logical screen pixels.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	left, top := c.ViewTopLeft()
	return (x - left) * c.zoom, (y - top) * c.zoom
}

// ScreenToWorld converts logical screen pixels to a world point.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	left, top := c.ViewTopLeft()
	return left + sx/c.zoom, top + sy/c.zoom
}
