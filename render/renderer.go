package render

import "github.com/milk9111/adventure/common"

// TextureLoader registers an image and returns a handle for drawing it.
type TextureLoader interface {
	LoadTexture(imagePath string) (common.TextureHandle, error)
}

// TextureDrawer draws a region of a registered texture into the world.
type TextureDrawer interface {
	RenderTexture(h common.TextureHandle, src, dst common.Rect, flip common.Flip)
}

// Renderer is the drawing surface the engine renders the world onto.
// Positions passed to RenderTexture are in world coordinates; the renderer
// applies the camera.
type Renderer interface {
	TextureLoader
	TextureDrawer

	SetDrawColor(r, g, b, a uint8)
	ClearScreen()
	PresentFrame()
	CameraLookAt(worldX, worldY int)
	SetWorldBounds(bounds common.Rect)
	TranslateFromScreenToWorldCoordinates(screenX, screenY int) common.Point
}
