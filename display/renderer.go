package display

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/adventure/common"
)

// Renderer draws textures onto the ebiten screen through a Camera. Draw
// calls are only valid between Begin and the end of the game's Draw.
type Renderer struct {
	fsys     fs.FS
	camera   *Camera
	textures []*ebiten.Image
	screen   *ebiten.Image
	color    color.RGBA
	frames   int
}

// NewRenderer reads texture images from fsys.
func NewRenderer(fsys fs.FS, screenW, screenH int) *Renderer {
	return &Renderer{
		fsys:   fsys,
		camera: NewCamera(screenW, screenH, 1),
		color:  color.RGBA{A: 0xff},
	}
}

func (r *Renderer) Camera() *Camera { return r.camera }

// Frames reports how many frames were presented.
func (r *Renderer) Frames() int { return r.frames }

// LoadTexture decodes an image and uploads it as a new texture.
func (r *Renderer) LoadTexture(p string) (common.TextureHandle, error) {
	data, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		return 0, fmt.Errorf("display: read texture %s: %w", p, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("display: decode texture %s: %w", p, err)
	}
	r.textures = append(r.textures, ebiten.NewImageFromImage(img))
	return common.TextureHandle(len(r.textures)), nil
}

// Begin sets the target image for the current frame.
func (r *Renderer) Begin(screen *ebiten.Image) {
	r.screen = screen
}

func (r *Renderer) SetDrawColor(red, green, blue, alpha uint8) {
	r.color = color.RGBA{R: red, G: green, B: blue, A: alpha}
}

func (r *Renderer) ClearScreen() {
	if r.screen == nil {
		return
	}
	r.screen.Fill(r.color)
}

// PresentFrame ends the frame. Ebiten shows the screen once Draw returns.
func (r *Renderer) PresentFrame() {
	r.frames++
	r.screen = nil
}

func (r *Renderer) CameraLookAt(x, y int) {
	r.camera.SnapTo(float64(x), float64(y))
}

func (r *Renderer) SetWorldBounds(b common.Rect) {
	r.camera.SetWorldBounds(b)
}

func (r *Renderer) TranslateFromScreenToWorldCoordinates(sx, sy int) common.Point {
	x, y := r.camera.ScreenToWorld(float64(sx), float64(sy))
	return common.Point{X: int(math.Floor(x)), Y: int(math.Floor(y))}
}

// RenderTexture draws the src part of a texture into the world rectangle
// dst, mirrored horizontally when flip is set.
func (r *Renderer) RenderTexture(h common.TextureHandle, src, dst common.Rect, flip common.Flip) {
	if r.screen == nil || !h.Valid() || int(h) > len(r.textures) || src.Width <= 0 || src.Height <= 0 {
		return
	}
	tex := r.textures[h-1]
	sub, ok := tex.SubImage(image.Rect(src.X, src.Y, src.X+src.Width, src.Y+src.Height)).(*ebiten.Image)
	if !ok {
		return
	}

	sx := float64(dst.Width) / float64(src.Width)
	sy := float64(dst.Height) / float64(src.Height)
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	if flip == common.FlipHorizontal {
		op.GeoM.Scale(-sx, sy)
		op.GeoM.Translate(float64(dst.Width), 0)
	} else {
		op.GeoM.Scale(sx, sy)
	}
	x, y := r.camera.WorldToScreen(float64(dst.X), float64(dst.Y))
	op.GeoM.Scale(r.camera.Zoom(), r.camera.Zoom())
	op.GeoM.Translate(x, y)
	r.screen.DrawImage(sub, op)
}
