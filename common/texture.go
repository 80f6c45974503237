package common

// TextureHandle is an opaque reference to an image registered with a
// renderer. The zero value means no texture.
type TextureHandle int

func (h TextureHandle) Valid() bool {
	return h > 0
}

// Flip selects a draw-time mirroring of a texture.
type Flip uint8

const (
	FlipNone Flip = iota
	FlipHorizontal
)
