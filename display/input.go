package display

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const stickDeadZone = 0.3

// Input reads the keyboard, the first gamepad and the mouse. Click
// subscribers are called from Update on the game goroutine.
type Input struct {
	onClick []func(screenX, screenY int)
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) OnClick(fn func(screenX, screenY int)) {
	if fn != nil {
		i.onClick = append(i.onClick, fn)
	}
}

// Update dispatches a left click to the subscribers.
func (i *Input) Update() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	for _, fn := range i.onClick {
		fn(x, y)
	}
}

func (i *Input) IsUpPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) ||
		stick(ebiten.StandardGamepadAxisLeftStickVertical) < -stickDeadZone
}

func (i *Input) IsDownPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) ||
		stick(ebiten.StandardGamepadAxisLeftStickVertical) > stickDeadZone
}

func (i *Input) IsLeftPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) ||
		stick(ebiten.StandardGamepadAxisLeftStickHorizontal) < -stickDeadZone
}

func (i *Input) IsRightPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) ||
		stick(ebiten.StandardGamepadAxisLeftStickHorizontal) > stickDeadZone
}

// stick reads an axis of the first connected gamepad.
func stick(axis ebiten.StandardGamepadAxis) float64 {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return 0
	}
	return ebiten.StandardGamepadAxisValue(ids[0], axis)
}
