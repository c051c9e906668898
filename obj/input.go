package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/thruster/common"
)

const stickDeadZone = 0.3

// Input holds the current thrust and command state polled from the keyboard
// and the first gamepad.
type Input struct {
	// ThrustX/ThrustY are -1, 0 or +1 per axis.
	ThrustX float64
	ThrustY float64
	// FireHeld is true while the fire key or button is held.
	FireHeld bool
	// PausePressed is true on the frame Escape or Start was pressed.
	PausePressed bool
	// RestartPressed is true on the frame R was pressed.
	RestartPressed bool
	// CopyPressed is true on the frame F3 was pressed.
	CopyPressed bool

	// ThrustForce scales a unit thrust into a force.
	ThrustForce float64
}

func NewInput(thrustForce float64) *Input {
	return &Input{ThrustForce: thrustForce}
}

// Update polls the keyboard and gamepad.
func (i *Input) Update() {
	var tx, ty float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		tx -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		tx += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		ty -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		ty += 1
	}

	var gpFire, gpPause bool
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]

		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx < -stickDeadZone {
			tx = -1
		} else if lx > stickDeadZone {
			tx = 1
		}
		if ly < -stickDeadZone {
			ty = -1
		} else if ly > stickDeadZone {
			ty = 1
		}

		gpFire = ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom) ||
			ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		gpPause = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.ThrustX = tx
	i.ThrustY = ty
	i.FireHeld = ebiten.IsKeyPressed(ebiten.KeySpace) || gpFire
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || gpPause
	i.RestartPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.CopyPressed = inpututil.IsKeyJustPressed(ebiten.KeyF3)
}

// Force returns the thrust for this frame.
func (i *Input) Force(State) common.Vector2 {
	return common.Vec(i.ThrustX*i.ThrustForce, i.ThrustY*i.ThrustForce)
}

// Firing reports whether a shot is requested this frame.
func (i *Input) Firing() bool {
	return i.FireHeld
}
