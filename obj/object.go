package obj

import (
	"github.com/milk9111/thruster/common"
	"go.uber.org/zap"
)

// GameObject is the per-frame capability shared by the craft and its
// projectiles.
type GameObject interface {
	Update()
	Render()
	AddForce(f common.Vector2)
}

var (
	_ GameObject = (*Craft)(nil)
	_ GameObject = (*Projectile)(nil)
)

// Diagnostics receives the craft's per-update trace. *zap.Logger satisfies it.
type Diagnostics interface {
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
}

// Sound is a playable handle. *audio.Player satisfies it.
type Sound interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
}

// State is a read-only snapshot of the craft used by force sources.
type State struct {
	Frame        int
	Position     common.Vector2
	Velocity     common.Vector2
	Acceleration common.Vector2
	Size         common.Vector2
	Field        common.Vector2
}
