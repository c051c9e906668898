package obj

import (
	"fmt"
	"image"

	"github.com/milk9111/thruster/common"
	"github.com/milk9111/thruster/render"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrInvalidMass is returned when a craft is configured with a mass that is
// not a positive finite number.
var ErrInvalidMass = errors.New("craft: mass must be positive and finite")

// FireMode selects when the craft spawns projectiles.
type FireMode string

const (
	// FireAuto spawns one projectile on every update.
	FireAuto FireMode = "auto"
	// FireTrigger spawns only on updates where Fire was called and the
	// cooldown has elapsed.
	FireTrigger FireMode = "trigger"
)

const (
	defaultMass = 5.0
	defaultSize = 25.0
)

// CraftConfig holds the tunables of a craft. The zero value of every optional
// field keeps the plain behaviour: auto fire, unbounded projectiles, silent engine.
type CraftConfig struct {
	Mass float64
	Size common.Vector2

	FireMode       FireMode
	CooldownFrames int

	// MaxProjectiles evicts the oldest projectile once reached. Zero is unbounded.
	MaxProjectiles int
	// CullProjectiles removes projectiles once they expire.
	CullProjectiles      bool
	ProjectileLifeFrames int

	// EngineSound plays while the craft's speed exceeds EngineSoundSpeed.
	// A zero speed leaves the sound untouched.
	EngineSound      Sound
	EngineSoundSpeed float64

	Diagnostics Diagnostics
}

// DefaultCraftConfig returns mass 5, a 25x25 body and auto fire.
func DefaultCraftConfig() CraftConfig {
	return CraftConfig{
		Mass:     defaultMass,
		Size:     common.Vec(defaultSize, defaultSize),
		FireMode: FireAuto,
	}
}

// Craft is the player entity. It integrates accumulated forces, stays inside
// the surface bounds and owns the projectiles it fires.
type Craft struct {
	sprite  image.Image
	surface render.Surface
	ctx     render.Context

	position     common.Vector2
	velocity     common.Vector2
	acceleration common.Vector2
	force        common.Vector2
	mass         float64
	size         common.Vector2

	projectiles []*Projectile

	cfg      CraftConfig
	diag     Diagnostics
	frame    int
	firing   bool
	cooldown int
}

// NewCraft creates a craft at (x, y) with the default configuration.
func NewCraft(x, y float64, sprite image.Image, surface render.Surface) (*Craft, error) {
	return NewCraftWithConfig(x, y, sprite, surface, DefaultCraftConfig())
}

// NewCraftWithConfig creates a craft at (x, y) using cfg. Zero Size falls back
// to the default body size and an empty FireMode to FireAuto.
func NewCraftWithConfig(x, y float64, sprite image.Image, surface render.Surface, cfg CraftConfig) (*Craft, error) {
	if cfg.Mass <= 0 || !common.Finite(cfg.Mass) {
		return nil, errors.Wrapf(ErrInvalidMass, "got %v", cfg.Mass)
	}
	if cfg.Size == (common.Vector2{}) {
		cfg.Size = common.Vec(defaultSize, defaultSize)
	}
	if cfg.FireMode == "" {
		cfg.FireMode = FireAuto
	}
	if surface == nil {
		return nil, errors.Wrap(render.ErrNoContext, "craft: nil surface")
	}
	ctx, err := surface.Context()
	if err != nil {
		return nil, errors.Wrap(err, "craft: acquire context")
	}

	var diag Diagnostics = zap.NewNop()
	if cfg.Diagnostics != nil {
		diag = cfg.Diagnostics
	}

	return &Craft{
		sprite:   sprite,
		surface:  surface,
		ctx:      ctx,
		position: common.Vec(x, y),
		mass:     cfg.Mass,
		size:     cfg.Size,
		cfg:      cfg,
		diag:     diag,
	}, nil
}

func (c *Craft) Position() common.Vector2     { return c.position }
func (c *Craft) Size() common.Vector2         { return c.size }
func (c *Craft) Velocity() common.Vector2     { return c.velocity }
func (c *Craft) Acceleration() common.Vector2 { return c.acceleration }
func (c *Craft) Force() common.Vector2        { return c.force }
func (c *Craft) Mass() float64                { return c.mass }
func (c *Craft) Frame() int                   { return c.frame }

// Projectiles returns the owned projectiles in spawn order. The slice is a
// copy; the projectiles are not.
func (c *Craft) Projectiles() []*Projectile {
	out := make([]*Projectile, len(c.projectiles))
	copy(out, c.projectiles)
	return out
}

// ProjectileCount returns the number of owned projectiles.
func (c *Craft) ProjectileCount() int {
	return len(c.projectiles)
}

// AddForce accumulates f for the next update.
func (c *Craft) AddForce(f common.Vector2) {
	c.force.Accumulate(f)
}

// Fire requests a shot on the next update. Only used in FireTrigger mode.
func (c *Craft) Fire() {
	c.firing = true
}

// State snapshots the craft for force sources.
func (c *Craft) State() State {
	return State{
		Frame:        c.frame,
		Position:     c.position,
		Velocity:     c.velocity,
		Acceleration: c.acceleration,
		Size:         c.size,
		Field:        c.field(),
	}
}

// Telemetry formats the latest kinematic state as a single line.
func (c *Craft) Telemetry() string {
	return fmt.Sprintf("craft: [position=%s, velocity=%s, acceleration=%s]", c.position, c.velocity, c.acceleration)
}

// Update advances the craft by one frame. The order is fixed: acceleration is
// derived from this frame's force before drag halves it, and projectiles spawn
// from the clamped position.
func (c *Craft) Update() {
	c.frame++

	c.acceleration = c.force.Div(c.mass)
	c.position = c.position.Add(c.velocity)
	c.velocity.Accumulate(c.acceleration)

	c.force = c.force.Div(2) // drag

	field := c.field()
	if c.position.Clamp(common.Vector2{}, common.Vec(field.X-c.size.X, field.Y-c.size.Y)) {
		c.velocity.Clear()
		c.force.Clear()
		c.acceleration.Clear()
	}

	c.updateEngineSound()

	c.diag.Debug("craft update",
		zap.Int("frame", c.frame),
		zap.Stringer("position", c.position),
		zap.Stringer("velocity", c.velocity),
		zap.Stringer("acceleration", c.acceleration),
	)

	spawned := c.shoot()

	// a projectile starts moving on the frame after it spawns
	for _, p := range c.projectiles {
		if p != spawned {
			p.Update()
		}
	}

	if c.cfg.CullProjectiles {
		c.cullProjectiles(field)
	}
}

// Render draws the sprite scaled to the craft's size, then every projectile
// in spawn order.
func (c *Craft) Render() {
	if c.sprite != nil {
		c.ctx.DrawImage(c.sprite, c.position.X, c.position.Y, c.size.X, c.size.Y)
	}
	for _, p := range c.projectiles {
		p.Render()
	}
}

func (c *Craft) field() common.Vector2 {
	return common.Vec(float64(c.surface.Width()), float64(c.surface.Height()))
}

func (c *Craft) shoot() *Projectile {
	firing := c.firing
	c.firing = false

	if c.cfg.FireMode == FireTrigger {
		if c.cooldown > 0 {
			c.cooldown--
			return nil
		}
		if !firing {
			return nil
		}
		c.cooldown = c.cfg.CooldownFrames
	}

	p, err := NewProjectile(c.position.X+c.size.X/2, c.position.Y, c.surface)
	if err != nil {
		c.diag.Warn("craft: spawn projectile", zap.Error(err))
		return nil
	}
	p.LifeFrames = c.cfg.ProjectileLifeFrames

	if c.cfg.MaxProjectiles > 0 && len(c.projectiles) >= c.cfg.MaxProjectiles {
		n := len(c.projectiles) - c.cfg.MaxProjectiles + 1
		c.projectiles = append(c.projectiles[:0], c.projectiles[n:]...)
	}
	c.projectiles = append(c.projectiles, p)
	return p
}

func (c *Craft) cullProjectiles(field common.Vector2) {
	writeIdx := 0
	for _, p := range c.projectiles {
		if p.Expired(field.X, field.Y) {
			continue
		}
		c.projectiles[writeIdx] = p
		writeIdx++
	}
	clear(c.projectiles[writeIdx:])
	c.projectiles = c.projectiles[:writeIdx]
}

func (c *Craft) updateEngineSound() {
	snd := c.cfg.EngineSound
	if snd == nil || c.cfg.EngineSoundSpeed <= 0 {
		return
	}
	if c.velocity.Len() > c.cfg.EngineSoundSpeed {
		if !snd.IsPlaying() {
			snd.Play()
		}
		return
	}
	if snd.IsPlaying() {
		snd.Pause()
		if err := snd.Rewind(); err != nil {
			c.diag.Warn("craft: rewind engine sound", zap.Error(err))
		}
	}
}
