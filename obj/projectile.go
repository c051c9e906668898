package obj

import (
	"github.com/milk9111/thruster/common"
	"github.com/milk9111/thruster/render"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// ProjectileSize is the side length of the square a projectile draws.
const ProjectileSize = 3

// Projectile is a point entity drifting upward at a constant velocity.
type Projectile struct {
	ctx      render.Context
	position common.Vector2
	velocity common.Vector2
	force    common.Vector2

	// LifeFrames expires the projectile after that many updates. Zero keeps
	// it alive until it leaves the field or forever when culling is off.
	LifeFrames int
	age        int
}

// NewProjectile creates a projectile at (x, y) drawing onto surface.
func NewProjectile(x, y float64, surface render.Surface) (*Projectile, error) {
	if surface == nil {
		return nil, errors.Wrap(render.ErrNoContext, "projectile: nil surface")
	}
	ctx, err := surface.Context()
	if err != nil {
		return nil, errors.Wrap(err, "projectile: acquire context")
	}
	return &Projectile{
		ctx:      ctx,
		position: common.Vec(x, y),
		velocity: common.Vec(0, -1),
	}, nil
}

// Update advances the projectile by its velocity. Accumulated force does
// not affect motion.
func (p *Projectile) Update() {
	if p == nil {
		return
	}
	p.position = p.position.Add(p.velocity)
	p.age++
}

// Render draws a filled square and restores the previous fill colour.
func (p *Projectile) Render() {
	if p == nil || p.ctx == nil {
		return
	}
	prev := p.ctx.FillColor()
	p.ctx.SetFillColor(colornames.White)
	p.ctx.FillRect(p.position.X, p.position.Y, ProjectileSize, ProjectileSize)
	p.ctx.SetFillColor(prev)
}

func (p *Projectile) AddForce(f common.Vector2) {
	p.force.Accumulate(f)
}

func (p *Projectile) Position() common.Vector2 { return p.position }
func (p *Projectile) Velocity() common.Vector2 { return p.velocity }
func (p *Projectile) Force() common.Vector2    { return p.force }
func (p *Projectile) Age() int                 { return p.age }

// Expired reports whether the projectile outlived LifeFrames or no longer
// overlaps a field of the given size.
func (p *Projectile) Expired(fieldW, fieldH float64) bool {
	if p.LifeFrames > 0 && p.age >= p.LifeFrames {
		return true
	}
	return p.position.X+ProjectileSize < 0 ||
		p.position.Y+ProjectileSize < 0 ||
		p.position.X > fieldW ||
		p.position.Y > fieldH
}
