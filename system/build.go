package system

import (
	"image"

	"github.com/milk9111/thruster/common"
	"github.com/milk9111/thruster/obj"
	"github.com/milk9111/thruster/prefabs"
	"github.com/milk9111/thruster/render"
	"github.com/pkg/errors"
)

// ErrUnknownFireMode is returned for a fire mode other than auto or trigger.
var ErrUnknownFireMode = errors.New("system: unknown fire mode")

// CraftConfig converts a craft prefab into the craft's configuration.
func CraftConfig(spec *prefabs.CraftSpec) (obj.CraftConfig, error) {
	cfg := obj.DefaultCraftConfig()
	if spec == nil {
		return cfg, nil
	}

	if spec.Mass != 0 {
		cfg.Mass = spec.Mass
	}
	if spec.Size.Width > 0 && spec.Size.Height > 0 {
		cfg.Size = common.Vec(spec.Size.Width, spec.Size.Height)
	}

	switch obj.FireMode(spec.Fire.Mode) {
	case "", obj.FireAuto:
		cfg.FireMode = obj.FireAuto
	case obj.FireTrigger:
		cfg.FireMode = obj.FireTrigger
	default:
		return cfg, errors.Wrapf(ErrUnknownFireMode, "%q", spec.Fire.Mode)
	}
	cfg.CooldownFrames = spec.Fire.CooldownFrames

	cfg.MaxProjectiles = spec.Projectile.Max
	cfg.CullProjectiles = spec.Projectile.Cull
	cfg.ProjectileLifeFrames = spec.Projectile.LifeFrames
	cfg.EngineSoundSpeed = spec.EngineSound.Speed
	return cfg, nil
}

// SpawnPoint places a body of the given size inside surface using the
// prefab's fractional spawn coordinates.
func SpawnPoint(spec *prefabs.CraftSpec, size common.Vector2, surface render.Surface) common.Vector2 {
	fx, fy := 0.5, 1.0
	if spec != nil {
		fx, fy = spec.Spawn.X, spec.Spawn.Y
	}
	freeW := float64(surface.Width()) - size.X
	freeH := float64(surface.Height()) - size.Y
	return common.Vec(freeW*fx, freeH*fy)
}

// BuildCraft creates a craft from spec at its spawn point.
func BuildCraft(spec *prefabs.CraftSpec, sprite image.Image, surface render.Surface, sound obj.Sound, diag obj.Diagnostics) (*obj.Craft, error) {
	cfg, err := CraftConfig(spec)
	if err != nil {
		return nil, err
	}
	cfg.EngineSound = sound
	cfg.Diagnostics = diag

	if surface == nil {
		return nil, errors.Wrap(render.ErrNoContext, "system: nil surface")
	}
	at := SpawnPoint(spec, cfg.Size, surface)
	return obj.NewCraftWithConfig(at.X, at.Y, sprite, surface, cfg)
}

// RebuildCraft replaces old with a craft built from spec at old's position.
func RebuildCraft(old *obj.Craft, spec *prefabs.CraftSpec, sprite image.Image, surface render.Surface, sound obj.Sound, diag obj.Diagnostics) (*obj.Craft, error) {
	if old == nil {
		return BuildCraft(spec, sprite, surface, sound, diag)
	}
	cfg, err := CraftConfig(spec)
	if err != nil {
		return nil, err
	}
	cfg.EngineSound = sound
	cfg.Diagnostics = diag

	at := old.Position()
	return obj.NewCraftWithConfig(at.X, at.Y, sprite, surface, cfg)
}
