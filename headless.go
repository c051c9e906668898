package main

import (
	"github.com/milk9111/thruster/logging"
	"github.com/milk9111/thruster/prefabs"
	"github.com/milk9111/thruster/render"
	"github.com/milk9111/thruster/system"
	"go.uber.org/zap"
)

// runHeadless steps the world for frames frames against a recording surface.
// Without an autopilot the craft coasts and fires in place.
func runHeadless(frames int, opts Options, log *logging.Logger) error {
	field, err := prefabs.LoadFieldSpec()
	if err != nil {
		return err
	}
	rec := render.NewRecorder(fieldSize(field))

	spec, err := loadCraftSpec(opts.Fire)
	if err != nil {
		return err
	}
	sprite := loadSprite(spec, opts.Sprite, log)

	craft, err := system.BuildCraft(spec, sprite, rec, nil, log.Named("craft"))
	if err != nil {
		return err
	}
	world := system.NewWorld(craft)

	if opts.Autopilot != "" {
		ap, err := system.NewAutopilot(opts.Autopilot, log.Named("autopilot"))
		if err != nil {
			return err
		}
		world.AddSource(ap)
	}

	for i := 0; i < frames; i++ {
		world.Step()
		rec.Reset()
		world.Render()
	}

	log.Info("headless run complete",
		zap.Int("frames", world.Frames()),
		zap.Stringer("position", craft.Position()),
		zap.Stringer("velocity", craft.Velocity()),
		zap.Int("projectiles", craft.ProjectileCount()),
		zap.Int("draw_calls", len(rec.Calls())),
	)
	return nil
}
