package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/thruster/assets"
	"github.com/milk9111/thruster/common"
	"github.com/milk9111/thruster/logging"
	"github.com/milk9111/thruster/obj"
	"github.com/milk9111/thruster/prefabs"
	"github.com/milk9111/thruster/render"
	"github.com/milk9111/thruster/system"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

// Options carries the command-line choices shared by the windowed and
// headless runs.
type Options struct {
	Autopilot string
	Sprite    string
	Watch     bool
	Fire      string
	Mute      bool
}

type Game struct {
	frames int
	paused bool
	quit   bool

	opts Options
	log  *logging.Logger

	surface    *render.EbitenSurface
	background color.Color
	spec       *prefabs.CraftSpec
	sprite     image.Image
	engine     obj.Sound

	input     *obj.Input
	autopilot *system.Autopilot
	world     *system.World

	pauseUI     *ebitenui.UI
	watcher     *prefabs.Watcher
	clipboardOK bool
}

func NewGame(opts Options, log *logging.Logger) (*Game, error) {
	field, err := prefabs.LoadFieldSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:       opts,
		log:        log,
		surface:    render.NewEbitenSurface(fieldSize(field)),
		background: colornames.Black,
	}
	if field.Background != nil {
		g.background = field.Background.Color
	}

	if g.spec, err = loadCraftSpec(opts.Fire); err != nil {
		return nil, err
	}
	g.sprite = loadSprite(g.spec, opts.Sprite, log)
	if !opts.Mute {
		g.engine = loadEngineSound(g.spec, log)
	}

	craft, err := system.BuildCraft(g.spec, g.sprite, g.surface, g.engine, log.Named("craft"))
	if err != nil {
		return nil, err
	}

	g.input = obj.NewInput(g.spec.ThrustForce)
	g.world = system.NewWorld(craft, g.input)

	if opts.Autopilot != "" {
		if g.autopilot, err = system.NewAutopilot(opts.Autopilot, log.Named("autopilot")); err != nil {
			return nil, err
		}
		g.world.AddSource(g.autopilot)
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Warn("prefab watch disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Info("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboardOK = true
	}

	g.pauseUI = NewPauseUI(g)

	log.Info("game started",
		zap.Int("field_width", g.surface.Width()),
		zap.Int("field_height", g.surface.Height()),
		zap.Stringer("position", craft.Position()),
		zap.String("fire_mode", g.spec.Fire.Mode),
		zap.String("autopilot", opts.Autopilot),
	)
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	g.input.Update()
	if g.input.PausePressed {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.input.RestartPressed {
		g.restart()
	}
	if g.input.CopyPressed {
		g.copyTelemetry()
	}
	g.applyReloads()

	g.world.Step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Begin(g.background)
	g.world.Render()
	g.surface.Present(screen)

	craft := g.world.Craft
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f    projectiles: %d\n%s",
		ebiten.ActualFPS(), craft.ProjectileCount(), craft.Telemetry()))

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.surface.Width(), g.surface.Height()
}

// Close releases the watcher and the canvas.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.surface.Dispose()
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if paused && g.engine != nil {
		g.engine.Pause()
	}
	g.log.Info("pause", zap.Bool("paused", paused), zap.Int("frame", g.frames))
}

// restart rebuilds the craft at its spawn point with the current spec.
func (g *Game) restart() {
	craft, err := system.BuildCraft(g.spec, g.sprite, g.surface, g.engine, g.log.Named("craft"))
	if err != nil {
		g.log.Error("restart failed", zap.Error(err))
		return
	}
	g.world.SetCraft(craft)
	g.log.Info("craft restarted", zap.Stringer("position", craft.Position()))
}

func (g *Game) copyTelemetry() {
	line := g.world.Craft.Telemetry()
	if !g.clipboardOK {
		g.log.Info(line)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(line))
	g.log.Info("telemetry copied", zap.String("line", line))
}

func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.log.Warn("prefab watch", zap.Error(err))
		}
	default:
	}

	for _, name := range g.watcher.Drain() {
		switch {
		case name == prefabs.CraftFile:
			g.reloadCraft()
		case g.autopilot != nil && prefabs.Name(prefabs.Dir+"/scripts/"+g.autopilot.Script()) == name:
			g.reloadAutopilot()
		default:
			g.log.Debug("prefab change ignored", zap.String("name", name))
		}
	}
}

func (g *Game) reloadCraft() {
	spec, err := loadCraftSpec(g.opts.Fire)
	if err != nil {
		g.log.Warn("reload craft spec", zap.Error(err))
		return
	}
	craft, err := system.RebuildCraft(g.world.Craft, spec, g.sprite, g.surface, g.engine, g.log.Named("craft"))
	if err != nil {
		g.log.Warn("rebuild craft", zap.Error(err))
		return
	}
	g.spec = spec
	g.input.ThrustForce = spec.ThrustForce
	g.world.SetCraft(craft)
	g.log.Info("craft reloaded", zap.Float64("mass", craft.Mass()), zap.String("fire_mode", spec.Fire.Mode))
}

func (g *Game) reloadAutopilot() {
	ap, err := system.NewAutopilot(g.autopilot.Script(), g.log.Named("autopilot"))
	if err != nil {
		g.log.Warn("reload autopilot", zap.Error(err))
		return
	}
	g.world.ReplaceSource(g.autopilot, ap)
	g.autopilot = ap
	g.log.Info("autopilot reloaded", zap.String("script", ap.Script()))
}

// fieldSize falls back to the base resolution for unset dimensions.
func fieldSize(field *prefabs.FieldSpec) (int, int) {
	w, h := field.Width, field.Height
	if w <= 0 {
		w = common.BaseWidth
	}
	if h <= 0 {
		h = common.BaseHeight
	}
	return w, h
}

func loadCraftSpec(fire string) (*prefabs.CraftSpec, error) {
	spec, err := prefabs.LoadCraftSpec()
	if err != nil {
		return nil, err
	}
	if fire != "" {
		spec.Fire.Mode = fire
	}
	return spec, nil
}

func loadSprite(spec *prefabs.CraftSpec, override string, log *logging.Logger) image.Image {
	path := spec.Sprite.Image
	if override != "" {
		path = override
	}
	w, h := int(spec.Size.Width), int(spec.Size.Height)
	img, err := assets.LoadImageOrPlaceholder(path, w, h)
	if err != nil {
		log.Warn("craft sprite missing, using placeholder", zap.String("path", path), zap.Error(err))
	}
	return img
}

func loadEngineSound(spec *prefabs.CraftSpec, log *logging.Logger) obj.Sound {
	a, ok := spec.AudioByName(spec.EngineSound.Audio)
	if !ok {
		return nil
	}
	player, err := assets.LoadAudioPlayer(a.File, a.Volume)
	if err != nil {
		log.Warn("engine sound unavailable", zap.String("file", a.File), zap.Error(err))
		return nil
	}
	return player
}
