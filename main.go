package main

import (
	"flag"
	"log"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/thruster/logging"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging, including the per-frame craft trace")
	headless := flag.Int("headless", 0, "step N frames without a window, log a summary and exit")
	autopilot := flag.String("autopilot", "", "tengo script under prefabs/scripts that steers the craft")
	sprite := flag.String("sprite", "", "craft sprite image path (overrides craft.yaml)")
	watch := flag.Bool("watch", false, "reload prefabs/ and scripts when they change on disk")
	fire := flag.String("fire", "", "fire mode override: auto or trigger")
	mute := flag.Bool("mute", false, "skip loading the engine sound")
	flag.Parse()

	level := logging.LevelInfo
	if *debug {
		level = logging.LevelDebug
	}
	base, err := logging.New(level)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = base.Sync() }()
	logger := base.With(zap.String("session", uuid.NewString()))

	opts := Options{
		Autopilot: *autopilot,
		Sprite:    *sprite,
		Watch:     *watch,
		Fire:      *fire,
		Mute:      *mute,
	}

	if *headless > 0 {
		if err := runHeadless(*headless, opts, logger); err != nil {
			log.Fatal(err)
		}
		return
	}

	game, err := NewGame(opts, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("thruster")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
