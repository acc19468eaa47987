package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/milk9111/slash/sim"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := sim.DefaultConfig()
	flag.StringVar(&cfg.Level, "level", cfg.Level, "level name in levels/ (basename, .yaml optional)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flag.BoolVar(&cfg.NoScripts, "noscripts", false, "run without gameplay hook scripts")
	debug := flag.Bool("debug", false, "enable debug mode")
	watch := flag.Bool("watch", false, "reload when prefabs, scripts or levels change")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	logger.Init()
	if *debug {
		logger.L().SetLevel(logrus.DebugLevel)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	cfg.TPS = ebiten.DefaultTPS
	game, err := NewGame(cfg, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("slash")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
