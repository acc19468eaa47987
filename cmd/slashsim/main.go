package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/netview"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/milk9111/slash/prefabs"
	"github.com/milk9111/slash/sim"
	"github.com/milk9111/slash/tui"
	"github.com/sirupsen/logrus"
)

func main() {
	levelName := flag.String("level", sim.DefaultLevel, "level name in levels/ (basename, .yaml optional)")
	seed := flag.Int64("seed", 1, "random seed")
	tps := flag.Int("tps", sim.DefaultTPS, "simulation ticks per second")
	ticks := flag.Int("ticks", 0, "stop after this many ticks (0 runs until interrupted)")
	serve := flag.String("serve", "", "stream snapshots to websocket spectators on this address, e.g. :8080")
	useTUI := flag.Bool("tui", false, "draw the simulation in the terminal and read player keys")
	debug := flag.Bool("debug", false, "enable debug logging")
	watch := flag.Bool("watch", false, "rebuild the level when prefabs, levels or scripts change on disk")
	noScripts := flag.Bool("noscripts", false, "run without hook scripts")
	logFile := flag.String("logfile", "", "write logs to this file instead of stdout")
	schema := flag.Bool("schema", false, "print the JSON schema of streamed snapshots and exit")
	flag.Parse()

	if *schema {
		data, err := sim.MarshalSnapshotSchema()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	logger.Init()
	log := logger.L()
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}
	switch {
	case *logFile != "":
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.WithError(err).Fatal("open log file")
		}
		defer f.Close()
		log.SetOutput(f)
	case *useTUI:
		log.SetOutput(io.Discard)
	}

	cfg := sim.DefaultConfig()
	cfg.Level = *levelName
	cfg.Seed = *seed
	cfg.TPS = *tps
	cfg.NoScripts = *noScripts

	game, err := sim.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("start simulation")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := newRunner(game, *ticks)
	r.paced = *serve != "" || *useTUI

	if *serve != "" {
		r.hub = netview.NewHub()
		if data, err := sim.MarshalSnapshotSchema(); err == nil {
			r.hub.SetSchema(data)
		}
		srv := &http.Server{Addr: *serve, Handler: r.hub.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("spectator server")
				stop()
			}
		}()
		defer srv.Close()
		defer r.hub.Close()
		log.WithField("addr", *serve).Info("streaming snapshots")
	}

	if *watch {
		watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts", "levels")
		if err != nil {
			log.WithError(err).Warn("watch disabled")
		} else {
			defer watcher.Close()
			r.watcher = watcher
		}
	}

	if *useTUI {
		screen, err := tcell.NewScreen()
		if err != nil {
			log.WithError(err).Fatal("open terminal")
		}
		if err := screen.Init(); err != nil {
			log.WithError(err).Fatal("init terminal")
		}
		defer screen.Fini()
		r.renderer = tui.NewRenderer(screen)
		go pollKeys(screen, r.commands, stop)
	}

	r.run(ctx)
	r.report()
}

// pollKeys forwards terminal key presses as player commands until quit.
func pollKeys(screen tcell.Screen, commands chan<- component.Input, stop context.CancelFunc) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			cmd, quit := tui.KeyToCommand(ev)
			if quit {
				stop()
				return
			}
			select {
			case commands <- cmd:
			default:
			}
		}
	}
}
