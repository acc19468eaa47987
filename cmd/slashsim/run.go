package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/netview"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/milk9111/slash/prefabs"
	"github.com/milk9111/slash/sim"
	"github.com/milk9111/slash/tui"
	"github.com/sirupsen/logrus"
)

// runner drives a Game at a fixed step and feeds its outer surfaces. Only the
// runner goroutine touches the game.
type runner struct {
	game     *sim.Game
	maxTicks int
	paced    bool

	hub      *netview.Hub
	renderer *tui.Renderer
	watcher  *prefabs.Watcher
	commands chan component.Input

	ticks int
	log   *logrus.Entry
}

func newRunner(game *sim.Game, maxTicks int) *runner {
	return &runner{
		game:     game,
		maxTicks: maxTicks,
		commands: make(chan component.Input, 32),
		log:      logger.For("runner"),
	}
}

func (r *runner) run(ctx context.Context) {
	dt := r.game.Config().DT()
	var tick <-chan time.Time
	if r.paced {
		ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
		defer ticker.Stop()
		tick = ticker.C
	}

	for r.maxTicks <= 0 || r.ticks < r.maxTicks {
		if tick != nil {
			select {
			case <-ctx.Done():
				return
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return
		}

		r.drain()
		r.game.Step(dt)
		r.ticks++
		r.present()
	}
}

// drain applies pending commands and reload requests without blocking.
func (r *runner) drain() {
	for {
		select {
		case cmd := <-r.commands:
			r.game.Command(cmd)
			continue
		default:
		}
		if r.watcher == nil {
			return
		}
		select {
		case name, ok := <-r.watcher.Events:
			if !ok {
				r.watcher = nil
				return
			}
			r.log.WithField("file", name).Info("reloading")
			// A reload keeps the tick budget already spent.
			if err := r.game.Reload(); err == nil {
				r.log.WithField("ticks", r.ticks).Info("reloaded")
			}
		case err, ok := <-r.watcher.Errors:
			if ok {
				r.log.WithError(err).Warn("watch error")
			}
		default:
			return
		}
	}
}

func (r *runner) present() {
	if r.renderer == nil && r.hub == nil {
		return
	}
	snap := r.game.Snapshot()
	if r.renderer != nil {
		r.renderer.Draw(snap)
	}
	if r.hub != nil {
		data, err := json.Marshal(snap)
		if err != nil {
			r.log.WithError(err).Warn("marshal snapshot")
			return
		}
		r.hub.Publish(data)
	}
}

func (r *runner) report() {
	hud := r.game.Overlay().Copy()
	r.log.WithFields(logrus.Fields{
		"ticks":         r.game.World().Tick(),
		"player_dead":   r.game.PlayerDead(),
		"enemies_alive": r.game.EnemiesAlive(),
		"gold":          hud.Gold,
		"souls":         hud.Souls,
		"health":        hud.HealthPercent,
	}).Info("simulation finished")
}
