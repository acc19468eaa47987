package main

import (
	"context"
	"testing"

	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/prefabs"
	"github.com/milk9111/slash/sim"
)

func TestRunnerStopsAfterTicks(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Level = "duel"
	game, err := sim.New(cfg)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	r := newRunner(game, 30)
	r.commands <- component.Input{Dodge: true}
	r.run(context.Background())

	if got := game.World().Tick(); got != 30 {
		t.Fatalf("ticks = %d, want 30", got)
	}
	attrs, ok := ecs.Get(game.World(), game.Player(), component.AttributesComponent.Kind())
	if !ok {
		t.Fatalf("player has no attributes")
	}
	if attrs.Stamina >= attrs.MaxStamina {
		t.Fatalf("queued dodge was not applied, stamina %v", attrs.Stamina)
	}
}

func TestRunnerHonoursCancel(t *testing.T) {
	game, err := sim.New(sim.DefaultConfig())
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	newRunner(game, 0).run(ctx)
	if got := game.World().Tick(); got != 0 {
		t.Fatalf("cancelled runner stepped %d ticks", got)
	}
}

func TestReloadKeepsTickBudget(t *testing.T) {
	game, err := sim.New(sim.DefaultConfig())
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	r := newRunner(game, 20)
	r.watcher = &prefabs.Watcher{Events: make(chan string, 1), Errors: make(chan error, 1)}
	r.ticks = 10
	r.watcher.Events <- "prefabs/enemy.yaml"
	r.drain()

	if r.ticks != 10 {
		t.Fatalf("reload reset the tick budget to %d", r.ticks)
	}
	r.run(context.Background())
	if r.ticks != 20 {
		t.Fatalf("runner stopped at %d ticks, want 20", r.ticks)
	}
}
