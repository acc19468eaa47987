package sim

import (
	"fmt"
	"math/rand"

	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/ecs/entity"
	"github.com/milk9111/slash/ecs/system"
	"github.com/milk9111/slash/hud"
	"github.com/milk9111/slash/levels"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/milk9111/slash/prefabs"
	"github.com/sirupsen/logrus"
)

const effectHistory = 32

// Game owns one simulated level: the world, its systems in frame order and
// the HUD sink.
type Game struct {
	cfg Config

	world   *ecs.World
	level   *levels.Level
	loaded  *entity.LoadedLevel
	overlay *hud.PlayerOverlay
	script  *system.ScriptHooks
	physics *system.PhysicsSystem
	player  *system.PlayerSystem

	effects []system.Effect
	log     *logrus.Entry
}

// New loads the configured level and wires a fresh world for it.
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{cfg: cfg, log: logger.For("sim")}
	if err := g.build(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) build() error {
	lvl, err := levels.LoadLevel(g.cfg.Level)
	if err != nil {
		return err
	}
	hooks, script, err := loadHooks(g.cfg)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	w.SetRand(rand.New(rand.NewSource(g.cfg.Seed)))
	overlay := hud.NewPlayerOverlay()
	router := system.NewCombatRouter(hooks, overlay)
	physics := system.NewPhysicsSystem()
	player := system.NewPlayerSystem(router)

	w.AddSystem(player)
	w.AddSystem(system.NewTimerSystem())
	w.AddSystem(system.NewMontageSystem())
	w.AddSystem(system.NewPerceptionSystem(physics))
	w.AddSystem(system.NewDispatchSystem())
	w.AddSystem(system.NewEnemySystem(router))
	w.AddSystem(system.NewNavigationSystem())
	w.AddSystem(physics)
	w.AddSystem(system.NewDispatchSystem())
	w.AddSystem(system.NewWeaponSystem(router, physics))
	w.AddSystem(system.NewPickupSystem(router, player))
	w.AddSystem(system.NewBreakableSystem(router))
	w.AddSystem(system.NewLifespanSystem())
	w.AddSystem(system.NewHUDSystem(overlay))
	w.AddSystem(system.NewDispatchSystem())

	loaded, err := entity.LoadLevelToWorld(w, lvl)
	if err != nil {
		return err
	}
	grid := system.BuildNavGrid(w, lvl.Bounds.MinX, lvl.Bounds.MinY, lvl.Bounds.Width, lvl.Bounds.Height, lvl.CellSize)
	if err := ecs.Add(w, loaded.Level, component.NavGridComponent.Kind(), grid); err != nil {
		return fmt.Errorf("sim: add nav grid: %w", err)
	}

	g.world = w
	g.level = lvl
	g.loaded = loaded
	g.overlay = overlay
	g.script = script
	g.physics = physics
	g.player = player
	g.effects = nil

	g.log.WithFields(logrus.Fields{
		"level":   lvl.Name,
		"seed":    g.cfg.Seed,
		"enemies": len(loaded.Enemies),
		"grid":    fmt.Sprintf("%dx%d", grid.Width, grid.Height),
	}).Info("level loaded")
	return nil
}

func loadHooks(cfg Config) (system.Hooks, *system.ScriptHooks, error) {
	if cfg.NoScripts {
		return system.NopHooks{}, nil, nil
	}
	name := cfg.Script
	if name == "" {
		spec, err := prefabs.LoadHooksSpec()
		if err != nil {
			return nil, nil, fmt.Errorf("sim: %w", err)
		}
		name = spec.Script
	}
	script, err := system.NewScriptHooks(name)
	if err != nil {
		return nil, nil, fmt.Errorf("sim: %w", err)
	}
	return script, script, nil
}

// Reload rebuilds the world from the level and prefabs on disk. The running
// world is kept when the rebuild fails.
func (g *Game) Reload() error {
	prev := *g
	if err := g.build(); err != nil {
		*g = prev
		g.log.WithError(err).Warn("reload failed")
		return err
	}
	return nil
}

// Step advances the simulation by dt seconds.
func (g *Game) Step(dt float64) {
	if g == nil || g.world == nil {
		return
	}
	g.world.Step(dt)
	if g.script != nil {
		g.effects = append(g.effects, g.script.Drain()...)
		if n := len(g.effects); n > effectHistory {
			g.effects = append([]system.Effect(nil), g.effects[n-effectHistory:]...)
		}
	}
}

// Command merges player commands into the pending input. Axes replace the
// previous values and pressed flags stay set until the player consumes them.
func (g *Game) Command(cmd component.Input) {
	in, ok := ecs.Get(g.world, g.loaded.Player, component.InputComponent.Kind())
	if !ok {
		return
	}
	in.MoveX, in.MoveY, in.Look = cmd.MoveX, cmd.MoveY, cmd.Look
	in.Jump = in.Jump || cmd.Jump
	in.Attack = in.Attack || cmd.Attack
	in.Dodge = in.Dodge || cmd.Dodge
	in.Interact = in.Interact || cmd.Interact
}

func (g *Game) Config() Config              { return g.cfg }
func (g *Game) World() *ecs.World           { return g.world }
func (g *Game) Level() *levels.Level        { return g.level }
func (g *Game) Player() ecs.Entity          { return g.loaded.Player }
func (g *Game) Enemies() []ecs.Entity       { return g.loaded.Enemies }
func (g *Game) Overlay() *hud.PlayerOverlay { return g.overlay }

// Effects returns the most recent presentation effects emitted by hooks.
func (g *Game) Effects() []system.Effect {
	return append([]system.Effect(nil), g.effects...)
}

// PlayerDead reports whether the player has died.
func (g *Game) PlayerDead() bool {
	return system.IsDead(g.world, g.loaded.Player)
}

// EnemiesAlive counts enemies that are not dead.
func (g *Game) EnemiesAlive() int {
	n := 0
	for _, e := range g.loaded.Enemies {
		if ecs.IsAlive(g.world, e) && !system.IsDead(g.world, e) {
			n++
		}
	}
	return n
}
