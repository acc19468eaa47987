package sim

import (
	"encoding/json"

	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/ecs/system"
	"github.com/milk9111/slash/hud"
)

// Snapshot is a detached view of the world for viewers and spectators.
type Snapshot struct {
	Tick       uint64            `json:"tick"`
	Time       float64           `json:"time"`
	Level      string            `json:"level"`
	Bounds     BoundsView        `json:"bounds"`
	Player     *PlayerView       `json:"player,omitempty"`
	Enemies    []EnemyView       `json:"enemies"`
	Items      []ItemView        `json:"items"`
	Breakables []BreakableView   `json:"breakables"`
	Obstacles  []ObstacleView    `json:"obstacles"`
	HUD        hud.PlayerOverlay `json:"hud"`
	Effects    []system.Effect   `json:"effects,omitempty"`
}

type BoundsView struct {
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ActorView struct {
	Entity  uint64  `json:"entity"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	Yaw     float64 `json:"yaw"`
	Radius  float64 `json:"radius"`
	Health  float64 `json:"health"`
	Max     float64 `json:"max_health"`
	Montage string  `json:"montage,omitempty"`
	Section string  `json:"section,omitempty"`
}

type PlayerView struct {
	ActorView
	Action  string  `json:"action"`
	State   string  `json:"state"`
	Stamina float64 `json:"stamina"`
	Gold    int     `json:"gold"`
	Souls   int     `json:"souls"`
	Weapon  uint64  `json:"weapon,omitempty"`
	Item    uint64  `json:"overlapping_item,omitempty"`
}

type EnemyView struct {
	ActorView
	State  string `json:"state"`
	Target uint64 `json:"target,omitempty"`
	Patrol uint64 `json:"patrol_target,omitempty"`
	Bar    bool   `json:"bar_visible"`
}

type ItemView struct {
	Entity   uint64  `json:"entity"`
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Yaw      float64 `json:"yaw"`
	Equipped bool    `json:"equipped"`
	Live     bool    `json:"live,omitempty"`
}

type BreakableView struct {
	Entity uint64  `json:"entity"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Broken bool    `json:"broken"`
}

type ObstacleView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Snapshot captures the current tick.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	snap := Snapshot{
		Tick:    w.Tick(),
		Time:    w.Time(),
		Level:   g.level.Name,
		HUD:     g.overlay.Copy(),
		Effects: g.Effects(),
		Bounds: BoundsView{
			MinX:   g.level.Bounds.MinX,
			MinY:   g.level.Bounds.MinY,
			Width:  g.level.Bounds.Width,
			Height: g.level.Bounds.Height,
		},
	}

	if p, ok := ecs.Get(w, g.loaded.Player, component.PlayerComponent.Kind()); ok {
		view := &PlayerView{
			ActorView: actorView(w, g.loaded.Player),
			Action:    p.Action.String(),
			State:     p.State.String(),
			Item:      p.OverlappingItem,
		}
		if attrs, ok := ecs.Get(w, g.loaded.Player, component.AttributesComponent.Kind()); ok {
			view.Stamina = attrs.Stamina
			view.Gold = attrs.Gold
			view.Souls = attrs.Souls
		}
		if weapon, ok := system.EquippedWeapon(w, g.loaded.Player); ok {
			view.Weapon = uint64(weapon)
		}
		snap.Player = view
	}

	ecs.ForEach(w, component.EnemyComponent.Kind(), func(e ecs.Entity, en *component.Enemy) {
		view := EnemyView{
			ActorView: actorView(w, e),
			State:     en.State.String(),
			Target:    en.CombatTarget,
			Patrol:    en.PatrolTarget,
		}
		if bar, ok := ecs.Get(w, e, component.HealthBarComponent.Kind()); ok {
			view.Bar = bar.Visible
		}
		snap.Enemies = append(snap.Enemies, view)
	})

	ecs.ForEach2(w, component.ItemComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, item *component.Item, t *component.Transform) {
		view := ItemView{
			Entity:   uint64(e),
			Kind:     item.Kind.String(),
			X:        t.Position.X,
			Y:        t.Position.Y,
			Z:        t.Position.Z,
			Yaw:      t.Yaw,
			Equipped: item.State == component.ItemEquipped,
		}
		if wc, ok := ecs.Get(w, e, component.WeaponComponent.Kind()); ok {
			view.Live = wc.CollisionEnabled
		}
		snap.Items = append(snap.Items, view)
	})

	ecs.ForEach2(w, component.BreakableComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Breakable, t *component.Transform) {
		view := BreakableView{Entity: uint64(e), X: t.Position.X, Y: t.Position.Y, Broken: b.Broken}
		if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			view.Radius = pb.Radius
		}
		snap.Breakables = append(snap.Breakables, view)
	})

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if !pb.Static || pb.Kind != component.ShapeBox {
			return
		}
		snap.Obstacles = append(snap.Obstacles, ObstacleView{X: t.Position.X, Y: t.Position.Y, Width: pb.Width, Height: pb.Height})
	})
	return snap
}

func actorView(w *ecs.World, e ecs.Entity) ActorView {
	view := ActorView{Entity: uint64(e)}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		view.X, view.Y, view.Z, view.Yaw = t.Position.X, t.Position.Y, t.Position.Z, t.Yaw
	}
	if c, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok {
		view.Radius = c.CapsuleRadius
	}
	if attrs, ok := ecs.Get(w, e, component.AttributesComponent.Kind()); ok {
		view.Health, view.Max = attrs.Health, attrs.MaxHealth
	}
	if mp, ok := ecs.Get(w, e, component.MontagePlayerComponent.Kind()); ok && mp.Playing {
		view.Montage, view.Section = mp.Montage, mp.Section
	}
	return view
}

// MarshalSnapshot encodes the current tick as JSON.
func (g *Game) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(g.Snapshot())
}
