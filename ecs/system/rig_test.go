package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/ecs/entity"
	"github.com/milk9111/slash/hud"
)

const testDT = 1.0 / 60.0

type recordingHooks struct {
	NopHooks
	died    []ecs.Entity
	hits    []ecs.Entity
	pickups []component.PickupKind
	equips  int
}

func (h *recordingHooks) OnDie(_ *ecs.World, e ecs.Entity) { h.died = append(h.died, e) }

func (h *recordingHooks) OnHit(_ *ecs.World, e ecs.Entity, _ common.Vec3) {
	h.hits = append(h.hits, e)
}

func (h *recordingHooks) OnPickup(_ *ecs.World, _, _ ecs.Entity, kind component.PickupKind) {
	h.pickups = append(h.pickups, kind)
}

func (h *recordingHooks) OnEquip(*ecs.World, ecs.Entity, ecs.Entity) { h.equips++ }

// rig is a world wired in the same frame order the game uses.
type rig struct {
	w       *ecs.World
	hooks   *recordingHooks
	overlay *hud.PlayerOverlay
	router  *CombatRouter
	physics *PhysicsSystem
	player  *PlayerSystem
	enemy   *EnemySystem
	weapon  *WeaponSystem
	pickup  *PickupSystem
}

func newRig(t *testing.T) *rig {
	t.Helper()
	w := ecs.NewWorld()
	w.SetRand(rand.New(rand.NewSource(7)))
	r := &rig{w: w, hooks: &recordingHooks{}, overlay: hud.NewPlayerOverlay()}
	r.router = NewCombatRouter(r.hooks, r.overlay)
	r.physics = NewPhysicsSystem()
	r.player = NewPlayerSystem(r.router)
	r.enemy = NewEnemySystem(r.router)
	r.weapon = NewWeaponSystem(r.router, r.physics)
	r.pickup = NewPickupSystem(r.router, r.player)

	w.AddSystem(r.player)
	w.AddSystem(NewTimerSystem())
	w.AddSystem(NewMontageSystem())
	w.AddSystem(NewPerceptionSystem(r.physics))
	w.AddSystem(NewDispatchSystem())
	w.AddSystem(r.enemy)
	w.AddSystem(NewNavigationSystem())
	w.AddSystem(r.physics)
	w.AddSystem(NewDispatchSystem())
	w.AddSystem(r.weapon)
	w.AddSystem(r.pickup)
	w.AddSystem(NewBreakableSystem(r.router))
	w.AddSystem(NewLifespanSystem())
	w.AddSystem(NewHUDSystem(r.overlay))
	w.AddSystem(NewDispatchSystem())
	return r
}

func (r *rig) step(n int) {
	for i := 0; i < n; i++ {
		r.w.Step(testDT)
	}
}

func (r *rig) spawnPlayer(t *testing.T, pos common.Vec3, yaw float64) ecs.Entity {
	t.Helper()
	e, err := entity.NewPlayer(r.w, pos, yaw)
	if err != nil {
		t.Fatalf("spawn player: %v", err)
	}
	return e
}

func (r *rig) spawnEnemy(t *testing.T, pos common.Vec3, yaw float64, patrol ...ecs.Entity) ecs.Entity {
	t.Helper()
	e, err := entity.NewEnemy(r.w, "", pos, yaw, patrol)
	if err != nil {
		t.Fatalf("spawn enemy: %v", err)
	}
	return e
}

func (r *rig) patrolPoint(t *testing.T, pos common.Vec3) ecs.Entity {
	t.Helper()
	e, err := entity.NewPatrolPoint(r.w, pos)
	if err != nil {
		t.Fatalf("spawn patrol point: %v", err)
	}
	return e
}

// arm gives the player a sword in hand.
func (r *rig) arm(t *testing.T, player ecs.Entity) ecs.Entity {
	t.Helper()
	weapon, err := entity.NewWeapon(r.w, "", common.Vec3{})
	if err != nil {
		t.Fatalf("spawn weapon: %v", err)
	}
	if !Equip(r.w, r.router.Hooks(), weapon, player, component.SocketRightHand) {
		t.Fatalf("equip failed")
	}
	p, _ := ecs.Get(r.w, player, component.PlayerComponent.Kind())
	p.State = component.CharacterEquippedOneHanded
	return weapon
}

func (r *rig) moveTo(e ecs.Entity, pos common.Vec3) {
	if t, ok := ecs.Get(r.w, e, component.TransformComponent.Kind()); ok {
		t.Position = pos
	}
}

func enemyOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Enemy {
	t.Helper()
	en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok {
		t.Fatalf("entity %d has no enemy component", e)
	}
	return en
}

func playerOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Player {
	t.Helper()
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		t.Fatalf("entity %d has no player component", e)
	}
	return p
}
