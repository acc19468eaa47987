package system

import (
	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Tracer sweeps a box between two points and returns the nearest combatant
// not rejected by ignore.
type Tracer interface {
	BoxTrace(w *ecs.World, start, end common.Vec3, extent float64, ignore func(ecs.Entity) bool) (ecs.Entity, common.Vec3, bool)
}

// WeaponSystem turns blade overlaps into hits: a swept box trace finds the
// struck actor, which is then damaged and told it was hit. Each actor can be
// struck once per swing.
type WeaponSystem struct {
	router  *CombatRouter
	tracer  Tracer
	pending []Overlap
	sources []ecs.Entity
}

func NewWeaponSystem(router *CombatRouter, tracer Tracer) *WeaponSystem {
	return &WeaponSystem{router: router, tracer: tracer}
}

func (ws *WeaponSystem) Init(w *ecs.World) {
	w.Events().Subscribe(EventOverlapBegin, func(w *ecs.World, evt ecs.Event) {
		ov, ok := evt.Data.(Overlap)
		if !ok || ov.Sensor != SensorBody || !ecs.Has(w, evt.Entity, component.WeaponComponent.Kind()) {
			return
		}
		ws.pending = append(ws.pending, ov)
		ws.sources = append(ws.sources, evt.Entity)
	})
}

func (ws *WeaponSystem) Update(w *ecs.World) {
	if ws == nil || w == nil {
		return
	}
	pending, sources := ws.pending, ws.sources
	ws.pending, ws.sources = nil, nil
	for i, ov := range pending {
		ws.OnBladeOverlap(w, sources[i], ov.Other)
	}
}

// OnBladeOverlap resolves a blade touching other.
func (ws *WeaponSystem) OnBladeOverlap(w *ecs.World, weapon, other ecs.Entity) {
	wc, ok := ecs.Get(w, weapon, component.WeaponComponent.Kind())
	if !ok || !wc.CollisionEnabled || ws.tracer == nil {
		return
	}
	owner := ent(wc.Owner)
	if other == owner || other == weapon || actorIsSameType(w, owner, other) {
		return
	}

	start, end, ok := traceEndpoints(w, weapon, wc)
	if !ok {
		return
	}
	hit, impact, ok := ws.tracer.BoxTrace(w, start, end, wc.BoxTraceExtent, func(e ecs.Entity) bool {
		return e == weapon || e == owner || wc.Ignores(ref(e))
	})
	if !ok {
		return
	}
	wc.IgnoreActors = append(wc.IgnoreActors, ref(hit))
	if actorIsSameType(w, owner, hit) {
		return
	}

	logger.For("weapon").WithFields(logrus.Fields{"weapon": weapon, "owner": owner, "hit": hit}).Debug("hit")
	ws.router.ApplyDamage(w, hit, wc.Damage, ent(wc.Instigator), weapon)
	ws.router.GetHit(w, hit, impact, owner)
	ws.router.Hooks().CreateFields(w, weapon, impact)
}

// actorIsSameType guards against friendly fire between enemies.
func actorIsSameType(w *ecs.World, owner, other ecs.Entity) bool {
	return hasTag(w, owner, component.TagEnemy) && hasTag(w, other, component.TagEnemy)
}

func traceEndpoints(w *ecs.World, weapon ecs.Entity, wc *component.Weapon) (common.Vec3, common.Vec3, bool) {
	t, ok := ecs.Get(w, weapon, component.TransformComponent.Kind())
	if !ok {
		return common.Vec3{}, common.Vec3{}, false
	}
	start := t.Position.Add(rotateYaw(wc.BoxTraceStart, t.Yaw))
	end := t.Position.Add(rotateYaw(wc.BoxTraceEnd, t.Yaw))
	return start, end, true
}

// Equip hands weapon to owner at socket and retires its pickup behaviour.
func Equip(w *ecs.World, hooks Hooks, weapon, owner ecs.Entity, socket string) bool {
	wc, ok := ecs.Get(w, weapon, component.WeaponComponent.Kind())
	if !ok || !ecs.IsAlive(w, owner) {
		return false
	}
	wc.Owner = ref(owner)
	wc.Instigator = ref(owner)
	AttachMeshToSocket(w, weapon, owner, socket)

	if item, ok := ecs.Get(w, weapon, component.ItemComponent.Kind()); ok {
		item.State = component.ItemEquipped
		item.SphereEnabled = false
		item.Sparkle = false
		item.Overlapping = nil
	}
	if c, ok := ecs.Get(w, owner, component.CharacterComponent.Kind()); ok {
		c.Weapon = ref(weapon)
	}
	if hooks != nil && hasTag(w, owner, component.TagSlashCharacter) {
		hooks.OnEquip(w, weapon, owner)
	}
	logger.For("weapon").WithFields(logrus.Fields{"weapon": weapon, "owner": owner, "socket": socket}).Info("equipped")
	return true
}

// AttachMeshToSocket moves an already owned weapon to another socket.
func AttachMeshToSocket(w *ecs.World, weapon, owner ecs.Entity, socket string) {
	if err := Attach(w, weapon, owner, socket); err != nil {
		return
	}
	if wc, ok := ecs.Get(w, weapon, component.WeaponComponent.Kind()); ok {
		wc.Socket = socket
	}
}

// EquippedWeapon returns the weapon held by e, if it still exists.
func EquippedWeapon(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	c, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
	if !ok || c.Weapon == 0 {
		return 0, false
	}
	weapon := ent(c.Weapon)
	if !ecs.IsAlive(w, weapon) {
		return 0, false
	}
	return weapon, true
}

// SetWeaponCollisionEnabled toggles the blade of the weapon held by owner and
// starts a fresh swing.
func SetWeaponCollisionEnabled(w *ecs.World, owner ecs.Entity, enabled bool) {
	weapon, ok := EquippedWeapon(w, owner)
	if !ok {
		return
	}
	wc, ok := ecs.Get(w, weapon, component.WeaponComponent.Kind())
	if !ok {
		return
	}
	wc.CollisionEnabled = enabled
	wc.IgnoreActors = nil
	if pb, ok := ecs.Get(w, weapon, component.PhysicsBodyComponent.Kind()); ok {
		pb.Active = enabled
	}
}
