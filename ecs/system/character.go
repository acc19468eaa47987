package system

import (
	"math"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/pkg/logger"
)

const defaultHitReactRate = 1.5

// Hit react montage sections.
const (
	SectionFromFront = "FromFront"
	SectionFromBack  = "FromBack"
	SectionFromLeft  = "FromLeft"
	SectionFromRight = "FromRight"
)

func position(w *ecs.World, e ecs.Entity) (common.Vec3, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return common.Vec3{}, false
	}
	return t.Position, true
}

func entityLocation(w *ecs.World, e ecs.Entity) common.Vec3 {
	p, _ := position(w, e)
	return p
}

func hasTag(w *ecs.World, e ecs.Entity, name string) bool {
	tags, ok := ecs.Get(w, e, component.TagsComponent.Kind())
	return ok && tags.Has(name)
}

func distance(w *ecs.World, a, b ecs.Entity) (float64, bool) {
	pa, ok := position(w, a)
	if !ok {
		return 0, false
	}
	pb, ok := position(w, b)
	if !ok {
		return 0, false
	}
	return common.Dist(pa, pb), true
}

// HandleDamage forwards damage to the attribute store.
func HandleDamage(w *ecs.World, e ecs.Entity, amount float64) {
	attrs, ok := ecs.Get(w, e, component.AttributesComponent.Kind())
	if !ok {
		return
	}
	attrs.ReceiveDamage(amount)
}

// SignedHitAngle returns the angle in degrees between forward and toHit.
// Hits on the right side are positive, on the left negative.
func SignedHitAngle(forward, toHit common.Vec3) float64 {
	cos := common.Clamp(forward.Dot(toHit), -1, 1)
	theta := common.RadToDeg(math.Acos(cos))
	if forward.Cross(toHit).Z < 0 {
		theta = -theta
	}
	return theta
}

// HitReactSection maps a signed hit angle to a reaction section.
func HitReactSection(theta float64) string {
	switch {
	case theta >= -45 && theta < 45:
		return SectionFromFront
	case theta >= -135 && theta < -45:
		return SectionFromLeft
	case theta >= 45 && theta < 135:
		return SectionFromRight
	default:
		return SectionFromBack
	}
}

// DirectionalHitReact plays the hit reaction facing the impact point.
func DirectionalHitReact(w *ecs.World, e ecs.Entity, impact common.Vec3) string {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return ""
	}
	lowered := common.V3(impact.X, impact.Y, t.Position.Z)
	toHit := lowered.Sub(t.Position).Normalize()
	section := HitReactSection(SignedHitAngle(common.Forward(t.Yaw), toHit))

	rate := defaultHitReactRate
	if c, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok && c.HitReactRate > 0 {
		rate = c.HitReactRate
	}
	PlayMontage(w, e, MontageHitReact, rate, section)
	return section
}

// PlayRandomMontageSection plays a uniformly chosen section and returns its
// 1-based index, or 0 when the montage is missing.
func PlayRandomMontageSection(w *ecs.World, e ecs.Entity, name string, rate float64) int {
	montages, ok := ecs.Get(w, e, component.MontagesComponent.Kind())
	if !ok {
		return 0
	}
	def, ok := montages.Get(name)
	if !ok {
		return 0
	}
	sel := w.RandIntRange(0, len(def.Sections)-1)
	if !PlayMontage(w, e, name, rate, def.Sections[sel]) {
		return 0
	}
	return sel + 1
}

func PlayDeathMontage(w *ecs.World, e ecs.Entity) int {
	sel := PlayRandomMontageSection(w, e, MontageDeath, 1)
	if sel > 0 {
		if c, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok {
			c.DeathPose = sel - 1
		}
	}
	return sel
}

// IsAlive reports whether a combat actor is alive. Players and enemies also
// consult their explicit death state.
func IsAlive(w *ecs.World, e ecs.Entity) bool {
	if !ecs.IsAlive(w, e) {
		return false
	}
	kind := component.CombatantNone
	if c, ok := ecs.Get(w, e, component.CombatantComponent.Kind()); ok {
		kind = c.Kind
	}
	if kind == component.CombatantBreakable {
		b, ok := ecs.Get(w, e, component.BreakableComponent.Kind())
		return ok && !b.Broken
	}

	attrs, ok := ecs.Get(w, e, component.AttributesComponent.Kind())
	if !ok || !attrs.IsAlive() {
		return false
	}
	switch kind {
	case component.CombatantPlayer:
		p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		return ok && p.Action != component.ActionDead
	case component.CombatantEnemy:
		en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
		return ok && en.State != component.EnemyDead
	}
	return true
}

func IsDead(w *ecs.World, e ecs.Entity) bool {
	return !IsAlive(w, e)
}

// dieBase is the death sequence shared by every character.
func dieBase(w *ecs.World, e ecs.Entity) {
	if tags, ok := ecs.Get(w, e, component.TagsComponent.Kind()); ok {
		tags.Add(component.TagDead)
	}
	PlayDeathMontage(w, e)
	SetWeaponCollisionEnabled(w, e, false)

	if c, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok {
		c.CollisionEnabled = false
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Active = false
	}

	w.Events().Push(ecs.Event{Kind: EventDied, Entity: e})
	logger.For("character").WithField("entity", e).Info("died")
}

// getHitBase plays hit feedback, then reacts toward the hitter or dies.
func getHitBase(w *ecs.World, e ecs.Entity, impact common.Vec3, hitter ecs.Entity, hooks Hooks, die func(*ecs.World, ecs.Entity)) {
	if IsAlive(w, e) && ecs.IsAlive(w, hitter) {
		if at, ok := position(w, hitter); ok {
			DirectionalHitReact(w, e, at)
		}
	} else if die != nil {
		die(w, e)
	}
	if hooks != nil {
		hooks.OnHit(w, e, impact)
	}
}
