package system

import (
	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
)

// Hooks are the extension points gameplay calls out to so authored content
// can react to state changes (sounds, particles, fields, turning to face).
type Hooks interface {
	OnDie(w *ecs.World, e ecs.Entity)
	RotateTowardsPlayer(w *ecs.World, e ecs.Entity, rotate bool)
	CreateFields(w *ecs.World, weapon ecs.Entity, at common.Vec3)
	UpdateNiagaraVariables(w *ecs.World, soul ecs.Entity)
	OnHit(w *ecs.World, e ecs.Entity, at common.Vec3)
	OnPickup(w *ecs.World, picker, item ecs.Entity, kind component.PickupKind)
	OnEquip(w *ecs.World, weapon, owner ecs.Entity)
}

// NopHooks ignores every hook.
type NopHooks struct{}

func (NopHooks) OnDie(*ecs.World, ecs.Entity) {}
func (NopHooks) RotateTowardsPlayer(*ecs.World, ecs.Entity, bool) {}
func (NopHooks) CreateFields(*ecs.World, ecs.Entity, common.Vec3) {}
func (NopHooks) UpdateNiagaraVariables(*ecs.World, ecs.Entity) {}
func (NopHooks) OnHit(*ecs.World, ecs.Entity, common.Vec3) {}
func (NopHooks) OnPickup(*ecs.World, ecs.Entity, ecs.Entity, component.PickupKind) {}
func (NopHooks) OnEquip(*ecs.World, ecs.Entity, ecs.Entity) {}

type EffectKind string

const (
	EffectSound     EffectKind = "sound"
	EffectParticles EffectKind = "particles"
	EffectField     EffectKind = "field"
)

// Effect is a presentation request produced by a hook.
type Effect struct {
	Kind   EffectKind  `json:"kind"`
	Name   string      `json:"name"`
	Entity ecs.Entity  `json:"entity"`
	At     common.Vec3 `json:"at"`
	Tick   uint64      `json:"tick"`
}
