package system

import (
	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/hud"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Combatant is the damage and hit reaction capability of one kind of actor.
type Combatant interface {
	TakeDamage(w *ecs.World, e ecs.Entity, amount float64, instigator, causer ecs.Entity) float64
	GetHit(w *ecs.World, e ecs.Entity, impact common.Vec3, hitter ecs.Entity)
}

// CombatRouter dispatches damage and hits to the Combatant registered for
// the target's component.Combatant kind.
type CombatRouter struct {
	hooks   Hooks
	overlay hud.Overlay
	impls   map[component.CombatantKind]Combatant
}

func NewCombatRouter(hooks Hooks, overlay hud.Overlay) *CombatRouter {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &CombatRouter{
		hooks:   hooks,
		overlay: overlay,
		impls:   map[component.CombatantKind]Combatant{},
	}
}

func (r *CombatRouter) Register(kind component.CombatantKind, impl Combatant) {
	if r == nil || impl == nil {
		return
	}
	r.impls[kind] = impl
}

func (r *CombatRouter) Hooks() Hooks {
	if r == nil || r.hooks == nil {
		return NopHooks{}
	}
	return r.hooks
}

func (r *CombatRouter) Overlay() hud.Overlay {
	if r == nil {
		return nil
	}
	return r.overlay
}

func (r *CombatRouter) lookup(w *ecs.World, e ecs.Entity) (Combatant, bool) {
	if r == nil || !ecs.IsAlive(w, e) {
		return nil, false
	}
	c, ok := ecs.Get(w, e, component.CombatantComponent.Kind())
	if !ok {
		return nil, false
	}
	impl, ok := r.impls[c.Kind]
	return impl, ok && impl != nil
}

// ApplyDamage is the generic damage pipeline. It returns the damage taken.
func (r *CombatRouter) ApplyDamage(w *ecs.World, target ecs.Entity, amount float64, instigator, causer ecs.Entity) float64 {
	impl, ok := r.lookup(w, target)
	if !ok {
		return 0
	}
	taken := impl.TakeDamage(w, target, amount, instigator, causer)
	logger.For("combat").WithFields(logrus.Fields{
		"target":     target,
		"instigator": instigator,
		"amount":     amount,
		"taken":      taken,
	}).Debug("damage applied")
	return taken
}

// GetHit invokes the hit capability of target. It reports whether the target
// exposes one.
func (r *CombatRouter) GetHit(w *ecs.World, target ecs.Entity, impact common.Vec3, hitter ecs.Entity) bool {
	impl, ok := r.lookup(w, target)
	if !ok {
		return false
	}
	impl.GetHit(w, target, impact, hitter)
	return true
}
