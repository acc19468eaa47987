package system

import (
	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/hud"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Picker is the capability of collecting world items.
type Picker interface {
	SetOverlappingItem(w *ecs.World, e, item ecs.Entity)
	AddSouls(w *ecs.World, e ecs.Entity, souls int)
	AddGold(w *ecs.World, e ecs.Entity, gold int)
}

// PlayerSystem applies player commands under the action state gate and
// keeps the overlay in sync with the player's attributes.
type PlayerSystem struct {
	router  *CombatRouter
	overlay hud.Overlay
	log     *logrus.Entry
}

func NewPlayerSystem(router *CombatRouter) *PlayerSystem {
	return &PlayerSystem{router: router, overlay: router.Overlay(), log: logger.For("player")}
}

func (s *PlayerSystem) Init(w *ecs.World) {
	s.router.Register(component.CombatantPlayer, s)
	w.Events().Subscribe(EventMontageEnded, s.onMontageEnded)
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DT()
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		if !p.OverlayReady {
			s.initializeOverlay(w, e)
			p.OverlayReady = true
		}
		if attrs, ok := ecs.Get(w, e, component.AttributesComponent.Kind()); ok && p.Action != component.ActionDead {
			attrs.RegenStamina(dt)
			s.setStamina(attrs)
		}

		in, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			return
		}
		p.ControlYaw += in.Look * p.TurnRate * dt
		s.move(w, e, p, in)

		if in.Jump {
			s.Jump(w, e)
		}
		if in.Attack {
			s.Attack(w, e)
		}
		if in.Dodge {
			s.Dodge(w, e)
		}
		if in.Interact {
			s.EKeyPressed(w, e)
		}
		in.Jump, in.Attack, in.Dodge, in.Interact = false, false, false, false
	})
}

func (s *PlayerSystem) initializeOverlay(w *ecs.World, e ecs.Entity) {
	if s.overlay == nil {
		return
	}
	if attrs, ok := ecs.Get(w, e, component.AttributesComponent.Kind()); ok {
		s.overlay.SetHealthBarPercent(attrs.HealthPercent())
	}
	s.overlay.SetStaminaBarPercent(1)
	s.overlay.SetGold(0)
	s.overlay.SetSouls(0)
}

func (s *PlayerSystem) setStamina(attrs *component.Attributes) {
	if s.overlay != nil {
		s.overlay.SetStaminaBarPercent(attrs.StaminaPercent())
	}
}

func (s *PlayerSystem) setHealth(attrs *component.Attributes) {
	if s.overlay != nil {
		s.overlay.SetHealthBarPercent(attrs.HealthPercent())
	}
}

func isIdle(w *ecs.World, e ecs.Entity) bool {
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	return ok && p.Action == component.ActionIdle
}

// move walks relative to the control yaw. Only an idle player moves.
func (s *PlayerSystem) move(w *ecs.World, e ecs.Entity, p *component.Player, in *component.Input) {
	mov, ok := ecs.Get(w, e, component.MovementComponent.Kind())
	if !ok {
		return
	}
	if p.Action != component.ActionIdle || (in.MoveX == 0 && in.MoveY == 0) {
		mov.Stop()
		return
	}
	forward := common.Forward(p.ControlYaw)
	right := common.V3(-forward.Y, forward.X, 0)
	dir := forward.Scale(in.MoveY).Add(right.Scale(in.MoveX))
	if dir.Len() > 1 {
		dir = dir.Normalize()
	}
	speed := p.WalkSpeed
	if mov.MaxSpeed > 0 && (speed <= 0 || mov.MaxSpeed < speed) {
		speed = mov.MaxSpeed
	}
	mov.VelX = dir.X * speed
	mov.VelY = dir.Y * speed
	if mov.OrientToMovement {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Yaw = common.YawTowards(common.Vec3{}, dir)
		}
	}
}

func (s *PlayerSystem) Jump(w *ecs.World, e ecs.Entity) bool {
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || p.Action != component.ActionIdle {
		return false
	}
	mov, ok := ecs.Get(w, e, component.MovementComponent.Kind())
	if !ok || !mov.Grounded {
		return false
	}
	mov.VelZ = p.JumpVelocity
	mov.Grounded = false
	return true
}

func (s *PlayerSystem) canAttack(p *component.Player) bool {
	return p.Action == component.ActionIdle && p.State != component.CharacterUnequipped
}

func (s *PlayerSystem) Attack(w *ecs.World, e ecs.Entity) bool {
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || !s.canAttack(p) {
		return false
	}
	if PlayRandomMontageSection(w, e, MontageAttack, p.AttackRate) == 0 {
		return false
	}
	s.setAction(e, p, component.ActionAttacking)
	SetWeaponCollisionEnabled(w, e, true)
	return true
}

// EKeyPressed picks up an overlapping weapon, or sheathes and draws the
// equipped one.
func (s *PlayerSystem) EKeyPressed(w *ecs.World, e ecs.Entity) {
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || p.Action != component.ActionIdle {
		return
	}

	if item := ent(p.OverlappingItem); p.OverlappingItem != 0 && ecs.Has(w, item, component.WeaponComponent.Kind()) {
		if old, ok := EquippedWeapon(w, e); ok && old != item {
			ecs.DestroyEntity(w, old)
		}
		if Equip(w, s.router.Hooks(), item, e, component.SocketRightHand) {
			p.State = component.CharacterEquippedOneHanded
			p.OverlappingItem = 0
		}
		return
	}

	_, armed := EquippedWeapon(w, e)
	switch {
	case p.State != component.CharacterUnequipped:
		if PlayMontage(w, e, MontageEquip, 1, SectionUnequip) {
			p.State = component.CharacterUnequipped
			s.setAction(e, p, component.ActionEquipping)
		}
	case armed:
		if PlayMontage(w, e, MontageEquip, 1, SectionEquip) {
			p.State = component.CharacterEquippedOneHanded
			s.setAction(e, p, component.ActionEquipping)
		}
	}
}

func (s *PlayerSystem) Dodge(w *ecs.World, e ecs.Entity) bool {
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || p.Action != component.ActionIdle || !IsAlive(w, e) {
		return false
	}
	attrs, ok := ecs.Get(w, e, component.AttributesComponent.Kind())
	if !ok || attrs.Stamina <= 0 {
		return false
	}
	montages, ok := ecs.Get(w, e, component.MontagesComponent.Kind())
	if !ok {
		return false
	}
	def, ok := montages.Get(MontageDodge)
	if !ok || !PlayMontage(w, e, MontageDodge, 1, def.Sections[0]) {
		return false
	}
	s.setAction(e, p, component.ActionDodging)
	attrs.UseStamina(attrs.DodgeCost)
	s.setStamina(attrs)
	return true
}

func (s *PlayerSystem) onMontageEnded(w *ecs.World, evt ecs.Event) {
	ended, ok := evt.Data.(MontageEnded)
	if !ok {
		return
	}
	e := evt.Entity
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return
	}

	switch ended.Montage {
	case MontageAttack:
		SetWeaponCollisionEnabled(w, e, false)
		s.finish(e, p, component.ActionAttacking)
	case MontageEquip:
		if weapon, ok := EquippedWeapon(w, e); ok {
			if ended.Section == SectionUnequip {
				AttachMeshToSocket(w, weapon, e, component.SocketSpine)
			} else {
				AttachMeshToSocket(w, weapon, e, component.SocketRightHand)
			}
		}
		s.finish(e, p, component.ActionEquipping)
	case MontageDodge:
		s.finish(e, p, component.ActionDodging)
	case MontageHitReact:
		s.finish(e, p, component.ActionHitReaction)
	}
}

// finish returns to idle if the player is still in the given action.
func (s *PlayerSystem) finish(e ecs.Entity, p *component.Player, action component.ActionState) {
	if p.Action == action {
		s.setAction(e, p, component.ActionIdle)
	}
}

func (s *PlayerSystem) TakeDamage(w *ecs.World, e ecs.Entity, amount float64, _, _ ecs.Entity) float64 {
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || p.Action == component.ActionDodging || p.Action == component.ActionDead {
		return 0
	}
	HandleDamage(w, e, amount)
	if attrs, ok := ecs.Get(w, e, component.AttributesComponent.Kind()); ok {
		s.setHealth(attrs)
	}
	return amount
}

func (s *PlayerSystem) GetHit(w *ecs.World, e ecs.Entity, impact common.Vec3, hitter ecs.Entity) {
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || p.Action == component.ActionDodging {
		return
	}
	getHitBase(w, e, impact, hitter, s.router.Hooks(), s.Die)
	SetWeaponCollisionEnabled(w, e, false)
	if attrs, ok := ecs.Get(w, e, component.AttributesComponent.Kind()); ok && attrs.HealthPercent() > 0 && p.Action != component.ActionDead {
		s.setAction(e, p, component.ActionHitReaction)
	}
}

func (s *PlayerSystem) Die(w *ecs.World, e ecs.Entity) {
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || p.Action == component.ActionDead {
		return
	}
	dieBase(w, e)
	s.setAction(e, p, component.ActionDead)
	StopMovement(w, e)
}

func (s *PlayerSystem) SetOverlappingItem(w *ecs.World, e, item ecs.Entity) {
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		p.OverlappingItem = ref(item)
	}
}

func (s *PlayerSystem) AddSouls(w *ecs.World, e ecs.Entity, souls int) {
	attrs, ok := ecs.Get(w, e, component.AttributesComponent.Kind())
	if !ok {
		return
	}
	attrs.AddSouls(souls)
	if s.overlay != nil {
		s.overlay.SetSouls(attrs.Souls)
	}
}

func (s *PlayerSystem) AddGold(w *ecs.World, e ecs.Entity, gold int) {
	attrs, ok := ecs.Get(w, e, component.AttributesComponent.Kind())
	if !ok {
		return
	}
	attrs.AddGold(gold)
	if s.overlay != nil {
		s.overlay.SetGold(attrs.Gold)
	}
}

func (s *PlayerSystem) setAction(e ecs.Entity, p *component.Player, action component.ActionState) {
	if p.Action == action {
		return
	}
	s.log.WithFields(logrus.Fields{"entity": e, "from": p.Action, "to": action}).Debug("action change")
	p.Action = action
}
