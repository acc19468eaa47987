package system

import (
	"math"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/ecs/entity"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/sirupsen/logrus"
)

// EnemySystem drives the enemy state machine: patrol between points, chase
// and attack a perceived or aggressing target, and die.
type EnemySystem struct {
	router *CombatRouter
	log    *logrus.Entry
}

func NewEnemySystem(router *CombatRouter) *EnemySystem {
	return &EnemySystem{router: router, log: logger.For("enemy_ai")}
}

func (s *EnemySystem) Init(w *ecs.World) {
	s.router.Register(component.CombatantEnemy, s)
	w.Events().Subscribe(EventPawnSeen, s.onPawnSeen)
	w.Events().Subscribe(EventMontageEnded, s.onMontageEnded)
}

func (s *EnemySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.EnemyComponent.Kind(), func(e ecs.Entity, en *component.Enemy) {
		if !en.BegunPlay {
			s.BeginPlay(w, e, en)
		}
		if en.State == component.EnemyDead {
			return
		}
		if en.FacingTarget {
			s.faceCombatTarget(w, e, en)
		}
		if en.State.InCombat() {
			s.CheckCombatTarget(w, e, en)
		} else {
			s.CheckPatrolTarget(w, e, en)
		}
	})
}

// BeginPlay hides the health bar, arms the enemy and starts patrolling.
func (s *EnemySystem) BeginPlay(w *ecs.World, e ecs.Entity, en *component.Enemy) {
	en.BegunPlay = true
	s.setHealthBarVisible(w, e, false)
	s.spawnDefaultWeapon(w, e, en)

	if !ecs.IsAlive(w, ent(en.PatrolTarget)) && len(en.PatrolTargets) > 0 {
		en.PatrolTarget = ref(s.ChoosePatrolTarget(w, en))
	}
	// A pawn seen or an attacker landed before the first update wins.
	if en.State != component.EnemyIdle {
		return
	}
	s.setState(e, en, component.EnemyPatrolling)
	s.setMaxSpeed(w, e, en.PatrolSpeed)
	s.moveToPatrolTarget(w, e, en)
}

func (s *EnemySystem) spawnDefaultWeapon(w *ecs.World, e ecs.Entity, en *component.Enemy) {
	if en.DefaultWeapon == "" {
		return
	}
	at, _ := SocketLocation(w, e, component.SocketRightHand)
	weapon, err := entity.NewWeapon(w, en.DefaultWeapon, at)
	if err != nil {
		s.log.WithError(err).WithField("entity", e).Warn("spawn default weapon")
		return
	}
	Equip(w, s.router.Hooks(), weapon, e, component.SocketRightHand)
}

// ChoosePatrolTarget draws the next patrol point from the remaining pool,
// refilling it from the full set when exhausted.
func (s *EnemySystem) ChoosePatrolTarget(w *ecs.World, en *component.Enemy) ecs.Entity {
	if len(en.RemainingPatrolTargets) == 0 {
		en.RemainingPatrolTargets = append([]uint64(nil), en.PatrolTargets...)
		en.PatrolRefills++
	}
	n := len(en.RemainingPatrolTargets)
	if n == 0 {
		return 0
	}
	i := w.RandIntRange(0, n-1)
	chosen := en.RemainingPatrolTargets[i]
	en.RemainingPatrolTargets = append(en.RemainingPatrolTargets[:i], en.RemainingPatrolTargets[i+1:]...)
	return ent(chosen)
}

// CheckPatrolTarget picks the next patrol point and arms the wait timer once
// the current point is reached.
func (s *EnemySystem) CheckPatrolTarget(w *ecs.World, e ecs.Entity, en *component.Enemy) {
	if IsMoving(w, e) || w.Timers().Pending(e, TimerPatrol) {
		return
	}
	target := ent(en.PatrolTarget)
	if !ecs.IsAlive(w, target) {
		return
	}
	if !s.inTargetRange(w, e, target, en.PatrolRadius) {
		s.moveToPatrolTarget(w, e, en)
		return
	}

	next := s.ChoosePatrolTarget(w, en)
	if next == 0 {
		return
	}
	en.PatrolTarget = ref(next)
	wait := w.RandRange(en.WaitMin, en.WaitMax)
	w.Timers().Set(e, TimerPatrol, wait, s.patrolTimerFinished)
	s.log.WithFields(logrus.Fields{"entity": e, "target": next, "wait": wait}).Debug("next patrol target")
}

func (s *EnemySystem) patrolTimerFinished(w *ecs.World, e ecs.Entity) {
	en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok || en.State == component.EnemyDead {
		return
	}
	s.moveToPatrolTarget(w, e, en)
}

func (s *EnemySystem) moveToPatrolTarget(w *ecs.World, e ecs.Entity, en *component.Enemy) {
	if !MoveTo(w, e, ent(en.PatrolTarget), en.PatrolAcceptance) {
		return
	}
	s.bindPatrolNotification(w, e, en)
}

// bindPatrolNotification subscribes a one-shot handler for the end of the
// current patrol move.
func (s *EnemySystem) bindPatrolNotification(w *ecs.World, e ecs.Entity, en *component.Enemy) {
	if en.PatrolSubscription != 0 && w.Events().Subscribed(ecs.SubscriptionID(en.PatrolSubscription)) {
		return
	}
	var id ecs.SubscriptionID
	id = w.Events().SubscribeEntity(EventMoveCompleted, e, func(w *ecs.World, evt ecs.Event) {
		w.Events().Unsubscribe(id)
		en, ok := ecs.Get(w, evt.Entity, component.EnemyComponent.Kind())
		if !ok {
			return
		}
		en.PatrolSubscription = 0
		if en.State == component.EnemyPatrolling || en.State == component.EnemyIdle {
			s.CheckPatrolTarget(w, evt.Entity, en)
		}
	})
	en.PatrolSubscription = uint64(id)
}

func (s *EnemySystem) unbindPatrolNotification(w *ecs.World, en *component.Enemy) {
	if en.PatrolSubscription == 0 {
		return
	}
	w.Events().Unsubscribe(ecs.SubscriptionID(en.PatrolSubscription))
	en.PatrolSubscription = 0
}

// CheckCombatTarget re-evaluates range to the combat target: lose interest
// beyond the combat radius, chase beyond the attack radius, otherwise arm
// the attack timer.
func (s *EnemySystem) CheckCombatTarget(w *ecs.World, e ecs.Entity, en *component.Enemy) {
	switch {
	case s.isOutsideCombatRadius(w, e, en):
		w.Timers().Clear(e, TimerAttack)
		s.LoseInterest(w, e, en)
		if en.State != component.EnemyEngaged {
			s.StartPatrolling(w, e, en)
		}
	case s.isOutsideAttackRadius(w, e, en) && en.State != component.EnemyChasing:
		w.Timers().Clear(e, TimerAttack)
		if en.State != component.EnemyEngaged {
			s.ChaseTarget(w, e, en)
		}
	case s.canAttack(w, e, en):
		s.StartAttackTimer(w, e, en)
	}
}

func (s *EnemySystem) inTargetRange(w *ecs.World, e, target ecs.Entity, radius float64) bool {
	if !ecs.IsAlive(w, target) {
		return false
	}
	d, ok := distance(w, e, target)
	return ok && d <= radius
}

func (s *EnemySystem) isOutsideCombatRadius(w *ecs.World, e ecs.Entity, en *component.Enemy) bool {
	return !s.inTargetRange(w, e, ent(en.CombatTarget), en.CombatRadius)
}

func (s *EnemySystem) isOutsideAttackRadius(w *ecs.World, e ecs.Entity, en *component.Enemy) bool {
	return !s.inTargetRange(w, e, ent(en.CombatTarget), en.AttackRadius)
}

func (s *EnemySystem) canAttack(w *ecs.World, e ecs.Entity, en *component.Enemy) bool {
	return s.inTargetRange(w, e, ent(en.CombatTarget), en.AttackRadius) &&
		en.State != component.EnemyAttacking &&
		en.State != component.EnemyEngaged &&
		en.State != component.EnemyDead &&
		!w.Timers().Pending(e, TimerAttack)
}

func (s *EnemySystem) LoseInterest(w *ecs.World, e ecs.Entity, en *component.Enemy) {
	en.CombatTarget = 0
	s.setHealthBarVisible(w, e, false)
}

func (s *EnemySystem) StartPatrolling(w *ecs.World, e ecs.Entity, en *component.Enemy) {
	s.setState(e, en, component.EnemyPatrolling)
	s.setMaxSpeed(w, e, en.PatrolSpeed)
	s.moveToPatrolTarget(w, e, en)
}

func (s *EnemySystem) ChaseTarget(w *ecs.World, e ecs.Entity, en *component.Enemy) {
	s.unbindPatrolNotification(w, en)
	w.Timers().Clear(e, TimerPatrol)
	w.Timers().Clear(e, TimerAttack)
	s.setState(e, en, component.EnemyChasing)
	s.setMaxSpeed(w, e, en.ChaseSpeed)
	MoveTo(w, e, ent(en.CombatTarget), en.ChaseAcceptance)
}

func (s *EnemySystem) StartAttackTimer(w *ecs.World, e ecs.Entity, en *component.Enemy) {
	w.Timers().Clear(e, TimerPatrol)
	s.setState(e, en, component.EnemyAttacking)
	delay := w.RandRange(en.AttackMin, en.AttackMax)
	w.Timers().Set(e, TimerAttack, delay, s.attack)
}

// attack fires when the attack timer expires.
func (s *EnemySystem) attack(w *ecs.World, e ecs.Entity) {
	en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok {
		return
	}
	if target := ent(en.CombatTarget); en.CombatTarget != 0 && (!ecs.IsAlive(w, target) || hasTag(w, target, component.TagDead)) {
		en.CombatTarget = 0
	}
	if en.State == component.EnemyDead {
		return
	}
	if en.CombatTarget == 0 {
		s.CheckCombatTarget(w, e, en)
		return
	}

	s.setState(e, en, component.EnemyEngaged)
	en.FacingTarget = true
	s.router.Hooks().RotateTowardsPlayer(w, e, true)
	PlayRandomMontageSection(w, e, MontageAttack, 1)
	SetWeaponCollisionEnabled(w, e, true)
}

func (s *EnemySystem) onMontageEnded(w *ecs.World, evt ecs.Event) {
	ended, ok := evt.Data.(MontageEnded)
	if !ok || ended.Montage != MontageAttack {
		return
	}
	e := evt.Entity
	en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok {
		return
	}
	SetWeaponCollisionEnabled(w, e, false)
	en.FacingTarget = false
	s.router.Hooks().RotateTowardsPlayer(w, e, false)
	if en.State != component.EnemyEngaged {
		return
	}
	s.setState(e, en, component.EnemyIdle)
	// Re-evaluated now rather than next tick so Idle never holds a target.
	s.CheckCombatTarget(w, e, en)
}

func (s *EnemySystem) onPawnSeen(w *ecs.World, evt ecs.Event) {
	seen, ok := evt.Data.(PawnSeen)
	if !ok {
		return
	}
	e := evt.Entity
	en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok {
		return
	}
	switch en.State {
	case component.EnemyDead, component.EnemyChasing, component.EnemyAttacking, component.EnemyEngaged:
		return
	}
	pawn := seen.Pawn
	if !hasTag(w, pawn, component.TagEngageableTarget) || hasTag(w, pawn, component.TagDead) {
		return
	}
	if !s.inTargetRange(w, e, pawn, en.CombatRadius) {
		return
	}
	en.CombatTarget = ref(pawn)
	s.ChaseTarget(w, e, en)
}

func (s *EnemySystem) TakeDamage(w *ecs.World, e ecs.Entity, amount float64, instigator, _ ecs.Entity) float64 {
	en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok || en.State == component.EnemyDead {
		return 0
	}
	HandleDamage(w, e, amount)
	if attrs, ok := ecs.Get(w, e, component.AttributesComponent.Kind()); ok {
		if bar, ok := ecs.Get(w, e, component.HealthBarComponent.Kind()); ok {
			bar.Percent = attrs.HealthPercent()
		}
	}
	if ecs.IsAlive(w, instigator) {
		en.CombatTarget = ref(instigator)
		s.ChaseTarget(w, e, en)
	}
	return amount
}

func (s *EnemySystem) GetHit(w *ecs.World, e ecs.Entity, impact common.Vec3, hitter ecs.Entity) {
	en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok {
		return
	}
	alive := IsAlive(w, e)
	if alive {
		s.setHealthBarVisible(w, e, true)
	}
	w.Timers().Clear(e, TimerPatrol)
	w.Timers().Clear(e, TimerAttack)
	SetWeaponCollisionEnabled(w, e, false)
	StopMontage(w, e, MontageAttack)
	if alive && s.inTargetRange(w, e, ent(en.CombatTarget), en.AttackRadius) {
		s.StartAttackTimer(w, e, en)
	}
	getHitBase(w, e, impact, hitter, s.router.Hooks(), s.Die)
}

// Die runs the death sequence once: the enemy stops, drops its souls and
// expires together with its weapon after DeathLifeSpan.
func (s *EnemySystem) Die(w *ecs.World, e ecs.Entity) {
	en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok || en.State == component.EnemyDead {
		return
	}
	dieBase(w, e)
	s.setState(e, en, component.EnemyDead)
	en.CombatTarget = 0
	en.FacingTarget = false
	w.Timers().Clear(e, TimerAttack)
	w.Timers().Clear(e, TimerPatrol)
	s.unbindPatrolNotification(w, en)
	StopMovement(w, e)
	s.setHealthBarVisible(w, e, false)
	if mov, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
		mov.OrientToMovement = false
	}
	if sensing, ok := ecs.Get(w, e, component.PawnSensingComponent.Kind()); ok {
		sensing.Enabled = false
	}

	setLifespan(w, e, en.DeathLifeSpan)
	if weapon, ok := EquippedWeapon(w, e); ok {
		setLifespan(w, weapon, en.DeathLifeSpan)
	}
	s.spawnSoul(w, e, en)
	s.router.Hooks().OnDie(w, e)
}

func (s *EnemySystem) spawnSoul(w *ecs.World, e ecs.Entity, en *component.Enemy) {
	attrs, ok := ecs.Get(w, e, component.AttributesComponent.Kind())
	if !ok {
		return
	}
	at, ok := position(w, e)
	if !ok {
		return
	}
	soul, err := entity.NewSoul(w, en.SoulPrefab, at.Add(common.V3(0, 0, en.SoulOffsetZ)), attrs.Souls)
	if err != nil {
		s.log.WithError(err).WithField("entity", e).Warn("spawn soul")
		return
	}
	s.router.Hooks().UpdateNiagaraVariables(w, soul)
}

func (s *EnemySystem) faceCombatTarget(w *ecs.World, e ecs.Entity, en *component.Enemy) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	target, ok := position(w, ent(en.CombatTarget))
	if !ok || en.CombatTarget == 0 {
		return
	}
	if d := target.Sub(t.Position).Flat(); math.Abs(d.X)+math.Abs(d.Y) > 1e-6 {
		t.Yaw = common.YawTowards(t.Position, target)
	}
}

func (s *EnemySystem) setState(e ecs.Entity, en *component.Enemy, state component.EnemyState) {
	if en.State == state {
		return
	}
	s.log.WithFields(logrus.Fields{"entity": e, "from": en.State, "to": state}).Debug("state change")
	en.State = state
}

func (s *EnemySystem) setMaxSpeed(w *ecs.World, e ecs.Entity, speed float64) {
	if mov, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
		mov.MaxSpeed = speed
	}
}

func (s *EnemySystem) setHealthBarVisible(w *ecs.World, e ecs.Entity, visible bool) {
	if bar, ok := ecs.Get(w, e, component.HealthBarComponent.Kind()); ok {
		bar.Visible = visible
	}
}

func setLifespan(w *ecs.World, e ecs.Entity, seconds float64) {
	if seconds <= 0 || !ecs.IsAlive(w, e) {
		return
	}
	if l, ok := ecs.Get(w, e, component.LifespanComponent.Kind()); ok {
		l.Seconds = seconds
		return
	}
	_ = ecs.Add(w, e, component.LifespanComponent.Kind(), &component.Lifespan{Seconds: seconds})
}
