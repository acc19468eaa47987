package system

import (
	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/ecs/entity"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/sirupsen/logrus"
)

const defaultBreakableDropOffsetZ = 75.0

// BreakableSystem is the combatant implementation for pots and crates: the
// first hit shatters them and may drop treasure.
type BreakableSystem struct {
	router *CombatRouter
	log    *logrus.Entry
}

func NewBreakableSystem(router *CombatRouter) *BreakableSystem {
	return &BreakableSystem{router: router, log: logger.For("breakable")}
}

func (s *BreakableSystem) Init(w *ecs.World) {
	s.router.Register(component.CombatantBreakable, s)
}

func (s *BreakableSystem) Update(w *ecs.World) {}

// TakeDamage is absorbed; a breakable has no health.
func (s *BreakableSystem) TakeDamage(w *ecs.World, e ecs.Entity, amount float64, _, _ ecs.Entity) float64 {
	b, ok := ecs.Get(w, e, component.BreakableComponent.Kind())
	if !ok || b.Broken {
		return 0
	}
	return amount
}

func (s *BreakableSystem) GetHit(w *ecs.World, e ecs.Entity, impact common.Vec3, hitter ecs.Entity) {
	b, ok := ecs.Get(w, e, component.BreakableComponent.Kind())
	if !ok || b.Broken {
		return
	}
	b.Broken = true
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		pb.Active = false
	}
	if b.Lifespan > 0 {
		setLifespan(w, e, b.Lifespan)
	}
	s.router.Hooks().OnHit(w, e, impact)

	prefab, ok := DetermineDrop(w, b.Drops)
	if !ok {
		s.log.WithField("entity", e).Info("broken")
		return
	}
	pos, _ := position(w, e)
	offset := b.DropOffsetZ
	if offset == 0 {
		offset = defaultBreakableDropOffsetZ
	}
	treasure, err := entity.NewTreasure(w, prefab, pos.Add(common.V3(0, 0, offset)))
	if err != nil {
		s.log.WithError(err).WithField("prefab", prefab).Warn("spawn treasure")
		return
	}
	s.log.WithFields(logrus.Fields{"entity": e, "treasure": treasure, "prefab": prefab}).Info("broken")
}

// DetermineDrop rolls the loot table, weighting each entry by its drop rate.
func DetermineDrop(w *ecs.World, drops []component.TreasureDrop) (string, bool) {
	total := 0.0
	for _, d := range drops {
		if d.DropRate > 0 {
			total += d.DropRate
		}
	}
	if total <= 0 {
		return "", false
	}
	roll := w.RandRange(0, total)
	last := ""
	for _, d := range drops {
		if d.DropRate <= 0 {
			continue
		}
		last = d.Prefab
		if roll < d.DropRate {
			return d.Prefab, true
		}
		roll -= d.DropRate
	}
	return last, true
}
