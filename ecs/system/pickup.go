package system

import (
	"math"

	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/sirupsen/logrus"
)

type pickupOverlap struct {
	item  ecs.Entity
	other ecs.Entity
	begin bool
}

// PickupSystem hovers items and hands them to pawns that walk into their
// sphere. Souls and treasure are consumed on contact; weapons wait for the
// pawn to interact.
type PickupSystem struct {
	router  *CombatRouter
	picker  Picker
	pending []pickupOverlap
	log     *logrus.Entry
}

func NewPickupSystem(router *CombatRouter, picker Picker) *PickupSystem {
	return &PickupSystem{router: router, picker: picker, log: logger.For("pickup")}
}

func (s *PickupSystem) Init(w *ecs.World) {
	queue := func(begin bool) ecs.Handler {
		return func(w *ecs.World, evt ecs.Event) {
			ov, ok := evt.Data.(Overlap)
			if !ok || ov.Sensor != SensorPickup {
				return
			}
			s.pending = append(s.pending, pickupOverlap{item: evt.Entity, other: ov.Other, begin: begin})
		}
	}
	w.Events().Subscribe(EventOverlapBegin, queue(true))
	w.Events().Subscribe(EventOverlapEnd, queue(false))
}

func (s *PickupSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pending := s.pending
	s.pending = nil
	for _, ov := range pending {
		if ov.begin {
			s.OnSphereOverlap(w, ov.item, ov.other)
		} else {
			s.OnSphereEndOverlap(w, ov.item, ov.other)
		}
	}

	dt := w.DT()
	ecs.ForEach2(w, component.ItemComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, item *component.Item, t *component.Transform) {
		if soul, ok := ecs.Get(w, e, component.SoulComponent.Kind()); ok && item.BaseZ > soul.DesiredZ {
			item.BaseZ = math.Max(soul.DesiredZ, item.BaseZ+soul.DriftRate*dt)
		}
		item.RunningTime += dt
		if item.State == component.ItemHovering {
			t.Position.Z = item.BaseZ + item.TransformedSin()
		}
	})
}

func (s *PickupSystem) canPick(w *ecs.World, e ecs.Entity) bool {
	return s.picker != nil && ecs.Has(w, e, component.PlayerComponent.Kind()) && IsAlive(w, e)
}

// OnSphereOverlap runs when other enters the pickup sphere of item.
func (s *PickupSystem) OnSphereOverlap(w *ecs.World, item, other ecs.Entity) {
	it, ok := ecs.Get(w, item, component.ItemComponent.Kind())
	if !ok || !it.SphereEnabled {
		return
	}
	if !containsRef(it.Overlapping, ref(other)) {
		it.Overlapping = append(it.Overlapping, ref(other))
	}
	if !s.canPick(w, other) {
		return
	}

	switch it.Kind {
	case component.PickupSoul:
		soul, _ := ecs.Get(w, item, component.SoulComponent.Kind())
		if soul == nil {
			return
		}
		s.picker.AddSouls(w, other, soul.Souls)
		s.consume(w, other, item, it.Kind)
	case component.PickupTreasure:
		treasure, _ := ecs.Get(w, item, component.TreasureComponent.Kind())
		if treasure == nil {
			return
		}
		s.picker.AddGold(w, other, treasure.Gold)
		s.consume(w, other, item, it.Kind)
	default:
		s.picker.SetOverlappingItem(w, other, item)
	}
}

// OnSphereEndOverlap clears the pawn's overlapping item if it still points at
// item.
func (s *PickupSystem) OnSphereEndOverlap(w *ecs.World, item, other ecs.Entity) {
	if it, ok := ecs.Get(w, item, component.ItemComponent.Kind()); ok {
		it.Overlapping = removeRef(it.Overlapping, ref(other))
	}
	if s.picker == nil {
		return
	}
	if p, ok := ecs.Get(w, other, component.PlayerComponent.Kind()); ok && p.OverlappingItem == ref(item) {
		s.picker.SetOverlappingItem(w, other, 0)
	}
}

func (s *PickupSystem) consume(w *ecs.World, picker, item ecs.Entity, kind component.PickupKind) {
	s.router.Hooks().OnPickup(w, picker, item, kind)
	s.log.WithFields(logrus.Fields{"item": item, "picker": picker, "kind": kind}).Info("picked up")
	ecs.DestroyEntity(w, item)
}

func containsRef(list []uint64, id uint64) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func removeRef(list []uint64, id uint64) []uint64 {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
