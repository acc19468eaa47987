package entity

import (
	"fmt"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/prefabs"
)

func hoveringItem(kind component.PickupKind, hover prefabs.HoverSpec, radius float64, pos common.Vec3) *component.Item {
	return &component.Item{
		Kind:          kind,
		State:         component.ItemHovering,
		Amplitude:     hover.Amplitude,
		TimeConstant:  hover.TimeConstant,
		BaseZ:         pos.Z,
		SphereRadius:  radius,
		SphereEnabled: true,
		Sparkle:       true,
	}
}

// NewSoul drops souls at pos. The soul sinks to its resting height before
// hovering in place.
func NewSoul(w *ecs.World, prefab string, pos common.Vec3, souls int) (ecs.Entity, error) {
	spec, err := prefabs.LoadSoulSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("soul: load spec: %w", err)
	}

	b := newBuilder(w, "soul")
	add(b, "transform", component.TransformComponent.Kind(), &component.Transform{Position: pos})
	add(b, "item", component.ItemComponent.Kind(), hoveringItem(component.PickupSoul, spec.Hover, spec.SphereRadius, pos))
	add(b, "soul", component.SoulComponent.Kind(), &component.Soul{
		Souls:     souls,
		DesiredZ:  spec.DesiredZ,
		DriftRate: spec.DriftRate,
	})
	return b.done()
}

func NewTreasure(w *ecs.World, prefab string, pos common.Vec3) (ecs.Entity, error) {
	spec, err := prefabs.LoadTreasureSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("treasure: load spec: %w", err)
	}

	b := newBuilder(w, "treasure")
	add(b, "transform", component.TransformComponent.Kind(), &component.Transform{Position: pos})
	add(b, "item", component.ItemComponent.Kind(), hoveringItem(component.PickupTreasure, spec.Hover, spec.SphereRadius, pos))
	add(b, "treasure", component.TreasureComponent.Kind(), &component.Treasure{Gold: spec.Gold})
	return b.done()
}
