package entity

import (
	"fmt"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/prefabs"
)

// NewWeapon places a hovering weapon pickup. The blade volume stays inactive
// until an owner swings it.
func NewWeapon(w *ecs.World, prefab string, pos common.Vec3) (ecs.Entity, error) {
	spec, err := prefabs.LoadWeaponSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("weapon: load spec: %w", err)
	}

	b := newBuilder(w, "weapon")
	add(b, "transform", component.TransformComponent.Kind(), &component.Transform{Position: pos})
	add(b, "weapon", component.WeaponComponent.Kind(), &component.Weapon{
		Damage:         spec.Damage,
		BoxTraceStart:  spec.BoxTraceStart,
		BoxTraceEnd:    spec.BoxTraceEnd,
		BoxTraceExtent: spec.BoxTraceExtent,
	})
	add(b, "item", component.ItemComponent.Kind(), hoveringItem(component.PickupWeapon, spec.Hover, spec.SphereRadius, pos))
	add(b, "physics body", component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.ShapeBox,
		Width:  spec.BladeLength,
		Height: spec.BladeWidth,
		Sensor: true,
	})
	return b.done()
}
