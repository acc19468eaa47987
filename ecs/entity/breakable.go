package entity

import (
	"fmt"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/prefabs"
)

func NewBreakable(w *ecs.World, prefab string, pos common.Vec3) (ecs.Entity, error) {
	spec, err := prefabs.LoadBreakableSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("breakable: load spec: %w", err)
	}

	drops := make([]component.TreasureDrop, 0, len(spec.Drops))
	for _, d := range spec.Drops {
		drops = append(drops, component.TreasureDrop{Prefab: d.Prefab, DropRate: d.DropRate})
	}

	b := newBuilder(w, "breakable")
	add(b, "transform", component.TransformComponent.Kind(), &component.Transform{Position: pos})
	add(b, "breakable", component.BreakableComponent.Kind(), &component.Breakable{
		Drops:       drops,
		DropOffsetZ: spec.DropOffsetZ,
		Lifespan:    spec.Lifespan,
	})
	add(b, "combatant", component.CombatantComponent.Kind(), &component.Combatant{Kind: component.CombatantBreakable})
	add(b, "physics body", component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.ShapeCircle,
		Radius: spec.Radius,
		Static: true,
		Active: true,
	})
	return b.done()
}
