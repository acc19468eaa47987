package entity

import (
	"fmt"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/prefabs"
)

func NewPlayer(w *ecs.World, pos common.Vec3, yaw float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}

	b := newBuilder(w, "player")
	add(b, "transform", component.TransformComponent.Kind(), &component.Transform{Position: pos, Yaw: yaw})
	add(b, "input", component.InputComponent.Kind(), &component.Input{})
	add(b, "player", component.PlayerComponent.Kind(), &component.Player{
		WalkSpeed:    spec.WalkSpeed,
		JumpVelocity: spec.JumpVelocity,
		TurnRate:     spec.TurnRate,
		AttackRate:   spec.AttackRate,
		ControlYaw:   yaw,
	})
	add(b, "combatant", component.CombatantComponent.Kind(), &component.Combatant{Kind: component.CombatantPlayer})
	add(b, "movement", component.MovementComponent.Kind(), &component.Movement{
		MaxSpeed:         spec.WalkSpeed,
		OrientToMovement: true,
		Gravity:          spec.Gravity,
		GroundZ:          pos.Z,
		Grounded:         true,
	})
	addCharacter(b, spec.Tags, spec.Attributes, spec.Capsule, spec.HitReactRate, spec.Sockets, spec.Montages)
	return b.done()
}
