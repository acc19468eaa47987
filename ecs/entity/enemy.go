package entity

import (
	"fmt"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/prefabs"
)

// NewEnemy spawns an enemy from prefab. Its default weapon is spawned on the
// first tick by the enemy system.
func NewEnemy(w *ecs.World, prefab string, pos common.Vec3, yaw float64, patrol []ecs.Entity) (ecs.Entity, error) {
	spec, err := prefabs.LoadEnemySpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("enemy: load spec: %w", err)
	}

	targets := make([]uint64, 0, len(patrol))
	for _, p := range patrol {
		targets = append(targets, uint64(p))
	}

	ai := spec.AI
	b := newBuilder(w, "enemy")
	add(b, "transform", component.TransformComponent.Kind(), &component.Transform{Position: pos, Yaw: yaw})
	add(b, "enemy", component.EnemyComponent.Kind(), &component.Enemy{
		CombatRadius:     ai.CombatRadius,
		AttackRadius:     ai.AttackRadius,
		PatrolRadius:     ai.PatrolRadius,
		PatrolSpeed:      ai.PatrolSpeed,
		ChaseSpeed:       ai.ChaseSpeed,
		WaitMin:          ai.WaitMin,
		WaitMax:          ai.WaitMax,
		AttackMin:        ai.AttackMin,
		AttackMax:        ai.AttackMax,
		PatrolAcceptance: ai.PatrolAcceptance,
		ChaseAcceptance:  ai.ChaseAcceptance,
		DeathLifeSpan:    ai.DeathLifeSpan,
		SoulOffsetZ:      ai.SoulOffsetZ,
		DefaultWeapon:    spec.DefaultWeapon,
		SoulPrefab:       spec.Soul,
		PatrolTargets:    targets,
	})
	add(b, "combatant", component.CombatantComponent.Kind(), &component.Combatant{Kind: component.CombatantEnemy})
	add(b, "movement", component.MovementComponent.Kind(), &component.Movement{
		MaxSpeed:         ai.PatrolSpeed,
		OrientToMovement: true,
		GroundZ:          pos.Z,
		Grounded:         true,
	})
	add(b, "navigation", component.NavigationComponent.Kind(), &component.Navigation{})
	add(b, "pawn sensing", component.PawnSensingComponent.Kind(), &component.PawnSensing{
		SightRadius:     spec.Sensing.SightRadius,
		PeripheralAngle: spec.Sensing.PeripheralAngle,
		Interval:        spec.Sensing.Interval,
		Elapsed:         spec.Sensing.Interval,
		Enabled:         true,
	})
	add(b, "health bar", component.HealthBarComponent.Kind(), &component.HealthBar{Percent: 1})
	addCharacter(b, spec.Tags, spec.Attributes, spec.Capsule, spec.HitReactRate, spec.Sockets, spec.Montages)
	return b.done()
}
