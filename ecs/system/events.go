package system

import (
	"github.com/milk9111/slash/ecs"
)

// Event kinds published on the world queue.
const (
	EventPawnSeen      ecs.EventKind = "pawn_seen"
	EventMoveCompleted ecs.EventKind = "move_completed"
	EventMontageEnded  ecs.EventKind = "montage_ended"
	EventOverlapBegin  ecs.EventKind = "overlap_begin"
	EventOverlapEnd    ecs.EventKind = "overlap_end"
	EventDied          ecs.EventKind = "died"
)

// Timer kinds owned by enemies.
const (
	TimerAttack ecs.TimerKind = "attack"
	TimerPatrol ecs.TimerKind = "patrol"
)

// Montage and section names.
const (
	MontageAttack   = "Attack"
	MontageHitReact = "HitReact"
	MontageDeath    = "Death"
	MontageDodge    = "Dodge"
	MontageEquip    = "Equip"

	SectionEquip   = "Equip"
	SectionUnequip = "Unequip"
)

// PawnSeen is delivered to the sensing entity.
type PawnSeen struct {
	Pawn ecs.Entity
}

// MoveCompleted is delivered to the moving entity when its move request ends.
type MoveCompleted struct {
	Goal    ecs.Entity
	Success bool
}

// MontageEnded is delivered to the actor whose montage finished or was
// interrupted by another montage.
type MontageEnded struct {
	Montage     string
	Section     string
	Interrupted bool
}

type SensorKind int

const (
	// SensorBody is a weapon blade volume.
	SensorBody SensorKind = iota
	// SensorPickup is an item pickup sphere.
	SensorPickup
)

// Overlap is delivered to the sensor's entity when another pawn starts or
// stops overlapping it.
type Overlap struct {
	Other  ecs.Entity
	Sensor SensorKind
}

func ref(e ecs.Entity) uint64 {
	return uint64(e)
}

func ent(id uint64) ecs.Entity {
	return ecs.Entity(id)
}
