package component

import "github.com/milk9111/slash/common"

type ItemState int

const (
	ItemHovering ItemState = iota
	ItemEquipped
)

// Weapon is a melee weapon. Trace points are offsets from the weapon origin
// in the weapon's local frame (X forward along the owner's yaw).
type Weapon struct {
	Damage           float64
	BoxTraceStart    common.Vec3
	BoxTraceEnd      common.Vec3
	BoxTraceExtent   float64
	CollisionEnabled bool
	IgnoreActors     []uint64

	Owner      uint64
	Instigator uint64
	Socket     string
}

func (w *Weapon) Ignores(e uint64) bool {
	if w == nil {
		return false
	}
	for _, id := range w.IgnoreActors {
		if id == e {
			return true
		}
	}
	return false
}

var WeaponComponent = NewComponent[Weapon]()
