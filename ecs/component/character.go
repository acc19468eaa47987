package component

// Character is the state shared by every combat actor: capsule collision,
// the death pose selected when dying and the equipped weapon.
type Character struct {
	CapsuleRadius     float64
	CapsuleHalfHeight float64
	CollisionEnabled  bool
	DeathPose         int
	Weapon            uint64
	HitReactRate      float64
}

var CharacterComponent = NewComponent[Character]()
