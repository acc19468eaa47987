package component

type ActionState int

const (
	ActionIdle ActionState = iota
	ActionAttacking
	ActionEquipping
	ActionDodging
	ActionHitReaction
	ActionDead
)

func (s ActionState) String() string {
	switch s {
	case ActionIdle:
		return "idle"
	case ActionAttacking:
		return "attacking"
	case ActionEquipping:
		return "equipping"
	case ActionDodging:
		return "dodging"
	case ActionHitReaction:
		return "hit_reaction"
	case ActionDead:
		return "dead"
	default:
		return "unknown"
	}
}

type CharacterState int

const (
	CharacterUnequipped CharacterState = iota
	CharacterEquippedOneHanded
	CharacterEquippedTwoHanded
)

func (s CharacterState) String() string {
	switch s {
	case CharacterEquippedOneHanded:
		return "one_handed"
	case CharacterEquippedTwoHanded:
		return "two_handed"
	default:
		return "unequipped"
	}
}

type Player struct {
	WalkSpeed    float64
	JumpVelocity float64
	TurnRate     float64
	AttackRate   float64

	ControlYaw      float64
	Action          ActionState
	State           CharacterState
	OverlappingItem uint64
	OverlayReady    bool
}

var PlayerComponent = NewComponent[Player]()
