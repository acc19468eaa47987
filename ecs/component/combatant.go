package component

// CombatantKind selects which combat capability implementation handles an
// entity's damage and hit reactions.
type CombatantKind int

const (
	CombatantNone CombatantKind = iota
	CombatantPlayer
	CombatantEnemy
	CombatantBreakable
)

func (k CombatantKind) String() string {
	switch k {
	case CombatantPlayer:
		return "player"
	case CombatantEnemy:
		return "enemy"
	case CombatantBreakable:
		return "breakable"
	default:
		return "none"
	}
}

type Combatant struct {
	Kind CombatantKind
}

var CombatantComponent = NewComponent[Combatant]()
