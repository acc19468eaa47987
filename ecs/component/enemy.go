package component

type EnemyState int

const (
	EnemyIdle EnemyState = iota
	EnemyDead
	EnemyPatrolling
	EnemyChasing
	EnemyAttacking
	EnemyEngaged
)

func (s EnemyState) String() string {
	switch s {
	case EnemyIdle:
		return "idle"
	case EnemyDead:
		return "dead"
	case EnemyPatrolling:
		return "patrolling"
	case EnemyChasing:
		return "chasing"
	case EnemyAttacking:
		return "attacking"
	case EnemyEngaged:
		return "engaged"
	default:
		return "unknown"
	}
}

// InCombat reports whether the state is one in which a combat target is held.
func (s EnemyState) InCombat() bool {
	return s == EnemyChasing || s == EnemyAttacking || s == EnemyEngaged
}

// Enemy holds AI tuning and the runtime state of the enemy state machine.
// Entity references are stored as raw ecs.Entity values.
type Enemy struct {
	CombatRadius float64
	AttackRadius float64
	PatrolRadius float64

	PatrolSpeed float64
	ChaseSpeed  float64

	WaitMin   float64
	WaitMax   float64
	AttackMin float64
	AttackMax float64

	PatrolAcceptance float64
	ChaseAcceptance  float64

	DeathLifeSpan float64
	SoulOffsetZ   float64
	DefaultWeapon string
	SoulPrefab    string

	BegunPlay    bool
	State        EnemyState
	CombatTarget uint64

	PatrolTarget           uint64
	PatrolTargets          []uint64
	RemainingPatrolTargets []uint64
	PatrolRefills          int
	PatrolSubscription     uint64

	FacingTarget bool
}

var EnemyComponent = NewComponent[Enemy]()
