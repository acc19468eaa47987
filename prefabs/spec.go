package prefabs

import (
	"fmt"

	"github.com/milk9111/slash/common"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type AttributesSpec struct {
	Health           float64 `yaml:"health"`
	MaxHealth        float64 `yaml:"max_health"`
	Stamina          float64 `yaml:"stamina"`
	MaxStamina       float64 `yaml:"max_stamina"`
	Gold             int     `yaml:"gold"`
	Souls            int     `yaml:"souls"`
	DodgeCost        float64 `yaml:"dodge_cost"`
	StaminaRegenRate float64 `yaml:"stamina_regen_rate"`
}

type CapsuleSpec struct {
	Radius     float64 `yaml:"radius"`
	HalfHeight float64 `yaml:"half_height"`
}

type MontageSpec struct {
	Sections  []string  `yaml:"sections"`
	Durations []float64 `yaml:"durations"`
}

type HoverSpec struct {
	Amplitude    float64 `yaml:"amplitude"`
	TimeConstant float64 `yaml:"time_constant"`
}

type SensingSpec struct {
	SightRadius     float64 `yaml:"sight_radius"`
	PeripheralAngle float64 `yaml:"peripheral_angle"`
	Interval        float64 `yaml:"interval"`
}

type PlayerSpec struct {
	Name         string                 `yaml:"name"`
	Tags         []string               `yaml:"tags"`
	Attributes   AttributesSpec         `yaml:"attributes"`
	Capsule      CapsuleSpec            `yaml:"capsule"`
	WalkSpeed    float64                `yaml:"walk_speed"`
	JumpVelocity float64                `yaml:"jump_velocity"`
	Gravity      float64                `yaml:"gravity"`
	TurnRate     float64                `yaml:"turn_rate"`
	AttackRate   float64                `yaml:"attack_rate"`
	HitReactRate float64                `yaml:"hit_react_rate"`
	Sockets      map[string]common.Vec3 `yaml:"sockets"`
	Montages     map[string]MontageSpec `yaml:"montages"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type EnemyAISpec struct {
	CombatRadius     float64 `yaml:"combat_radius"`
	AttackRadius     float64 `yaml:"attack_radius"`
	PatrolRadius     float64 `yaml:"patrol_radius"`
	PatrolSpeed      float64 `yaml:"patrol_speed"`
	ChaseSpeed       float64 `yaml:"chase_speed"`
	WaitMin          float64 `yaml:"wait_min"`
	WaitMax          float64 `yaml:"wait_max"`
	AttackMin        float64 `yaml:"attack_min"`
	AttackMax        float64 `yaml:"attack_max"`
	PatrolAcceptance float64 `yaml:"patrol_acceptance"`
	ChaseAcceptance  float64 `yaml:"chase_acceptance"`
	DeathLifeSpan    float64 `yaml:"death_life_span"`
	SoulOffsetZ      float64 `yaml:"soul_offset_z"`
}

type EnemySpec struct {
	Name          string                 `yaml:"name"`
	Tags          []string               `yaml:"tags"`
	Attributes    AttributesSpec         `yaml:"attributes"`
	Capsule       CapsuleSpec            `yaml:"capsule"`
	AI            EnemyAISpec            `yaml:"ai"`
	Sensing       SensingSpec            `yaml:"sensing"`
	HitReactRate  float64                `yaml:"hit_react_rate"`
	DefaultWeapon string                 `yaml:"default_weapon"`
	Soul          string                 `yaml:"soul"`
	Sockets       map[string]common.Vec3 `yaml:"sockets"`
	Montages      map[string]MontageSpec `yaml:"montages"`
}

// LoadEnemySpec loads an enemy prefab; an empty name means enemy.yaml.
func LoadEnemySpec(name string) (*EnemySpec, error) {
	if name == "" {
		name = "enemy.yaml"
	}
	spec, err := LoadSpec[EnemySpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type WeaponSpec struct {
	Name           string      `yaml:"name"`
	Damage         float64     `yaml:"damage"`
	BoxTraceStart  common.Vec3 `yaml:"box_trace_start"`
	BoxTraceEnd    common.Vec3 `yaml:"box_trace_end"`
	BoxTraceExtent float64     `yaml:"box_trace_extent"`
	BladeWidth     float64     `yaml:"blade_width"`
	BladeLength    float64     `yaml:"blade_length"`
	SphereRadius   float64     `yaml:"sphere_radius"`
	Hover          HoverSpec   `yaml:"hover"`
}

func LoadWeaponSpec(name string) (*WeaponSpec, error) {
	if name == "" {
		name = "weapon.yaml"
	}
	spec, err := LoadSpec[WeaponSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type SoulSpec struct {
	Name         string    `yaml:"name"`
	DesiredZ     float64   `yaml:"desired_z"`
	DriftRate    float64   `yaml:"drift_rate"`
	SphereRadius float64   `yaml:"sphere_radius"`
	Hover        HoverSpec `yaml:"hover"`
}

func LoadSoulSpec(name string) (*SoulSpec, error) {
	if name == "" {
		name = "soul.yaml"
	}
	spec, err := LoadSpec[SoulSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type TreasureSpec struct {
	Name         string    `yaml:"name"`
	Gold         int       `yaml:"gold"`
	SphereRadius float64   `yaml:"sphere_radius"`
	Hover        HoverSpec `yaml:"hover"`
}

func LoadTreasureSpec(name string) (*TreasureSpec, error) {
	spec, err := LoadSpec[TreasureSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type TreasureDropSpec struct {
	Prefab   string  `yaml:"prefab"`
	DropRate float64 `yaml:"drop_rate"`
}

type BreakableSpec struct {
	Name        string             `yaml:"name"`
	Radius      float64            `yaml:"radius"`
	DropOffsetZ float64            `yaml:"drop_offset_z"`
	Lifespan    float64            `yaml:"lifespan"`
	Drops       []TreasureDropSpec `yaml:"drops"`
}

func LoadBreakableSpec(name string) (*BreakableSpec, error) {
	if name == "" {
		name = "breakable.yaml"
	}
	spec, err := LoadSpec[BreakableSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// HooksSpec selects the script that implements designer hooks.
type HooksSpec struct {
	Script string `yaml:"script"`
}

func LoadHooksSpec() (*HooksSpec, error) {
	spec, err := LoadSpec[HooksSpec]("hooks.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
