package levels

import (
	"errors"
	"fmt"

	"github.com/milk9111/slash/common"
)

var (
	ErrEmptyBounds   = errors.New("bounds must have positive width and height")
	ErrUnknownPatrol = errors.New("unknown patrol point")
)

// Level is a hand-authored arena: static geometry, the player spawn and
// everything placed in it.
type Level struct {
	Name         string        `yaml:"name"`
	Bounds       Bounds        `yaml:"bounds"`
	CellSize     float64       `yaml:"cell_size"`
	Walls        bool          `yaml:"walls"`
	Player       Spawn         `yaml:"player"`
	PatrolPoints []PatrolPoint `yaml:"patrol_points"`
	Enemies      []EnemySpawn  `yaml:"enemies"`
	Obstacles    []Obstacle    `yaml:"obstacles"`
	Weapons      []Placement   `yaml:"weapons"`
	Treasures    []Placement   `yaml:"treasures"`
	Breakables   []Placement   `yaml:"breakables"`
}

type Bounds struct {
	MinX   float64 `yaml:"min_x"`
	MinY   float64 `yaml:"min_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (b Bounds) MaxX() float64 { return b.MinX + b.Width }
func (b Bounds) MaxY() float64 { return b.MinY + b.Height }

func (b Bounds) Contains(p common.Vec3) bool {
	return p.X >= b.MinX && p.X <= b.MaxX() && p.Y >= b.MinY && p.Y <= b.MaxY()
}

type Spawn struct {
	Position common.Vec3 `yaml:"position"`
	Yaw      float64     `yaml:"yaw"`
}

type PatrolPoint struct {
	Name     string      `yaml:"name"`
	Position common.Vec3 `yaml:"position"`
}

type EnemySpawn struct {
	Prefab   string      `yaml:"prefab"`
	Position common.Vec3 `yaml:"position"`
	Yaw      float64     `yaml:"yaw"`
	Patrol   []string    `yaml:"patrol"`
}

type Obstacle struct {
	Position common.Vec3 `yaml:"position"`
	Width    float64     `yaml:"width"`
	Height   float64     `yaml:"height"`
}

type Placement struct {
	Prefab   string      `yaml:"prefab"`
	Position common.Vec3 `yaml:"position"`
}

// Validate checks the references and extents a loader relies on.
func (l *Level) Validate() error {
	if l.Bounds.Width <= 0 || l.Bounds.Height <= 0 {
		return ErrEmptyBounds
	}
	points := make(map[string]bool, len(l.PatrolPoints))
	for _, p := range l.PatrolPoints {
		if p.Name == "" {
			return errors.New("patrol point without a name")
		}
		if points[p.Name] {
			return fmt.Errorf("duplicate patrol point %q", p.Name)
		}
		points[p.Name] = true
	}
	for i, e := range l.Enemies {
		for _, name := range e.Patrol {
			if !points[name] {
				return fmt.Errorf("enemy %d: %w %q", i, ErrUnknownPatrol, name)
			}
		}
	}
	for i, o := range l.Obstacles {
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("obstacle %d: non-positive size", i)
		}
	}
	if !l.Bounds.Contains(l.Player.Position) {
		return fmt.Errorf("player spawn %v outside bounds", l.Player.Position)
	}
	return nil
}
