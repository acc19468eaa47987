package entity

import (
	"fmt"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/levels"
)

const wallThickness = 50.0

// LoadedLevel is what LoadLevelToWorld placed in the world.
type LoadedLevel struct {
	Level        ecs.Entity
	Player       ecs.Entity
	Enemies      []ecs.Entity
	PatrolPoints map[string]ecs.Entity
}

// LoadLevelToWorld loads a level into the ECS world: geometry first, then
// patrol points, the player, enemies and props.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) (*LoadedLevel, error) {
	if lvl == nil {
		return nil, fmt.Errorf("level: nil level")
	}
	out := &LoadedLevel{PatrolPoints: make(map[string]ecs.Entity, len(lvl.PatrolPoints))}

	b := newBuilder(w, "level")
	add(b, "bounds", component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		MinX:   lvl.Bounds.MinX,
		MinY:   lvl.Bounds.MinY,
		Width:  lvl.Bounds.Width,
		Height: lvl.Bounds.Height,
	})
	level, err := b.done()
	if err != nil {
		return nil, err
	}
	out.Level = level

	if lvl.Walls {
		if err := addWalls(w, lvl.Bounds); err != nil {
			return nil, err
		}
	}
	for i, o := range lvl.Obstacles {
		if _, err := NewObstacle(w, o.Position, o.Width, o.Height); err != nil {
			return nil, fmt.Errorf("level: obstacle %d: %w", i, err)
		}
	}
	for _, p := range lvl.PatrolPoints {
		e, err := NewPatrolPoint(w, p.Position)
		if err != nil {
			return nil, fmt.Errorf("level: patrol point %s: %w", p.Name, err)
		}
		out.PatrolPoints[p.Name] = e
	}

	player, err := NewPlayer(w, lvl.Player.Position, lvl.Player.Yaw)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	out.Player = player

	for i, spawn := range lvl.Enemies {
		route := make([]ecs.Entity, 0, len(spawn.Patrol))
		for _, name := range spawn.Patrol {
			p, ok := out.PatrolPoints[name]
			if !ok {
				return nil, fmt.Errorf("level: enemy %d: %w %q", i, levels.ErrUnknownPatrol, name)
			}
			route = append(route, p)
		}
		e, err := NewEnemy(w, spawn.Prefab, spawn.Position, spawn.Yaw, route)
		if err != nil {
			return nil, fmt.Errorf("level: enemy %d: %w", i, err)
		}
		out.Enemies = append(out.Enemies, e)
	}

	for i, p := range lvl.Weapons {
		if _, err := NewWeapon(w, p.Prefab, p.Position); err != nil {
			return nil, fmt.Errorf("level: weapon %d: %w", i, err)
		}
	}
	for i, p := range lvl.Treasures {
		if _, err := NewTreasure(w, p.Prefab, p.Position); err != nil {
			return nil, fmt.Errorf("level: treasure %d: %w", i, err)
		}
	}
	for i, p := range lvl.Breakables {
		if _, err := NewBreakable(w, p.Prefab, p.Position); err != nil {
			return nil, fmt.Errorf("level: breakable %d: %w", i, err)
		}
	}
	return out, nil
}

// addWalls rings the bounds with static boxes just outside the playable area.
func addWalls(w *ecs.World, bounds levels.Bounds) error {
	cx := bounds.MinX + bounds.Width/2
	cy := bounds.MinY + bounds.Height/2
	half := wallThickness / 2
	walls := []struct {
		pos           common.Vec3
		width, height float64
	}{
		{common.V3(cx, bounds.MinY-half, 0), bounds.Width + 2*wallThickness, wallThickness},
		{common.V3(cx, bounds.MaxY()+half, 0), bounds.Width + 2*wallThickness, wallThickness},
		{common.V3(bounds.MinX-half, cy, 0), wallThickness, bounds.Height},
		{common.V3(bounds.MaxX()+half, cy, 0), wallThickness, bounds.Height},
	}
	for i, wall := range walls {
		if _, err := NewObstacle(w, wall.pos, wall.width, wall.height); err != nil {
			return fmt.Errorf("level: wall %d: %w", i, err)
		}
	}
	return nil
}
