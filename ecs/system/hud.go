package system

import (
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/hud"
)

// HUDSystem publishes the visible enemy health bars to the overlay.
type HUDSystem struct {
	overlay *hud.PlayerOverlay
	bars    []hud.EnemyBar
}

func NewHUDSystem(overlay *hud.PlayerOverlay) *HUDSystem {
	return &HUDSystem{overlay: overlay}
}

func (s *HUDSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.overlay == nil {
		return
	}
	s.bars = s.bars[:0]
	ecs.ForEach2(w, component.HealthBarComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bar *component.HealthBar, t *component.Transform) {
		if !bar.Visible {
			return
		}
		s.bars = append(s.bars, hud.EnemyBar{
			Entity:  ref(e),
			X:       t.Position.X,
			Y:       t.Position.Y,
			Z:       t.Position.Z,
			Percent: bar.Percent,
		})
	})
	s.overlay.SetEnemyBars(s.bars)
}
