package system

import (
	"math"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
)

// SightChecker reports whether nothing blocks the view between two points.
type SightChecker interface {
	LineOfSight(w *ecs.World, a, b common.Vec3) bool
}

// PerceptionSystem publishes EventPawnSeen for every player pawn inside a
// sensing enemy's view cone. Sensing runs every PawnSensing.Interval seconds.
type PerceptionSystem struct {
	sight SightChecker
}

func NewPerceptionSystem(sight SightChecker) *PerceptionSystem {
	return &PerceptionSystem{sight: sight}
}

func (ps *PerceptionSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	pawns := w.Query(component.PlayerComponent.Kind(), component.TransformComponent.Kind())
	if len(pawns) == 0 {
		return
	}
	dt := w.DT()

	ecs.ForEach2(w, component.PawnSensingComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sensing *component.PawnSensing, t *component.Transform) {
		if !sensing.Enabled {
			return
		}
		sensing.Elapsed += dt
		if sensing.Interval > 0 && sensing.Elapsed < sensing.Interval {
			return
		}
		sensing.Elapsed = 0

		for _, pawn := range pawns {
			if pawn == e {
				continue
			}
			pt, ok := ecs.Get(w, pawn, component.TransformComponent.Kind())
			if !ok || !ps.canSee(w, sensing, t, pt.Position) {
				continue
			}
			w.Events().Push(ecs.Event{Kind: EventPawnSeen, Entity: e, Data: PawnSeen{Pawn: pawn}})
		}
	})
}

func (ps *PerceptionSystem) canSee(w *ecs.World, sensing *component.PawnSensing, t *component.Transform, target common.Vec3) bool {
	to := target.Sub(t.Position).Flat()
	dist := to.Len()
	if sensing.SightRadius > 0 && dist > sensing.SightRadius {
		return false
	}
	if dist > 1e-6 && sensing.PeripheralAngle > 0 && sensing.PeripheralAngle < 180 {
		cos := common.Forward(t.Yaw).Dot(to.Scale(1 / dist))
		if cos < math.Cos(sensing.PeripheralAngle*math.Pi/180) {
			return false
		}
	}
	if ps.sight != nil && !ps.sight.LineOfSight(w, t.Position, target) {
		return false
	}
	return true
}
