package system

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
)

const (
	defaultPawnRadius = 34.0
	defaultBoxSize    = 32.0
)

// PhysicsSystem runs the ground plane through a Chipmunk2D space. Pawns are
// dynamic circles, level geometry and breakables are static, weapon blades
// and pickup spheres are kinematic sensors. Height is integrated separately.
type PhysicsSystem struct {
	space    *cp.Space
	entities map[ecs.Entity]*bodyInfo
	overlaps map[sensorKey]map[ecs.Entity]bool
}

type bodyInfo struct {
	body     *cp.Body
	shape    *cp.Shape
	sphere   *cp.Shape
	static   bool
	dynamic  bool
	shapeIn  bool
	sphereIn bool
	bodyIn   bool
}

type sensorKey struct {
	entity ecs.Entity
	kind   SensorKind
}

func NewPhysicsSystem() *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	return &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
		overlaps: make(map[sensorKey]map[ecs.Entity]bool),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Init(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	w.OnDestroy(func(_ *ecs.World, e ecs.Entity) {
		ps.release(e)
	})
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	dt := w.DT()

	SyncAttachments(w)
	ps.integrateHeight(w, dt)
	ps.syncEntities(w)
	ps.pushBodies(w)

	if dt > 0 {
		ps.space.Step(dt)
	}

	ps.pullBodies(w, dt)
	SyncAttachments(w)
	ps.pushKinematic(w)
	ps.detectOverlaps(w)
}

func (ps *PhysicsSystem) integrateHeight(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.MovementComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, mov *component.Movement, t *component.Transform) {
		if mov.Gravity <= 0 && mov.VelZ == 0 {
			mov.Grounded = t.Position.Z <= mov.GroundZ+1e-6
			return
		}
		mov.VelZ -= mov.Gravity * dt
		t.Position.Z += mov.VelZ * dt
		if t.Position.Z <= mov.GroundZ {
			t.Position.Z = mov.GroundZ
			mov.VelZ = 0
			mov.Grounded = true
			return
		}
		mov.Grounded = false
	})
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		info := ps.entities[e]
		if info == nil {
			info = ps.createBodyInfo(pb, t)
			ps.entities[e] = info
		}
		if info.shape == nil {
			info.shape = ps.createShape(e, info, pb, t)
			pb.Body = info.body
			pb.Shape = info.shape
		}
		ps.setShapeActive(info, true, pb.Active)
	})

	ecs.ForEach2(w, component.ItemComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, item *component.Item, t *component.Transform) {
		info := ps.entities[e]
		if info == nil {
			info = ps.createKinematic(t)
			ps.entities[e] = info
		}
		if info.sphere == nil && item.SphereRadius > 0 {
			if info.static {
				return
			}
			sphere := cp.NewCircle(info.body, item.SphereRadius, cp.Vector{})
			sphere.SetSensor(true)
			sphere.UserData = e
			info.sphere = sphere
		}
		ps.setShapeActive(info, false, item.SphereEnabled)
	})
}

func (ps *PhysicsSystem) createBodyInfo(pb *component.PhysicsBody, t *component.Transform) *bodyInfo {
	if pb.Static {
		return &bodyInfo{body: ps.space.StaticBody, static: true, bodyIn: true}
	}
	if pb.Sensor {
		return ps.createKinematic(t)
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: t.Position.X, Y: t.Position.Y})
	ps.space.AddBody(body)
	return &bodyInfo{body: body, dynamic: true, bodyIn: true}
}

func (ps *PhysicsSystem) createKinematic(t *component.Transform) *bodyInfo {
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: t.Position.X, Y: t.Position.Y})
	body.SetAngle(t.Yaw * math.Pi / 180)
	ps.space.AddBody(body)
	return &bodyInfo{body: body, bodyIn: true}
}

func (ps *PhysicsSystem) createShape(e ecs.Entity, info *bodyInfo, pb *component.PhysicsBody, t *component.Transform) *cp.Shape {
	var shape *cp.Shape
	switch {
	case info.static && pb.Kind == component.ShapeCircle:
		r := pb.Radius
		if r <= 0 {
			r = defaultBoxSize / 2
		}
		shape = cp.NewCircle(info.body, r, cp.Vector{X: t.Position.X, Y: t.Position.Y})
	case info.static:
		w, h := boxSize(pb)
		bb := cp.BB{L: t.Position.X - w/2, B: t.Position.Y - h/2, R: t.Position.X + w/2, T: t.Position.Y + h/2}
		shape = cp.NewBox2(info.body, bb, 0)
	case pb.Kind == component.ShapeBox:
		// Blades extend forward from the grip along local +X.
		w, h := boxSize(pb)
		shape = cp.NewBox2(info.body, cp.BB{L: 0, B: -h / 2, R: w, T: h / 2}, 0)
	default:
		r := pb.Radius
		if r <= 0 {
			r = defaultPawnRadius
		}
		shape = cp.NewCircle(info.body, r, cp.Vector{})
	}
	shape.SetSensor(pb.Sensor)
	shape.SetFriction(0)
	shape.UserData = e
	return shape
}

func boxSize(pb *component.PhysicsBody) (float64, float64) {
	w, h := pb.Width, pb.Height
	if w <= 0 {
		w = defaultBoxSize
	}
	if h <= 0 {
		h = defaultBoxSize
	}
	return w, h
}

func (ps *PhysicsSystem) setShapeActive(info *bodyInfo, main bool, active bool) {
	shape, in := info.sphere, &info.sphereIn
	if main {
		shape, in = info.shape, &info.shapeIn
	}
	if shape == nil || active == *in {
		return
	}
	if active {
		ps.space.AddShape(shape)
	} else {
		ps.space.RemoveShape(shape)
	}
	*in = active
}

func (ps *PhysicsSystem) pushBodies(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || info.body == nil {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		info.body.SetPosition(cp.Vector{X: t.Position.X, Y: t.Position.Y})
		if !info.dynamic {
			info.body.SetAngle(t.Yaw * math.Pi / 180)
			continue
		}
		vx, vy := 0.0, 0.0
		if mov, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
			vx, vy = mov.VelX, mov.VelY
		}
		info.body.SetVelocity(vx, vy)
	}
}

func (ps *PhysicsSystem) pullBodies(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.MovementComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, mov *component.Movement, t *component.Transform) {
		if info := ps.entities[e]; info != nil && info.dynamic {
			pos := info.body.Position()
			t.Position.X = pos.X
			t.Position.Y = pos.Y
			return
		}
		t.Position.X += mov.VelX * dt
		t.Position.Y += mov.VelY * dt
	})
}

func (ps *PhysicsSystem) pushKinematic(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || info.dynamic || info.body == nil {
			continue
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			info.body.SetPosition(cp.Vector{X: t.Position.X, Y: t.Position.Y})
			info.body.SetAngle(t.Yaw * math.Pi / 180)
		}
	}
}

// detectOverlaps queries every active sensor and publishes begin/end events
// for pawns entering or leaving it since the previous tick.
func (ps *PhysicsSystem) detectOverlaps(w *ecs.World) {
	current := make(map[sensorKey]map[ecs.Entity]bool)
	for e, info := range ps.entities {
		if !ecs.IsAlive(w, e) {
			continue
		}
		if info.shapeIn && info.shape != nil && info.shape.Sensor() {
			current[sensorKey{e, SensorBody}] = ps.query(e, info.shape)
		}
		if info.sphereIn && info.sphere != nil {
			current[sensorKey{e, SensorPickup}] = ps.query(e, info.sphere)
		}
	}

	for _, key := range sortedKeys(ps.overlaps) {
		now := current[key]
		for _, other := range sortedSet(ps.overlaps[key]) {
			if now[other] {
				continue
			}
			if ecs.IsAlive(w, key.entity) {
				w.Events().Push(ecs.Event{Kind: EventOverlapEnd, Entity: key.entity, Data: Overlap{Other: other, Sensor: key.kind}})
			}
		}
	}
	for _, key := range sortedKeys(current) {
		prev := ps.overlaps[key]
		for _, other := range sortedSet(current[key]) {
			if prev[other] {
				continue
			}
			w.Events().Push(ecs.Event{Kind: EventOverlapBegin, Entity: key.entity, Data: Overlap{Other: other, Sensor: key.kind}})
		}
	}
	ps.overlaps = current
}

func sortedKeys(m map[sensorKey]map[ecs.Entity]bool) []sensorKey {
	keys := make([]sensorKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].entity != keys[j].entity {
			return keys[i].entity < keys[j].entity
		}
		return keys[i].kind < keys[j].kind
	})
	return keys
}

func sortedSet(set map[ecs.Entity]bool) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (ps *PhysicsSystem) query(self ecs.Entity, shape *cp.Shape) map[ecs.Entity]bool {
	out := map[ecs.Entity]bool{}
	ps.space.ShapeQuery(shape, func(other *cp.Shape, _ *cp.ContactPointSet) {
		if other == nil || other.Sensor() {
			return
		}
		e, ok := other.UserData.(ecs.Entity)
		if !ok || e == self {
			return
		}
		out[e] = true
	})
	return out
}

// BoxTrace sweeps a box of half-size extent from start to end and returns the
// nearest combatant that ignore does not reject.
func (ps *PhysicsSystem) BoxTrace(w *ecs.World, start, end common.Vec3, extent float64, ignore func(ecs.Entity) bool) (ecs.Entity, common.Vec3, bool) {
	if ps == nil || ps.space == nil {
		return 0, common.Vec3{}, false
	}
	var (
		best      ecs.Entity
		bestAlpha = math.Inf(1)
		bestPoint cp.Vector
	)
	ps.space.SegmentQuery(
		cp.Vector{X: start.X, Y: start.Y},
		cp.Vector{X: end.X, Y: end.Y},
		extent,
		cp.SHAPE_FILTER_ALL,
		func(shape *cp.Shape, point, _ cp.Vector, alpha float64, _ interface{}) {
			e, ok := shape.UserData.(ecs.Entity)
			if !ok || shape.Sensor() || !ecs.Has(w, e, component.CombatantComponent.Kind()) {
				return
			}
			if ignore != nil && ignore(e) {
				return
			}
			if alpha < bestAlpha {
				best, bestAlpha, bestPoint = e, alpha, point
			}
		},
		nil,
	)
	if best == 0 {
		return 0, common.Vec3{}, false
	}
	z := common.Lerp(start.Z, end.Z, bestAlpha)
	return best, common.V3(bestPoint.X, bestPoint.Y, z), true
}

// LineOfSight reports whether no static level geometry lies between a and b.
func (ps *PhysicsSystem) LineOfSight(w *ecs.World, a, b common.Vec3) bool {
	if ps == nil || ps.space == nil {
		return true
	}
	visible := true
	ps.space.SegmentQuery(cp.Vector{X: a.X, Y: a.Y}, cp.Vector{X: b.X, Y: b.Y}, 0, cp.SHAPE_FILTER_ALL,
		func(shape *cp.Shape, _, _ cp.Vector, _ float64, _ interface{}) {
			e, ok := shape.UserData.(ecs.Entity)
			if !ok || shape.Sensor() || ecs.Has(w, e, component.CombatantComponent.Kind()) {
				return
			}
			if info := ps.entities[e]; info != nil && info.static {
				visible = false
			}
		}, nil)
	return visible
}

func (ps *PhysicsSystem) release(e ecs.Entity) {
	info := ps.entities[e]
	if info == nil {
		return
	}
	ps.setShapeActive(info, true, false)
	ps.setShapeActive(info, false, false)
	if info.bodyIn && !info.static {
		ps.space.RemoveBody(info.body)
		info.bodyIn = false
	}
	delete(ps.entities, e)
	for key := range ps.overlaps {
		if key.entity == e {
			delete(ps.overlaps, key)
			continue
		}
		delete(ps.overlaps[key], e)
	}
}
