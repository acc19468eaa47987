package system

import (
	"container/heap"
	"math"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/sirupsen/logrus"
)

const defaultNavCellSize = 50.0

// MoveTo issues a move request toward goal. Arrival within acceptance (plus
// both collision radii) publishes EventMoveCompleted on e.
func MoveTo(w *ecs.World, e, goal ecs.Entity, acceptance float64) bool {
	if !ecs.IsAlive(w, goal) {
		return false
	}
	nav, ok := ecs.Get(w, e, component.NavigationComponent.Kind())
	if !ok {
		return false
	}
	nav.Goal = ref(goal)
	nav.AcceptanceRadius = acceptance
	nav.Active = true
	nav.Path = nil
	nav.PathIndex = 0
	nav.LastGoalCellX = -1
	nav.LastGoalCellY = -1
	return true
}

// StopMovement cancels the active move request without notification.
func StopMovement(w *ecs.World, e ecs.Entity) {
	if nav, ok := ecs.Get(w, e, component.NavigationComponent.Kind()); ok {
		nav.Active = false
		nav.Path = nil
		nav.PathIndex = 0
	}
	if mov, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
		mov.Stop()
	}
}

func IsMoving(w *ecs.World, e ecs.Entity) bool {
	nav, ok := ecs.Get(w, e, component.NavigationComponent.Kind())
	return ok && nav.Active
}

func collisionRadius(w *ecs.World, e ecs.Entity) float64 {
	if c, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok && c.CapsuleRadius > 0 {
		return c.CapsuleRadius
	}
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Kind == component.ShapeCircle && !pb.Sensor {
		return pb.Radius
	}
	return 0
}

// NavigationSystem steers entities with an active move request along an A*
// path over the level grid.
type NavigationSystem struct{}

func NewNavigationSystem() *NavigationSystem {
	return &NavigationSystem{}
}

func (ns *NavigationSystem) Update(w *ecs.World) {
	if ns == nil || w == nil {
		return
	}
	var grid *component.NavGrid
	if ge, ok := ecs.First(w, component.NavGridComponent.Kind()); ok {
		grid, _ = ecs.Get(w, ge, component.NavGridComponent.Kind())
	}
	dt := w.DT()

	ecs.ForEach3(w, component.NavigationComponent.Kind(), component.MovementComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, nav *component.Navigation, mov *component.Movement, t *component.Transform) {
		if !nav.Active {
			return
		}
		goal := ent(nav.Goal)
		goalPos, ok := position(w, goal)
		if !ok {
			ns.finish(w, e, nav, mov, false)
			return
		}

		reach := nav.AcceptanceRadius + collisionRadius(w, e) + collisionRadius(w, goal)
		if common.Dist(t.Position.Flat(), goalPos.Flat()) <= reach {
			ns.finish(w, e, nav, mov, true)
			return
		}

		target := goalPos
		if grid != nil {
			if next, ok := ns.followPath(grid, nav, t.Position, goalPos); ok {
				target = next
			}
		}

		d := target.Sub(t.Position).Flat()
		dist := d.Len()
		speed := mov.MaxSpeed
		if dt > 0 && dist < speed*dt {
			speed = dist / dt
		}
		dir := d.Normalize()
		mov.VelX = dir.X * speed
		mov.VelY = dir.Y * speed
		if mov.OrientToMovement && dist > 1e-6 {
			t.Yaw = common.YawTowards(t.Position, target)
		}
	})
}

func (ns *NavigationSystem) finish(w *ecs.World, e ecs.Entity, nav *component.Navigation, mov *component.Movement, success bool) {
	goal := ent(nav.Goal)
	nav.Active = false
	nav.Path = nil
	nav.PathIndex = 0
	mov.Stop()
	w.Events().Push(ecs.Event{Kind: EventMoveCompleted, Entity: e, Data: MoveCompleted{Goal: goal, Success: success}})
	logger.For("navigation").WithFields(logrus.Fields{"entity": e, "goal": goal, "success": success}).Debug("move completed")
}

// followPath returns the next waypoint, repathing when the goal changes cell.
// Without a path it reports false and the caller steers straight at the goal.
func (ns *NavigationSystem) followPath(grid *component.NavGrid, nav *component.Navigation, from, goal common.Vec3) (common.Vec3, bool) {
	gx, gy := grid.Cell(goal.X, goal.Y)
	if nav.Path == nil || gx != nav.LastGoalCellX || gy != nav.LastGoalCellY {
		sx, sy := grid.Cell(from.X, from.Y)
		path := astarPath(gridPos{sx, sy}, gridPos{gx, gy}, grid)
		nav.Path = gridPathToWorld(path, grid)
		nav.PathIndex = 1
		nav.LastGoalCellX = gx
		nav.LastGoalCellY = gy
	}
	if len(nav.Path) == 0 {
		return common.Vec3{}, false
	}

	for nav.PathIndex < len(nav.Path)-1 {
		n := nav.Path[nav.PathIndex]
		if math.Hypot(n.X-from.X, n.Y-from.Y) > grid.CellSize*0.5 {
			break
		}
		nav.PathIndex++
	}
	if nav.PathIndex >= len(nav.Path)-1 {
		return goal, true
	}
	n := nav.Path[nav.PathIndex]
	return common.V3(n.X, n.Y, from.Z), true
}

// BuildNavGrid rasterises static bodies into a walkability grid.
func BuildNavGrid(w *ecs.World, originX, originY, width, height, cellSize float64) *component.NavGrid {
	if cellSize <= 0 {
		cellSize = defaultNavCellSize
	}
	grid := &component.NavGrid{
		CellSize: cellSize,
		OriginX:  originX,
		OriginY:  originY,
		Width:    int(math.Ceil(width / cellSize)),
		Height:   int(math.Ceil(height / cellSize)),
	}
	if grid.Width <= 0 || grid.Height <= 0 {
		grid.Width, grid.Height = 0, 0
		return grid
	}
	grid.Blocked = make([]bool, grid.Width*grid.Height)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if !body.Static {
			return
		}
		hw, hh := boxSize(body)
		hw, hh = hw/2, hh/2
		if body.Kind == component.ShapeCircle && body.Radius > 0 {
			hw, hh = body.Radius, body.Radius
		}
		startX, startY := grid.Cell(t.Position.X-hw, t.Position.Y-hh)
		endX, endY := grid.Cell(t.Position.X+hw-0.001, t.Position.Y+hh-0.001)
		for y := max(startY, 0); y <= min(endY, grid.Height-1); y++ {
			for x := max(startX, 0); x <= min(endX, grid.Width-1); x++ {
				grid.Blocked[y*grid.Width+x] = true
			}
		}
	})
	return grid
}

type gridPos struct {
	x int
	y int
}

func gridPathToWorld(path []gridPos, grid *component.NavGrid) []component.PathNode {
	if len(path) == 0 {
		return nil
	}
	out := make([]component.PathNode, 0, len(path))
	for _, p := range path {
		x, y := grid.Center(p.x, p.y)
		out = append(out, component.PathNode{X: x, Y: y})
	}
	return out
}

func astarPath(start, goal gridPos, grid *component.NavGrid) []gridPos {
	if grid.IsBlocked(start.x, start.y) || grid.IsBlocked(goal.x, goal.y) {
		return nil
	}
	gridW, gridH := grid.Width, grid.Height

	open := &openSet{}
	heap.Init(open)

	cameFrom := make([]int, gridW*gridH)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	gScore := make([]float64, gridW*gridH)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	startIdx := start.y*gridW + start.x
	goalIdx := goal.y*gridW + goal.x
	gScore[startIdx] = 0
	heap.Push(open, &openItem{pos: start, f: heuristic(start, goal), g: 0})

	expanded := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.pos
		curIdx := cur.y*gridW + cur.x

		if curIdx == goalIdx {
			return reconstructPath(cameFrom, gridW, startIdx, goalIdx)
		}
		expanded++
		if grid.MaxNodes > 0 && expanded > grid.MaxNodes {
			return nil
		}

		for _, n := range neighbors(cur, gridW, gridH) {
			idx := n.y*gridW + n.x
			if grid.Blocked[idx] {
				continue
			}
			tentativeG := gScore[curIdx] + 1
			if tentativeG < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentativeG
				heap.Push(open, &openItem{pos: n, f: tentativeG + heuristic(n, goal), g: tentativeG})
			}
		}
	}
	return nil
}

func reconstructPath(cameFrom []int, gridW int, startIdx, goalIdx int) []gridPos {
	if startIdx == goalIdx {
		return []gridPos{{x: startIdx % gridW, y: startIdx / gridW}}
	}
	if goalIdx < 0 || goalIdx >= len(cameFrom) || cameFrom[goalIdx] == -1 {
		return nil
	}

	path := make([]gridPos, 0, 32)
	cur := goalIdx
	for cur != -1 {
		path = append(path, gridPos{x: cur % gridW, y: cur / gridW})
		if cur == startIdx {
			break
		}
		cur = cameFrom[cur]
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func neighbors(p gridPos, gridW, gridH int) []gridPos {
	out := make([]gridPos, 0, 4)
	if p.x > 0 {
		out = append(out, gridPos{x: p.x - 1, y: p.y})
	}
	if p.x < gridW-1 {
		out = append(out, gridPos{x: p.x + 1, y: p.y})
	}
	if p.y > 0 {
		out = append(out, gridPos{x: p.x, y: p.y - 1})
	}
	if p.y < gridH-1 {
		out = append(out, gridPos{x: p.x, y: p.y + 1})
	}
	return out
}

func heuristic(a, b gridPos) float64 {
	return math.Abs(float64(a.x-b.x)) + math.Abs(float64(a.y-b.y))
}

type openItem struct {
	pos   gridPos
	f     float64
	g     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
