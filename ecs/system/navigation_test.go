package system

import (
	"testing"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/ecs/entity"
)

func wallGrid() *component.NavGrid {
	g := &component.NavGrid{CellSize: 10, Width: 5, Height: 5, Blocked: make([]bool, 25)}
	for y := 0; y < 4; y++ {
		g.Blocked[y*g.Width+2] = true
	}
	return g
}

func TestAStarPath(t *testing.T) {
	tests := []struct {
		name     string
		grid     func() *component.NavGrid
		start    gridPos
		goal     gridPos
		wantLen  int
		wantPath bool
	}{
		{name: "open_straight", grid: func() *component.NavGrid {
			return &component.NavGrid{CellSize: 10, Width: 5, Height: 5, Blocked: make([]bool, 25)}
		}, start: gridPos{0, 0}, goal: gridPos{4, 0}, wantLen: 5, wantPath: true},
		{name: "around_wall", grid: wallGrid, start: gridPos{0, 0}, goal: gridPos{4, 0}, wantLen: 13, wantPath: true},
		{name: "same_cell", grid: wallGrid, start: gridPos{1, 1}, goal: gridPos{1, 1}, wantLen: 1, wantPath: true},
		{name: "goal_blocked", grid: wallGrid, start: gridPos{0, 0}, goal: gridPos{2, 0}},
		{name: "sealed", grid: func() *component.NavGrid {
			g := wallGrid()
			g.Blocked[4*g.Width+2] = true
			return g
		}, start: gridPos{0, 0}, goal: gridPos{4, 0}},
		{name: "node_budget", grid: func() *component.NavGrid {
			g := wallGrid()
			g.MaxNodes = 3
			return g
		}, start: gridPos{0, 0}, goal: gridPos{4, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := tc.grid()
			path := astarPath(tc.start, tc.goal, g)
			if !tc.wantPath {
				if path != nil {
					t.Fatalf("expected no path, got %v", path)
				}
				return
			}
			if len(path) != tc.wantLen {
				t.Fatalf("expected %d nodes, got %d: %v", tc.wantLen, len(path), path)
			}
			if path[0] != tc.start || path[len(path)-1] != tc.goal {
				t.Fatalf("path does not join start and goal: %v", path)
			}
			for i, p := range path {
				if g.IsBlocked(p.x, p.y) {
					t.Fatalf("path crosses blocked cell %v", p)
				}
				if i > 0 && heuristic(path[i-1], p) != 1 {
					t.Fatalf("path jumps from %v to %v", path[i-1], p)
				}
			}
		})
	}
}

func TestBuildNavGrid(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := entity.NewObstacle(w, common.V3(125, 125, 0), 50, 50); err != nil {
		t.Fatalf("obstacle: %v", err)
	}
	g := BuildNavGrid(w, 0, 0, 250, 250, 50)
	if g.Width != 5 || g.Height != 5 {
		t.Fatalf("unexpected size %dx%d", g.Width, g.Height)
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			want := x == 2 && y == 2
			if g.IsBlocked(x, y) != want {
				t.Fatalf("cell %d,%d blocked=%v", x, y, !want)
			}
		}
	}
}

func TestMoveToPublishesCompletion(t *testing.T) {
	r := newRig(t)
	goal := r.patrolPoint(t, common.V3(-200, 0, 0))
	e := r.spawnEnemy(t, common.Vec3{}, 180, goal)

	var done []MoveCompleted
	r.w.Events().SubscribeEntity(EventMoveCompleted, e, func(_ *ecs.World, evt ecs.Event) {
		done = append(done, evt.Data.(MoveCompleted))
	})
	for i := 0; i < 180 && len(done) == 0; i++ {
		r.step(1)
	}
	if len(done) == 0 {
		t.Fatalf("move never completed")
	}
	if !done[0].Success || done[0].Goal != goal {
		t.Fatalf("unexpected completion %+v", done[0])
	}
	et, _ := ecs.Get(r.w, e, component.TransformComponent.Kind())
	gt, _ := ecs.Get(r.w, goal, component.TransformComponent.Kind())
	en := enemyOf(t, r.w, e)
	if d := common.Dist(et.Position.Flat(), gt.Position.Flat()); d > en.PatrolAcceptance+34+1e-6 {
		t.Fatalf("stopped %v away from the goal", d)
	}
	if !r.w.Timers().Pending(e, TimerPatrol) {
		t.Fatalf("expected the patrol wait timer after arrival")
	}
}

func TestMoveToMissingGoal(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.NavigationComponent.Kind(), &component.Navigation{})
	if MoveTo(w, e, ecs.Entity(99), 10) {
		t.Fatalf("move toward a missing goal should fail")
	}
	if IsMoving(w, e) {
		t.Fatalf("no move should be active")
	}
}
