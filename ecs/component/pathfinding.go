package component

import "math"

// PathNode represents a world-space point along a path.
type PathNode struct {
	X float64
	Y float64
}

// Navigation is an active move request toward a goal entity. Arrival within
// AcceptanceRadius publishes a move-completed event once.
type Navigation struct {
	Goal             uint64
	AcceptanceRadius float64
	Active           bool
	Path             []PathNode
	PathIndex        int
	LastGoalCellX    int
	LastGoalCellY    int
}

var NavigationComponent = NewComponent[Navigation]()

// NavGrid is the level's walkability grid, attached to a single level entity.
type NavGrid struct {
	CellSize float64
	OriginX  float64
	OriginY  float64
	Width    int
	Height   int
	Blocked  []bool
	MaxNodes int
}

func (g *NavGrid) Cell(x, y float64) (int, int) {
	if g == nil || g.CellSize <= 0 {
		return 0, 0
	}
	cx := int(math.Floor((x - g.OriginX) / g.CellSize))
	cy := int(math.Floor((y - g.OriginY) / g.CellSize))
	return cx, cy
}

func (g *NavGrid) Center(cx, cy int) (float64, float64) {
	return g.OriginX + (float64(cx)+0.5)*g.CellSize, g.OriginY + (float64(cy)+0.5)*g.CellSize
}

func (g *NavGrid) IsBlocked(cx, cy int) bool {
	if g == nil || cx < 0 || cy < 0 || cx >= g.Width || cy >= g.Height {
		return true
	}
	return g.Blocked[cy*g.Width+cx]
}

var NavGridComponent = NewComponent[NavGrid]()
