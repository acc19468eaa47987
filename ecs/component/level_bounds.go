package component

// LevelBounds stores the world-space rectangle of the current level.
type LevelBounds struct {
	MinX   float64
	MinY   float64
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
