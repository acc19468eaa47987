package component

import "github.com/jakecoffman/cp"

type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// The simulation is top-down, so the body lives on the X/Y ground plane and
// height is tracked separately by Transform.Position.Z.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Kind   ShapeKind
	Radius float64
	Width  float64
	Height float64
	Static bool
	Sensor bool
	Active bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
