package component

import "github.com/milk9111/slash/common"

// Transform is the world placement of an entity. Yaw is in degrees around Z,
// with 0 facing +X.
type Transform struct {
	Position common.Vec3
	Yaw      float64
}

var TransformComponent = NewComponent[Transform]()
