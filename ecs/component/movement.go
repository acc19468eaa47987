package component

// Movement is the character movement state. Velocity is in units/second.
type Movement struct {
	MaxSpeed         float64
	OrientToMovement bool
	Gravity          float64
	GroundZ          float64

	VelX     float64
	VelY     float64
	VelZ     float64
	Grounded bool
}

func (m *Movement) Stop() {
	if m == nil {
		return
	}
	m.VelX = 0
	m.VelY = 0
}

var MovementComponent = NewComponent[Movement]()
