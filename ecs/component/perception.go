package component

// PawnSensing reports pawns inside a view cone every Interval seconds.
type PawnSensing struct {
	SightRadius     float64
	PeripheralAngle float64
	Interval        float64
	Elapsed         float64
	Enabled         bool
}

var PawnSensingComponent = NewComponent[PawnSensing]()
