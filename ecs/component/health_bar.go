package component

// HealthBar is the floating bar shown above an enemy.
type HealthBar struct {
	Visible bool
	Percent float64
}

var HealthBarComponent = NewComponent[HealthBar]()
