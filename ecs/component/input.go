package component

// Input stores per-frame commands for a player-controlled entity. Pressed
// flags are edge-triggered and cleared by the player system after use.
type Input struct {
	MoveX float64
	MoveY float64
	Look  float64

	Jump     bool
	Attack   bool
	Dodge    bool
	Interact bool
}

var InputComponent = NewComponent[Input]()
