package component

// Lifespan destroys the entity once Seconds reaches zero.
type Lifespan struct {
	Seconds float64
}

var LifespanComponent = NewComponent[Lifespan]()
