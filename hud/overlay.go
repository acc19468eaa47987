package hud

// Overlay is the player HUD data sink. Gameplay code only pushes values; it
// never reads them back.
type Overlay interface {
	SetHealthBarPercent(percent float64)
	SetStaminaBarPercent(percent float64)
	SetGold(gold int)
	SetSouls(souls int)
}

// EnemyBar is a floating health bar drawn above an enemy.
type EnemyBar struct {
	Entity  uint64  `json:"entity"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	Percent float64 `json:"percent"`
}

// PlayerOverlay keeps the last values pushed to the HUD so the viewer, the
// terminal renderer and spectators can draw them.
type PlayerOverlay struct {
	HealthPercent  float64    `json:"health_percent"`
	StaminaPercent float64    `json:"stamina_percent"`
	Gold           int        `json:"gold"`
	Souls          int        `json:"souls"`
	Bars           []EnemyBar `json:"bars,omitempty"`

	updates int
}

func NewPlayerOverlay() *PlayerOverlay {
	return &PlayerOverlay{}
}

func (o *PlayerOverlay) SetHealthBarPercent(percent float64) {
	if o == nil {
		return
	}
	o.HealthPercent = clamp01(percent)
	o.updates++
}

func (o *PlayerOverlay) SetStaminaBarPercent(percent float64) {
	if o == nil {
		return
	}
	o.StaminaPercent = clamp01(percent)
	o.updates++
}

func (o *PlayerOverlay) SetGold(gold int) {
	if o == nil {
		return
	}
	o.Gold = gold
	o.updates++
}

func (o *PlayerOverlay) SetSouls(souls int) {
	if o == nil {
		return
	}
	o.Souls = souls
	o.updates++
}

// SetEnemyBars replaces the visible enemy bars for the current frame.
func (o *PlayerOverlay) SetEnemyBars(bars []EnemyBar) {
	if o == nil {
		return
	}
	o.Bars = append(o.Bars[:0], bars...)
}

// Updates counts the pushes received since creation.
func (o *PlayerOverlay) Updates() int {
	if o == nil {
		return 0
	}
	return o.updates
}

// Copy returns a detached copy safe to hand to another goroutine.
func (o *PlayerOverlay) Copy() PlayerOverlay {
	if o == nil {
		return PlayerOverlay{}
	}
	c := *o
	c.Bars = append([]EnemyBar(nil), o.Bars...)
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
