package component

import "math"

// Attributes holds the vital and currency stats of a combat actor.
type Attributes struct {
	Health           float64
	MaxHealth        float64
	Stamina          float64
	MaxStamina       float64
	Gold             int
	Souls            int
	DodgeCost        float64
	StaminaRegenRate float64
}

// ReceiveDamage lowers health, clamped to [0, MaxHealth].
func (a *Attributes) ReceiveDamage(amount float64) {
	if a == nil {
		return
	}
	a.Health = math.Max(0, math.Min(a.Health-amount, a.MaxHealth))
}

func (a *Attributes) UseStamina(cost float64) {
	if a == nil {
		return
	}
	a.Stamina = math.Max(0, math.Min(a.Stamina-cost, a.MaxStamina))
}

func (a *Attributes) RegenStamina(dt float64) {
	if a == nil {
		return
	}
	a.Stamina = math.Max(0, math.Min(a.Stamina+a.StaminaRegenRate*dt, a.MaxStamina))
}

func (a *Attributes) HealthPercent() float64 {
	if a == nil || a.MaxHealth <= 0 {
		return 0
	}
	return a.Health / a.MaxHealth
}

func (a *Attributes) StaminaPercent() float64 {
	if a == nil || a.MaxStamina <= 0 {
		return 0
	}
	return a.Stamina / a.MaxStamina
}

func (a *Attributes) IsAlive() bool {
	return a != nil && a.Health > 0
}

func (a *Attributes) AddGold(amount int) {
	if a == nil {
		return
	}
	a.Gold += amount
}

func (a *Attributes) AddSouls(amount int) {
	if a == nil {
		return
	}
	a.Souls += amount
}

var AttributesComponent = NewComponent[Attributes]()
