package ecs

import "math/rand"

// Rand returns the world's deterministic random source.
func (w *World) Rand() *rand.Rand {
	if w == nil {
		return nil
	}
	return w.rng
}

// SetRand replaces the random source; nil is ignored.
func (w *World) SetRand(r *rand.Rand) {
	if w == nil || r == nil {
		return
	}
	w.rng = r
}

func (w *World) randomFloat() float64 {
	if w != nil && w.rng != nil {
		return w.rng.Float64()
	}
	return rand.Float64()
}

// RandRange draws uniformly from [min, max]. Inverted bounds return min.
func (w *World) RandRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + w.randomFloat()*(max-min)
}

// RandIntRange draws uniformly from the inclusive range [min, max].
func (w *World) RandIntRange(min, max int) int {
	if max <= min {
		return min
	}
	n := max - min + 1
	if w != nil && w.rng != nil {
		return min + w.rng.Intn(n)
	}
	return min + rand.Intn(n)
}
