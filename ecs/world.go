package ecs

import (
	"math/rand"

	"github.com/milk9111/slash/ecs/component"
)

// World owns entities, component stores, the event queue, the timer table and
// the system order. It is not safe for concurrent use.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore

	scheduler *Scheduler
	events    EventQueue
	timers    TimerTable
	rng       *rand.Rand

	dt   float64
	time float64
	tick uint64

	onDestroy []func(w *World, e Entity)
}

// NewWorld creates an empty ECS world seeded with 1.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]componentStore),
		scheduler: NewScheduler(),
		rng:       rand.New(rand.NewSource(1)),
	}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e, its pending timers and its
// event subscriptions. Destroy hooks run before components are dropped.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, hook := range w.onDestroy {
		hook(w, e)
	}
	for _, store := range w.stores {
		store.remove(e.id())
	}
	w.timers.ClearEntity(e)
	w.events.UnsubscribeEntity(e)
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// OnDestroy registers a hook invoked for every entity destroyed after it.
func (w *World) OnDestroy(hook func(w *World, e Entity)) {
	if hook == nil {
		return
	}
	w.onDestroy = append(w.onDestroy, hook)
}

// AddSystem appends a system to the update order. Systems implementing
// Initializer are initialised immediately.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	if init, ok := s.(Initializer); ok {
		init.Init(w)
	}
	w.scheduler.Add(s)
}

func (w *World) Systems() []System {
	return w.scheduler.Systems()
}

// Step advances the world clock by dt and runs all systems once.
func (w *World) Step(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.dt = dt
	w.time += dt
	w.tick++
	w.scheduler.Update(w)
}

func (w *World) DT() float64 {
	return w.dt
}

// Time is the accumulated simulation time in seconds.
func (w *World) Time() float64 {
	return w.time
}

func (w *World) Tick() uint64 {
	return w.tick
}

func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) Timers() *TimerTable {
	if w == nil {
		return nil
	}
	return &w.timers
}
