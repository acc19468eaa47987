package system

import (
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
)

// TimerSystem advances the world timer table by the frame delta.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.Timers().Advance(w, w.DT())
}

// DispatchSystem delivers the events queued so far this frame.
type DispatchSystem struct{}

func NewDispatchSystem() *DispatchSystem {
	return &DispatchSystem{}
}

func (s *DispatchSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	w.Events().Dispatch(w)
}

// LifespanSystem counts down Lifespan components and destroys expired
// entities.
type LifespanSystem struct{}

func NewLifespanSystem() *LifespanSystem {
	return &LifespanSystem{}
}

func (s *LifespanSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DT()
	var expired []ecs.Entity
	ecs.ForEach(w, component.LifespanComponent.Kind(), func(e ecs.Entity, l *component.Lifespan) {
		l.Seconds -= dt
		if l.Seconds <= 0 {
			expired = append(expired, e)
		}
	})

	for _, e := range expired {
		ecs.DestroyEntity(w, e)
	}
}
