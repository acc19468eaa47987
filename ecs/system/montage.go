package system

import (
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/pkg/logger"
)

// PlayMontage starts a section of a named montage on e. A montage already
// playing is interrupted and reported as ended first. Missing montages or
// sections are ignored.
func PlayMontage(w *ecs.World, e ecs.Entity, name string, rate float64, section string) bool {
	montages, ok := ecs.Get(w, e, component.MontagesComponent.Kind())
	if !ok {
		return false
	}
	def, ok := montages.Get(name)
	if !ok || !def.HasSection(section) {
		return false
	}
	player, ok := ecs.Get(w, e, component.MontagePlayerComponent.Kind())
	if !ok {
		return false
	}
	if rate <= 0 {
		rate = 1
	}

	if player.Playing {
		prev := MontageEnded{Montage: player.Montage, Section: player.Section, Interrupted: true}
		player.Playing = false
		w.Events().Push(ecs.Event{Kind: EventMontageEnded, Entity: e, Data: prev})
	}

	player.Montage = name
	player.Section = section
	player.Rate = rate
	player.Remaining = def.SectionDuration(section) / rate
	player.Playing = true

	logger.For("montage").WithField("entity", e).Debugf("play %s/%s", name, section)
	return true
}

// StopMontage interrupts montage name on e if it is the one playing.
func StopMontage(w *ecs.World, e ecs.Entity, name string) bool {
	player, ok := ecs.Get(w, e, component.MontagePlayerComponent.Kind())
	if !ok || !player.Playing || player.Montage != name {
		return false
	}
	player.Playing = false
	w.Events().Push(ecs.Event{
		Kind:   EventMontageEnded,
		Entity: e,
		Data:   MontageEnded{Montage: player.Montage, Section: player.Section, Interrupted: true},
	})
	return true
}

func IsPlaying(w *ecs.World, e ecs.Entity, name string) bool {
	player, ok := ecs.Get(w, e, component.MontagePlayerComponent.Kind())
	return ok && player.Playing && player.Montage == name
}

// MontageSystem counts down active montage sections.
type MontageSystem struct{}

func NewMontageSystem() *MontageSystem {
	return &MontageSystem{}
}

func (s *MontageSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DT()
	ecs.ForEach(w, component.MontagePlayerComponent.Kind(), func(e ecs.Entity, player *component.MontagePlayer) {
		if !player.Playing {
			return
		}
		player.Remaining -= dt
		if player.Remaining > 0 {
			return
		}
		player.Remaining = 0
		player.Playing = false
		w.Events().Push(ecs.Event{
			Kind:   EventMontageEnded,
			Entity: e,
			Data:   MontageEnded{Montage: player.Montage, Section: player.Section},
		})
	})
}
