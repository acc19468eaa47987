package system

import (
	"testing"

	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
)

func newMontageActor(w *ecs.World) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.MontagesComponent.Kind(), &component.Montages{Defs: map[string]component.MontageDef{
		MontageAttack:   {Sections: []string{"Attack1", "Attack2"}, Durations: []float64{1, 2}},
		MontageHitReact: {Sections: []string{SectionFromFront}, Durations: []float64{0.5}},
	}})
	_ = ecs.Add(w, e, component.MontagePlayerComponent.Kind(), &component.MontagePlayer{})
	return e
}

func TestMontagePlayback(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewMontageSystem())
	w.AddSystem(NewDispatchSystem())
	e := newMontageActor(w)

	var ended []MontageEnded
	w.Events().Subscribe(EventMontageEnded, func(_ *ecs.World, evt ecs.Event) {
		ended = append(ended, evt.Data.(MontageEnded))
	})

	if PlayMontage(w, e, "Missing", 1, "x") || PlayMontage(w, e, MontageAttack, 1, "Attack9") {
		t.Fatalf("unknown montage or section should not play")
	}
	if !PlayMontage(w, e, MontageAttack, 2, "Attack2") {
		t.Fatalf("expected attack to play")
	}
	mp, _ := ecs.Get(w, e, component.MontagePlayerComponent.Kind())
	if mp.Remaining != 1 {
		t.Fatalf("rate 2 should halve the section, got %v", mp.Remaining)
	}

	w.Step(0.5)
	if len(ended) != 0 {
		t.Fatalf("ended early: %v", ended)
	}
	w.Step(0.6)
	if len(ended) != 1 || ended[0].Interrupted || ended[0].Section != "Attack2" {
		t.Fatalf("unexpected end events %v", ended)
	}
	if IsPlaying(w, e, MontageAttack) {
		t.Fatalf("montage still playing")
	}

	PlayMontage(w, e, MontageAttack, 1, "Attack1")
	PlayMontage(w, e, MontageHitReact, 1, SectionFromFront)
	w.Step(0)
	if len(ended) != 2 || !ended[1].Interrupted || ended[1].Montage != MontageAttack {
		t.Fatalf("expected interrupted attack, got %v", ended)
	}
	if !IsPlaying(w, e, MontageHitReact) {
		t.Fatalf("hit react should be playing")
	}

	if StopMontage(w, e, MontageAttack) {
		t.Fatalf("stopping a montage that is not playing should fail")
	}
	if !StopMontage(w, e, MontageHitReact) {
		t.Fatalf("expected hit react to stop")
	}
	w.Step(0)
	if len(ended) != 3 || !ended[2].Interrupted {
		t.Fatalf("expected interrupted hit react, got %v", ended)
	}
}

func TestPlayRandomMontageSection(t *testing.T) {
	w := ecs.NewWorld()
	e := newMontageActor(w)
	seen := map[int]bool{}
	for i := 0; i < 50; i++ {
		sel := PlayRandomMontageSection(w, e, MontageAttack, 1)
		if sel < 1 || sel > 2 {
			t.Fatalf("selection %d out of range", sel)
		}
		seen[sel] = true
	}
	if len(seen) != 2 {
		t.Fatalf("expected both sections to be drawn, got %v", seen)
	}
	if got := PlayRandomMontageSection(w, e, MontageDeath, 1); got != 0 {
		t.Fatalf("missing montage should return 0, got %d", got)
	}
}
