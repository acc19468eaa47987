package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/slash/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("second DestroyEntity should return false")
			}
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	old := CreateEntity(w)
	DestroyEntity(w, old)
	fresh := CreateEntity(w)

	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, fresh)
	}
	if fresh == old {
		t.Fatalf("recycled entity must not equal the stale handle")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle reported alive")
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestAddGetRemove(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()
	e := CreateEntity(w)

	if err := Add(w, e, ints.Kind(), intPtr(10)); err != nil {
		t.Fatalf("add int: %v", err)
	}
	if err := Add(w, e, strs.Kind(), stringPtr("a")); err != nil {
		t.Fatalf("add string: %v", err)
	}

	v, ok := Get(w, e, ints.Kind())
	if !ok || *v != 10 {
		t.Fatalf("expected 10, got %v ok=%v", v, ok)
	}
	*v = 11
	if again, _ := Get(w, e, ints.Kind()); *again != 11 {
		t.Fatalf("expected in-place mutation, got %d", *again)
	}
	if !Remove(w, e, ints.Kind()) {
		t.Fatalf("remove should report true")
	}
	if Has(w, e, ints.Kind()) {
		t.Fatalf("int component still present")
	}
	if !Has(w, e, strs.Kind()) {
		t.Fatalf("string component should survive removing int")
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	dead := CreateEntity(w)
	DestroyEntity(w, dead)
	alive := CreateEntity(w)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil_value", Add[int](w, alive, ints.Kind(), nil), component.ErrNilComponent},
		{"dead_entity", Add(w, dead, ints.Kind(), intPtr(1)), component.ErrEntityNotAlive},
		{"zero_kind", Add(w, alive, component.ComponentKind[int]{}, intPtr(1)), component.ErrInvalidComponentKind},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, tc.err)
			}
		})
	}
}

func TestForEachVariants(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(Add(w, e1, ka, intPtr(1)))
	must(Add(w, e2, ka, intPtr(2)))
	must(Add(w, e2, kb, intPtr(3)))
	must(Add(w, e2, kc, intPtr(4)))
	must(Add(w, e3, kb, intPtr(5)))

	t.Run("for_each", func(t *testing.T) {
		var n int
		ForEach(w, ka, func(Entity, *int) { n++ })
		if n != 2 {
			t.Fatalf("expected 2 entities with ka, got %d", n)
		}
	})

	t.Run("for_each2", func(t *testing.T) {
		var res []Entity
		ForEach2(w, ka, kb, func(e Entity, _ *int, _ *int) { res = append(res, e) })
		if len(res) != 1 || res[0] != e2 {
			t.Fatalf("expected only e2, got %v", res)
		}
	})

	t.Run("for_each3", func(t *testing.T) {
		var res []Entity
		ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
		if len(res) != 1 || res[0] != e2 {
			t.Fatalf("expected only e2, got %v", res)
		}
	})

	t.Run("query", func(t *testing.T) {
		res := w.Query(kb, kc)
		if len(res) != 1 || res[0] != e2 {
			t.Fatalf("expected only e2, got %v", res)
		}
	})

	t.Run("destroy_during_iteration", func(t *testing.T) {
		var seen int
		ForEach(w, kb, func(e Entity, _ *int) {
			seen++
			if e == e2 {
				DestroyEntity(w, e3)
			}
			if e == e3 {
				DestroyEntity(w, e2)
			}
		})
		if seen != 1 {
			t.Fatalf("expected the destroyed entity to be skipped, saw %d", seen)
		}
	})

	t.Run("first_skips_dead", func(t *testing.T) {
		e, ok := First(w, ka)
		if !ok || e != e1 {
			t.Fatalf("expected e1, got %v ok=%v", e, ok)
		}
	})
}

func TestDestroyEntityReleasesTimersAndSubscriptions(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	fired := false

	w.Timers().Set(e, "attack", 1, func(*World, Entity) { fired = true })
	id := w.Events().SubscribeEntity("seen", e, func(*World, Event) { fired = true })

	var destroyed []Entity
	w.OnDestroy(func(_ *World, d Entity) { destroyed = append(destroyed, d) })

	DestroyEntity(w, e)
	w.Timers().Advance(w, 2)
	w.Events().Push(Event{Kind: "seen", Entity: e})
	w.Events().Dispatch(w)

	if fired {
		t.Fatalf("callbacks of a destroyed entity must not run")
	}
	if w.Events().Subscribed(id) {
		t.Fatalf("entity subscription should be dropped")
	}
	if len(destroyed) != 1 || destroyed[0] != e {
		t.Fatalf("destroy hook not invoked: %v", destroyed)
	}
}

type countingSystem struct {
	inits   int
	updates int
	dts     []float64
}

func (s *countingSystem) Init(*World) { s.inits++ }

func (s *countingSystem) Update(w *World) {
	s.updates++
	s.dts = append(s.dts, w.DT())
}

func TestWorldStep(t *testing.T) {
	w := NewWorld()
	sys := &countingSystem{}
	w.AddSystem(sys)

	w.Step(0.5)
	w.Step(-1)

	if sys.inits != 1 || sys.updates != 2 {
		t.Fatalf("expected 1 init and 2 updates, got %d/%d", sys.inits, sys.updates)
	}
	if sys.dts[0] != 0.5 || sys.dts[1] != 0 {
		t.Fatalf("unexpected dts %v", sys.dts)
	}
	if w.Time() != 0.5 || w.Tick() != 2 {
		t.Fatalf("unexpected clock time=%v tick=%d", w.Time(), w.Tick())
	}
}
