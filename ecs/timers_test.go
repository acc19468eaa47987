package ecs

import "testing"

const (
	testTimerA TimerKind = "a"
	testTimerB TimerKind = "b"
)

func TestTimerTable(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "fires_once_after_duration",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				fired := 0
				w.Timers().Set(e, testTimerA, 1, func(*World, Entity) { fired++ })
				w.Timers().Advance(w, 0.6)
				if fired != 0 {
					t.Fatalf("fired early")
				}
				if rem, ok := w.Timers().Remaining(e, testTimerA); !ok || rem < 0.39 || rem > 0.41 {
					t.Fatalf("unexpected remaining %v ok=%v", rem, ok)
				}
				w.Timers().Advance(w, 0.6)
				w.Timers().Advance(w, 0.6)
				if fired != 1 {
					t.Fatalf("expected one fire, got %d", fired)
				}
				if w.Timers().Pending(e, testTimerA) {
					t.Fatalf("expired timer still pending")
				}
			},
		},
		{
			name: "set_replaces_same_kind",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				var got []string
				w.Timers().Set(e, testTimerA, 1, func(*World, Entity) { got = append(got, "old") })
				w.Timers().Set(e, testTimerA, 2, func(*World, Entity) { got = append(got, "new") })
				if n := w.Timers().PendingCount(e); n != 1 {
					t.Fatalf("expected one pending timer, got %d", n)
				}
				w.Timers().Advance(w, 3)
				if len(got) != 1 || got[0] != "new" {
					t.Fatalf("expected only replacement to fire, got %v", got)
				}
			},
		},
		{
			name: "clear_prevents_fire",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				fired := false
				w.Timers().Set(e, testTimerA, 1, func(*World, Entity) { fired = true })
				if !w.Timers().Clear(e, testTimerA) {
					t.Fatalf("clear should report true")
				}
				w.Timers().Advance(w, 2)
				if fired {
					t.Fatalf("cleared timer fired")
				}
			},
		},
		{
			name: "callback_can_rearm",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				fired := 0
				var cb TimerCallback
				cb = func(w *World, e Entity) {
					fired++
					w.Timers().Set(e, testTimerA, 1, cb)
				}
				w.Timers().Set(e, testTimerA, 1, cb)
				w.Timers().Advance(w, 1)
				w.Timers().Advance(w, 1)
				if fired != 2 || !w.Timers().Pending(e, testTimerA) {
					t.Fatalf("expected re-armed timer, fired=%d", fired)
				}
			},
		},
		{
			name: "earlier_callback_clears_later",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				fired := false
				w.Timers().Set(e, testTimerA, 0.5, func(w *World, e Entity) { w.Timers().Clear(e, testTimerB) })
				w.Timers().Set(e, testTimerB, 0.5, func(*World, Entity) { fired = true })
				w.Timers().Advance(w, 1)
				if fired {
					t.Fatalf("timer cleared by an earlier callback fired")
				}
			},
		},
		{
			name: "fire_in_arm_order",
			run: func(t *testing.T) {
				w := NewWorld()
				a := CreateEntity(w)
				b := CreateEntity(w)
				var order []Entity
				w.Timers().Set(b, testTimerA, 0.1, func(_ *World, e Entity) { order = append(order, e) })
				w.Timers().Set(a, testTimerA, 0.1, func(_ *World, e Entity) { order = append(order, e) })
				w.Timers().Advance(w, 1)
				if len(order) != 2 || order[0] != b || order[1] != a {
					t.Fatalf("expected arm order, got %v", order)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestRandRange(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 200; i++ {
		if v := w.RandRange(2, 3); v < 2 || v > 3 {
			t.Fatalf("RandRange out of bounds: %v", v)
		}
		if v := w.RandIntRange(1, 4); v < 1 || v > 4 {
			t.Fatalf("RandIntRange out of bounds: %d", v)
		}
	}
	if v := w.RandRange(5, 1); v != 5 {
		t.Fatalf("inverted range should return min, got %v", v)
	}
}
