package ecs

import "testing"

func TestEventQueueDispatch(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "fifo_per_kind",
			run: func(t *testing.T) {
				w := NewWorld()
				var got []int
				w.Events().Subscribe("hit", func(_ *World, evt Event) { got = append(got, evt.Data.(int)) })
				for i := 1; i <= 3; i++ {
					w.Events().Push(Event{Kind: "hit", Data: i})
				}
				w.Events().Dispatch(w)
				if len(got) != 3 || got[0] != 1 || got[2] != 3 {
					t.Fatalf("expected [1 2 3], got %v", got)
				}
				if w.Events().Len() != 0 {
					t.Fatalf("queue should be empty after dispatch")
				}
			},
		},
		{
			name: "entity_scoped",
			run: func(t *testing.T) {
				w := NewWorld()
				a := CreateEntity(w)
				b := CreateEntity(w)
				var hits []Entity
				w.Events().SubscribeEntity("moved", a, func(_ *World, evt Event) { hits = append(hits, evt.Entity) })
				w.Events().Push(Event{Kind: "moved", Entity: b})
				w.Events().Push(Event{Kind: "moved", Entity: a})
				w.Events().Dispatch(w)
				if len(hits) != 1 || hits[0] != a {
					t.Fatalf("expected only a, got %v", hits)
				}
			},
		},
		{
			name: "follow_up_events_same_dispatch",
			run: func(t *testing.T) {
				w := NewWorld()
				var order []EventKind
				w.Events().Subscribe("first", func(w *World, evt Event) {
					order = append(order, evt.Kind)
					w.Events().Push(Event{Kind: "second"})
				})
				w.Events().Subscribe("second", func(_ *World, evt Event) { order = append(order, evt.Kind) })
				w.Events().Push(Event{Kind: "first"})
				w.Events().Dispatch(w)
				if len(order) != 2 || order[1] != "second" {
					t.Fatalf("expected follow-up delivery, got %v", order)
				}
			},
		},
		{
			name: "bounded_rounds",
			run: func(t *testing.T) {
				w := NewWorld()
				calls := 0
				w.Events().Subscribe("loop", func(w *World, evt Event) {
					calls++
					w.Events().Push(evt)
				})
				w.Events().Push(Event{Kind: "loop"})
				w.Events().Dispatch(w)
				if calls != maxDispatchRounds {
					t.Fatalf("expected %d rounds, got %d", maxDispatchRounds, calls)
				}
				if w.Events().Len() != 1 {
					t.Fatalf("expected the last follow-up to stay queued")
				}
			},
		},
		{
			name: "one_shot_unsubscribe",
			run: func(t *testing.T) {
				w := NewWorld()
				calls := 0
				var id SubscriptionID
				id = w.Events().Subscribe("done", func(w *World, _ Event) {
					calls++
					w.Events().Unsubscribe(id)
				})
				w.Events().Push(Event{Kind: "done"})
				w.Events().Push(Event{Kind: "done"})
				w.Events().Dispatch(w)
				if calls != 1 {
					t.Fatalf("expected one call, got %d", calls)
				}
				if w.Events().Subscribed(id) {
					t.Fatalf("subscription should be gone")
				}
			},
		},
		{
			name: "unsubscribed_by_earlier_handler",
			run: func(t *testing.T) {
				w := NewWorld()
				var second SubscriptionID
				called := false
				w.Events().Subscribe("x", func(w *World, _ Event) { w.Events().Unsubscribe(second) })
				second = w.Events().Subscribe("x", func(*World, Event) { called = true })
				w.Events().Push(Event{Kind: "x"})
				w.Events().Dispatch(w)
				if called {
					t.Fatalf("handler unsubscribed mid-delivery must not run")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	if q.Drain() != nil {
		t.Fatalf("empty queue should drain to nil")
	}
	q.Push(Event{Kind: "a"})
	out := q.Drain()
	if len(out) != 1 || q.Len() != 0 {
		t.Fatalf("unexpected drain result %v len=%d", out, q.Len())
	}
	if q.Unsubscribe(0) {
		t.Fatalf("zero id should be ignored")
	}
}
