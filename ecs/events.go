package ecs

// EventKind identifies a class of events in the subscription table.
type EventKind string

// Event is a generic ECS event payload. Entity is the entity the event is
// about; entity-scoped subscriptions only see events whose Entity matches.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

type Handler func(w *World, evt Event)

type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	entity  Entity
	handler Handler
}

// maxDispatchRounds bounds how many generations of follow-up events a single
// Dispatch delivers. Anything still queued waits for the next Dispatch.
const maxDispatchRounds = 8

// EventQueue is a FIFO queue plus a subscription table keyed by event kind.
type EventQueue struct {
	items  []Event
	subs   map[EventKind][]subscription
	active map[SubscriptionID]EventKind
	nextID SubscriptionID
}

// Subscribe registers handler for every event of kind.
func (q *EventQueue) Subscribe(kind EventKind, handler Handler) SubscriptionID {
	return q.subscribe(kind, 0, handler)
}

// SubscribeEntity registers handler for events of kind about entity e only.
func (q *EventQueue) SubscribeEntity(kind EventKind, e Entity, handler Handler) SubscriptionID {
	if !e.Valid() {
		return 0
	}
	return q.subscribe(kind, e, handler)
}

func (q *EventQueue) subscribe(kind EventKind, e Entity, handler Handler) SubscriptionID {
	if q == nil || handler == nil {
		return 0
	}
	if q.subs == nil {
		q.subs = make(map[EventKind][]subscription)
		q.active = make(map[SubscriptionID]EventKind)
	}
	q.nextID++
	id := q.nextID
	q.subs[kind] = append(q.subs[kind], subscription{id: id, entity: e, handler: handler})
	q.active[id] = kind
	return id
}

// Unsubscribe removes a subscription. Unknown or zero ids are ignored.
func (q *EventQueue) Unsubscribe(id SubscriptionID) bool {
	if q == nil || id == 0 {
		return false
	}
	kind, ok := q.active[id]
	if !ok {
		return false
	}
	delete(q.active, id)
	list := q.subs[kind]
	for i, s := range list {
		if s.id == id {
			q.subs[kind] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	return true
}

// UnsubscribeEntity drops every subscription scoped to e.
func (q *EventQueue) UnsubscribeEntity(e Entity) {
	if q == nil || !e.Valid() {
		return
	}
	for kind, list := range q.subs {
		kept := list[:0:0]
		for _, s := range list {
			if s.entity == e {
				delete(q.active, s.id)
				continue
			}
			kept = append(kept, s)
		}
		q.subs[kind] = kept
	}
}

func (q *EventQueue) Subscribed(id SubscriptionID) bool {
	if q == nil || id == 0 {
		return false
	}
	_, ok := q.active[id]
	return ok
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len reports the number of undelivered events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Dispatch delivers queued events in FIFO order. Events pushed by handlers
// are delivered in a following round of the same call.
func (q *EventQueue) Dispatch(w *World) {
	if q == nil {
		return
	}
	for round := 0; round < maxDispatchRounds && len(q.items) > 0; round++ {
		batch := q.items
		q.items = nil
		for _, evt := range batch {
			q.deliver(w, evt)
		}
	}
}

func (q *EventQueue) deliver(w *World, evt Event) {
	list := q.subs[evt.Kind]
	if len(list) == 0 {
		return
	}
	snapshot := append([]subscription(nil), list...)
	for _, s := range snapshot {
		if s.entity != 0 && s.entity != evt.Entity {
			continue
		}
		// A handler earlier in this delivery may have unsubscribed s.
		if _, ok := q.active[s.id]; !ok {
			continue
		}
		s.handler(w, evt)
	}
}

// Drain returns all events and clears the queue without delivering them.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
