package ecs

import "github.com/milk9111/slash/ecs/component"

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	raw, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		s := &sparseSet[T]{}
		w.stores[kind.ID()] = s
		return s
	}
	s, _ := raw.(*sparseSet[T])
	return s
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	s := storeFor(w, kind, true)
	if s == nil {
		return component.ErrInvalidComponentKind
	}
	s.set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	v := s.get(e.id())
	return v, v != nil
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e.id())
}

// liveIDs snapshots the entity ids of a store so callbacks may add or remove
// components (or destroy entities) while iterating.
func liveIDs(w *World, s componentStore) []Entity {
	ids := s.ids()
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		idx := int(id) - 1
		if idx < 0 || idx >= len(w.entities.alive) || !w.entities.alive[idx] {
			continue
		}
		out = append(out, makeEntity(id, w.entities.gen[idx]))
	}
	return out
}

func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeFor(w, kind, false)
	if s == nil || fn == nil {
		return
	}
	for _, e := range liveIDs(w, s) {
		if v := s.get(e.id()); v != nil && IsAlive(w, e) {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	if sa == nil || sb == nil || fn == nil {
		return
	}
	for _, e := range liveIDs(w, sa) {
		if !IsAlive(w, e) {
			continue
		}
		a := sa.get(e.id())
		b := sb.get(e.id())
		if a != nil && b != nil {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	sc := storeFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil || fn == nil {
		return
	}
	for _, e := range liveIDs(w, sa) {
		if !IsAlive(w, e) {
			continue
		}
		a, b, c := sa.get(e.id()), sb.get(e.id()), sc.get(e.id())
		if a != nil && b != nil && c != nil {
			fn(e, a, b, c)
		}
	}
}

// First returns the first live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0, false
	}
	ents := liveIDs(w, s)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Query returns the live entities that carry every given kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]componentStore, 0, len(kinds))
	for _, k := range kinds {
		if k == nil {
			return nil
		}
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, s)
	}
	var out []Entity
	for _, e := range liveIDs(w, stores[0]) {
		match := true
		for _, s := range stores[1:] {
			if !s.has(e.id()) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}
