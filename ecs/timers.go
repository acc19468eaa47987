package ecs

import "sort"

// TimerKind names a per-entity timer slot. An entity holds at most one pending
// timer per kind.
type TimerKind string

type TimerCallback func(w *World, e Entity)

type timerKey struct {
	entity Entity
	kind   TimerKind
}

type timerEntry struct {
	remaining float64
	callback  TimerCallback
	seq       uint64
}

// TimerTable is a per-entity scheduled-callback table advanced once per tick.
type TimerTable struct {
	entries map[timerKey]*timerEntry
	seq     uint64
}

// Set arms (or re-arms) the timer kind for e. A pending timer of the same kind
// is replaced, never duplicated.
func (t *TimerTable) Set(e Entity, kind TimerKind, seconds float64, cb TimerCallback) {
	if t == nil || !e.Valid() || cb == nil {
		return
	}
	if t.entries == nil {
		t.entries = make(map[timerKey]*timerEntry)
	}
	if seconds < 0 {
		seconds = 0
	}
	t.seq++
	t.entries[timerKey{entity: e, kind: kind}] = &timerEntry{remaining: seconds, callback: cb, seq: t.seq}
}

func (t *TimerTable) Clear(e Entity, kind TimerKind) bool {
	if t == nil || t.entries == nil {
		return false
	}
	key := timerKey{entity: e, kind: kind}
	if _, ok := t.entries[key]; !ok {
		return false
	}
	delete(t.entries, key)
	return true
}

func (t *TimerTable) Pending(e Entity, kind TimerKind) bool {
	if t == nil || t.entries == nil {
		return false
	}
	_, ok := t.entries[timerKey{entity: e, kind: kind}]
	return ok
}

// Remaining returns the seconds left on a pending timer.
func (t *TimerTable) Remaining(e Entity, kind TimerKind) (float64, bool) {
	if t == nil || t.entries == nil {
		return 0, false
	}
	entry, ok := t.entries[timerKey{entity: e, kind: kind}]
	if !ok {
		return 0, false
	}
	return entry.remaining, true
}

func (t *TimerTable) ClearEntity(e Entity) {
	if t == nil {
		return
	}
	for key := range t.entries {
		if key.entity == e {
			delete(t.entries, key)
		}
	}
}

// PendingCount reports how many timers e has armed.
func (t *TimerTable) PendingCount(e Entity) int {
	if t == nil {
		return 0
	}
	n := 0
	for key := range t.entries {
		if key.entity == e {
			n++
		}
	}
	return n
}

type expiredTimer struct {
	key   timerKey
	entry *timerEntry
}

// Advance counts every pending timer down by dt. Expired timers fire in the
// order they were armed; each is removed before its callback runs so the
// callback may re-arm its own kind.
func (t *TimerTable) Advance(w *World, dt float64) {
	if t == nil || len(t.entries) == 0 {
		return
	}
	var expired []expiredTimer
	for key, entry := range t.entries {
		entry.remaining -= dt
		if entry.remaining <= 0 {
			expired = append(expired, expiredTimer{key: key, entry: entry})
		}
	}
	if len(expired) == 0 {
		return
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].entry.seq < expired[j].entry.seq })
	for _, ex := range expired {
		// An earlier callback in this batch may have cleared or replaced it.
		if current, ok := t.entries[ex.key]; !ok || current != ex.entry {
			continue
		}
		delete(t.entries, ex.key)
		if w != nil && !IsAlive(w, ex.key.entity) {
			continue
		}
		ex.entry.callback(w, ex.key.entity)
	}
}
