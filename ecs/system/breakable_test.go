package system

import (
	"math"
	"math/rand"
	"testing"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/ecs/entity"
)

func TestDetermineDrop(t *testing.T) {
	tests := []struct {
		name   string
		drops  []component.TreasureDrop
		wantOK bool
		only   string
	}{
		{name: "empty", drops: nil, wantOK: false},
		{name: "zero_weights", drops: []component.TreasureDrop{{Prefab: "a", DropRate: 0}}, wantOK: false},
		{name: "single", drops: []component.TreasureDrop{{Prefab: "a", DropRate: 0.3}}, wantOK: true, only: "a"},
		{
			name:   "skips_zero_weight",
			drops:  []component.TreasureDrop{{Prefab: "a", DropRate: 0}, {Prefab: "b", DropRate: 1}},
			wantOK: true,
			only:   "b",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			for i := 0; i < 20; i++ {
				got, ok := DetermineDrop(w, tc.drops)
				if ok != tc.wantOK {
					t.Fatalf("ok=%v, want %v", ok, tc.wantOK)
				}
				if tc.only != "" && got != tc.only {
					t.Fatalf("got %q, want %q", got, tc.only)
				}
			}
		})
	}
}

func TestDetermineDropWeighting(t *testing.T) {
	w := ecs.NewWorld()
	w.SetRand(rand.New(rand.NewSource(3)))
	drops := []component.TreasureDrop{{Prefab: "common", DropRate: 0.8}, {Prefab: "rare", DropRate: 0.2}}
	rare := 0
	for i := 0; i < 2000; i++ {
		if got, _ := DetermineDrop(w, drops); got == "rare" {
			rare++
		}
	}
	if rare < 300 || rare > 500 {
		t.Fatalf("expected about 400 rare drops, got %d", rare)
	}
}

func TestBreakableShatters(t *testing.T) {
	r := newRig(t)
	pot, err := entity.NewBreakable(r.w, "", common.V3(300, 0, 0))
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	r.step(1)

	if !IsAlive(r.w, pot) {
		t.Fatalf("fresh breakable should count as alive")
	}
	if taken := r.router.ApplyDamage(r.w, pot, 5, 0, 0); taken != 5 {
		t.Fatalf("expected 5, got %v", taken)
	}
	r.router.GetHit(r.w, pot, common.V3(280, 0, 20), 0)

	b, _ := ecs.Get(r.w, pot, component.BreakableComponent.Kind())
	if !b.Broken {
		t.Fatalf("expected broken")
	}
	if IsAlive(r.w, pot) {
		t.Fatalf("broken breakable should not count as alive")
	}
	if l, ok := ecs.Get(r.w, pot, component.LifespanComponent.Kind()); !ok || l.Seconds != b.Lifespan {
		t.Fatalf("expected lifespan %v", b.Lifespan)
	}
	treasure, ok := ecs.First(r.w, component.TreasureComponent.Kind())
	if !ok {
		t.Fatalf("no treasure dropped")
	}
	tt, _ := ecs.Get(r.w, treasure, component.TransformComponent.Kind())
	if math.Abs(tt.Position.Z-b.DropOffsetZ) > 1e-9 {
		t.Fatalf("treasure z=%v, want %v", tt.Position.Z, b.DropOffsetZ)
	}

	r.router.GetHit(r.w, pot, common.V3(280, 0, 20), 0)
	if n := len(r.w.Query(component.TreasureComponent.Kind())); n != 1 {
		t.Fatalf("second hit dropped again, %d treasures", n)
	}
	if taken := r.router.ApplyDamage(r.w, pot, 5, 0, 0); taken != 0 {
		t.Fatalf("broken breakable absorbed %v", taken)
	}

	r.step(int(b.Lifespan/testDT) + 2)
	if ecs.IsAlive(r.w, pot) {
		t.Fatalf("broken breakable should expire")
	}
}
