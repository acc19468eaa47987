package system

import (
	"math"
	"testing"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/ecs/entity"
)

func TestPickupCollection(t *testing.T) {
	tests := []struct {
		name  string
		spawn func(w *ecs.World) (ecs.Entity, error)
		check func(t *testing.T, r *rig, attrs *component.Attributes)
	}{
		{
			name: "soul",
			spawn: func(w *ecs.World) (ecs.Entity, error) {
				return entity.NewSoul(w, "", common.V3(10, 0, 0), 7)
			},
			check: func(t *testing.T, r *rig, attrs *component.Attributes) {
				if attrs.Souls != 7 || r.overlay.Souls != 7 {
					t.Fatalf("souls=%d overlay=%d", attrs.Souls, r.overlay.Souls)
				}
			},
		},
		{
			name: "treasure",
			spawn: func(w *ecs.World) (ecs.Entity, error) {
				return entity.NewTreasure(w, "treasure_chalice.yaml", common.V3(10, 0, 0))
			},
			check: func(t *testing.T, r *rig, attrs *component.Attributes) {
				if attrs.Gold != 50 || r.overlay.Gold != 50 {
					t.Fatalf("gold=%d overlay=%d", attrs.Gold, r.overlay.Gold)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newRig(t)
			p := r.spawnPlayer(t, common.Vec3{}, 0)
			item, err := tc.spawn(r.w)
			if err != nil {
				t.Fatalf("spawn: %v", err)
			}
			r.step(1)
			if ecs.IsAlive(r.w, item) {
				t.Fatalf("item should be consumed")
			}
			attrs, _ := ecs.Get(r.w, p, component.AttributesComponent.Kind())
			tc.check(t, r, attrs)
			if len(r.hooks.pickups) != 1 {
				t.Fatalf("expected one pickup hook, got %v", r.hooks.pickups)
			}
		})
	}
}

func TestWeaponPickupWaitsForInteract(t *testing.T) {
	r := newRig(t)
	p := r.spawnPlayer(t, common.Vec3{}, 0)
	weapon, err := entity.NewWeapon(r.w, "", common.V3(20, 0, 0))
	if err != nil {
		t.Fatalf("spawn weapon: %v", err)
	}
	r.step(1)

	pl := playerOf(t, r.w, p)
	if pl.OverlappingItem != uint64(weapon) {
		t.Fatalf("expected overlapping item %d, got %d", weapon, pl.OverlappingItem)
	}
	in, _ := ecs.Get(r.w, p, component.InputComponent.Kind())
	in.Interact = true
	r.step(1)
	if got, ok := EquippedWeapon(r.w, p); !ok || got != weapon {
		t.Fatalf("weapon not equipped")
	}
	if pl.State != component.CharacterEquippedOneHanded || pl.OverlappingItem != 0 {
		t.Fatalf("state=%s overlapping=%d", pl.State, pl.OverlappingItem)
	}
	if in.Interact {
		t.Fatalf("interact press should be consumed")
	}
}

func TestItemHover(t *testing.T) {
	r := newRig(t)
	treasure, err := entity.NewTreasure(r.w, "treasure_gold.yaml", common.V3(500, 500, 30))
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	r.step(30)
	item, _ := ecs.Get(r.w, treasure, component.ItemComponent.Kind())
	tr, _ := ecs.Get(r.w, treasure, component.TransformComponent.Kind())
	want := 30 + item.Amplitude*math.Sin(item.RunningTime*item.TimeConstant)
	if math.Abs(tr.Position.Z-want) > 1e-9 {
		t.Fatalf("expected z=%v, got %v", want, tr.Position.Z)
	}
	if math.Abs(item.RunningTime-0.5) > 1e-9 {
		t.Fatalf("running time %v", item.RunningTime)
	}
}

func TestSoulSinksToRest(t *testing.T) {
	r := newRig(t)
	soul, err := entity.NewSoul(r.w, "", common.V3(500, 500, 100), 1)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	r.step(60)
	item, _ := ecs.Get(r.w, soul, component.ItemComponent.Kind())
	s, _ := ecs.Get(r.w, soul, component.SoulComponent.Kind())
	if math.Abs(item.BaseZ-(100+s.DriftRate)) > 1e-6 {
		t.Fatalf("expected base z %v after one second, got %v", 100+s.DriftRate, item.BaseZ)
	}
	r.step(240)
	if item.BaseZ != s.DesiredZ {
		t.Fatalf("soul should settle at %v, got %v", s.DesiredZ, item.BaseZ)
	}
}
