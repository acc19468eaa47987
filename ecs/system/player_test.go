package system

import (
	"math"
	"testing"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
)

func TestPlayerActionGate(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "attack_requires_weapon",
			run: func(t *testing.T) {
				r := newRig(t)
				p := r.spawnPlayer(t, common.Vec3{}, 0)
				if r.player.Attack(r.w, p) {
					t.Fatalf("unarmed player should not attack")
				}
				r.arm(t, p)
				if !r.player.Attack(r.w, p) {
					t.Fatalf("armed idle player should attack")
				}
				if got := playerOf(t, r.w, p).Action; got != component.ActionAttacking {
					t.Fatalf("expected attacking, got %s", got)
				}
				if r.player.Attack(r.w, p) {
					t.Fatalf("attack while attacking should be refused")
				}
				if r.player.Dodge(r.w, p) {
					t.Fatalf("dodge while attacking should be refused")
				}
			},
		},
		{
			name: "attack_end_returns_to_idle",
			run: func(t *testing.T) {
				r := newRig(t)
				p := r.spawnPlayer(t, common.Vec3{}, 0)
				weapon := r.arm(t, p)
				r.player.Attack(r.w, p)
				if wc, _ := ecs.Get(r.w, weapon, component.WeaponComponent.Kind()); !wc.CollisionEnabled {
					t.Fatalf("blade should be live during the swing")
				}
				r.step(120)
				if got := playerOf(t, r.w, p).Action; got != component.ActionIdle {
					t.Fatalf("expected idle after swing, got %s", got)
				}
				if wc, _ := ecs.Get(r.w, weapon, component.WeaponComponent.Kind()); wc.CollisionEnabled {
					t.Fatalf("blade should be off after the swing")
				}
			},
		},
		{
			name: "movement_only_when_idle",
			run: func(t *testing.T) {
				r := newRig(t)
				p := r.spawnPlayer(t, common.Vec3{}, 0)
				in, _ := ecs.Get(r.w, p, component.InputComponent.Kind())
				in.MoveY = 1
				r.step(1)
				pt, _ := ecs.Get(r.w, p, component.TransformComponent.Kind())
				if pt.Position.X <= 0 {
					t.Fatalf("idle player should walk forward, x=%v", pt.Position.X)
				}

				playerOf(t, r.w, p).Action = component.ActionHitReaction
				before := pt.Position
				r.step(1)
				if common.Dist(before, pt.Position) > 1e-6 {
					t.Fatalf("occupied player moved from %v to %v", before, pt.Position)
				}
			},
		},
		{
			name: "jump_requires_ground",
			run: func(t *testing.T) {
				r := newRig(t)
				p := r.spawnPlayer(t, common.Vec3{}, 0)
				if !r.player.Jump(r.w, p) {
					t.Fatalf("grounded player should jump")
				}
				if r.player.Jump(r.w, p) {
					t.Fatalf("airborne player should not jump")
				}
				r.step(3)
				pt, _ := ecs.Get(r.w, p, component.TransformComponent.Kind())
				if pt.Position.Z <= 0 {
					t.Fatalf("expected the player in the air, z=%v", pt.Position.Z)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestPlayerDodge(t *testing.T) {
	r := newRig(t)
	p := r.spawnPlayer(t, common.Vec3{}, 0)
	attrs, _ := ecs.Get(r.w, p, component.AttributesComponent.Kind())

	if !r.player.Dodge(r.w, p) {
		t.Fatalf("expected dodge")
	}
	if math.Abs(attrs.Stamina-(attrs.MaxStamina-attrs.DodgeCost)) > 1e-9 {
		t.Fatalf("expected stamina spent, got %v", attrs.Stamina)
	}
	if r.overlay.StaminaPercent >= 1 {
		t.Fatalf("overlay stamina not updated: %v", r.overlay.StaminaPercent)
	}
	if taken := r.router.ApplyDamage(r.w, p, 30, 0, 0); taken != 0 {
		t.Fatalf("dodging player took %v damage", taken)
	}
	r.router.GetHit(r.w, p, common.V3(50, 0, 0), 0)
	if got := playerOf(t, r.w, p).Action; got != component.ActionDodging {
		t.Fatalf("hit interrupted the dodge: %s", got)
	}

	r.step(90)
	if got := playerOf(t, r.w, p).Action; got != component.ActionIdle {
		t.Fatalf("expected idle after dodge, got %s", got)
	}

	attrs.Stamina = attrs.DodgeCost / 2
	if !r.player.Dodge(r.w, p) {
		t.Fatalf("dodge refused with stamina %v", attrs.Stamina)
	}
	if attrs.Stamina != 0 {
		t.Fatalf("stamina should clamp at zero, got %v", attrs.Stamina)
	}
	r.step(90)

	attrs.Stamina = 0
	if r.player.Dodge(r.w, p) {
		t.Fatalf("dodge allowed with no stamina")
	}
}

func TestPlayerStaminaRegen(t *testing.T) {
	r := newRig(t)
	p := r.spawnPlayer(t, common.Vec3{}, 0)
	attrs, _ := ecs.Get(r.w, p, component.AttributesComponent.Kind())
	attrs.Stamina = 50
	r.step(60)
	want := 50 + attrs.StaminaRegenRate
	if math.Abs(attrs.Stamina-want) > 1e-6 {
		t.Fatalf("expected stamina %v after one second, got %v", want, attrs.Stamina)
	}
	if math.Abs(r.overlay.StaminaPercent-want/attrs.MaxStamina) > 1e-6 {
		t.Fatalf("overlay stamina %v", r.overlay.StaminaPercent)
	}
}

func TestPlayerHitAndDeath(t *testing.T) {
	r := newRig(t)
	p := r.spawnPlayer(t, common.Vec3{}, 0)
	e := r.spawnEnemy(t, common.V3(-500, 0, 0), 0)

	if taken := r.router.ApplyDamage(r.w, p, 30, e, 0); taken != 30 {
		t.Fatalf("expected 30 taken, got %v", taken)
	}
	r.router.GetHit(r.w, p, common.V3(40, 0, 0), e)
	if got := playerOf(t, r.w, p).Action; got != component.ActionHitReaction {
		t.Fatalf("expected hit reaction, got %s", got)
	}
	if math.Abs(r.overlay.HealthPercent-0.7) > 1e-9 {
		t.Fatalf("overlay health %v", r.overlay.HealthPercent)
	}
	mp, _ := ecs.Get(r.w, p, component.MontagePlayerComponent.Kind())
	if mp.Montage != MontageHitReact || mp.Section != SectionFromBack {
		t.Fatalf("expected reaction from back toward the hitter, got %s/%s", mp.Montage, mp.Section)
	}

	r.router.ApplyDamage(r.w, p, 500, e, 0)
	r.router.GetHit(r.w, p, common.V3(40, 0, 0), e)
	if got := playerOf(t, r.w, p).Action; got != component.ActionDead {
		t.Fatalf("expected dead, got %s", got)
	}
	if !hasTag(r.w, p, component.TagDead) {
		t.Fatalf("expected Dead tag")
	}
	if r.player.Attack(r.w, p) || r.player.Dodge(r.w, p) {
		t.Fatalf("dead player acted")
	}
}

func TestPlayerEquipCycle(t *testing.T) {
	r := newRig(t)
	p := r.spawnPlayer(t, common.Vec3{}, 0)
	weapon := r.arm(t, p)

	r.player.EKeyPressed(r.w, p)
	pl := playerOf(t, r.w, p)
	if pl.State != component.CharacterUnequipped || pl.Action != component.ActionEquipping {
		t.Fatalf("expected sheathing, got state=%s action=%s", pl.State, pl.Action)
	}
	r.step(60)
	wc, _ := ecs.Get(r.w, weapon, component.WeaponComponent.Kind())
	if wc.Socket != component.SocketSpine || pl.Action != component.ActionIdle {
		t.Fatalf("expected weapon on the back, socket=%q action=%s", wc.Socket, pl.Action)
	}

	r.player.EKeyPressed(r.w, p)
	if pl.State != component.CharacterEquippedOneHanded {
		t.Fatalf("expected drawing, got %s", pl.State)
	}
	r.step(60)
	if wc.Socket != component.SocketRightHand {
		t.Fatalf("expected weapon in hand, socket=%q", wc.Socket)
	}
}
