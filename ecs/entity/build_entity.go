package entity

import (
	"fmt"

	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/prefabs"
)

// builder adds components to a fresh entity and remembers the first failure,
// so a prefab is assembled as a flat list of adds.
type builder struct {
	w      *ecs.World
	e      ecs.Entity
	prefix string
	err    error
}

func newBuilder(w *ecs.World, prefix string) *builder {
	return &builder{w: w, e: ecs.CreateEntity(w), prefix: prefix}
}

func add[T any](b *builder, what string, kind component.ComponentKind[T], value *T) {
	if b.err != nil {
		return
	}
	if err := ecs.Add(b.w, b.e, kind, value); err != nil {
		b.err = fmt.Errorf("%s: add %s: %w", b.prefix, what, err)
	}
}

// done returns the entity, or destroys it if any add failed.
func (b *builder) done() (ecs.Entity, error) {
	if b.err != nil {
		ecs.DestroyEntity(b.w, b.e)
		return 0, b.err
	}
	return b.e, nil
}

func attributesFromSpec(s prefabs.AttributesSpec) *component.Attributes {
	a := &component.Attributes{
		Health:           s.Health,
		MaxHealth:        s.MaxHealth,
		Stamina:          s.Stamina,
		MaxStamina:       s.MaxStamina,
		Gold:             s.Gold,
		Souls:            s.Souls,
		DodgeCost:        s.DodgeCost,
		StaminaRegenRate: s.StaminaRegenRate,
	}
	if a.MaxHealth <= 0 {
		a.MaxHealth = a.Health
	}
	if a.MaxStamina <= 0 {
		a.MaxStamina = a.Stamina
	}
	return a
}

func montagesFromSpec(specs map[string]prefabs.MontageSpec) *component.Montages {
	defs := make(map[string]component.MontageDef, len(specs))
	for name, m := range specs {
		defs[name] = component.MontageDef{
			Sections:  append([]string(nil), m.Sections...),
			Durations: append([]float64(nil), m.Durations...),
		}
	}
	return &component.Montages{Defs: defs}
}

func socketsFromSpec(specs map[string]common.Vec3) *component.Sockets {
	offsets := make(map[string]common.Vec3, len(specs))
	for name, v := range specs {
		offsets[name] = v
	}
	return &component.Sockets{Offsets: offsets}
}

// addCharacter adds the components every combat actor shares.
func addCharacter(b *builder, tags []string, attrs prefabs.AttributesSpec, capsule prefabs.CapsuleSpec, hitReactRate float64, sockets map[string]common.Vec3, montages map[string]prefabs.MontageSpec) {
	add(b, "tags", component.TagsComponent.Kind(), &component.Tags{Names: append([]string(nil), tags...)})
	add(b, "attributes", component.AttributesComponent.Kind(), attributesFromSpec(attrs))
	add(b, "character", component.CharacterComponent.Kind(), &component.Character{
		CapsuleRadius:     capsule.Radius,
		CapsuleHalfHeight: capsule.HalfHeight,
		CollisionEnabled:  true,
		HitReactRate:      hitReactRate,
	})
	add(b, "sockets", component.SocketsComponent.Kind(), socketsFromSpec(sockets))
	add(b, "montages", component.MontagesComponent.Kind(), montagesFromSpec(montages))
	add(b, "montage player", component.MontagePlayerComponent.Kind(), &component.MontagePlayer{})
	add(b, "physics body", component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.ShapeCircle,
		Radius: capsule.Radius,
		Active: true,
	})
}

// NewPatrolPoint places a marker enemies can pick as a patrol target.
func NewPatrolPoint(w *ecs.World, pos common.Vec3) (ecs.Entity, error) {
	b := newBuilder(w, "patrol point")
	add(b, "transform", component.TransformComponent.Kind(), &component.Transform{Position: pos})
	add(b, "tag", component.PatrolPointTagComponent.Kind(), &component.PatrolPointTag{})
	return b.done()
}

// NewObstacle places a static box of level geometry centred on pos.
func NewObstacle(w *ecs.World, pos common.Vec3, width, height float64) (ecs.Entity, error) {
	b := newBuilder(w, "obstacle")
	add(b, "transform", component.TransformComponent.Kind(), &component.Transform{Position: pos})
	add(b, "physics body", component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.ShapeBox,
		Width:  width,
		Height: height,
		Static: true,
		Active: true,
	})
	return b.done()
}
