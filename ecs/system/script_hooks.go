package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/slash/common"
	"github.com/milk9111/slash/ecs"
	"github.com/milk9111/slash/ecs/component"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/milk9111/slash/prefabs"
	"github.com/sirupsen/logrus"
)

const defaultEffectHistory = 64

const hookDispatchScript = `
if __hook == "on_die" {
	on_die(__engine, __args)
} else if __hook == "rotate_towards_player" {
	rotate_towards_player(__engine, __args)
} else if __hook == "create_fields" {
	create_fields(__engine, __args)
} else if __hook == "update_niagara_variables" {
	update_niagara_variables(__engine, __args)
} else if __hook == "on_hit" {
	on_hit(__engine, __args)
} else if __hook == "on_pickup" {
	on_pickup(__engine, __args)
} else if __hook == "on_equip" {
	on_equip(__engine, __args)
}
`

// ScriptHooks runs the hook functions of a tengo script. Effects emitted by
// the script are recorded and can be drained by presentation layers.
type ScriptHooks struct {
	scriptName string
	compiled   *tengo.Compiled
	effects    []Effect
	history    int
	calls      map[string]int
	log        *logrus.Entry
}

// NewScriptHooks compiles the named script from prefabs/scripts.
func NewScriptHooks(scriptName string) (*ScriptHooks, error) {
	h := &ScriptHooks{
		scriptName: scriptName,
		history:    defaultEffectHistory,
		calls:      map[string]int{},
		log:        logger.For("script_hooks"),
	}
	if err := h.Reload(); err != nil {
		return nil, err
	}
	return h, nil
}

// Reload recompiles the script. On failure the previous program is kept.
func (h *ScriptHooks) Reload() error {
	if h == nil {
		return fmt.Errorf("script hooks: nil")
	}
	src, err := prefabs.LoadScript(h.scriptName)
	if err != nil {
		return fmt.Errorf("script hooks: load %q: %w", h.scriptName, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + hookDispatchScript))
	_ = script.Add("__hook", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__args", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("script hooks: compile %q: %w", h.scriptName, err)
	}
	h.compiled = compiled
	return nil
}

// Drain returns the recorded effects and clears the history.
func (h *ScriptHooks) Drain() []Effect {
	if h == nil || len(h.effects) == 0 {
		return nil
	}
	out := h.effects
	h.effects = nil
	return out
}

// Calls reports how many times a hook ran.
func (h *ScriptHooks) Calls(hook string) int {
	if h == nil {
		return 0
	}
	return h.calls[hook]
}

func (h *ScriptHooks) OnDie(w *ecs.World, e ecs.Entity) {
	h.run(w, "on_die", e, entityLocation(w, e), nil)
}

func (h *ScriptHooks) RotateTowardsPlayer(w *ecs.World, e ecs.Entity, rotate bool) {
	h.run(w, "rotate_towards_player", e, entityLocation(w, e), map[string]tengo.Object{
		"rotate": boolObject(rotate),
	})
}

func (h *ScriptHooks) CreateFields(w *ecs.World, weapon ecs.Entity, at common.Vec3) {
	h.run(w, "create_fields", weapon, at, nil)
}

func (h *ScriptHooks) UpdateNiagaraVariables(w *ecs.World, soul ecs.Entity) {
	extra := map[string]tengo.Object{}
	if s, ok := ecs.Get(w, soul, component.SoulComponent.Kind()); ok {
		extra["souls"] = &tengo.Int{Value: int64(s.Souls)}
		extra["desired_z"] = &tengo.Float{Value: s.DesiredZ}
	}
	h.run(w, "update_niagara_variables", soul, entityLocation(w, soul), extra)
}

func (h *ScriptHooks) OnHit(w *ecs.World, e ecs.Entity, at common.Vec3) {
	h.run(w, "on_hit", e, at, nil)
}

func (h *ScriptHooks) OnPickup(w *ecs.World, picker, item ecs.Entity, kind component.PickupKind) {
	h.run(w, "on_pickup", item, entityLocation(w, item), map[string]tengo.Object{
		"picker": &tengo.Int{Value: int64(picker)},
		"kind":   &tengo.String{Value: kind.String()},
	})
}

func (h *ScriptHooks) OnEquip(w *ecs.World, weapon, owner ecs.Entity) {
	h.run(w, "on_equip", weapon, entityLocation(w, weapon), map[string]tengo.Object{
		"owner": &tengo.Int{Value: int64(owner)},
	})
}

func (h *ScriptHooks) run(w *ecs.World, hook string, e ecs.Entity, at common.Vec3, extra map[string]tengo.Object) {
	if h == nil || h.compiled == nil {
		return
	}
	h.calls[hook]++

	args := map[string]tengo.Object{
		"entity": &tengo.Int{Value: int64(e)},
		"x":      &tengo.Float{Value: at.X},
		"y":      &tengo.Float{Value: at.Y},
		"z":      &tengo.Float{Value: at.Z},
	}
	for k, v := range extra {
		args[k] = v
	}

	if err := h.compiled.Set("__hook", hook); err != nil {
		h.log.WithError(err).Warn("set hook")
		return
	}
	if err := h.compiled.Set("__engine", h.engine(w, e, at)); err != nil {
		h.log.WithError(err).Warn("set engine")
		return
	}
	if err := h.compiled.Set("__args", &tengo.ImmutableMap{Value: args}); err != nil {
		h.log.WithError(err).Warn("set args")
		return
	}
	if err := h.compiled.Run(); err != nil {
		h.log.WithFields(logrus.Fields{"hook": hook, "entity": e}).WithError(err).Warn("script error")
	}
}

func (h *ScriptHooks) engine(w *ecs.World, e ecs.Entity, at common.Vec3) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		kind := strings.TrimSpace(objectAsString(args[0]))
		name := strings.TrimSpace(objectAsString(args[1]))
		if kind == "" || name == "" {
			return tengo.FalseValue, nil
		}
		var tick uint64
		if w != nil {
			tick = w.Tick()
		}
		h.record(Effect{Kind: EffectKind(kind), Name: name, Entity: e, At: at, Tick: tick})
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		h.log.WithField("entity", e).Debug(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	values["has_tag"] = &tengo.UserFunction{Name: "has_tag", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if w == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(hasTag(w, e, objectAsString(args[0]))), nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (h *ScriptHooks) record(fx Effect) {
	h.effects = append(h.effects, fx)
	if over := len(h.effects) - h.history; over > 0 {
		h.effects = append(h.effects[:0], h.effects[over:]...)
	}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
