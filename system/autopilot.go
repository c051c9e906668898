package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/thruster/common"
	"github.com/milk9111/thruster/obj"
	"github.com/milk9111/thruster/prefabs"
	"go.uber.org/zap"
)

// Autopilot drives the craft from a tengo script. Each frame the script sees
// the craft snapshot as `state` and a persistent `memory` map, and assigns
// `force_x`, `force_y` and optionally `fire`.
type Autopilot struct {
	scriptPath string
	compiled   *tengo.Compiled
	memory     *tengo.Map
	firing     bool
	log        obj.Diagnostics
}

// NewAutopilot compiles the named script from prefabs.
func NewAutopilot(scriptPath string, log obj.Diagnostics) (*Autopilot, error) {
	src, err := prefabs.LoadScript(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("autopilot: load %s: %w", scriptPath, err)
	}
	return NewAutopilotFromSource(scriptPath, src, log)
}

// NewAutopilotFromSource compiles src. name only labels log lines.
func NewAutopilotFromSource(name string, src []byte, log obj.Diagnostics) (*Autopilot, error) {
	script := tengo.NewScript(src)
	_ = script.Add("state", map[string]any{})
	_ = script.Add("memory", map[string]any{})
	_ = script.Add("force_x", 0.0)
	_ = script.Add("force_y", 0.0)
	_ = script.Add("fire", false)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("autopilot: compile %s: %w", name, err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Autopilot{
		scriptPath: name,
		compiled:   compiled,
		memory:     &tengo.Map{Value: map[string]tengo.Object{}},
		log:        log,
	}, nil
}

// Script returns the script name the autopilot was built from.
func (a *Autopilot) Script() string {
	return a.scriptPath
}

// Force runs the script once for s. A failing script yields no force.
func (a *Autopilot) Force(s obj.State) common.Vector2 {
	a.firing = false
	fx, fy, fire, err := a.run(s)
	if err != nil {
		a.log.Warn("autopilot: script error", zap.String("script", a.scriptPath), zap.Error(err))
		return common.Vector2{}
	}
	a.firing = fire
	return common.Vec(fx, fy)
}

// Firing reports whether the last run asked for a shot.
func (a *Autopilot) Firing() bool {
	return a.firing
}

// Memory returns a value the script stored in its memory map.
func (a *Autopilot) Memory(key string) (any, bool) {
	v, ok := a.memory.Value[key]
	if !ok {
		return nil, false
	}
	return tengo.ToInterface(v), true
}

func (a *Autopilot) run(s obj.State) (float64, float64, bool, error) {
	state := map[string]any{
		"frame":        s.Frame,
		"x":            s.Position.X,
		"y":            s.Position.Y,
		"vx":           s.Velocity.X,
		"vy":           s.Velocity.Y,
		"ax":           s.Acceleration.X,
		"ay":           s.Acceleration.Y,
		"width":        s.Size.X,
		"height":       s.Size.Y,
		"field_width":  s.Field.X,
		"field_height": s.Field.Y,
	}
	if err := a.compiled.Set("state", state); err != nil {
		return 0, 0, false, err
	}
	if err := a.compiled.Set("memory", a.memory); err != nil {
		return 0, 0, false, err
	}
	for name, zero := range map[string]any{"force_x": 0.0, "force_y": 0.0, "fire": false} {
		if err := a.compiled.Set(name, zero); err != nil {
			return 0, 0, false, err
		}
	}

	if err := a.compiled.Run(); err != nil {
		return 0, 0, false, err
	}

	fx, err := number(a.compiled.Get("force_x"))
	if err != nil {
		return 0, 0, false, fmt.Errorf("force_x: %w", err)
	}
	fy, err := number(a.compiled.Get("force_y"))
	if err != nil {
		return 0, 0, false, fmt.Errorf("force_y: %w", err)
	}
	return fx, fy, a.compiled.Get("fire").Bool(), nil
}

func number(v *tengo.Variable) (float64, error) {
	switch v.ValueType() {
	case "float":
		return v.Float(), nil
	case "int":
		return float64(v.Int()), nil
	default:
		return 0, fmt.Errorf("expected a number, got %s", strings.TrimSpace(v.ValueType()))
	}
}
