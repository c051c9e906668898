package system

import (
	"github.com/milk9111/thruster/common"
	"github.com/milk9111/thruster/obj"
)

// ForceSource contributes a force to the craft once per frame.
type ForceSource interface {
	Force(s obj.State) common.Vector2
}

// Trigger is implemented by force sources that can also request a shot.
type Trigger interface {
	Firing() bool
}

// World owns the craft and the sources that steer it, and steps them in a
// fixed order each frame.
type World struct {
	Craft   *obj.Craft
	sources []ForceSource
	frames  int
}

// NewWorld creates a world around craft.
func NewWorld(craft *obj.Craft, sources ...ForceSource) *World {
	return &World{
		Craft:   craft,
		sources: append([]ForceSource(nil), sources...),
	}
}

func (w *World) AddSource(s ForceSource) {
	if s == nil {
		return
	}
	w.sources = append(w.sources, s)
}

// ReplaceSource swaps old for s in place, or appends s when old is absent.
func (w *World) ReplaceSource(old, s ForceSource) {
	for i, src := range w.sources {
		if src == old {
			if s == nil {
				w.sources = append(w.sources[:i], w.sources[i+1:]...)
			} else {
				w.sources[i] = s
			}
			return
		}
	}
	w.AddSource(s)
}

// SetCraft swaps the craft, e.g. after a prefab reload or restart.
func (w *World) SetCraft(c *obj.Craft) {
	w.Craft = c
}

// Step gathers this frame's forces and fire requests, then updates the craft.
func (w *World) Step() {
	if w == nil || w.Craft == nil {
		return
	}
	w.frames++

	state := w.Craft.State()
	for _, s := range w.sources {
		w.Craft.AddForce(s.Force(state))
		if t, ok := s.(Trigger); ok && t.Firing() {
			w.Craft.Fire()
		}
	}
	w.Craft.Update()
}

// Render draws the craft and its projectiles.
func (w *World) Render() {
	if w == nil || w.Craft == nil {
		return
	}
	w.Craft.Render()
}

// Frames returns the number of steps taken.
func (w *World) Frames() int {
	return w.frames
}
